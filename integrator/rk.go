package integrator

// RK1 is the explicit Euler method.
type RK1 struct {
	dt float64
}

// NewRK1 returns an explicit Euler solver with the given step size.
func NewRK1(dt float64) RK1 {
	if dt <= 0 {
		panic("integrator: step size must be positive")
	}
	return RK1{dt: dt}
}

// Step returns the step size.
func (s RK1) Step() float64 { return s.dt }

// Scalar implements Solver.
func (s RK1) Scalar(f ScalarDynamics, t, x, u float64) float64 {
	k1 := f(t, x, u)
	return x + k1*s.dt
}

// Vector implements Solver.
func (s RK1) Vector(f VectorDynamics, t float64, x, u []float64) []float64 {
	k1 := f(t, x, u)
	next := make([]float64, len(x))
	for i := range next {
		next[i] = x[i] + k1[i]*s.dt
	}
	return next
}

// RK2 is Heun's method: the average of the slopes at both endpoints.
type RK2 struct {
	dt float64
}

// NewRK2 returns a Heun solver with the given step size.
func NewRK2(dt float64) RK2 {
	if dt <= 0 {
		panic("integrator: step size must be positive")
	}
	return RK2{dt: dt}
}

// Step returns the step size.
func (s RK2) Step() float64 { return s.dt }

// Scalar implements Solver.
func (s RK2) Scalar(f ScalarDynamics, t, x, u float64) float64 {
	dt := s.dt
	k1 := f(t, x, u)
	k2 := f(t+dt, x+k1*dt, u)
	return x + (k1+k2)*dt/2
}

// Vector implements Solver.
func (s RK2) Vector(f VectorDynamics, t float64, x, u []float64) []float64 {
	dt := s.dt
	k1 := f(t, x, u)
	xk := make([]float64, len(x))
	for i := range xk {
		xk[i] = x[i] + k1[i]*dt
	}
	k2 := f(t+dt, xk, u)
	next := make([]float64, len(x))
	for i := range next {
		next[i] = x[i] + (k1[i]+k2[i])*dt/2
	}
	return next
}

// RK3 is Kutta's third-order method, with the second stage at the midpoint and
// the third at the endpoint through the -k1+2*k2 predictor.
type RK3 struct {
	dt float64
}

// NewRK3 returns a third-order Kutta solver with the given step size.
func NewRK3(dt float64) RK3 {
	if dt <= 0 {
		panic("integrator: step size must be positive")
	}
	return RK3{dt: dt}
}

// Step returns the step size.
func (s RK3) Step() float64 { return s.dt }

// Scalar implements Solver.
func (s RK3) Scalar(f ScalarDynamics, t, x, u float64) float64 {
	dt := s.dt
	k1 := f(t, x, u)
	k2 := f(t+dt/2, x+k1*dt/2, u)
	k3 := f(t+dt, x-k1*dt+k2*2*dt, u)
	return x + (k1+k2*4+k3)*dt/6
}

// Vector implements Solver.
func (s RK3) Vector(f VectorDynamics, t float64, x, u []float64) []float64 {
	dt := s.dt
	k1 := f(t, x, u)
	xk := make([]float64, len(x))
	for i := range xk {
		xk[i] = x[i] + k1[i]*dt/2
	}
	k2 := f(t+dt/2, xk, u)
	for i := range xk {
		xk[i] = x[i] - k1[i]*dt + k2[i]*2*dt
	}
	k3 := f(t+dt, xk, u)
	next := make([]float64, len(x))
	for i := range next {
		next[i] = x[i] + (k1[i]+k2[i]*4+k3[i])*dt/6
	}
	return next
}

// RK4 is the classical fourth-order Runge-Kutta method.
type RK4 struct {
	dt float64
}

// NewRK4 returns a classical RK4 solver with the given step size.
func NewRK4(dt float64) RK4 {
	if dt <= 0 {
		panic("integrator: step size must be positive")
	}
	return RK4{dt: dt}
}

// Step returns the step size.
func (s RK4) Step() float64 { return s.dt }

// Scalar implements Solver.
func (s RK4) Scalar(f ScalarDynamics, t, x, u float64) float64 {
	dt := s.dt
	k1 := f(t, x, u)
	k2 := f(t+dt/2, x+k1*dt/2, u)
	k3 := f(t+dt/2, x+k2*dt/2, u)
	k4 := f(t+dt, x+k3*dt, u)
	return x + (k1+k2*2+k3*2+k4)*dt/6
}

// Vector implements Solver.
func (s RK4) Vector(f VectorDynamics, t float64, x, u []float64) []float64 {
	dt := s.dt
	k1 := f(t, x, u)
	xk := make([]float64, len(x))
	for i := range xk {
		xk[i] = x[i] + k1[i]*dt/2
	}
	k2 := f(t+dt/2, xk, u)
	for i := range xk {
		xk[i] = x[i] + k2[i]*dt/2
	}
	k3 := f(t+dt/2, xk, u)
	for i := range xk {
		xk[i] = x[i] + k3[i]*dt
	}
	k4 := f(t+dt, xk, u)
	next := make([]float64, len(x))
	for i := range next {
		next[i] = x[i] + (k1[i]+k2[i]*2+k3[i]*2+k4[i])*dt/6
	}
	return next
}
