package sixdof

import "github.com/openfdm/sixdof/integrator"

// Actuator is a first-order closed-loop servo surface:
//
//	x' = clamp(gain*(clamp(cmd) - x), -rate, +rate)
//	out = clamp(x)
//
// The scalar state x is advanced by the shared solver, one step per Update.
type Actuator struct {
	solver    integrator.Solver
	x         float64
	cmdTop    float64
	cmdBottom float64
	rateLimit float64
	gain      float64
}

// NewActuator returns an actuator at the given initial position.
func NewActuator(solver integrator.Solver, init, cmdTop, cmdBottom, rateLimit, gain float64) *Actuator {
	return &Actuator{
		solver:    solver,
		x:         init,
		cmdTop:    cmdTop,
		cmdBottom: cmdBottom,
		rateLimit: rateLimit,
		gain:      gain,
	}
}

// Update integrates the actuator one solver step toward cmd and returns the
// saturated output.
func (a *Actuator) Update(cmd, t float64) float64 {
	dyn := func(t, x, u float64) float64 {
		return clamp(a.gain*(clamp(u, a.cmdBottom, a.cmdTop)-x), -a.rateLimit, a.rateLimit)
	}
	a.x = a.solver.Scalar(dyn, t, a.x, cmd)
	return clamp(a.x, a.cmdBottom, a.cmdTop)
}

// Position returns the raw actuator state, without the output saturation.
func (a *Actuator) Position() float64 { return a.x }

// Reset sets the actuator state.
func (a *Actuator) Reset(v float64) { a.x = v }
