// Package integrator provides fixed-step Runge-Kutta solvers over scalar and
// vector dynamics. A Solver is an immutable value: one instance is meant to be
// shared by reference between every component of a simulation so that all of
// them advance with a single consistent step size.
package integrator

import "fmt"

// ScalarDynamics is a scalar ODE right-hand side x' = f(t, x, u) where u is an
// exogenous input held constant across the sub-steps of one solve.
type ScalarDynamics func(t, x, u float64) float64

// VectorDynamics is the vector form of ScalarDynamics. Implementations must
// not retain or modify x and u.
type VectorDynamics func(t float64, x, u []float64) []float64

// Solver advances a state by exactly one fixed step.
type Solver interface {
	// Scalar returns the state one step after (t, x) under dynamics f with
	// input u held constant.
	Scalar(f ScalarDynamics, t, x, u float64) float64
	// Vector is the vector counterpart of Scalar. The returned slice is
	// freshly allocated.
	Vector(f VectorDynamics, t float64, x, u []float64) []float64
	// Step returns the fixed step size of this solver.
	Step() float64
}

// New returns the fixed-step solver of the given Runge-Kutta order (1 to 4).
func New(order int, dt float64) (Solver, error) {
	switch order {
	case 1:
		return NewRK1(dt), nil
	case 2:
		return NewRK2(dt), nil
	case 3:
		return NewRK3(dt), nil
	case 4:
		return NewRK4(dt), nil
	default:
		return nil, fmt.Errorf("integrator: unsupported Runge-Kutta order %d", order)
	}
}
