package sixdof

import "github.com/openfdm/sixdof/integrator"

// LEF controller constants. The washout filter feeds a 1/0.136 servo bounded
// to the physical 0..25 deg flap range at 25 deg/s.
const (
	lefGain      = 1 / 0.136
	lefCmdTop    = 25.0
	lefCmdBottom = 0.0
	lefRateLimit = 25.0
)

// LEFController computes the leading-edge flap deflection commanded for the
// current flight condition. It owns one servo actuator and one washout
// integrator state; both reset together.
type LEFController struct {
	solver   integrator.Solver
	actuator *Actuator
	s        float64
}

// NewLEFController seeds the controller at a flight condition so that its
// first output is already the steady-state schedule GetLEF. Alpha in rad.
func NewLEFController(solver integrator.Solver, altitude, velocity, alpha float64) *LEFController {
	l := &LEFController{
		solver:   solver,
		actuator: NewActuator(solver, GetLEF(altitude, velocity, alpha), lefCmdTop, lefCmdBottom, lefRateLimit, lefGain),
	}
	l.s = -alpha * rad2deg
	return l
}

// Update advances the closed loop one solver step and returns the flap
// deflection in degrees. Alpha in rad.
func (l *LEFController) Update(altitude, velocity, alpha, t float64) float64 {
	atm := Atmosphere(altitude, velocity)
	r1 := 9.05 * atm.Qbar / atm.Ps

	alphaDeg := alpha * rad2deg
	washout := func(t, s, u float64) float64 {
		return (u - (s + 2*u)) * 7.25
	}
	l.s = l.solver.Scalar(washout, t, l.s, alphaDeg)

	r4 := (l.s + 2*alphaDeg) * 1.38
	return l.actuator.Update(1.45+r4-r1, t)
}

// Reset reseeds both the actuator and the washout state at a flight
// condition. Alpha in rad.
func (l *LEFController) Reset(altitude, velocity, alpha float64) {
	l.actuator.Reset(GetLEF(altitude, velocity, alpha))
	l.s = -alpha * rad2deg
}

// Position returns the raw flap servo state in degrees.
func (l *LEFController) Position() float64 { return l.actuator.Position() }
