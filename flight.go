package sixdof

import (
	"math"

	kitlog "github.com/go-kit/kit/log"
)

// G is gravitational acceleration, ft/s^2.
const G = 32.17

// disturbance is the scripted square-wave deflection pulse injected on a
// control axis: +def on [1,3] s, -def on [3,5] s, zero elsewhere.
func disturbance(def, t float64) float64 {
	switch {
	case t >= 1 && t <= 3:
		return def
	case t > 3 && t <= 5:
		return -def
	default:
		return 0
	}
}

// orientation caches the trigonometry of the 3-2-1 Euler angles.
type orientation struct {
	sphi, cphi             float64
	stheta, ctheta, ttheta float64
	spsi, cpsi             float64
}

func newOrientation(s *State) orientation {
	return orientation{
		sphi: math.Sin(s.Phi), cphi: math.Cos(s.Phi),
		stheta: math.Sin(s.Theta), ctheta: math.Cos(s.Theta), ttheta: math.Tan(s.Theta),
		spsi: math.Sin(s.Psi), cpsi: math.Cos(s.Psi),
	}
}

// airAngles caches the trigonometry of the aero angles.
type airAngles struct {
	salpha, calpha float64
	sbeta, cbeta   float64
}

func newAirAngles(s *State) airAngles {
	return airAngles{
		salpha: math.Sin(s.Alpha), calpha: math.Cos(s.Alpha),
		sbeta: math.Sin(s.Beta), cbeta: math.Cos(s.Beta),
	}
}

// navigation returns the NED position rates and the body-axis velocity
// components for the current attitude and aero angles.
func navigation(velocity float64, o *orientation, a *airAngles) (posDot, uvw [3]float64) {
	u := velocity * a.calpha * a.cbeta
	v := velocity * a.sbeta
	w := velocity * a.salpha * a.cbeta

	npos := u*(o.ctheta*o.cpsi) +
		v*(o.sphi*o.cpsi*o.stheta-o.cphi*o.spsi) +
		w*(o.cphi*o.stheta*o.cpsi+o.sphi*o.spsi)

	epos := u*(o.ctheta*o.spsi) +
		v*(o.sphi*o.spsi*o.stheta+o.cphi*o.cpsi) +
		w*(o.cphi*o.stheta*o.spsi-o.sphi*o.cpsi)

	hdot := u*o.stheta - v*(o.sphi*o.ctheta) - w*(o.cphi*o.ctheta)

	return [3]float64{npos, epos, hdot}, [3]float64{u, v, w}
}

// kinematics returns the Euler angle rates.
func kinematics(o *orientation, p, q, r float64) (phiDot, thetaDot, psiDot float64) {
	phiDot = p + o.ttheta*(q*o.sphi+r*o.cphi)
	thetaDot = q*o.cphi - r*o.sphi
	psiDot = (q*o.sphi + r*o.cphi) / o.ctheta
	return
}

// velocityDerivation returns the total velocity rate and the body-axis
// acceleration components.
func velocityDerivation(c *C, pc *PlaneConstants, velocity float64, uvw [3]float64, o *orientation, p, q, r, qbar, thrust float64) (float64, [3]float64) {
	u, v, w := uvw[0], uvw[1], uvw[2]

	uDot := r*v - q*w - G*o.stheta + qbar*pc.S*c.CX/pc.M + thrust/pc.M
	vDot := p*w - r*u + G*o.ctheta*o.sphi + qbar*pc.S*c.CY/pc.M
	wDot := q*u - p*v + G*o.ctheta*o.cphi + qbar*pc.S*c.CZ/pc.M

	return (u*uDot + v*vDot + w*wDot) / velocity, [3]float64{uDot, vDot, wDot}
}

// airAngleDerivation returns alpha and beta rates.
func airAngleDerivation(a *airAngles, velocity, velocityDot float64, uvw, uvwDot [3]float64) (alphaDot, betaDot float64) {
	u, v, w := uvw[0], uvw[1], uvw[2]
	uDot, vDot, wDot := uvwDot[0], uvwDot[1], uvwDot[2]

	alphaDot = (u*wDot - w*uDot) / (u*u + w*w)
	betaDot = (vDot*velocity - v*velocityDot) / (velocity * velocity * a.cbeta)
	return
}

// angleRateDerivation returns the body angular accelerations including the
// full inertia coupling and the engine angular momentum term.
func angleRateDerivation(c *C, pc *PlaneConstants, p, q, r, qbar float64) (pDot, qDot, rDot float64) {
	lTotal := c.CL * qbar * pc.S * pc.B
	mTotal := c.CM * qbar * pc.S * pc.CBar
	nTotal := c.CN * qbar * pc.S * pc.B

	denom := pc.Jx*pc.Jz - pc.Jxz*pc.Jxz

	pDot = (pc.Jz*lTotal + pc.Jxz*nTotal -
		(pc.Jz*(pc.Jz-pc.Jy)+pc.Jxz*pc.Jxz)*q*r +
		pc.Jxz*(pc.Jx-pc.Jy+pc.Jz)*p*q +
		pc.Jxz*q*pc.HEng) / denom

	qDot = (mTotal + (pc.Jz-pc.Jx)*p*r -
		pc.Jxz*(p*p-r*r) -
		r*pc.HEng) / pc.Jy

	rDot = (pc.Jx*nTotal + pc.Jxz*lTotal +
		(pc.Jx*(pc.Jx-pc.Jy)+pc.Jxz*pc.Jxz)*p*q -
		pc.Jxz*(pc.Jx-pc.Jy+pc.Jz)*q*r +
		pc.Jx*q*pc.HEng) / denom
	return
}

// accels returns the CG load factors in g. Output only; they feed no state.
func accels(uvw, uvwDot [3]float64, o *orientation, p, q, r float64) [3]float64 {
	u, v, w := uvw[0], uvw[1], uvw[2]
	uDot, vDot, wDot := uvwDot[0], uvwDot[1], uvwDot[2]

	nx := (uDot+q*w-r*v)/G + o.stheta
	ny := (vDot+r*u-p*w)/G - o.ctheta*o.sphi
	nz := -(wDot+p*v-q*u)/G + o.ctheta*o.cphi
	return [3]float64{nx, ny, nz}
}

// MechanicalModel is the pure 6-DoF rigid-body equations of motion bound to
// one aerodynamic model. Trim and Step run the same math and differ only in
// which model entry point supplies the coefficient vector.
type MechanicalModel struct {
	constants PlaneConstants
	trimFn    coefficientFn
	stepFn    coefficientFn
	initFn    func() error
	deleteFn  func() error
	inited    bool
	logger    kitlog.Logger
}

// NewMechanicalModel resolves the model hooks and loads the airframe
// constants. Init must still be called before stepping.
func NewMechanicalModel(model *AerodynamicModel) (*MechanicalModel, error) {
	constants, err := model.LoadConstants()
	if err != nil {
		return nil, err
	}
	return &MechanicalModel{
		constants: constants,
		trimFn:    model.trimFunc(),
		stepFn:    model.stepFunc(),
		initFn:    model.initFunc(),
		deleteFn:  model.deleteFunc(),
		logger:    model.logger,
	}, nil
}

// Constants returns the airframe constants.
func (m *MechanicalModel) Constants() PlaneConstants { return m.constants }

// Init runs the model's one-time initialization.
func (m *MechanicalModel) Init() error {
	if err := m.initFn(); err != nil {
		return err
	}
	m.inited = true
	return nil
}

// Trim evaluates the equations of motion through the model's trim entry
// point.
func (m *MechanicalModel) Trim(in *ModelInput) (State, StateExtend, error) {
	return m.derive(in, m.trimFn)
}

// Step evaluates the equations of motion through the model's step entry
// point.
func (m *MechanicalModel) Step(in *ModelInput) (State, StateExtend, error) {
	if !m.inited {
		return State{}, StateExtend{}, &NotInitializedError{What: "mechanical model"}
	}
	return m.derive(in, m.stepFn)
}

func (m *MechanicalModel) derive(in *ModelInput, coeff coefficientFn) (State, StateExtend, error) {
	state := in.State
	if state.Velocity < 0.01 {
		state.Velocity = 0.01
	}

	o := newOrientation(&state)
	a := newAirAngles(&state)
	p, q, r := state.P, state.Q, state.R

	atm := Atmosphere(state.Altitude, state.Velocity)
	posDot, uvw := navigation(state.Velocity, &o, &a)
	phiDot, thetaDot, psiDot := kinematics(&o, p, q, r)

	c, err := coeff(in)
	if err != nil {
		return State{}, StateExtend{}, err
	}

	velocityDot, uvwDot := velocityDerivation(&c, &m.constants, state.Velocity, uvw, &o, p, q, r, atm.Qbar, in.Control.Thrust)
	alphaDot, betaDot := airAngleDerivation(&a, state.Velocity, velocityDot, uvw, uvwDot)
	pDot, qDot, rDot := angleRateDerivation(&c, &m.constants, p, q, r, atm.Qbar)
	n := accels(uvw, uvwDot, &o, p, q, r)

	stateDot := State{
		NPos: posDot[0], EPos: posDot[1], Altitude: posDot[2],
		Phi: phiDot, Theta: thetaDot, Psi: psiDot,
		Velocity: velocityDot, Alpha: alphaDot, Beta: betaDot,
		P: pDot, Q: qDot, R: rDot,
	}
	extend := StateExtend{Nx: n[0], Ny: n[1], Nz: n[2], Mach: atm.Mach, Qbar: atm.Qbar, Ps: atm.Ps}
	return stateDot, extend, nil
}

// Delete releases model-owned resources. Failures are logged, not returned;
// there is nothing the caller can do about them at teardown.
func (m *MechanicalModel) Delete() {
	if err := m.deleteFn(); err != nil {
		m.logger.Log("level", "warning", "subsys", "aeromodel", "err", err)
	}
}
