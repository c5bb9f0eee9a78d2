package sixdof

import "fmt"

// State is the 12-component rigid-body state of the aircraft. The field order
// is part of the contract with the aerodynamic model and must never change:
// npos, epos, altitude, phi, theta, psi, velocity, alpha, beta, p, q, r.
// Positions and altitude in ft, Euler and aero angles in rad, velocity in
// ft/s, body rates in rad/s.
type State struct {
	NPos     float64
	EPos     float64
	Altitude float64
	Phi      float64
	Theta    float64
	Psi      float64
	Velocity float64
	Alpha    float64
	Beta     float64
	P        float64
	Q        float64
	R        float64
}

// StateFromSlice builds a State from its flat representation.
func StateFromSlice(v []float64) State {
	return State{
		NPos: v[0], EPos: v[1], Altitude: v[2],
		Phi: v[3], Theta: v[4], Psi: v[5],
		Velocity: v[6], Alpha: v[7], Beta: v[8],
		P: v[9], Q: v[10], R: v[11],
	}
}

// Slice returns the flat representation of s, always 12 elements long.
func (s State) Slice() []float64 {
	return []float64{
		s.NPos, s.EPos, s.Altitude,
		s.Phi, s.Theta, s.Psi,
		s.Velocity, s.Alpha, s.Beta,
		s.P, s.Q, s.R,
	}
}

// Array returns the fixed-size layout shared with the aerodynamic model.
func (s State) Array() [12]float64 {
	var a [12]float64
	copy(a[:], s.Slice())
	return a
}

func (s State) String() string {
	return fmt.Sprintf(
		"npos: %.2f ft, epos: %.2f ft, altitude: %.2f ft\n"+
			"phi: %.4f rad, theta: %.4f rad, psi: %.4f rad\n"+
			"velocity: %.4f ft/s, alpha: %.4f rad, beta: %.4f rad\n"+
			"p: %.4f rad/s, q: %.4f rad/s, r: %.4f rad/s",
		s.NPos, s.EPos, s.Altitude, s.Phi, s.Theta, s.Psi,
		s.Velocity, s.Alpha, s.Beta, s.P, s.Q, s.R)
}

// Control is the four-component control vector: thrust (lb), elevator,
// aileron and rudder deflections (deg).
type Control struct {
	Thrust   float64
	Elevator float64
	Aileron  float64
	Rudder   float64
}

// DefaultControl is a flyable starting control: idle-ish thrust, all surfaces
// neutral.
func DefaultControl() Control {
	return Control{Thrust: 1000}
}

// ControlFromSlice builds a Control from its flat representation.
func ControlFromSlice(v []float64) Control {
	return Control{Thrust: v[0], Elevator: v[1], Aileron: v[2], Rudder: v[3]}
}

// Slice returns the flat representation of c, always 4 elements long.
func (c Control) Slice() []float64 {
	return []float64{c.Thrust, c.Elevator, c.Aileron, c.Rudder}
}

// Array returns the fixed-size layout shared with the aerodynamic model.
func (c Control) Array() [4]float64 {
	return [4]float64{c.Thrust, c.Elevator, c.Aileron, c.Rudder}
}

func (c Control) String() string {
	return fmt.Sprintf("T: %.2f lbs, ele: %.4f deg, ail: %.4f deg, rud: %.4f deg",
		c.Thrust, c.Elevator, c.Aileron, c.Rudder)
}

// StateExtend carries the auxiliary outputs of one step: load factors (g),
// Mach number, dynamic pressure and static pressure (lb/ft^2).
type StateExtend struct {
	Nx   float64
	Ny   float64
	Nz   float64
	Mach float64
	Qbar float64
	Ps   float64
}

// StateExtendFromSlice builds a StateExtend from its flat representation.
func StateExtendFromSlice(v []float64) StateExtend {
	return StateExtend{Nx: v[0], Ny: v[1], Nz: v[2], Mach: v[3], Qbar: v[4], Ps: v[5]}
}

// Slice returns the flat representation of e, always 6 elements long.
func (e StateExtend) Slice() []float64 {
	return []float64{e.Nx, e.Ny, e.Nz, e.Mach, e.Qbar, e.Ps}
}

func (e StateExtend) String() string {
	return fmt.Sprintf("nx: %.4f g, ny: %.4f g, nz: %.4f g\nmach: %.4f, qbar: %.2f lb/ft^2, ps: %.2f lb/ft^2",
		e.Nx, e.Ny, e.Nz, e.Mach, e.Qbar, e.Ps)
}

// C is the aerodynamic coefficient vector returned by the model: body-axis
// force coefficients (x forward, z down), then pitch, side force, yaw and
// roll moment coefficients.
type C struct {
	CX float64
	CZ float64
	CM float64
	CY float64
	CN float64
	CL float64
}

// CFromArray builds a C from the layout shared with the aerodynamic model.
func CFromArray(a [6]float64) C {
	return C{CX: a[0], CZ: a[1], CM: a[2], CY: a[3], CN: a[4], CL: a[5]}
}

// Array returns the fixed-size layout shared with the aerodynamic model.
func (c C) Array() [6]float64 {
	return [6]float64{c.CX, c.CZ, c.CM, c.CY, c.CN, c.CL}
}

// PlaneConstants are the airframe constants supplied by the aerodynamic
// model: mass (slug), span b (ft), planform area S (ft^2), mean aerodynamic
// chord (ft), reference and actual CG position as fractions of the chord,
// engine angular momentum along the roll axis, and inertias (slug-ft^2).
type PlaneConstants struct {
	M    float64
	B    float64
	S    float64
	CBar float64
	XcgR float64
	Xcg  float64
	HEng float64
	Jy   float64
	Jxz  float64
	Jz   float64
	Jx   float64
}

func (p PlaneConstants) String() string {
	return fmt.Sprintf("m: %v(slugs), b: %v(ft), s: %v(ft^2)\nc_bar: %v(ft), x_cg_r: %v, x_cg: %v, h_eng: %v\nj_y: %v(slug-ft^2), j_xz: %v(slug-ft^2), j_z: %v(slug-ft^2), j_x: %v(slug-ft^2)",
		p.M, p.B, p.S, p.CBar, p.XcgR, p.Xcg, p.HEng, p.Jy, p.Jxz, p.Jz, p.Jx)
}

// ControlLimit is the command, rate and envelope limit set supplied by the
// aerodynamic model. Command and angle limits in the units of the axis they
// bound (lb or deg); rate limits per second.
type ControlLimit struct {
	ThrustCmdTop     float64
	ThrustCmdBottom  float64
	ThrustRateLimit  float64
	EleCmdTop        float64
	EleCmdBottom     float64
	EleRateLimit     float64
	AilCmdTop        float64
	AilCmdBottom     float64
	AilRateLimit     float64
	RudCmdTop        float64
	RudCmdBottom     float64
	RudRateLimit     float64
	AlphaLimitTop    float64
	AlphaLimitBottom float64
	BetaLimitTop     float64
	BetaLimitBottom  float64
}

func (l ControlLimit) String() string {
	return fmt.Sprintf(
		"Thrust: cmd: (%.2f, %.2f), rate: %.2f\n"+
			"Elevator: cmd: (%.2f, %.2f), rate: %.2f\n"+
			"Aileron: cmd: (%.2f, %.2f), rate: %.2f\n"+
			"Rudder: cmd: (%.2f, %.2f), rate: %.2f\n"+
			"Alpha: limit: (%.2f, %.2f)\nBeta: limit: (%.2f, %.2f)",
		l.ThrustCmdTop, l.ThrustCmdBottom, l.ThrustRateLimit,
		l.EleCmdTop, l.EleCmdBottom, l.EleRateLimit,
		l.AilCmdTop, l.AilCmdBottom, l.AilRateLimit,
		l.RudCmdTop, l.RudCmdBottom, l.RudRateLimit,
		l.AlphaLimitTop, l.AlphaLimitBottom, l.BetaLimitTop, l.BetaLimitBottom)
}

// CoreInit is the starting condition of a plane block.
type CoreInit struct {
	State   State
	Control Control
}

// CoreOutput is the result of one simulation step.
type CoreOutput struct {
	State       State
	Control     Control
	StateExtend StateExtend
}

func (o CoreOutput) String() string {
	return fmt.Sprintf("State:\n%v\nControl:\n%v\nExtend:\n%v", o.State, o.Control, o.StateExtend)
}

// ModelInput is what the aerodynamic model consumes on every coefficient
// lookup: the (possibly envelope-clamped) state, the effective control and
// the leading-edge flap deflection in degrees.
type ModelInput struct {
	State   State
	Control Control
	LEF     float64
}

// FlightCondition selects the steady-state family the trim solver targets.
type FlightCondition uint8

const (
	// WingsLevel is steady level flight. The zero value.
	WingsLevel FlightCondition = iota
	// Turning trims at a 1 deg heading angle with the heading-rate residual
	// weighted in the cost.
	Turning
	// PullUp is a steady pull-up at 1 deg/s of pitch rate.
	PullUp
	// Roll trims like WingsLevel; the roll itself is commanded afterwards.
	Roll
)

func (fc FlightCondition) String() string {
	switch fc {
	case WingsLevel:
		return "wings level"
	case Turning:
		return "turning"
	case PullUp:
		return "pull up"
	case Roll:
		return "roll"
	default:
		return fmt.Sprintf("FlightCondition(%d)", uint8(fc))
	}
}

// ParseFlightCondition maps a scenario-file string to a FlightCondition.
func ParseFlightCondition(s string) (FlightCondition, error) {
	switch s {
	case "", "wings-level", "wings level":
		return WingsLevel, nil
	case "turning":
		return Turning, nil
	case "pull-up", "pull up":
		return PullUp, nil
	case "roll":
		return Roll, nil
	default:
		return WingsLevel, fmt.Errorf("unknown flight condition %q", s)
	}
}
