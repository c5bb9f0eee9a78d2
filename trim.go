package sixdof

import (
	"fmt"

	kitlog "github.com/go-kit/kit/log"
)

// TrimInit is the free-variable starting guess of the trim search: a control
// and an angle of attack (rad).
type TrimInit struct {
	Control Control
	Alpha   float64
}

// DefaultTrimInit is a starting guess that converges for most subsonic
// conditions of the reference airframe.
func DefaultTrimInit() TrimInit {
	return TrimInit{
		Control: Control{Thrust: 5000, Elevator: -0.09, Aileron: 0.01, Rudder: -0.01},
		Alpha:   8.49 * deg2rad,
	}
}

func (i TrimInit) String() string {
	return fmt.Sprintf("alpha: %.2f\ncontrol:\n%v", i.Alpha, i.Control)
}

// slice flattens the guess into the optimizer's free vector.
func (i TrimInit) slice() []float64 {
	return append(i.Control.Slice(), i.Alpha)
}

// TrimTarget is the flight condition to trim at.
type TrimTarget struct {
	Altitude float64
	Velocity float64
	NPos     float64
	EPos     float64
}

func (t TrimTarget) String() string {
	return fmt.Sprintf("altitude: %.2f, velocity: %.2f", t.Altitude, t.Velocity)
}

// TrimOutput is a converged (or cap-exhausted; inspect Result.FVal)
// steady-state condition.
type TrimOutput struct {
	State       State
	Control     Control
	StateExtend StateExtend
	Result      NelderMeadResult
}

func (o TrimOutput) String() string {
	return fmt.Sprintf("state:\n%v\ncontrol:\n%v\nextend:\n%v\nnelder_mead_result:\n%v",
		o.State, o.Control, o.StateExtend, o.Result)
}

// CoreInit converts the trim point into a plane-block starting condition.
func (o TrimOutput) CoreInit() CoreInit {
	return CoreInit{State: o.State, Control: o.Control}
}

// trimGlobals are the fixed parameters of one trim cost function.
type trimGlobals struct {
	psi         float64 // deg of heading angle target
	q           float64 // deg/s of pitch rate target
	thetaWeight float64
	psiWeight   float64
	altitude    float64
	velocity    float64
}

// Trim finds the control/attitude fixed point of the mechanical model at the
// target altitude and velocity, by minimizing the weighted squared state
// derivatives over (thrust, elevator, aileron, rudder, alpha) with
// Nelder-Mead.
func Trim(model *MechanicalModel, target TrimTarget, init *TrimInit, limit ControlLimit, fc FlightCondition, opts *NelderMeadOptions, logger kitlog.Logger) (*TrimOutput, error) {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	guess := DefaultTrimInit()
	if init != nil {
		guess = *init
	}

	globals := trimGlobals{
		thetaWeight: 10,
		altitude:    target.Altitude,
		velocity:    target.Velocity,
	}
	switch fc {
	case Turning:
		globals.psi = 1
		globals.psiWeight = 1
	case PullUp:
		globals.q = 1
		globals.thetaWeight = 1
	case WingsLevel, Roll:
	}

	logger.Log("level", "info", "subsys", "trim", "target", target.String(), "condition", fc.String())

	// The cost closure keeps its last evaluated state and auxiliary outputs,
	// and this is what seeds the returned trim condition (the reference
	// implementation does the same). The last evaluated point is not
	// necessarily the best vertex res.X, from which the returned control is
	// taken.
	lastEval := make([]float64, 18)
	cost := func(x []float64) (float64, error) {
		return trimCost(x, model, limit, &globals, lastEval)
	}

	res, err := NelderMead(cost, guess.slice(), opts)
	if err != nil {
		return nil, err
	}
	logger.Log("level", "info", "subsys", "trim", "fval", res.FVal, "iter", res.Iter, "fun_evals", res.FunEvals)

	state := StateFromSlice(lastEval[:12])
	state.NPos = target.NPos
	state.EPos = target.EPos

	return &TrimOutput{
		State:       state,
		Control:     ControlFromSlice(res.X[:4]),
		StateExtend: StateExtendFromSlice(lastEval[12:18]),
		Result:      *res,
	}, nil
}

// trimStateWeights penalize the squared state derivatives: altitude and
// attitude rates dominate, positions are free.
var trimStateWeights = []float64{0, 0, 5, 10, 10, 0, 2, 10, 10, 10, 10, 10}

func trimCost(x []float64, model *MechanicalModel, limit ControlLimit, g *trimGlobals, lastEval []float64) (float64, error) {
	thrust := clamp(x[0], limit.ThrustCmdBottom, limit.ThrustCmdTop)
	elevator := clamp(x[1], limit.EleCmdBottom, limit.EleCmdTop)
	aileron := clamp(x[2], limit.AilCmdBottom, limit.AilCmdTop)
	rudder := clamp(x[3], limit.RudCmdBottom, limit.RudCmdTop)
	alpha := clamp(x[4], limit.AlphaLimitBottom*deg2rad, limit.AlphaLimitTop*deg2rad)

	state := State{
		Altitude: g.altitude,
		Theta:    alpha,
		Psi:      g.psi * deg2rad,
		Velocity: g.velocity,
		Alpha:    alpha,
		Q:        g.q * deg2rad,
	}
	control := Control{Thrust: thrust, Elevator: elevator, Aileron: aileron, Rudder: rudder}

	weights := append([]float64(nil), trimStateWeights...)
	weights[4] = g.thetaWeight
	weights[5] = g.psiWeight

	dLEF := GetLEF(g.altitude, g.velocity, alpha)
	stateDot, extend, err := model.Trim(&ModelInput{State: state, Control: control, LEF: dLEF})
	if err != nil {
		return 0, err
	}

	copy(lastEval[:12], state.Slice())
	copy(lastEval[12:18], extend.Slice())

	return WeightedSquareSum(weights, stateDot.Slice()), nil
}
