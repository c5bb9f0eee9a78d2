package sixdof_test

import (
	"math"
	"testing"

	"github.com/openfdm/sixdof"
	"github.com/openfdm/sixdof/models/linear"
)

func trimAt(t *testing.T, fc sixdof.FlightCondition) (*sixdof.MechanicalModel, *sixdof.TrimOutput) {
	t.Helper()
	mech := newMech(t)
	target := sixdof.TrimTarget{Altitude: 15000, Velocity: 500}
	out, err := sixdof.Trim(mech, target, nil, linear.CtrlLimits(), fc, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return mech, out
}

func TestTrimWingsLevelConverges(t *testing.T) {
	_, out := trimAt(t, sixdof.WingsLevel)

	if out.Result.FVal > 1e-8 {
		t.Fatalf("trim did not converge: fval=%g after %d iter", out.Result.FVal, out.Result.Iter)
	}
	if out.State.Altitude != 15000 || out.State.Velocity != 500 {
		t.Fatalf("trim state not at target: %v", out.State)
	}
	if out.State.Alpha < 0.03 || out.State.Alpha > 0.15 {
		t.Fatalf("implausible trim alpha %f rad", out.State.Alpha)
	}
	if out.State.Theta != out.State.Alpha {
		t.Fatal("wings-level trim must have theta equal to alpha")
	}
	if out.Control.Thrust < 1000 || out.Control.Thrust > 5000 {
		t.Fatalf("implausible trim thrust %f lb", out.Control.Thrust)
	}
	if math.Abs(out.Control.Aileron) > 0.5 || math.Abs(out.Control.Rudder) > 0.5 {
		t.Fatalf("lateral controls not near neutral: %v", out.Control)
	}
}

// TestTrimFixedPoint re-invokes the mechanical model at the converged trim
// condition and checks that the accelerations actually vanish.
func TestTrimFixedPoint(t *testing.T) {
	mech, out := trimAt(t, sixdof.WingsLevel)

	in := sixdof.ModelInput{
		State:   out.State,
		Control: out.Control,
		LEF:     sixdof.GetLEF(out.State.Altitude, out.State.Velocity, out.State.Alpha),
	}
	dot, _, err := mech.Trim(&in)
	if err != nil {
		t.Fatal(err)
	}

	residuals := map[string]float64{
		"altitude": dot.Altitude,
		"phi":      dot.Phi,
		"theta":    dot.Theta,
		"velocity": dot.Velocity,
		"alpha":    dot.Alpha,
		"beta":     dot.Beta,
		"p":        dot.P,
		"q":        dot.Q,
		"r":        dot.R,
	}
	for name, v := range residuals {
		if math.Abs(v) > 1e-3 {
			t.Errorf("residual %s rate %g at the trim point", name, v)
		}
	}
}

func TestTrimTargetOverridesPosition(t *testing.T) {
	mech := newMech(t)
	target := sixdof.TrimTarget{Altitude: 15000, Velocity: 500, NPos: 1200, EPos: -300}
	out, err := sixdof.Trim(mech, target, nil, linear.CtrlLimits(), sixdof.WingsLevel, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.State.NPos != 1200 || out.State.EPos != -300 {
		t.Fatalf("requested position not applied: %v", out.State)
	}
}

func TestTrimTurningCondition(t *testing.T) {
	_, out := trimAt(t, sixdof.Turning)
	if math.Abs(out.State.Psi-1*math.Pi/180) > 1e-12 {
		t.Fatalf("turning trim must target 1 deg of heading: psi=%f", out.State.Psi)
	}
}

func TestTrimPullUpCondition(t *testing.T) {
	_, out := trimAt(t, sixdof.PullUp)
	if math.Abs(out.State.Q-1*math.Pi/180) > 1e-12 {
		t.Fatalf("pull-up trim must target 1 deg/s of pitch rate: q=%f", out.State.Q)
	}
}

func TestTrimCustomInit(t *testing.T) {
	mech := newMech(t)
	init := sixdof.TrimInit{
		Control: sixdof.Control{Thrust: 3000, Elevator: -1, Aileron: 0, Rudder: 0},
		Alpha:   5 * math.Pi / 180,
	}
	out, err := sixdof.Trim(mech, sixdof.TrimTarget{Altitude: 15000, Velocity: 500}, &init, linear.CtrlLimits(), sixdof.WingsLevel, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Result.FVal > 1e-8 {
		t.Fatalf("trim from custom init did not converge: fval=%g", out.Result.FVal)
	}
}

func TestTrimOutputSeedsCoreInit(t *testing.T) {
	_, out := trimAt(t, sixdof.WingsLevel)
	init := out.CoreInit()
	if init.State != out.State || init.Control != out.Control {
		t.Fatal("core init must carry the trim state and control")
	}
}
