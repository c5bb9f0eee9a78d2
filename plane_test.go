package sixdof_test

import (
	"math"
	"testing"

	"github.com/openfdm/sixdof"
	"github.com/openfdm/sixdof/integrator"
	"github.com/openfdm/sixdof/models/linear"
)

// newTrimmedBlock trims the linear model at 15000 ft, 500 ft/s and builds a
// plane block seeded at the trim point.
func newTrimmedBlock(t *testing.T, deflection [3]float64) (*sixdof.PlaneBlock, *sixdof.TrimOutput, *sixdof.AerodynamicModel) {
	t.Helper()
	model, err := linear.Model()
	if err != nil {
		t.Fatal(err)
	}
	if err := model.Install(nil); err != nil {
		t.Fatal(err)
	}
	mech, err := sixdof.NewMechanicalModel(model)
	if err != nil {
		t.Fatal(err)
	}
	trim, err := sixdof.Trim(mech, sixdof.TrimTarget{Altitude: 15000, Velocity: 500}, nil, linear.CtrlLimits(), sixdof.WingsLevel, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if trim.Result.FVal > 1e-8 {
		t.Fatalf("trim did not converge: %g", trim.Result.FVal)
	}

	solver := integrator.NewRK4(0.01)
	block, err := sixdof.NewPlaneBlock("test", solver, model, trim.CoreInit(), deflection, linear.CtrlLimits())
	if err != nil {
		t.Fatal(err)
	}
	return block, trim, model
}

// TestFreeFlightHoldsTrim flies the trimmed condition for 15 s with constant
// control and checks the aircraft stays on condition.
func TestFreeFlightHoldsTrim(t *testing.T) {
	block, trim, _ := newTrimmedBlock(t, [3]float64{0, 0, 0})

	const dt = 0.01
	var out sixdof.CoreOutput
	for i := 0; i <= 1500; i++ {
		var err error
		out, err = block.Update(trim.Control, float64(i)*dt)
		if err != nil {
			t.Fatalf("update at step %d: %s", i, err)
		}
		if math.Abs(out.State.Phi) > 0.01 {
			t.Fatalf("bank diverged to %f rad at step %d", out.State.Phi, i)
		}
		if math.Abs(out.State.Theta-trim.State.Theta) > 0.01 {
			t.Fatalf("pitch diverged to %f rad at step %d", out.State.Theta, i)
		}
		if math.Abs(out.State.Psi) > 0.01 {
			t.Fatalf("heading diverged to %f rad at step %d", out.State.Psi, i)
		}
	}
	if drift := math.Abs(out.State.Altitude - 15000); drift > 50 {
		t.Fatalf("altitude drifted %f ft over 15 s", drift)
	}
	if drift := math.Abs(out.State.Velocity - 500); drift > 5 {
		t.Fatalf("velocity drifted %f ft/s over 15 s", drift)
	}
}

// TestElevatorStepResponse applies a nose-up elevator step at t=1 s and
// checks the short-period response: pitch rate peaks early, the oscillation
// decays through zero, and the aircraft climbs.
func TestElevatorStepResponse(t *testing.T) {
	block, trim, _ := newTrimmedBlock(t, [3]float64{0, 0, 0})

	const dt = 0.01
	var (
		qPeak, qPeakT, qMin float64
		altAt1              float64
		samples             []float64
	)
	for i := 0; i <= 800; i++ {
		tNow := float64(i) * dt
		cmd := trim.Control
		cmd.Elevator = sixdof.StepInput(trim.Control.Elevator, trim.Control.Elevator-5, 1.0, tNow)
		out, err := block.Update(cmd, tNow)
		if err != nil {
			t.Fatalf("update at t=%.2f: %s", tNow, err)
		}
		if tNow >= 1 {
			if out.State.Q > qPeak {
				qPeak, qPeakT = out.State.Q, tNow
			}
			if out.State.Q < qMin {
				qMin = out.State.Q
			}
		}
		if i == 100 {
			altAt1 = out.State.Altitude
		}
		if i >= 200 && i%50 == 0 {
			samples = append(samples, out.State.Altitude)
		}
	}

	if qPeak <= 0 {
		t.Fatal("nose-up step must produce a positive pitch rate")
	}
	if qPeakT <= 1 || qPeakT >= 3 {
		t.Fatalf("pitch rate peak at t=%.2f, want within (1, 3)", qPeakT)
	}
	if qMin >= 0 {
		t.Fatal("short-period oscillation must carry q through zero")
	}
	for i := 1; i < len(samples); i++ {
		if samples[i] <= samples[i-1] {
			t.Fatalf("altitude not climbing between samples %d and %d: %f -> %f", i-1, i, samples[i-1], samples[i])
		}
	}
	if samples[len(samples)-1] < altAt1+100 {
		t.Fatalf("no meaningful climb: %f -> %f", altAt1, samples[len(samples)-1])
	}
}

// TestScriptedDeflectionIsInert documents at block level that a non-zero
// scripted rudder amplitude does not change the trajectory (the amplitude
// gate enables the pulse only for essentially-zero amplitudes).
func TestScriptedDeflectionIsInert(t *testing.T) {
	quiet, trim, _ := newTrimmedBlock(t, [3]float64{0, 0, 0})
	pulsed, _, _ := newTrimmedBlock(t, [3]float64{0, 0, 1})

	const dt = 0.01
	for i := 0; i <= 600; i++ {
		tNow := float64(i) * dt
		a, err := quiet.Update(trim.Control, tNow)
		if err != nil {
			t.Fatal(err)
		}
		b, err := pulsed.Update(trim.Control, tNow)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(a.State.Beta-b.State.Beta) > 1e-9 {
			t.Fatalf("t=%.2f: scripted deflection changed beta: %g vs %g", tNow, a.State.Beta, b.State.Beta)
		}
	}
}

func TestNaNCommandFailsStep(t *testing.T) {
	block, trim, _ := newTrimmedBlock(t, [3]float64{0, 0, 0})

	if _, err := block.Update(trim.Control, 0); err != nil {
		t.Fatal(err)
	}
	cmd := trim.Control
	cmd.Thrust = math.NaN()
	_, err := block.Update(cmd, 0.01)
	if err != sixdof.ErrNaN {
		t.Fatalf("want ErrNaN, got %v", err)
	}
}

func TestStateDoesNotAdvance(t *testing.T) {
	block, trim, _ := newTrimmedBlock(t, [3]float64{0, 0, 0})

	out, err := block.Update(trim.Control, 0)
	if err != nil {
		t.Fatal(err)
	}
	s1 := block.State()
	s2 := block.State()
	if s1.State != out.State || s2.State != out.State {
		t.Fatal("State must return the last consistent output")
	}
}

func TestResetRestoresInit(t *testing.T) {
	block, trim, _ := newTrimmedBlock(t, [3]float64{0, 0, 0})

	for i := 0; i <= 100; i++ {
		cmd := trim.Control
		cmd.Elevator += 3
		if _, err := block.Update(cmd, float64(i)*0.01); err != nil {
			t.Fatal(err)
		}
	}
	block.Reset(trim.CoreInit())
	got := block.State()
	if got.State != trim.State {
		t.Fatalf("state after reset:\n%v\nwant:\n%v", got.State, trim.State)
	}
	if got.Control != trim.Control {
		t.Fatalf("control after reset: %v", got.Control)
	}
}

func TestModelBoundToOneBlock(t *testing.T) {
	block, trim, model := newTrimmedBlock(t, [3]float64{0, 0, 0})

	solver := integrator.NewRK4(0.01)
	if _, err := sixdof.NewPlaneBlock("second", solver, model, trim.CoreInit(), [3]float64{0, 0, 0}, linear.CtrlLimits()); err == nil {
		t.Fatal("binding a second block to the same model must fail")
	}
	block.DeleteModel()
	second, err := sixdof.NewPlaneBlock("second", solver, model, trim.CoreInit(), [3]float64{0, 0, 0}, linear.CtrlLimits())
	if err != nil {
		t.Fatalf("rebinding after release: %s", err)
	}
	second.DeleteModel()
}
