package sixdof_test

import (
	"math"
	"testing"

	"github.com/gonum/floats"
	"github.com/openfdm/sixdof"
	"github.com/openfdm/sixdof/models/linear"
)

func newMech(t *testing.T) *sixdof.MechanicalModel {
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
	if err := mech.Init(); err != nil {
		t.Fatal(err)
	}
	return mech
}

func TestTrimAndStepEntryPointsAgree(t *testing.T) {
	mech := newMech(t)
	in := sixdof.ModelInput{
		State: sixdof.State{
			Altitude: 15000, Theta: 0.08, Velocity: 500,
			Alpha: 0.08, Q: 0.01,
		},
		Control: sixdof.Control{Thrust: 2100, Elevator: -2.2},
		LEF:     sixdof.GetLEF(15000, 500, 0.08),
	}
	trimDot, trimExt, err := mech.Trim(&in)
	if err != nil {
		t.Fatal(err)
	}
	stepDot, stepExt, err := mech.Step(&in)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.Equal(trimDot.Slice(), stepDot.Slice()) {
		t.Fatalf("trim and step disagree:\n%v\n%v", trimDot, stepDot)
	}
	if !floats.Equal(trimExt.Slice(), stepExt.Slice()) {
		t.Fatalf("trim and step extend disagree:\n%v\n%v", trimExt, stepExt)
	}
}

func TestLevelFlightNavigation(t *testing.T) {
	mech := newMech(t)
	in := sixdof.ModelInput{
		State:   sixdof.State{Altitude: 15000, Velocity: 500},
		Control: sixdof.Control{Thrust: 2100},
	}
	dot, ext, err := mech.Trim(&in)
	if err != nil {
		t.Fatal(err)
	}
	// Zero attitude, zero aero angles: all velocity is north, no climb.
	if !floats.EqualWithinAbs(dot.NPos, 500, 1e-9) {
		t.Fatalf("npos rate: %f", dot.NPos)
	}
	if !floats.EqualWithinAbs(dot.EPos, 0, 1e-9) {
		t.Fatalf("epos rate: %f", dot.EPos)
	}
	if !floats.EqualWithinAbs(dot.Altitude, 0, 1e-9) {
		t.Fatalf("altitude rate: %f", dot.Altitude)
	}
	// Zero rates, zero bank: Euler rates vanish.
	if dot.Phi != 0 || dot.Theta != 0 || dot.Psi != 0 {
		t.Fatalf("euler rates: %f %f %f", dot.Phi, dot.Theta, dot.Psi)
	}
	atm := sixdof.Atmosphere(15000, 500)
	if ext.Mach != atm.Mach || ext.Qbar != atm.Qbar || ext.Ps != atm.Ps {
		t.Fatal("auxiliary outputs must carry the atmosphere at the state")
	}
}

func TestPitchAttitudeCancelsAlphaInClimbRate(t *testing.T) {
	mech := newMech(t)
	// theta == alpha means the flight path is level regardless of alpha.
	in := sixdof.ModelInput{
		State:   sixdof.State{Altitude: 15000, Theta: 0.1, Velocity: 500, Alpha: 0.1},
		Control: sixdof.Control{Thrust: 2100},
	}
	dot, _, err := mech.Trim(&in)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(dot.Altitude, 0, 1e-9) {
		t.Fatalf("climb rate with theta=alpha: %f", dot.Altitude)
	}
}

func TestVelocityFloorGuardsDivisions(t *testing.T) {
	mech := newMech(t)
	in := sixdof.ModelInput{
		State:   sixdof.State{Altitude: 1000},
		Control: sixdof.DefaultControl(),
	}
	dot, _, err := mech.Trim(&in)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range dot.Slice() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("derivative %d not finite at zero velocity: %f", i, v)
		}
	}
}

func TestWingsLevelLoadFactorNearOneG(t *testing.T) {
	mech := newMech(t)
	in := sixdof.ModelInput{
		State:   sixdof.State{Altitude: 15000, Theta: 0.08, Velocity: 500, Alpha: 0.08},
		Control: sixdof.Control{Thrust: 2100},
	}
	_, ext, err := mech.Trim(&in)
	if err != nil {
		t.Fatal(err)
	}
	// Wings level near 1 g: nz is the lift in g, so it sits near 1 when the
	// model carries the weight.
	if ext.Nz < 0.5 || ext.Nz > 1.5 {
		t.Fatalf("implausible load factor %f", ext.Nz)
	}
}
