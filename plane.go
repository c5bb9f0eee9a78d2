package sixdof

import (
	"math"

	kitlog "github.com/go-kit/kit/log"
	"github.com/openfdm/sixdof/integrator"
)

// planeDynamics feeds the vector solver one airframe step. Captures are
// explicit: the model reference and the envelope limits (rad). The control
// and LEF deflection arrive through the solver's exogenous input so they are
// held constant across sub-steps. A model failure inside a sub-step is
// latched into err and surfaced after the solve.
type planeDynamics struct {
	model       *MechanicalModel
	alphaTop    float64
	alphaBottom float64
	betaTop     float64
	betaBottom  float64
	err         error
}

func (d *planeDynamics) eval(t float64, x, u []float64) []float64 {
	if d.err != nil {
		return make([]float64, len(x))
	}
	state := StateFromSlice(x)
	state.Alpha = clamp(state.Alpha, d.alphaBottom, d.alphaTop)
	state.Beta = clamp(state.Beta, d.betaBottom, d.betaTop)

	in := ModelInput{State: state, Control: ControlFromSlice(u[:4]), LEF: u[4]}
	dot, _, err := d.model.Step(&in)
	if err != nil {
		d.err = err
		return make([]float64, len(x))
	}
	return dot.Slice()
}

// PlaneBlock is the top-level composer of one aircraft: the control actuator
// bank, the LEF controller, the mechanical model and the state integrator,
// advanced together one simulation step per Update.
type PlaneBlock struct {
	name       string
	solver     integrator.Solver
	controller *ControllerBlock
	lef        *LEFController
	model      *MechanicalModel
	aero       *AerodynamicModel

	state  []float64
	extend StateExtend

	started bool
	t0      float64

	alphaTop    float64
	alphaBottom float64
	betaTop     float64
	betaBottom  float64

	logger kitlog.Logger
}

// NewPlaneBlock binds the aerodynamic model, runs its one-time init, and
// seeds every integrator state from init. The solver is shared by reference
// between the actuators, the LEF loop and the airframe so that everything
// advances with one step size.
func NewPlaneBlock(name string, solver integrator.Solver, model *AerodynamicModel, init CoreInit, deflection [3]float64, limit ControlLimit) (*PlaneBlock, error) {
	if err := model.bind(); err != nil {
		return nil, err
	}
	mech, err := NewMechanicalModel(model)
	if err != nil {
		model.release()
		return nil, err
	}
	if err := mech.Init(); err != nil {
		model.release()
		return nil, err
	}

	p := &PlaneBlock{
		name:        name,
		solver:      solver,
		controller:  NewControllerBlock(solver, init.Control, deflection, limit),
		lef:         NewLEFController(solver, init.State.Altitude, init.State.Velocity, init.State.Alpha),
		model:       mech,
		aero:        model,
		state:       init.State.Slice(),
		alphaTop:    limit.AlphaLimitTop * deg2rad,
		alphaBottom: limit.AlphaLimitBottom * deg2rad,
		betaTop:     limit.BetaLimitTop * deg2rad,
		betaBottom:  limit.BetaLimitBottom * deg2rad,
		logger:      model.logger,
	}
	p.logger.Log("level", "info", "subsys", "core", "plane", name, "model", model.Info().Name, "status", "created")
	return p, nil
}

// Update advances the aircraft by one step at simulation time t. The first t
// seen becomes the time reference; elapsed time is floored at 1 ms.
func (p *PlaneBlock) Update(cmd Control, t float64) (CoreOutput, error) {
	if !p.started {
		p.started = true
		p.t0 = t
		p.logger.Log("level", "debug", "subsys", "core", "plane", p.name, "start", t)
	}
	t = math.Max(t-p.t0, 1e-3)

	ctrl := p.controller.Update(cmd, t)

	altitude, velocity, alpha := p.state[2], p.state[6], p.state[7]
	dLEF := p.lef.Update(altitude, velocity, alpha, t)

	// Envelope clamp on a working copy only; the integrator state itself may
	// leave the envelope transiently.
	working := StateFromSlice(p.state)
	working.Alpha = clamp(working.Alpha, p.alphaBottom, p.alphaTop)
	working.Beta = clamp(working.Beta, p.betaBottom, p.betaTop)

	_, extend, err := p.model.Step(&ModelInput{State: working, Control: ctrl, LEF: dLEF})
	if err != nil {
		return CoreOutput{}, err
	}

	dyn := &planeDynamics{
		model:       p.model,
		alphaTop:    p.alphaTop,
		alphaBottom: p.alphaBottom,
		betaTop:     p.betaTop,
		betaBottom:  p.betaBottom,
	}
	input := append(ctrl.Slice(), dLEF)
	next := p.solver.Vector(dyn.eval, t, p.state, input)
	if dyn.err != nil {
		return CoreOutput{}, dyn.err
	}

	positions := p.controller.Positions()
	if anyNaN(next) || anyNaN(positions.Slice()) || anyNaN(extend.Slice()) {
		return CoreOutput{}, ErrNaN
	}

	p.state = next
	p.extend = extend

	return CoreOutput{State: StateFromSlice(p.state), Control: ctrl, StateExtend: extend}, nil
}

// State returns the last consistent output without advancing anything.
func (p *PlaneBlock) State() CoreOutput {
	return CoreOutput{
		State:       StateFromSlice(p.state),
		Control:     p.controller.Positions(),
		StateExtend: p.extend,
	}
}

// Reset restores the block to a starting condition.
func (p *PlaneBlock) Reset(init CoreInit) {
	p.controller.Reset(init.Control)
	p.lef.Reset(init.State.Altitude, init.State.Velocity, init.State.Alpha)
	p.state = init.State.Slice()
	p.extend = StateExtend{}
	p.started = false
}

// DeleteModel releases the aerodynamic model resources and unbinds the
// block from the model identity.
func (p *PlaneBlock) DeleteModel() {
	p.model.Delete()
	p.aero.release()
}
