package sixdof

import (
	"math"

	"github.com/openfdm/sixdof/integrator"
)

// Actuator gains: thrust responds like the engine lag, the aerodynamic
// surfaces like the 20.2 rad/s servo of the reference airframe.
const (
	thrustGain  = 1.0
	surfaceGain = 20.2
)

// ControllerBlock is the bank of four control actuators (thrust, elevator,
// aileron, rudder) plus the scripted-deflection disturbance injection on the
// three aerodynamic axes.
type ControllerBlock struct {
	actuators  [4]*Actuator
	deflection [3]float64
}

// NewControllerBlock builds the bank seeded at init and saturated per limit.
// deflection is the scripted pulse amplitude triple (ele, ail, rud) in deg.
func NewControllerBlock(solver integrator.Solver, init Control, deflection [3]float64, limit ControlLimit) *ControllerBlock {
	return &ControllerBlock{
		actuators: [4]*Actuator{
			NewActuator(solver, init.Thrust, limit.ThrustCmdTop, limit.ThrustCmdBottom, limit.ThrustRateLimit, thrustGain),
			NewActuator(solver, init.Elevator, limit.EleCmdTop, limit.EleCmdBottom, limit.EleRateLimit, surfaceGain),
			NewActuator(solver, init.Aileron, limit.AilCmdTop, limit.AilCmdBottom, limit.AilRateLimit, surfaceGain),
			NewActuator(solver, init.Rudder, limit.RudCmdTop, limit.RudCmdBottom, limit.RudRateLimit, surfaceGain),
		},
		deflection: deflection,
	}
}

// Update runs every actuator on the commanded control and returns the
// effective control. The scripted pulse is added to axis i only when the
// configured amplitude is essentially zero; this reproduces the behavior of
// the reference implementation (see TestDisturbanceDeadZoneGuard).
func (b *ControllerBlock) Update(cmd Control, t float64) Control {
	var out Control
	out.Thrust = b.actuators[0].Update(cmd.Thrust, t)

	surface := [3]float64{cmd.Elevator, cmd.Aileron, cmd.Rudder}
	for i := 0; i < 3; i++ {
		if math.Abs(b.deflection[i]) < 1e-10 {
			surface[i] += disturbance(b.deflection[i], t)
		}
		surface[i] = b.actuators[i+1].Update(surface[i], t)
	}
	out.Elevator, out.Aileron, out.Rudder = surface[0], surface[1], surface[2]
	return out
}

// Positions returns the current raw actuator positions.
func (b *ControllerBlock) Positions() Control {
	return Control{
		Thrust:   b.actuators[0].Position(),
		Elevator: b.actuators[1].Position(),
		Aileron:  b.actuators[2].Position(),
		Rudder:   b.actuators[3].Position(),
	}
}

// Reset seeds every actuator from the given control.
func (b *ControllerBlock) Reset(ctrl Control) {
	b.actuators[0].Reset(ctrl.Thrust)
	b.actuators[1].Reset(ctrl.Elevator)
	b.actuators[2].Reset(ctrl.Aileron)
	b.actuators[3].Reset(ctrl.Rudder)
}
