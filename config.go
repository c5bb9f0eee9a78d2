package sixdof

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Scenario is a simulation run description read from a TOML file.
type Scenario struct {
	ModelName string
	ModelDir  string
	ModelArgs []string

	SolverOrder int
	SolverStep  float64

	Target    TrimTarget
	Condition FlightCondition
	TrimInit  *TrimInit

	Deflection [3]float64
	Duration   float64

	Export ExportConfig
}

// LoadScenario reads a scenario TOML file.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("solver.order", 4)
	v.SetDefault("solver.step", 0.01)
	v.SetDefault("sim.duration", 15.0)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read scenario %s", path)
	}

	s := &Scenario{
		ModelName:   v.GetString("model.name"),
		ModelDir:    v.GetString("model.dir"),
		ModelArgs:   v.GetStringSlice("model.args"),
		SolverOrder: v.GetInt("solver.order"),
		SolverStep:  v.GetFloat64("solver.step"),
		Target: TrimTarget{
			Altitude: v.GetFloat64("trim.altitude"),
			Velocity: v.GetFloat64("trim.velocity"),
			NPos:     v.GetFloat64("trim.npos"),
			EPos:     v.GetFloat64("trim.epos"),
		},
		Duration: v.GetFloat64("sim.duration"),
		Export: ExportConfig{
			Filename:  v.GetString("output.filename"),
			Timestamp: v.GetBool("output.timestamp"),
		},
	}

	fc, err := ParseFlightCondition(v.GetString("trim.condition"))
	if err != nil {
		return nil, err
	}
	s.Condition = fc

	if d := v.Get("sim.deflection"); d != nil {
		vals, ok := toFloats(d)
		if !ok || len(vals) != 3 {
			return nil, errors.Errorf("scenario %s: sim.deflection must be three numbers", path)
		}
		copy(s.Deflection[:], vals)
	}

	if v.IsSet("trim.init.thrust") {
		s.TrimInit = &TrimInit{
			Control: Control{
				Thrust:   v.GetFloat64("trim.init.thrust"),
				Elevator: v.GetFloat64("trim.init.elevator"),
				Aileron:  v.GetFloat64("trim.init.aileron"),
				Rudder:   v.GetFloat64("trim.init.rudder"),
			},
			Alpha: v.GetFloat64("trim.init.alpha") * deg2rad,
		}
	}

	if s.Target.Altitude <= 0 || s.Target.Velocity <= 0 {
		return nil, errors.Errorf("scenario %s: trim.altitude and trim.velocity are required", path)
	}
	return s, nil
}

func toFloats(v interface{}) ([]float64, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		switch n := item.(type) {
		case float64:
			out = append(out, n)
		case int:
			out = append(out, float64(n))
		case int64:
			out = append(out, float64(n))
		default:
			return nil, false
		}
	}
	return out, true
}
