// Command trim reads a scenario TOML file, installs the aerodynamic model
// and solves for the steady-state flight condition.
package main

import (
	"flag"
	"fmt"
	"log"

	kitlog "github.com/go-kit/kit/log"
	"github.com/openfdm/sixdof"
	"github.com/openfdm/sixdof/models/linear"
)

var (
	scenario string
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", "", "scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "log optimizer progress")
}

func main() {
	flag.Parse()
	if scenario == "" {
		log.Fatal("no scenario provided")
	}
	s, err := sixdof.LoadScenario(scenario)
	if err != nil {
		log.Fatalf("%s", err)
	}

	logger := kitlog.NewNopLogger()
	if verbose {
		logger = sixdof.LogInit("trim")
	}
	model, err := buildModel(s, logger)
	if err != nil {
		log.Fatalf("%s", err)
	}
	if err := model.Install(s.ModelArgs); err != nil {
		log.Fatalf("%s", err)
	}
	defer func() {
		if err := model.Uninstall(); err != nil {
			logger.Log("level", "warning", "err", err)
		}
	}()

	mech, err := sixdof.NewMechanicalModel(model)
	if err != nil {
		log.Fatalf("%s", err)
	}
	limits, err := model.LoadCtrlLimits()
	if err != nil {
		log.Fatalf("%s", err)
	}

	out, err := sixdof.Trim(mech, s.Target, s.TrimInit, limits, s.Condition, nil, logger)
	if err != nil {
		log.Fatalf("trim: %s", err)
	}
	fmt.Println(out)
	if out.Result.FVal > 1e-8 {
		logger.Log("level", "warning", "subsys", "trim", "message", "optimizer exhausted before tolerance", "fval", out.Result.FVal)
	}
}

// buildModel binds the scenario's model. Only the built-in linear model is
// available to this driver; native models are resolved and bound by the
// embedding host.
func buildModel(s *sixdof.Scenario, logger kitlog.Logger) (*sixdof.AerodynamicModel, error) {
	if s.ModelName != "" && s.ModelName != "linear" {
		return nil, fmt.Errorf("unknown model %q (only the built-in linear model is available)", s.ModelName)
	}
	if s.ModelDir != "" {
		return sixdof.LoadAerodynamicModel(s.ModelDir, linear.Symbols(), logger)
	}
	return sixdof.NewAerodynamicModel(linear.Info(), linear.Symbols(), logger)
}
