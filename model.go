package sixdof

import (
	"fmt"
	"path/filepath"
	"sync"

	kitlog "github.com/go-kit/kit/log"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ModelInfo is the manifest of an aerodynamic model, read from the info.toml
// next to the model library.
type ModelInfo struct {
	Name        string
	Author      string
	Version     string
	Description string
}

func (i ModelInfo) String() string {
	return fmt.Sprintf("%s v%s by %s", i.Name, i.Version, i.Author)
}

// ModelSymbols is the resolved entry-point set of an aerodynamic model. It
// mirrors the C ABI one function per symbol: every hook returns an int code,
// negative meaning failure, and the state/control/coefficient layouts are the
// flat fixed-size arrays shared with the model. The loader layer that
// produces a ModelSymbols from a shared library is a host concern; the core
// only checks that the required symbols resolved (non-nil).
type ModelSymbols struct {
	InstallHook    func(args []string) int
	UninstallHook  func(args []string) int
	LoadConstants  func(out *PlaneConstants) int
	LoadCtrlLimits func(out *ControlLimit) int
	Init           func() int
	Trim           func(state *[12]float64, control *[4]float64, dLEF float64, out *[6]float64) int
	Step           func(state *[12]float64, control *[4]float64, dLEF float64, out *[6]float64) int
	Delete         func() int

	// Optional host-service registration. A model without these is still
	// usable.
	RegisterLogger func(fn func(level, msg string)) int
	RegisterAtmos  func(fn func(altitude, velocity float64) (mach, qbar, ps float64)) int
}

// missingRequired returns the ABI names of the mandatory entry points that
// did not resolve, for symbol-error reporting.
func (s ModelSymbols) missingRequired() []string {
	var missing []string
	checks := []struct {
		name string
		ok   bool
	}{
		{"frmodel_install_hook", s.InstallHook != nil},
		{"frmodel_uninstall_hook", s.UninstallHook != nil},
		{"frmodel_load_constants", s.LoadConstants != nil},
		{"frmodel_load_ctrl_limits", s.LoadCtrlLimits != nil},
		{"frmodel_init", s.Init != nil},
		{"frmodel_trim", s.Trim != nil},
		{"frmodel_step", s.Step != nil},
		{"frmodel_delete", s.Delete != nil},
	}
	for _, c := range checks {
		if !c.ok {
			missing = append(missing, c.name)
		}
	}
	return missing
}

// AerodynamicModel is the adapter between the core and one aerodynamic
// coefficient model. It is the only place that crosses the model boundary;
// every other component sees value types. A model addresses a single internal
// aircraft, so at most one plane block may be bound to it at a time.
type AerodynamicModel struct {
	info      ModelInfo
	syms      ModelSymbols
	installed bool
	logger    kitlog.Logger

	mu    sync.Mutex
	bound bool
}

// NewAerodynamicModel wraps an already-resolved symbol set. It fails with a
// PluginSymbolError if any required entry point is missing.
func NewAerodynamicModel(info ModelInfo, syms ModelSymbols, logger kitlog.Logger) (*AerodynamicModel, error) {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	if missing := syms.missingRequired(); len(missing) > 0 {
		return nil, &PluginSymbolError{Name: info.Name, Symbol: missing[0]}
	}
	return &AerodynamicModel{info: info, syms: syms, logger: logger}, nil
}

// LoadAerodynamicModel reads the info.toml manifest in dir and wraps the
// given symbol set under that identity.
func LoadAerodynamicModel(dir string, syms ModelSymbols, logger kitlog.Logger) (*AerodynamicModel, error) {
	info, err := loadModelInfo(dir)
	if err != nil {
		return nil, &PluginLoadError{Path: dir, Err: err}
	}
	return NewAerodynamicModel(info, syms, logger)
}

func loadModelInfo(dir string) (ModelInfo, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, "info.toml"))
	if err := v.ReadInConfig(); err != nil {
		return ModelInfo{}, errors.Wrap(err, "read manifest")
	}
	info := ModelInfo{
		Name:        v.GetString("name"),
		Author:      v.GetString("author"),
		Version:     v.GetString("version"),
		Description: v.GetString("description"),
	}
	if info.Name == "" {
		return ModelInfo{}, errors.New("manifest missing name")
	}
	return info, nil
}

// Info returns the model manifest.
func (m *AerodynamicModel) Info() ModelInfo { return m.info }

// Install runs the model's one-time install hook with model-specific args
// (e.g. a data directory), after offering the optional host services.
func (m *AerodynamicModel) Install(args []string) error {
	if m.syms.RegisterLogger != nil {
		logger := m.logger
		m.syms.RegisterLogger(func(level, msg string) {
			logger.Log("level", level, "subsys", "aeromodel", "message", msg)
		})
	}
	if m.syms.RegisterAtmos != nil {
		m.syms.RegisterAtmos(func(altitude, velocity float64) (float64, float64, float64) {
			atm := Atmosphere(altitude, velocity)
			return atm.Mach, atm.Qbar, atm.Ps
		})
	}
	if code := m.syms.InstallHook(args); code < 0 {
		return &PluginInnerError{Name: m.info.Name, Code: code, Site: "frmodel_install_hook"}
	}
	m.installed = true
	m.logger.Log("level", "info", "subsys", "aeromodel", "model", m.info.Name, "status", "installed")
	return nil
}

// Uninstall runs the model teardown hook.
func (m *AerodynamicModel) Uninstall() error {
	if code := m.syms.UninstallHook(nil); code < 0 {
		return &PluginInnerError{Name: m.info.Name, Code: code, Site: "frmodel_uninstall_hook"}
	}
	m.installed = false
	m.logger.Log("level", "info", "subsys", "aeromodel", "model", m.info.Name, "status", "uninstalled")
	return nil
}

// LoadConstants fetches the airframe constants from the model.
func (m *AerodynamicModel) LoadConstants() (PlaneConstants, error) {
	var out PlaneConstants
	if code := m.syms.LoadConstants(&out); code < 0 {
		return PlaneConstants{}, &PluginInnerError{Name: m.info.Name, Code: code, Site: "frmodel_load_constants"}
	}
	return out, nil
}

// LoadCtrlLimits fetches the control and envelope limits from the model.
func (m *AerodynamicModel) LoadCtrlLimits() (ControlLimit, error) {
	var out ControlLimit
	if code := m.syms.LoadCtrlLimits(&out); code < 0 {
		return ControlLimit{}, &PluginInnerError{Name: m.info.Name, Code: code, Site: "frmodel_load_ctrl_limits"}
	}
	return out, nil
}

// coefficientFn is a coefficient lookup bound to one model entry point with
// the marshalling and error conversion done.
type coefficientFn func(in *ModelInput) (C, error)

func (m *AerodynamicModel) lookupFunc(site string, raw func(state *[12]float64, control *[4]float64, dLEF float64, out *[6]float64) int) coefficientFn {
	name := m.info.Name
	return func(in *ModelInput) (C, error) {
		state := in.State.Array()
		control := in.Control.Array()
		var out [6]float64
		if code := raw(&state, &control, in.LEF, &out); code < 0 {
			return C{}, &PluginInnerError{Name: name, Code: code, Site: site}
		}
		return CFromArray(out), nil
	}
}

func (m *AerodynamicModel) trimFunc() coefficientFn {
	return m.lookupFunc("frmodel_trim", m.syms.Trim)
}

func (m *AerodynamicModel) stepFunc() coefficientFn {
	return m.lookupFunc("frmodel_step", m.syms.Step)
}

func (m *AerodynamicModel) initFunc() func() error {
	name := m.info.Name
	raw := m.syms.Init
	return func() error {
		if code := raw(); code < 0 {
			return &PluginInnerError{Name: name, Code: code, Site: "frmodel_init"}
		}
		return nil
	}
}

func (m *AerodynamicModel) deleteFunc() func() error {
	name := m.info.Name
	raw := m.syms.Delete
	return func() error {
		if code := raw(); code < 0 {
			return &PluginInnerError{Name: name, Code: code, Site: "frmodel_delete"}
		}
		return nil
	}
}

// bind reserves the model for one plane block.
func (m *AerodynamicModel) bind() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bound {
		return errors.Errorf("model %s is already bound to a plane block", m.info.Name)
	}
	m.bound = true
	return nil
}

// release undoes bind.
func (m *AerodynamicModel) release() {
	m.mu.Lock()
	m.bound = false
	m.mu.Unlock()
}
