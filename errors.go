package sixdof

import (
	"errors"
	"fmt"
)

// ErrNaN reports that a component of the state, control or auxiliary outputs
// became NaN after a step. The block that produced it is poisoned: further
// updates without a reset are undefined.
var ErrNaN = errors.New("NaN value in simulation output")

// PluginLoadError reports that an aerodynamic model could not be loaded at
// all: missing directory, unreadable manifest, unusable hook set.
type PluginLoadError struct {
	Path string
	Err  error
}

func (e *PluginLoadError) Error() string {
	return fmt.Sprintf("load aerodynamic model %s: %v", e.Path, e.Err)
}

func (e *PluginLoadError) Unwrap() error { return e.Err }

// PluginSymbolError reports that a required model entry point is missing.
type PluginSymbolError struct {
	Name   string // model name
	Symbol string // entry point name
}

func (e *PluginSymbolError) Error() string {
	return fmt.Sprintf("model %s: required symbol %s not found", e.Name, e.Symbol)
}

// PluginInnerError reports that a model hook returned a negative code.
type PluginInnerError struct {
	Name string // model name
	Code int    // hook return code
	Site string // which hook
}

func (e *PluginInnerError) Error() string {
	return fmt.Sprintf("model %s: %s failed with code %d", e.Name, e.Site, e.Code)
}

// NotInitializedError reports a step requested before init completed.
type NotInitializedError struct {
	What string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("%s not initialized", e.What)
}
