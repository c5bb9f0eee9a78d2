package sixdof

import (
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// LogInit builds the standard logfmt logger tagged with a component name.
func LogInit(name string) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	return kitlog.With(klog, "component", name)
}
