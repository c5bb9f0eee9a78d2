package sixdof

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// csvHeader is the trajectory column set: simulation time, the 12 state
// components with angles in degrees, and the 6 auxiliary outputs.
var csvHeader = []string{
	"time(s)",
	"npos(ft)", "epos(ft)", "altitude(ft)",
	"phi(degree)", "theta(degree)", "psi(degree)",
	"velocity(ft/s)", "alpha(degree)", "beta(degree)",
	"p(degree/s)", "q(degree/s)", "r(degree/s)",
	"nx(g)", "ny(g)", "nz(g)",
	"mach", "qbar(lb/ft ft)", "ps(lb/ft ft)",
}

// ExportConfig configures trajectory CSV output.
type ExportConfig struct {
	Filename  string
	Timestamp bool // append a file creation timestamp to the name
}

// IsUseless returns whether this config would not export anything.
func (c ExportConfig) IsUseless() bool {
	return c.Filename == ""
}

// SimState is one trajectory sample.
type SimState struct {
	T      float64
	Output CoreOutput
}

// Record returns the CSV record of the sample.
func (s SimState) Record() []string {
	record := make([]string, 0, len(csvHeader))
	record = append(record, strconv.FormatFloat(s.T, 'f', -1, 64))
	for _, v := range MultiToDeg(s.Output.State.Slice()) {
		record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
	}
	for _, v := range s.Output.StateExtend.Slice() {
		record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return record
}

// StreamStates drains the channel to a CSV file until the channel closes.
// Run it in its own goroutine and close the channel to finish the file.
func StreamStates(conf ExportConfig, states <-chan SimState) error {
	if conf.IsUseless() {
		for range states {
		}
		return nil
	}
	name := conf.Filename
	if conf.Timestamp {
		t := time.Now()
		name = fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d", name,
			t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	f, err := os.Create(name + ".csv")
	if err != nil {
		return err
	}
	defer f.Close()
	return writeStates(f, states)
}

func writeStates(w io.Writer, states <-chan SimState) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for state := range states {
		if err := writer.Write(state.Record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
