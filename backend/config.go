package backend

import (
	"fmt"
	"io"
	"os"

	"github.com/philipp01105/logbridge/core"
)

// Config holds the options shared by the backend packages' NewWithConfig
// constructors. It covers only what is needed to stand a library up from
// scratch; anything more should be configured on the library logger directly
// and passed to the package's New.
type Config struct {
	// Writer is the output destination (default: os.Stderr)
	Writer io.Writer
	// Level is the threshold: records below it are discarded (default: TraceLevel)
	Level core.Level
	// JSON selects JSON output instead of the library's text format
	JSON bool
	// ReportCaller attaches the application caller to each record
	ReportCaller bool
}

// Output returns the configured writer or os.Stderr
func (c Config) Output() io.Writer {
	if c.Writer == nil {
		return os.Stderr
	}
	return c.Writer
}

// Validate checks the config for values no backend can honour
func (c Config) Validate() error {
	if !c.Level.Valid() {
		return fmt.Errorf("invalid threshold level %d", int8(c.Level))
	}
	return nil
}

// Render converts a message object to text for libraries whose entry point
// only accepts strings.
func Render(msg any) string {
	switch m := msg.(type) {
	case string:
		return m
	case nil:
		return ""
	case error:
		return m.Error()
	case fmt.Stringer:
		return m.String()
	default:
		return fmt.Sprint(m)
	}
}
