package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/philipp01105/logbridge/backend"
	"github.com/philipp01105/logbridge/bridge"
	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/logfactory"
)

// Probe binds each backend against a discarding writer
type Probe struct {
	Backends []string `arg:"" help:"Backends to probe (default: all built-ins)." optional:""`
}

// Run executes the probe command. A backend that does not bind is reported
// in its row; only unknown names fail the command.
func (p *Probe) Run(out io.Writer, diag *zap.Logger) error {
	builtins := logfactory.Builtins()

	names := p.Backends
	if len(names) == 0 {
		for name := range builtins {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "BACKEND\tTRACE SUPPORT")
	for _, l := range core.Levels() {
		fmt.Fprintf(tw, "\t%s", l)
	}
	fmt.Fprintln(tw)

	for _, name := range names {
		construct, ok := builtins[name]
		if !ok {
			_ = tw.Flush()
			return fmt.Errorf("%w: %q", logfactory.ErrUnknownBackend, name)
		}

		sel, err := probe(construct)
		if err != nil {
			diag.Warn("probe failed", zap.String("backend", name), zap.Error(err))
			fmt.Fprintf(tw, "%s\terror: %v\n", name, err)
			continue
		}

		fmt.Fprintf(tw, "%s\t%s", name, sel.Trace)
		for _, l := range core.Levels() {
			fmt.Fprintf(tw, "\t%d", sel.Ordinal(l))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func probe(construct logfactory.Constructor) (bridge.Selection, error) {
	b, err := construct(backend.Config{Writer: io.Discard, Level: core.TraceLevel})
	if err != nil {
		return bridge.Selection{}, err
	}
	return bridge.Probe(b)
}
