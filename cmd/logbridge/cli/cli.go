package cli

import (
	"io"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

// CLI is the top-level command-line interface
type CLI struct {
	Diagnostics bool `help:"Print backend selection diagnostics to stderr." short:"d"`

	Probe Probe `cmd:"" help:"Bind backends and print their level selection."`
	Emit  Emit  `cmd:"" help:"Write one message through the selected backend."`
}

// Run parses args and executes the selected command. Command output goes to
// out; exit is called by kong for --help.
func Run(out io.Writer, exit func(code int), args ...string) error {
	var c CLI

	parser, err := kong.New(&c,
		kong.Name("logbridge"),
		kong.Description("Inspect and exercise logbridge backends."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(out, out),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	diag := zap.NewNop()
	if c.Diagnostics {
		if diag, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer func() { _ = diag.Sync() }()
	}

	ktx.BindTo(out, (*io.Writer)(nil))
	return ktx.Run(diag)
}
