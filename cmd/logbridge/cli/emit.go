package cli

import (
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/logfactory"
)

// Emit writes one message. Flags override the LOGBRIDGE_* environment,
// which overrides the config file.
type Emit struct {
	Config    string `help:"YAML configuration file." short:"c" type:"existingfile"`
	Backend   string `help:"Backend to use; empty selects by discovery." short:"b"`
	Threshold string `help:"Backend threshold level." short:"t"`
	Format    string `help:"Output format (json or text)." short:"f"`
	Output    string `help:"stdout, stderr or a file path." short:"o"`
	Caller    bool   `help:"Attach the caller to the record."`

	Name  string `default:"logbridge" help:"Logger name." short:"n"`
	Level string `default:"info" help:"Level of the message." short:"l"`
	Error string `help:"Attach a cause with this text." short:"e"`

	Message []string `arg:"" help:"Message text."`
}

// Run executes the emit command
func (e *Emit) Run(out io.Writer, diag *zap.Logger) error {
	cfg, err := e.config()
	if err != nil {
		return err
	}

	opts := []logfactory.Option{logfactory.WithDiagnostics(diag)}
	if cfg.Output == "stdout" {
		opts = append(opts, logfactory.WithWriter(out))
	}

	f, err := logfactory.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer f.Close()

	level, err := core.ParseLevel(e.Level)
	if err != nil {
		return err
	}

	var cause error
	if e.Error != "" {
		cause = errors.New(e.Error)
	}

	log := f.GetLog(e.Name)
	if !core.Enabled(log, level) {
		diag.Debug("message below threshold",
			zap.Stringer("level", level),
			zap.Stringer("threshold", cfg.Level),
		)
	}
	core.Emit(log, level, strings.Join(e.Message, " "), cause)
	return nil
}

func (e *Emit) config() (logfactory.Config, error) {
	cfg := logfactory.DefaultConfig()
	var err error
	if e.Config != "" {
		if cfg, err = logfactory.LoadConfig(e.Config); err != nil {
			return cfg, err
		}
	}
	if cfg, err = cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	if e.Backend != "" {
		cfg.Backend = e.Backend
	}
	if e.Threshold != "" {
		if cfg.Level, err = core.ParseLevel(e.Threshold); err != nil {
			return cfg, err
		}
	}
	if e.Format != "" {
		cfg.Format = strings.ToLower(e.Format)
	}
	if e.Output != "" {
		cfg.Output = e.Output
	}
	if e.Caller {
		cfg.Caller = true
	}
	return cfg, cfg.Validate()
}
