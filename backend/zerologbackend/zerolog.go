package zerologbackend

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/philipp01105/logbridge/backend"
	"github.com/philipp01105/logbridge/core"
)

// Name is the backend name reported by Backend.Name
const Name = "zerolog"

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Logger  = (*Logger)(nil)
)

// Backend binds the adapter to a zerolog.Logger
type Backend struct {
	root         zerolog.Logger
	reportCaller bool
	loggers      backend.Registry[*Logger]
}

// Logger is a named zerolog logger
type Logger struct {
	name         string
	zl           zerolog.Logger
	reportCaller bool
}

// New creates a Backend whose named loggers derive from root. When
// reportCaller is set, each record carries the application caller.
func New(root zerolog.Logger, reportCaller bool) *Backend {
	return &Backend{root: root, reportCaller: reportCaller}
}

// NewWithConfig creates a Backend around a fresh zerolog logger built from cfg
func NewWithConfig(cfg backend.Config) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := cfg.Output()
	if !cfg.JSON {
		w = zerolog.ConsoleWriter{Out: w, NoColor: w != os.Stdout && w != os.Stderr}
	}
	zl := zerolog.New(w).Level(Level(cfg.Level)).With().Timestamp().Logger()
	return New(zl, cfg.ReportCaller), nil
}

// Level converts a facade threshold to the zerolog level that admits it
func Level(l core.Level) zerolog.Level {
	switch l {
	case core.TraceLevel:
		return zerolog.TraceLevel
	case core.DebugLevel:
		return zerolog.DebugLevel
	case core.InfoLevel:
		return zerolog.InfoLevel
	case core.WarnLevel:
		return zerolog.WarnLevel
	case core.ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}

// Name implements backend.Backend
func (b *Backend) Name() string {
	return Name
}

// Levels implements backend.Backend
func (b *Backend) Levels() backend.LevelTable {
	return levelTable{}
}

// GetLogger implements backend.Backend
func (b *Backend) GetLogger(name string) backend.Logger {
	return b.loggers.Get(name, func(name string) *Logger {
		zl := b.root
		if name != "" {
			zl = zl.With().Str(backend.LoggerKey, name).Logger()
		}
		return &Logger{name: name, zl: zl, reportCaller: b.reportCaller}
	})
}

// Zerolog returns the underlying zerolog logger
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Name implements backend.Logger
func (l *Logger) Name() string {
	return l.name
}

// IsEnabledFor implements backend.Logger. Both the logger level and the
// process-wide zerolog.GlobalLevel apply.
func (l *Logger) IsEnabledFor(level backend.Ordinal) bool {
	lvl := zerolog.Level(level)
	return lvl >= l.zl.GetLevel() && lvl >= zerolog.GlobalLevel()
}

// Log implements backend.Logger. WithLevel never exits or panics, including
// for FatalLevel.
func (l *Logger) Log(origin string, level backend.Ordinal, msg any, cause error) {
	ev := l.zl.WithLevel(zerolog.Level(level))
	if ev == nil {
		return
	}
	if cause != nil {
		ev = ev.AnErr(backend.ErrorKey, cause)
	}
	if l.reportCaller {
		if c := core.FindCaller(origin); c.Defined {
			ev = ev.Str(backend.CallerKey, zerolog.CallerMarshalFunc(c.PC, c.File, c.Line))
		}
	}
	ev.Msg(backend.Render(msg))
}

type levelTable struct{}

// Lookup uses zerolog's own level parser
func (levelTable) Lookup(name string) (backend.Ordinal, bool) {
	if name == "" {
		return 0, false
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || lvl == zerolog.NoLevel {
		return 0, false
	}
	return backend.Ordinal(lvl), true
}

func (levelTable) Compare(a, b backend.Ordinal) int {
	return int(a) - int(b)
}
