package logrusbackend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/philipp01105/logbridge/backend"
	"github.com/philipp01105/logbridge/core"
)

// Name is the backend name reported by Backend.Name
const Name = "logrus"

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Logger  = (*Logger)(nil)
)

// Backend binds the adapter to a *logrus.Logger. logrus has no named
// loggers; a named logger is an entry carrying a "logger" field.
type Backend struct {
	root         *logrus.Logger
	reportCaller bool
	loggers      backend.Registry[*Logger]
}

// Logger is a named logrus entry
type Logger struct {
	name         string
	entry        *logrus.Entry
	reportCaller bool
}

// Option configures a Backend
type Option func(*Backend)

// WithReportCaller attaches the application caller as a "caller" field.
// logrus' own ReportCaller should stay off: it would report the backend
// frame instead.
func WithReportCaller(enabled bool) Option {
	return func(b *Backend) {
		b.reportCaller = enabled
	}
}

// New creates a Backend whose named loggers write through root
func New(root *logrus.Logger, opts ...Option) (*Backend, error) {
	if root == nil {
		return nil, errors.New("logrusbackend: nil logger")
	}
	b := &Backend{root: root}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// NewWithConfig creates a Backend around a fresh logrus logger built from cfg
func NewWithConfig(cfg backend.Config) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(cfg.Output())
	l.SetLevel(Level(cfg.Level))
	if cfg.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return New(l, WithReportCaller(cfg.ReportCaller))
}

// Level converts a facade threshold to the logrus level that admits it
func Level(l core.Level) logrus.Level {
	switch l {
	case core.TraceLevel:
		return logrus.TraceLevel
	case core.DebugLevel:
		return logrus.DebugLevel
	case core.InfoLevel:
		return logrus.InfoLevel
	case core.WarnLevel:
		return logrus.WarnLevel
	case core.ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.FatalLevel
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

// GetLogger implements backend.Backend. The empty name returns an entry
// without a logger field.
func (b *Backend) GetLogger(name string) backend.Logger {
	return b.loggers.Get(name, func(name string) *Logger {
		entry := logrus.NewEntry(b.root)
		if name != "" {
			entry = entry.WithField(backend.LoggerKey, name)
		}
		return &Logger{name: name, entry: entry, reportCaller: b.reportCaller}
	})
}

// Entry returns the logrus entry the logger writes through
func (l *Logger) Entry() *logrus.Entry {
	return l.entry
}

// Name implements backend.Logger
func (l *Logger) Name() string {
	return l.name
}

// IsEnabledFor implements backend.Logger
func (l *Logger) IsEnabledFor(level backend.Ordinal) bool {
	return l.entry.Logger.IsLevelEnabled(logrus.Level(level))
}

// Log implements backend.Logger. Entry.Log is used for every level, so
// FatalLevel records never call logrus' exit function.
func (l *Logger) Log(origin string, level backend.Ordinal, msg any, cause error) {
	lvl := logrus.Level(level)
	if !l.entry.Logger.IsLevelEnabled(lvl) {
		return
	}

	entry := l.entry
	if cause != nil {
		entry = entry.WithError(cause)
	}
	if l.reportCaller {
		if c := core.FindCaller(origin); c.Defined {
			entry = entry.WithField(backend.CallerKey, fmt.Sprintf("%s:%d", c.ShortFile, c.Line))
		}
	}
	entry.Log(lvl, backend.Render(msg))
}

type levelTable struct{}

// Lookup uses logrus' own level parser
func (levelTable) Lookup(name string) (backend.Ordinal, bool) {
	lvl, err := logrus.ParseLevel(strings.ToLower(name))
	if err != nil {
		return 0, false
	}
	return backend.Ordinal(lvl), true
}

// Compare accounts for logrus numbering its most severe level lowest
func (levelTable) Compare(a, b backend.Ordinal) int {
	return int(b) - int(a)
}
