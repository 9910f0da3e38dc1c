package slogbackend

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/philipp01105/logbridge/backend"
	"github.com/philipp01105/logbridge/core"
)

// Name is the backend name reported by Backend.Name
const Name = "slog"

// LevelFatal is the slog level used for FATAL, which slog does not define
const LevelFatal = slog.LevelError + 4

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Logger  = (*Logger)(nil)
)

// Backend binds the adapter to a slog.Handler
type Backend struct {
	handler slog.Handler
	loggers backend.Registry[*Logger]
}

// Logger is a named slog handler
type Logger struct {
	name    string
	handler slog.Handler
}

// New creates a Backend whose named loggers write through h
func New(h slog.Handler) (*Backend, error) {
	if h == nil {
		return nil, errors.New("slogbackend: nil handler")
	}
	return &Backend{handler: h}, nil
}

// NewWithConfig creates a Backend around a slog text or JSON handler
func NewWithConfig(cfg backend.Config) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		AddSource:   cfg.ReportCaller,
		Level:       Level(cfg.Level),
		ReplaceAttr: replaceLevel,
	}
	if cfg.JSON {
		return New(slog.NewJSONHandler(cfg.Output(), opts))
	}
	return New(slog.NewTextHandler(cfg.Output(), opts))
}

// replaceLevel prints LevelFatal as FATAL instead of ERROR+4
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelFatal {
			a.Value = slog.StringValue(backend.NameFatal)
		}
	}
	return a
}

// Level converts a facade threshold to the slog level that admits it. Trace
// has no slog equivalent and maps to LevelDebug.
func Level(l core.Level) slog.Level {
	switch l {
	case core.TraceLevel, core.DebugLevel:
		return slog.LevelDebug
	case core.InfoLevel:
		return slog.LevelInfo
	case core.WarnLevel:
		return slog.LevelWarn
	case core.ErrorLevel:
		return slog.LevelError
	default:
		return LevelFatal
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

// GetLogger implements backend.Backend. A named logger's handler carries a
// "logger" attribute.
func (b *Backend) GetLogger(name string) backend.Logger {
	return b.loggers.Get(name, func(name string) *Logger {
		h := b.handler
		if name != "" {
			h = h.WithAttrs([]slog.Attr{slog.String(backend.LoggerKey, name)})
		}
		return &Logger{name: name, handler: h}
	})
}

// Handler returns the handler the logger writes through
func (l *Logger) Handler() slog.Handler {
	return l.handler
}

// Name implements backend.Logger
func (l *Logger) Name() string {
	return l.name
}

// IsEnabledFor implements backend.Logger
func (l *Logger) IsEnabledFor(level backend.Ordinal) bool {
	return l.handler.Enabled(context.Background(), slog.Level(level))
}

// Log implements backend.Logger. The record carries the PC of the
// application caller, so handlers with AddSource report that frame. Like
// slog.Logger, errors returned by the handler are dropped.
func (l *Logger) Log(origin string, level backend.Ordinal, msg any, cause error) {
	ctx := context.Background()
	lvl := slog.Level(level)
	if !l.handler.Enabled(ctx, lvl) {
		return
	}

	var pc uintptr
	if c := core.FindCaller(origin); c.Defined {
		pc = c.PC
	}
	r := slog.NewRecord(time.Now(), lvl, backend.Render(msg), pc)
	if cause != nil {
		r.AddAttrs(slog.Any(backend.ErrorKey, cause))
	}
	_ = l.handler.Handle(ctx, r)
}

type levelTable struct{}

// Lookup uses slog's own level parser, which knows no TRACE. FATAL is
// supplied as LevelFatal.
func (levelTable) Lookup(name string) (backend.Ordinal, bool) {
	if name == backend.NameFatal {
		return backend.Ordinal(LevelFatal), true
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return 0, false
	}
	return backend.Ordinal(lvl), true
}

func (levelTable) Compare(a, b backend.Ordinal) int {
	return int(a) - int(b)
}
