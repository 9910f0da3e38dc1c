package zapbackend

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/logbridge/backend"
	"github.com/philipp01105/logbridge/core"
)

// Name is the backend name reported by Backend.Name
const Name = "zap"

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Logger  = (*Logger)(nil)
)

// Backend binds the adapter to a *zap.Logger
type Backend struct {
	root    *zap.Logger
	loggers backend.Registry[*Logger]
}

// Logger is a named zap logger
type Logger struct {
	name string
	zap  *zap.Logger
}

// New creates a Backend whose named loggers derive from root
func New(root *zap.Logger) (*Backend, error) {
	if root == nil {
		return nil, errors.New("zapbackend: nil logger")
	}
	return &Backend{root: root}, nil
}

// NewWithConfig creates a Backend with a zapcore core built from cfg
func NewWithConfig(cfg backend.Config) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.NameKey = backend.LoggerKey
	encCfg.CallerKey = zapcore.OmitKey
	if cfg.ReportCaller {
		encCfg.CallerKey = backend.CallerKey
	}

	var enc zapcore.Encoder
	if cfg.JSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	zc := zapcore.NewCore(enc, zapcore.AddSync(cfg.Output()), Level(cfg.Level))
	return New(zap.New(zc))
}

// Level converts a facade threshold to the zap level that admits it. Trace
// has no zap equivalent and maps to DebugLevel.
func Level(l core.Level) zapcore.Level {
	switch l {
	case core.TraceLevel, core.DebugLevel:
		return zapcore.DebugLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.FatalLevel
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

// GetLogger implements backend.Backend. Names are applied with
// (*zap.Logger).Named; the empty name returns the root logger.
func (b *Backend) GetLogger(name string) backend.Logger {
	return b.loggers.Get(name, func(name string) *Logger {
		zl := b.root
		if name != "" {
			zl = zl.Named(name)
		}
		return &Logger{name: name, zap: zl}
	})
}

// Zap returns the underlying zap logger
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

// Name implements backend.Logger
func (l *Logger) Name() string {
	return l.name
}

// IsEnabledFor implements backend.Logger
func (l *Logger) IsEnabledFor(level backend.Ordinal) bool {
	return l.zap.Core().Enabled(zapcore.Level(level))
}

// Log implements backend.Logger. The entry is written through the logger's
// core rather than (*zap.Logger).Check, so FatalLevel records never trigger
// zap's exit hook.
func (l *Logger) Log(origin string, level backend.Ordinal, msg any, cause error) {
	zc := l.zap.Core()
	zl := zapcore.Level(level)
	if !zc.Enabled(zl) {
		return
	}

	ent := zapcore.Entry{
		LoggerName: l.zap.Name(),
		Time:       time.Now(),
		Level:      zl,
		Message:    backend.Render(msg),
	}
	if c := core.FindCaller(origin); c.Defined {
		ent.Caller = zapcore.NewEntryCaller(c.PC, c.File, c.Line, true)
		ent.Caller.Function = c.Function
	}

	ce := zc.Check(ent, nil)
	if ce == nil {
		return
	}
	if cause != nil {
		ce.Write(zap.Error(cause))
		return
	}
	ce.Write()
}

type levelTable struct{}

// Lookup uses zap's own level parser, which knows no TRACE
func (levelTable) Lookup(name string) (backend.Ordinal, bool) {
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return 0, false
	}
	return backend.Ordinal(lvl), true
}

func (levelTable) Compare(a, b backend.Ordinal) int {
	return int(a) - int(b)
}
