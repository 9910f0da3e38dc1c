package bridgetest

import (
	"sync"
	"sync/atomic"

	"github.com/philipp01105/logbridge/backend"
)

// Variant selects the severity constants a Recorder exposes
type Variant uint8

const (
	// WithTrace defines TRACE below DEBUG
	WithTrace Variant = iota
	// WithoutTrace omits TRACE, like older libraries that predate it
	WithoutTrace
	// Incompatible defines the constants in an order no adapter accepts
	Incompatible
)

// Severity ordinals used by the Recorder
const (
	OrdinalTrace backend.Ordinal = 5000
	OrdinalDebug backend.Ordinal = 10000
	OrdinalInfo  backend.Ordinal = 20000
	OrdinalWarn  backend.Ordinal = 30000
	OrdinalError backend.Ordinal = 40000
	OrdinalFatal backend.Ordinal = 50000
)

// Call is one forward received by a Recorder logger
type Call struct {
	Logger  string
	Origin  string
	Level   backend.Ordinal
	Message any
	Cause   error
}

// Recorder is an in-memory backend that records every call it receives.
// It is safe for concurrent use.
type Recorder struct {
	variant   Variant
	threshold atomic.Int64
	created   atomic.Int64
	loggers   backend.Registry[*RecordingLogger]

	mu    sync.Mutex
	calls []Call
}

// NewRecorder creates a Recorder exposing the given constants. The initial
// threshold lets every call through.
func NewRecorder(v Variant) *Recorder {
	r := &Recorder{variant: v}
	r.threshold.Store(int64(OrdinalTrace))
	return r
}

// Name implements backend.Backend
func (r *Recorder) Name() string {
	return "recorder"
}

// Levels implements backend.Backend
func (r *Recorder) Levels() backend.LevelTable {
	return recorderLevels{variant: r.variant}
}

// GetLogger implements backend.Backend
func (r *Recorder) GetLogger(name string) backend.Logger {
	return r.loggers.Get(name, func(name string) *RecordingLogger {
		r.created.Add(1)
		return &RecordingLogger{name: name, rec: r}
	})
}

// NewLogger returns a logger that is not registered with the Recorder,
// suitable for bridge.Binding.FromLogger.
func (r *Recorder) NewLogger(name string) *RecordingLogger {
	return &RecordingLogger{name: name, rec: r}
}

// SetThreshold sets the lowest ordinal that is enabled
func (r *Recorder) SetThreshold(level backend.Ordinal) {
	r.threshold.Store(int64(level))
}

// Created returns how many loggers GetLogger has created
func (r *Recorder) Created() int {
	return int(r.created.Load())
}

// Calls returns a copy of the recorded calls
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Last returns the most recent call and whether there was one
func (r *Recorder) Last() (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Call{}, false
	}
	return r.calls[len(r.calls)-1], true
}

// Reset drops the recorded calls
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

// RecordingLogger is the backend.Logger handed out by a Recorder
type RecordingLogger struct {
	name string
	rec  *Recorder
}

// Name implements backend.Logger
func (l *RecordingLogger) Name() string {
	return l.name
}

// Log implements backend.Logger. Calls below the threshold are not recorded.
func (l *RecordingLogger) Log(origin string, level backend.Ordinal, msg any, cause error) {
	if !l.IsEnabledFor(level) {
		return
	}
	l.rec.mu.Lock()
	l.rec.calls = append(l.rec.calls, Call{
		Logger:  l.name,
		Origin:  origin,
		Level:   level,
		Message: msg,
		Cause:   cause,
	})
	l.rec.mu.Unlock()
}

// IsEnabledFor implements backend.Logger
func (l *RecordingLogger) IsEnabledFor(level backend.Ordinal) bool {
	return int64(level) >= l.rec.threshold.Load()
}

type recorderLevels struct {
	variant Variant
}

func (t recorderLevels) Lookup(name string) (backend.Ordinal, bool) {
	switch name {
	case backend.NameTrace:
		if t.variant == WithoutTrace {
			return 0, false
		}
		return OrdinalTrace, true
	case backend.NameDebug:
		return OrdinalDebug, true
	case backend.NameInfo:
		return OrdinalInfo, true
	case backend.NameWarn:
		if t.variant == Incompatible {
			// WARN sorts above ERROR
			return OrdinalError + 1, true
		}
		return OrdinalWarn, true
	case backend.NameError:
		return OrdinalError, true
	case backend.NameFatal:
		return OrdinalFatal, true
	default:
		return 0, false
	}
}

func (recorderLevels) Compare(a, b backend.Ordinal) int {
	return int(a) - int(b)
}
