package bridge

import (
	"errors"
	"reflect"
	"sync"

	"github.com/philipp01105/logbridge/backend"
	"github.com/philipp01105/logbridge/core"
)

// Origin is the qualified identity the adapter passes with every call. A
// backend skips stack frames whose function starts with Origin when it
// reports the source location of a record.
var Origin = reflect.TypeFor[Adapter]().PkgPath() + ".(*Adapter)"

var _ core.Log = (*Adapter)(nil)

// errUnbound is the panic value of an Adapter that was not built by a Binding
var errUnbound = errors.New("bridge: Adapter used without a Binding; create it with Binding.New or Binding.FromLogger")

// Adapter implements core.Log on top of a backend logger. It is safe for
// concurrent use and must not be copied after first use.
//
// The zero value is not usable: an Adapter has no backend until a Binding
// creates it, and every method of a zero Adapter panics with an error
// naming Binding.New.
type Adapter struct {
	name      string
	backend   backend.Backend
	selection *Selection

	once   sync.Once
	logger backend.Logger
}

// Name returns the logger name
func (a *Adapter) Name() string {
	return a.name
}

// Logger returns the backend logger, looking it up on first use. The lookup
// happens at most once even when many goroutines call Logger concurrently,
// and all of them observe the same logger.
func (a *Adapter) Logger() backend.Logger {
	if a.selection == nil {
		panic(errUnbound)
	}
	a.once.Do(func() {
		if a.logger == nil {
			a.logger = a.backend.GetLogger(a.name)
		}
	})
	return a.logger
}

// Selection returns the level mapping used by this adapter
func (a *Adapter) Selection() Selection {
	if a.selection == nil {
		panic(errUnbound)
	}
	return *a.selection
}

func (a *Adapter) log(level core.Level, msg any, err error) {
	l := a.Logger()
	l.Log(Origin, a.selection.ordinals[level], msg, err)
}

func (a *Adapter) enabled(level core.Level) bool {
	l := a.Logger()
	return l.IsEnabledFor(a.selection.ordinals[level])
}

// Trace logs a message at trace level, which is DEBUG on backends without TRACE
func (a *Adapter) Trace(msg any) {
	a.log(core.TraceLevel, msg, nil)
}

// TraceErr logs a message and its cause at trace level
func (a *Adapter) TraceErr(msg any, err error) {
	a.log(core.TraceLevel, msg, err)
}

// Debug logs a debug message
func (a *Adapter) Debug(msg any) {
	a.log(core.DebugLevel, msg, nil)
}

// DebugErr logs a debug message and its cause
func (a *Adapter) DebugErr(msg any, err error) {
	a.log(core.DebugLevel, msg, err)
}

// Info logs an info message
func (a *Adapter) Info(msg any) {
	a.log(core.InfoLevel, msg, nil)
}

// InfoErr logs an info message and its cause
func (a *Adapter) InfoErr(msg any, err error) {
	a.log(core.InfoLevel, msg, err)
}

// Warn logs a warning message
func (a *Adapter) Warn(msg any) {
	a.log(core.WarnLevel, msg, nil)
}

// WarnErr logs a warning message and its cause
func (a *Adapter) WarnErr(msg any, err error) {
	a.log(core.WarnLevel, msg, err)
}

// Error logs an error message
func (a *Adapter) Error(msg any) {
	a.log(core.ErrorLevel, msg, nil)
}

// ErrorErr logs an error message and its cause
func (a *Adapter) ErrorErr(msg any, err error) {
	a.log(core.ErrorLevel, msg, err)
}

// Fatal logs a fatal message. It does not exit the process.
func (a *Adapter) Fatal(msg any) {
	a.log(core.FatalLevel, msg, nil)
}

// FatalErr logs a fatal message and its cause. It does not exit the process.
func (a *Adapter) FatalErr(msg any, err error) {
	a.log(core.FatalLevel, msg, err)
}

// IsTraceEnabled reports whether trace messages are emitted. On backends
// without TRACE this is the same as IsDebugEnabled.
func (a *Adapter) IsTraceEnabled() bool {
	return a.enabled(core.TraceLevel)
}

// IsDebugEnabled reports whether debug messages are emitted
func (a *Adapter) IsDebugEnabled() bool {
	return a.enabled(core.DebugLevel)
}

// IsInfoEnabled reports whether info messages are emitted
func (a *Adapter) IsInfoEnabled() bool {
	return a.enabled(core.InfoLevel)
}

// IsWarnEnabled reports whether warning messages are emitted
func (a *Adapter) IsWarnEnabled() bool {
	return a.enabled(core.WarnLevel)
}

// IsErrorEnabled reports whether error messages are emitted
func (a *Adapter) IsErrorEnabled() bool {
	return a.enabled(core.ErrorLevel)
}

// IsFatalEnabled reports whether fatal messages are emitted
func (a *Adapter) IsFatalEnabled() bool {
	return a.enabled(core.FatalLevel)
}
