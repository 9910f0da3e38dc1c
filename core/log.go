package core

// Log is the logging facade application code depends on. Implementations
// forward every call to a concrete backend and must be safe for concurrent
// use.
//
// The message is an arbitrary value handed to the backend unchanged; how it
// becomes text is the backend's concern. The Err variants attach a cause.
type Log interface {
	Trace(msg any)
	TraceErr(msg any, err error)
	Debug(msg any)
	DebugErr(msg any, err error)
	Info(msg any)
	InfoErr(msg any, err error)
	Warn(msg any)
	WarnErr(msg any, err error)
	Error(msg any)
	ErrorErr(msg any, err error)
	Fatal(msg any)
	FatalErr(msg any, err error)

	IsTraceEnabled() bool
	IsDebugEnabled() bool
	IsInfoEnabled() bool
	IsWarnEnabled() bool
	IsErrorEnabled() bool
	IsFatalEnabled() bool
}

// Enabled reports whether log accepts messages at level
func Enabled(log Log, level Level) bool {
	switch level {
	case TraceLevel:
		return log.IsTraceEnabled()
	case DebugLevel:
		return log.IsDebugEnabled()
	case InfoLevel:
		return log.IsInfoEnabled()
	case WarnLevel:
		return log.IsWarnEnabled()
	case ErrorLevel:
		return log.IsErrorEnabled()
	case FatalLevel:
		return log.IsFatalEnabled()
	default:
		return false
	}
}

// Emit logs msg at level, attaching err when it is non-nil. Unknown levels
// are ignored.
func Emit(log Log, level Level, msg any, err error) {
	switch level {
	case TraceLevel:
		log.TraceErr(msg, err)
	case DebugLevel:
		log.DebugErr(msg, err)
	case InfoLevel:
		log.InfoErr(msg, err)
	case WarnLevel:
		log.WarnErr(msg, err)
	case ErrorLevel:
		log.ErrorErr(msg, err)
	case FatalLevel:
		log.FatalErr(msg, err)
	}
}
