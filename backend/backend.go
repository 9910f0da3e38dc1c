package backend

// Ordinal is a severity value in a backend's own level space. Its meaning,
// including the direction of the ordering, is defined by the backend.
type Ordinal int

// Names of the severity constants an adapter looks up in a LevelTable
const (
	NameTrace = "TRACE"
	NameDebug = "DEBUG"
	NameInfo  = "INFO"
	NameWarn  = "WARN"
	NameError = "ERROR"
	NameFatal = "FATAL"
)

// Keys used by every backend when it attaches structured data to a record
const (
	LoggerKey = "logger"
	ErrorKey  = "error"
	CallerKey = "caller"
)

// LevelTable exposes a backend's severity constants
type LevelTable interface {
	// Lookup resolves a severity constant by its upper-case name. It reports
	// false when the backend does not define the constant.
	Lookup(name string) (Ordinal, bool)

	// Compare orders two ordinals by severity: negative when a is less
	// severe than b, zero when equal, positive otherwise.
	Compare(a, b Ordinal) int
}

// Logger is a named logger of a concrete backend
type Logger interface {
	// Name returns the name the logger was looked up with
	Name() string

	// Log writes msg at level. origin is the qualified identity of the
	// calling adapter, used to locate the application frame when the
	// backend reports source location. cause may be nil.
	Log(origin string, level Ordinal, msg any, cause error)

	// IsEnabledFor reports whether the logger emits records at level
	IsEnabledFor(level Ordinal) bool
}

// Backend is a logging library an adapter can bind to
type Backend interface {
	// Name identifies the backend, e.g. "zap"
	Name() string

	// Levels returns the backend's severity constants
	Levels() LevelTable

	// GetLogger returns the logger registered under name, creating it on
	// first use. Repeated calls with the same name return the same Logger.
	GetLogger(name string) Logger
}
