package bridge

import (
	"errors"
	"fmt"

	"github.com/philipp01105/logbridge/backend"
	"github.com/philipp01105/logbridge/core"
)

var (
	// ErrNilLogger is returned when an adapter is built from a nil backend
	// logger, which usually means the backend was misconfigured.
	ErrNilLogger = errors.New("bridge: nil backend logger")

	// ErrIncompatibleBackend is returned when a backend's severity constants
	// do not have the shape the adapter relies on. Selection code should
	// treat it as "backend not usable" and try another one.
	ErrIncompatibleBackend = errors.New("bridge: incompatible backend")
)

// TraceSupport records how trace-level calls are mapped onto a backend
type TraceSupport uint8

const (
	// TraceNative means the backend defines its own TRACE severity
	TraceNative TraceSupport = iota
	// TraceAsDebug means the backend has no TRACE and trace calls use DEBUG
	TraceAsDebug
)

// String returns the string representation of the trace support
func (t TraceSupport) String() string {
	switch t {
	case TraceNative:
		return "native"
	case TraceAsDebug:
		return "debug-fallback"
	default:
		return "unknown"
	}
}

// Selection is the outcome of probing a backend: the ordinal each facade
// level maps to. It is computed once per binding and never changes.
type Selection struct {
	Backend  string
	Trace    TraceSupport
	ordinals [core.FatalLevel + 1]backend.Ordinal
}

// Ordinal returns the backend ordinal for a facade level
func (s Selection) Ordinal(level core.Level) backend.Ordinal {
	if !level.Valid() {
		panic(fmt.Sprintf("bridge: invalid level %d", int8(level)))
	}
	return s.ordinals[level]
}

// coreLevels are the constants every usable backend must define, in
// ascending severity.
var coreLevels = []struct {
	level core.Level
	name  string
}{
	{core.DebugLevel, backend.NameDebug},
	{core.InfoLevel, backend.NameInfo},
	{core.WarnLevel, backend.NameWarn},
	{core.ErrorLevel, backend.NameError},
	{core.FatalLevel, backend.NameFatal},
}

// Probe inspects a backend's severity constants and decides which ordinal
// each facade level uses. Trace maps to the backend's TRACE when it has one
// and to DEBUG otherwise. A backend missing a core constant, or whose
// constants are not ordered by severity, yields ErrIncompatibleBackend.
func Probe(b backend.Backend) (Selection, error) {
	if b == nil {
		return Selection{}, fmt.Errorf("%w: nil backend", ErrIncompatibleBackend)
	}

	sel := Selection{Backend: b.Name()}
	levels := b.Levels()
	if levels == nil {
		return Selection{}, fmt.Errorf("%w: %s exposes no level table", ErrIncompatibleBackend, sel.Backend)
	}

	for i, cl := range coreLevels {
		ord, ok := levels.Lookup(cl.name)
		if !ok {
			return Selection{}, fmt.Errorf("%w: %s does not define %s", ErrIncompatibleBackend, sel.Backend, cl.name)
		}
		if i > 0 {
			prev := coreLevels[i-1]
			if levels.Compare(sel.ordinals[prev.level], ord) >= 0 {
				return Selection{}, fmt.Errorf("%w: %s orders %s at or above %s",
					ErrIncompatibleBackend, sel.Backend, prev.name, cl.name)
			}
		}
		sel.ordinals[cl.level] = ord
	}

	if ord, ok := levels.Lookup(backend.NameTrace); ok {
		if levels.Compare(ord, sel.ordinals[core.DebugLevel]) >= 0 {
			return Selection{}, fmt.Errorf("%w: %s orders TRACE at or above DEBUG", ErrIncompatibleBackend, sel.Backend)
		}
		sel.Trace = TraceNative
		sel.ordinals[core.TraceLevel] = ord
	} else {
		sel.Trace = TraceAsDebug
		sel.ordinals[core.TraceLevel] = sel.ordinals[core.DebugLevel]
	}

	return sel, nil
}
