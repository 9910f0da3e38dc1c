package bridge

import (
	"reflect"

	"github.com/philipp01105/logbridge/backend"
)

// Binding pairs a backend with the Selection probed from it. A Binding is
// immutable and safe for concurrent use; every adapter it creates shares
// the same Selection.
type Binding struct {
	backend   backend.Backend
	selection Selection
}

// Bind probes b once and returns a Binding for building adapters. It fails
// with ErrIncompatibleBackend when b cannot be used.
func Bind(b backend.Backend) (*Binding, error) {
	sel, err := Probe(b)
	if err != nil {
		return nil, err
	}
	return &Binding{backend: b, selection: sel}, nil
}

// MustBind is like Bind but panics on error
func MustBind(b backend.Backend) *Binding {
	binding, err := Bind(b)
	if err != nil {
		panic(err)
	}
	return binding
}

// Backend returns the bound backend
func (b *Binding) Backend() backend.Backend {
	return b.backend
}

// Selection returns the level mapping chosen for the backend
func (b *Binding) Selection() Selection {
	return b.selection
}

// New returns an adapter for the named logger. The backend logger is looked
// up on first use, not here. An empty name resolves to the backend's root
// logger.
func (b *Binding) New(name string) *Adapter {
	return &Adapter{
		name:      name,
		backend:   b.backend,
		selection: &b.selection,
	}
}

// FromLogger returns an adapter that uses l directly and never performs a
// lookup. It fails with ErrNilLogger when l is nil.
func (b *Binding) FromLogger(l backend.Logger) (*Adapter, error) {
	if isNil(l) {
		return nil, ErrNilLogger
	}
	return &Adapter{
		name:      l.Name(),
		backend:   b.backend,
		selection: &b.selection,
		logger:    l,
	}, nil
}

// isNil also catches typed nil pointers stored in the interface
func isNil(l backend.Logger) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
