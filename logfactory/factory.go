package logfactory

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/logbridge/backend"
	"github.com/philipp01105/logbridge/backend/logrusbackend"
	"github.com/philipp01105/logbridge/backend/slogbackend"
	"github.com/philipp01105/logbridge/backend/zapbackend"
	"github.com/philipp01105/logbridge/backend/zerologbackend"
	"github.com/philipp01105/logbridge/bridge"
	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/output"
)

var (
	// ErrUnknownBackend is returned for a backend name with no constructor
	ErrUnknownBackend = errors.New("logfactory: unknown backend")

	// ErrNoBackend is returned when discovery finds no usable backend
	ErrNoBackend = errors.New("logfactory: no usable backend")
)

// Constructor builds a backend from the shared backend options
type Constructor func(cfg backend.Config) (backend.Backend, error)

// Builtins returns the constructors for the backends shipped with logbridge
func Builtins() map[string]Constructor {
	return map[string]Constructor{
		zapbackend.Name: func(cfg backend.Config) (backend.Backend, error) {
			b, err := zapbackend.NewWithConfig(cfg)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
		logrusbackend.Name: func(cfg backend.Config) (backend.Backend, error) {
			b, err := logrusbackend.NewWithConfig(cfg)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
		zerologbackend.Name: func(cfg backend.Config) (backend.Backend, error) {
			b, err := zerologbackend.NewWithConfig(cfg)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
		slogbackend.Name: func(cfg backend.Config) (backend.Backend, error) {
			b, err := slogbackend.NewWithConfig(cfg)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
	}
}

// Factory selects a backend once and hands out cached adapters for it
type Factory struct {
	binding *bridge.Binding
	diag    *zap.Logger
	closer  io.Closer

	mu   sync.RWMutex
	logs map[string]*bridge.Adapter

	closeOnce sync.Once
	closeErr  error
}

type options struct {
	constructors map[string]Constructor
	diag         *zap.Logger
	writer       io.Writer
}

// Option configures a Factory
type Option func(*options)

// WithBackend registers a constructor under name, replacing any built-in of
// the same name
func WithBackend(name string, c Constructor) Option {
	return func(o *options) {
		o.constructors[name] = c
	}
}

// WithDiagnostics sends backend selection diagnostics to l
func WithDiagnostics(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.diag = l
		}
	}
}

// WithWriter makes backends write to w, ignoring Config.Output
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// New builds a Factory. With cfg.Backend set, that backend must bind or New
// fails. Otherwise the discovery order is tried and the first backend that
// binds wins; candidates that fail to build or are incompatible are skipped.
func New(cfg Config, opts ...Option) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{constructors: Builtins(), diag: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	f := &Factory{diag: o.diag, logs: make(map[string]*bridge.Adapter)}

	w := o.writer
	if w == nil {
		var err error
		w, f.closer, err = output.Open(cfg.Output, cfg.Rotation)
		if err != nil {
			return nil, err
		}
	}

	bcfg := backend.Config{
		Writer:       w,
		Level:        cfg.Level,
		JSON:         cfg.Format != FormatText,
		ReportCaller: cfg.Caller,
	}

	binding, err := selectBackend(cfg, bcfg, o)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	f.binding = binding

	sel := binding.Selection()
	f.diag.Info("backend selected",
		zap.String("backend", sel.Backend),
		zap.Stringer("trace", sel.Trace),
		zap.Stringer("level", cfg.Level),
	)
	return f, nil
}

func selectBackend(cfg Config, bcfg backend.Config, o options) (*bridge.Binding, error) {
	if cfg.Backend != "" {
		return bind(cfg.Backend, bcfg, o.constructors)
	}

	var errs error
	for _, name := range cfg.discovery() {
		binding, err := bind(name, bcfg, o.constructors)
		if err == nil {
			return binding, nil
		}
		o.diag.Info("backend not usable", zap.String("backend", name), zap.Error(err))
		errs = multierr.Append(errs, err)
	}
	return nil, fmt.Errorf("%w: %w", ErrNoBackend, errs)
}

func bind(name string, bcfg backend.Config, constructors map[string]Constructor) (*bridge.Binding, error) {
	construct, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	b, err := construct(bcfg)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	binding, err := bridge.Bind(b)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", name, err)
	}
	return binding, nil
}

// Binding returns the selected backend binding
func (f *Factory) Binding() *bridge.Binding {
	return f.binding
}

// GetLog returns the adapter for name, creating it on first request.
// Repeated calls with the same name return the same adapter.
func (f *Factory) GetLog(name string) core.Log {
	return f.Adapter(name)
}

// Adapter is GetLog with the concrete adapter type
func (f *Factory) Adapter(name string) *bridge.Adapter {
	f.mu.RLock()
	a, ok := f.logs[name]
	f.mu.RUnlock()
	if ok {
		return a
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok = f.logs[name]; ok {
		return a
	}
	a = f.binding.New(name)
	f.logs[name] = a
	return a
}

// Names returns the names of the cached adapters in sorted order
func (f *Factory) Names() []string {
	f.mu.RLock()
	names := make([]string, 0, len(f.logs))
	for name := range f.logs {
		names = append(names, name)
	}
	f.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Release drops every cached adapter. Adapters already handed out keep
// working; later GetLog calls create new ones.
func (f *Factory) Release() {
	f.mu.Lock()
	f.logs = make(map[string]*bridge.Adapter)
	f.mu.Unlock()
}

// Close releases the cached adapters and closes a file output
func (f *Factory) Close() error {
	f.closeOnce.Do(func() {
		f.Release()
		if f.closer != nil {
			f.closeErr = f.closer.Close()
		}
	})
	return f.closeErr
}
