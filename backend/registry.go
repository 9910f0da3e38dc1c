package backend

import (
	"sort"
	"sync"
)

// Registry caches named loggers so that repeated lookups of one name return
// the same instance. The zero value is ready to use.
type Registry[L any] struct {
	mu      sync.RWMutex
	loggers map[string]L
}

// Get returns the logger registered under name, calling create exactly once
// per name to build it.
func (r *Registry[L]) Get(name string, create func(name string) L) L {
	r.mu.RLock()
	l, ok := r.loggers[name]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok = r.loggers[name]; ok {
		return l
	}
	if r.loggers == nil {
		r.loggers = make(map[string]L)
	}
	l = create(name)
	r.loggers[name] = l
	return l
}

// Len returns the number of registered loggers
func (r *Registry[L]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.loggers)
}

// Names returns the registered logger names in sorted order
func (r *Registry[L]) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
