// Package bridge implements the facade adapter: an Adapter turns the six
// core.Log severities into calls on a backend.Logger.
//
// Binding a backend probes its severity constants once:
//
//	binding, err := bridge.Bind(zb)
//	if errors.Is(err, bridge.ErrIncompatibleBackend) {
//	    // try another backend
//	}
//	log := binding.New("svc.worker")
//	log.Info("started")
//
// Backends that define TRACE get trace calls at TRACE. Backends that do not
// (zap, log/slog) get them at DEBUG, so IsTraceEnabled answers the same as
// IsDebugEnabled there.
//
// An Adapter built with New looks its backend logger up lazily, exactly
// once, on first use. One built with FromLogger uses the supplied logger
// and never looks anything up.
//
// The adapter does no formatting, filtering or buffering. Every call is a
// single synchronous forward, and a panic raised by the backend reaches the
// caller unchanged.
package bridge
