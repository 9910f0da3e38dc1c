// Package logger holds the process-wide default factory. Most programs only
// need this package:
//
//	logger.Info("ready")
//	log := logger.GetLog("svc.worker")
//	log.WarnErr("retrying", err)
//
// The default factory is built on first use from the YAML file named by
// LOGBRIDGE_CONFIG and the LOGBRIDGE_BACKEND, LOGBRIDGE_LEVEL,
// LOGBRIDGE_FORMAT, LOGBRIDGE_OUTPUT and LOGBRIDGE_CALLER variables. When that
// configuration cannot produce a usable backend, slog on stderr is used.
// SetDefault installs a factory built by the program instead.
//
// The package-level functions log through the root log (the empty name).
// Backends attribute those records to this package; use GetLog for caller
// attribution in application code.
package logger
