// Package logfactory selects a logging backend and hands out adapters
// bound to it.
//
// A Factory is built from a Config, usually loaded from YAML:
//
//	backend: zerolog
//	level: debug
//	format: json
//	output: /var/log/svc.log
//	rotation:
//	  max_size: 104857600
//	  max_backups: 5
//
// When no backend is named, the Discovery order is tried and the first
// backend that builds and binds is used. A backend whose probe reports
// bridge.ErrIncompatibleBackend is skipped rather than treated as fatal;
// if every candidate fails, New returns ErrNoBackend together with each
// candidate's error.
//
// Selection diagnostics go to the *zap.Logger given with WithDiagnostics.
package logfactory
