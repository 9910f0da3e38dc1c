// Package slogbackend binds the adapter to any log/slog Handler.
//
// slog defines no trace level, so trace calls are written at LevelDebug.
// FATAL maps to LevelFatal (LevelError+4), which the handlers built by
// NewWithConfig print as "FATAL".
package slogbackend
