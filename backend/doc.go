// Package backend defines the surface of a logging library that the
// bridge adapter drives, and the helpers shared by its implementations.
//
// A Backend resolves named loggers and exposes its severity constants
// through a LevelTable. Constants are looked up by name using the
// library's own parsing API, so an adapter can detect at bind time whether
// a library defines TRACE without resorting to reflection.
//
// Implementations:
//
//   - zapbackend wraps go.uber.org/zap (no trace level).
//   - logrusbackend wraps github.com/sirupsen/logrus.
//   - zerologbackend wraps github.com/rs/zerolog.
//   - slogbackend wraps any log/slog.Handler (no trace level).
//
// Each implementation lives in its own package, so a program, or a test
// binary, links only the libraries it actually binds.
package backend
