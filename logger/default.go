package logger

import (
	"os"
	"sync"

	"github.com/philipp01105/logbridge/backend/slogbackend"
	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/logfactory"
)

var (
	defaultFactory *logfactory.Factory
	defaultMu      sync.RWMutex
	defaultOnce    sync.Once
)

// Default returns the process-wide factory. On first use it is built from
// the file named by LOGBRIDGE_CONFIG and the LOGBRIDGE_* overrides; when that
// fails, slog writing text to stderr is used and the failure is logged there.
func Default() *logfactory.Factory {
	defaultOnce.Do(func() {
		f := loadDefault()
		defaultMu.Lock()
		defaultFactory = f
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultFactory
}

// SetDefault replaces the process-wide factory. Calling it before Default
// skips the environment configuration entirely. Adapters already handed out
// keep using the factory they came from.
func SetDefault(f *logfactory.Factory) {
	defaultOnce.Do(func() {})
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultFactory = f
}

func loadDefault() *logfactory.Factory {
	f, err := fromEnv()
	if err == nil {
		return f
	}

	f, ferr := logfactory.New(logfactory.Config{
		Backend: slogbackend.Name,
		Level:   core.InfoLevel,
		Format:  logfactory.FormatText,
		Output:  "stderr",
	})
	if ferr != nil {
		// stderr with a built-in backend cannot fail to bind
		panic(ferr)
	}
	f.GetLog("logbridge").WarnErr("default configuration not usable, falling back to slog", err)
	return f
}

func fromEnv() (*logfactory.Factory, error) {
	cfg := logfactory.DefaultConfig()
	if path := os.Getenv(logfactory.EnvConfig); path != "" {
		var err error
		if cfg, err = logfactory.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	cfg, err := cfg.ApplyEnv()
	if err != nil {
		return nil, err
	}
	return logfactory.New(cfg)
}

// GetLog returns the named log of the default factory
func GetLog(name string) core.Log {
	return Default().GetLog(name)
}

// Root returns the default factory's root log
func Root() core.Log {
	return Default().GetLog("")
}

// Package-level convenience functions using the root log

// Trace logs a trace message
func Trace(msg any) {
	Root().Trace(msg)
}

// Debug logs a debug message
func Debug(msg any) {
	Root().Debug(msg)
}

// Info logs an info message
func Info(msg any) {
	Root().Info(msg)
}

// Warn logs a warning message
func Warn(msg any) {
	Root().Warn(msg)
}

// Error logs an error message
func Error(msg any) {
	Root().Error(msg)
}

// ErrorErr logs an error message with its cause
func ErrorErr(msg any, err error) {
	Root().ErrorErr(msg, err)
}

// Fatal logs a fatal message. The process keeps running; exiting is up to
// the caller.
func Fatal(msg any) {
	Root().Fatal(msg)
}

// Log logs msg at level with an optional cause
func Log(level core.Level, msg any, err error) {
	core.Emit(Root(), level, msg, err)
}

// Enabled reports whether the root log accepts level
func Enabled(level core.Level) bool {
	return core.Enabled(Root(), level)
}
