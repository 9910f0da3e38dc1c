// Package benchmark measures the cost the adapter adds on top of calling
// each logging library directly. Every library writes JSON to io.Discard.
package benchmark

import (
	"io"
	"log/slog"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/logbridge/backend"
	"github.com/philipp01105/logbridge/backend/logrusbackend"
	"github.com/philipp01105/logbridge/backend/slogbackend"
	"github.com/philipp01105/logbridge/backend/zapbackend"
	"github.com/philipp01105/logbridge/backend/zerologbackend"
	"github.com/philipp01105/logbridge/bridge"
)

// newZapLogger returns a zap.Logger that writes JSON to io.Discard.
func newZapLogger() *zap.Logger {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	zc := zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zap.DebugLevel)
	return zap.New(zc)
}

// newSlogHandler returns an slog.Handler that writes JSON to io.Discard.
func newSlogHandler() slog.Handler {
	return slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// newLogrusLogger returns a logrus.Logger that writes JSON to io.Discard.
func newLogrusLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.DebugLevel)
	return l
}

// newZerologLogger returns a zerolog.Logger that writes JSON to io.Discard.
func newZerologLogger() zerolog.Logger {
	return zerolog.New(io.Discard).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

// bind wraps a backend constructor result in a named adapter
func bind(b backend.Backend, err error) *bridge.Adapter {
	if err != nil {
		panic(err)
	}
	return bridge.MustBind(b).New("bench")
}

func newZapAdapter() *bridge.Adapter {
	return bind(zapbackend.New(newZapLogger()))
}

func newSlogAdapter() *bridge.Adapter {
	return bind(slogbackend.New(newSlogHandler()))
}

func newLogrusAdapter() *bridge.Adapter {
	return bind(logrusbackend.New(newLogrusLogger()))
}

func newZerologAdapter() *bridge.Adapter {
	return bind(zerologbackend.New(newZerologLogger(), false), nil)
}
