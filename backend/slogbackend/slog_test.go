package slogbackend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/logbridge/backend"
	"github.com/philipp01105/logbridge/bridge"
	"github.com/philipp01105/logbridge/bridgetest"
	"github.com/philipp01105/logbridge/core"
)

func TestConformance(t *testing.T) {
	bridgetest.Run(t, bridgetest.Harness{
		New: func(w io.Writer, threshold core.Level) backend.Backend {
			b, err := NewWithConfig(backend.Config{Writer: w, Level: threshold, JSON: true, ReportCaller: true})
			if err != nil {
				panic(err)
			}
			return b
		},
		Parse:         parseEvent,
		Trace:         bridge.TraceAsDebug,
		ReportsCaller: true,
	})
}

func parseEvent(line []byte) (bridgetest.Event, error) {
	var data struct {
		Level  string `json:"level"`
		Msg    string `json:"msg"`
		Error  string `json:"error"`
		Logger string `json:"logger"`
		Source struct {
			File string `json:"file"`
		} `json:"source"`
	}
	if err := json.Unmarshal(line, &data); err != nil {
		return bridgetest.Event{}, err
	}
	lvl, err := core.ParseLevel(data.Level)
	if err != nil {
		return bridgetest.Event{}, err
	}
	return bridgetest.Event{
		Level:   lvl,
		Message: data.Msg,
		Error:   data.Error,
		Logger:  data.Logger,
		Caller:  data.Source.File,
	}, nil
}

// captureHandler keeps every record it is given
type captureHandler struct {
	mu      *sync.Mutex
	level   slog.Level
	attrs   []slog.Attr
	records *[]slog.Record
}

func newCapture(level slog.Level) *captureHandler {
	return &captureHandler{mu: new(sync.Mutex), level: level, records: new([]slog.Record)}
}

func (h *captureHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	r = r.Clone()
	r.AddAttrs(h.attrs...)
	h.mu.Lock()
	*h.records = append(*h.records, r)
	h.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	return &captureHandler{mu: h.mu, level: h.level, attrs: append(newAttrs, attrs...), records: h.records}
}

func (h *captureHandler) WithGroup(string) slog.Handler {
	return h
}

func attrs(r slog.Record) map[string]slog.Value {
	out := make(map[string]slog.Value)
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value
		return true
	})
	return out
}

func TestNew_NilHandler(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("New(nil) returned no error")
	}
}

func TestLogger_InfoStarted(t *testing.T) {
	h := newCapture(slog.LevelDebug)
	b, err := New(h)
	require.NoError(t, err)

	bridge.MustBind(b).New("svc.worker").Info("started")

	require.Len(t, *h.records, 1)
	r := (*h.records)[0]
	assert.Equal(t, slog.LevelInfo, r.Level)
	assert.Equal(t, "started", r.Message)
	assert.NotZero(t, r.PC)
	a := attrs(r)
	assert.Equal(t, "svc.worker", a[backend.LoggerKey].String())
	assert.NotContains(t, a, backend.ErrorKey)
}

func TestLogger_SourceIsCaller(t *testing.T) {
	h := newCapture(slog.LevelDebug)
	b, err := New(h)
	require.NoError(t, err)
	log := bridge.MustBind(b).New("svc.source")

	log.Info("where")
	log.WarnErr("where", errors.New("boom"))

	require.Len(t, *h.records, 2)
	for _, r := range *h.records {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		assert.Equal(t, "slog_test.go", filepath.Base(frame.File))
		assert.True(t, strings.HasSuffix(frame.Function, ".TestLogger_SourceIsCaller"), frame.Function)
	}
}

func TestLogger_TraceFallsBackToDebug(t *testing.T) {
	h := newCapture(slog.LevelDebug)
	b, err := New(h)
	require.NoError(t, err)
	binding := bridge.MustBind(b)
	assert.Equal(t, bridge.TraceAsDebug, binding.Selection().Trace)

	binding.New("svc.trace").TraceErr("fine grained", errors.New("detail"))

	require.Len(t, *h.records, 1)
	r := (*h.records)[0]
	assert.Equal(t, slog.LevelDebug, r.Level)
	assert.Equal(t, "detail", attrs(r)[backend.ErrorKey].Any().(error).Error())
}

func TestLogger_Fatal(t *testing.T) {
	h := newCapture(slog.LevelDebug)
	b, err := New(h)
	require.NoError(t, err)

	bridge.MustBind(b).New("svc.fatal").Fatal("still running")

	require.Len(t, *h.records, 1)
	assert.Equal(t, LevelFatal, (*h.records)[0].Level)
}

func TestLevelTable(t *testing.T) {
	table := levelTable{}
	if _, ok := table.Lookup(backend.NameTrace); ok {
		t.Error("slog should not define TRACE")
	}
	fatal, ok := table.Lookup(backend.NameFatal)
	if !ok || slog.Level(fatal) != LevelFatal {
		t.Errorf("Lookup(FATAL) = %v, %v", slog.Level(fatal), ok)
	}
	warn, ok := table.Lookup(backend.NameWarn)
	if !ok || slog.Level(warn) != slog.LevelWarn {
		t.Errorf("Lookup(WARN) = %v, %v", slog.Level(warn), ok)
	}
}
