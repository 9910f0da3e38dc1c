package zerologbackend

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/logbridge/backend"
	"github.com/philipp01105/logbridge/bridge"
	"github.com/philipp01105/logbridge/bridgetest"
	"github.com/philipp01105/logbridge/core"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	os.Exit(m.Run())
}

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
		Trace:         bridge.TraceNative,
		ReportsCaller: true,
	})
}

type record struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Logger  string `json:"logger"`
	Caller  string `json:"caller"`
}

func parseEvent(line []byte) (bridgetest.Event, error) {
	var data record
	if err := json.Unmarshal(line, &data); err != nil {
		return bridgetest.Event{}, err
	}
	lvl, err := core.ParseLevel(data.Level)
	if err != nil {
		return bridgetest.Event{}, err
	}
	return bridgetest.Event{
		Level:   lvl,
		Message: data.Message,
		Error:   data.Error,
		Logger:  data.Logger,
		Caller:  data.Caller,
	}, nil
}

func decode(t *testing.T, buf *bytes.Buffer) record {
	t.Helper()
	var r record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
	return r
}

func TestLogger_InfoStarted(t *testing.T) {
	var buf bytes.Buffer
	binding := bridge.MustBind(New(zerolog.New(&buf), false))

	binding.New("svc.worker").Info("started")

	r := decode(t, &buf)
	assert.Equal(t, "info", r.Level)
	assert.Equal(t, "started", r.Message)
	assert.Equal(t, "svc.worker", r.Logger)
	assert.Empty(t, r.Error)
	assert.Empty(t, r.Caller)
}

func TestLogger_TraceNative(t *testing.T) {
	var buf bytes.Buffer
	binding := bridge.MustBind(New(zerolog.New(&buf).Level(zerolog.TraceLevel), false))
	assert.Equal(t, bridge.TraceNative, binding.Selection().Trace)

	binding.New("svc.trace").TraceErr("fine grained", errors.New("detail"))

	r := decode(t, &buf)
	assert.Equal(t, "trace", r.Level)
	assert.Equal(t, "detail", r.Error)
}

func TestLogger_FatalDoesNotExit(t *testing.T) {
	var buf bytes.Buffer
	binding := bridge.MustBind(New(zerolog.New(&buf), false))

	binding.New("svc.fatal").Fatal("still running")

	assert.Equal(t, "fatal", decode(t, &buf).Level)
}

func TestLogger_LoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	binding := bridge.MustBind(New(zerolog.New(&buf).Level(zerolog.InfoLevel), false))
	log := binding.New("svc.quiet")

	assert.False(t, log.IsDebugEnabled())
	assert.True(t, log.IsInfoEnabled())

	log.Debug("dropped")
	assert.Zero(t, buf.Len())
}

func TestLevelTable(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
		ok   bool
	}{
		{backend.NameTrace, zerolog.TraceLevel, true},
		{backend.NameDebug, zerolog.DebugLevel, true},
		{backend.NameInfo, zerolog.InfoLevel, true},
		{backend.NameWarn, zerolog.WarnLevel, true},
		{backend.NameError, zerolog.ErrorLevel, true},
		{backend.NameFatal, zerolog.FatalLevel, true},
		{"", zerolog.NoLevel, false},
		{"VERBOSE", zerolog.NoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := levelTable{}.Lookup(tt.name)
			if ok != tt.ok {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if ok && zerolog.Level(got) != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.name, zerolog.Level(got), tt.want)
			}
		})
	}
}
