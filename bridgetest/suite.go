package bridgetest

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/logbridge/backend"
	"github.com/philipp01105/logbridge/bridge"
	"github.com/philipp01105/logbridge/core"
)

// Event is one record decoded from a backend's output
type Event struct {
	Level   core.Level
	Message string
	Error   string
	Logger  string
	Caller  string
}

// Harness describes the backend a conformance run exercises. Each backend
// package runs the suite from its own test binary, so exactly one library is
// linked into the environment the adapter binds in.
type Harness struct {
	// New builds the backend under test. It must write one JSON object per
	// record to w and discard records below threshold.
	New func(w io.Writer, threshold core.Level) backend.Backend
	// Parse decodes one line of output
	Parse func(line []byte) (Event, error)
	// Trace is the trace support the backend is expected to have
	Trace bridge.TraceSupport
	// ReportsCaller is set when the backend fills Event.Caller
	ReportsCaller bool
}

type stringer string

func (s stringer) String() string { return "stringer:" + string(s) }

// syncBuffer is a bytes.Buffer safe for concurrent writers
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out [][]byte
	sc := bufio.NewScanner(bytes.NewReader(b.buf.Bytes()))
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		out = append(out, append([]byte(nil), line...))
	}
	return out
}

func (h Harness) bind(t *testing.T, threshold core.Level) (*bridge.Binding, *syncBuffer) {
	t.Helper()
	var buf syncBuffer
	binding, err := bridge.Bind(h.New(&buf, threshold))
	require.NoError(t, err)
	return binding, &buf
}

func (h Harness) events(t *testing.T, buf *syncBuffer) []Event {
	t.Helper()
	var events []Event
	for _, line := range buf.lines() {
		ev, err := h.Parse(line)
		require.NoError(t, err, "parse %s", line)
		events = append(events, ev)
	}
	return events
}

// expectedLevel is the level a record written for l is reported at
func (h Harness) expectedLevel(l core.Level) core.Level {
	if l == core.TraceLevel && h.Trace == bridge.TraceAsDebug {
		return core.DebugLevel
	}
	return l
}

// Run executes the conformance suite against the harness
func Run(t *testing.T, h Harness) {
	require.NotNil(t, h.New, "Harness.New")
	require.NotNil(t, h.Parse, "Harness.Parse")

	t.Run("Probe", func(t *testing.T) { h.testProbe(t) })
	t.Run("Forward", func(t *testing.T) { h.testForward(t) })
	t.Run("MessageObject", func(t *testing.T) { h.testMessageObject(t) })
	t.Run("Threshold", func(t *testing.T) { h.testThreshold(t) })
	t.Run("TraceMapping", func(t *testing.T) { h.testTraceMapping(t) })
	t.Run("ConcurrentFirstUse", func(t *testing.T) { h.testConcurrentFirstUse(t) })
	t.Run("FromLogger", func(t *testing.T) { h.testFromLogger(t) })
	if h.ReportsCaller {
		t.Run("Caller", func(t *testing.T) { h.testCaller(t) })
	}
}

func (h Harness) testProbe(t *testing.T) {
	binding, _ := h.bind(t, core.TraceLevel)
	sel := binding.Selection()
	assert.NotEmpty(t, sel.Backend)
	assert.Equal(t, h.Trace, sel.Trace)
	if h.Trace == bridge.TraceAsDebug {
		assert.Equal(t, sel.Ordinal(core.DebugLevel), sel.Ordinal(core.TraceLevel))
	} else {
		assert.NotEqual(t, sel.Ordinal(core.DebugLevel), sel.Ordinal(core.TraceLevel))
	}
}

func (h Harness) testForward(t *testing.T) {
	for _, level := range core.Levels() {
		t.Run(level.String(), func(t *testing.T) {
			binding, buf := h.bind(t, core.TraceLevel)
			log := binding.New("svc.worker")
			cause := errors.New("boom")

			core.Emit(log, level, "plain "+level.String(), nil)
			core.Emit(log, level, "caused "+level.String(), cause)

			events := h.events(t, buf)
			require.Len(t, events, 2)

			want := h.expectedLevel(level)
			assert.Equal(t, want, events[0].Level)
			assert.Equal(t, "plain "+level.String(), events[0].Message)
			assert.Empty(t, events[0].Error)
			assert.Equal(t, "svc.worker", events[0].Logger)

			assert.Equal(t, want, events[1].Level)
			assert.Equal(t, "caused "+level.String(), events[1].Message)
			assert.Equal(t, "boom", events[1].Error)
			assert.Equal(t, "svc.worker", events[1].Logger)
		})
	}
}

func (h Harness) testMessageObject(t *testing.T) {
	binding, buf := h.bind(t, core.TraceLevel)
	log := binding.New("svc.objects")

	log.Info(stringer("payload"))

	events := h.events(t, buf)
	require.Len(t, events, 1)
	assert.Equal(t, "stringer:payload", events[0].Message)
}

func (h Harness) testThreshold(t *testing.T) {
	binding, buf := h.bind(t, core.InfoLevel)
	log := binding.New("svc.threshold")

	assert.False(t, log.IsTraceEnabled())
	assert.False(t, log.IsDebugEnabled())
	assert.True(t, log.IsInfoEnabled())
	assert.True(t, log.IsWarnEnabled())
	assert.True(t, log.IsErrorEnabled())
	assert.True(t, log.IsFatalEnabled())

	log.Trace("hidden trace")
	log.Debug("hidden debug")
	log.Info("shown")

	events := h.events(t, buf)
	require.Len(t, events, 1)
	assert.Equal(t, "shown", events[0].Message)

	binding, _ = h.bind(t, core.ErrorLevel)
	log = binding.New("svc.threshold")
	assert.False(t, log.IsWarnEnabled())
	assert.True(t, log.IsErrorEnabled())
}

func (h Harness) testTraceMapping(t *testing.T) {
	for _, threshold := range core.Levels() {
		t.Run(threshold.String(), func(t *testing.T) {
			binding, _ := h.bind(t, threshold)
			log := binding.New("svc.trace")
			switch h.Trace {
			case bridge.TraceAsDebug:
				assert.Equal(t, log.IsDebugEnabled(), log.IsTraceEnabled())
			default:
				assert.Equal(t, threshold == core.TraceLevel, log.IsTraceEnabled())
				assert.Equal(t, threshold <= core.DebugLevel, log.IsDebugEnabled())
			}
		})
	}
}

func (h Harness) testConcurrentFirstUse(t *testing.T) {
	const goroutines = 32

	binding, _ := h.bind(t, core.TraceLevel)
	log := binding.New("svc.concurrent")

	var (
		start   = make(chan struct{})
		wg      sync.WaitGroup
		results [goroutines]backend.Logger
	)
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i] = log.Logger()
		}()
	}
	close(start)
	wg.Wait()

	first := results[0]
	require.NotNil(t, first)
	for i, got := range results {
		assert.True(t, got == first, "goroutine %d observed a different logger", i)
	}
	assert.True(t, binding.Backend().GetLogger("svc.concurrent") == first)
}

func (h Harness) testFromLogger(t *testing.T) {
	binding, buf := h.bind(t, core.TraceLevel)

	_, err := binding.FromLogger(nil)
	require.ErrorIs(t, err, bridge.ErrNilLogger)

	existing := binding.Backend().GetLogger("svc.existing")
	log, err := binding.FromLogger(existing)
	require.NoError(t, err)
	assert.Equal(t, "svc.existing", log.Name())
	assert.True(t, log.Logger() == existing)

	log.Warn("adopted")
	events := h.events(t, buf)
	require.Len(t, events, 1)
	assert.Equal(t, core.WarnLevel, events[0].Level)
	assert.Equal(t, "svc.existing", events[0].Logger)
}

func (h Harness) testCaller(t *testing.T) {
	binding, buf := h.bind(t, core.TraceLevel)
	log := binding.New("svc.caller")

	log.Info("where")

	events := h.events(t, buf)
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Caller, "suite.go")
}
