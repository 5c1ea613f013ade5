package watch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dusk/internal/infrastructure/environ"
)

// scriptedExecutor replays canned probe responses in order, repeating the
// last one once the script is exhausted.
type scriptedExecutor struct {
	mu        sync.Mutex
	responses []string
	calls     int
}

func (s *scriptedExecutor) Run(_ context.Context, _ string, onFirstLine func(string)) {
	s.mu.Lock()
	i := s.calls
	s.calls++
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	line := s.responses[i]
	s.mu.Unlock()

	go onFirstLine(line)
}

func (s *scriptedExecutor) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestWatcher(t *testing.T, executor *scriptedExecutor, events chan string) *Watcher {
	t.Helper()

	w, err := New(Options{
		SetDark:        func() { events <- "dark" },
		SetLight:       func() { events <- "light" },
		Interval:       100 * time.Millisecond,
		Environment:    environ.NativeLinux,
		PreferenceFile: "/nonexistent/theme-preference",
		Executor:       executor,
	})
	require.NoError(t, err)
	return w
}

func waitEvent(t *testing.T, events chan string) string {
	t.Helper()
	select {
	case e := <-events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a switch event")
		return ""
	}
}

func assertNoEvent(t *testing.T, events chan string, within time.Duration) {
	t.Helper()
	select {
	case e := <-events:
		t.Fatalf("unexpected switch event %q", e)
	case <-time.After(within):
	}
}

func TestWatcher_RequiresBothActions(t *testing.T) {
	_, err := New(Options{SetDark: func() {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "switch actions")

	_, err = New(Options{SetLight: func() {}})
	require.Error(t, err)
}

func TestWatcher_TransitionSequence(t *testing.T) {
	executor := &scriptedExecutor{responses: []string{"1", "0", "1"}}
	events := make(chan string, 16)
	w := newTestWatcher(t, executor, events)

	require.NoError(t, w.Init(context.Background()))
	defer w.Disable()

	// First observation has no prior state, so all three scripted values
	// produce a switch: dark, light, dark.
	assert.Equal(t, "dark", waitEvent(t, events))
	assert.Equal(t, "light", waitEvent(t, events))
	assert.Equal(t, "dark", waitEvent(t, events))

	// The script now repeats "1": no further transitions.
	assertNoEvent(t, events, 300*time.Millisecond)

	isDark, known := w.Current()
	assert.True(t, known)
	assert.True(t, isDark)
}

func TestWatcher_DisableStopsPolling(t *testing.T) {
	executor := &scriptedExecutor{responses: []string{"1", "0", "1"}}
	events := make(chan string, 16)
	w := newTestWatcher(t, executor, events)

	require.NoError(t, w.Init(context.Background()))

	assert.Equal(t, "dark", waitEvent(t, events))
	assert.Equal(t, "light", waitEvent(t, events))

	w.Disable()

	// The third scripted transition must never arrive.
	assertNoEvent(t, events, 400*time.Millisecond)

	calls := executor.callCount()
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, calls, executor.callCount(), "no probes after Disable")
}

func TestWatcher_InitIsIdempotent(t *testing.T) {
	executor := &scriptedExecutor{responses: []string{"1"}}
	events := make(chan string, 16)
	w := newTestWatcher(t, executor, events)

	ctx := context.Background()
	require.NoError(t, w.Init(ctx))
	require.NoError(t, w.Init(ctx))
	defer w.Disable()

	// Both immediate probes observe "1"; the debouncer fires once.
	assert.Equal(t, "dark", waitEvent(t, events))
	assertNoEvent(t, events, 300*time.Millisecond)
}

func TestWatcher_DisableThenInitRestartsCleanly(t *testing.T) {
	executor := &scriptedExecutor{responses: []string{"1", "0"}}
	events := make(chan string, 16)
	w := newTestWatcher(t, executor, events)

	ctx := context.Background()
	require.NoError(t, w.Init(ctx))
	assert.Equal(t, "dark", waitEvent(t, events))

	w.Disable()

	require.NoError(t, w.Init(ctx))
	defer w.Disable()

	// State survives the restart: the next differing observation still
	// debounces against the last applied value.
	assert.Equal(t, "light", waitEvent(t, events))
}

func TestWatcher_NudgeProbesImmediately(t *testing.T) {
	executor := &scriptedExecutor{responses: []string{"1", "0"}}
	events := make(chan string, 16)

	w, err := New(Options{
		SetDark:  func() { events <- "dark" },
		SetLight: func() { events <- "light" },
		// Long interval: only the immediate probe and the nudge fire.
		Interval:       time.Hour,
		Environment:    environ.NativeLinux,
		PreferenceFile: "/nonexistent/theme-preference",
		Executor:       executor,
	})
	require.NoError(t, err)

	require.NoError(t, w.Init(context.Background()))
	defer w.Disable()

	assert.Equal(t, "dark", waitEvent(t, events))

	w.Nudge()
	assert.Equal(t, "light", waitEvent(t, events))
}

func TestWatcher_UnsupportedEnvironmentIsInert(t *testing.T) {
	executor := &scriptedExecutor{responses: []string{"1"}}
	events := make(chan string, 16)

	w, err := New(Options{
		SetDark:        func() { events <- "dark" },
		SetLight:       func() { events <- "light" },
		Interval:       50 * time.Millisecond,
		PreferenceFile: "/nonexistent/theme-preference",
		Executor:       executor,
	})
	require.NoError(t, err)

	w.classify = func() environ.Environment { return environ.Unsupported }

	// Not an error: initialization silently declines to start polling.
	require.NoError(t, w.Init(context.Background()))

	assertNoEvent(t, events, 300*time.Millisecond)
	assert.Zero(t, executor.callCount())

	_, known := w.Current()
	assert.False(t, known)
}
