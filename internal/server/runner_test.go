package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/bingeworthy/internal/cache"
)

type mockPruner struct {
	mu     sync.Mutex
	calls  int
	cutoff time.Duration
	err    error
}

func (m *mockPruner) Prune(_ context.Context, olderThan time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.cutoff = olderThan
	return 3, m.err
}

func (m *mockPruner) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln
}

func TestRunner_ServesAndStops(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	runner := NewRunner(handler, nil, Config{}, testLogger())
	ln := listen(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err, "clean shutdown returns nil")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for runner to stop")
	}
}

func TestRunner_Prunes(t *testing.T) {
	pruner := &mockPruner{}
	runner := NewRunner(http.NotFoundHandler(), pruner, Config{PruneInterval: 10 * time.Millisecond}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Serve(ctx, listen(t))
	}()

	require.Eventually(t, func() bool { return pruner.Calls() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	pruner.mu.Lock()
	defer pruner.mu.Unlock()
	assert.Equal(t, cache.LongestTTL, pruner.cutoff)
}

func TestRunner_PruneErrorsDoNotStopServer(t *testing.T) {
	pruner := &mockPruner{err: errors.New("database is locked")}
	runner := NewRunner(http.NotFoundHandler(), pruner, Config{PruneInterval: 5 * time.Millisecond}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Serve(ctx, listen(t))
	}()

	require.Eventually(t, func() bool { return pruner.Calls() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

func TestRunner_Run_ListenError(t *testing.T) {
	ln := listen(t)
	defer ln.Close()

	runner := NewRunner(http.NotFoundHandler(), nil, Config{Addr: ln.Addr().String()}, testLogger())
	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}

func TestNewRunner_Defaults(t *testing.T) {
	// Should not panic with nil logger
	runner := NewRunner(http.NotFoundHandler(), nil, Config{PruneInterval: time.Hour}, nil)
	require.NotNil(t, runner.logger)
	assert.Equal(t, DefaultShutdownTimeout, runner.config.ShutdownTimeout)
	assert.Equal(t, cache.LongestTTL, runner.config.PruneOlderThan)
	assert.Equal(t, time.Hour, runner.config.PruneInterval)
}
