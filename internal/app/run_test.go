package app

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"foodbridge-matching/internal/logx"
	testlog "foodbridge-matching/internal/testutil"
)

type fakeExpiringStore struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeExpiringStore) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return 0, nil
}

func (f *fakeExpiringStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// requireEventually polls a condition until it holds or the timeout
// elapses, so scheduler jitter does not flake the sweeper tests.
func requireEventually(t *testing.T, timeout, tick time.Duration, condition func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		if condition() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal(msg)
		}
		<-ticker.C
	}
}

func TestExpireSweeper_CallsExpirePending(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &fakeExpiringStore{}
	s := &expireSweeper{
		donations: store,
		interval:  10 * time.Millisecond,
		logger:    logx.Nop(),
	}
	go s.Run(ctx)

	requireEventually(
		t,
		500*time.Millisecond,
		5*time.Millisecond,
		func() bool { return store.Calls() > 0 },
		"expected ExpirePending to be called at least once",
	)
	cancel()
}

func TestExpireSweeper_DisabledInterval_ReturnsImmediately(t *testing.T) {
	t.Parallel()

	s := &expireSweeper{
		donations: &fakeExpiringStore{},
		interval:  0,
		logger:    logx.Nop(),
	}

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return with a zero interval")
	}
}

func TestGracefulShutdown_DoesNotPanic(t *testing.T) {
	t.Parallel()

	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}

	require.NotPanics(t, func() {
		gracefulShutdown(srv, logx.Nop(), 100*time.Millisecond)
	})
}

func TestRun_InvokesViaContainer(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := testlog.New()
	container := dig.New()

	require.NoError(t, container.Provide(func() context.Context { return ctx }))
	require.NoError(t, container.Provide(func() logx.Logger { return rec.Logger() }))
	require.NoError(t, container.Provide(func() *pgxpool.Pool { return nil }))
	require.NoError(t, container.Provide(func() *http.Server {
		return &http.Server{
			Addr:    "127.0.0.1:0",
			Handler: http.NewServeMux(),
		}
	}))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := run(container)
	require.NoError(t, err)
	require.True(t, hasLogMsg(rec.Entries(), "shutting down service-matching"))
}

func TestRun_StartsProvidedPprofServer(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := testlog.New()
	container := dig.New()

	require.NoError(t, container.Provide(func() context.Context { return ctx }))
	require.NoError(t, container.Provide(func() logx.Logger { return rec.Logger() }))
	require.NoError(t, container.Provide(func() *pgxpool.Pool { return nil }))
	require.NoError(t, container.Provide(func() *http.Server {
		return &http.Server{
			Addr:    "127.0.0.1:0",
			Handler: http.NewServeMux(),
		}
	}))

	pprofSrv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}
	require.NoError(t, container.Provide(func() *http.Server {
		return pprofSrv
	}, dig.Name("pprof_server")))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := run(container)
	require.NoError(t, err)
	require.True(t, hasLogMsg(rec.Entries(), "pprof listening"))

	// run shut the profiling server down together with the main one.
	require.ErrorIs(t, pprofSrv.ListenAndServe(), http.ErrServerClosed)
}

func hasLogMsg(entries []testlog.Entry, msg string) bool {
	for _, e := range entries {
		if e.Msg == msg {
			return true
		}
	}
	return false
}
