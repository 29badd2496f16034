package workers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/internal/store"
)

func TestTickerJob_RunsAndStops(t *testing.T) {
	var runs atomic.Int64
	job := newTickerJob(5*time.Millisecond, func(context.Context) {
		runs.Add(1)
	})

	job.Start(context.Background())

	require.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, time.Second, time.Millisecond)

	job.Stop()
	after := runs.Load()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no ticks may fire after Stop returns")

	// stopping an idle job is a no-op
	job.Stop()
}

func TestTickerJob_StopsOnContextCancel(t *testing.T) {
	var runs atomic.Int64
	job := newTickerJob(5*time.Millisecond, func(context.Context) {
		runs.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx)

	require.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, time.Second, time.Millisecond)

	cancel()
	job.Stop()
}

func TestSweepJob_EvictsExpiredEntries(t *testing.T) {
	codes := store.NewCodeRegistry()
	resets := store.NewResetRegistry()

	codes.Put("stale", store.PendingCode{Code: "111111", ExpiresAt: time.Now().Add(-time.Minute)})
	codes.Put("fresh", store.PendingCode{Code: "222222", ExpiresAt: time.Now().Add(time.Hour)})
	resets.Put("stale-token", store.ResetEntry{Username: "alice", ExpiresAt: time.Now().Add(-time.Minute)})

	job := NewSweepJob(codes, resets, 5*time.Millisecond, logger.Nop())
	job.Start(context.Background())
	defer job.Stop()

	require.Eventually(t, func() bool {
		return codes.Len() == 1
	}, time.Second, time.Millisecond)

	_, ok := codes.Get("fresh")
	assert.True(t, ok, "unexpired entries must survive the sweep")
	_, ok = resets.Get("stale-token")
	assert.False(t, ok)
}

func TestNewKeepAliveJob_DisabledWithoutURL(t *testing.T) {
	assert.Nil(t, NewKeepAliveJob("", time.Minute, logger.Nop()))
}

func TestKeepAliveJob_PingsURL(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	job := NewKeepAliveJob(srv.URL, 5*time.Millisecond, logger.Nop())
	require.NotNil(t, job)

	job.Start(context.Background())
	defer job.Stop()

	require.Eventually(t, func() bool {
		return hits.Load() >= 2
	}, time.Second, time.Millisecond)
}

func TestNewWorkers_SkipsNilJobs(t *testing.T) {
	var runs atomic.Int64
	job := newTickerJob(5*time.Millisecond, func(context.Context) {
		runs.Add(1)
	})

	w := NewWorkers(nil, job, nil)
	w.StartAll(context.Background())

	require.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, time.Second, time.Millisecond)

	w.StopAll()
}
