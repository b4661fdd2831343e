package restapi

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"askdata.insights.org/internal/query"
)

func TestSessionStoreSweep(t *testing.T) {
	clock := testNow
	store := newSessionStore(time.Minute)
	store.now = func() time.Time { return clock }

	idle := store.create(query.NewSession(nil, 0, nil))
	used := store.create(query.NewSession(nil, 0, nil))

	clock = clock.Add(40 * time.Second)
	_, ok := store.get(used)
	require.True(t, ok)
	assert.Equal(t, 0, store.sweep(), "nothing is idle for a full minute yet")

	clock = clock.Add(20 * time.Second)
	assert.Equal(t, 1, store.sweep())
	_, ok = store.get(idle)
	assert.False(t, ok)
	_, ok = store.get(used)
	assert.True(t, ok)
	assert.Equal(t, 1, store.len())
}

func TestSessionStoreStartWithoutTTL(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	store := newSessionStore(0)
	store.start(func(int) { t.Error("sweep should not run") })
	store.create(query.NewSession(nil, 0, nil))
	store.stop()
	store.stop()
	assert.Equal(t, 1, store.len())
}

func TestSessionStoreStopEndsSweep(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var sweeps atomic.Int32
	store := newSessionStore(20 * time.Millisecond)
	store.start(func(removed int) { sweeps.Add(int32(removed)) })
	store.create(query.NewSession(nil, 0, nil))

	require.Eventually(t, func() bool { return sweeps.Load() == 1 }, time.Second, 5*time.Millisecond)
	store.stop()
	assert.Equal(t, 0, store.len())
}

func TestIdleSessionsExpire(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = -1
	cfg.SessionIdleTTL = 50 * time.Millisecond
	api := createTestApiWithConfig(t, cfg)
	server := newTestServer(t, api)

	for i := 0; i < 20; i++ {
		createSession(t, server.URL)
	}

	require.Eventually(t, func() bool { return api.sessions.len() == 0 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(api.Metrics.ActiveSessions) == 0
	}, time.Second, 10*time.Millisecond)
}
