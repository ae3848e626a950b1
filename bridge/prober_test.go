package bridge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIsRunningDefaultsToFalse(t *testing.T) {
	b := New(zap.NewNop())

	assert.False(t, b.IsRunning())
	assert.True(t, b.LastProbe().IsZero())
}

func TestProbeMarksReachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Ollama is running"))
	}))
	defer srv.Close()

	b := New(zap.NewNop())
	b.SetConfig(srv.URL, 30)

	b.prober.probe(context.Background())

	assert.True(t, b.IsRunning())
	assert.False(t, b.LastProbe().IsZero())
}

func TestProbeMarksUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	b := New(zap.NewNop())
	b.SetConfig(url, 30)

	b.prober.probe(context.Background())

	assert.False(t, b.IsRunning())
	assert.False(t, b.LastProbe().IsZero())
}

func TestProberRecoversWhenServerReturns(t *testing.T) {
	var up atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !up.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	b := New(zap.NewNop())
	b.SetConfig(srv.URL, 30)

	b.prober.probe(context.Background())
	assert.False(t, b.IsRunning())

	up.Store(true)
	b.prober.probe(context.Background())
	assert.True(t, b.IsRunning())
}

func TestIsRunningDoesNotBlock(t *testing.T) {
	// Reads come from the cache; even with nothing listening and no probe
	// ever run, the call returns immediately.
	b := New(zap.NewNop())
	b.SetConfig("http://127.0.0.1:1", 30)

	start := time.Now()
	for i := 0; i < 1000; i++ {
		b.IsRunning()
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestProberTickSkipsWhileChecking(t *testing.T) {
	release := make(chan struct{})
	var probes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
		<-release
	}))
	defer srv.Close()

	b := New(zap.NewNop())
	b.SetConfig(srv.URL, 30)

	ctx := context.Background()
	b.prober.tick(ctx)
	assert.Eventually(t, func() bool { return b.prober.checking.Load() }, time.Second, 5*time.Millisecond)

	// Still checking: further ticks must not start a second probe.
	b.prober.tick(ctx)
	b.prober.tick(ctx)

	close(release)
	assert.Eventually(t, func() bool { return !b.prober.checking.Load() }, time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 1, probes.Load())
}
