package bridge

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	// probeInterval is how often reachability is re-checked.
	probeInterval = 2 * time.Second

	// probeTimeout bounds one reachability probe. Deliberately independent
	// of the configured request timeout: the probe is a cheap GET on the
	// root endpoint and should fail fast.
	probeTimeout = 2 * time.Second
)

// prober re-checks Ollama reachability on a fixed interval and caches the
// answer. IsRunning reads only the cache, so the host thread never waits on
// the network. Until the first probe completes the cache reports false.
type prober struct {
	client *client
	config *configStore
	logger *zap.Logger

	mu          sync.RWMutex
	reachable   bool
	lastChecked time.Time

	// checking is the Checking/Idle state: a tick that fires while a probe
	// is still in flight is skipped.
	checking atomic.Bool
}

func newProber(client *client, config *configStore, logger *zap.Logger) *prober {
	return &prober{client: client, config: config, logger: logger}
}

// run drives the probe loop until ctx is cancelled. An immediate first probe
// populates the cache without waiting a full interval.
func (p *prober) run(ctx context.Context) {
	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *prober) tick(ctx context.Context) {
	if !p.checking.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer p.checking.Store(false)
		p.probe(ctx)
	}()
}

func (p *prober) probe(ctx context.Context) {
	cfg := p.config.snapshot()
	_, err := p.client.send(ctx, http.MethodGet, cfg.BaseURL, nil, probeTimeout)
	reachable := err == nil

	p.mu.Lock()
	changed := reachable != p.reachable
	p.reachable = reachable
	p.lastChecked = time.Now()
	p.mu.Unlock()

	if changed {
		p.logger.Info("Ollama reachability changed",
			zap.Bool("reachable", reachable),
			zap.String("base_url", cfg.BaseURL),
		)
	}
}

// isReachable returns the cached answer without blocking and without
// triggering a probe.
func (p *prober) isReachable() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.reachable
}

// lastProbe returns when the cache was last written; zero before the first
// probe completes.
func (p *prober) lastProbe() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastChecked
}
