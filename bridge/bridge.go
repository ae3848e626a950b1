// Package bridge implements the asynchronous bridge between a
// single-threaded, tick-driven host and a local Ollama server. The host
// issues requests with error-first callbacks; background goroutines perform
// the HTTP round trip and decode; completed calls queue up until the host's
// own tick drains them. Host callbacks are only ever invoked from Tick, so a
// host that calls Tick from its scripting thread keeps every callback on
// that thread.
package bridge

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gmodtools/gmollama/pkg/callqueue"
	"github.com/gmodtools/gmollama/pkg/llm"
)

// Callback receives the terminal result of one call: err on failure, data on
// success, never both and never neither. Every issued call produces exactly
// one invocation, including on timeout and decode failure.
type Callback = callqueue.Callback[llm.Payload]

// Bridge is the host-facing surface. All exported methods are safe for
// concurrent use, but Tick is meant to be called from a single host thread.
type Bridge struct {
	logger *zap.Logger
	config *configStore
	client *client
	calls  *callqueue.Queue[llm.Payload]
	prober *prober

	cancel context.CancelFunc
}

// New creates a bridge with the default configuration. A nil logger
// disables logging.
func New(logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}

	config := newConfigStore()
	client := newClient(logger)

	return &Bridge{
		logger: logger,
		config: config,
		client: client,
		calls:  callqueue.New[llm.Payload](),
		prober: newProber(client, config, logger),
	}
}

// Start launches the liveness prober. Until the first probe completes,
// IsRunning reports false.
func (b *Bridge) Start() {
	if b.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go b.prober.run(ctx)
}

// Close stops the prober. In-flight calls still complete and their
// callbacks are delivered by subsequent Ticks.
func (b *Bridge) Close() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// SetConfig replaces the base URL and request timeout wholesale. A
// non-positive timeout is clamped to the 30s default; the clamp is logged as
// a configuration error but the call still takes effect. Requests already in
// flight keep the configuration they were issued with.
func (b *Bridge) SetConfig(baseURL string, timeoutSeconds float64) {
	cfg := Config{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: time.Duration(timeoutSeconds * float64(time.Second)),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if timeoutSeconds <= 0 {
		cerr := &ConfigError{Detail: fmt.Sprintf("timeout %g <= 0, using default", timeoutSeconds)}
		b.logger.Warn("clamping configured timeout", zap.Error(cerr))
		cfg.Timeout = DefaultTimeout
	}

	b.config.replace(cfg)
	b.logger.Info("configuration replaced",
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("timeout", cfg.Timeout),
	)
}

// ApplyConfig replaces the configuration from an already validated Config,
// e.g. one produced by LoadConfigFile.
func (b *Bridge) ApplyConfig(cfg Config) {
	b.SetConfig(cfg.BaseURL, cfg.Timeout.Seconds())
}

// Config returns a snapshot of the current configuration.
func (b *Bridge) Config() Config {
	return b.config.snapshot()
}

// =============================================================================
// LIVENESS
// =============================================================================

// IsRunning reports the most recently cached reachability of the Ollama
// server. It never blocks and never performs network I/O itself; the prober
// refreshes the cache every 2 seconds once Start has been called.
func (b *Bridge) IsRunning() bool {
	return b.prober.isReachable()
}

// LastProbe returns when the reachability cache was last refreshed; the zero
// time before the first probe completes.
func (b *Bridge) LastProbe() time.Time {
	return b.prober.lastProbe()
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Generate asks model to complete prompt. system, when non-empty, overrides
// the model's system prompt. The callback receives a *llm.GenerateResult.
func (b *Bridge) Generate(model, prompt, system string, cb Callback) {
	req := &llm.GenerateRequest{
		Model:  llm.NormalizeModel(model),
		Prompt: prompt,
		Stream: ptr(false),
		System: system,
	}
	b.issue("generate", cb, func(ctx context.Context, cfg Config) (llm.Payload, error) {
		raw, err := b.client.send(ctx, http.MethodPost, cfg.BaseURL+"/api/generate", req, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return decodeGenerate(raw)
	})
}

// Chat sends a conversation to model. The callback receives a
// *llm.ChatResult holding the assistant's reply.
func (b *Bridge) Chat(model string, messages []llm.Message, cb Callback) {
	req := &llm.ChatRequest{
		Model:    llm.NormalizeModel(model),
		Messages: messages,
		Stream:   ptr(false),
	}
	b.issue("chat", cb, func(ctx context.Context, cfg Config) (llm.Payload, error) {
		raw, err := b.client.send(ctx, http.MethodPost, cfg.BaseURL+"/api/chat", req, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return decodeChat(raw)
	})
}

// ListModels fetches the locally installed models. The callback receives a
// *llm.ModelList.
func (b *Bridge) ListModels(cb Callback) {
	b.issue("tags", cb, func(ctx context.Context, cfg Config) (llm.Payload, error) {
		raw, err := b.client.send(ctx, http.MethodGet, cfg.BaseURL+"/api/tags", nil, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return decodeTags(raw)
	})
}

// GetModelInfo fetches license, modelfile, parameters and template for
// model. The callback receives a *llm.ModelDetails; fields Ollama omits
// arrive as empty strings.
func (b *Bridge) GetModelInfo(model string, cb Callback) {
	req := &llm.ShowRequest{Name: llm.NormalizeModel(model)}
	b.issue("show", cb, func(ctx context.Context, cfg Config) (llm.Payload, error) {
		raw, err := b.client.send(ctx, http.MethodPost, cfg.BaseURL+"/api/show", req, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return decodeShow(raw)
	})
}

// IsModelAvailable reports whether model is installed locally. It lists the
// installed models and searches for the normalized name; no dedicated remote
// call exists. The callback receives a *llm.Availability, and a transport
// failure surfaces exactly as it would from ListModels.
func (b *Bridge) IsModelAvailable(model string, cb Callback) {
	name := llm.NormalizeModel(model)
	b.issue("available", cb, func(ctx context.Context, cfg Config) (llm.Payload, error) {
		raw, err := b.client.send(ctx, http.MethodGet, cfg.BaseURL+"/api/tags", nil, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		payload, err := decodeTags(raw)
		if err != nil {
			return nil, err
		}

		available := false
		for _, m := range payload.(*llm.ModelList).Models {
			if m.Name == name {
				available = true
				break
			}
		}
		return &llm.Availability{Model: name, Available: available}, nil
	})
}

// GetRunningModels fetches the models currently loaded in memory. The
// callback receives a *llm.RunningModelList.
func (b *Bridge) GetRunningModels(cb Callback) {
	b.issue("ps", cb, func(ctx context.Context, cfg Config) (llm.Payload, error) {
		raw, err := b.client.send(ctx, http.MethodGet, cfg.BaseURL+"/api/ps", nil, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return decodePS(raw)
	})
}

// GenerateEmbeddings embeds input, which must be a string or a []string. A
// single string yields one vector; K strings yield K vectors in input order.
// The callback receives a *llm.EmbeddingsResult.
func (b *Bridge) GenerateEmbeddings(model string, input any, cb Callback) {
	switch input.(type) {
	case string, []string:
	default:
		b.issue("embed", cb, func(context.Context, Config) (llm.Payload, error) {
			return nil, fmt.Errorf("embeddings input must be a string or a []string, got %T", input)
		})
		return
	}

	req := &llm.EmbedRequest{
		Model:    llm.NormalizeModel(model),
		Input:    input,
		Truncate: ptr(true),
	}
	b.issue("embed", cb, func(ctx context.Context, cfg Config) (llm.Payload, error) {
		raw, err := b.client.send(ctx, http.MethodPost, cfg.BaseURL+"/api/embed", req, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return decodeEmbed(raw)
	})
}

// =============================================================================
// DISPATCH
// =============================================================================

// Tick drains every completed call and invokes its callback with
// (err, data), in the order the calls completed. Call it from the host's
// per-tick hook; callbacks only ever run inside Tick. A panic inside one
// callback is recovered and logged so the rest of the drain still runs.
func (b *Bridge) Tick() {
	for _, c := range b.calls.DrainReady() {
		b.invoke(c)
	}
}

// Pending reports the number of calls not yet delivered to the host.
func (b *Bridge) Pending() int {
	return b.calls.Len()
}

func (b *Bridge) invoke(c callqueue.Completion[llm.Payload]) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("host callback panicked", zap.Any("panic", r))
		}
	}()
	c.Callback(c.Outcome.Err, c.Outcome.Data)
}

// issue registers the callback, snapshots the configuration and runs the
// transport+decode chain in the background. Enqueue happens before the
// goroutine starts, so the record exists before any possible completion.
func (b *Bridge) issue(op string, cb Callback, fn func(context.Context, Config) (llm.Payload, error)) {
	id := b.calls.Enqueue(cb)
	cfg := b.config.snapshot()
	b.logger.Debug("call issued",
		zap.String("op", op),
		zap.Uint64("id", uint64(id)),
	)

	go func() {
		payload, err := fn(context.Background(), cfg)
		if err != nil {
			b.logger.Debug("call failed",
				zap.String("op", op),
				zap.Uint64("id", uint64(id)),
				zap.Error(err),
			)
			b.calls.Complete(id, callqueue.Outcome[llm.Payload]{Err: err})
			return
		}
		b.logger.Debug("call completed",
			zap.String("op", op),
			zap.Uint64("id", uint64(id)),
		)
		b.calls.Complete(id, callqueue.Outcome[llm.Payload]{Data: payload})
	}()
}

func ptr[T any](v T) *T { return &v }
