package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/gmodtools/gmollama/pkg/llm"
)

// client issues one HTTP call per request against the snapshotted
// configuration. It always runs off the host thread; the per-request context
// deadline enforces the configured timeout by cancelling the in-flight call.
type client struct {
	hc     *http.Client
	logger *zap.Logger
}

func newClient(logger *zap.Logger) *client {
	// No client-level timeout: the budget comes from each request's context
	// so a SetConfig call cannot mutate calls already in flight.
	return &client{
		hc:     &http.Client{},
		logger: logger,
	}
}

// send performs one request and returns the raw response body. Failures map
// onto the bridge taxonomy: deadline to TimeoutError, transport failures to
// ConnectionError, non-2xx statuses to RemoteError (decoding Ollama's
// structured error body when present).
func (c *client) send(ctx context.Context, method, url string, body any, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &ConnectionError{Cause: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &ConnectionError{Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Budget: timeout}
		}
		return nil, &ConnectionError{Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Budget: timeout}
		}
		return nil, &ConnectionError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remote := &RemoteError{Status: resp.StatusCode}
		var errBody llm.ErrorResponse
		if err := json.Unmarshal(raw, &errBody); err == nil && errBody.Error != "" {
			remote.Message = errBody.Error
		}
		c.logger.Debug("remote error",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
		return nil, remote
	}

	return raw, nil
}
