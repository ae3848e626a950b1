package bridge

import (
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultBaseURL is where a stock Ollama install listens.
	DefaultBaseURL = "http://localhost:11434"

	// DefaultTimeout bounds one non-streaming request.
	DefaultTimeout = 30 * time.Second
)

// Config is the pair every outgoing request snapshots at issue time. A
// SetConfig call after issuance never mutates an in-flight request.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the stock local-Ollama configuration.
func DefaultConfig() Config {
	return Config{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout}
}

// configStore guards the process-wide configuration. Writes replace the pair
// wholesale; reads hand out copies.
type configStore struct {
	mu  sync.RWMutex
	cfg Config
}

func newConfigStore() *configStore {
	return &configStore{cfg: DefaultConfig()}
}

func (s *configStore) replace(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *configStore) snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// fileConfig is the on-disk TOML shape.
type fileConfig struct {
	BaseURL        string  `toml:"base_url"`
	TimeoutSeconds float64 `toml:"timeout_seconds"`
}

// LoadConfigFile parses a TOML configuration file. Absent fields fall back
// to the defaults; a non-positive timeout is rejected as a ConfigError
// rather than clamped, since a file can be fixed at the source.
func LoadConfigFile(path string) (Config, error) {
	fc := fileConfig{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: DefaultTimeout.Seconds(),
	}
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return Config{}, &ConfigError{Detail: err.Error()}
	}

	if fc.TimeoutSeconds <= 0 {
		return Config{}, &ConfigError{Detail: "timeout_seconds must be positive"}
	}
	if strings.TrimSpace(fc.BaseURL) == "" {
		return Config{}, &ConfigError{Detail: "base_url must not be empty"}
	}

	return Config{
		BaseURL: strings.TrimRight(fc.BaseURL, "/"),
		Timeout: time.Duration(fc.TimeoutSeconds * float64(time.Second)),
	}, nil
}
