package bridge

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetConfigReplacesWholesale(t *testing.T) {
	b := New(zap.NewNop())
	b.SetConfig("http://10.0.0.5:11434/", 120)

	cfg := b.Config()
	assert.Equal(t, "http://10.0.0.5:11434", cfg.BaseURL)
	assert.Equal(t, 120*time.Second, cfg.Timeout)
}

func TestSetConfigClampsNonPositiveTimeout(t *testing.T) {
	b := New(zap.NewNop())

	b.SetConfig("http://localhost:11434", 0)
	assert.Equal(t, DefaultTimeout, b.Config().Timeout)

	b.SetConfig("http://localhost:11434", -5)
	assert.Equal(t, DefaultTimeout, b.Config().Timeout)
}

func TestSetConfigEmptyURLFallsBackToDefault(t *testing.T) {
	b := New(zap.NewNop())
	b.SetConfig("", 10)

	assert.Equal(t, DefaultBaseURL, b.Config().BaseURL)
}

func TestConfigSnapshotIsolation(t *testing.T) {
	store := newConfigStore()
	before := store.snapshot()

	store.replace(Config{BaseURL: "http://elsewhere:1234", Timeout: time.Second})

	assert.Equal(t, DefaultBaseURL, before.BaseURL)
	assert.Equal(t, DefaultTimeout, before.Timeout)
	assert.Equal(t, "http://elsewhere:1234", store.snapshot().BaseURL)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gmollama.toml")
	require.NoError(t, os.WriteFile(path, []byte("base_url = \"http://192.168.1.10:11434/\"\ntimeout_seconds = 45\n"), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.10:11434", cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestLoadConfigFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gmollama.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoadConfigFileRejectsNonPositiveTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gmollama.toml")
	require.NoError(t, os.WriteFile(path, []byte("timeout_seconds = -1\n"), 0o644))

	_, err := LoadConfigFile(path)

	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.toml"))

	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
}

func TestWatchConfigFileAppliesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gmollama.toml")
	require.NoError(t, os.WriteFile(path, []byte("base_url = \"http://localhost:11434\"\n"), 0o644))

	b := New(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, b.WatchConfigFile(ctx, path))

	require.NoError(t, os.WriteFile(path, []byte("base_url = \"http://10.1.2.3:11434\"\ntimeout_seconds = 7\n"), 0o644))

	assert.Eventually(t, func() bool {
		return b.Config().BaseURL == "http://10.1.2.3:11434"
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, 7*time.Second, b.Config().Timeout)
}
