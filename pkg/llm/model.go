package llm

import "strings"

// Model describes one locally installed model as reported by /api/tags.
type Model struct {
	Name       string         `json:"name"`              // Tagged name (e.g. "llama2:latest")
	ModifiedAt string         `json:"modified_at"`       // Last modification timestamp
	Size       int64          `json:"size"`              // On-disk size in bytes
	Digest     string         `json:"digest"`            // Content digest
	Details    map[string]any `json:"details,omitempty"` // Opaque model metadata
}

// RunningModel describes one loaded model as reported by /api/ps.
// ExpiresAt and SizeVRAM are absent on some Ollama versions; the zero
// value stands in for "unset".
type RunningModel struct {
	Name      string         `json:"name"`
	Model     string         `json:"model"`
	Size      int64          `json:"size"`
	Digest    string         `json:"digest"`
	Details   map[string]any `json:"details,omitempty"`
	ExpiresAt string         `json:"expires_at,omitempty"`
	SizeVRAM  int64          `json:"size_vram,omitempty"`
}

// NormalizeModel appends the ":latest" tag to a bare model name. Names that
// already carry a tag are returned unchanged. Applied on the request side
// before any call leaves the bridge, so comparisons against Ollama's tagged
// names line up.
func NormalizeModel(name string) string {
	if strings.Contains(name, ":") {
		return name
	}
	return name + ":latest"
}
