package llm

// GenerateRequest represents a text completion request (Ollama /api/generate).
type GenerateRequest struct {
	Model  string `json:"model"`            // Model name, already normalized (e.g. "llama2:latest")
	Prompt string `json:"prompt"`           // The prompt to complete
	Stream *bool  `json:"stream,omitempty"` // Whether to stream responses (default: true in Ollama)
	System string `json:"system,omitempty"` // Optional system prompt override

	Options *Options `json:"options,omitempty"`
}

// ChatRequest represents a chat completion request (Ollama /api/chat).
type ChatRequest struct {
	Model    string    `json:"model"`            // Model name, already normalized
	Messages []Message `json:"messages"`         // Conversation history, oldest first
	Stream   *bool     `json:"stream,omitempty"` // Whether to stream responses (default: true in Ollama)

	Options *Options `json:"options,omitempty"`
}

// ShowRequest represents a model inspection request (Ollama /api/show).
type ShowRequest struct {
	Name string `json:"name"` // Model name, already normalized
}

// EmbedRequest represents an embedding request (Ollama /api/embed).
// Input is either a single string or a []string; the wire shape differs
// accordingly and Ollama accepts both.
type EmbedRequest struct {
	Model    string `json:"model"`              // Model name, already normalized
	Input    any    `json:"input"`              // string or []string
	Truncate *bool  `json:"truncate,omitempty"` // Truncate inputs that exceed the context window

	Options *Options `json:"options,omitempty"`
}
