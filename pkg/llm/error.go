package llm

// ErrorResponse represents a structured error body from the Ollama API.
type ErrorResponse struct {
	Error string `json:"error"`
}
