// Package llm provides the Ollama wire types exchanged by the bridge and the
// decoded payload variants handed back to host callbacks.
package llm

// Message represents a single message in a conversation.
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // The message content
}
