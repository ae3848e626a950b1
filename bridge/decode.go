package bridge

import (
	"encoding/json"

	"github.com/gmodtools/gmollama/pkg/llm"
)

// One decoder per endpoint. Each is a pure function over the raw body:
// required fields are checked through pointer aux structs so "absent" and
// "empty" stay distinguishable, and a missing required field fails the whole
// call instead of producing a default-filled payload.

func decodeGenerate(raw []byte) (llm.Payload, error) {
	var aux struct {
		Model    string  `json:"model"`
		Response *string `json:"response"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, &DecodeError{Endpoint: "generate", Detail: err.Error()}
	}
	if aux.Response == nil {
		return nil, &DecodeError{Endpoint: "generate", Detail: `missing "response"`}
	}

	return &llm.GenerateResult{Model: aux.Model, Response: *aux.Response}, nil
}

func decodeChat(raw []byte) (llm.Payload, error) {
	var aux struct {
		Model   string `json:"model"`
		Message *struct {
			Role    *string `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, &DecodeError{Endpoint: "chat", Detail: err.Error()}
	}
	if aux.Message == nil {
		return nil, &DecodeError{Endpoint: "chat", Detail: `missing "message"`}
	}
	if aux.Message.Role == nil {
		return nil, &DecodeError{Endpoint: "chat", Detail: `missing "message.role"`}
	}
	if aux.Message.Content == nil {
		return nil, &DecodeError{Endpoint: "chat", Detail: `missing "message.content"`}
	}

	return &llm.ChatResult{
		Model:   aux.Model,
		Role:    *aux.Message.Role,
		Content: *aux.Message.Content,
	}, nil
}

func decodeTags(raw []byte) (llm.Payload, error) {
	var aux struct {
		Models *[]llm.Model `json:"models"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, &DecodeError{Endpoint: "tags", Detail: err.Error()}
	}
	if aux.Models == nil {
		return nil, &DecodeError{Endpoint: "tags", Detail: `missing "models"`}
	}

	return &llm.ModelList{Models: *aux.Models}, nil
}

func decodeShow(raw []byte) (llm.Payload, error) {
	// All four fields are optional in Ollama's response; absent ones decode
	// to empty strings rather than failing.
	var aux llm.ModelDetails
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, &DecodeError{Endpoint: "show", Detail: err.Error()}
	}

	return &aux, nil
}

func decodePS(raw []byte) (llm.Payload, error) {
	var aux struct {
		Models *[]llm.RunningModel `json:"models"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, &DecodeError{Endpoint: "ps", Detail: err.Error()}
	}
	if aux.Models == nil {
		return nil, &DecodeError{Endpoint: "ps", Detail: `missing "models"`}
	}

	return &llm.RunningModelList{Models: *aux.Models}, nil
}

func decodeEmbed(raw []byte) (llm.Payload, error) {
	var aux struct {
		Model      *string      `json:"model"`
		Embeddings *[][]float64 `json:"embeddings"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, &DecodeError{Endpoint: "embed", Detail: err.Error()}
	}
	if aux.Model == nil {
		return nil, &DecodeError{Endpoint: "embed", Detail: `missing "model"`}
	}
	if aux.Embeddings == nil {
		return nil, &DecodeError{Endpoint: "embed", Detail: `missing "embeddings"`}
	}

	return &llm.EmbeddingsResult{Model: *aux.Model, Embeddings: *aux.Embeddings}, nil
}
