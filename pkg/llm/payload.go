package llm

// Payload is the decoded result of one successful remote call. Exactly one
// concrete variant reaches each host callback; the bridge never hands a
// callback both an error and a payload.
type Payload interface {
	isPayload()
}

// GenerateResult is the payload of a completed Generate call.
type GenerateResult struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// ChatResult is the payload of a completed Chat call.
type ChatResult struct {
	Model   string `json:"model"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelList is the payload of a completed ListModels call.
type ModelList struct {
	Models []Model `json:"models"`
}

// ModelDetails is the payload of a completed GetModelInfo call. Fields
// Ollama omits decode to empty strings.
type ModelDetails struct {
	License    string `json:"license"`
	Modelfile  string `json:"modelfile"`
	Parameters string `json:"parameters"`
	Template   string `json:"template"`
}

// RunningModelList is the payload of a completed GetRunningModels call.
type RunningModelList struct {
	Models []RunningModel `json:"models"`
}

// EmbeddingsResult is the payload of a completed GenerateEmbeddings call.
// Embeddings holds one vector per input, in input order.
type EmbeddingsResult struct {
	Model      string      `json:"model"`
	Embeddings [][]float64 `json:"embeddings"`
}

// Availability is the payload of a completed IsModelAvailable call.
type Availability struct {
	Model     string `json:"model"` // The normalized name that was searched for
	Available bool   `json:"available"`
}

func (*GenerateResult) isPayload()   {}
func (*ChatResult) isPayload()       {}
func (*ModelList) isPayload()        {}
func (*ModelDetails) isPayload()     {}
func (*RunningModelList) isPayload() {}
func (*EmbeddingsResult) isPayload() {}
func (*Availability) isPayload()     {}
