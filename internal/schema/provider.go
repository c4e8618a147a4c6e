package schema

// Model is one entry of the service's model catalog. Identity is ID.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ChatRequest is the JSON body of a multi-turn request.
// Model is omitted so the service falls back to its own default.
type ChatRequest struct {
	Messages    []Turn  `json:"messages"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Model       string  `json:"model,omitempty"`
}

// ModelsResponse is the JSON payload returned by the models endpoint.
type ModelsResponse struct {
	Success bool    `json:"success"`
	Models  []Model `json:"models"`
}
