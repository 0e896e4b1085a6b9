package port

import "context"

// ImageInput is one image attached to a completion request.
type ImageInput struct {
	Bytes       []byte
	ContentType string
}

// CompletionRequest carries a single-turn prompt, optionally with images for
// vision-capable models.
type CompletionRequest struct {
	Prompt      string
	Images      []ImageInput
	Temperature float64
}

// CompletionResponse is the raw completion text returned by a model.
type CompletionResponse struct {
	Text      string
	ModelUsed string
}

// AIClient abstracts LLM text and vision completions.
type AIClient interface {
	// IsAvailable reports whether credentials are configured. Callers must
	// check it before Complete; an unavailable client never touches the network.
	IsAvailable() bool
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
