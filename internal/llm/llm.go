package llm

import "context"

// Client abstracts the remote analysis model: text in, one completion out.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is a single call to the analysis model.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

// AnalyzeInput captures one analysis request. Overrides, when set, win over
// the family prompt table.
type AnalyzeInput struct {
	Text                 string
	ModelID              string
	PromptOverride       string
	SystemPromptOverride string
}
