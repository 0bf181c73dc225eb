package llm

import (
	"context"
	"strings"

	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/profile"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/shared/telemetry"
)

// Result is the orchestrator output. Structured is nil only when a response
// body arrived but could not be parsed; Raw then preserves it for audit.
type Result struct {
	Structured   *profile.StructuredProfile
	Raw          string
	UsedFallback bool
}

// Analyzer builds prompts per model family, calls the analysis model, and
// degrades to a deterministic fallback profile instead of failing. Analyze
// never returns an error: remote failures must not block the pipeline.
type Analyzer struct {
	client Client
	config PromptConfig
}

// NewAnalyzer resolves the prompt configuration once at construction.
func NewAnalyzer(client Client, config PromptConfig) *Analyzer {
	if len(config.Families) == 0 && config.Default.UserTemplate == "" {
		config = DefaultPromptConfig()
	}
	return &Analyzer{client: client, config: config}
}

// Analyze runs one analysis request through the model.
func (a *Analyzer) Analyze(ctx context.Context, in AnalyzeInput) Result {
	family := a.config.Resolve(in.ModelID)

	system := family.SystemPrompt
	if strings.TrimSpace(in.SystemPromptOverride) != "" {
		system = in.SystemPromptOverride
	}
	user := BindUserPrompt(family.UserTemplate, PromptContext{ResumeText: in.Text})
	if strings.TrimSpace(in.PromptOverride) != "" {
		user = BindUserPrompt(in.PromptOverride, PromptContext{ResumeText: in.Text})
	}

	raw, err := a.client.Complete(ctx, CompletionRequest{
		Model:        in.ModelID,
		SystemPrompt: system,
		UserPrompt:   user,
		Temperature:  family.Temperature,
		MaxTokens:    a.config.MaxTokens,
	})
	if err != nil {
		telemetry.Error("llm.complete", map[string]any{
			"model":  in.ModelID,
			"family": family.Name,
			"error":  err.Error(),
		})
		fb := profile.Fallback(in.Text)
		return Result{Structured: &fb, Raw: "", UsedFallback: true}
	}

	cleaned := StripCodeFences(raw)
	parsed, err := profile.FromJSON(cleaned)
	if err != nil {
		telemetry.Error("llm.parse", map[string]any{
			"model":  in.ModelID,
			"family": family.Name,
			"error":  err.Error(),
		})
		return Result{Structured: nil, Raw: raw, UsedFallback: true}
	}
	return Result{Structured: &parsed, Raw: raw, UsedFallback: false}
}

// StripCodeFences removes fenced-code-block delimiters a model may have
// wrapped its JSON in.
func StripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	// drop a language tag like ```json
	if lower := strings.ToLower(trimmed); strings.HasPrefix(lower, "json") {
		trimmed = trimmed[len("json"):]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
