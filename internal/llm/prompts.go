package llm

import "strings"

// FamilyConfig tunes prompts and sampling for one model family. Compact
// models drift into markdown commentary more readily, so their wording is
// stricter and their temperature lower.
type FamilyConfig struct {
	Name         string
	Match        []string
	SystemPrompt string
	UserTemplate string
	Temperature  float32
}

// PromptConfig is resolved once at orchestrator construction.
type PromptConfig struct {
	Families  []FamilyConfig
	Default   FamilyConfig
	MaxTokens int
}

// PromptContext is the typed input bound into a user prompt template.
type PromptContext struct {
	ResumeText string
}

const resumeSchemaHint = `Return a single JSON object with exactly these keys:
contactInformation{name,email,phone,location,linkedin}, skills{technical,soft},
workExperience[{company,position,duration,responsibilities,achievements}],
education[{institution,degree,field,graduationDate}], certifications,
summary, analysis{strengths,areasForImprovement,keywords,atsScore}.
Use "NA" for unknown strings and [] for unknown lists. atsScore is an
integer from 0 to 100.`

const defaultUserTemplate = `Analyze the following resume and produce the structured profile.

` + resumeSchemaHint + `

Resume text:
{{RESUME_TEXT}}`

const compactUserTemplate = `Extract a structured profile from the resume below.
Output raw JSON only. No markdown fences, no commentary, no explanation
before or after the JSON.

` + resumeSchemaHint + `

Resume text:
{{RESUME_TEXT}}`

// DefaultPromptConfig returns the built-in family table.
func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		Families: []FamilyConfig{
			{
				Name:         "compact",
				Match:        []string{"mini", "flash", "scout", "gemma", "8b", "7b", ":free"},
				SystemPrompt: "You are a resume parsing engine. You respond with raw JSON only. Any non-JSON output is a failure.",
				UserTemplate: compactUserTemplate,
				Temperature:  0.3,
			},
		},
		Default: FamilyConfig{
			Name:         "default",
			SystemPrompt: "You are a resume analysis engine. Respond with JSON only. Output must match the schema exactly.",
			UserTemplate: defaultUserTemplate,
			Temperature:  0.5,
		},
		MaxTokens: 4096,
	}
}

// Resolve picks the family for a model id; the first substring match wins
// and unknown ids fall through to the default family.
func (c PromptConfig) Resolve(modelID string) FamilyConfig {
	lower := strings.ToLower(strings.TrimSpace(modelID))
	for _, fam := range c.Families {
		for _, m := range fam.Match {
			if strings.Contains(lower, m) {
				return fam
			}
		}
	}
	return c.Default
}

// BindUserPrompt fills a user prompt template from the typed context.
func BindUserPrompt(template string, pc PromptContext) string {
	replacer := strings.NewReplacer(
		"{{RESUME_TEXT}}", pc.ResumeText,
	)
	return replacer.Replace(template)
}
