package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/profile"
)

type stubClient struct {
	resp    string
	err     error
	lastReq CompletionRequest
}

func (s *stubClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	s.lastReq = req
	return s.resp, s.err
}

const goodResponse = `{
	"contactInformation": {"name": "Ada Lovelace", "email": "ada@example.com"},
	"skills": {"technical": ["Go"], "soft": []},
	"analysis": {"atsScore": 82}
}`

func TestAnalyzeParsesModelOutput(t *testing.T) {
	client := &stubClient{resp: goodResponse}
	a := NewAnalyzer(client, PromptConfig{})

	res := a.Analyze(context.Background(), AnalyzeInput{Text: "resume", ModelID: "openai/gpt-4o"})
	if res.UsedFallback {
		t.Fatal("fallback used for a good response")
	}
	if res.Structured == nil {
		t.Fatal("structured profile missing")
	}
	if res.Structured.ContactInformation.Name != "Ada Lovelace" {
		t.Fatalf("name = %q", res.Structured.ContactInformation.Name)
	}
	if res.Structured.Analysis.ATSScore != 82 {
		t.Fatalf("atsScore = %d", res.Structured.Analysis.ATSScore)
	}
	if res.Raw != goodResponse {
		t.Fatal("raw response not preserved")
	}
}

func TestAnalyzeFallsBackOnClientError(t *testing.T) {
	client := &stubClient{err: errors.New("request timeout")}
	a := NewAnalyzer(client, PromptConfig{})

	text := "John Smith\njohn@example.com\nBachelor of Science"
	res := a.Analyze(context.Background(), AnalyzeInput{Text: text, ModelID: "any"})
	if !res.UsedFallback {
		t.Fatal("fallback not used on client error")
	}
	if res.Structured == nil {
		t.Fatal("fallback must still yield a structured profile")
	}
	if res.Structured.ContactInformation.Email != "john@example.com" {
		t.Fatalf("fallback email = %q", res.Structured.ContactInformation.Email)
	}
	if res.Structured.Analysis.ATSScore != profile.NeutralATSScore {
		t.Fatalf("fallback atsScore = %d, want %d", res.Structured.Analysis.ATSScore, profile.NeutralATSScore)
	}
	if res.Raw != "" {
		t.Fatalf("raw = %q, want empty on client error", res.Raw)
	}
}

func TestAnalyzePreservesUnparseableBody(t *testing.T) {
	client := &stubClient{resp: "I could not process this resume, sorry."}
	a := NewAnalyzer(client, PromptConfig{})

	res := a.Analyze(context.Background(), AnalyzeInput{Text: "resume", ModelID: "any"})
	if !res.UsedFallback {
		t.Fatal("fallback flag not set for unparseable body")
	}
	if res.Structured != nil {
		t.Fatal("structured must be nil when the body could not be parsed")
	}
	if res.Raw != "I could not process this resume, sorry." {
		t.Fatalf("raw = %q, original body must be preserved", res.Raw)
	}
}

func TestAnalyzeStripsFences(t *testing.T) {
	client := &stubClient{resp: "```json\n" + goodResponse + "\n```"}
	a := NewAnalyzer(client, PromptConfig{})

	res := a.Analyze(context.Background(), AnalyzeInput{Text: "resume", ModelID: "any"})
	if res.UsedFallback || res.Structured == nil {
		t.Fatalf("fenced JSON not parsed: %+v", res)
	}
}

func TestAnalyzeBindsPromptAndFamily(t *testing.T) {
	client := &stubClient{resp: goodResponse}
	a := NewAnalyzer(client, PromptConfig{})

	a.Analyze(context.Background(), AnalyzeInput{Text: "RESUME BODY", ModelID: "gpt-4o-mini"})
	req := client.lastReq
	if req.Temperature != 0.3 {
		t.Fatalf("temperature = %v, want compact family 0.3", req.Temperature)
	}
	if req.MaxTokens != 4096 {
		t.Fatalf("maxTokens = %d", req.MaxTokens)
	}
	if want := "RESUME BODY"; !strings.Contains(req.UserPrompt, want) {
		t.Fatalf("user prompt missing resume text: %q", req.UserPrompt)
	}
	if strings.Contains(req.UserPrompt, "{{RESUME_TEXT}}") {
		t.Fatal("placeholder left unbound")
	}
}

func TestAnalyzeOverridesWin(t *testing.T) {
	client := &stubClient{resp: goodResponse}
	a := NewAnalyzer(client, PromptConfig{})

	a.Analyze(context.Background(), AnalyzeInput{
		Text:                 "BODY",
		ModelID:              "gpt-4o-mini",
		PromptOverride:       "Custom: {{RESUME_TEXT}}",
		SystemPromptOverride: "Custom system prompt.",
	})
	req := client.lastReq
	if req.UserPrompt != "Custom: BODY" {
		t.Fatalf("user prompt = %q", req.UserPrompt)
	}
	if req.SystemPrompt != "Custom system prompt." {
		t.Fatalf("system prompt = %q", req.SystemPrompt)
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"```json{\"a\":1}```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := StripCodeFences(tc.in); got != tc.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
