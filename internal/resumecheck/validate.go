package resumecheck

import (
	"fmt"
	"regexp"
	"strings"
)

// Verdict is the heuristic judgement over extracted text. It is advisory:
// callers proceed with the pipeline regardless of IsResume.
type Verdict struct {
	IsResume bool     `json:"isResume"`
	Score    int      `json:"score"`
	Reasons  []string `json:"reasons"`
}

// ResumeThreshold is the minimum score for IsResume.
const ResumeThreshold = 40

// rule is a pure scoring rule: signed contribution plus optional reasons.
type rule func(text, lower string) (int, []string)

var rules = []rule{
	lengthRule,
	sectionKeywordRule,
	contactPatternRule,
	negativeSignalRule,
	tableStructureRule,
}

// Validate scores text for resume-likeness. Deterministic, no I/O.
func Validate(text string) Verdict {
	lower := strings.ToLower(text)
	score := 0
	var reasons []string
	for _, r := range rules {
		delta, rs := r(text, lower)
		score += delta
		reasons = append(reasons, rs...)
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return Verdict{
		IsResume: score >= ResumeThreshold,
		Score:    score,
		Reasons:  reasons,
	}
}

func lengthRule(text, _ string) (int, []string) {
	n := len(text)
	switch {
	case n < 100:
		return -30, []string{"text is very short"}
	case n <= 500:
		return 5, nil
	default:
		return 15, nil
	}
}

var sectionVocabulary = []string{
	"experience",
	"work history",
	"employment",
	"education",
	"skills",
	"summary",
	"objective",
	"certifications",
	"projects",
	"achievements",
	"languages",
	"references",
	"qualification",
}

func sectionKeywordRule(_, lower string) (int, []string) {
	hits := 0
	for _, kw := range sectionVocabulary {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	switch {
	case hits == 0:
		return -30, []string{"no resume section headings found"}
	case hits <= 2:
		return 5, nil
	case hits <= 5:
		return 20, nil
	default:
		return 35, nil
	}
}

var (
	emailSignal = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneSignal = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
)

var contactKeywords = []string{"linkedin.com", "github.com", "contact", "phone", "email"}

func contactPatternRule(text, lower string) (int, []string) {
	hits := 0
	if emailSignal.MatchString(text) {
		hits++
	}
	if phoneSignal.MatchString(text) {
		hits++
	}
	for _, kw := range contactKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	if hits == 0 {
		return -20, []string{"no contact information found"}
	}
	return 15, nil
}

type negativeSignal struct {
	label   string
	pattern *regexp.Regexp
}

var negativeSignals = []negativeSignal{
	{"invoice", regexp.MustCompile(`(?i)invoice|amount due|bill to|payment terms`)},
	{"cover letter", regexp.MustCompile(`(?i)dear (hiring manager|sir|madam)|i am writing to apply`)},
	{"contract", regexp.MustCompile(`(?i)terms and conditions|hereinafter|party of the (first|second) part`)},
	{"story", regexp.MustCompile(`(?i)once upon a time|chapter \d+`)},
	{"essay", regexp.MustCompile(`(?i)in this essay|in conclusion,`)},
	{"report", regexp.MustCompile(`(?i)executive summary|table of contents|quarterly report`)},
	{"academic assignment", regexp.MustCompile(`(?i)assignment|homework|submitted to|course code`)},
	{"presentation", regexp.MustCompile(`(?i)slide \d+|agenda:|thank you for (listening|watching)`)},
}

func negativeSignalRule(_, lower string) (int, []string) {
	delta := 0
	var reasons []string
	for _, sig := range negativeSignals {
		if sig.pattern.MatchString(lower) {
			delta -= 15
			reasons = append(reasons, fmt.Sprintf("document resembles a %s", sig.label))
		}
	}
	return delta, reasons
}

var tablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\|[-=]{2,}\|`),
	regexp.MustCompile(`\+[-=]{2,}\+`),
	regexp.MustCompile(`[\x{2500}-\x{257F}]{3,}`),
	regexp.MustCompile(`(?m)^\s*\|.+\|.+\|\s*$`),
}

// tableStructureRule penalizes heavy tabular layout once; the first pattern
// that matches short-circuits the rest.
func tableStructureRule(text, _ string) (int, []string) {
	for _, p := range tablePatterns {
		if p.MatchString(text) {
			return -10, []string{"table-like structure detected"}
		}
	}
	return 0, nil
}
