package profile

import (
	"regexp"
	"strings"
)

// FallbackSummary is stored when the model could not produce an analysis.
const FallbackSummary = "Could not generate detailed analysis for this resume."

// NeutralATSScore is assigned by the fallback path when the source text
// still carries a plausible name or education signal. Deliberately coarse.
const NeutralATSScore = 60

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
)

var educationKeywords = []string{
	"education",
	"bachelor",
	"master",
	"phd",
	"b.sc",
	"m.sc",
	"b.tech",
	"degree",
	"university",
	"college",
	"diploma",
}

// Fallback builds a deterministic profile from raw text when the analysis
// model failed or returned unusable output. Same text always yields the
// same contact fields.
func Fallback(text string) StructuredProfile {
	p := New()
	if email := emailPattern.FindString(text); email != "" {
		p.ContactInformation.Email = email
	}
	if phone := phonePattern.FindString(text); phone != "" {
		p.ContactInformation.Phone = strings.TrimSpace(phone)
	}
	if name := guessName(text); name != "" {
		p.ContactInformation.Name = name
	}
	p.Summary = FallbackSummary
	if HasNameOrEducationSignal(text) {
		p.Analysis.ATSScore = NeutralATSScore
	} else {
		p.Analysis.ATSScore = 0
	}
	return p
}

// HasNameOrEducationSignal reports whether the text contains a plausible
// candidate name line or any education keyword.
func HasNameOrEducationSignal(text string) bool {
	if guessName(text) != "" {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range educationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// guessName scans the first five non-empty lines for something name-shaped:
// not an email, not digit-led, 3 to 40 characters.
func guessName(text string) string {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		seen++
		if seen > 5 {
			break
		}
		if strings.Contains(trimmed, "@") {
			continue
		}
		if trimmed[0] >= '0' && trimmed[0] <= '9' {
			continue
		}
		if n := len(trimmed); n < 3 || n > 40 {
			continue
		}
		return trimmed
	}
	return ""
}
