package truncate

import "strings"

// Marker replaces content cut from an oversized section.
const Marker = "\n[Truncated]"

// SectionLimit bounds the content that may follow a section heading.
type SectionLimit struct {
	Section  string
	MaxChars int
}

// DefaultLimits is applied in order. The order is fixed so repeated runs
// walk sections the same way.
var DefaultLimits = []SectionLimit{
	{"education", 1200},
	{"qualification", 800},
	{"skills", 1000},
	{"work experience", 2000},
	{"certifications", 600},
	{"summary", 800},
	{"projects", 1200},
}

// Apply bounds each configured section of text. For every section heading
// found, the content following it is examined up to twice the limit; any
// excess beyond the limit is replaced with the marker. Applying the result
// again yields the same output.
func Apply(text string, limits []SectionLimit) string {
	out := text
	for _, sl := range limits {
		out = truncateSection(out, sl.Section, sl.MaxChars)
	}
	return out
}

func truncateSection(text, section string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	idx := strings.Index(strings.ToLower(text), strings.ToLower(section))
	if idx < 0 {
		return text
	}
	contentStart := idx + len(section)
	windowEnd := contentStart + 2*maxChars
	if windowEnd > len(text) {
		windowEnd = len(text)
	}
	window := text[contentStart:windowEnd]
	if len(window) <= maxChars {
		return text
	}
	// An already-truncated window keeps its marker untouched.
	if strings.Contains(window, Marker) {
		return text
	}
	return text[:contentStart] + window[:maxChars] + Marker + text[windowEnd:]
}
