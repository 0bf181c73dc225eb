package truncate

import (
	"strings"
	"testing"
)

func TestApplyLeavesShortSectionsAlone(t *testing.T) {
	text := "Education\nBachelor of Science\n\nSkills\nGo, SQL"
	got := Apply(text, DefaultLimits)
	if got != text {
		t.Fatalf("short text modified:\n%q", got)
	}
}

func TestApplyTruncatesOversizedSection(t *testing.T) {
	limits := []SectionLimit{{"skills", 50}}
	text := "Skills\n" + strings.Repeat("Go PostgreSQL Docker Kubernetes Terraform ", 10) + "\nEnd"

	got := Apply(text, limits)
	if !strings.Contains(got, Marker) {
		t.Fatal("marker not inserted")
	}
	if len(got) >= len(text) {
		t.Fatalf("text not shortened: %d -> %d", len(text), len(got))
	}

	// Content kept after the heading is exactly the limit.
	idx := strings.Index(strings.ToLower(got), "skills")
	kept := got[idx+len("skills"):]
	markerAt := strings.Index(kept, Marker)
	if markerAt != 50 {
		t.Fatalf("kept %d chars before marker, want 50", markerAt)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	limits := []SectionLimit{{"education", 40}, {"skills", 30}}
	text := "Education\n" + strings.Repeat("a", 300) + "\nSkills\n" + strings.Repeat("b", 200)

	once := Apply(text, limits)
	twice := Apply(once, limits)
	if once != twice {
		t.Fatalf("second application changed output:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestApplyPreservesContentPastWindow(t *testing.T) {
	limits := []SectionLimit{{"skills", 20}}
	tail := "References\nAvailable on request."
	text := "Skills\n" + strings.Repeat("x", 100) + "\n" + tail

	got := Apply(text, limits)
	if !strings.Contains(got, tail) {
		t.Fatalf("content beyond the window was lost:\n%q", got)
	}
}

func TestApplyCaseInsensitiveHeading(t *testing.T) {
	limits := []SectionLimit{{"education", 30}}
	text := "EDUCATION\n" + strings.Repeat("y", 200)
	got := Apply(text, limits)
	if !strings.Contains(got, Marker) {
		t.Fatal("uppercase heading not matched")
	}
	if !strings.HasPrefix(got, "EDUCATION") {
		t.Fatalf("original heading casing lost:\n%q", got)
	}
}

func TestApplyMissingSectionIsNoop(t *testing.T) {
	text := strings.Repeat("plain text without headings ", 50)
	got := Apply(text, []SectionLimit{{"education", 10}})
	if got != text {
		t.Fatal("text without the section was modified")
	}
}
