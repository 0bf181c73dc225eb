package ocr

import "fmt"

// SourceKind classifies where a document payload comes from.
type SourceKind string

const (
	SourceURL    SourceKind = "url"
	SourcePath   SourceKind = "path"
	SourceInline SourceKind = "inline"
)

// DocumentRef points at a document to extract. Inline carries a base64
// payload and wins over URI when set; otherwise URI is a remote URL or a
// local filesystem path.
type DocumentRef struct {
	URI    string
	Inline string
}

// Kind reports how the reference will be resolved.
func (r DocumentRef) Kind() SourceKind {
	if r.Inline != "" {
		return SourceInline
	}
	if hasURLScheme(r.URI) {
		return SourceURL
	}
	return SourcePath
}

// Options tunes a single extraction call.
type Options struct {
	Language  string
	Scale     bool
	TableMode bool
	EngineID  int
}

// Metadata describes how an extraction was produced.
type Metadata struct {
	EngineID         int        `json:"engineId"`
	ProcessingTimeMs int64      `json:"processingTimeMs"`
	SourceKind       SourceKind `json:"sourceKind"`
}

// LineOverlay is positional data for one recognized text line.
type LineOverlay struct {
	LineText  string  `json:"lineText"`
	MinTop    float64 `json:"minTop"`
	MaxHeight float64 `json:"maxHeight"`
}

// ExtractionResult is the caller-owned output of one extraction call.
type ExtractionResult struct {
	Text     string        `json:"text"`
	Metadata Metadata      `json:"metadata"`
	Overlay  []LineOverlay `json:"overlay"`
}

// ExtractionError reports an unusable extraction: unreachable service,
// timeout, or no parseable text.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func extractionErr(reason string, err error) error {
	return &ExtractionError{Reason: reason, Err: err}
}
