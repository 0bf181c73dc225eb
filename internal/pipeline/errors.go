package pipeline

import (
	"errors"

	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/credits"
)

var (
	// ErrInsufficientCredit mirrors the ledger sentinel: no debit occurred
	// and the request is rejected up front.
	ErrInsufficientCredit = credits.ErrInsufficientCredit

	// ErrExtractionFailed indicates text extraction failed; the debit was
	// refunded and the caller may retry with the same input.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrNoUsableContent indicates the document was processed but nothing
	// resume-like could be extracted; the debit was refunded.
	ErrNoUsableContent = errors.New("no usable content")
)
