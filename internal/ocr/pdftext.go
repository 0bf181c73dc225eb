package ocr

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfTextLayer pulls the embedded text layer from a local PDF, if any.
// Scanned PDFs typically have none; callers fall through to remote OCR.
func pdfTextLayer(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func isPDFPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".pdf")
}
