package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	defaultTimeout = 30 * time.Second
	defaultEngine  = 2
	exitCodeOK     = 1
)

// Client talks to a remote OCR service that accepts documents as multipart
// uploads, remote URLs, or inline base64 payloads.
type Client struct {
	apiURL        string
	apiKey        string
	defaultEngine int
	httpClient    *http.Client
	breaker       *gobreaker.CircuitBreaker[*ocrResponse]
}

// ClientConfig configures a Client. EngineID is the engine used when a
// request does not pick one; zero means engine 2.
type ClientConfig struct {
	APIURL   string
	APIKey   string
	EngineID int
	Timeout  time.Duration
}

// NewClient constructs an OCR client with a circuit breaker around the
// remote call.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIURL) == "" {
		return nil, fmt.Errorf("OCR_API_URL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("OCR_API_KEY is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	engine := cfg.EngineID
	if engine <= 0 {
		engine = defaultEngine
	}
	breaker := gobreaker.NewCircuitBreaker[*ocrResponse](gobreaker.Settings{
		Name:        "ocr",
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 10 && counts.TotalFailures*2 >= counts.Requests
		},
	})
	return &Client{
		apiURL:        cfg.APIURL,
		apiKey:        cfg.APIKey,
		defaultEngine: engine,
		httpClient:    &http.Client{Timeout: timeout},
		breaker:       breaker,
	}, nil
}

type ocrResponse struct {
	ParsedResults []struct {
		ParsedText        string `json:"ParsedText"`
		FileParseExitCode int    `json:"FileParseExitCode"`
		TextOverlay       struct {
			Lines []struct {
				LineText  string  `json:"LineText"`
				MinTop    float64 `json:"MinTop"`
				MaxHeight float64 `json:"MaxHeight"`
			} `json:"Lines"`
		} `json:"TextOverlay"`
	} `json:"ParsedResults"`
	OCRExitCode                  int             `json:"OCRExitCode"`
	IsErroredOnProcessing        bool            `json:"IsErroredOnProcessing"`
	ErrorMessage                 json.RawMessage `json:"ErrorMessage"`
	ProcessingTimeInMilliseconds string          `json:"ProcessingTimeInMilliseconds"`
}

// Extract resolves the document reference and returns its text. Remote URLs
// are downloaded to a transient local file that is removed on every exit
// path. Local PDFs with an embedded text layer skip the remote service.
func (c *Client) Extract(ctx context.Context, ref DocumentRef, opts Options) (ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return ExtractionResult{}, extractionErr("context done before extraction", err)
	}

	kind := ref.Kind()
	started := time.Now()

	switch kind {
	case SourceInline:
		return c.submit(ctx, kind, opts, func(w *multipart.Writer) error {
			return w.WriteField("base64Image", ref.Inline)
		})
	case SourceURL:
		path, cleanup, err := c.downloadToTemp(ctx, ref.URI)
		defer cleanup()
		if err != nil {
			return ExtractionResult{}, extractionErr("download source", err)
		}
		return c.extractLocal(ctx, path, kind, opts, started)
	default:
		return c.extractLocal(ctx, ref.URI, kind, opts, started)
	}
}

func (c *Client) extractLocal(ctx context.Context, path string, kind SourceKind, opts Options, started time.Time) (ExtractionResult, error) {
	if isPDFPath(path) {
		if text, err := pdfTextLayer(path); err == nil && text != "" {
			return ExtractionResult{
				Text: text,
				Metadata: Metadata{
					EngineID:         0,
					ProcessingTimeMs: time.Since(started).Milliseconds(),
					SourceKind:       kind,
				},
				Overlay: []LineOverlay{},
			}, nil
		}
	}
	return c.submit(ctx, kind, opts, func(w *multipart.Writer) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		part, err := w.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			return err
		}
		_, err = io.Copy(part, f)
		return err
	})
}

func (c *Client) submit(ctx context.Context, kind SourceKind, opts Options, attach func(*multipart.Writer) error) (ExtractionResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	language := opts.Language
	if language == "" {
		language = "eng"
	}
	engine := opts.EngineID
	if engine <= 0 {
		engine = c.defaultEngine
	}
	fields := map[string]string{
		"language":          language,
		"scale":             strconv.FormatBool(opts.Scale),
		"isTable":           strconv.FormatBool(opts.TableMode),
		"OCREngine":         strconv.Itoa(engine),
		"isOverlayRequired": "true",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return ExtractionResult{}, extractionErr("build request", err)
		}
	}
	if err := attach(w); err != nil {
		return ExtractionResult{}, extractionErr("attach document", err)
	}
	if err := w.Close(); err != nil {
		return ExtractionResult{}, extractionErr("build request", err)
	}

	parsed, err := c.breaker.Execute(func() (*ocrResponse, error) {
		return c.doRequest(ctx, &body, w.FormDataContentType())
	})
	if err != nil {
		return ExtractionResult{}, extractionErr("ocr request", err)
	}

	return buildResult(parsed, kind, engine)
}

func (c *Client) doRequest(ctx context.Context, body io.Reader, contentType string) (*ocrResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr status %s: %s", resp.Status, truncateBody(raw))
	}

	var parsed ocrResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("ocr response parse: %w", err)
	}
	return &parsed, nil
}

func buildResult(parsed *ocrResponse, kind SourceKind, engine int) (ExtractionResult, error) {
	if parsed.IsErroredOnProcessing || parsed.OCRExitCode != exitCodeOK {
		return ExtractionResult{}, extractionErr(
			fmt.Sprintf("ocr exit code %d: %s", parsed.OCRExitCode, string(parsed.ErrorMessage)), nil)
	}

	var pages []string
	var overlay []LineOverlay
	for _, pr := range parsed.ParsedResults {
		if strings.TrimSpace(pr.ParsedText) != "" {
			pages = append(pages, pr.ParsedText)
		}
		for _, line := range pr.TextOverlay.Lines {
			overlay = append(overlay, LineOverlay{
				LineText:  line.LineText,
				MinTop:    line.MinTop,
				MaxHeight: line.MaxHeight,
			})
		}
	}
	text := strings.Join(pages, "\n")
	if strings.TrimSpace(text) == "" {
		return ExtractionResult{}, extractionErr("no parseable text", nil)
	}
	if overlay == nil {
		overlay = []LineOverlay{}
	}

	processingMs, _ := strconv.ParseInt(parsed.ProcessingTimeInMilliseconds, 10, 64)
	return ExtractionResult{
		Text: text,
		Metadata: Metadata{
			EngineID:         engine,
			ProcessingTimeMs: processingMs,
			SourceKind:       kind,
		},
		Overlay: overlay,
	}, nil
}

func truncateBody(raw []byte) string {
	const maxLen = 300
	s := strings.TrimSpace(string(raw))
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}
