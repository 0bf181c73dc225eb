package pipeline

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/credits"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/ocr"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/records"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/shared/server/respond"
)

// Handler exposes the processing pipeline over HTTP.
type Handler struct {
	Service *Service
	Ledger  *credits.Ledger
	Records records.Repo
}

// NewHandler builds a Handler around the given service.
func NewHandler(service *Service, ledger *credits.Ledger, repo records.Repo) *Handler {
	return &Handler{Service: service, Ledger: ledger, Records: repo}
}

type processRequest struct {
	URL          string `json:"url"`
	Base64       string `json:"base64"`
	Language     string `json:"language"`
	Engine       int    `json:"engine"`
	Scale        bool   `json:"scale"`
	TableMode    bool   `json:"isTable"`
	Model        string `json:"model"`
	Prompt       string `json:"prompt"`
	SystemPrompt string `json:"systemPrompt"`
}

// Process handles POST /api/process.
func (h *Handler) Process(c *gin.Context) {
	accountID := accountIDFrom(c)
	if accountID == "" {
		respond.Error(c, http.StatusBadRequest, "missing_account", "X-Account-Id header is required", nil)
		return
	}

	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", nil)
		return
	}
	if req.URL == "" && req.Base64 == "" {
		respond.Error(c, http.StatusBadRequest, "missing_source", "either url or base64 must be provided", nil)
		return
	}

	out, err := h.Service.Process(c.Request.Context(), ProcessInput{
		AccountID: accountID,
		SourceURI: req.URL,
		Inline:    req.Base64,
		Options: ocr.Options{
			Language:  req.Language,
			Scale:     req.Scale,
			TableMode: req.TableMode,
			EngineID:  req.Engine,
		},
		ModelID:              req.Model,
		PromptOverride:       req.Prompt,
		SystemPromptOverride: req.SystemPrompt,
	})
	if err != nil {
		writeProcessError(c, err)
		return
	}
	respond.OK(c, out)
}

// ListRecords handles GET /api/records.
func (h *Handler) ListRecords(c *gin.Context) {
	accountID := accountIDFrom(c)
	if accountID == "" {
		respond.Error(c, http.StatusBadRequest, "missing_account", "X-Account-Id header is required", nil)
		return
	}

	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)
	list, err := h.Records.ListByAccount(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "list_failed", "could not list records", nil)
		return
	}
	respond.OK(c, gin.H{"records": list, "count": len(list)})
}

// GetRecord handles GET /api/records/:id.
func (h *Handler) GetRecord(c *gin.Context) {
	record, err := h.Records.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "record not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "get_failed", "could not load record", nil)
		return
	}
	respond.OK(c, record)
}

// GetCredits handles GET /api/credits.
func (h *Handler) GetCredits(c *gin.Context) {
	accountID := accountIDFrom(c)
	if accountID == "" {
		respond.Error(c, http.StatusBadRequest, "missing_account", "X-Account-Id header is required", nil)
		return
	}

	account, err := h.Ledger.Get(c.Request.Context(), accountID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "credits_failed", "could not load credit account", nil)
		return
	}
	respond.OK(c, account)
}

func writeProcessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInsufficientCredit):
		respond.Error(c, http.StatusPaymentRequired, "insufficient_credit", "no credits left on this account", nil)
	case errors.Is(err, ErrExtractionFailed):
		respond.Error(c, http.StatusBadGateway, "extraction_failed", "could not extract text from the document", nil)
	case errors.Is(err, ErrNoUsableContent):
		respond.Error(c, http.StatusUnprocessableEntity, "no_usable_content", "document does not contain usable resume content", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "processing_failed", "processing failed", nil)
	}
}

func accountIDFrom(c *gin.Context) string {
	accountID := c.GetHeader("X-Account-Id")
	if accountID != "" {
		c.Set("accountId", accountID)
	}
	return accountID
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
