package handler

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"piiguard/internal/domain"
	"piiguard/internal/middleware"
	"piiguard/internal/service"
)

// TextRequest is the body accepted by /check and /ingest. A missing or null
// text is treated as the empty string.
type TextRequest struct {
	Text *string `json:"text" example:"Contact Jane Doe at jane@example.com"`
}

// normalizedText returns the trimmed text, or "" when absent.
func (r *TextRequest) normalizedText() string {
	if r.Text == nil {
		return ""
	}
	return strings.TrimSpace(*r.Text)
}

// CheckResponse is the /check success body. SensitiveWords[i] renders
// Sensitive[i] as "type: value". NoPII is the explicit nothing-found marker.
type CheckResponse struct {
	Sensitive      []domain.PIIRecord `json:"sensitive"`
	SensitiveWords []string           `json:"sensitive_words"`
	NoPII          bool               `json:"no_pii" example:"false"`
}

// IngestResponse is the /ingest body. PII is a record list, the string
// "null" when nothing was found, or a single record of type "error".
type IngestResponse struct {
	OK       bool        `json:"ok"`
	Received string      `json:"received"`
	PII      interface{} `json:"pii" swaggertype:"array,object"`
}

// NewCheckResponse shapes an extraction result for /check. No PII sets
// NoPII and leaves both lists empty, never null.
func NewCheckResponse(result domain.ExtractionResult) CheckResponse {
	resp := CheckResponse{
		Sensitive:      []domain.PIIRecord{},
		SensitiveWords: []string{},
	}
	if result.Empty() {
		resp.NoPII = true
		return resp
	}
	for _, rec := range result.Records {
		resp.Sensitive = append(resp.Sensitive, rec)
		resp.SensitiveWords = append(resp.SensitiveWords, rec.String())
	}
	return resp
}

// NewIngestResponse shapes an extraction outcome for /ingest. Errors are
// reported in-band so the envelope is always well formed.
func NewIngestResponse(received string, result domain.ExtractionResult, err error) IngestResponse {
	resp := IngestResponse{OK: true, Received: received}
	switch {
	case err != nil:
		resp.PII = []domain.PIIRecord{{Kind: domain.KindError, Value: err.Error()}}
	case result.Empty():
		resp.PII = domain.IngestNoPII
	default:
		resp.PII = result.Records
	}
	return resp
}

// PIIHandler handles the PII detection endpoints.
type PIIHandler struct {
	extractionService service.ExtractionService
	auditService      service.AuditService
}

// NewPIIHandler creates a new PIIHandler.
func NewPIIHandler(extractionService service.ExtractionService, auditService service.AuditService) *PIIHandler {
	return &PIIHandler{extractionService: extractionService, auditService: auditService}
}

// Check handles POST /check in fail-fast mode: extraction errors become HTTP
// error statuses.
// @Summary Detect PII in text
// @Description Sends the text to the language model and returns every PII item found, both structured and as "type: value" strings. no_pii is true when nothing was found. Fails with 503 when the model did not initialize and 500 when the model call fails.
// @Tags pii
// @Accept json
// @Produce json
// @Param request body TextRequest true "Text to analyze"
// @Success 200 {object} CheckResponse "Detected PII"
// @Failure 400 {object} ErrorResponse "Malformed request body"
// @Failure 500 {object} ErrorResponse "Model call failed"
// @Failure 503 {object} ErrorResponse "Model not available"
// @Router /check [post]
func (h *PIIHandler) Check(c *gin.Context) {
	text, ok := bindText(c)
	if !ok {
		return
	}

	result, err := h.extractionService.Extract(c.Request.Context(), text)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, NewCheckResponse(result))
}

// Ingest handles POST /ingest in fail-soft mode: the text is recorded in the
// audit trail and the response is always 200, with extraction errors carried
// as an "error" record.
// @Summary Ingest text and detect PII
// @Description Records the text in the audit trail, then detects PII. Always answers 200; "pii" is a record list, the string "null" when nothing was found, or a single {"type":"error"} record when detection failed.
// @Tags pii
// @Accept json
// @Produce json
// @Param request body TextRequest true "Text to ingest"
// @Success 200 {object} IngestResponse "Ingest outcome"
// @Failure 400 {object} ErrorResponse "Malformed request body"
// @Router /ingest [post]
func (h *PIIHandler) Ingest(c *gin.Context) {
	text, ok := bindText(c)
	if !ok {
		return
	}

	requestID := middleware.GetRequestID(c)
	log.Printf("[%s] ingest: received %d chars", requestID, utf8.RuneCountInString(text))
	h.auditService.Record(c.Request.Context(), requestID, text)

	result, err := h.extractionService.Extract(c.Request.Context(), text)
	if err != nil {
		reportServerError(c, err)
	}

	RespondOK(c, NewIngestResponse(text, result, err))
}

// bindText decodes the request body and returns the normalized text.
// Returns false if the body is malformed (error response already written).
func bindText(c *gin.Context) (string, bool) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", fmt.Sprintf("invalid request body: %v", err))
		return "", false
	}
	return req.normalizedText(), true
}
