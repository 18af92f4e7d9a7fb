package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"piiguard/internal/domain"
	"piiguard/internal/handler"
	"piiguard/mocks"
)

func newPIIHandler() (*handler.PIIHandler, *mocks.MockExtractionService, *mocks.MockAuditService) {
	extractSvc := new(mocks.MockExtractionService)
	auditSvc := new(mocks.MockAuditService)
	h := handler.NewPIIHandler(extractSvc, auditSvc)
	return h, extractSvc, auditSvc
}

func newJSONContext(path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

// ingestBody mirrors IngestResponse with PII left raw so tests can tell a
// list from the "null" string.
type ingestBody struct {
	OK       bool            `json:"ok"`
	Received string          `json:"received"`
	PII      json.RawMessage `json:"pii"`
}

// --- Check ---

func TestPIIHandler_Check_Success(t *testing.T) {
	h, extractSvc, _ := newPIIHandler()

	records := []domain.PIIRecord{
		{Kind: "Email", Value: "a@b.com"},
		{Kind: "Phone Number", Value: "555-1234"},
	}
	extractSvc.On("Extract", mock.Anything, "mail a@b.com, call 555-1234").
		Return(domain.ExtractionResult{Records: records}, nil)

	c, w := newJSONContext("/check", `{"text":"  mail a@b.com, call 555-1234  "}`)
	h.Check(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.CheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, records, resp.Sensitive)
	assert.Equal(t, []string{"Email: a@b.com", "Phone Number: 555-1234"}, resp.SensitiveWords)
	assert.False(t, resp.NoPII)
	extractSvc.AssertExpectations(t)
}

func TestPIIHandler_Check_SensitiveWordsMatchRecords(t *testing.T) {
	h, extractSvc, _ := newPIIHandler()

	records := []domain.PIIRecord{
		{Kind: "IP Address", Value: "fe80::1"},
		{Kind: "PII", Value: "something odd"},
	}
	extractSvc.On("Extract", mock.Anything, mock.Anything).
		Return(domain.ExtractionResult{Records: records}, nil)

	c, w := newJSONContext("/check", `{"text":"x"}`)
	h.Check(c)

	var resp handler.CheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.SensitiveWords, len(resp.Sensitive))
	for i, rec := range resp.Sensitive {
		assert.Equal(t, rec.Kind+": "+rec.Value, resp.SensitiveWords[i])
	}
}

func TestPIIHandler_Check_NoPIIIsMarkedExplicitly(t *testing.T) {
	h, extractSvc, _ := newPIIHandler()
	extractSvc.On("Extract", mock.Anything, "hello").Return(domain.NoPIIResult(), nil)

	c, w := newJSONContext("/check", `{"text":"hello"}`)
	h.Check(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sensitive":[],"sensitive_words":[],"no_pii":true}`, w.Body.String())
}

func TestPIIHandler_Check_MissingTextTreatedAsEmpty(t *testing.T) {
	h, extractSvc, _ := newPIIHandler()
	extractSvc.On("Extract", mock.Anything, "").Return(domain.NoPIIResult(), nil)

	c, w := newJSONContext("/check", `{}`)
	h.Check(c)

	assert.Equal(t, http.StatusOK, w.Code)
	extractSvc.AssertExpectations(t)
}

func TestPIIHandler_Check_Unavailable(t *testing.T) {
	h, extractSvc, _ := newPIIHandler()
	extractSvc.On("Extract", mock.Anything, "hello").
		Return(domain.ExtractionResult{}, domain.NewUnavailableError(errors.New("connection refused")))

	c, w := newJSONContext("/check", `{"text":"hello"}`)
	h.Check(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LLM_UNAVAILABLE", resp.Code)
	assert.Contains(t, resp.Detail, "LLM not available")
	assert.Contains(t, resp.Detail, "connection refused")
}

func TestPIIHandler_Check_InvocationError(t *testing.T) {
	h, extractSvc, _ := newPIIHandler()
	extractSvc.On("Extract", mock.Anything, "hello").
		Return(domain.ExtractionResult{}, domain.NewInvocationError(errors.New("read timeout")))

	c, w := newJSONContext("/check", `{"text":"hello"}`)
	h.Check(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LLM_ERROR", resp.Code)
	assert.Equal(t, "LLM error: read timeout", resp.Detail)
}

func TestPIIHandler_Check_MalformedBody(t *testing.T) {
	h, extractSvc, _ := newPIIHandler()

	c, w := newJSONContext("/check", `{"text":`)
	h.Check(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	extractSvc.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestPIIHandler_Check_DoesNotAudit(t *testing.T) {
	h, extractSvc, auditSvc := newPIIHandler()
	extractSvc.On("Extract", mock.Anything, mock.Anything).Return(domain.NoPIIResult(), nil)

	c, _ := newJSONContext("/check", `{"text":"hello"}`)
	h.Check(c)

	auditSvc.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
}

// --- Ingest ---

func TestPIIHandler_Ingest_Success(t *testing.T) {
	h, extractSvc, auditSvc := newPIIHandler()

	auditSvc.On("Record", mock.Anything, mock.Anything, "Jane Doe, jane@example.com").Return()
	extractSvc.On("Extract", mock.Anything, "Jane Doe, jane@example.com").
		Return(domain.ExtractionResult{Records: []domain.PIIRecord{
			{Kind: "Name", Value: "Jane Doe"},
			{Kind: "Email", Value: "jane@example.com"},
		}}, nil)

	c, w := newJSONContext("/ingest", `{"text":"\n Jane Doe, jane@example.com \t"}`)
	h.Ingest(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ingestBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "Jane Doe, jane@example.com", resp.Received)
	assert.JSONEq(t, `[{"type":"Name","value":"Jane Doe"},{"type":"Email","value":"jane@example.com"}]`, string(resp.PII))
	auditSvc.AssertExpectations(t)
	extractSvc.AssertExpectations(t)
}

func TestPIIHandler_Ingest_NoPIIYieldsNullString(t *testing.T) {
	h, extractSvc, auditSvc := newPIIHandler()
	auditSvc.On("Record", mock.Anything, mock.Anything, "the weather is nice").Return()
	extractSvc.On("Extract", mock.Anything, "the weather is nice").Return(domain.NoPIIResult(), nil)

	c, w := newJSONContext("/ingest", `{"text":"the weather is nice"}`)
	h.Ingest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"received":"the weather is nice","pii":"null"}`, w.Body.String())
}

func TestPIIHandler_Ingest_UnavailableIsInBand(t *testing.T) {
	h, extractSvc, auditSvc := newPIIHandler()
	auditSvc.On("Record", mock.Anything, mock.Anything, "hello").Return()
	extractSvc.On("Extract", mock.Anything, "hello").
		Return(domain.ExtractionResult{}, domain.NewUnavailableError(errors.New("model not found")))

	c, w := newJSONContext("/ingest", `{"text":"hello"}`)
	h.Ingest(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ingestBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "hello", resp.Received)

	var records []domain.PIIRecord
	require.NoError(t, json.Unmarshal(resp.PII, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "error", records[0].Kind)
	assert.Equal(t, "LLM not available: model not found", records[0].Value)
	auditSvc.AssertExpectations(t)
}

func TestPIIHandler_Ingest_InvocationErrorIsInBand(t *testing.T) {
	h, extractSvc, auditSvc := newPIIHandler()
	auditSvc.On("Record", mock.Anything, mock.Anything, "hello").Return()
	extractSvc.On("Extract", mock.Anything, "hello").
		Return(domain.ExtractionResult{}, domain.NewInvocationError(errors.New("status 500")))

	c, w := newJSONContext("/ingest", `{"text":"hello"}`)
	h.Ingest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"ok":true,"received":"hello","pii":[{"type":"error","value":"LLM error: status 500"}]}`,
		w.Body.String())
}

func TestPIIHandler_Ingest_RecordsBeforeExtracting(t *testing.T) {
	h, extractSvc, auditSvc := newPIIHandler()

	var order []string
	auditSvc.On("Record", mock.Anything, mock.Anything, "hello").
		Run(func(mock.Arguments) { order = append(order, "record") }).Return()
	extractSvc.On("Extract", mock.Anything, "hello").
		Run(func(mock.Arguments) { order = append(order, "extract") }).
		Return(domain.NoPIIResult(), nil)

	c, _ := newJSONContext("/ingest", `{"text":"hello"}`)
	h.Ingest(c)

	assert.Equal(t, []string{"record", "extract"}, order)
}

func TestPIIHandler_Ingest_UsesRequestID(t *testing.T) {
	h, extractSvc, auditSvc := newPIIHandler()
	auditSvc.On("Record", mock.Anything, "req-42", "hello").Return()
	extractSvc.On("Extract", mock.Anything, "hello").Return(domain.NoPIIResult(), nil)

	c, _ := newJSONContext("/ingest", `{"text":"hello"}`)
	c.Set("request_id", "req-42")
	h.Ingest(c)

	auditSvc.AssertExpectations(t)
}

func TestPIIHandler_Ingest_MalformedBody(t *testing.T) {
	h, extractSvc, auditSvc := newPIIHandler()

	c, w := newJSONContext("/ingest", `not json`)
	h.Ingest(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	auditSvc.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
	extractSvc.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

// --- Response shaping ---

func TestNewIngestResponse_EmptyRecordsYieldNullString(t *testing.T) {
	resp := handler.NewIngestResponse("x", domain.ExtractionResult{}, nil)

	assert.Equal(t, "null", resp.PII)
	assert.True(t, resp.OK)
}

func TestNewCheckResponse_EmptyRecordsYieldEmptyLists(t *testing.T) {
	resp := handler.NewCheckResponse(domain.ExtractionResult{})

	assert.NotNil(t, resp.Sensitive)
	assert.NotNil(t, resp.SensitiveWords)
	assert.Empty(t, resp.Sensitive)
	assert.True(t, resp.NoPII)
}

func TestNewCheckResponse_NoPIIMarker(t *testing.T) {
	tests := []struct {
		name   string
		result domain.ExtractionResult
		want   bool
	}{
		{"NIL reply", domain.NoPIIResult(), true},
		{"empty parse", domain.ExtractionResult{Records: []domain.PIIRecord{}}, true},
		{"records found", domain.ExtractionResult{Records: []domain.PIIRecord{{Kind: "Name", Value: "Jane"}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := handler.NewCheckResponse(tt.result)

			assert.Equal(t, tt.want, resp.NoPII)
			assert.Len(t, resp.SensitiveWords, len(tt.result.Records))
		})
	}
}
