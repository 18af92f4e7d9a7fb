package domain

import (
	"time"

	"github.com/google/uuid"
)

// PIIRecord is a single item of personal information reported by the model.
type PIIRecord struct {
	Kind  string `json:"type" example:"Email"`
	Value string `json:"value" example:"jane@example.com"`
}

// String renders the record the way /check lists it in sensitive_words.
func (r PIIRecord) String() string {
	return r.Kind + ": " + r.Value
}

// ExtractionResult is the outcome of a successful extraction. NoPII is set
// when the model answered with the NIL token; otherwise Records holds the
// items in reply order.
type ExtractionResult struct {
	NoPII   bool
	Records []PIIRecord
}

// NoPIIResult returns the sentinel result.
func NoPIIResult() ExtractionResult {
	return ExtractionResult{NoPII: true}
}

// Empty reports whether the result carries no records. An empty record list
// is treated the same as the NIL sentinel when shaping responses.
func (r ExtractionResult) Empty() bool {
	return r.NoPII || len(r.Records) == 0
}

// IngestEntry is one line of the ingest audit trail.
type IngestEntry struct {
	ID         uuid.UUID `db:"id" json:"id"`
	RequestID  string    `db:"request_id" json:"request_id"`
	Text       string    `db:"text" json:"text"`
	ReceivedAt time.Time `db:"received_at" json:"received_at"`
}

// ChatMessage is one message of the conversation sent to the model.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}
