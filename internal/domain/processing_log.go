package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProcessingOutcome records what happened to a single message during batch
// processing. OutcomePartial is reserved for multi-step outcomes and is not
// produced by the current pipeline.
type ProcessingOutcome string

const (
	OutcomeSuccess ProcessingOutcome = "success"
	OutcomeFailed  ProcessingOutcome = "failed"
	OutcomeSkipped ProcessingOutcome = "skipped"
	OutcomePartial ProcessingOutcome = "partial"
)

// ProcessingLogEntry is the audit trail for one processed message. An entry
// is written once, when the pipeline finishes with that message, and is
// never updated or deleted.
type ProcessingLogEntry struct {
	ID            uuid.UUID         `json:"id"`
	UploadBatchID uuid.UUID         `json:"upload_batch_id"`
	FileName      string            `json:"file_name"`
	RawMessage    string            `json:"raw_message"`
	Outcome       ProcessingOutcome `json:"outcome"`
	ErrorMessage  *string           `json:"error_message,omitempty"`
	Reason        *string           `json:"reason,omitempty"`
	ExtractedData *Transaction      `json:"extracted_data,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}
