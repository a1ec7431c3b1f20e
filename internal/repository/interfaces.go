package repository

import (
	"context"

	"github.com/ayioka/momo-analysis/internal/domain"

	"github.com/google/uuid"
)

// TransactionRepository defines the persistence contract for structured
// transactions. The existence checks back the duplicate detector; the
// database keeps uniqueness constraints as the last line of defense against
// concurrent batches racing past them.
type TransactionRepository interface {
	Create(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Transaction, error)
	List(ctx context.Context, limit int, offset int) ([]domain.Transaction, error)
	ExistsByRawMessage(ctx context.Context, rawMessage string) (bool, error)
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)
}

// ProcessingLogFilter narrows audit-log queries. Nil fields match everything.
type ProcessingLogFilter struct {
	UploadBatchID *uuid.UUID
	Outcome       *domain.ProcessingOutcome
}

// OutcomeCounts aggregates audit-log entries by outcome.
type OutcomeCounts struct {
	Total   int64
	Success int64
	Failed  int64
	Skipped int64
}

// ProcessingLogRepository stores the per-message audit trail.
type ProcessingLogRepository interface {
	Record(ctx context.Context, entry domain.ProcessingLogEntry) error
	List(ctx context.Context, filter ProcessingLogFilter, limit int) ([]domain.ProcessingLogEntry, error)
	CountByOutcome(ctx context.Context, uploadBatchID *uuid.UUID) (OutcomeCounts, error)
}
