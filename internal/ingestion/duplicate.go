package ingestion

import (
	"context"
	"fmt"

	"github.com/ayioka/momo-analysis/internal/parser"
	"github.com/ayioka/momo-analysis/internal/repository"
)

// DuplicateDetector decides whether a message was already ingested. The
// check is point-in-time: two concurrent batches can both pass it, which is
// why the store carries uniqueness constraints as the real guarantee.
type DuplicateDetector struct {
	transactions repository.TransactionRepository
}

// NewDuplicateDetector creates a detector over the transaction store.
func NewDuplicateDetector(transactions repository.TransactionRepository) *DuplicateDetector {
	return &DuplicateDetector{transactions: transactions}
}

// IsDuplicate checks the exact raw text first, then falls back to the
// extracted transaction identifier.
func (d *DuplicateDetector) IsDuplicate(ctx context.Context, message string) (bool, error) {
	exists, err := d.transactions.ExistsByRawMessage(ctx, message)
	if err != nil {
		return false, fmt.Errorf("failed to check raw message: %w", err)
	}
	if exists {
		return true, nil
	}

	id, ok := parser.ExtractTransactionID(message)
	if !ok {
		return false, nil
	}

	exists, err = d.transactions.ExistsByTransactionID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction id: %w", err)
	}
	return exists, nil
}
