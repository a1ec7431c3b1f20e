package ingestion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ayioka/momo-analysis/internal/domain"
	"github.com/ayioka/momo-analysis/internal/parser"
	"github.com/ayioka/momo-analysis/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service runs batch ingestion: it decodes an uploaded message container,
// classifies and persists each message, and writes one audit-log entry per
// message.
type Service struct {
	transactions repository.TransactionRepository
	logs         repository.ProcessingLogRepository
	duplicates   *DuplicateDetector
	log          zerolog.Logger
}

// NewService creates a new ingestion service.
func NewService(
	transactions repository.TransactionRepository,
	logs repository.ProcessingLogRepository,
	log zerolog.Logger,
) *Service {
	return &Service{
		transactions: transactions,
		logs:         logs,
		duplicates:   NewDuplicateDetector(transactions),
		log:          log,
	}
}

// Result aggregates one batch. Errors holds the per-message failure details
// plus the structural error when the container itself could not be decoded.
type Result struct {
	UploadBatchID         uuid.UUID `json:"uploadBatchId"`
	TotalProcessed        int       `json:"totalProcessed"`
	SuccessfullyProcessed int       `json:"successfullyProcessed"`
	Failed                int       `json:"failed"`
	Skipped               int       `json:"skipped"`
	ProcessingTimeMs      int64     `json:"processingTime"`
	Errors                []string  `json:"errors"`
}

// Stats summarizes audit-log outcomes, optionally for one batch.
type Stats struct {
	Total       int64   `json:"total"`
	Success     int64   `json:"success"`
	Failed      int64   `json:"failed"`
	Skipped     int64   `json:"skipped"`
	SuccessRate float64 `json:"successRate"`
}

// logPageSize caps audit-log query results.
const logPageSize = 100

// outcome is the result of processing a single message. Exactly one status
// applies; err is set only on failure, reason only on skip.
type outcome struct {
	status      domain.ProcessingOutcome
	reason      string
	err         error
	transaction *domain.Transaction
}

// ProcessFile ingests one uploaded container. It always returns a complete
// result: a structural decode failure fails the batch as a whole, while any
// single message's failure is contained and counted.
func (s *Service) ProcessFile(ctx context.Context, fileName string, payload []byte) Result {
	start := time.Now()
	result := Result{
		UploadBatchID: uuid.New(),
		Errors:        []string{},
	}

	s.log.Info().Str("file", fileName).Str("batch", result.UploadBatchID.String()).Msg("starting batch processing")

	bodies, err := decodeContainer(fileName, payload)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("container decoding failed: %v", err))
		result.Failed = result.TotalProcessed
		result.ProcessingTimeMs = time.Since(start).Milliseconds()
		s.log.Error().Err(err).Str("file", fileName).Msg("container decoding failed")
		return result
	}

	result.TotalProcessed = len(bodies)

	for _, body := range bodies {
		out := s.processMessage(ctx, body)
		switch out.status {
		case domain.OutcomeSuccess:
			result.SuccessfullyProcessed++
		case domain.OutcomeSkipped:
			result.Skipped++
		case domain.OutcomeFailed:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("message processing failed: %v", out.err))
		}
		s.recordLog(ctx, result.UploadBatchID, fileName, body, out)
	}

	result.ProcessingTimeMs = time.Since(start).Milliseconds()

	s.log.Info().
		Str("file", fileName).
		Str("batch", result.UploadBatchID.String()).
		Int("total", result.TotalProcessed).
		Int("success", result.SuccessfullyProcessed).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Int64("ms", result.ProcessingTimeMs).
		Msg("completed batch processing")

	return result
}

// processMessage handles one message independently of the rest of the
// batch; every failure path comes back as an outcome, never a propagated
// error.
func (s *Service) processMessage(ctx context.Context, body string) outcome {
	body = strings.TrimSpace(body)
	if body == "" {
		return outcome{status: domain.OutcomeSkipped, reason: "message body is empty"}
	}

	duplicate, err := s.duplicates.IsDuplicate(ctx, body)
	if err != nil {
		return outcome{status: domain.OutcomeFailed, err: err}
	}
	if duplicate {
		return outcome{status: domain.OutcomeSkipped, reason: "duplicate transaction detected"}
	}

	parsed := parser.Parse(body)
	txn := buildTransaction(body, parsed, time.Now().UTC())

	saved, err := s.transactions.Create(ctx, txn)
	if err != nil {
		return outcome{status: domain.OutcomeFailed, err: err}
	}

	return outcome{status: domain.OutcomeSuccess, transaction: &saved}
}

// buildTransaction turns parsed fields into a persistable record, filling
// the defaults the record contract requires: fee zero when unquoted, the
// ingestion clock when no date was extracted, and the raw text as the
// description.
func buildTransaction(body string, parsed parser.ParsedMessage, now time.Time) domain.Transaction {
	txn := domain.Transaction{
		RawMessage:      body,
		Category:        parsed.Category,
		TransactionID:   parsed.TransactionID,
		Amount:          parsed.Amount,
		Fee:             parsed.Fee,
		SenderName:      parsed.SenderName,
		ReceiverName:    parsed.ReceiverName,
		PhoneNumber:     parsed.PhoneNumber,
		AgentName:       parsed.AgentName,
		AgentPhone:      parsed.AgentPhone,
		ServiceProvider: parsed.ServiceProvider,
		BundleType:      parsed.BundleType,
		BundleSize:      parsed.BundleSize,
		ValidityDays:    parsed.ValidityDays,
		TransactionDate: now,
		Status:          parsed.Status,
		Description:     parsed.Description,
		Metadata:        parsed.Metadata,
	}

	if parsed.TransactionDate != nil {
		txn.TransactionDate = *parsed.TransactionDate
	}
	if txn.Fee == nil {
		zero := decimal.Zero
		txn.Fee = &zero
	}

	return txn
}

// recordLog writes the audit entry for one message. Failures here are
// logged and swallowed: the audit trail is best effort and never changes a
// message's counted outcome.
func (s *Service) recordLog(ctx context.Context, batchID uuid.UUID, fileName, body string, out outcome) {
	entry := domain.ProcessingLogEntry{
		UploadBatchID: batchID,
		FileName:      fileName,
		RawMessage:    body,
		Outcome:       out.status,
		ExtractedData: out.transaction,
	}
	if strings.TrimSpace(body) == "" {
		entry.RawMessage = "No message body found"
	}
	if out.err != nil {
		message := out.err.Error()
		entry.ErrorMessage = &message
	}
	if out.reason != "" {
		reason := out.reason
		entry.Reason = &reason
	}

	if err := s.logs.Record(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("batch", batchID.String()).Msg("failed to record processing log")
	}
}

// ProcessingStats returns audit-log counts, for one batch when batchID is
// set and across all entries otherwise. An empty set counts as fully
// successful.
func (s *Service) ProcessingStats(ctx context.Context, batchID *uuid.UUID) (Stats, error) {
	counts, err := s.logs.CountByOutcome(ctx, batchID)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load processing stats: %w", err)
	}

	stats := Stats{
		Total:       counts.Total,
		Success:     counts.Success,
		Failed:      counts.Failed,
		Skipped:     counts.Skipped,
		SuccessRate: 100,
	}
	if counts.Total > 0 {
		stats.SuccessRate = float64(counts.Success) / float64(counts.Total) * 100
	}

	return stats, nil
}

// ProcessingLogs returns matching audit-log entries, newest first, capped
// at the page size.
func (s *Service) ProcessingLogs(ctx context.Context, filter repository.ProcessingLogFilter) ([]domain.ProcessingLogEntry, error) {
	entries, err := s.logs.List(ctx, filter, logPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list processing logs: %w", err)
	}
	return entries, nil
}

// Transactions returns recently ingested transactions.
func (s *Service) Transactions(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	transactions, err := s.transactions.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}
