package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ayioka/momo-analysis/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type processingLogRepository struct {
	pool *pgxpool.Pool
}

// NewProcessingLogRepository wires a repository backed by pgxpool.
func NewProcessingLogRepository(pool *pgxpool.Pool) ProcessingLogRepository {
	return &processingLogRepository{pool: pool}
}

func (r *processingLogRepository) Record(ctx context.Context, entry domain.ProcessingLogEntry) error {
	if r.pool == nil {
		return fmt.Errorf("processing log repository not initialized")
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO processing_logs (id, upload_batch_id, file_name, raw_message, processing_status, error_message, reason, extracted_data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID,
		entry.UploadBatchID,
		entry.FileName,
		entry.RawMessage,
		entry.Outcome,
		entry.ErrorMessage,
		entry.Reason,
		entry.ExtractedData,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record processing log: %w", err)
	}

	return nil
}

func (r *processingLogRepository) List(ctx context.Context, filter ProcessingLogFilter, limit int) ([]domain.ProcessingLogEntry, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("processing log repository not initialized")
	}

	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, upload_batch_id, file_name, raw_message, processing_status, error_message, reason, extracted_data, created_at
	 FROM processing_logs`
	args := []any{}
	conditions := []string{}

	if filter.UploadBatchID != nil {
		args = append(args, *filter.UploadBatchID)
		conditions = append(conditions, fmt.Sprintf("upload_batch_id = $%d", len(args)))
	}
	if filter.Outcome != nil {
		args = append(args, *filter.Outcome)
		conditions = append(conditions, fmt.Sprintf("processing_status = $%d", len(args)))
	}

	for idx, condition := range conditions {
		if idx == 0 {
			query += " WHERE " + condition
		} else {
			query += " AND " + condition
		}
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list processing logs: %w", err)
	}
	defer rows.Close()

	entries := []domain.ProcessingLogEntry{}
	for rows.Next() {
		var entry domain.ProcessingLogEntry
		if scanErr := rows.Scan(
			&entry.ID,
			&entry.UploadBatchID,
			&entry.FileName,
			&entry.RawMessage,
			&entry.Outcome,
			&entry.ErrorMessage,
			&entry.Reason,
			&entry.ExtractedData,
			&entry.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan processing log: %w", scanErr)
		}
		entries = append(entries, entry)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate processing logs: %w", rowsErr)
	}

	return entries, nil
}

func (r *processingLogRepository) CountByOutcome(ctx context.Context, uploadBatchID *uuid.UUID) (OutcomeCounts, error) {
	if r.pool == nil {
		return OutcomeCounts{}, fmt.Errorf("processing log repository not initialized")
	}

	query := `SELECT
		count(*),
		count(*) FILTER (WHERE processing_status = 'success'),
		count(*) FILTER (WHERE processing_status = 'failed'),
		count(*) FILTER (WHERE processing_status = 'skipped')
	 FROM processing_logs`
	args := []any{}
	if uploadBatchID != nil {
		query += " WHERE upload_batch_id = $1"
		args = append(args, *uploadBatchID)
	}

	var counts OutcomeCounts
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&counts.Total,
		&counts.Success,
		&counts.Failed,
		&counts.Skipped,
	)
	if err != nil {
		return OutcomeCounts{}, fmt.Errorf("failed to count processing logs: %w", err)
	}

	return counts, nil
}
