package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ayioka/momo-analysis/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository wires a repository backed by pgxpool.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

const transactionColumns = `id, raw_message, category, transaction_id, amount, fee,
	sender_name, receiver_name, phone_number, agent_name, agent_phone,
	service_provider, bundle_type, bundle_size, validity_days, transaction_date,
	status, description, metadata, created_at, updated_at`

func (r *transactionRepository) Create(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	if r.pool == nil {
		return domain.Transaction{}, fmt.Errorf("transaction repository not initialized")
	}

	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO sms_transactions (`+transactionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		txn.ID,
		txn.RawMessage,
		txn.Category,
		txn.TransactionID,
		txn.Amount,
		txn.Fee,
		txn.SenderName,
		txn.ReceiverName,
		txn.PhoneNumber,
		txn.AgentName,
		txn.AgentPhone,
		txn.ServiceProvider,
		txn.BundleType,
		txn.BundleSize,
		txn.ValidityDays,
		txn.TransactionDate,
		txn.Status,
		txn.Description,
		txn.Metadata,
		txn.CreatedAt,
		txn.UpdatedAt,
	)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return txn, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	if r.pool == nil {
		return domain.Transaction{}, fmt.Errorf("transaction repository not initialized")
	}

	row := r.pool.QueryRow(
		ctx,
		`SELECT `+transactionColumns+` FROM sms_transactions WHERE id = $1`,
		id,
	)
	txn, err := scanTransaction(row)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to get transaction %s: %w", id, err)
	}
	return txn, nil
}

func (r *transactionRepository) List(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("transaction repository not initialized")
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT `+transactionColumns+`
		 FROM sms_transactions
		 ORDER BY transaction_date DESC
		 LIMIT $1 OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", scanErr)
		}
		transactions = append(transactions, txn)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", rowsErr)
	}

	return transactions, nil
}

func (r *transactionRepository) ExistsByRawMessage(ctx context.Context, rawMessage string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM sms_transactions WHERE raw_message = $1)`, rawMessage)
}

func (r *transactionRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM sms_transactions WHERE transaction_id = $1)`, transactionID)
}

func (r *transactionRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("transaction repository not initialized")
	}

	var found bool
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to check transaction existence: %w", err)
	}
	return found, nil
}

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.ID,
		&txn.RawMessage,
		&txn.Category,
		&txn.TransactionID,
		&txn.Amount,
		&txn.Fee,
		&txn.SenderName,
		&txn.ReceiverName,
		&txn.PhoneNumber,
		&txn.AgentName,
		&txn.AgentPhone,
		&txn.ServiceProvider,
		&txn.BundleType,
		&txn.BundleSize,
		&txn.ValidityDays,
		&txn.TransactionDate,
		&txn.Status,
		&txn.Description,
		&txn.Metadata,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return txn, nil
}
