package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
)

const transactionColumns = `transaction_id, kind, amount, status, account_id, destination_account_id, operator_id, created_at`

// TransactionReadRepository handles transaction read operations
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// GetByID returns the transaction with the given id, or nil if none exists.
func (r *TransactionReadRepository) GetByID(ctx context.Context, transactionID uuid.UUID) (*models.TransactionDB, error) {
	const query = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1
	`

	var txn models.TransactionDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &txn, query, transactionID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{transactionID},
		"error", err,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// ListByAccountOwner returns transactions touching any account owned by the user.
func (r *TransactionReadRepository) ListByAccountOwner(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error) {
	const query = `
		SELECT t.transaction_id, t.kind, t.amount, t.status, t.account_id, t.destination_account_id, t.operator_id, t.created_at
		FROM transactions t
		WHERE EXISTS (
			SELECT 1 FROM accounts a
			WHERE a.user_id = $1
			  AND a.account_id IN (t.account_id, t.destination_account_id)
		)
		ORDER BY t.created_at DESC
		LIMIT 500
	`

	var txns []models.TransactionDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &txns, query, userID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result_count", len(txns),
		"error", err,
	)

	return txns, err
}

// ListByOperator returns transactions initiated by the operator.
func (r *TransactionReadRepository) ListByOperator(ctx context.Context, operatorID uuid.UUID) ([]models.TransactionDB, error) {
	const query = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE operator_id = $1
		ORDER BY created_at DESC
		LIMIT 500
	`

	var txns []models.TransactionDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &txns, query, operatorID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{operatorID},
		"result_count", len(txns),
		"error", err,
	)

	return txns, err
}

// Report returns transactions filtered by kind and creation-time window.
// Empty kind and zero times disable the respective filters.
func (r *TransactionReadRepository) Report(ctx context.Context, kind string, from, to time.Time) ([]models.TransactionDB, error) {
	const query = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ($1 = '' OR kind = $1)
		  AND ($2::TIMESTAMPTZ IS NULL OR created_at >= $2)
		  AND ($3::TIMESTAMPTZ IS NULL OR created_at <= $3)
		ORDER BY created_at DESC
		LIMIT 1000
	`

	var fromArg, toArg *time.Time
	if !from.IsZero() {
		fromArg = &from
	}
	if !to.IsZero() {
		toArg = &to
	}

	var txns []models.TransactionDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &txns, query, kind, fromArg, toArg)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{kind, fromArg, toArg},
		"result_count", len(txns),
		"error", err,
	)

	return txns, err
}

// TransactionWriteRepository handles transaction write operations
type TransactionWriteRepository struct {
	db *sqlx.DB
}

func NewTransactionWriteRepository(db *sqlx.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

// Save inserts a new transaction record and returns it as stored.
func (r *TransactionWriteRepository) Save(ctx context.Context, txn models.TransactionDB) (*models.TransactionDB, error) {
	const query = `
		INSERT INTO transactions (transaction_id, kind, amount, status, account_id, destination_account_id, operator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + transactionColumns + `
	`

	if txn.TransactionID == uuid.Nil {
		txn.TransactionID = uuid.New()
	}

	var saved models.TransactionDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &saved, query,
		txn.TransactionID, txn.Kind, txn.Amount, txn.Status,
		txn.AccountID, txn.DestinationAccountID, txn.OperatorID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{txn.TransactionID, txn.Kind, txn.Amount, txn.Status, txn.AccountID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// CancelPending flips a Pending transaction to Cancelled. The status guard is
// part of the UPDATE, so a concurrent settlement cannot race the cancel.
// Returns sql.ErrNoRows when the transaction is not Pending.
func (r *TransactionWriteRepository) CancelPending(ctx context.Context, transactionID uuid.UUID) (*models.TransactionDB, error) {
	const query = `
		UPDATE transactions
		SET status = $2
		WHERE transaction_id = $1 AND status = $3
		RETURNING ` + transactionColumns + `
	`

	var txn models.TransactionDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &txn, query,
		transactionID, models.TransactionStatusCancelled, models.TransactionStatusPending)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{transactionID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &txn, nil
}
