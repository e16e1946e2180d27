package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
)

// AccountReadRepository handles account read operations
type AccountReadRepository struct {
	db *sqlx.DB
}

func NewAccountReadRepository(db *sqlx.DB) *AccountReadRepository {
	return &AccountReadRepository{db: db}
}

const accountColumns = `account_id, account_number, kind, balance, status, user_id, created_at, updated_at`

// GetByID returns the account with the given id, or nil if none exists.
func (r *AccountReadRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*models.AccountDB, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1
	`

	var account models.AccountDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &account, query, accountID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{accountID},
		"error", err,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByNumber returns the account with the given external number, or nil if none exists.
func (r *AccountReadRepository) GetByNumber(ctx context.Context, number string) (*models.AccountDB, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_number = $1
	`

	var account models.AccountDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &account, query, number)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{number},
		"error", err,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Exists reports whether an account with the given external number exists.
func (r *AccountReadRepository) Exists(ctx context.Context, number string) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)
	`

	var exists bool
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, query, number)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{number},
		"result", exists,
		"error", err,
	)

	return exists, err
}

// ListByUserID returns all accounts owned by a user.
func (r *AccountReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.AccountDB, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at
	`

	var accounts []models.AccountDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &accounts, query, userID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result_count", len(accounts),
		"error", err,
	)

	return accounts, err
}

// Search returns accounts matched by number prefix or owner email substring.
func (r *AccountReadRepository) Search(ctx context.Context, q string) ([]models.AccountDB, error) {
	const query = `
		SELECT a.account_id, a.account_number, a.kind, a.balance, a.status, a.user_id, a.created_at, a.updated_at
		FROM accounts a
		JOIN users u ON u.user_id = a.user_id
		WHERE a.account_number LIKE $1 || '%' OR u.email ILIKE '%' || $1 || '%'
		ORDER BY a.created_at
		LIMIT 500
	`

	var accounts []models.AccountDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &accounts, query, q)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{q},
		"result_count", len(accounts),
		"error", err,
	)

	return accounts, err
}

// AccountWriteRepository handles account write operations
type AccountWriteRepository struct {
	db *sqlx.DB
}

func NewAccountWriteRepository(db *sqlx.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

// Save inserts a new account and returns the stored record.
func (r *AccountWriteRepository) Save(ctx context.Context, number, kind string, userID uuid.UUID) (*models.AccountDB, error) {
	const query = `
		INSERT INTO accounts (account_id, account_number, kind, balance, status, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $5, NOW(), NOW())
		RETURNING ` + accountColumns + `
	`

	var account models.AccountDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &account, query,
		uuid.New(), number, kind, models.AccountStatusActive, userID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{number, kind, userID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Credit increases an account balance and returns the new balance.
func (r *AccountWriteRepository) Credit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE account_id = $1
		RETURNING balance
	`

	var balance decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &balance, query, accountID, amount)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{accountID, amount},
		"result", balance,
		"error", err,
	)

	return balance, err
}

// LockForUpdate reads an account balance under a row lock, within the
// transaction carried by the context. Transfers lock both rows in increasing
// account-id order before mutating either balance, so two transfers crossing
// in opposite directions cannot deadlock.
func (r *AccountWriteRepository) LockForUpdate(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	const query = `
		SELECT balance
		FROM accounts
		WHERE account_id = $1
		FOR UPDATE
	`

	var balance decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &balance, query, accountID)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{accountID},
		"result", balance,
		"error", err,
	)

	return balance, err
}

// Debit decreases an account balance only when sufficient funds are present.
// The balance check and mutation happen in one statement, so concurrent
// debits against the same account serialize on the row lock and cannot both
// pass a stale balance check. Returns sql.ErrNoRows when funds are short.
func (r *AccountWriteRepository) Debit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `
		UPDATE accounts
		SET balance = balance - $2, updated_at = NOW()
		WHERE account_id = $1 AND balance >= $2
		RETURNING balance
	`

	var balance decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &balance, query, accountID, amount)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{accountID, amount},
		"result", balance,
		"error", err,
	)

	return balance, err
}
