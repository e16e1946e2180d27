package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jperaza/bancodemo/internal/models"
)

func seedAccount(t *testing.T, db interface {
	Save(ctx context.Context, number, kind string, userID uuid.UUID) (*models.AccountDB, error)
}, number string, userID uuid.UUID) *models.AccountDB {
	t.Helper()
	account, err := db.Save(context.Background(), number, models.AccountKindSavings, userID)
	assert.NoError(t, err)
	return account
}

func TestTransactionRepository_SaveAndGet(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserWriteRepository(db)
	accounts := NewAccountWriteRepository(db)
	write := NewTransactionWriteRepository(db)
	read := NewTransactionReadRepository(db)

	aliceID := seedCustomer(t, users, "alice@example.com")
	operatorID, err := users.Save(ctx, "Op", "op@bank.test", nil, "hash", models.RoleOperator)
	assert.NoError(t, err)
	account := seedAccount(t, accounts, "111-1111111-11", aliceID)

	saved, err := write.Save(ctx, models.TransactionDB{
		Kind:       models.TransactionKindDeposit,
		Amount:     decimal.NewFromInt(100),
		Status:     models.TransactionStatusCompleted,
		AccountID:  account.AccountID,
		OperatorID: &operatorID,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.TransactionID)
	assert.True(t, saved.Amount.Equal(decimal.NewFromInt(100)))

	got, err := read.GetByID(ctx, saved.TransactionID)
	assert.NoError(t, err)
	assert.Equal(t, models.TransactionKindDeposit, got.Kind)
	assert.Equal(t, operatorID, *got.OperatorID)

	missing, err := read.GetByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTransactionRepository_CancelPending(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserWriteRepository(db)
	accounts := NewAccountWriteRepository(db)
	write := NewTransactionWriteRepository(db)

	aliceID := seedCustomer(t, users, "alice@example.com")
	account := seedAccount(t, accounts, "111-1111111-11", aliceID)

	pending, err := write.Save(ctx, models.TransactionDB{
		Kind:      models.TransactionKindWithdrawal,
		Amount:    decimal.NewFromInt(50),
		Status:    models.TransactionStatusPending,
		AccountID: account.AccountID,
	})
	assert.NoError(t, err)

	cancelled, err := write.CancelPending(ctx, pending.TransactionID)
	assert.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCancelled, cancelled.Status)

	// Already cancelled: the status guard refuses a second flip.
	_, err = write.CancelPending(ctx, pending.TransactionID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	completed, err := write.Save(ctx, models.TransactionDB{
		Kind:      models.TransactionKindDeposit,
		Amount:    decimal.NewFromInt(10),
		Status:    models.TransactionStatusCompleted,
		AccountID: account.AccountID,
	})
	assert.NoError(t, err)

	_, err = write.CancelPending(ctx, completed.TransactionID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTransactionRepository_Listings(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserWriteRepository(db)
	accounts := NewAccountWriteRepository(db)
	write := NewTransactionWriteRepository(db)
	read := NewTransactionReadRepository(db)

	aliceID := seedCustomer(t, users, "alice@example.com")
	bobID := seedCustomer(t, users, "bob@example.com")
	operatorID, err := users.Save(ctx, "Op", "op@bank.test", nil, "hash", models.RoleOperator)
	assert.NoError(t, err)

	aliceAcct := seedAccount(t, accounts, "111-1111111-11", aliceID)
	bobAcct := seedAccount(t, accounts, "222-2222222-22", bobID)

	_, err = write.Save(ctx, models.TransactionDB{
		Kind:       models.TransactionKindDeposit,
		Amount:     decimal.NewFromInt(100),
		Status:     models.TransactionStatusCompleted,
		AccountID:  aliceAcct.AccountID,
		OperatorID: &operatorID,
	})
	assert.NoError(t, err)

	destID := bobAcct.AccountID
	_, err = write.Save(ctx, models.TransactionDB{
		Kind:                 models.TransactionKindTransfer,
		Amount:               decimal.NewFromInt(40),
		Status:               models.TransactionStatusCompleted,
		AccountID:            aliceAcct.AccountID,
		DestinationAccountID: &destID,
	})
	assert.NoError(t, err)

	// Alice sees both; Bob sees the incoming transfer.
	aliceTxns, err := read.ListByAccountOwner(ctx, aliceID)
	assert.NoError(t, err)
	assert.Len(t, aliceTxns, 2)

	bobTxns, err := read.ListByAccountOwner(ctx, bobID)
	assert.NoError(t, err)
	assert.Len(t, bobTxns, 1)
	assert.Equal(t, models.TransactionKindTransfer, bobTxns[0].Kind)

	opTxns, err := read.ListByOperator(ctx, operatorID)
	assert.NoError(t, err)
	assert.Len(t, opTxns, 1)
	assert.Equal(t, models.TransactionKindDeposit, opTxns[0].Kind)
}

func TestTransactionRepository_ListByAccountOwner_SelfTransfer(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserWriteRepository(db)
	accounts := NewAccountWriteRepository(db)
	write := NewTransactionWriteRepository(db)
	read := NewTransactionReadRepository(db)

	aliceID := seedCustomer(t, users, "alice@example.com")
	savings := seedAccount(t, accounts, "111-1111111-11", aliceID)
	checking := seedAccount(t, accounts, "333-3333333-33", aliceID)

	// Transfer between two accounts of the same owner: the listing must
	// still return the transaction once.
	destID := checking.AccountID
	saved, err := write.Save(ctx, models.TransactionDB{
		Kind:                 models.TransactionKindTransfer,
		Amount:               decimal.NewFromInt(25),
		Status:               models.TransactionStatusCompleted,
		AccountID:            savings.AccountID,
		DestinationAccountID: &destID,
	})
	assert.NoError(t, err)

	txns, err := read.ListByAccountOwner(ctx, aliceID)
	assert.NoError(t, err)
	assert.Len(t, txns, 1)
	assert.Equal(t, saved.TransactionID, txns[0].TransactionID)
}

func TestTransactionRepository_Report(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserWriteRepository(db)
	accounts := NewAccountWriteRepository(db)
	write := NewTransactionWriteRepository(db)
	read := NewTransactionReadRepository(db)

	aliceID := seedCustomer(t, users, "alice@example.com")
	account := seedAccount(t, accounts, "111-1111111-11", aliceID)

	for _, kind := range []string{
		models.TransactionKindDeposit,
		models.TransactionKindWithdrawal,
		models.TransactionKindWithdrawal,
	} {
		_, err := write.Save(ctx, models.TransactionDB{
			Kind:      kind,
			Amount:    decimal.NewFromInt(10),
			Status:    models.TransactionStatusCompleted,
			AccountID: account.AccountID,
		})
		assert.NoError(t, err)
	}

	all, err := read.Report(ctx, "", time.Time{}, time.Time{})
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	withdrawals, err := read.Report(ctx, models.TransactionKindWithdrawal, time.Time{}, time.Time{})
	assert.NoError(t, err)
	assert.Len(t, withdrawals, 2)

	// A window entirely in the past matches nothing.
	past, err := read.Report(ctx, "", time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
	assert.NoError(t, err)
	assert.Len(t, past, 0)
}
