package repositories

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jperaza/bancodemo/internal/models"
)

func seedCustomer(t *testing.T, write *UserWriteRepository, email string) uuid.UUID {
	t.Helper()
	userID, err := write.Save(context.Background(), "Test User", email, nil, "hash", models.RoleCustomer)
	assert.NoError(t, err)
	return userID
}

func TestAccountRepository_SaveAndGet(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserWriteRepository(db)
	write := NewAccountWriteRepository(db)
	read := NewAccountReadRepository(db)

	userID := seedCustomer(t, users, "alice@example.com")

	account, err := write.Save(ctx, "123-4567890-12", models.AccountKindSavings, userID)
	assert.NoError(t, err)
	assert.Equal(t, models.AccountStatusActive, account.Status)
	assert.True(t, account.Balance.IsZero())

	byNumber, err := read.GetByNumber(ctx, "123-4567890-12")
	assert.NoError(t, err)
	assert.Equal(t, account.AccountID, byNumber.AccountID)

	exists, err := read.Exists(ctx, "123-4567890-12")
	assert.NoError(t, err)
	assert.True(t, exists)
	exists, err = read.Exists(ctx, "999-9999999-99")
	assert.NoError(t, err)
	assert.False(t, exists)

	missing, err := read.GetByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccountRepository_CreditAndDebit(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserWriteRepository(db)
	write := NewAccountWriteRepository(db)

	userID := seedCustomer(t, users, "alice@example.com")
	account, err := write.Save(ctx, "123-4567890-12", models.AccountKindSavings, userID)
	assert.NoError(t, err)

	balance, err := write.Credit(ctx, account.AccountID, decimal.NewFromInt(300))
	assert.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(300)))

	balance, err = write.Debit(ctx, account.AccountID, decimal.NewFromInt(100))
	assert.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(200)))

	// Debiting more than the balance touches nothing and reports ErrNoRows.
	_, err = write.Debit(ctx, account.AccountID, decimal.NewFromInt(250))
	assert.ErrorIs(t, err, sql.ErrNoRows)

	balance, err = write.LockForUpdate(ctx, account.AccountID)
	assert.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(200)))
}

func TestAccountRepository_ConcurrentDebits(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserWriteRepository(db)
	write := NewAccountWriteRepository(db)

	userID := seedCustomer(t, users, "alice@example.com")
	account, err := write.Save(ctx, "123-4567890-12", models.AccountKindSavings, userID)
	assert.NoError(t, err)

	_, err = write.Credit(ctx, account.AccountID, decimal.NewFromInt(500))
	assert.NoError(t, err)

	// 10 concurrent debits of 100 against a balance of 500: exactly 5 may pass.
	var wg sync.WaitGroup
	succeeded := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := write.Debit(ctx, account.AccountID, decimal.NewFromInt(100)); err == nil {
				succeeded <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(succeeded)

	assert.Len(t, succeeded, 5)

	balance, err := write.LockForUpdate(ctx, account.AccountID)
	assert.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestAccountRepository_ListAndSearch(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	users := NewUserWriteRepository(db)
	write := NewAccountWriteRepository(db)
	read := NewAccountReadRepository(db)

	aliceID := seedCustomer(t, users, "alice@example.com")
	bobID := seedCustomer(t, users, "bob@example.com")

	_, err := write.Save(ctx, "111-1111111-11", models.AccountKindSavings, aliceID)
	assert.NoError(t, err)
	_, err = write.Save(ctx, "222-2222222-22", models.AccountKindChecking, aliceID)
	assert.NoError(t, err)
	_, err = write.Save(ctx, "333-3333333-33", models.AccountKindSavings, bobID)
	assert.NoError(t, err)

	mine, err := read.ListByUserID(ctx, aliceID)
	assert.NoError(t, err)
	assert.Len(t, mine, 2)

	byPrefix, err := read.Search(ctx, "222")
	assert.NoError(t, err)
	assert.Len(t, byPrefix, 1)

	byOwner, err := read.Search(ctx, "bob@")
	assert.NoError(t, err)
	assert.Len(t, byOwner, 1)
	assert.Equal(t, "333-3333333-33", byOwner[0].AccountNumber)
}
