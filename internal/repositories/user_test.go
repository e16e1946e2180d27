package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jperaza/bancodemo/internal/models"
)

func TestUserRepository_SaveAndGet(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	write := NewUserWriteRepository(db)
	read := NewUserReadRepository(db)

	userID, err := write.Save(ctx, "Alice", "alice@example.com", nil, "hash", models.RoleCustomer)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, userID)

	byEmail, err := read.GetByEmail(ctx, "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, userID, byEmail.UserID)
	assert.Equal(t, "Alice", byEmail.Name)
	assert.Nil(t, byEmail.Phone)

	byID, err := read.GetByID(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	// Absent users come back as nil, not an error.
	missing, err := read.GetByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	write := NewUserWriteRepository(db)

	_, err := write.Save(ctx, "Alice", "alice@example.com", nil, "hash", models.RoleCustomer)
	assert.NoError(t, err)

	_, err = write.Save(ctx, "Other Alice", "alice@example.com", nil, "hash", models.RoleCustomer)
	assert.Error(t, err)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	write := NewUserWriteRepository(db)
	read := NewUserReadRepository(db)

	userID, err := write.Save(ctx, "Alice", "alice@example.com", nil, "old-hash", models.RoleCustomer)
	assert.NoError(t, err)

	assert.NoError(t, write.UpdatePassword(ctx, userID, "new-hash"))

	user, err := read.GetByID(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, "new-hash", user.PasswordHash)

	assert.Error(t, write.UpdatePassword(ctx, uuid.New(), "new-hash"))
}

func TestUserRepository_ListCustomers(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	write := NewUserWriteRepository(db)
	read := NewUserReadRepository(db)

	_, err := write.Save(ctx, "Alice", "alice@example.com", nil, "hash", models.RoleCustomer)
	assert.NoError(t, err)
	_, err = write.Save(ctx, "Bob", "bob@example.com", nil, "hash", models.RoleCustomer)
	assert.NoError(t, err)
	_, err = write.Save(ctx, "Op", "op@bank.test", nil, "hash", models.RoleOperator)
	assert.NoError(t, err)

	// Operators never show up in customer listings.
	all, err := read.ListCustomers(ctx, "")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := read.ListCustomers(ctx, "ali")
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, "Alice", matched[0].Name)
}
