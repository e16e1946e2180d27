package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/jperaza/bancodemo/internal/models"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)
	writer := NewMockUserWriter(ctrl)
	accounts := NewMockAccountOpener(ctrl)
	audit := NewMockAuditAppender(ctrl)

	reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(nil, nil)
	writer.EXPECT().Save(ctx, "Alice", "alice@example.com", gomock.Nil(), gomock.Any(), models.RoleCustomer).Return(userID, nil)
	// Registering a customer opens their first Savings account.
	accounts.EXPECT().OpenForUser(ctx, userID, models.AccountKindSavings).Return(&models.AccountDB{
		AccountID: uuid.New(),
		UserID:    userID,
	}, nil)
	audit.EXPECT().Append(ctx, gomock.Any(), models.AuditActionRegister, gomock.Any()).Return(nil).Times(1)

	svc := NewAuthService(reader, writer, nil, nil, accounts, audit, passthroughUow(ctrl))
	err := svc.Register(ctx, "Alice", "alice@example.com", nil, "s3cret", models.RoleCustomer)

	assert.NoError(t, err)
}

func TestAuthService_Register_OperatorGetsNoAccount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)
	writer := NewMockUserWriter(ctrl)
	accounts := NewMockAccountOpener(ctrl)
	audit := NewMockAuditAppender(ctrl)

	reader.EXPECT().GetByEmail(ctx, "op@bank.test").Return(nil, nil)
	writer.EXPECT().Save(ctx, "Op", "op@bank.test", gomock.Nil(), gomock.Any(), models.RoleOperator).Return(userID, nil)
	audit.EXPECT().Append(ctx, gomock.Any(), models.AuditActionRegister, gomock.Any()).Return(nil)

	svc := NewAuthService(reader, writer, nil, nil, accounts, audit, passthroughUow(ctrl))
	err := svc.Register(ctx, "Op", "op@bank.test", nil, "s3cret", models.RoleOperator)

	assert.NoError(t, err)
}

func TestAuthService_Register_Errors(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)
	svc := NewAuthService(reader, nil, nil, nil, nil, nil, passthroughUow(ctrl))

	err := svc.Register(ctx, "Alice", "alice@example.com", nil, "s3cret", "Admin")
	assert.ErrorIs(t, err, ErrInvalidRole)

	reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(&models.UserDB{
		UserID: uuid.New(),
		Email:  "alice@example.com",
	}, nil)
	err = svc.Register(ctx, "Alice", "alice@example.com", nil, "s3cret", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Register_ConcurrentDuplicateEmail(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)
	writer := NewMockUserWriter(ctrl)

	// A racing registration passes the existence check and loses on the
	// users.email unique constraint instead.
	reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(nil, nil)
	writer.EXPECT().Save(ctx, "Alice", "alice@example.com", gomock.Nil(), gomock.Any(), models.RoleCustomer).
		Return(uuid.Nil, &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"})

	svc := NewAuthService(reader, writer, nil, nil, nil, nil, passthroughUow(ctrl))
	err := svc.Register(ctx, "Alice", "alice@example.com", nil, "s3cret", models.RoleCustomer)

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	assert.NoError(t, err)
	user := &models.UserDB{
		UserID:       userID,
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}

	reader := NewMockUserReader(ctrl)
	jwtGen := NewMockTokenGenerator(ctrl)
	audit := NewMockAuditAppender(ctrl)

	reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(user, nil)
	jwtGen.EXPECT().Generate(ctx, userID, models.RoleCustomer, "alice@example.com").Return("token123", nil)
	audit.EXPECT().Append(ctx, gomock.Any(), models.AuditActionLogin, gomock.Any()).Return(nil)

	svc := NewAuthService(reader, nil, jwtGen, nil, nil, audit, passthroughUow(ctrl))
	token, err := svc.Login(ctx, "alice@example.com", "s3cret", models.RoleCustomer)

	assert.NoError(t, err)
	assert.Equal(t, "token123", token)
}

func TestAuthService_Login_Errors(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	assert.NoError(t, err)
	user := &models.UserDB{
		UserID:       uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}

	reader := NewMockUserReader(ctrl)
	svc := NewAuthService(reader, nil, nil, nil, nil, nil, passthroughUow(ctrl))

	reader.EXPECT().GetByEmail(ctx, "nobody@example.com").Return(nil, nil)
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrUserDoesNotExist)

	reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(user, nil)
	_, err = svc.Login(ctx, "alice@example.com", "wrong", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// A customer cannot log in through the operator portal.
	reader.EXPECT().GetByEmail(ctx, "alice@example.com").Return(user, nil)
	_, err = svc.Login(ctx, "alice@example.com", "s3cret", models.RoleOperator)
	assert.ErrorIs(t, err, ErrRoleMismatch)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jwtGen := NewMockTokenGenerator(ctrl)
	denylist := NewMockTokenRevoker(ctrl)

	jwtGen.EXPECT().Expiration().Return(30 * time.Minute)
	denylist.EXPECT().Add(ctx, "token123", 30*time.Minute).Return(nil)

	svc := NewAuthService(nil, nil, jwtGen, denylist, nil, nil, passthroughUow(ctrl))
	assert.NoError(t, svc.Logout(ctx, "token123"))
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	assert.NoError(t, err)
	user := &models.UserDB{
		UserID:       userID,
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}

	reader := NewMockUserReader(ctrl)
	writer := NewMockUserWriter(ctrl)
	audit := NewMockAuditAppender(ctrl)

	svc := NewAuthService(reader, writer, nil, nil, nil, audit, passthroughUow(ctrl))

	err = svc.ChangePassword(ctx, userID, "old-pass", "new-pass", "other")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	reader.EXPECT().GetByID(ctx, userID).Return(user, nil)
	err = svc.ChangePassword(ctx, userID, "wrong", "new-pass", "new-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	reader.EXPECT().GetByID(ctx, userID).Return(user, nil)
	writer.EXPECT().UpdatePassword(ctx, userID, gomock.Any()).Return(nil)
	audit.EXPECT().Append(ctx, gomock.Any(), models.AuditActionPasswordChange, gomock.Any()).Return(nil)
	err = svc.ChangePassword(ctx, userID, "old-pass", "new-pass", "new-pass")
	assert.NoError(t, err)
}
