package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
)

// PostgreSQL unique_violation error code.
const pgUniqueViolation = "23505"

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("email already registered")
	ErrUserDoesNotExist   = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("role must be Customer or Operator")
	ErrRoleMismatch       = errors.New("user does not have the requested role")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, name, email string, phone *string, passwordHash, role string) (uuid.UUID, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// TokenGenerator defines an interface for generating JWT tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, role, email string) (string, error)
	Expiration() time.Duration
}

// TokenRevoker stores revoked tokens until they expire.
type TokenRevoker interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
}

// AccountOpener opens a new account for a user. Used at customer
// registration, inside the registration unit of work.
type AccountOpener interface {
	OpenForUser(ctx context.Context, userID uuid.UUID, kind string) (*models.AccountDB, error)
}

// AuthService handles registration, login, logout and password changes.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	jwt      TokenGenerator
	denylist TokenRevoker
	accounts AccountOpener
	audit    AuditAppender
	uow      TxRunner
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	jwt TokenGenerator,
	denylist TokenRevoker,
	accounts AccountOpener,
	audit AuditAppender,
	uow TxRunner,
) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		jwt:      jwt,
		denylist: denylist,
		accounts: accounts,
		audit:    audit,
		uow:      uow,
	}
}

// Register creates a new user. Registering a Customer also opens their first
// Savings account; the user and the account are one unit of work.
func (svc *AuthService) Register(ctx context.Context, name, email string, phone *string, password, role string) error {
	if role != models.RoleCustomer && role != models.RoleOperator {
		return ErrInvalidRole
	}

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return err
	}
	if existing != nil {
		logger.Log.Warnw("user already exists", "email", email)
		return ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	return svc.uow.Do(ctx, func(ctx context.Context) error {
		userID, err := svc.writer.Save(ctx, name, email, phone, string(hashedPassword), role)
		if err != nil {
			// The GetByEmail check above races with concurrent registrations;
			// the unique constraint on users.email is the authority.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				logger.Log.Warnw("user already exists", "email", email)
				return ErrUserAlreadyExists
			}
			logger.Log.Errorw("failed to save user", "err", err)
			return err
		}

		if role == models.RoleCustomer {
			if _, err := svc.accounts.OpenForUser(ctx, userID, models.AccountKindSavings); err != nil {
				logger.Log.Errorw("failed to open initial account", "err", err)
				return err
			}
		}

		desc := fmt.Sprintf("User %s registered with role %s", email, role)
		return svc.audit.Append(ctx, &userID, models.AuditActionRegister, desc)
	})
}

// Login authenticates a user for the requested role and returns a JWT token.
func (svc *AuthService) Login(ctx context.Context, email, password, role string) (string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Warnw("user does not exist", "email", email)
		return "", ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Warnw("invalid credentials", "email", email)
		return "", ErrInvalidCredentials
	}

	if user.Role != role {
		logger.Log.Warnw("role mismatch on login", "email", email, "requested", role)
		return "", ErrRoleMismatch
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.Role, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	userID := user.UserID
	if err := svc.audit.Append(ctx, &userID, models.AuditActionLogin, fmt.Sprintf("User %s logged in", email)); err != nil {
		logger.Log.Errorw("failed to append login audit entry", "err", err)
		return "", err
	}

	return token, nil
}

// Logout revokes the presented token until its natural expiry.
func (svc *AuthService) Logout(ctx context.Context, token string) error {
	return svc.denylist.Add(ctx, token, svc.jwt.Expiration())
}

// ChangePassword verifies the current password and replaces it.
func (svc *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword, confirm string) error {
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		logger.Log.Errorw("failed to update password", "err", err)
		return err
	}

	if err := svc.audit.Append(ctx, &userID, models.AuditActionPasswordChange, fmt.Sprintf("User %s changed password", user.Email)); err != nil {
		logger.Log.Errorw("failed to append password change audit entry", "err", err)
	}
	return nil
}
