package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
)

var (
	// ErrCustomerNotFound is returned when an operator opens an account for an
	// email that does not belong to a customer.
	ErrCustomerNotFound = errors.New("no customer with that email")
	// ErrInvalidAccountKind is returned for kinds other than Savings/Checking.
	ErrInvalidAccountKind = errors.New("account kind must be Savings or Checking")
)

// AccountLister reads accounts for listing and search.
type AccountLister interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.AccountDB, error)
	Search(ctx context.Context, q string) ([]models.AccountDB, error)
}

// AccountSaver persists new accounts.
type AccountSaver interface {
	Save(ctx context.Context, number, kind string, userID uuid.UUID) (*models.AccountDB, error)
}

// NumberGenerator produces unique external account numbers.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// AccountService opens and lists accounts.
type AccountService struct {
	policy    *AccessPolicy
	users     UserReader
	reader    AccountLister
	writer    AccountSaver
	generator NumberGenerator
	audit     AuditAppender
	uow       TxRunner
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	policy *AccessPolicy,
	users UserReader,
	reader AccountLister,
	writer AccountSaver,
	generator NumberGenerator,
	audit AuditAppender,
	uow TxRunner,
) *AccountService {
	return &AccountService{
		policy:    policy,
		users:     users,
		reader:    reader,
		writer:    writer,
		generator: generator,
		audit:     audit,
		uow:       uow,
	}
}

// OpenForUser generates a unique number and creates an account for the user.
// It runs inside whatever unit of work the context carries.
func (svc *AccountService) OpenForUser(ctx context.Context, userID uuid.UUID, kind string) (*models.AccountDB, error) {
	if kind != models.AccountKindSavings && kind != models.AccountKindChecking {
		return nil, ErrInvalidAccountKind
	}

	number, err := svc.generator.Generate(ctx)
	if err != nil {
		logger.Log.Errorw("failed to generate account number", "err", err)
		return nil, err
	}

	account, err := svc.writer.Save(ctx, number, kind, userID)
	if err != nil {
		logger.Log.Errorw("failed to save account", "err", err)
		return nil, err
	}
	return account, nil
}

// CreateForCustomer lets an operator open an account for an existing customer,
// identified by email.
func (svc *AccountService) CreateForCustomer(ctx context.Context, actor Actor, customerEmail, kind string) (*models.AccountDB, error) {
	if !svc.policy.CanCreateAccount(actor) {
		return nil, ErrNotOperator
	}

	var account *models.AccountDB
	err := svc.uow.Do(ctx, func(ctx context.Context) error {
		customer, err := svc.users.GetByEmail(ctx, customerEmail)
		if err != nil {
			return err
		}
		if customer == nil || customer.Role != models.RoleCustomer {
			return ErrCustomerNotFound
		}

		account, err = svc.OpenForUser(ctx, customer.UserID, kind)
		if err != nil {
			return err
		}

		operatorID := actor.UserID
		desc := fmt.Sprintf("Account %s (%s) opened for %s", account.AccountNumber, kind, customerEmail)
		return svc.audit.Append(ctx, &operatorID, models.AuditActionAccountCreate, desc)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// ListMine returns the actor's own accounts.
func (svc *AccountService) ListMine(ctx context.Context, actor Actor) ([]models.AccountDB, error) {
	return svc.reader.ListByUserID(ctx, actor.UserID)
}

// Search returns accounts matching the query; operators only.
func (svc *AccountService) Search(ctx context.Context, actor Actor, q string) ([]models.AccountDB, error) {
	if !svc.policy.CanSearchAccounts(actor) {
		return nil, ErrNotOperator
	}
	return svc.reader.Search(ctx, q)
}
