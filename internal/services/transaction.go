package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
)

// Validation and state errors surfaced by the transaction engine. An
// insufficient balance or a missing transfer destination is NOT among them:
// those are recorded as Cancelled transactions and returned without error.
var (
	ErrInvalidAmount         = errors.New("amount must be positive with at most two decimal places")
	ErrNotOperator           = errors.New("operation requires the Operator role")
	ErrNotCustomer           = errors.New("operation requires the Customer role")
	ErrOwnershipMismatch     = errors.New("account owner email does not match")
	ErrNotAccountOwner       = errors.New("account does not belong to the actor")
	ErrAccountNotFound       = errors.New("account not found")
	ErrAccountInactive       = errors.New("account is not active")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrTransactionNotPending = errors.New("transaction is not pending")
)

// AccountGetter reads accounts by internal id or external number.
type AccountGetter interface {
	GetByID(ctx context.Context, accountID uuid.UUID) (*models.AccountDB, error)
	GetByNumber(ctx context.Context, number string) (*models.AccountDB, error)
}

// BalanceMutator applies balance changes. Debit returns sql.ErrNoRows when
// the balance is insufficient; the check and the mutation are one atomic
// store operation.
type BalanceMutator interface {
	Credit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	Debit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	LockForUpdate(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
}

// TransactionWriter persists transaction records.
type TransactionWriter interface {
	Save(ctx context.Context, txn models.TransactionDB) (*models.TransactionDB, error)
	CancelPending(ctx context.Context, transactionID uuid.UUID) (*models.TransactionDB, error)
}

// TransactionGetter reads single transaction records.
type TransactionGetter interface {
	GetByID(ctx context.Context, transactionID uuid.UUID) (*models.TransactionDB, error)
}

// OwnerGetter resolves an account's owning user, for the operator-supplied
// ownership email check.
type OwnerGetter interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// AuditAppender appends entries to the audit log.
type AuditAppender interface {
	Append(ctx context.Context, userID *uuid.UUID, action, description string) error
}

// TxRunner executes a function as one atomic unit of work.
type TxRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// TransactionService is the transaction engine. Every operation validates
// the actor and amount, then executes its balance mutation, transaction
// record and audit entry inside a single unit of work.
type TransactionService struct {
	policy      *AccessPolicy
	accounts    AccountGetter
	balances    BalanceMutator
	txns        TransactionWriter
	txnReader   TransactionGetter
	users       OwnerGetter
	audit       AuditAppender
	uow         TxRunner
	kafkaWriter KafkaWriter
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	policy *AccessPolicy,
	accounts AccountGetter,
	balances BalanceMutator,
	txns TransactionWriter,
	txnReader TransactionGetter,
	users OwnerGetter,
	audit AuditAppender,
	uow TxRunner,
	kafkaWriter KafkaWriter,
) *TransactionService {
	return &TransactionService{
		policy:      policy,
		accounts:    accounts,
		balances:    balances,
		txns:        txns,
		txnReader:   txnReader,
		users:       users,
		audit:       audit,
		uow:         uow,
		kafkaWriter: kafkaWriter,
	}
}

// validAmount accepts positive amounts with at most two decimal places.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2))
}

// Deposit credits an account on behalf of an operator. The operator must
// supply the expected owner email; a mismatch rejects the deposit before any
// record is created.
func (s *TransactionService) Deposit(ctx context.Context, actor Actor, accountID uuid.UUID, amount decimal.Decimal, expectedOwnerEmail string) (*models.TransactionDB, error) {
	if !s.policy.CanDeposit(actor) {
		return nil, ErrNotOperator
	}
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}

	var saved *models.TransactionDB
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		account, err := s.checkOwnedAccount(ctx, accountID, expectedOwnerEmail)
		if err != nil {
			return err
		}

		if _, err := s.balances.Credit(ctx, account.AccountID, amount); err != nil {
			return err
		}

		operatorID := actor.UserID
		saved, err = s.txns.Save(ctx, models.TransactionDB{
			Kind:       models.TransactionKindDeposit,
			Amount:     amount,
			Status:     models.TransactionStatusCompleted,
			AccountID:  account.AccountID,
			OperatorID: &operatorID,
		})
		if err != nil {
			return err
		}

		desc := fmt.Sprintf("Deposit of %s to account %s: %s", amount, account.AccountNumber, saved.Status)
		return s.audit.Append(ctx, &operatorID, models.AuditActionDeposit, desc)
	})
	if err != nil {
		return nil, err
	}

	s.publishTransaction(ctx, saved)
	return saved, nil
}

// Withdraw debits an account on behalf of an operator. Insufficient funds is
// a normal business outcome: the transaction is still recorded, with status
// Cancelled and no balance change.
func (s *TransactionService) Withdraw(ctx context.Context, actor Actor, accountID uuid.UUID, amount decimal.Decimal, expectedOwnerEmail string) (*models.TransactionDB, error) {
	if !s.policy.CanWithdraw(actor) {
		return nil, ErrNotOperator
	}
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}

	var saved *models.TransactionDB
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		account, err := s.checkOwnedAccount(ctx, accountID, expectedOwnerEmail)
		if err != nil {
			return err
		}

		status := models.TransactionStatusCompleted
		if _, err := s.balances.Debit(ctx, account.AccountID, amount); err != nil {
			if err != sql.ErrNoRows {
				return err
			}
			status = models.TransactionStatusCancelled
		}

		operatorID := actor.UserID
		saved, err = s.txns.Save(ctx, models.TransactionDB{
			Kind:       models.TransactionKindWithdrawal,
			Amount:     amount,
			Status:     status,
			AccountID:  account.AccountID,
			OperatorID: &operatorID,
		})
		if err != nil {
			return err
		}

		desc := fmt.Sprintf("Withdrawal of %s from account %s: %s", amount, account.AccountNumber, saved.Status)
		return s.audit.Append(ctx, &operatorID, models.AuditActionWithdrawal, desc)
	})
	if err != nil {
		return nil, err
	}

	s.publishTransaction(ctx, saved)
	return saved, nil
}

// Transfer moves funds between the actor's own account and a destination
// resolved by external account number. A missing destination or an
// insufficient balance yields a recorded Cancelled transaction, not an
// error. Both balance mutations and the record are one unit of work.
func (s *TransactionService) Transfer(ctx context.Context, actor Actor, sourceAccountID uuid.UUID, destinationNumber string, amount decimal.Decimal) (*models.TransactionDB, error) {
	if actor.Role != models.RoleCustomer {
		return nil, ErrNotCustomer
	}
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}

	var saved *models.TransactionDB
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		source, err := s.accounts.GetByID(ctx, sourceAccountID)
		if err != nil {
			return err
		}
		if source == nil {
			return ErrAccountNotFound
		}
		if !s.policy.CanTransferFrom(actor, source) {
			return ErrNotAccountOwner
		}
		if source.Status != models.AccountStatusActive {
			return ErrAccountInactive
		}

		actorID := actor.UserID
		dest, err := s.accounts.GetByNumber(ctx, destinationNumber)
		if err != nil {
			return err
		}
		if dest == nil {
			// Destination missing is a recorded outcome, not a failure.
			saved, err = s.txns.Save(ctx, models.TransactionDB{
				Kind:      models.TransactionKindTransfer,
				Amount:    amount,
				Status:    models.TransactionStatusCancelled,
				AccountID: source.AccountID,
			})
			if err != nil {
				return err
			}
			desc := fmt.Sprintf("Transfer of %s from account %s to unknown account %s: %s",
				amount, source.AccountNumber, destinationNumber, saved.Status)
			return s.audit.Append(ctx, &actorID, models.AuditActionTransfer, desc)
		}
		if dest.Status != models.AccountStatusActive {
			return ErrAccountInactive
		}

		// Lock both rows in increasing id order before touching either balance.
		first, second := source.AccountID, dest.AccountID
		if second.String() < first.String() {
			first, second = second, first
		}
		sourceBalance := decimal.Zero
		for _, id := range []uuid.UUID{first, second} {
			balance, err := s.balances.LockForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if id == source.AccountID {
				sourceBalance = balance
			}
		}

		status := models.TransactionStatusCompleted
		destID := dest.AccountID
		if sourceBalance.LessThan(amount) {
			status = models.TransactionStatusCancelled
		} else {
			if _, err := s.balances.Debit(ctx, source.AccountID, amount); err != nil {
				return err
			}
			if _, err := s.balances.Credit(ctx, dest.AccountID, amount); err != nil {
				return err
			}
		}

		saved, err = s.txns.Save(ctx, models.TransactionDB{
			Kind:                 models.TransactionKindTransfer,
			Amount:               amount,
			Status:               status,
			AccountID:            source.AccountID,
			DestinationAccountID: &destID,
		})
		if err != nil {
			return err
		}

		desc := fmt.Sprintf("Transfer of %s from account %s to account %s: %s",
			amount, source.AccountNumber, dest.AccountNumber, saved.Status)
		return s.audit.Append(ctx, &actorID, models.AuditActionTransfer, desc)
	})
	if err != nil {
		return nil, err
	}

	s.publishTransaction(ctx, saved)
	return saved, nil
}

// Cancel flips a Pending transaction to Cancelled. No balance reversal is
// needed: the synchronous deposit/withdrawal/transfer paths never leave a
// transaction Pending, so this only ever acts on records created by a
// deferred-settlement flow that has not applied any balance change yet.
func (s *TransactionService) Cancel(ctx context.Context, actor Actor, transactionID uuid.UUID) (*models.TransactionDB, error) {
	if !s.policy.CanCancelTransaction(actor) {
		return nil, ErrNotOperator
	}

	var cancelled *models.TransactionDB
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		txn, err := s.txns.CancelPending(ctx, transactionID)
		if err != nil {
			if err != sql.ErrNoRows {
				return err
			}
			existing, getErr := s.txnReader.GetByID(ctx, transactionID)
			if getErr != nil {
				return getErr
			}
			if existing == nil {
				return ErrTransactionNotFound
			}
			return ErrTransactionNotPending
		}
		cancelled = txn

		actorID := actor.UserID
		desc := fmt.Sprintf("Transaction %s cancelled by operator", txn.TransactionID)
		return s.audit.Append(ctx, &actorID, models.AuditActionTransactionCancel, desc)
	})
	if err != nil {
		return nil, err
	}

	s.publishTransaction(ctx, cancelled)
	return cancelled, nil
}

// checkOwnedAccount loads an active account and verifies the operator-supplied
// owner email against the account's owner.
func (s *TransactionService) checkOwnedAccount(ctx context.Context, accountID uuid.UUID, expectedOwnerEmail string) (*models.AccountDB, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if account.Status != models.AccountStatusActive {
		return nil, ErrAccountInactive
	}

	owner, err := s.users.GetByID(ctx, account.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.Email != expectedOwnerEmail {
		return nil, ErrOwnershipMismatch
	}
	return account, nil
}

// publishTransaction publishes a recorded transaction to Kafka, fire-and-forget.
func (s *TransactionService) publishTransaction(ctx context.Context, txn *models.TransactionDB) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", txn.TransactionID)
		return
	}

	event := models.TransactionEvent{
		TransactionID: txn.TransactionID.String(),
		Kind:          txn.Kind,
		Amount:        txn.Amount.StringFixed(2),
		Status:        txn.Status,
		AccountID:     txn.AccountID.String(),
		Timestamp:     time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction for Kafka", "transaction_id", txn.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction to Kafka", "transaction_id", txn.TransactionID, "error", err)
	} else {
		logger.Log.Infow("Transaction published to Kafka", "transaction_id", txn.TransactionID, "status", txn.Status)
	}
}
