package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction kinds.
const (
	TransactionKindDeposit    = "Deposit"
	TransactionKindWithdrawal = "Withdrawal"
	TransactionKindTransfer   = "Transfer"
)

// Transaction statuses. Completed and Cancelled are terminal; Pending is
// reserved for deferred settlement and is never produced by the synchronous
// deposit/withdrawal/transfer paths.
const (
	TransactionStatusPending   = "Pending"
	TransactionStatusCompleted = "Completed"
	TransactionStatusCancelled = "Cancelled"
)

// TransactionDB represents a transaction record in the database
type TransactionDB struct {
	TransactionID        uuid.UUID       `json:"transaction_id" db:"transaction_id"`                             // Primary key
	Kind                 string          `json:"kind" db:"kind"`                                                 // Deposit, Withdrawal or Transfer
	Amount               decimal.Decimal `json:"amount" db:"amount"`                                             // Always positive
	Status               string          `json:"status" db:"status"`                                             // Pending, Completed or Cancelled
	AccountID            uuid.UUID       `json:"account_id" db:"account_id"`                                     // Source account
	DestinationAccountID *uuid.UUID      `json:"destination_account_id,omitempty" db:"destination_account_id"`   // Set for transfers with a resolved destination
	OperatorID           *uuid.UUID      `json:"operator_id,omitempty" db:"operator_id"`                         // Set for operator-initiated deposits/withdrawals
	CreatedAt            time.Time       `json:"created_at" db:"created_at"`                                     // Set at creation, immutable
}

// TransactionEvent is the message published to Kafka for every recorded transaction.
type TransactionEvent struct {
	TransactionID string `json:"transaction_id"` // Transaction identifier
	Kind          string `json:"kind"`           // Deposit, Withdrawal or Transfer
	Amount        string `json:"amount"`         // Decimal amount as string
	Status        string `json:"status"`         // Completed or Cancelled
	AccountID     string `json:"account_id"`     // Source account identifier
	Timestamp     int64  `json:"timestamp"`      // Unix timestamp of the operation
}
