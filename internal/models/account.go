package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account kinds.
const (
	AccountKindSavings  = "Savings"
	AccountKindChecking = "Checking"
)

// Account statuses.
const (
	AccountStatusActive   = "Active"
	AccountStatusInactive = "Inactive"
)

// AccountDB represents a bank account record in the database
type AccountDB struct {
	AccountID     uuid.UUID       `json:"account_id" db:"account_id"`         // Primary key
	AccountNumber string          `json:"account_number" db:"account_number"` // Unique external number, immutable
	Kind          string          `json:"kind" db:"kind"`                     // Savings or Checking
	Balance       decimal.Decimal `json:"balance" db:"balance"`               // Current balance, never negative
	Status        string          `json:"status" db:"status"`                 // Active or Inactive
	UserID        uuid.UUID       `json:"user_id" db:"user_id"`               // Owning user
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}
