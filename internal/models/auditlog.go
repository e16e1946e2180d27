package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit log action labels.
const (
	AuditActionLogin             = "login"
	AuditActionRegister          = "register"
	AuditActionPasswordChange    = "password_change"
	AuditActionAccountCreate     = "account_create"
	AuditActionDeposit           = "deposit"
	AuditActionWithdrawal        = "withdrawal"
	AuditActionTransfer          = "transfer"
	AuditActionTransactionCancel = "transaction_cancel"
)

// AuditLogDB represents an append-only audit log record in the database
type AuditLogDB struct {
	LogID       uuid.UUID  `json:"log_id" db:"log_id"`           // Primary key
	UserID      *uuid.UUID `json:"user_id,omitempty" db:"user_id"` // Acting user, if known
	Action      string     `json:"action" db:"action"`           // Action label
	Description string     `json:"description" db:"description"` // Free-text description
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`   // Timestamp of the triggering operation
}
