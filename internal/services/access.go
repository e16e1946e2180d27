package services

import (
	"github.com/google/uuid"

	"github.com/jperaza/bancodemo/internal/models"
)

// Actor is the authenticated identity a request acts as. It is passed
// explicitly into every service call; nothing reads it from ambient state.
type Actor struct {
	UserID uuid.UUID // Authenticated user identifier
	Role   string    // Customer or Operator
	Email  string    // User email
}

// AccessPolicy decides which actor may invoke which operation. Each
// operation variant has its own predicate; there is no generic entry point.
// All predicates are pure functions of the actor and, where ownership
// matters, the target account.
type AccessPolicy struct{}

// NewAccessPolicy creates a new AccessPolicy.
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanDeposit reports whether the actor may perform operator deposits.
func (AccessPolicy) CanDeposit(actor Actor) bool {
	return actor.Role == models.RoleOperator
}

// CanWithdraw reports whether the actor may perform operator withdrawals.
func (AccessPolicy) CanWithdraw(actor Actor) bool {
	return actor.Role == models.RoleOperator
}

// CanTransferFrom reports whether the actor may transfer out of the account.
// Transfers require the Customer role and direct ownership of the source
// account, by identity, not by email.
func (AccessPolicy) CanTransferFrom(actor Actor, account *models.AccountDB) bool {
	return actor.Role == models.RoleCustomer && account != nil && account.UserID == actor.UserID
}

// CanCancelTransaction reports whether the actor may cancel a pending transaction.
func (AccessPolicy) CanCancelTransaction(actor Actor) bool {
	return actor.Role == models.RoleOperator
}

// CanCreateAccount reports whether the actor may open accounts for customers.
func (AccessPolicy) CanCreateAccount(actor Actor) bool {
	return actor.Role == models.RoleOperator
}

// CanViewAuditLog reports whether the actor may read the audit log.
func (AccessPolicy) CanViewAuditLog(actor Actor) bool {
	return actor.Role == models.RoleOperator
}

// CanSearchCustomers reports whether the actor may list or search customers.
func (AccessPolicy) CanSearchCustomers(actor Actor) bool {
	return actor.Role == models.RoleOperator
}

// CanSearchAccounts reports whether the actor may search accounts across users.
func (AccessPolicy) CanSearchAccounts(actor Actor) bool {
	return actor.Role == models.RoleOperator
}

// CanRunReport reports whether the actor may run transaction reports.
func (AccessPolicy) CanRunReport(actor Actor) bool {
	return actor.Role == models.RoleOperator
}

// CanViewAccount reports whether the actor may read an account's details.
// Operators see every account; customers only their own.
func (AccessPolicy) CanViewAccount(actor Actor, account *models.AccountDB) bool {
	if actor.Role == models.RoleOperator {
		return true
	}
	return account != nil && account.UserID == actor.UserID
}
