package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleCustomer = "Customer"
	RoleOperator = "Operator"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`             // Primary key
	Name         string    `json:"name" db:"name"`                   // Full name
	Email        string    `json:"email" db:"email"`                 // Unique email, used as login
	Phone        *string   `json:"phone,omitempty" db:"phone"`       // Optional phone number
	PasswordHash string    `json:"-" db:"password_hash"`             // Hashed password
	Role         string    `json:"role" db:"role"`                   // Customer or Operator
	CreatedAt    time.Time `json:"created_at" db:"created_at"`       // Registration timestamp
}
