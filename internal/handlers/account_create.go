package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
	"github.com/jperaza/bancodemo/internal/services"
)

// AccountCreator defines the interface that the service must implement.
type AccountCreator interface {
	CreateForCustomer(ctx context.Context, actor services.Actor, customerEmail, kind string) (*models.AccountDB, error)
}

// CreateAccountRequest represents the JSON body for opening an account
// swagger:model CreateAccountRequest
type CreateAccountRequest struct {
	// Email of the customer the account is opened for
	// required: true
	// default: cli@bank.com
	CustomerEmail string `json:"customer_email"`

	// Account kind: Savings or Checking
	// required: true
	// default: Savings
	Kind string `json:"kind"`
}

// NewCreateAccountHandler returns an HTTP handler for operators opening accounts.
// @Summary Open an account for a customer
// @Description Operator-only. Generates a unique account number and opens an Active account with zero balance.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body handlers.CreateAccountRequest true "Account creation request"
// @Success 201 {object} handlers.AccountResponse
// @Failure 400 {object} handlers.AccountErrorResponse "Unknown customer or invalid kind"
// @Failure 401 {object} handlers.AccountErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.AccountErrorResponse "Actor is not an operator"
// @Router /accounts [post]
// @Security BearerAuth
func NewCreateAccountHandler(svc AccountCreator, tokenGetter TransactionTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims, ok := actorFromRequest(w, r, tokenGetter)
		if !ok {
			return
		}

		var req CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AccountErrorResponse{Error: "Invalid request body"})
			return
		}

		actor := services.Actor{UserID: claims.UserID, Role: claims.Role, Email: claims.Email}
		account, err := svc.CreateForCustomer(ctx, actor, req.CustomerEmail, req.Kind)
		if err != nil {
			switch err {
			case services.ErrCustomerNotFound, services.ErrInvalidAccountKind:
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(AccountErrorResponse{Error: err.Error()})
			case services.ErrNotOperator:
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(AccountErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("account creation failed", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(AccountErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(newAccountResponse(account))
	}
}
