package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jperaza/bancodemo/internal/jwt"
	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
	"github.com/jperaza/bancodemo/internal/services"
)

// TransactionTokener defines only the methods needed by this handler.
type TransactionTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// DepositWithdrawer defines the engine operations this handler invokes.
type DepositWithdrawer interface {
	Deposit(ctx context.Context, actor services.Actor, accountID uuid.UUID, amount decimal.Decimal, expectedOwnerEmail string) (*models.TransactionDB, error)
	Withdraw(ctx context.Context, actor services.Actor, accountID uuid.UUID, amount decimal.Decimal, expectedOwnerEmail string) (*models.TransactionDB, error)
}

// CreateTransactionRequest represents the JSON body for operator deposits and withdrawals
// swagger:model CreateTransactionRequest
type CreateTransactionRequest struct {
	// Kind of transaction: Deposit or Withdrawal
	// required: true
	// default: Deposit
	Kind string `json:"kind"`

	// Amount with at most two decimal places
	// required: true
	// default: 150.00
	Amount string `json:"amount"`

	// Source account id
	// required: true
	AccountID string `json:"account_id"`

	// Email of the expected account owner, asserted by the operator
	// required: true
	// default: cli@bank.com
	CustomerEmail string `json:"customer_email"`
}

// TransactionResponse represents a recorded transaction
// swagger:model TransactionResponse
type TransactionResponse struct {
	TransactionID        string    `json:"transaction_id"`
	Kind                 string    `json:"kind"`
	Amount               string    `json:"amount"`
	Status               string    `json:"status"`
	AccountID            string    `json:"account_id"`
	DestinationAccountID string    `json:"destination_account_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// TransactionErrorResponse represents an error response for transaction endpoints
// swagger:model TransactionErrorResponse
type TransactionErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

func newTransactionResponse(txn *models.TransactionDB) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID.String(),
		Kind:          txn.Kind,
		Amount:        txn.Amount.StringFixed(2),
		Status:        txn.Status,
		AccountID:     txn.AccountID.String(),
		CreatedAt:     txn.CreatedAt,
	}
	if txn.DestinationAccountID != nil {
		resp.DestinationAccountID = txn.DestinationAccountID.String()
	}
	return resp
}

// NewCreateTransactionHandler returns an HTTP handler for operator deposits and withdrawals.
// @Summary Create a deposit or withdrawal
// @Description Operator-initiated deposit or withdrawal against a customer account. A withdrawal exceeding the balance is recorded with status Cancelled and leaves the balance unchanged.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body handlers.CreateTransactionRequest true "Transaction Request"
// @Success 201 {object} handlers.TransactionResponse "Recorded transaction, status Completed or Cancelled"
// @Failure 400 {object} handlers.TransactionErrorResponse "Validation error"
// @Failure 401 {object} handlers.TransactionErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.TransactionErrorResponse "Actor is not an operator"
// @Router /transactions [post]
// @Security BearerAuth
func NewCreateTransactionHandler(svc DepositWithdrawer, tokenGetter TransactionTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims, ok := actorFromRequest(w, r, tokenGetter)
		if !ok {
			return
		}

		var req CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode transaction request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Invalid request body"})
			return
		}

		accountID, err := uuid.Parse(req.AccountID)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Invalid account id"})
			return
		}

		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Invalid amount"})
			return
		}

		actor := services.Actor{UserID: claims.UserID, Role: claims.Role, Email: claims.Email}

		var txn *models.TransactionDB
		switch req.Kind {
		case models.TransactionKindDeposit:
			txn, err = svc.Deposit(ctx, actor, accountID, amount, req.CustomerEmail)
		case models.TransactionKindWithdrawal:
			txn, err = svc.Withdraw(ctx, actor, accountID, amount, req.CustomerEmail)
		default:
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Kind must be Deposit or Withdrawal"})
			return
		}
		if err != nil {
			writeTransactionError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(newTransactionResponse(txn))
	}
}

// writeTransactionError maps engine errors to HTTP statuses. Validation and
// state errors are the caller's fault; everything else is a server failure.
func writeTransactionError(w http.ResponseWriter, err error) {
	switch err {
	case services.ErrInvalidAmount, services.ErrAccountNotFound, services.ErrAccountInactive,
		services.ErrOwnershipMismatch, services.ErrTransactionNotFound, services.ErrTransactionNotPending:
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(TransactionErrorResponse{Error: err.Error()})
	case services.ErrNotOperator, services.ErrNotCustomer, services.ErrNotAccountOwner:
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(TransactionErrorResponse{Error: err.Error()})
	default:
		logger.Log.Errorw("transaction failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Internal server error"})
	}
}

// actorFromRequest extracts and parses the bearer token, writing a 401 on failure.
func actorFromRequest(w http.ResponseWriter, r *http.Request, tokenGetter TransactionTokener) (*jwt.Claims, bool) {
	ctx := r.Context()

	tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
	if err != nil {
		logger.Log.Warnw("failed to get token from request", "error", err)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Unauthorized"})
		return nil, false
	}

	claims, err := tokenGetter.GetClaims(ctx, tokenStr)
	if err != nil {
		logger.Log.Warnw("failed to get claims from token", "error", err)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Unauthorized"})
		return nil, false
	}
	return claims, true
}
