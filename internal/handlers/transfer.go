package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
	"github.com/jperaza/bancodemo/internal/services"
)

// Transferer defines the engine operation this handler invokes.
type Transferer interface {
	Transfer(ctx context.Context, actor services.Actor, sourceAccountID uuid.UUID, destinationNumber string, amount decimal.Decimal) (*models.TransactionDB, error)
}

// TransferRequest represents the JSON body for customer transfers
// swagger:model TransferRequest
type TransferRequest struct {
	// Source account id, owned by the caller
	// required: true
	AccountID string `json:"account_id"`

	// Destination external account number
	// required: true
	// default: 482-3051967-14
	DestinationAccountNumber string `json:"destination_account_number"`

	// Amount with at most two decimal places
	// required: true
	// default: 100.00
	Amount string `json:"amount"`
}

// NewTransferHandler returns an HTTP handler for customer transfers.
// @Summary Transfer between accounts
// @Description Customer transfer from an owned account to a destination resolved by account number. An unknown destination or insufficient balance is recorded with status Cancelled and leaves both balances unchanged.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body handlers.TransferRequest true "Transfer Request"
// @Success 201 {object} handlers.TransactionResponse "Recorded transaction, status Completed or Cancelled"
// @Failure 400 {object} handlers.TransactionErrorResponse "Validation error"
// @Failure 401 {object} handlers.TransactionErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.TransactionErrorResponse "Actor does not own the source account"
// @Router /transactions/transfer [post]
// @Security BearerAuth
func NewTransferHandler(svc Transferer, tokenGetter TransactionTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims, ok := actorFromRequest(w, r, tokenGetter)
		if !ok {
			return
		}

		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode transfer request", "error", err)
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

		txn, err := svc.Transfer(ctx, actor, accountID, req.DestinationAccountNumber, amount)
		if err != nil {
			writeTransactionError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(newTransactionResponse(txn))
	}
}
