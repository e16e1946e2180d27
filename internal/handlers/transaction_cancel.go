package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jperaza/bancodemo/internal/models"
	"github.com/jperaza/bancodemo/internal/services"
)

// TransactionCanceller defines the engine operation this handler invokes.
type TransactionCanceller interface {
	Cancel(ctx context.Context, actor services.Actor, transactionID uuid.UUID) (*models.TransactionDB, error)
}

// NewCancelTransactionHandler returns an HTTP handler cancelling a pending transaction.
// @Summary Cancel a pending transaction
// @Description Flips a Pending transaction to Cancelled. Rejected when the transaction is already Completed or Cancelled.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id"
// @Success 200 {object} handlers.TransactionResponse "Cancelled transaction"
// @Failure 400 {object} handlers.TransactionErrorResponse "Transaction is not pending"
// @Failure 401 {object} handlers.TransactionErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.TransactionErrorResponse "Actor is not an operator"
// @Router /transactions/{id}/cancel [put]
// @Security BearerAuth
func NewCancelTransactionHandler(svc TransactionCanceller, tokenGetter TransactionTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims, ok := actorFromRequest(w, r, tokenGetter)
		if !ok {
			return
		}

		transactionID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Invalid transaction id"})
			return
		}

		actor := services.Actor{UserID: claims.UserID, Role: claims.Role, Email: claims.Email}

		txn, err := svc.Cancel(ctx, actor, transactionID)
		if err != nil {
			writeTransactionError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(newTransactionResponse(txn))
	}
}
