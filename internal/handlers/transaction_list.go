package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
)

// TransactionLister reads transactions scoped to the caller.
type TransactionLister interface {
	ListByAccountOwner(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error)
	ListByOperator(ctx context.Context, operatorID uuid.UUID) ([]models.TransactionDB, error)
}

// TransactionListResponse represents a list of transactions
// swagger:model TransactionListResponse
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// NewListTransactionsHandler returns an HTTP handler listing transactions.
// Customers see transactions touching their own accounts; operators see the
// transactions they initiated.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Success 200 {object} handlers.TransactionListResponse
// @Failure 401 {object} handlers.TransactionErrorResponse "Unauthorized"
// @Router /transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(reader TransactionLister, tokenGetter TransactionTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims, ok := actorFromRequest(w, r, tokenGetter)
		if !ok {
			return
		}

		var (
			txns []models.TransactionDB
			err  error
		)
		if claims.Role == models.RoleOperator {
			txns, err = reader.ListByOperator(ctx, claims.UserID)
		} else {
			txns, err = reader.ListByAccountOwner(ctx, claims.UserID)
		}
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "userID", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Internal server error"})
			return
		}

		resp := TransactionListResponse{Transactions: make([]TransactionResponse, 0, len(txns))}
		for i := range txns {
			resp.Transactions = append(resp.Transactions, newTransactionResponse(&txns[i]))
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
