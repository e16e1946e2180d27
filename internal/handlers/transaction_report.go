package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
	"github.com/jperaza/bancodemo/internal/services"
)

// TransactionReporter reads transactions filtered for operator reports.
type TransactionReporter interface {
	Report(ctx context.Context, kind string, from, to time.Time) ([]models.TransactionDB, error)
}

// NewTransactionReportHandler returns an HTTP handler for the operator transaction report.
// @Summary Transaction report
// @Description Operator-only report filtered by kind and date range (YYYY-MM-DD).
// @Tags transactions
// @Produce json
// @Param kind query string false "Transaction kind filter"
// @Param from query string false "Start date, inclusive"
// @Param to query string false "End date, inclusive"
// @Success 200 {object} handlers.TransactionListResponse
// @Failure 400 {object} handlers.TransactionErrorResponse "Invalid filter"
// @Failure 401 {object} handlers.TransactionErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.TransactionErrorResponse "Actor is not an operator"
// @Router /transactions/report [get]
// @Security BearerAuth
func NewTransactionReportHandler(reader TransactionReporter, policy *services.AccessPolicy, tokenGetter TransactionTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims, ok := actorFromRequest(w, r, tokenGetter)
		if !ok {
			return
		}

		actor := services.Actor{UserID: claims.UserID, Role: claims.Role, Email: claims.Email}
		if !policy.CanRunReport(actor) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: services.ErrNotOperator.Error()})
			return
		}

		kind := r.URL.Query().Get("kind")
		switch kind {
		case "", models.TransactionKindDeposit, models.TransactionKindWithdrawal, models.TransactionKindTransfer:
		default:
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Invalid transaction kind"})
			return
		}

		var from, to time.Time
		var err error
		if v := r.URL.Query().Get("from"); v != "" {
			if from, err = time.Parse("2006-01-02", v); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Invalid from date"})
				return
			}
		}
		if v := r.URL.Query().Get("to"); v != "" {
			if to, err = time.Parse("2006-01-02", v); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Invalid to date"})
				return
			}
			// Inclusive end of day.
			to = to.Add(24*time.Hour - time.Nanosecond)
		}

		txns, err := reader.Report(ctx, kind, from, to)
		if err != nil {
			logger.Log.Errorw("failed to build transaction report", "error", err)
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
