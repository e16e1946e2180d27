package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
	"github.com/jperaza/bancodemo/internal/services"
)

// AccountSearcher defines the interface that the service must implement.
type AccountSearcher interface {
	Search(ctx context.Context, actor services.Actor, q string) ([]models.AccountDB, error)
}

// NewSearchAccountsHandler returns an HTTP handler for operator account search.
// @Summary Search accounts
// @Description Operator-only search by account number prefix or owner email.
// @Tags accounts
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} handlers.AccountListResponse
// @Failure 401 {object} handlers.AccountErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.AccountErrorResponse "Actor is not an operator"
// @Router /accounts/search [get]
// @Security BearerAuth
func NewSearchAccountsHandler(svc AccountSearcher, tokenGetter TransactionTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims, ok := actorFromRequest(w, r, tokenGetter)
		if !ok {
			return
		}

		actor := services.Actor{UserID: claims.UserID, Role: claims.Role, Email: claims.Email}
		accounts, err := svc.Search(ctx, actor, r.URL.Query().Get("q"))
		if err != nil {
			if err == services.ErrNotOperator {
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(AccountErrorResponse{Error: err.Error()})
				return
			}
			logger.Log.Errorw("account search failed", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(AccountErrorResponse{Error: "Internal server error"})
			return
		}

		resp := AccountListResponse{Accounts: make([]AccountResponse, 0, len(accounts))}
		for i := range accounts {
			resp.Accounts = append(resp.Accounts, newAccountResponse(&accounts[i]))
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
