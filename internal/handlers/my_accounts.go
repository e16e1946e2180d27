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

// MyAccountsLister defines the interface that the service must implement.
type MyAccountsLister interface {
	ListMine(ctx context.Context, actor services.Actor) ([]models.AccountDB, error)
}

// AccountResponse represents an account
// swagger:model AccountResponse
type AccountResponse struct {
	AccountID     string    `json:"account_id"`
	AccountNumber string    `json:"account_number"`
	Kind          string    `json:"kind"`
	Balance       string    `json:"balance"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// AccountListResponse represents a list of accounts
// swagger:model AccountListResponse
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountErrorResponse represents an error response for account endpoints
// swagger:model AccountErrorResponse
type AccountErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

func newAccountResponse(a *models.AccountDB) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID.String(),
		AccountNumber: a.AccountNumber,
		Kind:          a.Kind,
		Balance:       a.Balance.StringFixed(2),
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
	}
}

// NewMyAccountsHandler returns an HTTP handler listing the caller's accounts
// with their current balance and status.
// @Summary List own accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} handlers.AccountListResponse
// @Failure 401 {object} handlers.AccountErrorResponse "Unauthorized"
// @Router /accounts/mine [get]
// @Security BearerAuth
func NewMyAccountsHandler(svc MyAccountsLister, tokenGetter TransactionTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims, ok := actorFromRequest(w, r, tokenGetter)
		if !ok {
			return
		}

		actor := services.Actor{UserID: claims.UserID, Role: claims.Role, Email: claims.Email}
		accounts, err := svc.ListMine(ctx, actor)
		if err != nil {
			logger.Log.Errorw("failed to list accounts", "userID", claims.UserID, "error", err)
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
