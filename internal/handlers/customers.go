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

// CustomerLister reads customer records for operators.
type CustomerLister interface {
	ListCustomers(ctx context.Context, q string) ([]models.UserDB, error)
}

// CustomerResponse represents a customer in operator listings
// swagger:model CustomerResponse
type CustomerResponse struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerListResponse represents a list of customers
// swagger:model CustomerListResponse
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// NewListCustomersHandler returns an HTTP handler for the operator customer
// listing; the optional q parameter filters by name or email.
// @Summary List or search customers
// @Tags customers
// @Produce json
// @Param q query string false "Name/email filter"
// @Success 200 {object} handlers.CustomerListResponse
// @Failure 401 {object} handlers.AccountErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.AccountErrorResponse "Actor is not an operator"
// @Router /customers [get]
// @Security BearerAuth
func NewListCustomersHandler(reader CustomerLister, policy *services.AccessPolicy, tokenGetter TransactionTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims, ok := actorFromRequest(w, r, tokenGetter)
		if !ok {
			return
		}

		actor := services.Actor{UserID: claims.UserID, Role: claims.Role, Email: claims.Email}
		if !policy.CanSearchCustomers(actor) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(AccountErrorResponse{Error: services.ErrNotOperator.Error()})
			return
		}

		customers, err := reader.ListCustomers(ctx, r.URL.Query().Get("q"))
		if err != nil {
			logger.Log.Errorw("failed to list customers", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(AccountErrorResponse{Error: "Internal server error"})
			return
		}

		resp := CustomerListResponse{Customers: make([]CustomerResponse, 0, len(customers))}
		for _, c := range customers {
			resp.Customers = append(resp.Customers, CustomerResponse{
				UserID:    c.UserID.String(),
				Name:      c.Name,
				Email:     c.Email,
				Phone:     c.Phone,
				CreatedAt: c.CreatedAt,
			})
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
