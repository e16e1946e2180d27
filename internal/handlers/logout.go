package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jperaza/bancodemo/internal/logger"
)

// Logouter defines the interface that the service must implement.
type Logouter interface {
	Logout(ctx context.Context, token string) error
}

// LogoutTokener extracts the raw token string from the request.
type LogoutTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// LogoutResponse represents a successful logout response
// swagger:model LogoutResponse
type LogoutResponse struct {
	// Success message
	// default: Logged out
	Message string `json:"message"`
}

// NewLogoutHandler returns an HTTP handler revoking the presented token.
// @Summary Log out
// @Description Revokes the presented JWT; subsequent requests with it are rejected.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.LogoutResponse
// @Failure 401 {object} handlers.LoginErrorResponse "Unauthorized"
// @Router /logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter, tokenGetter LogoutTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		token, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(LoginErrorResponse{Error: "Unauthorized"})
			return
		}

		if err := svc.Logout(ctx, token); err != nil {
			logger.Log.Errorw("logout failed", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(LoginErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LogoutResponse{Message: "Logged out"})
	}
}
