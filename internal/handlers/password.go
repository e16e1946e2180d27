package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/services"
)

// PasswordChanger defines the interface that the service must implement.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword, confirm string) error
}

// ChangePasswordRequest represents the JSON body for a password change
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	CurrentPassword string `json:"current_password"`

	// New password
	// required: true
	NewPassword string `json:"new_password"`

	// Confirmation of the new password
	// required: true
	ConfirmPassword string `json:"confirm_password"`
}

// NewChangePasswordHandler returns an HTTP handler for password changes.
// @Summary Change own password
// @Tags users
// @Accept json
// @Produce json
// @Param request body handlers.ChangePasswordRequest true "Password change request"
// @Success 200 {object} handlers.RegisterResponse
// @Failure 400 {object} handlers.RegisterErrorResponse "Confirmation mismatch or wrong current password"
// @Failure 401 {object} handlers.RegisterErrorResponse "Unauthorized"
// @Router /users/password [put]
// @Security BearerAuth
func NewChangePasswordHandler(svc PasswordChanger, tokenGetter TransactionTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims, ok := actorFromRequest(w, r, tokenGetter)
		if !ok {
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(RegisterErrorResponse{Error: "Invalid request body"})
			return
		}

		err := svc.ChangePassword(ctx, claims.UserID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
		if err != nil {
			switch err {
			case services.ErrPasswordMismatch, services.ErrInvalidCredentials:
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(RegisterErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("password change failed", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(RegisterErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(RegisterResponse{Message: "Password updated successfully"})
	}
}
