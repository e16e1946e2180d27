package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
)

// ProfileReader resolves the caller's own user record.
type ProfileReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// ProfileResponse represents the caller's profile
// swagger:model ProfileResponse
type ProfileResponse struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfileHandler returns an HTTP handler for the caller's own profile.
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} handlers.ProfileResponse
// @Failure 401 {object} handlers.TransactionErrorResponse "Unauthorized"
// @Router /profile [get]
// @Security BearerAuth
func NewProfileHandler(reader ProfileReader, tokenGetter TransactionTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims, ok := actorFromRequest(w, r, tokenGetter)
		if !ok {
			return
		}

		user, err := reader.GetByID(ctx, claims.UserID)
		if err != nil || user == nil {
			logger.Log.Errorw("failed to load profile", "userID", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TransactionErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ProfileResponse{
			UserID:    user.UserID.String(),
			Name:      user.Name,
			Email:     user.Email,
			Phone:     user.Phone,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}
}
