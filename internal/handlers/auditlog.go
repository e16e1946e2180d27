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

// AuditLogLister reads the audit log for operators.
type AuditLogLister interface {
	List(ctx context.Context) ([]models.AuditLogDB, error)
}

// AuditLogEntryResponse represents an audit log entry
// swagger:model AuditLogEntryResponse
type AuditLogEntryResponse struct {
	LogID       string    `json:"log_id"`
	UserID      string    `json:"user_id,omitempty"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuditLogListResponse represents a list of audit log entries
// swagger:model AuditLogListResponse
type AuditLogListResponse struct {
	Entries []AuditLogEntryResponse `json:"entries"`
}

// NewListAuditLogHandler returns an HTTP handler for the operator audit log listing.
// @Summary List audit log entries
// @Tags logs
// @Produce json
// @Success 200 {object} handlers.AuditLogListResponse
// @Failure 401 {object} handlers.AccountErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.AccountErrorResponse "Actor is not an operator"
// @Router /logs [get]
// @Security BearerAuth
func NewListAuditLogHandler(reader AuditLogLister, policy *services.AccessPolicy, tokenGetter TransactionTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims, ok := actorFromRequest(w, r, tokenGetter)
		if !ok {
			return
		}

		actor := services.Actor{UserID: claims.UserID, Role: claims.Role, Email: claims.Email}
		if !policy.CanViewAuditLog(actor) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(AccountErrorResponse{Error: services.ErrNotOperator.Error()})
			return
		}

		entries, err := reader.List(ctx)
		if err != nil {
			logger.Log.Errorw("failed to list audit log", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(AccountErrorResponse{Error: "Internal server error"})
			return
		}

		resp := AuditLogListResponse{Entries: make([]AuditLogEntryResponse, 0, len(entries))}
		for _, e := range entries {
			entry := AuditLogEntryResponse{
				LogID:       e.LogID.String(),
				Action:      e.Action,
				Description: e.Description,
				CreatedAt:   e.CreatedAt,
			}
			if e.UserID != nil {
				entry.UserID = e.UserID.String()
			}
			resp.Entries = append(resp.Entries, entry)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
