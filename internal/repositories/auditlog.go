package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jperaza/bancodemo/internal/logger"
	"github.com/jperaza/bancodemo/internal/models"
)

// AuditLogWriteRepository appends audit log entries. The log is append-only;
// there is no update or delete path.
type AuditLogWriteRepository struct {
	db *sqlx.DB
}

func NewAuditLogWriteRepository(db *sqlx.DB) *AuditLogWriteRepository {
	return &AuditLogWriteRepository{db: db}
}

// Append writes a single audit entry with a server-side timestamp.
func (r *AuditLogWriteRepository) Append(ctx context.Context, userID *uuid.UUID, action, description string) error {
	const query = `
		INSERT INTO audit_log (log_id, user_id, action, description, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	_, err := executor(ctx, r.db).ExecContext(ctx, query, uuid.New(), userID, action, description)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, action, description},
		"error", err,
	)

	return err
}

// AuditLogReadRepository lists audit log entries for operators.
type AuditLogReadRepository struct {
	db *sqlx.DB
}

func NewAuditLogReadRepository(db *sqlx.DB) *AuditLogReadRepository {
	return &AuditLogReadRepository{db: db}
}

// List returns audit entries, newest first.
func (r *AuditLogReadRepository) List(ctx context.Context) ([]models.AuditLogDB, error) {
	const query = `
		SELECT log_id, user_id, action, description, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT 1000
	`

	var entries []models.AuditLogDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &entries, query)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"result_count", len(entries),
		"error", err,
	)

	return entries, err
}
