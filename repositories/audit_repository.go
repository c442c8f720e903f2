package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/audit-trail/models"
)

// AuditRepository handles audit log persistence
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
	ListByRequest(ctx context.Context, requestID string) ([]models.AuditLogEntry, error)
}

type sqliteAuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &sqliteAuditRepository{db: db}
}

// Create inserts a new audit log entry
func (r *sqliteAuditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	query := `
		INSERT INTO audit_log (timestamp, request_id, user_id, method, path, form_data, user_agent, ip_address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	result, err := r.db.ExecContext(ctx,
		query,
		entry.Timestamp,
		entry.RequestID,
		entry.UserID,
		entry.Method,
		entry.Path,
		entry.FormData,
		entry.UserAgent,
		entry.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	entry.ID = id
	return nil
}

// ListByRequest returns the entries recorded for one request
func (r *sqliteAuditRepository) ListByRequest(ctx context.Context, requestID string) ([]models.AuditLogEntry, error) {
	query := `
		SELECT id, timestamp, request_id, user_id, method, path, form_data, user_agent, ip_address
		FROM audit_log
		WHERE request_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditLogEntry
	for rows.Next() {
		var entry models.AuditLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.Timestamp,
			&entry.RequestID,
			&entry.UserID,
			&entry.Method,
			&entry.Path,
			&entry.FormData,
			&entry.UserAgent,
			&entry.IPAddress,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log: %w", err)
	}

	return entries, nil
}
