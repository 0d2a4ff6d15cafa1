package repository

import (
	"database/sql"

	"awardflow/internal/models"
)

// AuditRepository handles database operations for audit log entries
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts a new audit log entry
func (r *AuditRepository) Create(entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (user_id, user_email, action, resource, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	return r.db.QueryRow(
		query,
		entry.UserID,
		entry.UserEmail,
		entry.Action,
		entry.Resource,
		entry.Details,
		entry.IPAddress,
		entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// List retrieves audit log entries, newest first
func (r *AuditRepository) List(limit, offset int) ([]models.AuditLog, error) {
	query := `
		SELECT id, user_id, user_email, action, resource, details, ip_address, user_agent, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.AuditLog{}
	for rows.Next() {
		var e models.AuditLog
		err := rows.Scan(
			&e.ID, &e.UserID, &e.UserEmail, &e.Action, &e.Resource,
			&e.Details, &e.IPAddress, &e.UserAgent, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
