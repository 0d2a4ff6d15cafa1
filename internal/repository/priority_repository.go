package repository

import (
	"database/sql"

	"awardflow/internal/models"
)

// PriorityRepository handles database operations for per-role priority rankings
type PriorityRepository struct {
	db *sql.DB
}

// NewPriorityRepository creates a new priority repository
func NewPriorityRepository(db *sql.DB) *PriorityRepository {
	return &PriorityRepository{db: db}
}

// Upsert writes a role's priority for an application, replacing any previous value
func (r *PriorityRepository) Upsert(p *models.Priority) error {
	query := `
		INSERT INTO priorities (application_id, role, priority)
		VALUES ($1, $2, $3)
		ON CONFLICT (application_id, role)
		DO UPDATE SET priority = EXCLUDED.priority, added_at = NOW()
		RETURNING added_at
	`

	return r.db.QueryRow(query, p.ApplicationID, p.Role, p.Priority).Scan(&p.AddedAt)
}

// GetByApplication loads all priorities of an application keyed by role
func (r *PriorityRepository) GetByApplication(applicationID uint) (map[models.Role]models.Priority, error) {
	query := `
		SELECT application_id, role, priority, added_at
		FROM priorities
		WHERE application_id = $1
	`

	rows, err := r.db.Query(query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	priorities := make(map[models.Role]models.Priority)
	for rows.Next() {
		var p models.Priority
		if err := rows.Scan(&p.ApplicationID, &p.Role, &p.Priority, &p.AddedAt); err != nil {
			return nil, err
		}
		priorities[p.Role] = p
	}

	return priorities, rows.Err()
}
