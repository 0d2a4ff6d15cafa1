package repository

import (
	"database/sql"

	"awardflow/internal/models"
)

// GraceMarkRepository handles database operations for per-role grace marks
type GraceMarkRepository struct {
	db *sql.DB
}

// NewGraceMarkRepository creates a new grace mark repository
func NewGraceMarkRepository(db *sql.DB) *GraceMarkRepository {
	return &GraceMarkRepository{db: db}
}

// Upsert writes a role's grace marks for an application. A role writing again
// replaces its previous value.
func (r *GraceMarkRepository) Upsert(gm *models.GraceMark) error {
	query := `
		INSERT INTO grace_marks (application_id, role, marks, added_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (application_id, role)
		DO UPDATE SET marks = EXCLUDED.marks, added_by = EXCLUDED.added_by, added_at = NOW()
		RETURNING added_at
	`

	return r.db.QueryRow(query, gm.ApplicationID, gm.Role, gm.Marks, gm.AddedBy).Scan(&gm.AddedAt)
}

// GetByApplication loads all grace marks of an application keyed by role
func (r *GraceMarkRepository) GetByApplication(applicationID uint) (map[models.Role]models.GraceMark, error) {
	query := `
		SELECT application_id, role, marks, added_by, added_at
		FROM grace_marks
		WHERE application_id = $1
	`

	rows, err := r.db.Query(query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marks := make(map[models.Role]models.GraceMark)
	for rows.Next() {
		var gm models.GraceMark
		if err := rows.Scan(&gm.ApplicationID, &gm.Role, &gm.Marks, &gm.AddedBy, &gm.AddedAt); err != nil {
			return nil, err
		}
		marks[gm.Role] = gm
	}

	return marks, rows.Err()
}
