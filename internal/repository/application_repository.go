package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"awardflow/internal/models"
)

// ApplicationRepository handles database operations for award applications
type ApplicationRepository struct {
	db *sql.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `
	id, type, unit_id, date_init, status_flag, last_date,
	last_approved_by_role, last_rejected_by_role, last_shortlisted_approved_role,
	is_mo_approved, mo_approved_at, is_ol_approved, ol_approved_at,
	is_finalized, finalized_at, created_at, updated_at
`

// Create inserts a new application
func (r *ApplicationRepository) Create(app *models.Application) error {
	query := `
		INSERT INTO applications (type, unit_id, date_init, status_flag, last_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRow(
		query,
		app.Type,
		app.UnitID,
		app.DateInit,
		app.StatusFlag,
		app.LastDate,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

// GetByID retrieves an application base row by ID. Returns nil when not found.
func (r *ApplicationRepository) GetByID(id uint) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := r.scanApplication(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

// ListByUnit retrieves all applications submitted by a unit, newest first
func (r *ApplicationRepository) ListByUnit(unitID uint) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE unit_id = $1 ORDER BY date_init DESC`
	return r.list(query, unitID)
}

// ListByStatus retrieves all applications with a given status flag
func (r *ApplicationRepository) ListByStatus(status models.StatusFlag) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE status_flag = $1 ORDER BY date_init DESC`
	return r.list(query, status)
}

// ListAll retrieves all applications, newest first
func (r *ApplicationRepository) ListAll() ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY date_init DESC`
	return r.list(query)
}

// ListFinalizable retrieves applications that satisfy the finalization
// precondition: command approval plus both MO and OL sign-offs, not yet
// finalized.
func (r *ApplicationRepository) ListFinalizable() ([]models.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE last_approved_by_role = 'command'
		  AND status_flag = 'approved'
		  AND is_mo_approved = true
		  AND is_ol_approved = true
		  AND is_finalized = false
		ORDER BY date_init
	`
	return r.list(query)
}

// ListByIDs retrieves the applications with the given ids
func (r *ApplicationRepository) ListByIDs(ids []uint) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = ANY($1) ORDER BY id`

	int64IDs := make([]int64, len(ids))
	for i, id := range ids {
		int64IDs[i] = int64(id)
	}
	return r.list(query, pq.Array(int64IDs))
}

// SetApproved records a hierarchy-level approval
func (r *ApplicationRepository) SetApproved(id uint, role models.Role, status models.StatusFlag) error {
	query := `
		UPDATE applications
		SET status_flag = $2, last_approved_by_role = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, id, status, role)
	return err
}

// SetRejected records a rejection
func (r *ApplicationRepository) SetRejected(id uint, role models.Role) error {
	query := `
		UPDATE applications
		SET status_flag = 'rejected', last_rejected_by_role = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, id, role)
	return err
}

// SetShortlisted records a shortlist approval
func (r *ApplicationRepository) SetShortlisted(id uint, role models.Role) error {
	query := `
		UPDATE applications
		SET status_flag = 'shortlisted_approved', last_shortlisted_approved_role = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, id, role)
	return err
}

// SetStatus updates only the status flag
func (r *ApplicationRepository) SetStatus(id uint, status models.StatusFlag) error {
	query := `UPDATE applications SET status_flag = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(query, id, status)
	return err
}

// SetMoApproved records the Medical Officer side-lane approval
func (r *ApplicationRepository) SetMoApproved(id uint, at time.Time) error {
	query := `
		UPDATE applications
		SET is_mo_approved = true, mo_approved_at = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, id, at)
	return err
}

// SetOlApproved records the Operational Leader side-lane approval
func (r *ApplicationRepository) SetOlApproved(id uint, at time.Time) error {
	query := `
		UPDATE applications
		SET is_ol_approved = true, ol_approved_at = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, id, at)
	return err
}

// SetFinalized marks a batch of applications as finalized
func (r *ApplicationRepository) SetFinalized(ids []uint, at time.Time) error {
	query := `
		UPDATE applications
		SET is_finalized = true, finalized_at = $2, updated_at = NOW()
		WHERE id = ANY($1)
	`

	int64IDs := make([]int64, len(ids))
	for i, id := range ids {
		int64IDs[i] = int64(id)
	}
	_, err := r.db.Exec(query, pq.Array(int64IDs), at)
	return err
}

// ExpireOverdue flags pending applications whose deadline has passed as
// withdrawn. Returns the number of applications affected.
func (r *ApplicationRepository) ExpireOverdue(now time.Time) (int64, error) {
	query := `
		UPDATE applications
		SET status_flag = 'withdrawed', updated_at = NOW()
		WHERE status_flag = 'pending' AND last_date IS NOT NULL AND last_date < $1
	`
	result, err := r.db.Exec(query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *ApplicationRepository) scanApplication(row rowScanner) (*models.Application, error) {
	var app models.Application
	err := row.Scan(
		&app.ID,
		&app.Type,
		&app.UnitID,
		&app.DateInit,
		&app.StatusFlag,
		&app.LastDate,
		&app.LastApprovedByRole,
		&app.LastRejectedByRole,
		&app.LastShortlistedApprovedRole,
		&app.MoOl.IsMoApproved,
		&app.MoOl.MoApprovedAt,
		&app.MoOl.IsOlApproved,
		&app.MoOl.OlApprovedAt,
		&app.Finalization.IsFinalized,
		&app.Finalization.FinalizedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) list(query string, args ...interface{}) ([]models.Application, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := r.scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}

	return apps, rows.Err()
}
