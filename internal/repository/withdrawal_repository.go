package repository

import (
	"database/sql"
	"time"

	"awardflow/internal/models"
)

// WithdrawalRepository handles database operations for withdrawal requests
type WithdrawalRepository struct {
	db *sql.DB
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *sql.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// CreateRequest opens a withdrawal request on an application
func (r *WithdrawalRepository) CreateRequest(applicationID uint, requestedBy models.Role, at time.Time) error {
	query := `
		INSERT INTO withdrawals (application_id, is_requested, requested_by, status, requested_at)
		VALUES ($1, true, $2, 'pending', $3)
	`
	_, err := r.db.Exec(query, applicationID, requestedBy, at)
	return err
}

// GetByApplication loads the withdrawal lane of an application.
// Returns nil when no withdrawal was ever requested.
func (r *WithdrawalRepository) GetByApplication(applicationID uint) (*models.Withdrawal, error) {
	query := `
		SELECT is_requested, requested_by, status, requested_at, approved_by_role, approved_at
		FROM withdrawals
		WHERE application_id = $1
	`

	var w models.Withdrawal
	err := r.db.QueryRow(query, applicationID).Scan(
		&w.IsRequested,
		&w.RequestedBy,
		&w.Status,
		&w.RequestedAt,
		&w.ApprovedByRole,
		&w.ApprovedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Decide resolves a pending withdrawal request as approved or rejected
func (r *WithdrawalRepository) Decide(applicationID uint, status models.WithdrawStatus, decidedBy models.Role, at time.Time) error {
	query := `
		UPDATE withdrawals
		SET status = $2, approved_by_role = $3, approved_at = $4
		WHERE application_id = $1 AND status = 'pending'
	`
	result, err := r.db.Exec(query, applicationID, status, decidedBy, at)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListPending retrieves the application ids with an undecided withdrawal request
func (r *WithdrawalRepository) ListPending() ([]uint, error) {
	query := `SELECT application_id FROM withdrawals WHERE status = 'pending' ORDER BY requested_at`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []uint{}
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
