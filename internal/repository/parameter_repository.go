package repository

import (
	"database/sql"
	"fmt"
	"time"

	"awardflow/internal/models"
)

// ParameterRepository handles database operations for application parameters,
// their clarification threads and supporting uploads
type ParameterRepository struct {
	db *sql.DB
}

// NewParameterRepository creates a new parameter repository
func NewParameterRepository(db *sql.DB) *ParameterRepository {
	return &ParameterRepository{db: db}
}

// CreateBatch inserts all parameters of an application in one transaction,
// preserving submission order
func (r *ParameterRepository) CreateBatch(applicationID uint, params []models.Parameter) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO parameters (application_id, name, category, subcategory, subsubcategory,
			count, marks, negative, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	for i := range params {
		p := &params[i]
		p.ApplicationID = applicationID
		p.SortOrder = i
		err := tx.QueryRow(
			query,
			applicationID,
			p.Name,
			p.Category,
			p.Subcategory,
			p.Subsubcategory,
			p.Count,
			p.Marks,
			p.Negative,
			p.SortOrder,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert parameter %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetByApplication loads the parameters of an application in submission order,
// including clarification details and uploads
func (r *ParameterRepository) GetByApplication(applicationID uint) ([]models.Parameter, error) {
	query := `
		SELECT p.id, p.application_id, p.name, p.category, p.subcategory, p.subsubcategory,
			p.count, p.marks, p.negative, p.approved_marks, p.sort_order,
			p.created_at, p.updated_at,
			c.clarification_status, c.raised_by_role, c.message, c.response, c.raised_at, c.resolved_at
		FROM parameters p
		LEFT JOIN parameter_clarifications c ON c.parameter_id = p.id
		WHERE p.application_id = $1
		ORDER BY p.sort_order
	`

	rows, err := r.db.Query(query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	params := []models.Parameter{}
	for rows.Next() {
		var p models.Parameter
		var cStatus, cRole, cMessage, cResponse sql.NullString
		var cRaisedAt, cResolvedAt sql.NullTime
		err := rows.Scan(
			&p.ID, &p.ApplicationID, &p.Name, &p.Category, &p.Subcategory, &p.Subsubcategory,
			&p.Count, &p.Marks, &p.Negative, &p.ApprovedMarks, &p.SortOrder,
			&p.CreatedAt, &p.UpdatedAt,
			&cStatus, &cRole, &cMessage, &cResponse, &cRaisedAt, &cResolvedAt,
		)
		if err != nil {
			return nil, err
		}
		if cStatus.Valid {
			clarification := &models.ClarificationDetails{
				Status:   models.ClarificationStatus(cStatus.String),
				Message:  cMessage.String,
				Response: cResponse.String,
			}
			if cRole.Valid {
				clarification.RaisedByRole = models.Role(cRole.String)
			}
			if cRaisedAt.Valid {
				clarification.RaisedAt = &cRaisedAt.Time
			}
			if cResolvedAt.Valid {
				clarification.ResolvedAt = &cResolvedAt.Time
			}
			p.Clarification = clarification
		}
		params = append(params, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachUploads(applicationID, params); err != nil {
		return nil, err
	}
	return params, nil
}

// GetByID retrieves a single parameter. Returns nil when not found.
func (r *ParameterRepository) GetByID(id uint) (*models.Parameter, error) {
	query := `
		SELECT id, application_id, name, category, subcategory, subsubcategory,
			count, marks, negative, approved_marks, sort_order, created_at, updated_at
		FROM parameters
		WHERE id = $1
	`

	var p models.Parameter
	err := r.db.QueryRow(query, id).Scan(
		&p.ID, &p.ApplicationID, &p.Name, &p.Category, &p.Subcategory, &p.Subsubcategory,
		&p.Count, &p.Marks, &p.Negative, &p.ApprovedMarks, &p.SortOrder,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetApprovedMarks records a reviewer override of a parameter's marks
func (r *ParameterRepository) SetApprovedMarks(id uint, marks float64) error {
	query := `UPDATE parameters SET approved_marks = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(query, id, marks)
	return err
}

// RaiseClarification opens (or re-opens) a clarification thread on a parameter
func (r *ParameterRepository) RaiseClarification(parameterID uint, role models.Role, message string, at time.Time) error {
	query := `
		INSERT INTO parameter_clarifications (parameter_id, clarification_status, raised_by_role, message, raised_at)
		VALUES ($1, 'raised', $2, $3, $4)
		ON CONFLICT (parameter_id)
		DO UPDATE SET clarification_status = 'raised', raised_by_role = EXCLUDED.raised_by_role,
			message = EXCLUDED.message, raised_at = EXCLUDED.raised_at,
			response = NULL, resolved_at = NULL
	`
	_, err := r.db.Exec(query, parameterID, role, message, at)
	return err
}

// ResolveClarification closes a clarification thread as clarified or rejected
func (r *ParameterRepository) ResolveClarification(parameterID uint, status models.ClarificationStatus, response string, at time.Time) error {
	query := `
		UPDATE parameter_clarifications
		SET clarification_status = $2, response = $3, resolved_at = $4
		WHERE parameter_id = $1
	`
	result, err := r.db.Exec(query, parameterID, status, response, at)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no clarification found for parameter %d", parameterID)
	}
	return nil
}

// AddUpload attaches a supporting document reference to a parameter
func (r *ParameterRepository) AddUpload(upload *models.UploadRef) error {
	query := `
		INSERT INTO parameter_uploads (id, parameter_id, file_name)
		VALUES ($1, $2, $3)
		RETURNING uploaded_at
	`
	return r.db.QueryRow(query, upload.ID, upload.ParameterID, upload.FileName).Scan(&upload.UploadedAt)
}

func (r *ParameterRepository) attachUploads(applicationID uint, params []models.Parameter) error {
	query := `
		SELECT u.id, u.parameter_id, u.file_name, u.uploaded_at
		FROM parameter_uploads u
		JOIN parameters p ON p.id = u.parameter_id
		WHERE p.application_id = $1
		ORDER BY u.uploaded_at
	`

	rows, err := r.db.Query(query, applicationID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byParameter := make(map[uint][]models.UploadRef)
	for rows.Next() {
		var u models.UploadRef
		if err := rows.Scan(&u.ID, &u.ParameterID, &u.FileName, &u.UploadedAt); err != nil {
			return err
		}
		byParameter[u.ParameterID] = append(byParameter[u.ParameterID], u)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range params {
		params[i].Uploads = byParameter[params[i].ID]
	}
	return nil
}
