package repository

import (
	"database/sql"
	"time"

	"awardflow/internal/models"
)

// SessionRepository handles database operations for token sessions
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session
func (r *SessionRepository) Create(session *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, jti, token_type, expires_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	return r.db.QueryRow(
		query,
		session.ID,
		session.UserID,
		session.JTI,
		session.TokenType,
		session.ExpiresAt,
		session.IPAddress,
		session.UserAgent,
	).Scan(&session.CreatedAt)
}

// GetByJTI retrieves an unexpired session by its token id. Returns nil when
// not found or already expired.
func (r *SessionRepository) GetByJTI(jti string) (*models.Session, error) {
	query := `
		SELECT id, user_id, jti, token_type, expires_at, created_at, ip_address, user_agent
		FROM sessions
		WHERE jti = $1 AND expires_at > NOW()
	`

	var s models.Session
	err := r.db.QueryRow(query, jti).Scan(
		&s.ID, &s.UserID, &s.JTI, &s.TokenType, &s.ExpiresAt, &s.CreatedAt, &s.IPAddress, &s.UserAgent,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteByJTI removes a single session (logout)
func (r *SessionRepository) DeleteByJTI(jti string) error {
	query := `DELETE FROM sessions WHERE jti = $1`
	_, err := r.db.Exec(query, jti)
	return err
}

// DeleteByUser removes all of a user's sessions
func (r *SessionRepository) DeleteByUser(userID uint) error {
	query := `DELETE FROM sessions WHERE user_id = $1`
	_, err := r.db.Exec(query, userID)
	return err
}

// DeleteExpired purges sessions past their expiry. Returns the number deleted.
func (r *SessionRepository) DeleteExpired(now time.Time) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at <= $1`
	result, err := r.db.Exec(query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
