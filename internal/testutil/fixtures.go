package testutil

import (
	"database/sql"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"awardflow/internal/models"
)

// Fixtures holds test data shared by repository and service tests
type Fixtures struct {
	DB          *sql.DB
	UnitUser    *models.User
	BrigadeUser *models.User
	CommandUser *models.User
	Application *models.Application
}

// SetupFixtures creates a unit, three users and one pending citation application
func SetupFixtures(t *testing.T, db *sql.DB) *Fixtures {
	t.Helper()

	fixtures := &Fixtures{DB: db}

	fixtures.UnitUser = CreateUser(t, db, "unit@test.mil", models.RoleUnit, uintPtr(1))
	fixtures.BrigadeUser = CreateUser(t, db, "brigade@test.mil", models.RoleBrigade, nil)
	fixtures.CommandUser = CreateUser(t, db, "command@test.mil", models.RoleCommand, nil)
	fixtures.Application = CreateApplication(t, db, models.TypeCitation, 1)

	return fixtures
}

// CreateUser inserts a test user with a bcrypt-hashed default password
func CreateUser(t *testing.T, db *sql.DB, email string, role models.Role, unitID *uint) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		UnitID:       unitID,
		IsActive:     true,
	}
	err = db.QueryRow(
		`INSERT INTO users (email, password_hash, first_name, last_name, role, unit_id, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Role, user.UnitID, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	return user
}

// CreateApplication inserts a pending application for a unit
func CreateApplication(t *testing.T, db *sql.DB, appType models.ApplicationType, unitID uint) *models.Application {
	t.Helper()

	app := &models.Application{
		Type:       appType,
		UnitID:     unitID,
		DateInit:   time.Now(),
		StatusFlag: models.StatusPending,
	}
	err := db.QueryRow(
		`INSERT INTO applications (type, unit_id, date_init, status_flag)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`,
		app.Type, app.UnitID, app.DateInit, app.StatusFlag,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create application: %v", err)
	}

	return app
}

// CreateParameter inserts a parameter on an application
func CreateParameter(t *testing.T, db *sql.DB, applicationID uint, name string, marks float64, negative bool) *models.Parameter {
	t.Helper()

	p := &models.Parameter{
		ApplicationID: applicationID,
		Name:          name,
		Count:         1,
		Marks:         marks,
		Negative:      negative,
	}
	err := db.QueryRow(
		`INSERT INTO parameters (application_id, name, count, marks, negative)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`,
		p.ApplicationID, p.Name, p.Count, p.Marks, p.Negative,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create parameter: %v", err)
	}

	return p
}

func uintPtr(v uint) *uint { return &v }
