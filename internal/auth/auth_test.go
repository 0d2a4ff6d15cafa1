package auth

import (
	"testing"
	"time"

	"awardflow/internal/config"
	"awardflow/internal/models"
)

func testService() *Service {
	return NewService(&config.JWTConfig{
		Secret:            "test-secret",
		Expiration:        24 * time.Hour,
		RefreshExpiration: 168 * time.Hour,
	})
}

func TestHashPassword(t *testing.T) {
	svc := testService()

	password := "testpassword123"
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	if hash == "" {
		t.Error("Hash should not be empty")
	}

	if hash == password {
		t.Error("Hash should not equal the original password")
	}
}

func TestVerifyPassword(t *testing.T) {
	svc := testService()

	password := "testpassword123"
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	// Test correct password
	if err := svc.VerifyPassword(hash, password); err != nil {
		t.Errorf("Should verify correct password, got error: %v", err)
	}

	// Test incorrect password
	if err := svc.VerifyPassword(hash, "wrongpassword"); err == nil {
		t.Error("Should not verify incorrect password")
	}
}

func TestGenerateToken(t *testing.T) {
	svc := testService()

	token, jti, err := svc.GenerateToken(1, "brigade@example.com", models.RoleBrigade)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if token == "" {
		t.Error("Token should not be empty")
	}
	if jti == "" {
		t.Error("JTI should not be empty")
	}
}

func TestValidateToken(t *testing.T) {
	svc := testService()

	token, jti, err := svc.GenerateToken(7, "corps@example.com", models.RoleCorps)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Email != "corps@example.com" {
		t.Errorf("Email = %s, want corps@example.com", claims.Email)
	}
	if claims.Role != models.RoleCorps {
		t.Errorf("Role = %s, want corps", claims.Role)
	}
	if claims.ID != jti {
		t.Errorf("JTI = %s, want %s", claims.ID, jti)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := testService()

	token, _, err := svc.GenerateToken(1, "brigade@example.com", models.RoleBrigade)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	other := NewService(&config.JWTConfig{Secret: "different-secret", Expiration: time.Hour})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("Token signed with a different secret should not validate")
	}
}
