package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"awardflow/internal/config"
	"awardflow/internal/models"
)

// Service handles password hashing and JWT issuing/validation
type Service struct {
	config *config.JWTConfig
}

// Claims are the JWT claims carried by access and refresh tokens
type Claims struct {
	UserID uint        `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// NewService creates a new auth service
func NewService(cfg *config.JWTConfig) *Service {
	return &Service{config: cfg}
}

// HashPassword hashes a password using bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a password against its bcrypt hash
func (s *Service) VerifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateToken issues an access token. The returned JTI identifies the token
// in the session store so it can be invalidated.
func (s *Service) GenerateToken(userID uint, email string, role models.Role) (string, string, error) {
	return s.generate(userID, email, role, s.config.Expiration)
}

// GenerateRefreshToken issues a refresh token with the longer expiration
func (s *Service) GenerateRefreshToken(userID uint, email string, role models.Role) (string, string, error) {
	return s.generate(userID, email, role, s.config.RefreshExpiration)
}

func (s *Service) generate(userID uint, email string, role models.Role, expiration time.Duration) (string, string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, jti, nil
}

// ValidateToken parses and validates a token, returning its claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
