package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"awardflow/internal/auth"
	"awardflow/internal/config"
	"awardflow/internal/models"
	"awardflow/internal/repository"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo     *repository.UserRepository
	sessionRepo  *repository.SessionRepository
	authService  *auth.Service
	jwtConfig    *config.JWTConfig
	auditService *AuditService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	authService *auth.Service,
	jwtConfig *config.JWTConfig,
	auditService *AuditService,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		authService:  authService,
		jwtConfig:    jwtConfig,
		auditService: auditService,
	}
}

// TokenPair is an issued access/refresh token pair
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(email, password, ipAddress, userAgent string) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if err := s.authService.VerifyPassword(user.PasswordHash, password); err != nil {
		s.auditService.Log(user.ID, "auth.login_failed", "auth", email)
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}

	s.auditService.Log(user.ID, "auth.login", "auth", email)
	return pair, nil
}

// Refresh validates a refresh token against its session and issues a new pair.
// The old refresh session is revoked (rotation).
func (s *AuthService) Refresh(refreshToken, ipAddress, userAgent string) (*TokenPair, error) {
	claims, err := s.authService.ValidateToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}

	session, err := s.sessionRepo.GetByJTI(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil || session.TokenType != "refresh" {
		return nil, ErrSessionNotFound
	}

	user, err := s.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := s.sessionRepo.DeleteByJTI(claims.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}

	return s.issueTokens(user, ipAddress, userAgent)
}

// Logout revokes the session behind a token
func (s *AuthService) Logout(jti string, userID uint) error {
	if err := s.sessionRepo.DeleteByJTI(jti); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.auditService.Log(userID, "auth.logout", "auth", "")
	return nil
}

// ValidateSession checks that a token's JTI still has a live session
func (s *AuthService) ValidateSession(jti string) (bool, error) {
	session, err := s.sessionRepo.GetByJTI(jti)
	if err != nil {
		return false, fmt.Errorf("failed to get session: %w", err)
	}
	return session != nil, nil
}

// Register creates a new user account with a hashed password
func (s *AuthService) Register(email, password, firstName, lastName string, role models.Role, unitID *uint) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user with email %s already exists", email)
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		UnitID:       unitID,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.auditService.Log(user.ID, "auth.register", "auth", email)
	return user, nil
}

func (s *AuthService) issueTokens(user *models.User, ipAddress, userAgent string) (*TokenPair, error) {
	accessToken, accessJTI, err := s.authService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshJTI, err := s.authService.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	sessions := []models.Session{
		{ID: uuid.NewString(), UserID: user.ID, JTI: accessJTI, TokenType: "access", ExpiresAt: now.Add(s.jwtConfig.Expiration), IPAddress: ipAddress, UserAgent: userAgent},
		{ID: uuid.NewString(), UserID: user.ID, JTI: refreshJTI, TokenType: "refresh", ExpiresAt: now.Add(s.jwtConfig.RefreshExpiration), IPAddress: ipAddress, UserAgent: userAgent},
	}
	for i := range sessions {
		if err := s.sessionRepo.Create(&sessions[i]); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}
