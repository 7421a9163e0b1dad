package services

import (
	"context"
	"log"
	"strings"

	"tms-shipflow/internal/adapters/persistence/models"
	"tms-shipflow/internal/adapters/persistence/repositories"
	"tms-shipflow/internal/config"
	"tms-shipflow/internal/core/domain"
	"tms-shipflow/internal/pkg/jwt"
	"tms-shipflow/internal/pkg/password"

	"github.com/google/uuid"
)

// AuthService handles authentication business logic
type AuthService struct {
	profileRepo      repositories.ProfileRepository
	roleRepo         repositories.UserRoleRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	profileRepo repositories.ProfileRepository,
	roleRepo repositories.UserRoleRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		profileRepo:      profileRepo,
		roleRepo:         roleRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.ProfileResponse `json:"user"`
	AccessToken  string                  `json:"access_token"`
	RefreshToken string                  `json:"refresh_token"`
}

// Register registers a new user with the employee role
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if !domain.ValidEmail(email) {
		return nil, validationErr("invalid email address")
	}
	if !password.ValidatePassword(input.Password) {
		return nil, validationErr("password must be at least 8 characters")
	}

	exists, err := s.profileRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, storeErr(err)
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if name := strings.TrimSpace(input.FullName); name != "" {
		profile.FullName = &name
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, storeErr(err)
	}

	// New accounts start as employees; admins are promoted out of band
	role := &models.UserRole{
		ID:     uuid.NewString(),
		UserID: profile.ID,
		Role:   string(domain.RoleEmployee),
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, storeErr(err)
	}

	return s.issueTokens(ctx, profile, role.Role)
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, storeErr(err)
	}
	if profile == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(input.Password, profile.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, profile, s.roleOf(ctx, profile.ID))
}

// Refresh rotates a refresh token and returns a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if err == jwt.ErrTokenExpired {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	stored, err := s.refreshTokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		return nil, storeErr(err)
	}
	if stored == nil {
		return nil, domain.ErrTokenInvalid
	}
	if stored.IsRevoked() {
		return nil, domain.ErrTokenRevoked
	}
	if stored.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	profile, err := s.profileRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, storeErr(err)
	}
	if profile == nil {
		return nil, domain.ErrTokenInvalid
	}

	// Rotate: revoke the used token before issuing a fresh pair
	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, stored.TokenHash); err != nil {
		return nil, storeErr(err)
	}

	return s.issueTokens(ctx, profile, s.roleOf(ctx, profile.ID))
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshTokenRepo.RevokeByTokenHash(ctx, password.HashToken(refreshToken))
}

// LogoutAll revokes every refresh token the user holds, ending all of
// their sessions at once
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, userID)
}

// roleOf looks up the user's role, defaulting to employee
func (s *AuthService) roleOf(ctx context.Context, userID string) string {
	role, err := s.roleRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Failed to load role for %s: %v", userID, err)
	}
	if role == nil {
		return string(domain.RoleEmployee)
	}
	return role.Role
}

func (s *AuthService) issueTokens(ctx context.Context, profile *models.Profile, role string) (*AuthResponse, error) {
	accessToken, err := jwt.GenerateAccessToken(
		profile.ID, profile.Email, role,
		s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.NewString()
	refreshToken, err := jwt.GenerateRefreshToken(
		profile.ID, tokenID,
		s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	record := &models.RefreshToken{
		UserID:    profile.ID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	if err := s.refreshTokenRepo.Create(ctx, record); err != nil {
		return nil, storeErr(err)
	}

	return &AuthResponse{
		User:         profile.ToResponse(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
