package services

import (
	"context"
	"testing"
	"time"

	"tms-shipflow/internal/adapters/persistence/models"
	"tms-shipflow/internal/config"
	"tms-shipflow/internal/core/domain"

	"github.com/stretchr/testify/require"
)

type fakeRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, hash string) (*models.RefreshToken, error) {
	return r.tokens[hash], nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, hash string) error {
	if t, ok := r.tokens[hash]; ok {
		now := time.Now()
		t.RevokedAt = &now
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID string) error {
	now := time.Now()
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	for hash, t := range r.tokens {
		if t.IsExpired() {
			delete(r.tokens, hash)
		}
	}
	return nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func newTestAuthService() (*AuthService, *fakeRefreshTokenRepo) {
	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{}}
	roles := &fakeRoleRepo{roles: map[string]*models.UserRole{}}
	tokens := &fakeRefreshTokenRepo{tokens: map[string]*models.RefreshToken{}}
	return NewAuthService(profiles, roles, tokens, testAuthConfig()), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterInput{
		Email:    "Dispatch@ShipFlow.io",
		FullName: "Dana Dispatcher",
		Password: "changeme12345",
	})
	require.NoError(t, err)
	require.Equal(t, "dispatch@shipflow.io", resp.User.Email)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	// Duplicate registration is rejected.
	_, err = svc.Register(ctx, &RegisterInput{
		Email:    "dispatch@shipflow.io",
		Password: "changeme12345",
	})
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	// Login with the right password, case-insensitive email.
	login, err := svc.Login(ctx, &LoginInput{
		Email:    "DISPATCH@shipflow.io",
		Password: "changeme12345",
	})
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(ctx, &LoginInput{
		Email:    "dispatch@shipflow.io",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{
		Email:    "nobody@shipflow.io",
		Password: "changeme12345",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Email: "not-an-email", Password: "changeme12345"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Register(ctx, &RegisterInput{Email: "a@b.co", Password: "short"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterInput{
		Email:    "driver@shipflow.io",
		Password: "changeme12345",
	})
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The used refresh token is revoked and cannot be replayed.
	_, err = svc.Refresh(ctx, resp.RefreshToken)
	require.ErrorIs(t, err, domain.ErrTokenRevoked)

	// The rotated one still works.
	_, err = svc.Refresh(ctx, rotated.RefreshToken)
	require.NoError(t, err)
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	svc, tokens := newTestAuthService()
	ctx := context.Background()

	first, err := svc.Register(ctx, &RegisterInput{
		Email:    "dock@shipflow.io",
		Password: "changeme12345",
	})
	require.NoError(t, err)

	// A second session for the same account.
	second, err := svc.Login(ctx, &LoginInput{
		Email:    "dock@shipflow.io",
		Password: "changeme12345",
	})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, first.User.ID))

	for _, token := range []string{first.RefreshToken, second.RefreshToken} {
		_, err = svc.Refresh(ctx, token)
		require.ErrorIs(t, err, domain.ErrTokenRevoked)
	}

	// Every stored row for the user is revoked.
	for _, rec := range tokens.tokens {
		require.True(t, rec.IsRevoked())
	}
}

func TestRefresh_RejectsGarbageAndLoggedOutTokens(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Refresh(ctx, "not.a.jwt")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)

	resp, err := svc.Register(ctx, &RegisterInput{
		Email:    "yard@shipflow.io",
		Password: "changeme12345",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))

	_, err = svc.Refresh(ctx, resp.RefreshToken)
	require.ErrorIs(t, err, domain.ErrTokenRevoked)
}
