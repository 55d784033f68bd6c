package services_test

import (
	"context"
	"testing"

	"github.com/akinalp/okundu/models"
	"github.com/akinalp/okundu/pkg"
	"github.com/akinalp/okundu/repository"
	"github.com/akinalp/okundu/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) services.AuthService {
	t.Helper()
	db := newTestDB(t)
	return services.NewAuthService(
		repository.NewSQLiteUserRepo(db),
		repository.NewSQLiteSessionRepo(db),
		"test-jwt-secret",
		15, // access dakika
		7,  // refresh gün
	)
}

func registerReq(username string) *models.CreateUserRequest {
	return &models.CreateUserRequest{
		Username: username,
		Password: "correct-horse",
		Email:    username + "@example.test",
		Language: "en",
	}
}

func TestRegisterFirstUserIsSuperadmin(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	first, err := auth.Register(ctx, registerReq("founder"))
	require.NoError(t, err)
	assert.True(t, first.User.IsSuperadmin)
	assert.NotEmpty(t, first.AccessToken)
	assert.NotEmpty(t, first.RefreshToken)

	second, err := auth.Register(ctx, registerReq("reader"))
	require.NoError(t, err)
	assert.False(t, second.User.IsSuperadmin)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, registerReq("reader"))
	require.NoError(t, err)

	_, err = auth.Register(ctx, registerReq("reader"))
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestLoginAndTokenValidation(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, registerReq("reader"))
	require.NoError(t, err)

	tokens, err := auth.Login(ctx, &models.LoginRequest{
		Username: "reader",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	claims, err := auth.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.NotEmpty(t, claims.SessionID)

	_, err = auth.Login(ctx, &models.LoginRequest{
		Username: "reader",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestRefreshRotatesSession(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	tokens, err := auth.Register(ctx, registerReq("reader"))
	require.NoError(t, err)

	rotated, err := auth.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// Eski refresh token artık geçersiz — rotasyon tek kullanımlık
	_, err = auth.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	tokens, err := auth.Register(ctx, registerReq("reader"))
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, tokens.RefreshToken))

	_, err = auth.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}
