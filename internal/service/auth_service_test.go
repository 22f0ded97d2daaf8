package service

import (
	"context"
	"testing"
	"time"

	"aldudu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndLogout(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	token, user, err := s.Auth.Login(ctx, " Guru@Aldudu.com ", "123")
	require.NoError(t, err)
	assert.Equal(t, s.Teacher.ID, user.ID)

	claims, err := s.Auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, s.Teacher.ID, claims.UserID)
	assert.NotEmpty(t, claims.ID)

	require.NoError(t, s.Auth.Logout(ctx, claims))
	_, err = s.Auth.Authenticate(ctx, token)
	assert.ErrorIs(t, err, util.ErrTokenRevoked)

	_, _, err = s.Auth.Login(ctx, "guru@aldudu.com", "salah")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, _, err = s.Auth.Login(ctx, "tidakada@aldudu.com", "123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = s.Auth.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}

func TestCurrentUser(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	user, err := s.Auth.CurrentUser(ctx, s.Student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Siti Murid", user.Name)

	_, err = s.Auth.CurrentUser(ctx, 9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestMemoryTokenBlacklistExpires(t *testing.T) {
	b := NewMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, b.Revoke(ctx, "expired", 0))
	revoked, err := b.IsRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, "jti", time.Minute))
	revoked, err = b.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.True(t, revoked)
}
