package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/finflow/backend/internal/domain/error"
)

// fakeTokenRepository keeps refresh tokens in memory.
type fakeTokenRepository struct {
	saved       map[string]uint
	invalidated map[string]bool
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{
		saved:       map[string]uint{},
		invalidated: map[string]bool{},
	}
}

func (f *fakeTokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uint, expiresAt time.Time) error {
	f.saved[token] = userID
	return nil
}

func (f *fakeTokenRepository) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	_, ok := f.saved[token]
	return ok && !f.invalidated[token], nil
}

func (f *fakeTokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	f.invalidated[token] = true
	return nil
}

func (f *fakeTokenRepository) InvalidateAllUserRefreshTokens(ctx context.Context, userID uint) error {
	for token, owner := range f.saved {
		if owner == userID {
			f.invalidated[token] = true
		}
	}
	return nil
}

func TestTokenServiceGenerateAndValidate(t *testing.T) {
	repo := newFakeTokenRepository()
	service := NewTokenService("test-secret", 0, 0, repo)
	ctx := context.Background()

	pair, err := service.GenerateTokenPair(ctx, 42, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	// The refresh token was persisted for invalidation tracking.
	assert.Equal(t, uint(42), repo.saved[pair.RefreshToken])

	claims, err := service.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.True(t, claims.ExpiresAt.After(time.Now()))

	refreshClaims, err := service.ValidateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refreshClaims.UserID)
}

func TestTokenServiceRejectsWrongTokenType(t *testing.T) {
	service := NewTokenService("test-secret", 0, 0, newFakeTokenRepository())
	ctx := context.Background()

	pair, err := service.GenerateTokenPair(ctx, 7, "bob@example.com")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)

	_, err = service.ValidateRefreshToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
}

func TestTokenServiceRejectsTamperedToken(t *testing.T) {
	service := NewTokenService("test-secret", 0, 0, newFakeTokenRepository())
	other := NewTokenService("other-secret", 0, 0, newFakeTokenRepository())
	ctx := context.Background()

	pair, err := other.GenerateTokenPair(ctx, 7, "bob@example.com")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)

	_, err = service.ValidateAccessToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
}

func TestTokenServiceRejectsExpiredToken(t *testing.T) {
	service := NewTokenService("test-secret", time.Nanosecond, 0, newFakeTokenRepository())
	ctx := context.Background()

	pair, err := service.GenerateTokenPair(ctx, 7, "bob@example.com")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = service.ValidateAccessToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domainerror.ErrExpiredToken)
}

func TestTokenServiceInvalidation(t *testing.T) {
	repo := newFakeTokenRepository()
	service := NewTokenService("test-secret", 0, 0, repo)
	ctx := context.Background()

	first, err := service.GenerateTokenPair(ctx, 42, "alice@example.com")
	require.NoError(t, err)
	second, err := service.GenerateTokenPair(ctx, 42, "alice@example.com")
	require.NoError(t, err)

	valid, err := service.IsRefreshTokenValid(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.True(t, valid)

	require.NoError(t, service.InvalidateRefreshToken(ctx, first.RefreshToken))
	valid, err = service.IsRefreshTokenValid(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.False(t, valid)

	require.NoError(t, service.InvalidateAllUserTokens(ctx, 42))
	valid, err = service.IsRefreshTokenValid(ctx, second.RefreshToken)
	require.NoError(t, err)
	assert.False(t, valid)
}
