package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflow/backend/internal/domain/entity"
)

func TestTokenRepositoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	expiresAt := time.Now().UTC().Add(time.Hour)

	require.NoError(t, repo.SaveRefreshToken(ctx, "token-a", user.ID, expiresAt))

	valid, err := repo.IsRefreshTokenValid(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = repo.IsRefreshTokenValid(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, valid)

	require.NoError(t, repo.InvalidateRefreshToken(ctx, "token-a"))

	valid, err = repo.IsRefreshTokenValid(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestTokenRepositoryExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	require.NoError(t, repo.SaveRefreshToken(ctx, "stale", user.ID, time.Now().UTC().Add(-time.Minute)))

	valid, err := repo.IsRefreshTokenValid(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestTokenRepositoryInvalidateAllForUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "alice@example.com", entity.RoleRegular)
	bob := seedUser(t, db, "Bob", "bob@example.com", entity.RoleRegular)
	expiresAt := time.Now().UTC().Add(time.Hour)

	require.NoError(t, repo.SaveRefreshToken(ctx, "alice-1", alice.ID, expiresAt))
	require.NoError(t, repo.SaveRefreshToken(ctx, "alice-2", alice.ID, expiresAt))
	require.NoError(t, repo.SaveRefreshToken(ctx, "bob-1", bob.ID, expiresAt))

	require.NoError(t, repo.InvalidateAllUserRefreshTokens(ctx, alice.ID))

	for _, token := range []string{"alice-1", "alice-2"} {
		valid, err := repo.IsRefreshTokenValid(ctx, token)
		require.NoError(t, err)
		assert.False(t, valid, "token %s should be invalidated", token)
	}

	valid, err := repo.IsRefreshTokenValid(ctx, "bob-1")
	require.NoError(t, err)
	assert.True(t, valid)
}
