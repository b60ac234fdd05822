package integration

import (
	"context"
	"testing"
	"time"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/services"
	"github.com/boldenardo/astrotarot-hub-sub001/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_Integration_StoreAndValidate(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	tokenHash := services.HashToken("my-refresh-token")

	require.NoError(t, svc.StoreRefreshToken(ctx, user.ID, tokenHash, time.Now().Add(24*time.Hour)))

	userID, err := svc.ValidateRefreshToken(ctx, tokenHash)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestTokenService_Integration_ValidateExpired(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	tokenHash := services.HashToken("expired-token")
	fixtures.CreateRefreshToken(t, user.ID, tokenHash, time.Now().Add(-time.Hour))

	_, err := svc.ValidateRefreshToken(ctx, tokenHash)
	assert.ErrorIs(t, err, services.ErrRefreshTokenNotFound)
}

func TestTokenService_Integration_RevokeAll(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	hashes := []string{services.HashToken("device-1"), services.HashToken("device-2")}
	for _, h := range hashes {
		fixtures.CreateRefreshToken(t, user.ID, h, time.Now().Add(time.Hour))
	}

	require.NoError(t, svc.RevokeAllUserTokens(ctx, user.ID))

	for _, h := range hashes {
		_, err := svc.ValidateRefreshToken(ctx, h)
		assert.ErrorIs(t, err, services.ErrRefreshTokenNotFound)
	}
}

func TestTokenService_Integration_CleanupExpired(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	fixtures.CreateRefreshToken(t, user.ID, services.HashToken("old-1"), time.Now().Add(-2*time.Hour))
	fixtures.CreateRefreshToken(t, user.ID, services.HashToken("old-2"), time.Now().Add(-time.Hour))
	fixtures.CreateRefreshToken(t, user.ID, services.HashToken("fresh"), time.Now().Add(time.Hour))

	removed, err := svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = svc.ValidateRefreshToken(ctx, services.HashToken("fresh"))
	assert.NoError(t, err)
}
