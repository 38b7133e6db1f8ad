package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/farmmarket/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_Revoke(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	err := blacklist.Revoke(ctx, "test-jti-1", 1*time.Hour)
	require.NoError(t, err)

	revoked, err := blacklist.IsRevoked(ctx, "test-jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// A different JTI is unaffected
	revoked, err = blacklist.IsRevoked(ctx, "test-jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_ExpirationCleanup(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	err := blacklist.Revoke(ctx, "test-jti-expire", 1*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	// Entry expired along with the token it shadowed
	revoked, err := blacklist.IsRevoked(ctx, "test-jti-expire")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_RevokeAllForUser(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	// Token issued before revocation
	tokenIssuedAt := time.Now().Add(-1 * time.Hour)

	revoked, err := blacklist.IsRevokedForUser(ctx, "user-1", tokenIssuedAt)
	require.NoError(t, err)
	assert.False(t, revoked)

	err = blacklist.RevokeAllForUser(ctx, "user-1", 1*time.Hour)
	require.NoError(t, err)

	// Token issued before revocation is invalid
	revoked, err = blacklist.IsRevokedForUser(ctx, "user-1", tokenIssuedAt)
	require.NoError(t, err)
	assert.True(t, revoked)

	// Token issued after revocation stays valid
	futureToken := time.Now().Add(1 * time.Second)
	time.Sleep(2 * time.Millisecond)
	revoked, err = blacklist.IsRevokedForUser(ctx, "user-1", futureToken)
	require.NoError(t, err)
	assert.False(t, revoked)

	// Different user is unaffected
	revoked, err = blacklist.IsRevokedForUser(ctx, "user-2", tokenIssuedAt)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_Concurrency(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			jti := string(rune('a' + n))
			_ = blacklist.Revoke(ctx, jti, time.Hour)
			_, _ = blacklist.IsRevoked(ctx, jti)
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
