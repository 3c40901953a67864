package tokens

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client, ttl), mr
}

func TestIssueAndLookup(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, "acct-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	accountID, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", accountID)
}

func TestIssueGeneratesDistinctTokens(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	first, err := store.Issue(ctx, "acct-1")
	require.NoError(t, err)
	second, err := store.Issue(ctx, "acct-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestRevoke(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, "acct-1")
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, token))

	_, err = store.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	// Revoking again is harmless.
	assert.NoError(t, store.Revoke(ctx, token))
}

func TestLookupUnknownToken(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, err := store.Lookup(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenExpiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Issue(ctx, "acct-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
