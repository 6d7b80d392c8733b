package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := Connect(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestStore_RevokeAndCheck(t *testing.T) {
	mr, client := setupRedis(t)
	store := NewStore(client)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists("blacklist:jti-1"))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("blacklist:jti-1").Seconds(), 5)

	mr.FastForward(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestStore_ExpiredTokenNeedsNoEntry(t *testing.T) {
	mr, client := setupRedis(t)
	store := NewStore(client)

	require.NoError(t, store.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("blacklist:old"))
}

func TestStore_Disabled(t *testing.T) {
	store := NewStore(nil)
	assert.False(t, store.Enabled())

	revoked, err := store.IsRevoked(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.ErrorIs(t, store.Revoke(context.Background(), "x", time.Now().Add(time.Hour)), ErrUnavailable)
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		in       string
		wantAddr string
		wantPass string
		wantDB   int
		wantTLS  bool
		wantErr  bool
	}{
		{in: "redis://:mypassword@redis:6379/1", wantAddr: "redis:6379", wantPass: "mypassword", wantDB: 1},
		{in: "rediss://:s3cret@redis.example.com:6380/2", wantAddr: "redis.example.com:6380", wantPass: "s3cret", wantDB: 2, wantTLS: true},
		{in: "localhost:6379", wantAddr: "localhost:6379"},
		{in: "", wantErr: true},
		{in: "http://nope", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			opts, err := ParseOptions(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAddr, opts.Addr)
			assert.Equal(t, tc.wantPass, opts.Password)
			assert.Equal(t, tc.wantDB, opts.DB)
			assert.Equal(t, tc.wantTLS, opts.TLSConfig != nil)
		})
	}
}

func TestConnect_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = Connect(context.Background(), addr)
	assert.Error(t, err)
}
