package blob

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the contract every adapter must honour.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Read(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Write(ctx, "snap", `{"gw-1":1}`))
	got, err := s.Read(ctx, "snap")
	require.NoError(t, err)
	require.Equal(t, `{"gw-1":1}`, got)

	// Full replace, not merge.
	require.NoError(t, s.Write(ctx, "snap", `{"gw-2":0}`))
	got, err = s.Read(ctx, "snap")
	require.NoError(t, err)
	require.Equal(t, `{"gw-2":0}`, got)

	// Append on a missing blob starts it; on a present one it keeps lines.
	require.NoError(t, s.Append(ctx, "log", "line1\n"))
	require.NoError(t, s.Append(ctx, "log", "line2\n"))
	got, err = s.Read(ctx, "log")
	require.NoError(t, err)
	require.Equal(t, "line1\nline2\n", got)

	// Appending after a write that lacks a trailing newline still separates.
	require.NoError(t, s.Write(ctx, "log2", "first"))
	require.NoError(t, s.Append(ctx, "log2", "second\n"))
	got, err = s.Read(ctx, "log2")
	require.NoError(t, err)
	require.Equal(t, "first\nsecond\n", got)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFSStore(t *testing.T) {
	s, err := NewFS(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	exerciseStore(t, NewRedis(client))
}
