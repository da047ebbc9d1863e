package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCacheContract exercises the behavior every backend shares.
func runCacheContract(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	_, hit, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit, "fresh cache should miss")

	require.NoError(t, c.Set(ctx, "k", []byte("v1"), time.Hour))
	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("v1"), data)

	require.NoError(t, c.Set(ctx, "k", []byte("v2"), 0))
	data, _, _ = c.Get(ctx, "k")
	assert.Equal(t, []byte("v2"), data, "Set should overwrite")

	require.NoError(t, c.Delete(ctx, "k"))
	_, hit, _ = c.Get(ctx, "k")
	assert.False(t, hit, "deleted key should miss")

	assert.NoError(t, c.Delete(ctx, "never-set"), "deleting a missing key is not an error")
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	defer c.Close()
	runCacheContract(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Nanosecond))
	time.Sleep(2 * time.Millisecond)
	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit, "expired entry should miss")

	_, statErr := os.Stat(c.path("k"))
	assert.True(t, os.IsNotExist(statErr), "expired entry should be removed")
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	path := c.path("k")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte{0xc1}, 0o644))

	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit, "corrupt entry should be a miss")
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	require.NoError(t, err)

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, k, []byte(k), 0))
	}
	require.NoError(t, c.Clear())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, dir, c.Dir())
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisCache(t *testing.T) {
	_, client := newMiniredis(t)
	c := NewRedisCacheFromClient(client, "seqdiag:")
	defer c.Close()
	runCacheContract(t, c)
}

func TestRedisCachePrefixAndTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	c := NewRedisCacheFromClient(client, "seqdiag:")
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.True(t, mr.Exists("seqdiag:k"), "key should carry the prefix")

	mr.FastForward(2 * time.Minute)
	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit, "expired key should miss")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		c, err := Open(ctx, Config{Backend: BackendNone})
		require.NoError(t, err)
		assert.IsType(t, NullCache{}, c)
	})

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()
		c, err := Open(ctx, Config{Backend: BackendFile, Dir: dir})
		require.NoError(t, err)
		fc, ok := c.(*FileCache)
		require.True(t, ok)
		assert.Equal(t, dir, fc.Dir())
	})

	t.Run("redis", func(t *testing.T) {
		mr, _ := newMiniredis(t)
		c, err := Open(ctx, Config{Backend: BackendRedis, RedisURL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		defer c.Close()
		runCacheContract(t, c)
	})

	t.Run("redis without url", func(t *testing.T) {
		_, err := Open(ctx, Config{Backend: BackendRedis})
		assert.Error(t, err)
	})

	t.Run("mongo without uri", func(t *testing.T) {
		_, err := Open(ctx, Config{Backend: BackendMongo})
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Open(ctx, Config{Backend: "memcached"})
		assert.ErrorContains(t, err, "unknown cache backend")
	})
}

func TestFileEntryExpired(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name string
		e    fileEntry
		want bool
	}{
		{"no expiry", fileEntry{}, false},
		{"future", fileEntry{ExpiresAt: now.Add(time.Minute)}, false},
		{"past", fileEntry{ExpiresAt: now.Add(-time.Minute)}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.e.expired(now), tt.name)
	}
}

func TestFileCacheShardLayout(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	require.NoError(t, err)
	require.NoError(t, c.Set(context.Background(), "layout:abc", []byte("x"), 0))

	h := Hash([]byte("layout:abc"))
	_, err = os.Stat(filepath.Join(dir, h[:2], h[2:]+".mp"))
	assert.NoError(t, err)

	leftovers, err := filepath.Glob(filepath.Join(dir, h[:2], "tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temporary files should be renamed or removed")
}
