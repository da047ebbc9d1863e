package cache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// FileCache keeps one msgpack file per key under dir, sharded by the
// first byte of the key hash: dir/ab/cdef....mp. It is the CLI default.
type FileCache struct {
	dir string
}

// NewFileCache opens (and if needed creates) a cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// DefaultDir is $XDG_CACHE_HOME/seqdiag, or ~/.cache/seqdiag when the
// variable is unset.
func DefaultDir() (string, error) {
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, "seqdiag"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "seqdiag"), nil
}

type fileEntry struct {
	Data      []byte    `msgpack:"data"`
	ExpiresAt time.Time `msgpack:"expires_at"` // zero means never
}

func (e fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

func (c *FileCache) Dir() string { return c.dir }

// Get returns the entry for key. Unreadable and expired entries are
// deleted and reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	p := c.path(key)
	raw, err := os.ReadFile(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	var e fileEntry
	if msgpack.Unmarshal(raw, &e) != nil || e.expired(time.Now()) {
		_ = os.Remove(p)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set writes key atomically: readers see the old entry or the new one,
// never a partial file. A ttl of zero never expires.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := fileEntry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := msgpack.Marshal(&e)
	if err != nil {
		return err
	}
	return writeFileAtomic(c.path(key), raw)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear deletes every shard but keeps dir itself.
func (c *FileCache) Clear() error {
	shards, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, s := range shards {
		if err := os.RemoveAll(filepath.Join(c.dir, s.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".mp")
}

// writeFileAtomic writes data to a temporary file beside path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var _ Cache = (*FileCache)(nil)
