package cache

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// File extensions of committed entries and of entries being written.
const (
	entryExt = ".json.zst"
	tmpExt   = ".tmp"
)

// Shared codecs; EncodeAll and DecodeAll are safe for concurrent use.
var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// FileCache keeps charts and artifacts on disk between CLI runs. Each entry
// is a zstd-compressed JSON envelope holding the payload and its expiry.
type FileCache struct {
	dir string
}

// NewFileCache opens (and if needed creates) a cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

type envelope struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Dir returns the cache root.
func (c *FileCache) Dir() string { return c.dir }

// Get implements [Cache]. Expired entries are removed on read.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	compressed, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry envelope
	raw, err := decoder.DecodeAll(compressed, nil)
	if err == nil {
		err = json.Unmarshal(raw, &entry)
	}
	if err != nil {
		_ = os.Remove(path) // unreadable entries are misses
		return nil, false, nil
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set implements [Cache]. Entries are written to a temp file and renamed
// into place.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := envelope{Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + tmpExt
	if err := os.WriteFile(tmp, encoder.EncodeAll(raw, nil), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Delete implements [Cache].
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Usage describes the entries currently on disk.
type Usage struct {
	Entries int   `json:"entries"`
	Bytes   int64 `json:"bytes"`
}

// Usage walks the cache directory and totals its entries. A missing
// directory is an empty cache.
func (c *FileCache) Usage() (Usage, error) {
	var u Usage
	err := c.walkEntries(func(path string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return nil
		}
		u.Entries++
		u.Bytes += info.Size()
		return nil
	})
	return u, err
}

// Clear removes every entry and leftover temp file, then prunes the empty
// shard directories. It returns the number of files removed.
func (c *FileCache) Clear() (int, error) {
	removed := 0
	err := c.walkEntries(func(path string, _ fs.DirEntry) error {
		if os.Remove(path) == nil {
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, err
	}

	shards, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return removed, nil
	}
	if err != nil {
		return removed, err
	}
	for _, d := range shards {
		if d.IsDir() {
			_ = os.Remove(filepath.Join(c.dir, d.Name()))
		}
	}
	return removed, nil
}

// walkEntries calls fn for every entry or temp file under the cache
// directory. Unreadable subtrees are skipped.
func (c *FileCache) walkEntries(fn func(path string, d fs.DirEntry) error) error {
	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != c.dir {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, entryExt) || strings.HasSuffix(path, tmpExt) {
			return fn(path, d)
		}
		return nil
	})
}

// Close implements [Cache]; there is nothing to release.
func (c *FileCache) Close() error { return nil }

// path shards entries by the first byte of the key hash:
// <dir>/ab/cdef...json.zst.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}
