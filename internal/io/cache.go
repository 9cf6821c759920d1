package ioutils

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/topsters/internal/logging"
)

// DefaultCacheTTL is how long cached downloads are kept.
const DefaultCacheTTL = 12 * time.Hour

// DiskCache is a best-effort on-disk cache keyed by URL.
//
// Every operation swallows I/O errors: a failed read is a miss and a
// failed write is skipped. A zero-value Dir disables the cache.
type DiskCache struct {
	Dir string
	TTL time.Duration
}

// NewDiskCache creates a cache rooted at dir. A non-positive ttl means
// DefaultCacheTTL.
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &DiskCache{Dir: dir, TTL: ttl}
}

func (c *DiskCache) path(url string) string {
	sum := sha256.Sum256([]byte(url))
	key := hex.EncodeToString(sum[:])
	return filepath.Join(c.Dir, key[:2], key)
}

func (c *DiskCache) enabled() bool {
	return c != nil && c.Dir != ""
}

// Get returns the cached bytes for url if present and not expired.
func (c *DiskCache) Get(url string) ([]byte, bool) {
	if !c.enabled() {
		return nil, false
	}
	p := c.path(url)
	info, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.TTL {
		return nil, false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores data for url.
func (c *DiskCache) Put(url string, data []byte) {
	if !c.enabled() {
		return
	}
	p := c.path(url)
	if err := EnsureDir(filepath.Dir(p)); err != nil {
		logging.Debug().Err(err).Str("dir", c.Dir).Msg("cache directory unavailable")
		return
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		logging.Debug().Err(err).Str("path", p).Msg("cache write failed")
		return
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		logging.Debug().Err(err).Str("path", p).Msg("cache write failed")
	}
}

// Sweep removes every file under Dir whose modification time is older
// than TTL relative to now, and returns how many were removed.
//
// Delete failures are logged and ignored.
func (c *DiskCache) Sweep(now time.Time) int {
	if !c.enabled() {
		return 0
	}
	removed := 0
	err := filepath.WalkDir(c.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable subtree, keep walking the rest
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if now.Sub(info.ModTime()) <= c.TTL {
			return nil
		}
		if err := os.Remove(path); err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("cache clean failed")
			return nil
		}
		removed++
		logging.Info().Str("path", path).Msg("cache cleaned")
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		logging.Warn().Err(err).Str("dir", c.Dir).Msg("cache sweep aborted")
	}
	return removed
}
