package runner

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when the payload format changes so stale entries self-invalidate.
const cacheSchemaVersion uint16 = 1

// Cache remembers which fixture contents already passed so unchanged
// fixtures can be skipped across runs. Entries are keyed by the fixture's
// content digest; editing a fixture naturally misses the cache.
// Thread-safe for concurrent workers.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema    uint16
	Passed    bool
	CheckedAt int64
}

// OpenCache initializes the cache at the standard per-user location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key [sha256.Size]byte) string {
	return filepath.Join(c.dir, "results", hex.EncodeToString(key[:])+".mp")
}

// Put records the outcome for a fixture digest. Writes go through a temp
// file and rename so concurrent readers never see a torn entry.
func (c *Cache) Put(key [sha256.Size]byte, passed bool) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	payload := cachePayload{
		Schema:    cacheSchemaVersion,
		Passed:    passed,
		CheckedAt: time.Now().Unix(),
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get reports the recorded outcome for a fixture digest, if any. Entries
// written by another schema version are treated as missing.
func (c *Cache) Get(key [sha256.Size]byte) (passed, ok bool) {
	if c == nil {
		return false, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return false, false
	}
	defer func() {
		_ = f.Close()
	}()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false, false
	}
	if payload.Schema != cacheSchemaVersion {
		return false, false
	}
	return payload.Passed, true
}

// Drop invalidates the whole cache, useful after a compiler upgrade.
func (c *Cache) Drop() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
