package cache

import (
	"context"
	"crypto/md5" //nolint:gosec // file naming only
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// DefaultTTL is how long a cached result stays fresh.
const DefaultTTL = 24 * time.Hour

const entryExt = ".json"

type entry struct {
	Key      string              `json:"key"`
	StoredAt time.Time           `json:"stored_at"`
	Result   *domain.MatchResult `json:"result"`
}

// FileCache keeps one JSON file per key under a directory. Writes go to a
// temporary file that is renamed into place, so readers never see a partial
// entry.
type FileCache struct {
	dir     string
	ttl     time.Duration
	nowFunc func() time.Time

	// Writers to the same key serialize on one stripe; the set is fixed so
	// a long-running server does not grow it per key.
	locks [lockStripes]sync.Mutex
}

const lockStripes = 64

// FileOption configures the FileCache.
type FileOption func(*FileCache)

// WithTTL overrides DefaultTTL. A TTL of zero or less never expires entries.
func WithTTL(ttl time.Duration) FileOption {
	return func(c *FileCache) {
		c.ttl = ttl
	}
}

// WithNowFunc overrides the clock for testing.
func WithNowFunc(f func() time.Time) FileOption {
	return func(c *FileCache) {
		c.nowFunc = f
	}
}

// NewFileCache creates a cache rooted at dir, creating it if needed.
func NewFileCache(dir string, opts ...FileOption) (*FileCache, error) {
	c := &FileCache{
		dir:     dir,
		ttl:     DefaultTTL,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return c, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string {
	return c.dir
}

// Get implements Cache. Expired entries are misses.
func (c *FileCache) Get(_ context.Context, key string) (*domain.MatchResult, bool, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry: %w", err)
	}
	if e.Result == nil || c.expired(e.StoredAt) {
		return nil, false, nil
	}

	e.Result.FromCache = true
	return e.Result, true, nil
}

// Put implements Cache.
func (c *FileCache) Put(_ context.Context, key string, r *domain.MatchResult) error {
	lock := c.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	data, err := json.Marshal(entry{Key: key, StoredAt: c.nowFunc().UTC(), Result: r})
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing cache entry: %w", err)
	}
	if err := os.Rename(tmpName, c.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("committing cache entry: %w", err)
	}
	return nil
}

// Stats implements Admin.
func (c *FileCache) Stats(ctx context.Context) (domain.CacheStats, error) {
	var s domain.CacheStats

	files, err := c.entries()
	if err != nil {
		return s, err
	}

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return s, err
		}

		info, err := os.Stat(name)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(name) //nolint:gosec // path built from cache dir
		if err != nil {
			continue
		}
		var e entry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}

		s.Entries++
		s.SizeBytes += info.Size()
		if c.expired(e.StoredAt) {
			s.Expired++
		}
		if s.Oldest.IsZero() || e.StoredAt.Before(s.Oldest) {
			s.Oldest = e.StoredAt
		}
		if e.StoredAt.After(s.Newest) {
			s.Newest = e.StoredAt
		}
	}
	return s, nil
}

// Clear implements Admin. It returns the number of entries removed.
func (c *FileCache) Clear(ctx context.Context) (int, error) {
	files, err := c.entries()
	if err != nil {
		return 0, err
	}

	var removed int
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("removing cache entry: %w", err)
		}
		removed++
	}
	return removed, nil
}

func (c *FileCache) entries() ([]string, error) {
	des, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("listing cache directory: %w", err)
	}
	var out []string
	for _, de := range des {
		if de.IsDir() || !strings.HasSuffix(de.Name(), entryExt) {
			continue
		}
		out = append(out, filepath.Join(c.dir, de.Name()))
	}
	return out, nil
}

func (c *FileCache) expired(storedAt time.Time) bool {
	return c.ttl > 0 && c.nowFunc().Sub(storedAt) > c.ttl
}

func (c *FileCache) path(key string) string {
	sum := md5.Sum([]byte(key)) //nolint:gosec // file naming only
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+entryExt)
}

func (c *FileCache) lockFor(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &c.locks[h.Sum32()%lockStripes]
}
