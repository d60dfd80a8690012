package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"tafsir/internal/utils"
)

// op and lang become path components, so only allow plain lowercase tokens.
// Anything else (separators, dots) could climb out of the cache directory.
var componentPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Cache stores translation/reflection results on disk so identical requests
// never hit the upstream API twice. Keyed by (sha256 of source text, operation,
// target language); one JSON file per entry, no eviction.
//
// An empty dir disables the cache: Get always misses, Put is a no-op.
type Cache struct {
	dir string

	mu     sync.Mutex
	flight map[string]*sync.Mutex // per-key locks so concurrent identical requests compute once
}

type entry struct {
	Result string `json:"result"`
}

func New(dir string) *Cache {
	return &Cache{
		dir:    dir,
		flight: make(map[string]*sync.Mutex),
	}
}

// Key - sha256 of the source text; the filename also carries op and lang so the
// same text translated to two languages doesn't collide.
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) path(text, op, lang string) string {
	return filepath.Join(c.dir, op, Key(text)+"_"+lang+".json")
}

// Get returns the cached result for (text, op, lang), if any.
func (c *Cache) Get(text, op, lang string) (string, bool) {
	if c.dir == "" || !componentPattern.MatchString(op) || !componentPattern.MatchString(lang) {
		return "", false
	}
	data, err := os.ReadFile(c.path(text, op, lang))
	if err != nil {
		return "", false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return "", false // corrupt entry, treat as a miss and let Put overwrite it
	}
	return e.Result, true
}

// Put stores a result. Writes go through a temp file rename so a concurrent
// reader never sees a partial entry.
func (c *Cache) Put(text, op, lang, result string) error {
	if c.dir == "" {
		return nil
	}
	if !componentPattern.MatchString(op) || !componentPattern.MatchString(lang) {
		return fmt.Errorf("invalid cache key component %q/%q", op, lang)
	}
	data, err := json.Marshal(entry{Result: result})
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(c.path(text, op, lang), data); err != nil {
		return fmt.Errorf("persist cache entry: %w", err)
	}
	return nil
}

// GetOrCompute returns the cached result, or runs compute and stores its
// output. Concurrent calls for the same key within this process wait for the
// first one instead of computing again.
func (c *Cache) GetOrCompute(text, op, lang string, compute func() (string, error)) (string, error) {
	if c.dir != "" && (!componentPattern.MatchString(op) || !componentPattern.MatchString(lang)) {
		return "", fmt.Errorf("invalid cache key component %q/%q", op, lang)
	}
	if result, ok := c.Get(text, op, lang); ok {
		return result, nil
	}

	lock := c.keyLock(op + ":" + lang + ":" + Key(text))
	lock.Lock()
	defer lock.Unlock()

	// someone may have filled it while we waited
	if result, ok := c.Get(text, op, lang); ok {
		return result, nil
	}

	result, err := compute()
	if err != nil {
		return "", err
	}
	if result == "" {
		return "", errors.New("empty result, not caching")
	}
	if err := c.Put(text, op, lang, result); err != nil {
		return "", err
	}
	return result, nil
}

func (c *Cache) keyLock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.flight[key]
	if !ok {
		lock = &sync.Mutex{}
		c.flight[key] = lock
	}
	return lock
}
