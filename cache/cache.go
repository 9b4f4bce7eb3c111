package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
)

// entry holds one parsed tree plus the metadata needed to expire it.
type entry struct {
	tree      *sitter.Tree
	hash      string
	timestamp time.Time
	hits      atomic.Int32
}

// Cache is a concurrent (language, source) -> *sitter.Tree cache. Every
// providers/<lang> front-end shares one Cache instance (Global) rather than
// keeping a private copy, so a file reused across a search-then-replace
// pass, or across overlapping workers in the same batch, is parsed once.
type Cache struct {
	entries sync.Map // hash -> *entry
	maxAge  time.Duration

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	cleanupOnce sync.Once
}

// New returns a Cache that expires entries stored longer than maxAge ago;
// a cache hit does not extend an entry's lifetime.
func New(maxAge time.Duration) *Cache {
	return &Cache{maxAge: maxAge}
}

// Global is the default cache instance, shared by every language provider
// unless a caller constructs its own with New (tests mostly want their own,
// to avoid cross-test pollution of a process-wide singleton).
var Global = New(5 * time.Minute)

// GetOrParse returns the parsed tree for (language, source), parsing with
// parser and storing the result if it isn't already cached. The language is
// folded into the cache key so that two providers never share a tree over
// identical source bytes parsed under different grammars.
func (c *Cache) GetOrParse(parser *sitter.Parser, language string, source []byte) (*sitter.Tree, error) {
	key := hashOf(language, source)

	if v, ok := c.entries.Load(key); ok {
		e := v.(*entry)
		e.hits.Add(1)
		c.hits.Add(1)
		c.startCleanup()
		return e.tree.Copy(), nil
	}

	tree, err := parser.ParseCtx(nil, nil, source)
	if err != nil {
		return nil, err
	}
	c.misses.Add(1)

	e := &entry{tree: tree, hash: key, timestamp: time.Now()}
	actual, loaded := c.entries.LoadOrStore(key, e)
	if loaded {
		// Another goroutine won the race; keep its tree, discard ours.
		existing := actual.(*entry)
		existing.hits.Add(1)
		c.startCleanup()
		return existing.tree.Copy(), nil
	}
	c.startCleanup()
	return tree.Copy(), nil
}

// Invalidate drops a single (language, source) entry, used when a caller
// knows a file's content has just changed underneath it (e.g. after Apply).
func (c *Cache) Invalidate(language string, source []byte) {
	c.entries.Delete(hashOf(language, source))
}

// Stats reports hit/miss/eviction counters for diagnostics and reporting.
func (c *Cache) Stats() (hits, misses, evictions int64) {
	return c.hits.Load(), c.misses.Load(), c.evictions.Load()
}

func (c *Cache) startCleanup() {
	if c.maxAge <= 0 {
		return
	}
	c.cleanupOnce.Do(func() {
		go c.cleanupLoop()
	})
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.maxAge)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		c.entries.Range(func(k, v any) bool {
			e := v.(*entry)
			if now.Sub(e.timestamp) > c.maxAge {
				c.entries.Delete(k)
				c.evictions.Add(1)
			}
			return true
		})
	}
}

func hashOf(language string, source []byte) string {
	h := sha256.New()
	h.Write([]byte(language))
	h.Write([]byte{0})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}
