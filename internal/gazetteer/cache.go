package gazetteer

import (
	"strings"
	"sync"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
)

// CachedClassifier wraps a Classifier with an in-memory LRU cache. Misses are
// cached too; the wrapped gazetteer is immutable so a miss stays a miss.
type CachedClassifier struct {
	inner   Classifier
	cache   *lruCache
	onCache func(hit bool)
}

// NewCachedClassifier creates a cache decorator around a classifier. onCache,
// if non-nil, is called after every lookup with whether it hit the cache.
func NewCachedClassifier(inner Classifier, maxEntries int, onCache func(hit bool)) *CachedClassifier {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &CachedClassifier{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		onCache: onCache,
	}
}

func (c *CachedClassifier) Classify(name string) (domain.Region, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if res, ok := c.cache.get(key); ok {
		c.observe(true)
		return res.region, res.ok
	}
	c.observe(false)
	region, ok := c.inner.Classify(name)
	c.cache.put(key, result{region: region, ok: ok})
	return region, ok
}

func (c *CachedClassifier) observe(hit bool) {
	if c.onCache != nil {
		c.onCache(hit)
	}
}

type result struct {
	region domain.Region
	ok     bool
}

// lruCache is a simple thread-safe LRU cache of classification results.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value result
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return result{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.unlink(c.tail)
}
