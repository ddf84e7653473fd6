// Package cache keeps recently resolved answers and recently fetched search
// results so repeated questions skip the pipeline and the providers. Only
// answered outcomes belong in the answer cache; needs-search and fallback
// outcomes are never cached.
package cache

import (
	"container/list"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/aprenda-ai/tutor/schema"
)

// AnswerCache is the resolved-answer interface the client layer consumes.
type AnswerCache interface {
	Get(key string) (schema.Outcome, bool)
	Set(key string, out schema.Outcome, ttl time.Duration)
	Purge()
}

// ResultCache holds raw provider results keyed by query, so a repeated
// question that needs a search does not hit the providers twice.
type ResultCache interface {
	Get(key string) ([]schema.CandidateResult, bool)
	Set(key string, results []schema.CandidateResult, ttl time.Duration)
	Purge()
}

// Key normalizes a query, mode and student record into a cache key. Two
// spellings of the same question that differ only in case or surrounding
// space share an entry; answers templated from the student record never
// cross students because the record is fingerprinted into the key.
func Key(query string, mode schema.Mode, sc schema.StudentContext) string {
	h := fnv.New64a()
	if b, err := json.Marshal(sc); err == nil {
		h.Write(b)
	}
	return fmt.Sprintf("%s|%x|%s", mode, h.Sum64(), strings.ToLower(strings.TrimSpace(query)))
}

// ResultKey keys raw search results, which depend on the query alone.
func ResultKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

type entry struct {
	key     string
	val     any
	expires time.Time
	element *list.Element
}

type lruCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*entry
	order    *list.List
}

func newLRU(capacity int, ttl time.Duration) *lruCache {
	if capacity <= 0 {
		capacity = 512
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &lruCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry, capacity),
		order:    list.New(),
	}
}

// NewLRU creates an LRU answer cache with capacity and default TTL.
func NewLRU(capacity int, ttl time.Duration) AnswerCache {
	return &answerCache{lru: newLRU(capacity, ttl)}
}

// NewResultLRU creates an LRU search-result cache with capacity and default
// TTL.
func NewResultLRU(capacity int, ttl time.Duration) ResultCache {
	return &resultCache{lru: newLRU(capacity, ttl)}
}

type answerCache struct{ lru *lruCache }

func (c *answerCache) Get(key string) (schema.Outcome, bool) {
	v, ok := c.lru.get(key)
	if !ok {
		return schema.Outcome{}, false
	}
	return v.(schema.Outcome), true
}

func (c *answerCache) Set(key string, out schema.Outcome, ttl time.Duration) {
	if out.Kind != schema.OutcomeAnswered {
		return
	}
	c.lru.set(key, out, ttl)
}

func (c *answerCache) Purge() { c.lru.purge() }

type resultCache struct{ lru *lruCache }

func (c *resultCache) Get(key string) ([]schema.CandidateResult, bool) {
	v, ok := c.lru.get(key)
	if !ok {
		return nil, false
	}
	return v.([]schema.CandidateResult), true
}

func (c *resultCache) Set(key string, results []schema.CandidateResult, ttl time.Duration) {
	if len(results) == 0 {
		return
	}
	c.lru.set(key, results, ttl)
}

func (c *resultCache) Purge() { c.lru.purge() }

func (c *lruCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		if ent.expires.IsZero() || time.Now().Before(ent.expires) {
			c.order.MoveToFront(ent.element)
			return ent.val, true
		}
		c.removeEntry(ent)
	}
	return nil, false
}

func (c *lruCache) set(key string, val any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		ent.val = val
		ent.expires = c.computeExpiry(ttl)
		c.order.MoveToFront(ent.element)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictOldest()
	}

	elem := c.order.PushFront(key)
	c.items[key] = &entry{
		key:     key,
		val:     val,
		expires: c.computeExpiry(ttl),
		element: elem,
	}
}

func (c *lruCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry, c.capacity)
	c.order.Init()
}

func (c *lruCache) computeExpiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = c.ttl
	}
	if ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

func (c *lruCache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	key := elem.Value.(string)
	if ent, ok := c.items[key]; ok {
		c.removeEntry(ent)
	}
}

func (c *lruCache) removeEntry(ent *entry) {
	if ent.element != nil {
		c.order.Remove(ent.element)
	}
	delete(c.items, ent.key)
}
