package http

import (
	"container/list"
	"sync"
	"time"
)

// lruCache is a small TTL cache with size-based eviction, used to memoize
// summary responses per month. Any mutation that changes summary inputs
// must Purge it.
type lruCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	order   *list.List
}

type cacheEntry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

func newLRUCache[T any](maxSize int, ttl time.Duration) *lruCache[T] {
	return &lruCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

func (c *lruCache[T]) get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}
	entry := elem.Value.(*cacheEntry[T])
	if time.Now().After(entry.expiresAt) {
		c.remove(elem)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return entry.value, true
}

func (c *lruCache[T]) set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry[T]{key: key, value: value, expiresAt: time.Now().Add(c.ttl)}
	if elem, ok := c.items[key]; ok {
		elem.Value = entry
		c.order.MoveToFront(elem)
		return
	}
	c.items[key] = c.order.PushFront(entry)
	if c.order.Len() > c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

// purge drops every entry. Cheap enough at this size to be the single
// invalidation strategy; income changes touch all months anyway.
func (c *lruCache[T]) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
}

func (c *lruCache[T]) remove(elem *list.Element) {
	entry := elem.Value.(*cacheEntry[T])
	delete(c.items, entry.key)
	c.order.Remove(elem)
}

func (c *lruCache[T]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
