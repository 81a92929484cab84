package statsutil

import "container/list"

// LRUCache maps keys of type K to values of type V, evicting the
// least-recently-touched entry once more than maxSize entries are present.
type LRUCache[K comparable, V any] struct {
	maxSize int
	order   *list.List // front = most recently used
	entries map[K]*list.Element

	onEvict func(key K, value V)
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRUCache returns an empty cache that holds at most maxSize entries.
func NewLRUCache[K comparable, V any](maxSize int) *LRUCache[K, V] {
	return &LRUCache[K, V]{
		maxSize: maxSize,
		order:   list.New(),
		entries: make(map[K]*list.Element),
	}
}

// OnEvict registers a callback invoked with the key and value of every entry
// evicted from c, including by EvictAll.
func (c *LRUCache[K, V]) OnEvict(fn func(key K, value V)) {
	c.onEvict = fn
}

// GetOrInsert returns the value associated with key, marking it
// most-recently-used. If key is absent, it is inserted with the value
// produced by newValue, possibly evicting the least-recently-used entry
// first.
func (c *LRUCache[K, V]) GetOrInsert(key K, newValue func() V) V {
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*lruEntry[K, V]).value
	}

	if len(c.entries) >= c.maxSize && c.maxSize > 0 {
		c.evictOldest()
	}

	el := c.order.PushFront(&lruEntry[K, V]{key: key, value: newValue()})
	c.entries[key] = el
	return el.Value.(*lruEntry[K, V]).value
}

// Find returns the value associated with key and true, marking it
// most-recently-used, or the zero value and false if key is absent.
func (c *LRUCache[K, V]) Find(key K) (V, bool) {
	el, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry[K, V]).value, true
}

// Len returns the number of entries currently cached.
func (c *LRUCache[K, V]) Len() int { return len(c.entries) }

// EvictAll empties the cache, invoking OnEvict's callback for every entry.
func (c *LRUCache[K, V]) EvictAll() {
	for c.order.Len() > 0 {
		c.evictOldest()
	}
}

func (c *LRUCache[K, V]) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	entry := el.Value.(*lruEntry[K, V])
	c.order.Remove(el)
	delete(c.entries, entry.key)
	if c.onEvict != nil {
		c.onEvict(entry.key, entry.value)
	}
}
