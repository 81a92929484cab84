package statsutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngvozdiev/netsim/statsutil"
)

func TestLRUCache_GetOrInsertConstructsOnce(t *testing.T) {
	c := statsutil.NewLRUCache[string, int](2)
	calls := 0
	newValue := func() int { calls++; return 42 }

	v1 := c.GetOrInsert("a", newValue)
	v2 := c.GetOrInsert("a", newValue)

	assert.Equal(t, 42, v1)
	assert.Equal(t, 42, v2)
	assert.Equal(t, 1, calls)
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := statsutil.NewLRUCache[string, int](2)
	var evicted []string
	c.OnEvict(func(key string, _ int) { evicted = append(evicted, key) })

	c.GetOrInsert("a", func() int { return 1 })
	c.GetOrInsert("b", func() int { return 2 })
	c.GetOrInsert("a", func() int { return 1 }) // touch a, making b the LRU
	c.GetOrInsert("c", func() int { return 3 }) // should evict b

	require.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, 2, c.Len())

	_, ok := c.Find("b")
	assert.False(t, ok)

	_, ok = c.Find("a")
	assert.True(t, ok)
}

func TestLRUCache_EvictAll(t *testing.T) {
	c := statsutil.NewLRUCache[string, int](10)
	c.GetOrInsert("a", func() int { return 1 })
	c.GetOrInsert("b", func() int { return 2 })

	c.EvictAll()
	assert.Equal(t, 0, c.Len())
}
