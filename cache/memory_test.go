package cache_test

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/measured/cache"
	"github.com/katalvlaran/measured/table"
)

func TestNewMemory_RejectsNonPositiveSize(t *testing.T) {
	_, err := cache.NewMemory(0)
	assert.Error(t, err)
}

func TestMemory_HoldsDynamicTables(t *testing.T) {
	m, err := cache.NewMemory(4)
	require.NoError(t, err)

	units := withDynamic(t)
	c := m.Bind(cache.Key(units))

	ok, err := c.Exist()
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = c.Read()
	assert.ErrorIs(t, err, cache.ErrMiss)

	b := table.NewBuilder(units, table.WithCache(c))
	fresh, err := b.UpdateCache()
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	got, err := b.Table()
	require.NoError(t, err)
	requireSameTable(t, fresh, got)

	x, err := got.Convert(big.NewRat(1, 1), "m", "tri")
	require.NoError(t, err)
	assert.Equal(t, "1000/3", x.RatString())
}

func TestMemory_KeysAreIsolatedAndEvictable(t *testing.T) {
	m, err := cache.NewMemory(1)
	require.NoError(t, err)

	a, b := m.Bind("a"), m.Bind("b")
	require.NoError(t, a.Write(table.Table{"x": {"x": table.Identity()}}))
	ok, _ := b.Exist()
	assert.False(t, ok)

	// Size 1: writing b pushes a out.
	require.NoError(t, b.Write(table.Table{"y": {"y": table.Identity()}}))
	ok, _ = a.Exist()
	assert.False(t, ok)
	ok, _ = b.Exist()
	assert.True(t, ok)

	m.Evict("b")
	assert.Zero(t, m.Len())
}

func TestMemory_ConcurrentBuilders(t *testing.T) {
	m, err := cache.NewMemory(8)
	require.NoError(t, err)
	units := length(t)
	key := cache.Key(units)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := table.NewBuilder(units, table.WithCache(m.Bind(key)))
			if ok, _ := b.Cached(); !ok {
				_, _ = b.UpdateCache()
			}
			tbl, err := b.Table()
			assert.NoError(t, err)
			assert.Equal(t, 4, tbl.Len())
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, m.Len())
}
