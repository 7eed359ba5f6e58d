package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/measured/cache"
	"github.com/katalvlaran/measured/table"
)

func TestFile_Lifecycle(t *testing.T) {
	dir := t.TempDir()
	f := cache.NewFile(filepath.Join(dir, "length.table"))

	ok, err := f.Exist()
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = f.Read()
	assert.ErrorIs(t, err, cache.ErrMiss)

	b := table.NewBuilder(length(t), table.WithCache(f))
	fresh, err := b.UpdateCache()
	require.NoError(t, err)

	ok, err = f.Exist()
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := table.NewBuilder(length(t), table.WithCache(f)).Table()
	require.NoError(t, err)
	requireSameTable(t, fresh, got)

	// Only the payload remains in the directory.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "length.table", entries[0].Name())

	require.NoError(t, f.Remove())
	require.NoError(t, f.Remove())
	ok, _ = f.Exist()
	assert.False(t, ok)
}

func TestFile_ComposedTableLeavesFileUntouched(t *testing.T) {
	f := cache.NewFile(filepath.Join(t.TempDir(), "t.msgpack"))
	require.NoError(t, f.Write(build(t, length(t))))
	before, err := os.ReadFile(f.Path())
	require.NoError(t, err)

	_, err = table.NewBuilder(withDynamic(t), table.WithCache(f)).UpdateCache()
	assert.ErrorIs(t, err, cache.ErrNotPersistable)

	after, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFile_CorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.msgpack")
	require.NoError(t, os.WriteFile(path, []byte("not msgpack"), 0o600))

	_, err := cache.NewFile(path).Read()
	assert.ErrorIs(t, err, cache.ErrCorrupt)
}
