package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageBasicOperations(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Count())

	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("a", 3)

	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, s.Count())

	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	assert.Equal(t, 1, s.Count())
}

func TestMemoryStorageDirtyTracking(t *testing.T) {
	s := NewMemoryStorage[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)

	dirty := s.GetDirty()
	assert.Len(t, dirty, 2)
	assert.Equal(t, 1, dirty["a"])

	// Clearing some flags leaves the rest pending.
	s.ClearDirty([]string{"a"})
	dirty = s.GetDirty()
	require.Len(t, dirty, 1)
	assert.Equal(t, 2, dirty["b"])

	// A fresh write re-dirties.
	s.ClearDirty([]string{"b"})
	assert.Empty(t, s.GetDirty())
	s.Set("a", 9)
	assert.Len(t, s.GetDirty(), 1)

	// Deleting removes the dirty flag too.
	s.Set("c", 3)
	s.Delete("c")
	_, dirtied := s.GetDirty()["c"]
	assert.False(t, dirtied)
}

func TestMemoryStorageIteration(t *testing.T) {
	s := NewMemoryStorage[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("c", 3)

	sum := 0
	s.ForEach(func(k string, v int) bool {
		sum += v
		return true
	})
	assert.Equal(t, 6, sum)

	// Early stop.
	visited := 0
	s.ForEach(func(k string, v int) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)

	assert.Len(t, s.GetAll(), 3)
	assert.Len(t, s.GetAllValues(), 3)
}
