package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_InsertAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryRepository()

	for i := 1; i <= 3; i++ {
		m := &Media{Filename: "f", OriginalName: "o", MimeType: "image/png"}
		require.NoError(t, repo.Insert(m))
		assert.Equal(t, int64(i), m.ID)
		assert.NotZero(t, m.CreatedAt)
	}
}

func TestMemoryRepository_ListAllNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Insert(&Media{OriginalName: name}))
	}

	items, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, items, 3)
	// same-second inserts fall back to id ordering
	assert.Equal(t, "c", items[0].OriginalName)
	assert.Equal(t, "b", items[1].OriginalName)
	assert.Equal(t, "a", items[2].OriginalName)
}

func TestMemoryRepository_GetByID(t *testing.T) {
	repo := NewMemoryRepository()

	m := &Media{OriginalName: "a"}
	require.NoError(t, repo.Insert(m))

	found, err := repo.GetByID(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", found.OriginalName)

	_, err = repo.GetByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}
