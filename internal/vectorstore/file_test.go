package vectorstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSelfIsOne(t *testing.T) {
	v := []float32{0.3, -1.2, 4.5, 0.01}
	assert.InDelta(t, 1.0, Cosine(v, v), 1e-9)
}

func TestCosineOppositeAndOrthogonal(t *testing.T) {
	a := []float32{1, 0}
	assert.InDelta(t, -1.0, Cosine(a, []float32{-1, 0}), 1e-9)
	assert.InDelta(t, 0.0, Cosine(a, []float32{0, 1}), 1e-9)
}

func TestCosineDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, Cosine(nil, nil))
	assert.Equal(t, 0.0, Cosine([]float32{1, 2}, []float32{1}))
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 1}))
}

func TestFileStorePutGet(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "a", []float32{1, 2, 3}, Metadata{"file_name": "a.pdf"}))

	vec, meta, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, vec)
	assert.Equal(t, "a.pdf", meta["file_name"])

	_, _, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "a", []float32{1, 0}, nil))
	require.NoError(t, store.Put(ctx, "a", []float32{0, 1}, nil))

	vec, _, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, vec)

	results, err := store.Search(ctx, []float32{0, 1}, 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestFileStoreDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "a", []float32{1, 2, 3}, nil))

	err = store.Put(ctx, "b", []float32{1, 2}, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	err = store.Put(ctx, "c", nil, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "a", []float32{0.5, -0.25}, Metadata{"candidate_name": "Jane Doe"}))
	require.NoError(t, store.Put(ctx, "b", []float32{1, 1}, nil))

	// Both files must exist on disk after a put.
	assert.FileExists(t, filepath.Join(dir, "vectors.bin"))
	assert.FileExists(t, filepath.Join(dir, "index.json"))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	vec, meta, err := reopened.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -0.25}, vec)
	assert.Equal(t, "Jane Doe", meta["candidate_name"])

	vec, _, err = reopened.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1}, vec)
}

func TestFileStoreSearchOrdering(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "far", []float32{-1, 0}, nil))
	require.NoError(t, store.Put(ctx, "near", []float32{1, 0.01}, nil))
	require.NoError(t, store.Put(ctx, "mid", []float32{1, 1}, nil))

	results, err := store.Search(ctx, []float32{1, 0}, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "near", results[0].ID)
	assert.Equal(t, "mid", results[1].ID)
	assert.Equal(t, "far", results[2].ID)

	limited, err := store.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestFileStoreSearchTiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	// Same direction, different magnitude: identical cosine scores.
	require.NoError(t, store.Put(ctx, "first", []float32{1, 1}, nil))
	require.NoError(t, store.Put(ctx, "second", []float32{2, 2}, nil))

	results, err := store.Search(ctx, []float32{1, 1}, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].ID)
	assert.Equal(t, "second", results[1].ID)
}
