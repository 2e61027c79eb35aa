// Package vectorstore persists document embeddings and answers similarity
// queries. The default backend is a flat file pair (raw float32 rows plus a
// JSON index); a Qdrant backend is available for deployments that already run
// one.
package vectorstore

import (
	"context"
	"errors"
	"math"
)

// ErrNotFound signals a missing document id.
var ErrNotFound = errors.New("vector not found")

// ErrDimensionMismatch signals a vector whose length differs from the store's
// established dimension.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Metadata travels with each stored vector.
type Metadata map[string]string

type SearchResult struct {
	ID       string
	Score    float64
	Metadata Metadata
}

// Store maps document ids to embedding vectors. Put with an existing id
// overwrites; records are never deleted within a run.
type Store interface {
	Put(ctx context.Context, id string, vector []float32, metadata Metadata) error
	Get(ctx context.Context, id string) ([]float32, Metadata, error)
	// Search returns up to limit results ordered by cosine similarity
	// descending; ties keep insertion order. limit <= 0 means no limit.
	Search(ctx context.Context, query []float32, limit int) ([]SearchResult, error)
}

// Cosine returns the cosine similarity of a and b in [-1, 1]. Zero-magnitude
// input yields 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
