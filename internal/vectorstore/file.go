package vectorstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const (
	vectorsFile = "vectors.bin"
	indexFile   = "index.json"
)

// fileStore keeps every vector in memory and mirrors the whole set to disk on
// each Put: one binary file of little-endian float32 rows and one JSON index
// mapping ids to row offsets. O(n) per write, acceptable for batches of tens
// of documents. Not safe for concurrent writer processes.
type fileStore struct {
	mu   sync.RWMutex
	dir  string
	dim  int
	ids  []string
	rows map[string][]float32
	meta map[string]indexRecord
}

type indexRecord struct {
	ID        string    `json:"id"`
	Row       int       `json:"row"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type indexDocument struct {
	Dimension int           `json:"dimension"`
	Records   []indexRecord `json:"records"`
}

// NewFileStore opens (or creates) a file-backed store under dir, loading any
// previously persisted vectors.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create vector directory: %w", err)
	}

	s := &fileStore{
		dir:  dir,
		rows: make(map[string][]float32),
		meta: make(map[string]indexRecord),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *fileStore) load() error {
	indexPath := filepath.Join(s.dir, indexFile)
	vectorsPath := filepath.Join(s.dir, vectorsFile)

	indexData, err := os.ReadFile(indexPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read vector index: %w", err)
	}

	var doc indexDocument
	if err := json.Unmarshal(indexData, &doc); err != nil {
		return fmt.Errorf("failed to decode vector index: %w", err)
	}

	raw, err := os.ReadFile(vectorsPath)
	if err != nil {
		return fmt.Errorf("failed to read vectors file: %w", err)
	}

	if doc.Dimension <= 0 {
		return nil
	}

	rowBytes := doc.Dimension * 4
	if len(doc.Records)*rowBytes > len(raw) {
		return fmt.Errorf("vectors file truncated: want %d rows of %d bytes, have %d bytes",
			len(doc.Records), rowBytes, len(raw))
	}

	s.dim = doc.Dimension
	for _, rec := range doc.Records {
		offset := rec.Row * rowBytes
		vec := make([]float32, doc.Dimension)
		for i := range vec {
			bits := binary.LittleEndian.Uint32(raw[offset+i*4 : offset+i*4+4])
			vec[i] = math.Float32frombits(bits)
		}
		s.ids = append(s.ids, rec.ID)
		s.rows[rec.ID] = vec
		s.meta[rec.ID] = rec
	}

	return nil
}

func (s *fileStore) persist() error {
	rowBytes := s.dim * 4
	buf := make([]byte, len(s.ids)*rowBytes)

	records := make([]indexRecord, 0, len(s.ids))
	for row, id := range s.ids {
		vec := s.rows[id]
		offset := row * rowBytes
		for i, v := range vec {
			binary.LittleEndian.PutUint32(buf[offset+i*4:offset+i*4+4], math.Float32bits(v))
		}
		rec := s.meta[id]
		rec.Row = row
		records = append(records, rec)
	}

	if err := os.WriteFile(filepath.Join(s.dir, vectorsFile), buf, 0644); err != nil {
		return fmt.Errorf("failed to write vectors file: %w", err)
	}

	indexData, err := json.MarshalIndent(indexDocument{Dimension: s.dim, Records: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode vector index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, indexFile), indexData, 0644); err != nil {
		return fmt.Errorf("failed to write vector index: %w", err)
	}

	return nil
}

// Put implements Store.
func (s *fileStore) Put(_ context.Context, id string, vector []float32, metadata Metadata) error {
	if len(vector) == 0 {
		return fmt.Errorf("empty vector for %s: %w", id, ErrDimensionMismatch)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dim == 0 {
		s.dim = len(vector)
	}
	if len(vector) != s.dim {
		return fmt.Errorf("vector for %s has dimension %d, store has %d: %w",
			id, len(vector), s.dim, ErrDimensionMismatch)
	}

	if _, exists := s.rows[id]; !exists {
		s.ids = append(s.ids, id)
	}

	vec := make([]float32, len(vector))
	copy(vec, vector)
	s.rows[id] = vec
	s.meta[id] = indexRecord{
		ID:        id,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}

	return s.persist()
}

// Get implements Store.
func (s *fileStore) Get(_ context.Context, id string) ([]float32, Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vec, ok := s.rows[id]
	if !ok {
		return nil, nil, fmt.Errorf("id %s: %w", id, ErrNotFound)
	}

	out := make([]float32, len(vec))
	copy(out, vec)
	return out, s.meta[id].Metadata, nil
}

// Search implements Store.
func (s *fileStore) Search(_ context.Context, query []float32, limit int) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]SearchResult, 0, len(s.ids))
	for _, id := range s.ids {
		results = append(results, SearchResult{
			ID:       id,
			Score:    Cosine(query, s.rows[id]),
			Metadata: s.meta[id].Metadata,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}
