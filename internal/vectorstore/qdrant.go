package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/qdrant/go-client/qdrant"
)

// qdrantStore serves the Store interface from a Qdrant collection with cosine
// distance. The collection is created on first Put, sized to the first vector.
type qdrantStore struct {
	client         *qdrant.Client
	collectionName string

	mu      sync.Mutex
	ensured bool
}

// NewQdrantStore connects to Qdrant at urlStr (gRPC port 6334 unless the URL
// carries an explicit port).
func NewQdrantStore(urlStr, apiKey, collectionName string) (Store, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantStore{
		client:         client,
		collectionName: collectionName,
	}, nil
}

func (q *qdrantStore) ensureCollection(ctx context.Context, dim int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.ensured {
		return nil
	}

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if !exists {
		err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: q.collectionName,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(dim),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
	}

	q.ensured = true
	return nil
}

// Put implements Store. The point id is the document id, so a later write for
// the same document overwrites the earlier point.
func (q *qdrantStore) Put(ctx context.Context, id string, vector []float32, metadata Metadata) error {
	if len(vector) == 0 {
		return fmt.Errorf("empty vector for %s: %w", id, ErrDimensionMismatch)
	}

	if err := q.ensureCollection(ctx, len(vector)); err != nil {
		return err
	}

	payload := make(map[string]interface{}, len(metadata))
	for k, v := range metadata {
		payload[k] = v
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(id),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(payload),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// Get implements Store.
func (q *qdrantStore) Get(ctx context.Context, id string) ([]float32, Metadata, error) {
	points, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewID(id)},
		WithVectors:    qdrant.NewWithVectors(true),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get point: %w", err)
	}

	if len(points) == 0 {
		return nil, nil, fmt.Errorf("id %s: %w", id, ErrNotFound)
	}

	point := points[0]

	var vector []float32
	if v := point.Vectors.GetVector(); v != nil {
		vector = v.Data
	}

	return vector, payloadToMetadata(point.Payload), nil
}

// Search implements Store.
func (q *qdrantStore) Search(ctx context.Context, query []float32, limit int) ([]SearchResult, error) {
	params := &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(query...),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if limit > 0 {
		params.Limit = qdrant.PtrOf(uint64(limit))
	}

	points, err := q.client.Query(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		results = append(results, SearchResult{
			ID:       point.Id.GetUuid(),
			Score:    float64(point.Score),
			Metadata: payloadToMetadata(point.Payload),
		})
	}

	return results, nil
}

func payloadToMetadata(payload map[string]*qdrant.Value) Metadata {
	if len(payload) == 0 {
		return nil
	}
	meta := make(Metadata, len(payload))
	for key, value := range payload {
		if s, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
			meta[key] = s.StringValue
		}
	}
	return meta
}
