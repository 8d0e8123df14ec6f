package vectorstore

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-memory vector store used when no database is configured.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Chunk // collection -> chunkID -> chunk
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Chunk)}
}

// Upsert stores chunks, replacing any with the same id.
func (s *MemoryStore) Upsert(ctx context.Context, collection string, chunks []Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]Chunk)
		s.collections[collection] = coll
	}
	for _, chunk := range chunks {
		coll[chunk.ID] = chunk
	}
	return nil
}

// Search returns the topK chunks most similar to the query embedding.
func (s *MemoryStore) Search(ctx context.Context, collection string, embedding []float32, topK int) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []Result
	for _, chunk := range s.collections[collection] {
		results = append(results, Result{
			Chunk: chunk,
			Score: cosineSimilarity(embedding, chunk.Embedding),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// DeleteDocument removes all chunks belonging to a document.
func (s *MemoryStore) DeleteDocument(ctx context.Context, collection, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, chunk := range s.collections[collection] {
		if chunk.DocumentID == documentID {
			delete(s.collections[collection], id)
		}
	}
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
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

var _ Store = (*MemoryStore)(nil)
