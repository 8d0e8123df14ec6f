package vectorstore

import "context"

// Chunk is one fixed-size text window plus its embedding.
type Chunk struct {
	ID         string
	DocumentID string
	Source     string
	Index      int
	Content    string
	Embedding  []float32
}

// Result is a chunk scored against a query embedding.
type Result struct {
	Chunk Chunk
	Score float64
}

// Store persists chunks per collection and answers similarity queries.
type Store interface {
	Upsert(ctx context.Context, collection string, chunks []Chunk) error
	Search(ctx context.Context, collection string, embedding []float32, topK int) ([]Result, error)
	DeleteDocument(ctx context.Context, collection, documentID string) error
}
