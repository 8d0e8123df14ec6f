package vectorstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// PGStore implements Store on Postgres with the pgvector extension.
// Cosine distance ordering happens in SQL; the schema lives in the goose
// migrations under internal/shared/storage/db.
type PGStore struct {
	DB *sql.DB
}

// Upsert inserts or replaces chunks by id.
func (s *PGStore) Upsert(ctx context.Context, collection string, chunks []Chunk) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert chunks: begin: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO document_chunks (id, collection, document_id, source, chunk_index, content, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7::vector)
		ON CONFLICT (id) DO UPDATE SET
			collection = EXCLUDED.collection,
			document_id = EXCLUDED.document_id,
			source = EXCLUDED.source,
			chunk_index = EXCLUDED.chunk_index,
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding`

	for _, chunk := range chunks {
		if _, err := tx.ExecContext(ctx, q,
			chunk.ID,
			collection,
			chunk.DocumentID,
			chunk.Source,
			chunk.Index,
			chunk.Content,
			encodeVector(chunk.Embedding),
		); err != nil {
			return fmt.Errorf("upsert chunk %s: %w", chunk.ID, err)
		}
	}
	return tx.Commit()
}

// Search returns topK chunks ordered by cosine distance to the query embedding.
func (s *PGStore) Search(ctx context.Context, collection string, embedding []float32, topK int) ([]Result, error) {
	if topK <= 0 {
		topK = 10
	}
	const q = `
		SELECT id, document_id, source, chunk_index, content, embedding::text,
		       1 - (embedding <=> $2::vector) AS score
		FROM document_chunks
		WHERE collection = $1
		ORDER BY embedding <=> $2::vector
		LIMIT $3`

	rows, err := s.DB.QueryContext(ctx, q, collection, encodeVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			chunk Chunk
			raw   string
			score float64
		)
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Source, &chunk.Index, &chunk.Content, &raw, &score); err != nil {
			return nil, fmt.Errorf("search chunks: scan: %w", err)
		}
		vec, err := decodeVector(raw)
		if err != nil {
			return nil, fmt.Errorf("search chunks: %w", err)
		}
		chunk.Embedding = vec
		results = append(results, Result{Chunk: chunk, Score: score})
	}
	return results, rows.Err()
}

// DeleteDocument removes all chunks for a document in a collection.
func (s *PGStore) DeleteDocument(ctx context.Context, collection, documentID string) error {
	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM document_chunks WHERE collection = $1 AND document_id = $2`,
		collection, documentID,
	)
	if err != nil {
		return fmt.Errorf("delete chunks for %s: %w", documentID, err)
	}
	return nil
}

// encodeVector renders a pgvector literal like [0.1,0.2,0.3].
func encodeVector(vec []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

func decodeVector(raw string) ([]float32, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "[")
	trimmed = strings.TrimSuffix(trimmed, "]")
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Split(trimmed, ",")
	vec := make([]float32, len(parts))
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("decode vector: %w", err)
		}
		vec[i] = float32(f)
	}
	return vec, nil
}

var _ Store = (*PGStore)(nil)
