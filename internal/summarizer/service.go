package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"agenthub-backend/internal/embedding"
	"agenthub-backend/internal/llm"
	"agenthub-backend/internal/shared/telemetry"
	"agenthub-backend/internal/vectorstore"
)

const (
	defaultModel = "llama-3.3-70b-versatile"
	collection   = "processed_docs"

	chunkPrompt   = "Summarize this chunk concisely:\n%s"
	combinePrompt = "Combine these summaries into one coherent summary:\n%s"
)

// ErrDocumentNotFound marks a summarize call for a file that was never
// ingested or whose cache entry expired.
var ErrDocumentNotFound = errors.New("document not found or not processed")

// VideoSummarizer summarizes video uploads.
type VideoSummarizer interface {
	SummarizeVideo(ctx context.Context, fileName string, data []byte, mimeType string) (string, error)
}

// Service ingests documents and produces map-reduce summaries.
type Service struct {
	LLM      llm.Client
	Embedder embedding.Client
	Store    vectorstore.Store
	Cache    *ChunkCache
	Video    VideoSummarizer
	Model    string
}

// NewService constructs a summarizer Service.
func NewService(llmClient llm.Client, embedder embedding.Client, store vectorstore.Store, cache *ChunkCache, video VideoSummarizer, model string) *Service {
	if model == "" {
		model = defaultModel
	}
	return &Service{LLM: llmClient, Embedder: embedder, Store: store, Cache: cache, Video: video, Model: model}
}

// Ingest loads a document, indexes its chunks and returns a summary.
func (s *Service) Ingest(ctx context.Context, fileName string, data []byte, mimeType string) (string, error) {
	text, err := LoadDocument(data, mimeType)
	if err != nil {
		return "", err
	}

	chunks := SplitText(text)
	if len(chunks) == 0 {
		return "", fmt.Errorf("document %s has no content", fileName)
	}

	if err := s.index(ctx, fileName, chunks); err != nil {
		return "", err
	}
	s.Cache.Put(fileName, chunks)

	telemetry.Info("summarizer.ingested", map[string]any{"file": fileName, "chunks": len(chunks)})
	return s.mapReduce(ctx, chunks)
}

// Summarize re-runs the map-reduce pass over a previously ingested document.
func (s *Service) Summarize(ctx context.Context, fileID string) (string, error) {
	chunks, ok := s.Cache.Get(fileID)
	if !ok {
		return "", ErrDocumentNotFound
	}
	return s.mapReduce(ctx, chunks)
}

func (s *Service) index(ctx context.Context, fileName string, chunks []string) error {
	vectors, err := s.Embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return fmt.Errorf("embed %s: %w", fileName, err)
	}

	stored := make([]vectorstore.Chunk, len(chunks))
	for i, content := range chunks {
		stored[i] = vectorstore.Chunk{
			ID:         uuid.NewString(),
			DocumentID: fileName,
			Source:     fileName,
			Index:      i,
			Content:    content,
			Embedding:  vectors[i],
		}
	}
	if err := s.Store.Upsert(ctx, collection, stored); err != nil {
		return fmt.Errorf("index %s: %w", fileName, err)
	}
	return nil
}

// mapReduce summarizes each chunk then combines the partial summaries.
// The combine step runs even for a single chunk.
func (s *Service) mapReduce(ctx context.Context, chunks []string) (string, error) {
	summaries := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		summary, err := s.complete(ctx, fmt.Sprintf(chunkPrompt, chunk))
		if err != nil {
			return "", fmt.Errorf("summarize chunk: %w", err)
		}
		summaries = append(summaries, summary)
	}

	combined, err := s.complete(ctx, fmt.Sprintf(combinePrompt, strings.Join(summaries, "\n")))
	if err != nil {
		return "", fmt.Errorf("combine summaries: %w", err)
	}
	return combined, nil
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	return s.LLM.Complete(ctx, llm.Request{
		Model:       s.Model,
		Prompt:      prompt,
		Temperature: 0.7,
	})
}

// ProcessUpload satisfies the registry file-processing contract. Video
// uploads go through the video summarizer, everything else through the
// text ingest path.
func (s *Service) ProcessUpload(ctx context.Context, fileName string, data []byte, ext string) (map[string]any, error) {
	mimeType, ok := MIMETypes[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	var summary string
	var err error
	if strings.HasPrefix(mimeType, "video/") {
		if s.Video == nil {
			return nil, errors.New("video processing is not configured")
		}
		summary, err = s.Video.SummarizeVideo(ctx, fileName, data, mimeType)
	} else {
		summary, err = s.Ingest(ctx, fileName, data, mimeType)
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{"summary": summary}, nil
}

// MIMETypes maps the supported upload extensions to their MIME types.
var MIMETypes = map[string]string{
	"txt": "text/plain",
	"pdf": "application/pdf",
	"csv": "text/csv",
	"mp4": "video/mp4",
	"mov": "video/quicktime",
}
