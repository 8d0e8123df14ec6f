package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agenthub-backend/internal/llm"
	"agenthub-backend/internal/vectorstore"
)

type fakeLLM struct {
	prompts []string
	reply   func(prompt string) string
	err     error
}

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	f.prompts = append(f.prompts, req.Prompt)
	if f.err != nil {
		return "", f.err
	}
	if f.reply != nil {
		return f.reply(req.Prompt), nil
	}
	return "summary", nil
}

func (f *fakeLLM) combineCalls() int {
	n := 0
	for _, p := range f.prompts {
		if strings.HasPrefix(p, "Combine these summaries") {
			n++
		}
	}
	return n
}

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

type countingStore struct {
	vectorstore.Store
	upserts     int
	collections []string
	chunks      int
}

func newCountingStore() *countingStore {
	return &countingStore{Store: vectorstore.NewMemoryStore()}
}

func (s *countingStore) Upsert(ctx context.Context, collection string, chunks []vectorstore.Chunk) error {
	s.upserts++
	s.collections = append(s.collections, collection)
	s.chunks += len(chunks)
	return s.Store.Upsert(ctx, collection, chunks)
}

func newTestService(model *fakeLLM) (*Service, *countingStore) {
	store := newCountingStore()
	return NewService(model, fakeEmbedder{}, store, NewChunkCache(), nil, ""), store
}

func TestIngestSingleChunkRunsCombineOnce(t *testing.T) {
	model := &fakeLLM{reply: func(string) string { return "short summary" }}
	svc, store := newTestService(model)

	summary, err := svc.Ingest(context.Background(), "notes.txt", []byte("a short document"), "text/plain")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if summary == "" {
		t.Fatal("expected non-empty summary")
	}
	if got := model.combineCalls(); got != 1 {
		t.Errorf("combine calls = %d, want 1", got)
	}
	if len(model.prompts) != 2 {
		t.Errorf("expected one chunk prompt and one combine prompt, got %d", len(model.prompts))
	}
	if store.upserts != 1 || store.collections[0] != "processed_docs" || store.chunks != 1 {
		t.Errorf("store = %+v", store)
	}
}

func TestIngestMultiChunkSummarizesEachChunk(t *testing.T) {
	model := &fakeLLM{}
	svc, store := newTestService(model)

	text := strings.Repeat("sentence about the subject. ", 100)
	if _, err := svc.Ingest(context.Background(), "long.txt", []byte(text), "text/plain"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	wantChunks := len(SplitText(text))
	if wantChunks < 2 {
		t.Fatalf("fixture did not split: %d chunks", wantChunks)
	}
	if len(model.prompts) != wantChunks+1 {
		t.Errorf("prompts = %d, want %d chunk prompts + 1 combine", len(model.prompts), wantChunks)
	}
	if store.chunks != wantChunks {
		t.Errorf("indexed chunks = %d, want %d", store.chunks, wantChunks)
	}
}

func TestSummarizeUsesCachedChunks(t *testing.T) {
	model := &fakeLLM{}
	svc, _ := newTestService(model)

	if _, err := svc.Ingest(context.Background(), "notes.txt", []byte("cached content"), "text/plain"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	model.prompts = nil

	summary, err := svc.Summarize(context.Background(), "notes.txt")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary == "" {
		t.Fatal("expected non-empty summary")
	}
	if len(model.prompts) != 2 {
		t.Errorf("prompts = %d", len(model.prompts))
	}
}

func TestSummarizeUnknownDocument(t *testing.T) {
	svc, _ := newTestService(&fakeLLM{})

	if _, err := svc.Summarize(context.Background(), "never-seen.txt"); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestIngestChunkFailureAborts(t *testing.T) {
	model := &fakeLLM{err: errors.New("provider down")}
	svc, _ := newTestService(model)

	if _, err := svc.Ingest(context.Background(), "notes.txt", []byte("content"), "text/plain"); err == nil {
		t.Fatal("expected error when chunk summarization fails")
	}
}

func TestProcessUploadUnsupportedExtension(t *testing.T) {
	model := &fakeLLM{}
	svc, store := newTestService(model)

	if _, err := svc.ProcessUpload(context.Background(), "tool.exe", []byte{0x4d, 0x5a}, "exe"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if len(model.prompts) != 0 || store.upserts != 0 {
		t.Error("unsupported upload must be rejected before any external call")
	}
}

func TestProcessUploadText(t *testing.T) {
	svc, _ := newTestService(&fakeLLM{})

	out, err := svc.ProcessUpload(context.Background(), "notes.txt", []byte("plain text content"), "txt")
	if err != nil {
		t.Fatalf("ProcessUpload: %v", err)
	}
	if out["summary"] == "" {
		t.Errorf("out = %v", out)
	}
}

func TestProcessUploadVideoDelegates(t *testing.T) {
	svc, _ := newTestService(&fakeLLM{})
	svc.Video = videoStub{summary: "a video about widgets"}

	out, err := svc.ProcessUpload(context.Background(), "clip.mp4", []byte("not really mp4"), "mp4")
	if err != nil {
		t.Fatalf("ProcessUpload: %v", err)
	}
	if out["summary"] != "a video about widgets" {
		t.Errorf("out = %v", out)
	}
}

type videoStub struct{ summary string }

func (v videoStub) SummarizeVideo(_ context.Context, _ string, _ []byte, _ string) (string, error) {
	return v.summary, nil
}
