package education

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"agenthub-backend/internal/llm"
	"agenthub-backend/internal/search"
)

type fakeLLM struct {
	lastReq llm.Request
	reply   string
}

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	f.lastReq = req
	return f.reply, nil
}

type fakeTavily struct {
	lastQuery search.TavilyQuery
	resp      search.TavilyResponse
}

func (f *fakeTavily) Search(_ context.Context, q search.TavilyQuery) (search.TavilyResponse, error) {
	f.lastQuery = q
	return f.resp, nil
}

func manyResults(n int) []search.TavilyResult {
	var results []search.TavilyResult
	for i := 0; i < n; i++ {
		results = append(results, search.TavilyResult{
			Title: "Result",
			URL:   "https://example.test/" + strings.Repeat("x", i+1),
		})
	}
	return results
}

func TestSearchResourcesCategorizes(t *testing.T) {
	model := &fakeLLM{reply: `Here are the categories:
{"Tutorials": [{"title": "Go by Example", "url": "https://github.com/mmcgrana/gobyexample"}]}
Hope that helps!`}
	tavily := &fakeTavily{resp: search.TavilyResponse{Results: manyResults(12)}}
	svc := NewService(model, tavily, "")

	out, err := svc.SearchResources(context.Background(), "golang")
	if err != nil {
		t.Fatalf("SearchResources: %v", err)
	}
	if _, ok := out["Tutorials"]; !ok {
		t.Errorf("out = %v", out)
	}

	if tavily.lastQuery.Query != "golang academic resources tutorials courses papers" {
		t.Errorf("query = %q", tavily.lastQuery.Query)
	}
	if tavily.lastQuery.SearchDepth != "advanced" || !tavily.lastQuery.IncludeAnswer {
		t.Errorf("query = %+v", tavily.lastQuery)
	}
	if len(tavily.lastQuery.IncludeDomains) != 16 || tavily.lastQuery.IncludeDomains[0] != "github.com" {
		t.Errorf("domains = %v", tavily.lastQuery.IncludeDomains)
	}

	// Only the first 10 results feed the prompt.
	if got := strings.Count(model.lastReq.Prompt, "https://example.test/"); got != 10 {
		t.Errorf("prompt carries %d results", got)
	}
	if model.lastReq.MaxTokens != 2000 {
		t.Errorf("max tokens = %d", model.lastReq.MaxTokens)
	}
}

func TestSearchResourcesUnparseableResponse(t *testing.T) {
	model := &fakeLLM{reply: "I could not build the JSON, sorry."}
	svc := NewService(model, &fakeTavily{}, "")

	out, err := svc.SearchResources(context.Background(), "golang")
	if err != nil {
		t.Fatalf("SearchResources: %v", err)
	}
	if !reflect.DeepEqual(out, map[string]any{}) {
		t.Errorf("expected empty object, got %v", out)
	}
}

func TestSearchResourcesMalformedJSON(t *testing.T) {
	model := &fakeLLM{reply: `{"Tutorials": [unterminated`}
	svc := NewService(model, &fakeTavily{}, "")

	out, err := svc.SearchResources(context.Background(), "golang")
	if err != nil {
		t.Fatalf("SearchResources: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty object, got %v", out)
	}
}

func TestAnswerQuestion(t *testing.T) {
	model := &fakeLLM{reply: "Channels synchronize goroutines."}
	tavily := &fakeTavily{resp: search.TavilyResponse{Results: manyResults(7)}}
	svc := NewService(model, tavily, "")

	answer, err := svc.AnswerQuestion(context.Background(), "golang", "what are channels?")
	if err != nil {
		t.Fatalf("AnswerQuestion: %v", err)
	}
	if answer != "Channels synchronize goroutines." {
		t.Errorf("answer = %q", answer)
	}
	if tavily.lastQuery.Query != "golang what are channels?" {
		t.Errorf("query = %q", tavily.lastQuery.Query)
	}
	// Only the first 5 results feed the prompt.
	if got := strings.Count(model.lastReq.Prompt, "https://example.test/"); got != 5 {
		t.Errorf("prompt carries %d results", got)
	}
	if model.lastReq.MaxTokens != 1000 {
		t.Errorf("max tokens = %d", model.lastReq.MaxTokens)
	}
}

func TestExtractJSONOutermostBraces(t *testing.T) {
	out := extractJSON(`prefix {"a": {"b": 1}} suffix`)
	want := map[string]any{"a": map[string]any{"b": float64(1)}}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("out = %v", out)
	}
}
