package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const tavilyAPIURL = "https://api.tavily.com/search"

// TavilyResult is one search hit.
type TavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// TavilyResponse is the subset of the Tavily response this service uses.
type TavilyResponse struct {
	Answer  string         `json:"answer"`
	Results []TavilyResult `json:"results"`
}

// TavilyQuery configures one search call.
type TavilyQuery struct {
	Query          string
	SearchDepth    string
	IncludeAnswer  bool
	IncludeDomains []string
}

// TavilySearcher performs web searches.
type TavilySearcher interface {
	Search(ctx context.Context, q TavilyQuery) (TavilyResponse, error)
}

// TavilyClient is an HTTP client for the Tavily search API.
type TavilyClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewTavilyClient constructs a TavilyClient.
func NewTavilyClient(apiKey string) (*TavilyClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("TAVILY_API_KEY is required")
	}
	return &TavilyClient{
		apiKey:     apiKey,
		baseURL:    tavilyAPIURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type tavilyRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth,omitempty"`
	IncludeAnswer  bool     `json:"include_answer,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty"`
}

// Search runs one query against Tavily.
func (c *TavilyClient) Search(ctx context.Context, q TavilyQuery) (TavilyResponse, error) {
	payload, err := json.Marshal(tavilyRequest{
		APIKey:         c.apiKey,
		Query:          q.Query,
		SearchDepth:    q.SearchDepth,
		IncludeAnswer:  q.IncludeAnswer,
		IncludeDomains: q.IncludeDomains,
	})
	if err != nil {
		return TavilyResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return TavilyResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TavilyResponse{}, fmt.Errorf("tavily search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return TavilyResponse{}, fmt.Errorf("tavily search: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed TavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return TavilyResponse{}, fmt.Errorf("tavily search: decode: %w", err)
	}
	return parsed, nil
}

var _ TavilySearcher = (*TavilyClient)(nil)
