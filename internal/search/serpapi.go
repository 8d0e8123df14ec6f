package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const serpAPIURL = "https://serpapi.com/search.json"

// OrganicResult is one organic hit from a Google results page.
type OrganicResult struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
}

// SerpResponse holds the subset of SerpAPI fields this service uses.
type SerpResponse struct {
	OrganicResults []OrganicResult `json:"organic_results"`
}

// SerpQuery configures one search call.
type SerpQuery struct {
	Query     string
	Num       int
	Timeframe string
}

// SerpSearcher performs Google searches through SerpAPI.
type SerpSearcher interface {
	Search(ctx context.Context, q SerpQuery) (SerpResponse, error)
}

// SerpClient is an HTTP client for the SerpAPI Google endpoint.
type SerpClient struct {
	apiKey     string
	baseURL    string
	location   string
	httpClient *http.Client
}

// NewSerpClient constructs a SerpClient.
func NewSerpClient(apiKey string) (*SerpClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("SERPAPI_API_KEY is required")
	}
	return &SerpClient{
		apiKey:     apiKey,
		baseURL:    serpAPIURL,
		location:   "United States",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Search runs one Google query.
func (c *SerpClient) Search(ctx context.Context, q SerpQuery) (SerpResponse, error) {
	params := url.Values{}
	params.Set("q", q.Query)
	params.Set("api_key", c.apiKey)
	params.Set("location", c.location)
	if q.Num > 0 {
		params.Set("num", strconv.Itoa(q.Num))
	}
	if strings.TrimSpace(q.Timeframe) != "" {
		params.Set("time", q.Timeframe)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return SerpResponse{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SerpResponse{}, fmt.Errorf("serpapi search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return SerpResponse{}, fmt.Errorf("serpapi search: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed SerpResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return SerpResponse{}, fmt.Errorf("serpapi search: decode: %w", err)
	}
	return parsed, nil
}

var _ SerpSearcher = (*SerpClient)(nil)
