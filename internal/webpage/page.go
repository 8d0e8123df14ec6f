package webpage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// SEOElements are the on-page elements the SEO analyzer inspects.
type SEOElements struct {
	Title           string
	MetaDescription string
	H1Tags          []string
}

// Fetcher retrieves and parses remote pages.
type Fetcher interface {
	FetchSEOElements(ctx context.Context, pageURL string) (SEOElements, error)
	FetchPrice(ctx context.Context, pageURL string) (string, error)
}

// Client fetches pages with a browser user agent and extracts elements via goquery.
type Client struct {
	httpClient *http.Client
}

// NewClient constructs a page-fetching client.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: 20 * time.Second}}
}

// FetchSEOElements loads a page and pulls the title, meta description and h1 tags.
func (c *Client) FetchSEOElements(ctx context.Context, pageURL string) (SEOElements, error) {
	doc, err := c.fetch(ctx, pageURL)
	if err != nil {
		return SEOElements{}, err
	}

	out := SEOElements{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		out.MetaDescription = strings.TrimSpace(desc)
	}
	doc.Find("h1").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			out.H1Tags = append(out.H1Tags, text)
		}
	})
	return out, nil
}

// FetchPrice loads a page and returns the text of the first span.price element.
// Returns ErrPriceNotFound when the page has no such element.
func (c *Client) FetchPrice(ctx context.Context, pageURL string) (string, error) {
	doc, err := c.fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	price := strings.TrimSpace(doc.Find("span.price").First().Text())
	if price == "" {
		return "", ErrPriceNotFound
	}
	return price, nil
}

// ErrPriceNotFound indicates the page loaded but carried no price element.
var ErrPriceNotFound = fmt.Errorf("price not found")

func (c *Client) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

var _ Fetcher = (*Client)(nil)
