package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"agenthub-backend/internal/shared/telemetry"
)

// History is one year of daily bars for a symbol.
type History struct {
	Dates []time.Time
	Close []float64
	High  []float64
	Low   []float64
}

// CompanyInfo is the descriptive profile shown alongside an analysis.
// Any field may be empty when the provider has no data for it.
type CompanyInfo struct {
	Name      string
	Sector    string
	Industry  string
	MarketCap float64
}

// Client fetches market data for a ticker symbol.
type Client interface {
	History(ctx context.Context, symbol string) (History, error)
	Info(ctx context.Context, symbol string) (CompanyInfo, error)
}

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooClient reads price history and company profiles from the Yahoo
// Finance chart and quoteSummary endpoints.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewYahooClient() *YahooClient {
	return &YahooClient{
		baseURL:    defaultYahooBaseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History returns one year of daily bars. Rows with a missing close are
// skipped so Dates and Close stay aligned. Null high/low values are
// dropped rather than zero-filled; only their extremes are consumed, so
// High and Low need not align with Close.
func (c *YahooClient) History(ctx context.Context, symbol string) (History, error) {
	q := url.Values{}
	q.Set("range", "1y")
	q.Set("interval", "1d")

	var decoded chartResponse
	if err := c.getJSON(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), q, &decoded); err != nil {
		return History{}, err
	}
	if decoded.Chart.Error != nil {
		return History{}, fmt.Errorf("chart %s: %s", symbol, decoded.Chart.Error.Description)
	}
	if len(decoded.Chart.Result) == 0 || len(decoded.Chart.Result[0].Indicators.Quote) == 0 {
		return History{}, nil
	}

	result := decoded.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	var h History
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		h.Dates = append(h.Dates, time.Unix(ts, 0).UTC())
		h.Close = append(h.Close, *quote.Close[i])
		if v := at(quote.High, i); v != nil {
			h.High = append(h.High, *v)
		}
		if v := at(quote.Low, i); v != nil {
			h.Low = append(h.Low, *v)
		}
	}
	return h, nil
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile *struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
			Price *struct {
				LongName  string `json:"longName"`
				ShortName string `json:"shortName"`
				MarketCap struct {
					Raw float64 `json:"raw"`
				} `json:"marketCap"`
			} `json:"price"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// Info returns the company profile. Failures are soft: a symbol with no
// profile yields a zero CompanyInfo rather than an error, since the
// analysis can proceed without it.
func (c *YahooClient) Info(ctx context.Context, symbol string) (CompanyInfo, error) {
	q := url.Values{}
	q.Set("modules", "assetProfile,price")

	var decoded quoteSummaryResponse
	if err := c.getJSON(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), q, &decoded); err != nil {
		telemetry.Warn("marketdata.info_unavailable", map[string]any{"symbol": symbol, "error": err.Error()})
		return CompanyInfo{}, nil
	}
	if len(decoded.QuoteSummary.Result) == 0 {
		return CompanyInfo{}, nil
	}

	var info CompanyInfo
	r := decoded.QuoteSummary.Result[0]
	if r.Price != nil {
		info.Name = r.Price.LongName
		if info.Name == "" {
			info.Name = r.Price.ShortName
		}
		info.MarketCap = r.Price.MarketCap.Raw
	}
	if r.AssetProfile != nil {
		info.Sector = r.AssetProfile.Sector
		info.Industry = r.AssetProfile.Industry
	}
	return info, nil
}

func (c *YahooClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("marketdata request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("marketdata request: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("marketdata decode: %w", err)
	}
	return nil
}

func at(xs []*float64, i int) *float64 {
	if i < len(xs) {
		return xs[i]
	}
	return nil
}

var _ Client = (*YahooClient)(nil)
