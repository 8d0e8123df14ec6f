package finance

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"agenthub-backend/internal/marketdata"
)

type fakeMarket struct {
	histories map[string]marketdata.History
	infos     map[string]marketdata.CompanyInfo
	histErr   error
	histCalls map[string]int
}

func (f *fakeMarket) History(_ context.Context, symbol string) (marketdata.History, error) {
	if f.histCalls == nil {
		f.histCalls = map[string]int{}
	}
	f.histCalls[symbol]++
	if f.histErr != nil {
		return marketdata.History{}, f.histErr
	}
	return f.histories[symbol], nil
}

func (f *fakeMarket) Info(_ context.Context, symbol string) (marketdata.CompanyInfo, error) {
	return f.infos[symbol], nil
}

func newTestService(market *fakeMarket) *Service {
	svc := NewService(market, nil)
	svc.sleep = func(time.Duration) {}
	return svc
}

func risingHistory(n int) marketdata.History {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var h marketdata.History
	price := 100.0
	for i := 0; i < n; i++ {
		h.Dates = append(h.Dates, start.AddDate(0, 0, i))
		h.Close = append(h.Close, price)
		h.High = append(h.High, price+1)
		h.Low = append(h.Low, price-1)
		price *= 1.01
	}
	return h
}

func TestNormalizeTickersCapsAtFive(t *testing.T) {
	got := NormalizeTickers([]string{" aapl ", "", "msft", "googl", "amzn", "nvda", "tsla", "meta"})
	want := []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTickers = %v, want %v", got, want)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	batch := newTestService(&fakeMarket{}).Analyze(context.Background(), []string{"  ", ""})
	if len(batch.Results) != 0 || batch.Message != "No valid tickers provided" {
		t.Errorf("batch = %+v", batch)
	}
}

func TestAnalyzeComputesMetrics(t *testing.T) {
	market := &fakeMarket{
		histories: map[string]marketdata.History{"AAPL": risingHistory(30)},
		infos: map[string]marketdata.CompanyInfo{"AAPL": {
			Name: "Apple Inc.", Sector: "Technology", Industry: "Consumer Electronics", MarketCap: 3.2e12,
		}},
	}

	batch := newTestService(market).Analyze(context.Background(), []string{"aapl"})
	if len(batch.Results) != 1 {
		t.Fatalf("results = %+v", batch.Results)
	}
	r := batch.Results[0]
	if r.Status != "" {
		t.Fatalf("unexpected status %q", r.Status)
	}
	if r.CompanyName != "Apple Inc." {
		t.Errorf("company name = %q", r.CompanyName)
	}
	if r.Metrics == nil || r.Metrics.AnnualReturn <= 0 || r.Metrics.SharpeRatio <= 1 {
		t.Errorf("metrics = %+v", r.Metrics)
	}
	if r.Metrics.High52W == nil || r.Metrics.Low52W == nil {
		t.Errorf("expected 52-week range, got %+v", r.Metrics)
	}
	for _, want := range []string{"# Apple Inc. (AAPL) Analysis", "**Sector:** Technology", "**Market Cap:** $3.20T", "**STRONG BUY**"} {
		if !strings.Contains(r.Analysis, want) {
			t.Errorf("analysis missing %q:\n%s", want, r.Analysis)
		}
	}
}

func TestAnalyzeRecommendationIdempotent(t *testing.T) {
	market := &fakeMarket{histories: map[string]marketdata.History{"AAPL": risingHistory(30)}}
	svc := newTestService(market)

	first := svc.Analyze(context.Background(), []string{"AAPL"})
	second := svc.Analyze(context.Background(), []string{"AAPL"})
	if !reflect.DeepEqual(first.Results, second.Results) {
		t.Errorf("analysis not deterministic:\n%+v\n%+v", first.Results, second.Results)
	}
}

func TestAnalyzeEmptyHistoryRetriesThenContinues(t *testing.T) {
	market := &fakeMarket{histories: map[string]marketdata.History{
		"GONE": {},
		"AAPL": risingHistory(30),
	}}

	batch := newTestService(market).Analyze(context.Background(), []string{"GONE", "AAPL"})
	if market.histCalls["GONE"] != 3 {
		t.Errorf("expected 3 fetch attempts for GONE, got %d", market.histCalls["GONE"])
	}
	if batch.Results[0].Status != "No data available after retries" {
		t.Errorf("status = %q", batch.Results[0].Status)
	}
	if batch.Results[1].Status != "" {
		t.Errorf("batch did not continue past failed ticker: %+v", batch.Results[1])
	}
}

func TestAnalyzeFetchErrorRetries(t *testing.T) {
	market := &fakeMarket{histErr: errors.New("upstream down")}

	batch := newTestService(market).Analyze(context.Background(), []string{"AAPL"})
	if market.histCalls["AAPL"] != 3 {
		t.Errorf("expected 3 attempts, got %d", market.histCalls["AAPL"])
	}
	if batch.Results[0].Status != "No data available after retries" {
		t.Errorf("status = %q", batch.Results[0].Status)
	}
}

func TestAnalyzeInsufficientHistory(t *testing.T) {
	market := &fakeMarket{histories: map[string]marketdata.History{"AAPL": risingHistory(4)}}

	batch := newTestService(market).Analyze(context.Background(), []string{"AAPL"})
	if batch.Results[0].Status != "Insufficient price history" {
		t.Errorf("status = %q", batch.Results[0].Status)
	}
}

func TestRecommendationBands(t *testing.T) {
	cases := []struct {
		sharpe float64
		want   string
	}{
		{1.5, "**STRONG BUY** - Excellent risk-adjusted returns"},
		{0.8, "**BUY** - Good risk-adjusted returns"},
		{0.2, "**HOLD** - Positive but modest risk-adjusted returns"},
		{0, "**SELL** - Poor risk-adjusted returns"},
		{-1, "**SELL** - Poor risk-adjusted returns"},
	}
	for _, tc := range cases {
		if got := Recommendation(tc.sharpe); got != tc.want {
			t.Errorf("Recommendation(%v) = %q, want %q", tc.sharpe, got, tc.want)
		}
	}
}

func TestFormatMarketCap(t *testing.T) {
	cases := []struct {
		cap  float64
		want string
	}{
		{3.21e12, "$3.21T"},
		{1e12, "$1.00T"},
		{5.5e9, "$5.50B"},
		{2.5e6, "$2.50M"},
		{123.456, "$123.46"},
		{0, "N/A"},
		{-5, "N/A"},
	}
	for _, tc := range cases {
		if got := FormatMarketCap(tc.cap); got != tc.want {
			t.Errorf("FormatMarketCap(%v) = %q, want %q", tc.cap, got, tc.want)
		}
	}
}
