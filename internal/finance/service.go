package finance

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"agenthub-backend/internal/chart"
	"agenthub-backend/internal/marketdata"
	"agenthub-backend/internal/shared/telemetry"
)

const (
	maxTickers       = 5
	maxFetchAttempts = 3
	fetchRetryDelay  = time.Second
	tradingDays      = 252
)

// Service analyzes batches of ticker symbols.
type Service struct {
	Market marketdata.Client
	Charts chart.Renderer

	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

// NewService constructs a finance Service.
func NewService(market marketdata.Client, charts chart.Renderer) *Service {
	return &Service{Market: market, Charts: charts, sleep: time.Sleep}
}

// NormalizeTickers trims, uppercases and drops empty symbols, then caps
// the batch at five entries.
func NormalizeTickers(raw []string) []string {
	var tickers []string
	for _, t := range raw {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		tickers = append(tickers, t)
	}
	if len(tickers) > maxTickers {
		tickers = tickers[:maxTickers]
	}
	return tickers
}

// Analyze runs the full batch. Individual symbol failures produce status
// records; the batch itself never fails.
func (s *Service) Analyze(ctx context.Context, raw []string) BatchResult {
	tickers := NormalizeTickers(raw)
	if len(tickers) == 0 {
		return BatchResult{Results: []TickerResult{}, Charts: []TickerChart{}, Message: "No valid tickers provided"}
	}

	out := BatchResult{Results: []TickerResult{}, Charts: []TickerChart{}}
	for _, ticker := range tickers {
		result, tickerChart := s.analyzeOne(ctx, ticker)
		out.Results = append(out.Results, result)
		if tickerChart != nil {
			out.Charts = append(out.Charts, *tickerChart)
		}
	}
	return out
}

func (s *Service) analyzeOne(ctx context.Context, ticker string) (TickerResult, *TickerChart) {
	telemetry.Info("finance.analyze", map[string]any{"ticker": ticker})

	hist, err := s.fetchHistory(ctx, ticker)
	if err != nil {
		return TickerResult{Ticker: ticker, Status: "No data available after retries"}, nil
	}

	returns := dailyReturns(hist.Close)
	if len(returns) < 5 {
		return TickerResult{Ticker: ticker, Status: "Insufficient price history"}, nil
	}

	annualReturn := mean(returns) * tradingDays * 100
	volatility := stddev(returns) * math.Sqrt(tradingDays) * 100
	sharpe := 0.0
	if volatility > 0 {
		sharpe = annualReturn / volatility
	}

	info, _ := s.Market.Info(ctx, ticker)
	companyName := info.Name
	if companyName == "" {
		companyName = ticker
	}
	sector := orNA(info.Sector)
	industry := orNA(info.Industry)
	marketCap := FormatMarketCap(info.MarketCap)

	metrics := &TickerMetrics{
		CurrentPrice:     hist.Close[len(hist.Close)-1],
		AnnualReturn:     annualReturn,
		AnnualVolatility: volatility,
		SharpeRatio:      sharpe,
	}
	if len(hist.High) > 0 && len(hist.Low) > 0 {
		high := maxOf(hist.High)
		low := minOf(hist.Low)
		metrics.High52W = &high
		metrics.Low52W = &low
	}

	result := TickerResult{
		Ticker:      ticker,
		CompanyName: companyName,
		Analysis:    buildAnalysis(companyName, ticker, sector, industry, marketCap, metrics, Recommendation(sharpe)),
		Metrics:     metrics,
	}

	var tickerChart *TickerChart
	if s.Charts != nil {
		encoded, chartErr := s.Charts.PriceChart(ticker, hist.Dates, hist.Close)
		if chartErr != nil {
			telemetry.Warn("finance.chart_failed", map[string]any{"ticker": ticker, "error": chartErr.Error()})
		} else {
			tickerChart = &TickerChart{Ticker: ticker, Chart: encoded}
		}
	}
	return result, tickerChart
}

// fetchHistory retries on errors and empty results with a fixed delay.
func (s *Service) fetchHistory(ctx context.Context, ticker string) (marketdata.History, error) {
	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		hist, err := s.Market.History(ctx, ticker)
		if err == nil && len(hist.Close) > 0 {
			return hist, nil
		}
		if err != nil {
			lastErr = err
			telemetry.Warn("finance.history_retry", map[string]any{"ticker": ticker, "attempt": attempt, "error": err.Error()})
		} else {
			lastErr = fmt.Errorf("empty history for %s", ticker)
			telemetry.Warn("finance.history_retry", map[string]any{"ticker": ticker, "attempt": attempt, "error": "empty history"})
		}
		if attempt < maxFetchAttempts {
			s.sleep(fetchRetryDelay)
		}
	}
	return marketdata.History{}, lastErr
}

// Recommendation maps a Sharpe-like ratio to an advice band.
func Recommendation(sharpe float64) string {
	switch {
	case sharpe > 1:
		return "**STRONG BUY** - Excellent risk-adjusted returns"
	case sharpe > 0.5:
		return "**BUY** - Good risk-adjusted returns"
	case sharpe > 0:
		return "**HOLD** - Positive but modest risk-adjusted returns"
	default:
		return "**SELL** - Poor risk-adjusted returns"
	}
}

// FormatMarketCap renders a market cap with trillion/billion/million
// suffixes; non-positive values render as N/A.
func FormatMarketCap(cap float64) string {
	switch {
	case cap >= 1e12:
		return fmt.Sprintf("$%.2fT", cap/1e12)
	case cap >= 1e9:
		return fmt.Sprintf("$%.2fB", cap/1e9)
	case cap >= 1e6:
		return fmt.Sprintf("$%.2fM", cap/1e6)
	case cap > 0:
		return fmt.Sprintf("$%.2f", cap)
	default:
		return "N/A"
	}
}

func buildAnalysis(company, ticker, sector, industry, marketCap string, m *TickerMetrics, recommendation string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s) Analysis\n\n", company, ticker)
	fmt.Fprintf(&b, "**Sector:** %s\n", sector)
	fmt.Fprintf(&b, "**Industry:** %s\n", industry)
	fmt.Fprintf(&b, "**Market Cap:** %s\n\n", marketCap)
	b.WriteString("## Performance Metrics\n\n")
	fmt.Fprintf(&b, "**Current Price:** $%.2f\n", m.CurrentPrice)
	if m.High52W != nil && m.Low52W != nil {
		fmt.Fprintf(&b, "**52-Week High:** $%.2f\n", *m.High52W)
		fmt.Fprintf(&b, "**52-Week Low:** $%.2f\n", *m.Low52W)
	}
	fmt.Fprintf(&b, "**Annual Return:** %.2f%%\n", m.AnnualReturn)
	fmt.Fprintf(&b, "**Annual Volatility:** %.2f%%\n", m.AnnualVolatility)
	fmt.Fprintf(&b, "**Sharpe Ratio:** %.2f\n\n", m.SharpeRatio)
	fmt.Fprintf(&b, "## Recommendation\n\n%s\n\n", recommendation)
	return b.String()
}

func dailyReturns(close []float64) []float64 {
	var returns []float64
	for i := 1; i < len(close); i++ {
		if close[i-1] == 0 {
			continue
		}
		returns = append(returns, close[i]/close[i-1]-1)
	}
	return returns
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the sample standard deviation.
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

func maxOf(xs []float64) float64 {
	out := xs[0]
	for _, x := range xs[1:] {
		if x > out {
			out = x
		}
	}
	return out
}

func minOf(xs []float64) float64 {
	out := xs[0]
	for _, x := range xs[1:] {
		if x < out {
			out = x
		}
	}
	return out
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
