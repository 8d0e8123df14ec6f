package finance

// TickerResult is the per-symbol outcome of an analysis batch. A symbol
// that could not be analyzed carries a Status string and nothing else.
type TickerResult struct {
	Ticker      string         `json:"ticker"`
	CompanyName string         `json:"company_name,omitempty"`
	Analysis    string         `json:"analysis,omitempty"`
	Metrics     *TickerMetrics `json:"metrics,omitempty"`
	Status      string         `json:"status,omitempty"`
}

// TickerMetrics are the computed performance figures for one symbol.
type TickerMetrics struct {
	CurrentPrice     float64  `json:"current_price"`
	AnnualReturn     float64  `json:"annual_return"`
	AnnualVolatility float64  `json:"annual_volatility"`
	SharpeRatio      float64  `json:"sharpe_ratio"`
	High52W          *float64 `json:"high_52w,omitempty"`
	Low52W           *float64 `json:"low_52w,omitempty"`
}

// TickerChart pairs a symbol with its base64 PNG price chart.
type TickerChart struct {
	Ticker string `json:"ticker"`
	Chart  string `json:"chart"`
}

// BatchResult is the full response for an analysis batch.
type BatchResult struct {
	Results []TickerResult `json:"results"`
	Charts  []TickerChart  `json:"charts"`
	Message string         `json:"message,omitempty"`
}
