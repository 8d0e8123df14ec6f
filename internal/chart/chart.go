// Package chart renders price history plots for the finance analyses.
package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// Renderer produces a base64 PNG for a price series.
type Renderer interface {
	PriceChart(symbol string, dates []time.Time, close []float64) (string, error)
}

// PNGRenderer renders charts with go-chart.
type PNGRenderer struct {
	Width  int
	Height int
}

func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{Width: 800, Height: 400}
}

// PriceChart renders a closing-price time series and returns it as a
// base64-encoded PNG.
func (r *PNGRenderer) PriceChart(symbol string, dates []time.Time, close []float64) (string, error) {
	if len(dates) < 2 || len(dates) != len(close) {
		return "", fmt.Errorf("price chart %s: need at least two aligned points, got %d dates and %d closes", symbol, len(dates), len(close))
	}

	graph := gochart.Chart{
		Title:  symbol + " Closing Price (1Y)",
		Width:  r.Width,
		Height: r.Height,
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    symbol,
				XValues: dates,
				YValues: close,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return "", fmt.Errorf("price chart %s: %w", symbol, err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

var _ Renderer = (*PNGRenderer)(nil)
