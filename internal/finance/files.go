package finance

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
)

// ParseTickerFile extracts ticker symbols from an uploaded file. CSV files
// use the "ticker" column when present, otherwise the first column; text
// files hold one symbol per line.
func ParseTickerFile(data []byte, ext string) ([]string, error) {
	switch strings.ToLower(ext) {
	case "csv":
		return parseCSVTickers(data)
	case "txt":
		return parseTextTickers(data), nil
	default:
		return nil, fmt.Errorf("unsupported ticker file type %q", ext)
	}
}

func parseCSVTickers(data []byte) ([]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := 0
	hasHeader := false
	for i, name := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(name), "ticker") {
			col = i
			hasHeader = true
			break
		}
	}

	start := 0
	if hasHeader {
		start = 1
	}
	var tickers []string
	for _, row := range rows[start:] {
		if col < len(row) {
			tickers = append(tickers, row[col])
		}
	}
	return tickers, nil
}

func parseTextTickers(data []byte) []string {
	var tickers []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tickers = append(tickers, line)
		}
	}
	return tickers
}

// ProcessUpload satisfies the registry file-processing contract: it parses
// a ticker file and runs the analysis batch.
func (s *Service) ProcessUpload(ctx context.Context, fileName string, data []byte, ext string) (map[string]any, error) {
	tickers, err := ParseTickerFile(data, ext)
	if err != nil {
		return nil, err
	}
	batch := s.Analyze(ctx, tickers)
	if len(batch.Results) == 0 && batch.Message == "" {
		batch.Message = "No valid tickers found in file"
	}
	out := map[string]any{
		"results": batch.Results,
		"charts":  batch.Charts,
	}
	if batch.Message != "" {
		out["message"] = batch.Message
	}
	return out, nil
}
