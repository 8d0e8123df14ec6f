package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newYahooTestClient(srv *httptest.Server) *YahooClient {
	return &YahooClient{baseURL: srv.URL, httpClient: srv.Client()}
}

func TestHistoryParsesBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/AAPL") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("range") != "1y" || r.URL.Query().Get("interval") != "1d" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1700000000,1700086400,1700172800,1700259200],
			"indicators":{"quote":[{
				"close":[100.5,null,102.25,104.0],
				"high":[101.0,null,null,105.0],
				"low":[99.5,null,null,103.25]
			}]}
		}],"error":null}}`))
	}))
	defer srv.Close()

	h, err := newYahooTestClient(srv).History(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(h.Close) != 3 {
		t.Fatalf("expected 3 bars after skipping null close, got %d", len(h.Close))
	}
	if h.Close[0] != 100.5 || h.Close[1] != 102.25 || h.Close[2] != 104.0 {
		t.Errorf("close = %v", h.Close)
	}
	// The third bar has a close but null high/low; those values are
	// dropped, never zero-filled.
	if len(h.High) != 2 || h.High[0] != 101.0 || h.High[1] != 105.0 {
		t.Errorf("high = %v", h.High)
	}
	if len(h.Low) != 2 || h.Low[0] != 99.5 || h.Low[1] != 103.25 {
		t.Errorf("low = %v", h.Low)
	}
	if !h.Dates[0].Equal(time.Unix(1700000000, 0).UTC()) {
		t.Errorf("dates = %v", h.Dates)
	}
}

func TestHistoryProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	if _, err := newYahooTestClient(srv).History(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error for provider error payload")
	}
}

func TestHistoryEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer srv.Close()

	h, err := newYahooTestClient(srv).History(context.Background(), "EMPTY")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(h.Close) != 0 {
		t.Errorf("expected empty history, got %v", h.Close)
	}
}

func TestInfoParsesProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/MSFT") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"quoteSummary":{"result":[{
			"assetProfile":{"sector":"Technology","industry":"Software"},
			"price":{"longName":"Microsoft Corporation","marketCap":{"raw":3100000000000}}
		}]}}`))
	}))
	defer srv.Close()

	info, err := newYahooTestClient(srv).Info(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Name != "Microsoft Corporation" || info.Sector != "Technology" || info.Industry != "Software" {
		t.Errorf("info = %+v", info)
	}
	if info.MarketCap != 3100000000000 {
		t.Errorf("market cap = %v", info.MarketCap)
	}
}

func TestInfoSoftFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	info, err := newYahooTestClient(srv).Info(context.Background(), "GONE")
	if err != nil {
		t.Fatalf("Info should not error on provider failure: %v", err)
	}
	if info != (CompanyInfo{}) {
		t.Errorf("expected zero info, got %+v", info)
	}
}
