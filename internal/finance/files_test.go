package finance

import (
	"reflect"
	"testing"
)

func TestParseTickerFileCSVTickerColumn(t *testing.T) {
	data := []byte("name,ticker\nApple,AAPL\nMicrosoft,MSFT\n")
	got, err := ParseTickerFile(data, "csv")
	if err != nil {
		t.Fatalf("ParseTickerFile: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"AAPL", "MSFT"}) {
		t.Errorf("tickers = %v", got)
	}
}

func TestParseTickerFileCSVFirstColumn(t *testing.T) {
	data := []byte("AAPL,Apple\nMSFT,Microsoft\n")
	got, err := ParseTickerFile(data, "csv")
	if err != nil {
		t.Fatalf("ParseTickerFile: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"AAPL", "MSFT"}) {
		t.Errorf("tickers = %v", got)
	}
}

func TestParseTickerFileText(t *testing.T) {
	data := []byte("AAPL\n\n  msft  \ngoogl\n")
	got, err := ParseTickerFile(data, "txt")
	if err != nil {
		t.Fatalf("ParseTickerFile: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"AAPL", "msft", "googl"}) {
		t.Errorf("tickers = %v", got)
	}
}

func TestParseTickerFileUnsupported(t *testing.T) {
	if _, err := ParseTickerFile([]byte("x"), "pdf"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
