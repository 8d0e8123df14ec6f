package summarizer

import (
	"strings"
	"testing"
)

func TestLoadDocumentText(t *testing.T) {
	text, err := LoadDocument([]byte("hello world"), "text/plain")
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if text != "hello world" {
		t.Errorf("text = %q", text)
	}
}

func TestLoadDocumentCSV(t *testing.T) {
	data := []byte("name,role\nAda,engineer\nGrace,admiral\n")
	text, err := LoadDocument(data, "text/csv")
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	for _, want := range []string{"name: Ada", "role: engineer", "name: Grace", "role: admiral"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
}

func TestLoadDocumentUnsupported(t *testing.T) {
	if _, err := LoadDocument([]byte("x"), "application/zip"); err == nil {
		t.Fatal("expected error for unsupported mime type")
	}
}

func TestLoadDocumentBadPDF(t *testing.T) {
	if _, err := LoadDocument([]byte("not a pdf"), "application/pdf"); err == nil {
		t.Fatal("expected error for invalid pdf data")
	}
}
