package registry

import (
	"context"
	"errors"
	"testing"
)

type nopProcessor struct{}

func (nopProcessor) ProcessUpload(ctx context.Context, fileName string, data []byte, ext string) (map[string]any, error) {
	return map[string]any{"ok": true}, nil
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	desc := Descriptor{
		ID:             "finance",
		Name:           "Finance Analyzer",
		SupportedTypes: []string{"csv", "txt"},
		MIMETypes:      map[string]string{"csv": "text/csv", "txt": "text/plain"},
	}
	if err := r.Register(desc, nopProcessor{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, proc, err := r.Lookup("finance")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Name != "Finance Analyzer" {
		t.Fatalf("expected descriptor name, got %q", got.Name)
	}
	if proc == nil {
		t.Fatalf("expected processor")
	}
}

func TestLookupUnknownAgent(t *testing.T) {
	r := New()
	_, _, err := r.Lookup("nope")
	if !errors.Is(err, ErrUnknownAgent) {
		t.Fatalf("expected ErrUnknownAgent, got %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := New()
	desc := Descriptor{ID: "education"}
	if err := r.Register(desc, nil); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(desc, nil); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	r := New()
	for _, id := range []string{"summarizer", "finance", "marketing"} {
		if err := r.Register(Descriptor{ID: id}, nil); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}
	list := r.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 agents, got %d", len(list))
	}
	if list[0].ID != "summarizer" || list[1].ID != "finance" || list[2].ID != "marketing" {
		t.Fatalf("unexpected order: %v", list)
	}
}

func TestSupportsExtension(t *testing.T) {
	d := Descriptor{MIMETypes: map[string]string{"pdf": "application/pdf"}}
	if !d.SupportsExtension("pdf") || !d.SupportsExtension(".PDF") {
		t.Fatalf("expected pdf to be supported")
	}
	if d.SupportsExtension("exe") {
		t.Fatalf("expected exe to be unsupported")
	}
}
