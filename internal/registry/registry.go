package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAgent is returned by Lookup for an unregistered agent id.
var ErrUnknownAgent = errors.New("unknown agent")

// Descriptor is the static metadata for one agent. Immutable after registration.
type Descriptor struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	SupportedTypes []string          `json:"supported_types"`
	MIMETypes      map[string]string `json:"-"`
}

// SupportsExtension reports whether the agent accepts files with the given
// extension (without the leading dot, case-insensitive).
func (d Descriptor) SupportsExtension(ext string) bool {
	_, ok := d.MIMETypes[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

// MIMEType returns the declared MIME string for an extension, or "" if unsupported.
func (d Descriptor) MIMEType(ext string) string {
	return d.MIMETypes[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// FileProcessor handles an uploaded file routed to an agent. The extension has
// already been validated against the agent's descriptor.
type FileProcessor interface {
	ProcessUpload(ctx context.Context, fileName string, data []byte, ext string) (map[string]any, error)
}

type entry struct {
	descriptor Descriptor
	processor  FileProcessor
}

// Registry maps agent ids to descriptors and their file processors.
// Registration happens once at process start; lookups afterwards are read-only,
// so no locking is needed.
type Registry struct {
	order   []string
	entries map[string]entry
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds an agent. The processor may be nil for agents that do not
// accept file uploads. Duplicate or blank ids are rejected.
func (r *Registry) Register(d Descriptor, p FileProcessor) error {
	id := strings.TrimSpace(d.ID)
	if id == "" {
		return fmt.Errorf("register agent: id is required")
	}
	if _, exists := r.entries[id]; exists {
		return fmt.Errorf("register agent: duplicate id %q", id)
	}
	d.ID = id
	r.entries[id] = entry{descriptor: d, processor: p}
	r.order = append(r.order, id)
	return nil
}

// Lookup returns the descriptor and file processor for an agent id.
func (r *Registry) Lookup(id string) (Descriptor, FileProcessor, error) {
	e, ok := r.entries[strings.TrimSpace(id)]
	if !ok {
		return Descriptor{}, nil, fmt.Errorf("%w: %s", ErrUnknownAgent, id)
	}
	return e.descriptor, e.processor, nil
}

// List returns descriptors in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].descriptor)
	}
	return out
}
