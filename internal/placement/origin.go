package placement

import (
	"sync"

	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/template"
)

// OriginLookup returns the identifier a template was loaded from, or the
// zero ID when unknown.
type OriginLookup func(t *template.Template) ident.ID

// OriginTable remembers the origin of loaded templates. It is safe for
// concurrent use and satisfies template.Recorder.
type OriginTable struct {
	mu      sync.RWMutex
	origins map[*template.Template]ident.ID
}

// NewOriginTable returns an empty table.
func NewOriginTable() *OriginTable {
	return &OriginTable{origins: make(map[*template.Template]ident.ID)}
}

// Record stores the origin of t. Recording again overwrites.
func (o *OriginTable) Record(t *template.Template, origin ident.ID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.origins[t] = origin
}

// Lookup returns the recorded origin of t.
func (o *OriginTable) Lookup(t *template.Template) ident.ID {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.origins[t]
}

// Len returns the number of recorded templates.
func (o *OriginTable) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.origins)
}

var _ template.Recorder = (*OriginTable)(nil)
