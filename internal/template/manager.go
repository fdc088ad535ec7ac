package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/claustra01/yungsbettertfc/internal/ident"
)

// ErrNotFound is returned when no file exists for a template identifier.
var ErrNotFound = errors.New("template not found")

// Recorder is told where every template the manager loads came from.
type Recorder interface {
	Record(t *Template, origin ident.ID)
}

// Manager loads templates by identifier from a directory tree laid out as
// <root>/<namespace>/<path>.json or .json.zst, and caches them. It is safe
// for concurrent use.
type Manager struct {
	root     string
	recorder Recorder

	mu    sync.Mutex
	cache map[ident.ID]*Template
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithRecorder records the origin of each newly loaded template.
func WithRecorder(r Recorder) ManagerOption {
	return func(m *Manager) {
		m.recorder = r
	}
}

// NewManager returns a manager reading from root.
func NewManager(root string, opts ...ManagerOption) *Manager {
	m := &Manager{root: root, cache: make(map[ident.ID]*Template)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PathOf returns the candidate files for id, uncompressed first.
func (m *Manager) PathOf(id ident.ID) []string {
	base := filepath.Join(m.root, id.Namespace, filepath.FromSlash(id.Path))
	return []string{base + ExtJSON, base + ExtCompressed}
}

// GetOrCreate returns the cached template for id, loading it on first use.
func (m *Manager) GetOrCreate(id ident.ID) (*Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.cache[id]; ok {
		return t, nil
	}
	for _, path := range m.PathOf(id) {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		t, err := Load(path)
		if err != nil {
			return nil, err
		}
		m.cache[id] = t
		if m.recorder != nil {
			m.recorder.Record(t, id)
		}
		return t, nil
	}
	return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
}

// List returns the identifiers of all template files under root in lexical
// path order. An identifier backed by both a plain and a compressed file is
// listed once.
func (m *Manager) List() ([]ident.ID, error) {
	var out []ident.ID
	seen := make(map[ident.ID]bool)
	err := filepath.WalkDir(m.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(m.root, path)
		if err != nil {
			return err
		}
		id, ok := idFromRel(filepath.ToSlash(rel))
		if ok && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return out, nil
}

func idFromRel(rel string) (ident.ID, bool) {
	var trimmed string
	switch {
	case strings.HasSuffix(rel, ExtCompressed):
		trimmed = strings.TrimSuffix(rel, ExtCompressed)
	case strings.HasSuffix(rel, ExtJSON):
		trimmed = strings.TrimSuffix(rel, ExtJSON)
	default:
		return ident.ID{}, false
	}
	ns, path, ok := strings.Cut(trimmed, "/")
	if !ok {
		return ident.ID{}, false
	}
	return ident.TryParse(ns + ":" + path)
}
