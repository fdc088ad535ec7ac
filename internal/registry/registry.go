// Package registry holds the target content registry: which block and item
// identifiers exist, and the state shape of every block.
//
// A Memory registry is built once (from the built-in catalogue and optional
// registry files) and then only read. It is safe for concurrent readers as
// long as nothing is added after it has been shared.
package registry

import (
	"fmt"
	"sort"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/ident"
)

// Registry answers membership questions about identifiers.
type Registry interface {
	// Block returns the definition of a registered block.
	Block(id ident.ID) (*blockstate.Definition, bool)
	// HasBlock reports whether id is a registered block.
	HasBlock(id ident.ID) bool
	// HasItem reports whether id is a registered item.
	HasItem(id ident.ID) bool
}

// Memory is an in-memory Registry.
type Memory struct {
	blocks map[ident.ID]*blockstate.Definition
	items  map[ident.ID]struct{}
}

// New returns an empty registry.
func New() *Memory {
	return &Memory{
		blocks: make(map[ident.ID]*blockstate.Definition),
		items:  make(map[ident.ID]struct{}),
	}
}

// AddBlock registers a block definition. A later definition for the same
// identifier replaces the earlier one.
func (m *Memory) AddBlock(def *blockstate.Definition) error {
	if def == nil || def.Block.IsZero() {
		return fmt.Errorf("registry: block definition without identifier")
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("registry: %w", err)
	}
	m.blocks[def.Block] = def
	return nil
}

// MustAddBlock is AddBlock that panics on error.
func (m *Memory) MustAddBlock(def *blockstate.Definition) {
	if err := m.AddBlock(def); err != nil {
		panic(err)
	}
}

// AddItem registers an item identifier.
func (m *Memory) AddItem(id ident.ID) {
	m.items[id] = struct{}{}
}

// Merge copies every block and item of other into m.
func (m *Memory) Merge(other *Memory) {
	for id, def := range other.blocks {
		m.blocks[id] = def
	}
	for id := range other.items {
		m.items[id] = struct{}{}
	}
}

// Block implements Registry.
func (m *Memory) Block(id ident.ID) (*blockstate.Definition, bool) {
	def, ok := m.blocks[id]
	return def, ok
}

// HasBlock implements Registry.
func (m *Memory) HasBlock(id ident.ID) bool {
	_, ok := m.blocks[id]
	return ok
}

// HasItem implements Registry.
func (m *Memory) HasItem(id ident.ID) bool {
	_, ok := m.items[id]
	return ok
}

// Blocks returns every registered block identifier in sorted order.
func (m *Memory) Blocks() []ident.ID {
	return sortedIDs(m.blocks)
}

// Items returns every registered item identifier in sorted order.
func (m *Memory) Items() []ident.ID {
	return sortedIDs(m.items)
}

// Stats summarizes the registry contents.
type Stats struct {
	Blocks     int            `json:"blocks"`
	Items      int            `json:"items"`
	Namespaces map[string]int `json:"namespaces"`
}

// Stats counts blocks and items per namespace.
func (m *Memory) Stats() Stats {
	s := Stats{Blocks: len(m.blocks), Items: len(m.items), Namespaces: make(map[string]int)}
	for id := range m.blocks {
		s.Namespaces[id.Namespace]++
	}
	for id := range m.items {
		s.Namespaces[id.Namespace]++
	}
	return s
}

func sortedIDs[V any](set map[ident.ID]V) []ident.ID {
	ids := make([]ident.ID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
