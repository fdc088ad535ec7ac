// Package template holds structure templates: the blocks and entities of a
// pre-built structure, positioned relative to the template origin corner.
//
// Templates are stored as JSON documents, optionally zstd compressed. The
// layout follows the game's structure file: a palette of block states, a
// list of blocks referencing the palette by index, and a list of entities
// with their saved data.
package template

import (
	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/nbt"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
)

// Template is a loaded structure template. Templates are shared between
// placements and must not be modified after loading.
type Template struct {
	Size     terrain.Pos
	Blocks   []Block
	Entities []Entity
}

// Block is one template block, relative to the template corner.
type Block struct {
	Pos   terrain.Pos
	State blockstate.State
	NBT   nbt.Compound
}

// Vec is an entity position.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add offsets v by a block position.
func (v Vec) Add(p terrain.Pos) Vec {
	return Vec{X: v.X + float64(p.X), Y: v.Y + float64(p.Y), Z: v.Z + float64(p.Z)}
}

// Entity is one template entity, relative to the template corner.
type Entity struct {
	Pos      Vec
	BlockPos terrain.Pos
	NBT      nbt.Compound
}

// Palette returns the distinct block states of t in first-use order.
func (t *Template) Palette() []blockstate.State {
	seen := make(map[string]bool)
	var out []blockstate.State
	for _, b := range t.Blocks {
		key := b.State.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, b.State)
	}
	return out
}
