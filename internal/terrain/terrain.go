// Package terrain provides read-only access to already generated blocks
// around a structure placement.
package terrain

import (
	"fmt"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/ident"
)

// Pos is an integer block position.
type Pos struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	Z int `json:"z" yaml:"z"`
}

// Bit layout of Long.
const (
	packedXZBits = 26
	packedYBits  = 12
	packedXZMask = 1<<packedXZBits - 1
	packedYMask  = 1<<packedYBits - 1
	packedZShift = packedYBits
	packedXShift = packedYBits + packedXZBits
)

// Long packs p into 64 bits: 26 bits of X, 26 bits of Z, 12 bits of Y.
// Positions outside the packable range alias.
func (p Pos) Long() int64 {
	var v int64
	v |= (int64(p.X) & packedXZMask) << packedXShift
	v |= int64(p.Y) & packedYMask
	v |= (int64(p.Z) & packedXZMask) << packedZShift
	return v
}

// FromLong reverses Long.
func FromLong(v int64) Pos {
	return Pos{
		X: int(v << (64 - packedXShift - packedXZBits) >> (64 - packedXZBits)),
		Y: int(v << (64 - packedYBits) >> (64 - packedYBits)),
		Z: int(v << (64 - packedZShift - packedXZBits) >> (64 - packedXZBits)),
	}
}

// Add returns p offset by o.
func (p Pos) Add(o Pos) Pos {
	return Pos{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Down returns the position n blocks below p.
func (p Pos) Down(n int) Pos {
	return Pos{X: p.X, Y: p.Y - n, Z: p.Z}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// Reader is the terrain accessor the hint scan runs against.
type Reader interface {
	BlockStateAt(p Pos) blockstate.State
	MinBuildHeight() int
}

// DefaultMinBuildHeight is the overworld floor.
const DefaultMinBuildHeight = -64

var air = blockstate.Of(ident.New(ident.Minecraft, "air"), nil)

// Map is a sparse in-memory Reader. Unset positions read as air.
// A Map is not safe for concurrent use.
type Map struct {
	blocks map[Pos]blockstate.State
	minY   int
	reads  int
}

// NewMap returns an empty map with the given build floor.
func NewMap(minBuildHeight int) *Map {
	return &Map{blocks: make(map[Pos]blockstate.State), minY: minBuildHeight}
}

// Set places a block.
func (m *Map) Set(p Pos, s blockstate.State) {
	m.blocks[p] = s
}

// SetColumn fills x,z from top downwards with the given blocks.
func (m *Map) SetColumn(x, z, top int, blocks ...blockstate.State) {
	for i, s := range blocks {
		m.Set(Pos{X: x, Y: top - i, Z: z}, s)
	}
}

// BlockStateAt implements Reader.
func (m *Map) BlockStateAt(p Pos) blockstate.State {
	m.reads++
	if s, ok := m.blocks[p]; ok {
		return s
	}
	return air
}

// MinBuildHeight implements Reader.
func (m *Map) MinBuildHeight() int {
	return m.minY
}

// Reads returns how many positions have been inspected.
func (m *Map) Reads() int {
	return m.reads
}

// ResetReads zeroes the read counter.
func (m *Map) ResetReads() {
	m.reads = 0
}

// Len returns the number of non-air positions.
func (m *Map) Len() int {
	return len(m.blocks)
}
