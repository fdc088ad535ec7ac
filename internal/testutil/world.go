package testutil

import (
	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/registry"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
)

// Registry returns the built-in catalogue with the nether companion set
// merged in.
func Registry() *registry.Memory {
	reg := registry.TFC()
	reg.Merge(registry.Beneath())
	return reg
}

// Column returns a terrain map holding blocks stacked downwards from top.
// Blocks are given in state syntax, for example "tfc:rock/raw/granite".
func Column(top terrain.Pos, blocks ...string) *terrain.Map {
	m := terrain.NewMap(terrain.DefaultMinBuildHeight)
	for i, b := range blocks {
		m.Set(top.Down(i), blockstate.MustParse(b))
	}
	return m
}
