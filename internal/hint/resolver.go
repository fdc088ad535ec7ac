// Package hint resolves the environment hints that parameterize material
// rules: the rock and soil found under a placement anchor, and the wood
// species a template is built from.
//
// Rock and soil come from a bounded downward scan of already generated
// terrain. Wood comes from the block being processed. Resolution never
// writes to the terrain, so resolvers can be shared between workers as long
// as each worker reads its own terrain snapshot.
package hint

import (
	"slices"
	"strings"

	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/scope"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
)

// Kind names a hint.
type Kind string

const (
	Rock Kind = "rock"
	Soil Kind = "soil"
	Wood Kind = "wood"
)

// DefaultMaxSteps bounds the downward scan.
const DefaultMaxSteps = 64

// Default hint values.
const (
	DefaultRockOverworld = "granite"
	DefaultRockNether    = "basalt"
	DefaultRockEnd       = "granite"
	DefaultSoil          = "mollisol"
	DefaultWood          = "oak"
)

// VanillaWoods is the set of recognised source wood species.
var VanillaWoods = []string{
	"oak", "spruce", "birch", "jungle", "acacia", "dark_oak", "mangrove", "cherry", "bamboo",
}

// IsVanillaWood reports whether species is a recognised source wood.
func IsVanillaWood(species string) bool {
	return slices.Contains(VanillaWoods, species)
}

var soilPrefixes = []string{
	"dirt/", "coarse_dirt/", "grass/", "grass_path/", "rooted_dirt/", "farmland/", "clay_grass/",
}

// Defaults holds the fallback hint values.
type Defaults struct {
	Rock map[scope.Class]string
	Soil string
	Wood string
}

// StandardDefaults returns the stock fallback values.
func StandardDefaults() Defaults {
	return Defaults{
		Rock: map[scope.Class]string{
			scope.ClassOverworld: DefaultRockOverworld,
			scope.ClassNether:    DefaultRockNether,
			scope.ClassEnd:       DefaultRockEnd,
		},
		Soil: DefaultSoil,
		Wood: DefaultWood,
	}
}

// Resolver resolves hints.
type Resolver struct {
	maxSteps int
	defaults Defaults
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxSteps overrides the scan bound. Non-positive values are ignored.
func WithMaxSteps(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxSteps = n
		}
	}
}

// WithDefaults overrides fallback values. Empty fields keep the stock value.
func WithDefaults(d Defaults) Option {
	return func(r *Resolver) {
		for class, rock := range d.Rock {
			if rock != "" {
				r.defaults.Rock[class] = rock
			}
		}
		if d.Soil != "" {
			r.defaults.Soil = d.Soil
		}
		if d.Wood != "" {
			r.defaults.Wood = d.Wood
		}
	}
}

// NewResolver returns a resolver with stock settings.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{maxSteps: DefaultMaxSteps, defaults: StandardDefaults()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxSteps returns the scan bound.
func (r *Resolver) MaxSteps() int {
	return r.maxSteps
}

// Default returns the fallback value of kind in dimension dim.
func (r *Resolver) Default(kind Kind, dim ident.ID) string {
	switch kind {
	case Rock:
		if rock, ok := r.defaults.Rock[scope.ClassOf(dim)]; ok {
			return rock
		}
		return DefaultRockOverworld
	case Soil:
		return r.defaults.Soil
	default:
		return r.defaults.Wood
	}
}

// Resolve scans below anchor for a rock or soil hint and falls back to the
// dimension default.
func (r *Resolver) Resolve(reader terrain.Reader, anchor terrain.Pos, kind Kind, dim ident.ID) string {
	var match func(ident.ID) (string, bool)
	switch kind {
	case Rock:
		match = RockName
	case Soil:
		match = SoilName
	default:
		return r.Default(kind, dim)
	}
	if name, ok := r.scan(reader, anchor, match); ok {
		return name
	}
	return r.Default(kind, dim)
}

// scan inspects at most maxSteps positions from anchor downwards, stopping
// at the build floor.
func (r *Resolver) scan(reader terrain.Reader, anchor terrain.Pos, match func(ident.ID) (string, bool)) (string, bool) {
	minY := reader.MinBuildHeight()
	cursor := anchor
	for i := 0; i < r.maxSteps && cursor.Y >= minY; i++ {
		if name, ok := match(reader.BlockStateAt(cursor).Block); ok {
			return name, true
		}
		cursor = cursor.Down(1)
	}
	return "", false
}

// RockName extracts the rock from a tfc:rock/... block, dropping any
// stairs, slab or wall suffix.
func RockName(id ident.ID) (string, bool) {
	if !id.In(ident.TFC) || !strings.HasPrefix(id.Path, "rock/") {
		return "", false
	}
	tail := ident.LastSegment(id.Path)
	tail = ident.TrimSuffix(tail, "_stairs")
	tail = ident.TrimSuffix(tail, "_slab")
	tail = ident.TrimSuffix(tail, "_wall")
	return tail, tail != ""
}

// SoilName extracts the soil from a tfc soil-family block.
func SoilName(id ident.ID) (string, bool) {
	if !id.In(ident.TFC) {
		return "", false
	}
	for _, prefix := range soilPrefixes {
		if strings.HasPrefix(id.Path, prefix) {
			tail := ident.LastSegment(id.Path)
			return tail, tail != ""
		}
	}
	return "", false
}

// WoodSpecies derives the wood species a block path names, for example
// "spruce" from "stripped_spruce_log". Only recognised species are returned.
func WoodSpecies(path string) (string, bool) {
	p := strings.TrimPrefix(path, "stripped_")
	idx := strings.IndexByte(p, '_')
	if idx <= 0 {
		return "", false
	}
	species := p[:idx]
	if !IsVanillaWood(species) {
		return "", false
	}
	return species, true
}
