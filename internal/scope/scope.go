// Package scope decides whether the remapping engine runs for a placement
// and how much of the rule chain applies.
//
// The gate is evaluated once per template placement:
//
//   - Activation: the template must have a recorded origin whose namespace is
//     one of the allowed structure-generator namespaces. Templates with no
//     known origin are left alone.
//   - Scope: the overworld gets the full rule chain. Every other dimension
//     only gets the utility subset (containers, furniture, metal utility,
//     decor, vessels, lights).
package scope

import (
	"fmt"
	"slices"

	"github.com/claustra01/yungsbettertfc/internal/ident"
)

// Dimension identifiers.
var (
	Overworld = ident.New(ident.Minecraft, "overworld")
	Nether    = ident.New(ident.Minecraft, "the_nether")
	End       = ident.New(ident.Minecraft, "the_end")
)

// Scope selects the rule subset.
type Scope string

const (
	// Full runs every category.
	Full Scope = "full"

	// UtilityOnly runs the conservative subset used outside the overworld.
	UtilityOnly Scope = "utility_only"
)

// Validate checks that s is a known scope.
func (s Scope) Validate() error {
	switch s {
	case Full, UtilityOnly:
		return nil
	default:
		return fmt.Errorf("invalid scope %q: must be full or utility_only", string(s))
	}
}

// For returns the scope of a dimension.
func For(dim ident.ID) Scope {
	if dim == Overworld {
		return Full
	}
	return UtilityOnly
}

// Class groups dimensions that share hint defaults.
type Class string

const (
	ClassOverworld Class = "overworld"
	ClassNether    Class = "nether"
	ClassEnd       Class = "end"
)

// ClassOf returns the default class of a dimension. Unknown dimensions
// behave like the overworld.
func ClassOf(dim ident.ID) Class {
	switch dim {
	case Nether:
		return ClassNether
	case End:
		return ClassEnd
	default:
		return ClassOverworld
	}
}

// DefaultNamespaces lists the structure generators whose templates are remapped.
var DefaultNamespaces = []string{
	"betterstrongholds",
	"betterdungeons",
	"betteroceanmonuments",
	"betterfortresses",
	"betterendisland",
	"beneath",
}

// Gate decides activation from a template origin.
type Gate struct {
	namespaces []string
}

// NewGate returns a gate allowing the given origin namespaces. With no
// arguments DefaultNamespaces is used.
func NewGate(namespaces ...string) *Gate {
	if len(namespaces) == 0 {
		namespaces = DefaultNamespaces
	}
	return &Gate{namespaces: slices.Clone(namespaces)}
}

// Allows reports whether templates from origin are remapped.
func (g *Gate) Allows(origin ident.ID) bool {
	if origin.IsZero() {
		return false
	}
	return slices.Contains(g.namespaces, origin.Namespace)
}

// Namespaces returns the allowed namespaces.
func (g *Gate) Namespaces() []string {
	return slices.Clone(g.namespaces)
}

// Decision is the per-placement outcome of the gate.
type Decision struct {
	Active    bool
	Scope     Scope
	Dimension ident.ID
	Origin    ident.ID
}

// Evaluate decides activation and scope for one placement.
func (g *Gate) Evaluate(dim ident.ID, origin ident.ID) Decision {
	return Decision{
		Active:    g.Allows(origin),
		Scope:     For(dim),
		Dimension: dim,
		Origin:    origin,
	}
}
