package rules

import (
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/scope"
)

// Context is the per-placement input to the chain. It is built once per
// anchor and never modified.
type Context struct {
	Dimension ident.ID
	Scope     scope.Scope

	Rock string
	Soil string
	Wood string

	// DefaultWood is the species used when a wood target is not
	// registered. Empty means hint.DefaultWood.
	DefaultWood string

	// Infested is set when the block path carried the infested prefix.
	Infested bool

	// Overlay enables the nether companion overlay.
	Overlay bool
}
