package engine

import (
	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/equipment"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/rules"
	"github.com/claustra01/yungsbettertfc/internal/scope"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
)

// Reason explains a block decision.
type Reason string

const (
	ReasonReplaced     Reason = "replaced"
	ReasonSeagrass     Reason = "upper_seagrass"
	ReasonAir          Reason = "air"
	ReasonForeign      Reason = "foreign_namespace"
	ReasonNoMatch      Reason = "no_match"
	ReasonUnregistered Reason = "unregistered"
)

// Changed reports whether the reason implies a different block.
func (r Reason) Changed() bool {
	return r == ReasonReplaced || r == ReasonSeagrass
}

// Hints are the environment hints a block was classified with.
type Hints struct {
	Rock string `json:"rock"`
	Soil string `json:"soil"`
	Wood string `json:"wood"`
}

// BlockDecision records how one block was handled.
type BlockDecision struct {
	Pos        terrain.Pos      `json:"pos"`
	Anchor     terrain.Pos      `json:"anchor"`
	Dimension  ident.ID         `json:"dimension"`
	Scope      scope.Scope      `json:"scope"`
	In         blockstate.State `json:"in"`
	Out        blockstate.State `json:"out"`
	Reason     Reason           `json:"reason"`
	Category   rules.Category   `json:"category,omitempty"`
	Candidate  ident.ID         `json:"candidate,omitzero"`
	Hints      Hints            `json:"hints"`
	DroppedNBT bool             `json:"droppedNbt,omitempty"`

	// Skipped lists source properties the target could not take.
	Skipped []string `json:"skipped,omitempty"`
}

// EntityDecision records how one entity was handled.
type EntityDecision struct {
	Pos     terrain.Pos        `json:"pos"`
	Entity  ident.ID           `json:"entity"`
	Origin  ident.ID           `json:"origin,omitzero"`
	Tier    string             `json:"tier"`
	Changes []equipment.Change `json:"changes,omitempty"`
}
