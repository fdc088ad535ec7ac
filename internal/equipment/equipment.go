// Package equipment rewrites the gear displayed by item frames and armor
// stands in structure templates onto tiered target equipment.
package equipment

import (
	"maps"
	"strings"

	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/nbt"
)

// Entity kinds carrying equipment.
var (
	ItemFrame     = ident.New(ident.Minecraft, "item_frame")
	GlowItemFrame = ident.New(ident.Minecraft, "glow_item_frame")
	ArmorStand    = ident.New(ident.Minecraft, "armor_stand")
)

// Default tiers.
const (
	StandardTier = "wrought_iron"
	UpgradedTier = "black_steel"
)

// strippedKeys are removed from a rewritten stack; they describe the old item.
var strippedKeys = []string{"components", "tag", "Damage", "damage"}

var suffixKinds = []struct {
	suffix string
	kind   string
}{
	{"_sword", "sword"},
	{"_axe", "axe"},
	{"_pickaxe", "pickaxe"},
	{"_shovel", "shovel"},
	{"_hoe", "hoe"},
	{"_helmet", "helmet"},
	{"_chestplate", "chestplate"},
	{"_leggings", "greaves"},
	{"_boots", "boots"},
}

var exactKinds = map[string]string{
	"shield":   "shield",
	"bow":      "javelin",
	"crossbow": "javelin",
	"trident":  "javelin",
	"mace":     "mace",
}

// Items is the registry view the remapper needs.
type Items interface {
	HasItem(id ident.ID) bool
}

// Tiers picks the equipment metal from the template origin namespace.
type Tiers struct {
	Default     string
	ByNamespace map[string]string
}

// DefaultTiers upgrades stronghold gear and leaves everything else standard.
func DefaultTiers() Tiers {
	return Tiers{
		Default:     StandardTier,
		ByNamespace: map[string]string{"betterstrongholds": UpgradedTier},
	}
}

// Change records one rewritten stack.
type Change struct {
	Slot  string   `json:"slot"`
	Index int      `json:"index"`
	From  ident.ID `json:"from"`
	To    ident.ID `json:"to"`
}

// Remapper rewrites entity equipment. It is immutable and safe for
// concurrent use.
type Remapper struct {
	items Items
	tiers Tiers
}

// New returns a remapper validating against items.
func New(items Items, tiers Tiers) *Remapper {
	if tiers.Default == "" {
		tiers.Default = StandardTier
	}
	return &Remapper{items: items, tiers: Tiers{Default: tiers.Default, ByNamespace: maps.Clone(tiers.ByNamespace)}}
}

// TierFor returns the metal for templates from origin. An absent origin
// gets the default tier.
func (r *Remapper) TierFor(origin ident.ID) string {
	if t, ok := r.tiers.ByNamespace[origin.Namespace]; ok && !origin.IsZero() {
		return t
	}
	return r.tiers.Default
}

// Kind returns the target equipment kind of a base item path.
func Kind(path string) (string, bool) {
	for _, sk := range suffixKinds {
		if strings.HasSuffix(path, sk.suffix) {
			return sk.kind, true
		}
	}
	kind, ok := exactKinds[path]
	return kind, ok
}

// MapItem returns the tiered replacement of a base item, if registered.
func (r *Remapper) MapItem(item ident.ID, tier string) (ident.ID, bool) {
	if !item.In(ident.Minecraft) {
		return ident.ID{}, false
	}
	kind, ok := Kind(item.Path)
	if !ok {
		return ident.ID{}, false
	}
	id := ident.New(ident.TFC, "metal/"+kind+"/"+tier)
	if !r.items.HasItem(id) {
		return ident.ID{}, false
	}
	return id, true
}

// Remap rewrites the equipment in an entity's saved data. data is never
// modified; when nothing changes it is returned as is with no changes.
func (r *Remapper) Remap(entity ident.ID, data nbt.Compound, origin ident.ID) (nbt.Compound, []Change) {
	var slots []string
	switch entity {
	case ItemFrame, GlowItemFrame:
		slots = []string{"Item"}
	case ArmorStand:
		slots = []string{"ArmorItems", "HandItems"}
	default:
		return data, nil
	}

	tier := r.TierFor(origin)
	out := data.Clone()
	var changes []Change
	for _, slot := range slots {
		if stack, ok := out.GetCompound(slot); ok {
			if c, ok := r.rewriteStack(stack, tier); ok {
				c.Slot, c.Index = slot, -1
				changes = append(changes, c)
			}
			continue
		}
		list, ok := out.GetList(slot)
		if !ok {
			continue
		}
		for i, elem := range list {
			stack, ok := nbt.AsCompound(elem)
			if !ok {
				continue
			}
			if c, ok := r.rewriteStack(stack, tier); ok {
				c.Slot, c.Index = slot, i
				changes = append(changes, c)
			}
		}
	}
	if len(changes) == 0 {
		return data, nil
	}
	return out, changes
}

func (r *Remapper) rewriteStack(stack nbt.Compound, tier string) (Change, bool) {
	raw, ok := stack.GetString("id")
	if !ok || raw == "" {
		return Change{}, false
	}
	from, ok := ident.TryParse(raw)
	if !ok {
		return Change{}, false
	}
	to, ok := r.MapItem(from, tier)
	if !ok {
		return Change{}, false
	}
	stack["id"] = to.String()
	stack.Remove(strippedKeys...)
	return Change{From: from, To: to}, true
}
