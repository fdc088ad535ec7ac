// Package blockstate models block definitions and configured block states.
//
// A Definition describes the state shape of one block: its property names,
// the legal values of each property and the default value. A State is a
// block identifier plus concrete property values. States are plain values;
// every mutation returns a new State.
//
// Two blocks from different content sets never share a Definition, so
// moving a configured state onto another block goes through Project, which
// copies only the properties the target understands.
package blockstate

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/claustra01/yungsbettertfc/internal/ident"
)

// Property is one named property of a block definition.
type Property struct {
	Name    string   `json:"name" yaml:"name"`
	Values  []string `json:"values" yaml:"values"`
	Default string   `json:"default" yaml:"default"`
}

// Allows reports whether value is legal for the property.
func (p Property) Allows(value string) bool {
	return slices.Contains(p.Values, value)
}

// Definition is the state shape of a block.
type Definition struct {
	Block      ident.ID
	Properties []Property
}

// NewDefinition builds a definition. Properties keep their given order.
func NewDefinition(block ident.ID, props ...Property) *Definition {
	return &Definition{Block: block, Properties: props}
}

// Property returns the property named name.
func (d *Definition) Property(name string) (Property, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Has reports whether the definition declares property name.
func (d *Definition) Has(name string) bool {
	_, ok := d.Property(name)
	return ok
}

// Default returns the default state of the block.
func (d *Definition) Default() State {
	props := make(map[string]string, len(d.Properties))
	for _, p := range d.Properties {
		props[p.Name] = p.Default
	}
	return State{Block: d.Block, Props: props}
}

// Validate checks that every property is well formed.
func (d *Definition) Validate() error {
	seen := make(map[string]bool, len(d.Properties))
	for _, p := range d.Properties {
		if p.Name == "" {
			return fmt.Errorf("%s: property with empty name", d.Block)
		}
		if seen[p.Name] {
			return fmt.Errorf("%s: duplicate property %q", d.Block, p.Name)
		}
		seen[p.Name] = true
		if len(p.Values) == 0 {
			return fmt.Errorf("%s: property %q has no values", d.Block, p.Name)
		}
		if !p.Allows(p.Default) {
			return fmt.Errorf("%s: property %q default %q is not a legal value", d.Block, p.Name, p.Default)
		}
	}
	return nil
}

// With returns s with property name set to value.
//
// It fails with a *PropertyError when the definition does not declare the
// property or the value is not legal for it; s is returned unchanged.
func (d *Definition) With(s State, name, value string) (State, error) {
	p, ok := d.Property(name)
	if !ok {
		return s, &PropertyError{Block: d.Block, Property: name, Value: value, Code: ErrCodeUnknownProperty}
	}
	if !p.Allows(value) {
		return s, &PropertyError{Block: d.Block, Property: name, Value: value, Code: ErrCodeIllegalValue}
	}
	out := s.Clone()
	if out.Props == nil {
		out.Props = make(map[string]string, 1)
	}
	out.Props[name] = value
	return out, nil
}

// State is a configured block state.
type State struct {
	Block ident.ID          `json:"block"`
	Props map[string]string `json:"props,omitempty"`
}

// Of returns a state of block with the given properties.
func Of(block ident.ID, props map[string]string) State {
	return State{Block: block, Props: props}
}

// Get returns the value of property name.
func (s State) Get(name string) (string, bool) {
	v, ok := s.Props[name]
	return v, ok
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{Block: s.Block, Props: maps.Clone(s.Props)}
}

// Names returns the property names of s in sorted order.
func (s State) Names() []string {
	names := make([]string, 0, len(s.Props))
	for k := range s.Props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// IsAir reports whether s is one of the air blocks.
func (s State) IsAir() bool {
	if !s.Block.In(ident.Minecraft) {
		return false
	}
	switch s.Block.Path {
	case "air", "cave_air", "void_air":
		return true
	}
	return false
}

// Equal reports whether two states have the same block and properties.
func (s State) Equal(o State) bool {
	return s.Block == o.Block && maps.Equal(s.Props, o.Props)
}

// PropsKey encodes the properties as "k1=v1,k2=v2" in key order.
func (s State) PropsKey() string {
	names := s.Names()
	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, k+"="+s.Props[k])
	}
	return strings.Join(parts, ",")
}

// String renders s as "ns:path[k=v,...]".
func (s State) String() string {
	if len(s.Props) == 0 {
		return s.Block.String()
	}
	return s.Block.String() + "[" + s.PropsKey() + "]"
}

// Parse parses the String form of a state.
func Parse(text string) (State, error) {
	idText, rest, hasProps := strings.Cut(text, "[")
	id, err := ident.Parse(strings.TrimSpace(idText))
	if err != nil {
		return State{}, err
	}
	st := State{Block: id}
	if !hasProps {
		return st, nil
	}
	body, ok := strings.CutSuffix(rest, "]")
	if !ok {
		return State{}, fmt.Errorf("block state %q: missing closing bracket", text)
	}
	if strings.TrimSpace(body) == "" {
		return st, nil
	}
	st.Props = make(map[string]string)
	for _, pair := range strings.Split(body, ",") {
		k, v, ok := strings.Cut(pair, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return State{}, fmt.Errorf("block state %q: malformed property %q", text, pair)
		}
		st.Props[k] = v
	}
	return st, nil
}

// MustParse is Parse that panics on error.
func MustParse(text string) State {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}
