package blockstate

// Outcome records what happened to one source property during Project.
type Outcome struct {
	Property string
	Value    string
	// Err is nil when the value was applied.
	Err error
}

// Applied reports whether the property made it onto the target.
func (o Outcome) Applied() bool {
	return o.Err == nil
}

// Project copies same-named properties from src onto the default state of
// target. Properties the target does not declare, or whose value it does
// not accept, are skipped. Outcomes are returned in property name order.
func Project(src State, target *Definition) (State, []Outcome) {
	return ProjectOnto(src, target, target.Default())
}

// ProjectOnto is Project starting from an explicit base state of target.
func ProjectOnto(src State, target *Definition, base State) (State, []Outcome) {
	out := base
	names := src.Names()
	outcomes := make([]Outcome, 0, len(names))
	for _, name := range names {
		value := src.Props[name]
		next, err := target.With(out, name, value)
		outcomes = append(outcomes, Outcome{Property: name, Value: value, Err: err})
		if err != nil {
			continue
		}
		out = next
	}
	return out, outcomes
}

// Property names involved in the facing to axis transform.
const (
	PropFacing         = "facing"
	PropAxis           = "axis"
	PropHorizontalAxis = "horizontal_axis"
)

// AxisFromFacing converts a horizontal facing on src into the axis it
// implies and sets it on dst. horizontal_axis is preferred over axis. dst is
// returned unchanged when src has no horizontal facing or target has
// neither axis property.
func AxisFromFacing(src State, target *Definition, dst State) State {
	facing, ok := src.Get(PropFacing)
	if !ok {
		return dst
	}
	var axis string
	switch facing {
	case "north", "south":
		axis = "z"
	case "east", "west":
		axis = "x"
	default:
		return dst
	}
	for _, prop := range []string{PropHorizontalAxis, PropAxis} {
		if !target.Has(prop) {
			continue
		}
		if next, err := target.With(dst, prop, axis); err == nil {
			return next
		}
		return dst
	}
	return dst
}
