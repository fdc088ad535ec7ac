package registry

import (
	"strconv"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
)

// Property shapes shared by many blocks.

var (
	boolValues       = []string{"true", "false"}
	horizontalFacing = []string{"north", "south", "west", "east"}
	axes             = []string{"x", "y", "z"}
	horizontalAxes   = []string{"x", "z"}
	wallSides        = []string{"none", "low", "tall"}
)

func boolProp(name string) blockstate.Property {
	return blockstate.Property{Name: name, Values: boolValues, Default: "false"}
}

func enumProp(name string, values []string) blockstate.Property {
	return blockstate.Property{Name: name, Values: values, Default: values[0]}
}

func rangeProp(name string, lo, hi int) blockstate.Property {
	values := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		values = append(values, strconv.Itoa(i))
	}
	return blockstate.Property{Name: name, Values: values, Default: values[0]}
}

func facingProp() blockstate.Property {
	return enumProp("facing", horizontalFacing)
}

func waterlogged() blockstate.Property {
	return boolProp("waterlogged")
}

func cubeShape() []blockstate.Property {
	return nil
}

func axisShape() []blockstate.Property {
	return []blockstate.Property{{Name: "axis", Values: axes, Default: "y"}}
}

func stairsShape() []blockstate.Property {
	return []blockstate.Property{
		facingProp(),
		{Name: "half", Values: []string{"top", "bottom"}, Default: "bottom"},
		enumProp("shape", []string{"straight", "inner_left", "inner_right", "outer_left", "outer_right"}),
		waterlogged(),
	}
}

func slabShape() []blockstate.Property {
	return []blockstate.Property{
		{Name: "type", Values: []string{"top", "bottom", "double"}, Default: "bottom"},
		waterlogged(),
	}
}

func wallShape() []blockstate.Property {
	return []blockstate.Property{
		enumProp("north", wallSides),
		enumProp("east", wallSides),
		enumProp("south", wallSides),
		enumProp("west", wallSides),
		{Name: "up", Values: boolValues, Default: "true"},
		waterlogged(),
	}
}

func paneShape() []blockstate.Property {
	return []blockstate.Property{
		boolProp("north"), boolProp("east"), boolProp("south"), boolProp("west"), waterlogged(),
	}
}

func fenceGateShape() []blockstate.Property {
	return []blockstate.Property{facingProp(), boolProp("in_wall"), boolProp("open"), boolProp("powered")}
}

func doorShape() []blockstate.Property {
	return []blockstate.Property{
		facingProp(),
		{Name: "half", Values: []string{"upper", "lower"}, Default: "lower"},
		enumProp("hinge", []string{"left", "right"}),
		boolProp("open"),
		boolProp("powered"),
	}
}

func trapdoorShape() []blockstate.Property {
	return []blockstate.Property{
		facingProp(),
		{Name: "half", Values: []string{"top", "bottom"}, Default: "bottom"},
		boolProp("open"),
		boolProp("powered"),
		waterlogged(),
	}
}

func buttonShape() []blockstate.Property {
	return []blockstate.Property{
		{Name: "face", Values: []string{"floor", "wall", "ceiling"}, Default: "wall"},
		facingProp(),
		boolProp("powered"),
	}
}

func pressurePlateShape() []blockstate.Property {
	return []blockstate.Property{boolProp("powered")}
}

func signShape() []blockstate.Property {
	return []blockstate.Property{rangeProp("rotation", 0, 15), waterlogged()}
}

func wallSignShape() []blockstate.Property {
	return []blockstate.Property{facingProp(), waterlogged()}
}

func chestShape() []blockstate.Property {
	return []blockstate.Property{
		facingProp(),
		enumProp("type", []string{"single", "left", "right"}),
		waterlogged(),
	}
}

func lecternShape() []blockstate.Property {
	return []blockstate.Property{facingProp(), boolProp("has_book"), boolProp("powered")}
}

func chainShape() []blockstate.Property {
	return append(axisShape(), waterlogged())
}

func firepitShape() []blockstate.Property {
	return []blockstate.Property{
		{Name: "axis", Values: horizontalAxes, Default: "x"},
		boolProp("lit"),
	}
}

func wallTorchShape() []blockstate.Property {
	return []blockstate.Property{facingProp()}
}

func candleShape() []blockstate.Property {
	return []blockstate.Property{rangeProp("candles", 1, 4), boolProp("lit"), waterlogged()}
}

func candleCakeShape() []blockstate.Property {
	return []blockstate.Property{boolProp("lit")}
}

func seaPickleShape() []blockstate.Property {
	return []blockstate.Property{rangeProp("pickles", 1, 4), {Name: "waterlogged", Values: boolValues, Default: "true"}}
}

func largeVesselShape() []blockstate.Property {
	return []blockstate.Property{boolProp("sealed")}
}

func fluidShape() []blockstate.Property {
	return []blockstate.Property{rangeProp("level", 0, 15)}
}

func eelGrassShape() []blockstate.Property {
	return []blockstate.Property{rangeProp("age", 0, 3), {Name: "fluid", Values: []string{"salt_water", "water"}, Default: "salt_water"}}
}
