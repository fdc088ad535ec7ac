// Package nbt holds saved block-entity and entity data in its JSON shape:
// compounds are map[string]any, lists are []any, and scalars are strings,
// numbers and booleans.
package nbt

// Compound is a tag compound.
type Compound map[string]any

// Clone returns a deep copy of c. A nil compound clones to nil.
func (c Compound) Clone() Compound {
	if c == nil {
		return nil
	}
	out := make(Compound, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Compound:
		return val.Clone()
	case map[string]any:
		return Compound(val).Clone()
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return val
	}
}

// GetString returns the string stored at key.
func (c Compound) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

// GetCompound returns the compound stored at key.
func (c Compound) GetCompound(key string) (Compound, bool) {
	switch val := c[key].(type) {
	case Compound:
		return val, true
	case map[string]any:
		return Compound(val), true
	}
	return nil, false
}

// GetList returns the list stored at key.
func (c Compound) GetList(key string) ([]any, bool) {
	l, ok := c[key].([]any)
	return l, ok
}

// AsCompound converts a list element to a compound.
func AsCompound(v any) (Compound, bool) {
	switch val := v.(type) {
	case Compound:
		return val, true
	case map[string]any:
		return Compound(val), true
	}
	return nil, false
}

// Remove deletes keys from c.
func (c Compound) Remove(keys ...string) {
	for _, k := range keys {
		delete(c, k)
	}
}
