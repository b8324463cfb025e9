// Package tag provides compound-tag trees: loosely typed, JSON-compatible
// key/value data attached to stacks and entities. Accessors never fail; a
// missing key or a value of the wrong type yields the caller's default.
package tag

import "encoding/json"

type Compound map[string]any

// Int reads an integer, accepting any numeric width JSON decoding may have
// produced.
func (c Compound) Int(key string, def int) int {
	if c == nil {
		return def
	}
	switch v := c[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return def
}

func (c Compound) Float(key string, def float64) float64 {
	if c == nil {
		return def
	}
	switch v := c[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return def
}

func (c Compound) Bool(key string, def bool) bool {
	if c == nil {
		return def
	}
	if v, ok := c[key].(bool); ok {
		return v
	}
	return def
}

func (c Compound) String(key string, def string) string {
	if c == nil {
		return def
	}
	if v, ok := c[key].(string); ok {
		return v
	}
	return def
}

// Compound returns a nested compound, or nil when the key is absent or not
// a compound. The nil result is itself safe to read from.
func (c Compound) Compound(key string) Compound {
	if c == nil {
		return nil
	}
	switch v := c[key].(type) {
	case Compound:
		return v
	case map[string]any:
		return Compound(v)
	}
	return nil
}

func (c Compound) List(key string) []any {
	if c == nil {
		return nil
	}
	if v, ok := c[key].([]any); ok {
		return v
	}
	return nil
}

func (c Compound) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c[key]
	return ok
}

func (c Compound) Set(key string, v any) Compound {
	if c == nil {
		c = Compound{}
	}
	c[key] = v
	return c
}

func (c Compound) Delete(key string) {
	if c != nil {
		delete(c, key)
	}
}

// Copy deep-copies the tree. Nested compounds and lists are copied; scalar
// leaves are shared by value.
func (c Compound) Copy() Compound {
	if c == nil {
		return nil
	}
	out := make(Compound, len(c))
	for k, v := range c {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case Compound:
		return t.Copy()
	case map[string]any:
		return Compound(t).Copy()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

// Equal compares two trees structurally, tolerating the int/float64 split
// JSON decoding introduces.
func Equal(a, b Compound) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !equalValue(av, bv) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	switch at := a.(type) {
	case Compound:
		return equalCompound(at, b)
	case map[string]any:
		return equalCompound(Compound(at), b)
	case []any:
		bt, ok := b.([]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !equalValue(at[i], bt[i]) {
				return false
			}
		}
		return true
	case int:
		return numEqual(float64(at), b)
	case int64:
		return numEqual(float64(at), b)
	case float64:
		return numEqual(at, b)
	default:
		return a == b
	}
}

func equalCompound(a Compound, b any) bool {
	switch bt := b.(type) {
	case Compound:
		return Equal(a, bt)
	case map[string]any:
		return Equal(a, Compound(bt))
	}
	return false
}

func numEqual(a float64, b any) bool {
	switch bt := b.(type) {
	case int:
		return a == float64(bt)
	case int64:
		return a == float64(bt)
	case float64:
		return a == bt
	}
	return false
}
