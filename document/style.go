package document

import (
	"maps"
	"reflect"
)

// Style maps attribute names to values, e.g. {"bold": true}.
type Style map[string]any

// Equal reports whether s and o hold the same attributes. Nil and empty are equal.
func (s Style) Equal(o Style) bool {
	if len(s) != len(o) {
		return false
	}
	for k, v := range s {
		w, ok := o[k]
		if !ok || !reflect.DeepEqual(v, w) {
			return false
		}
	}
	return true
}

// Merge returns s overridden by o. A nil value in o removes the attribute.
// The result is nil when no attribute remains.
func (s Style) Merge(o Style) Style {
	out := maps.Clone(s)
	if out == nil {
		out = Style{}
	}
	for k, v := range o {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Bool reports whether attribute name is set to true.
func (s Style) Bool(name string) bool {
	v, ok := s[name].(bool)
	return ok && v
}

// Overlay is the sparse style tree: only chunks with a style have an entry.
// An Overlay is treated as immutable; every update returns a new map.
type Overlay map[ChunkKey]Style

// At returns the style of the chunk at k, or nil.
func (o Overlay) At(k ChunkKey) Style {
	return o[k]
}

// with returns a copy of o with k set to s, or removed when s is empty.
func (o Overlay) with(k ChunkKey, s Style) Overlay {
	out := maps.Clone(o)
	if out == nil {
		out = Overlay{}
	}
	if len(s) == 0 {
		delete(out, k)
	} else {
		out[k] = s
	}
	return out
}
