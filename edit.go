package cfgdoc

import (
	"github.com/iancoleman/orderedmap"
)

// RawEdit is one submitted edit before typing: either a scalar string
// or, for multi-valued fields, a list of strings. Which shape is
// meant is carried by IsArray, never inferred from the content.
type RawEdit struct {
	Scalar  string
	Items   []string
	IsArray bool
}

func ScalarEdit(value string) RawEdit {
	return RawEdit{Scalar: value}
}

func ArrayEdit(items ...string) RawEdit {
	return RawEdit{Items: items, IsArray: true}
}

// EditSet is an insertion-ordered collection of raw edits keyed by
// dotted path. Setting an existing path overwrites the edit in place
// without changing its position.
type EditSet struct {
	om *orderedmap.OrderedMap
}

func NewEditSet() *EditSet {
	return &EditSet{om: orderedmap.New()}
}

func (e *EditSet) Set(path string, edit RawEdit) {
	e.om.Set(path, edit)
}

func (e *EditSet) SetScalar(path, value string) {
	e.Set(path, ScalarEdit(value))
}

func (e *EditSet) SetArray(path string, items ...string) {
	e.Set(path, ArrayEdit(items...))
}

func (e *EditSet) Get(path string) (RawEdit, bool) {
	v, ok := e.om.Get(path)
	if !ok {
		return RawEdit{}, false
	}
	return v.(RawEdit), true
}

func (e *EditSet) Len() int {
	return len(e.om.Keys())
}

// Paths returns the edit paths in insertion order.
func (e *EditSet) Paths() []string {
	return e.om.Keys()
}
