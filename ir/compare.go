package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareEntries(a, b)
	case ElementType:
		return compareElements(a, b)
	case NullType:
		return 0
	}
	return 0
}

// Equal reports structural equality, ignoring parent backlinks.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Array < Object < Element
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case ArrayType:
		return 4
	case ObjectType:
		return 5
	case ElementType:
		return 6
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	if c := cmp.Compare(a.Float(), b.Float()); c != 0 {
		return c
	}
	// Same numeric value: fall back to the literal so 1 and 1.0
	// remain distinguishable for lossless round-trips.
	return strings.Compare(a.NumberText(), b.NumberText())
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// compareEntries orders by key then value, entry by entry in insertion
// order. Insertion order is significant: two objects with the same
// entries in different order differ.
func compareEntries(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareElements(a, b *Node) int {
	lenA := len(a.AttrNames)
	lenB := len(b.AttrNames)
	minLen := min(lenA, lenB)
	for i := 0; i < minLen; i++ {
		if c := strings.Compare(a.AttrNames[i], b.AttrNames[i]); c != 0 {
			return c
		}
		if c := Compare(a.AttrValues[i], b.AttrValues[i]); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(lenA, lenB); c != 0 {
		return c
	}
	if c := strings.Compare(a.Text, b.Text); c != 0 {
		return c
	}
	return compareEntries(a, b)
}
