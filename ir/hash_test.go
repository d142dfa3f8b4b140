package ir

import (
	"testing"
)

func TestHashEqualTrees(t *testing.T) {
	build := func() *Node {
		return FromKeyVals([]KeyVal{
			{"server", FromKeyVals([]KeyVal{
				{"host", FromString("localhost")},
				{"port", FromInt(8080)},
			})},
			{"tags", FromSlice([]*Node{FromString("a"), Null()})},
			{"conn", elem([]KeyVal{{"host", FromString("db1")}}, "text", nil)},
		})
	}

	a, b := build(), build()
	if a.Hash() != b.Hash() {
		t.Error("independently built equal trees should hash equal")
	}
	if a.Hash() != a.Clone().Hash() {
		t.Error("a clone should hash equal to its original")
	}
	// Parent backlinks do not contribute.
	if Get(a, "server").Hash() != build().Values[0].Hash() {
		t.Error("hash should ignore tree position")
	}
}

func TestHashDistinguishes(t *testing.T) {
	nodes := map[string]*Node{
		"null":         Null(),
		"false":        FromBool(false),
		"one":          FromInt(1),
		"one string":   FromString("1"),
		"empty string": FromString(""),
		"empty array":  FromSlice(nil),
		"empty object": Object(),
		"object a:1":   FromKeyVals([]KeyVal{{"a", FromInt(1)}}),
		"object b:1":   FromKeyVals([]KeyVal{{"b", FromInt(1)}}),
		"order ab": FromKeyVals([]KeyVal{
			{"a", FromInt(1)}, {"b", FromInt(2)},
		}),
		"order ba": FromKeyVals([]KeyVal{
			{"b", FromInt(2)}, {"a", FromInt(1)},
		}),
	}

	seen := map[uint64]string{}
	for name, n := range nodes {
		h := n.Hash()
		if prev, ok := seen[h]; ok {
			t.Errorf("%s and %s share hash %d", prev, name, h)
		}
		seen[h] = name
	}
}
