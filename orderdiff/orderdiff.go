// Package orderdiff computes ordered edit scripts over key sequences.
//
// Keys from both sequences are interned as runes and handed to
// diffmatchpatch, which produces a minimal insert/delete script that
// respects order. Tree diffing uses the script to line up object
// fields without assuming either side is sorted.
package orderdiff

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type OpKind int

const (
	Keep OpKind = iota
	Insert
	Delete
)

func (k OpKind) String() string {
	switch k {
	case Keep:
		return "keep"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "invalid"
	}
}

// Op is one step of an edit script. Keep means the key appears in both
// sequences, Insert means it appears only in the target, Delete only
// in the source.
type Op struct {
	Kind OpKind
	Key  string
}

// Keys diffs two key sequences and returns the edit script in order.
// Keep ops consume one key from each side, Delete ops consume from the
// source, Insert ops from the target.
func Keys(from, to []string) []Op {
	keyMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapKeysTo(keyMap, runeMap, from)
	toRunes := mapKeysTo(keyMap, runeMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	var ops []Op
	for i := range diffs {
		diff := &diffs[i]
		var kind OpKind
		switch diff.Type {
		case diffpatch.DiffDelete:
			kind = Delete
		case diffpatch.DiffInsert:
			kind = Insert
		default:
			kind = Keep
		}
		for _, r := range diff.Text {
			ops = append(ops, Op{Kind: kind, Key: runeMap[r]})
		}
	}
	return ops
}

func mapKeysTo(m map[string]rune, im map[rune]string, keys []string) []rune {
	rs := make([]rune, len(keys))
	for i, k := range keys {
		r, ok := m[k]
		if !ok {
			r = rune(len(m))
			m[k] = r
			im[r] = k
		}
		rs[i] = r
	}
	return rs
}
