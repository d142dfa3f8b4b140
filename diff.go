package cfgdoc

import (
	"strconv"

	"github.com/cfgdoc/cfgdoc/debug"
	"github.com/cfgdoc/cfgdoc/ir"
	"github.com/cfgdoc/cfgdoc/ir/fieldpath"
)

// ExtractChanges compares submitted edits against the tree they were
// made on and returns the edits that actually changed something, in
// submission order, with values typed to match the original node.
//
// Scalar edits against a boolean keep their boolean nature: "true" and
// "on" mean true, anything else false, so an explicitly submitted
// "false" still produces a change when the original was true. Edits
// against a number are parsed; a literal that does not parse falls
// back to a string so a bad form value never drops the edit. Edits
// whose path has no node in the original always become changes,
// carrying plain strings.
//
// Array edits replace the whole array. An absent or non-array
// original counts as empty, and the change is emitted when lengths or
// any positional stringified item differ.
//
// Unchecked checkboxes are invisible in form data, so the caller must
// submit them as explicit "false" edits; absence is never inferred
// here.
func ExtractChanges(original *ir.Node, edits *EditSet) []Change {
	if edits == nil {
		return nil
	}
	var changes []Change
	for _, raw := range edits.Paths() {
		edit, _ := edits.Get(raw)
		path := fieldpath.Parse(raw)
		node, found := ir.Lookup(original, path)
		var val *ir.Node
		if edit.IsArray {
			if !arrayChanged(node, edit.Items) {
				continue
			}
			items := make([]*ir.Node, 0, len(edit.Items))
			for _, item := range edit.Items {
				items = append(items, ir.FromString(item))
			}
			val = ir.FromSlice(items)
		} else {
			if found {
				val = coerceToOriginal(node, edit.Scalar)
				if ir.Stringify(node) == ir.Stringify(val) {
					continue
				}
			} else {
				val = ir.FromString(edit.Scalar)
			}
		}
		if debug.Diff() {
			debug.Logf("diff: %s changed to %v\n", path, val)
		}
		changes = append(changes, Change{Path: path, Value: val})
	}
	return changes
}

// arrayChanged compares a submitted array snapshot against the
// original positionally by stringified value. A missing or non-array
// original counts as empty.
func arrayChanged(original *ir.Node, items []string) bool {
	var orig []*ir.Node
	if original != nil && original.Type == ir.ArrayType {
		orig = original.Values
	}
	if len(orig) != len(items) {
		return true
	}
	for i, item := range items {
		if ir.Stringify(orig[i]) != item {
			return true
		}
	}
	return false
}

// coerceToOriginal types a submitted scalar after the node it
// replaces.
func coerceToOriginal(original *ir.Node, raw string) *ir.Node {
	switch original.Type {
	case ir.BoolType:
		return ir.FromBool(raw == "true" || raw == "on")
	case ir.NumberType:
		if _, err := strconv.ParseFloat(raw, 64); err == nil && raw != "" {
			return ir.FromNumberText(raw)
		}
		return ir.FromString(raw)
	default:
		return ir.FromString(raw)
	}
}
