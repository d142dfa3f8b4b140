package cfgdoc

import (
	"strconv"

	"github.com/cfgdoc/cfgdoc/debug"
	"github.com/cfgdoc/cfgdoc/ir"
	"github.com/cfgdoc/cfgdoc/ir/fieldpath"
)

// ApplyChanges applies changes to a clone of original, in list order,
// and returns the new tree. The original is never mutated, and on
// error no partial result escapes.
//
// Walking a change's path creates missing object levels as empty
// objects. Arrays are never auto-extended: an index at or past the
// end fails. Any path that cannot reach a settable location, such as
// one that descends through a scalar, fails the whole call with
// PathNotFound for that path.
func ApplyChanges(original *ir.Node, changes []Change) (*ir.Node, error) {
	if original == nil {
		if len(changes) == 0 {
			return nil, nil
		}
		return nil, &ir.PathNotFoundError{Path: changes[0].Path.String()}
	}
	doc := original.Clone()
	for _, ch := range changes {
		if err := applyChange(doc, ch); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func applyChange(doc *ir.Node, ch Change) error {
	if ch.Path == nil || ch.Value == nil {
		return &ir.PathNotFoundError{Path: ch.Path.String()}
	}
	if debug.Patch() {
		debug.Logf("patch: set %s to %v\n", ch.Path, ch.Value)
	}
	node := doc
	for p := ch.Path; p != nil; p = p.Next {
		if p.Next == nil {
			if !setLeaf(node, p, ch.Value.Clone()) {
				return &ir.PathNotFoundError{Path: ch.Path.String()}
			}
			return nil
		}
		next, ok := descend(node, p)
		if !ok {
			return &ir.PathNotFoundError{Path: ch.Path.String()}
		}
		node = next
	}
	return nil
}

// descend resolves one intermediate segment. Attribute segments are
// final-only, so they never descend.
func descend(node *ir.Node, seg *fieldpath.Path) (*ir.Node, bool) {
	switch {
	case seg.Attr != nil:
		return nil, false
	case seg.Key != nil:
		return descendField(node, *seg.Key)
	case seg.Index != nil:
		return descendIndex(node, *seg.Index)
	}
	return nil, false
}

func descendField(node *ir.Node, key string) (*ir.Node, bool) {
	switch node.Type {
	case ir.ObjectType, ir.ElementType:
		child := ir.Get(node, key)
		if child == nil {
			child = ir.Object()
			ir.Set(node, key, child)
			return child, true
		}
		if child.Type.IsContainer() {
			return child, true
		}
		return nil, false
	case ir.ArrayType:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			return nil, false
		}
		return descendIndex(node, idx)
	}
	return nil, false
}

func descendIndex(node *ir.Node, idx int) (*ir.Node, bool) {
	switch node.Type {
	case ir.ArrayType:
		if idx < 0 || idx >= len(node.Values) {
			return nil, false
		}
		child := node.Values[idx]
		if child != nil && child.Type.IsContainer() {
			return child, true
		}
		return nil, false
	case ir.ObjectType, ir.ElementType:
		// Numeric segments address objects by decimal key.
		return descendField(node, strconv.Itoa(idx))
	}
	return nil, false
}

func setLeaf(node *ir.Node, seg *fieldpath.Path, val *ir.Node) bool {
	switch {
	case seg.Attr != nil:
		if node.Type != ir.ElementType {
			return false
		}
		node.SetAttr(*seg.Attr, val)
		return true
	case seg.Key != nil:
		switch node.Type {
		case ir.ObjectType, ir.ElementType:
			ir.Set(node, *seg.Key, val)
			return true
		case ir.ArrayType:
			idx, err := strconv.Atoi(*seg.Key)
			if err != nil || idx < 0 || idx >= len(node.Values) {
				return false
			}
			setIndex(node, idx, val)
			return true
		}
		return false
	case seg.Index != nil:
		switch node.Type {
		case ir.ArrayType:
			if *seg.Index < 0 || *seg.Index >= len(node.Values) {
				return false
			}
			setIndex(node, *seg.Index, val)
			return true
		case ir.ObjectType, ir.ElementType:
			ir.Set(node, strconv.Itoa(*seg.Index), val)
			return true
		}
		return false
	}
	return false
}

func setIndex(arr *ir.Node, idx int, val *ir.Node) {
	val.Parent = arr
	val.ParentIndex = idx
	val.ParentField = ""
	arr.Values[idx] = val
}
