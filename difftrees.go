package cfgdoc

import (
	"github.com/cfgdoc/cfgdoc/ir"
	"github.com/cfgdoc/cfgdoc/ir/fieldpath"
	"github.com/cfgdoc/cfgdoc/orderdiff"
)

// DiffTrees computes the changes that turn from into to. Matching
// object fields recurse; fields present only in to become changes at
// their path. Anything ApplyChanges cannot express as a path set,
// meaning field removals, reorders, element text changes, and any
// array difference, collapses to one change replacing the nearest
// enclosing container. A change with a nil path means the documents
// differ at the root.
func DiffTrees(from, to *ir.Node) []Change {
	var changes []Change
	diffNodes(nil, from, to, &changes)
	return changes
}

func diffNodes(path *fieldpath.Path, from, to *ir.Node, out *[]Change) {
	if from == nil && to == nil {
		return
	}
	if from == nil || to == nil {
		val := ir.Null()
		if to != nil {
			val = to.Clone()
		}
		*out = append(*out, Change{Path: path, Value: val})
		return
	}
	if nodesEqual(from, to) {
		return
	}
	if from.Type != to.Type {
		*out = append(*out, Change{Path: path, Value: to.Clone()})
		return
	}
	switch from.Type {
	case ir.ObjectType:
		diffObjects(path, from, to, out)
	case ir.ElementType:
		diffElements(path, from, to, out)
	default:
		// Scalars replace directly, arrays wholesale.
		*out = append(*out, Change{Path: path, Value: to.Clone()})
	}
}

// nodesEqual compares with a hash fast path. Differing hashes prove
// inequality; equal hashes are confirmed structurally.
func nodesEqual(a, b *ir.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Hash() != b.Hash() {
		return false
	}
	return ir.Equal(a, b)
}

func diffObjects(path *fieldpath.Path, from, to *ir.Node, out *[]Change) {
	ops := orderdiff.Keys(fieldNames(from), fieldNames(to))
	for _, op := range ops {
		if op.Kind == orderdiff.Delete {
			*out = append(*out, Change{Path: path, Value: to.Clone()})
			return
		}
	}
	emitOps(path, from, to, ops, out)
}

func diffElements(path *fieldpath.Path, from, to *ir.Node, out *[]Change) {
	wholesale := from.Text != to.Text
	if !wholesale {
		for _, an := range from.AttrNames {
			if to.Attr(an) == nil {
				wholesale = true
				break
			}
		}
	}
	ops := orderdiff.Keys(fieldNames(from), fieldNames(to))
	if !wholesale {
		for _, op := range ops {
			if op.Kind == orderdiff.Delete {
				wholesale = true
				break
			}
		}
	}
	if wholesale {
		*out = append(*out, Change{Path: path, Value: to.Clone()})
		return
	}
	for i, an := range to.AttrNames {
		fv := from.Attr(an)
		tv := to.AttrValues[i]
		if fv == nil || !nodesEqual(fv, tv) {
			*out = append(*out, Change{Path: path.Append(fieldpath.Attr(an)), Value: tv.Clone()})
		}
	}
	emitOps(path, from, to, ops, out)
}

// emitOps walks a removal-free edit script: kept keys recurse, inserted
// keys become changes carrying the whole new subtree.
func emitOps(path *fieldpath.Path, from, to *ir.Node, ops []orderdiff.Op, out *[]Change) {
	for _, op := range ops {
		switch op.Kind {
		case orderdiff.Keep:
			diffNodes(path.Append(fieldpath.Key(op.Key)), ir.Get(from, op.Key), ir.Get(to, op.Key), out)
		case orderdiff.Insert:
			val := ir.Get(to, op.Key)
			if val == nil {
				val = ir.Null()
			} else {
				val = val.Clone()
			}
			*out = append(*out, Change{Path: path.Append(fieldpath.Key(op.Key)), Value: val})
		}
	}
}

func fieldNames(n *ir.Node) []string {
	names := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		names[i] = f.String
	}
	return names
}
