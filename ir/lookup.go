package ir

import (
	"strconv"

	"github.com/cfgdoc/cfgdoc/ir/fieldpath"
)

// Lookup resolves path against the tree rooted at node and returns the
// addressed node. A nil path addresses node itself. Anything missing
// along the way, a descent through a scalar, or a non-final attribute
// segment reports ok=false, never an error: the diff engine treats
// absent paths as editable-from-empty.
//
// Numeric segments address array positions, and fall back to the
// literal key on objects; key segments made of digits address array
// positions. This mirrors the positional-key navigation the path
// syntax is defined against.
//
// The returned node is shared with the tree, not a copy.
func Lookup(node *Node, p *fieldpath.Path) (*Node, bool) {
	if node == nil {
		return nil, false
	}
	res := node
	for ; p != nil; p = p.Next {
		switch {
		case p.Attr != nil:
			if p.Next != nil || res.Type != ElementType {
				return nil, false
			}
			v := res.Attr(*p.Attr)
			if v == nil {
				return nil, false
			}
			res = v

		case p.Index != nil:
			switch res.Type {
			case ArrayType:
				idx := *p.Index
				if idx < 0 || idx >= len(res.Values) {
					return nil, false
				}
				res = res.Values[idx]
			case ObjectType, ElementType:
				v := Get(res, strconv.Itoa(*p.Index))
				if v == nil {
					return nil, false
				}
				res = v
			default:
				return nil, false
			}

		case p.Key != nil:
			switch res.Type {
			case ObjectType, ElementType:
				v := Get(res, *p.Key)
				if v == nil {
					return nil, false
				}
				res = v
			case ArrayType:
				idx, err := strconv.Atoi(*p.Key)
				if err != nil || idx < 0 || idx >= len(res.Values) {
					return nil, false
				}
				res = res.Values[idx]
			default:
				return nil, false
			}

		default:
			return nil, false
		}
	}
	return res, true
}
