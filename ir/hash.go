package ir

import (
	"encoding/binary"
	"hash/maphash"
)

// Shared seed so equal trees hash equal within a process. Hashes are
// not stable across runs.
var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit structural hash of the node, covering the same
// facets Compare does. Equal trees hash equal; parent backlinks are
// ignored. It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)
	n.hashTo(&h)
	return h.Sum64()
}

func (n *Node) hashTo(h *maphash.Hash) {
	h.WriteByte(byte(n.Type))

	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		h.WriteString(n.NumberText())
	case StringType:
		h.WriteString(n.String)
	case ArrayType:
		var b [8]byte
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case ObjectType, ElementType:
		var b [8]byte
		for i := range n.AttrNames {
			h.WriteString(n.AttrNames[i])
			binary.LittleEndian.PutUint64(b[:], n.AttrValues[i].Hash())
			h.Write(b[:])
		}
		h.WriteString(n.Text)
		for i, field := range n.Fields {
			binary.LittleEndian.PutUint64(b[:], field.Hash())
			h.Write(b[:])
			binary.LittleEndian.PutUint64(b[:], n.Values[i].Hash())
			h.Write(b[:])
		}
	}
}
