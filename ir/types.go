package ir

// Type discriminates the value held by a Node.
type Type int

const (
	InvalidType Type = iota
	NullType
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
	// ElementType is the XML specialization: attributes, tagged
	// children, and optional text, with a derived Kind flag set.
	ElementType
)

func (t Type) String() string {
	switch t {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case ArrayType:
		return "array"
	case ObjectType:
		return "object"
	case ElementType:
		return "element"
	default:
		return "invalid"
	}
}

// IsScalar reports whether t is one of the four scalar types.
func (t Type) IsScalar() bool {
	switch t {
	case NullType, BoolType, NumberType, StringType:
		return true
	}
	return false
}

// IsContainer reports whether nodes of type t own child values.
func (t Type) IsContainer() bool {
	switch t {
	case ArrayType, ObjectType, ElementType:
		return true
	}
	return false
}

// Kind is the derived facet set of an element node. It is recomputed by
// ReKind whenever attributes, children, or text change and is never set
// independently. A Kind of 0 means a true empty element.
type Kind uint8

const (
	HasAttributes Kind = 1 << iota
	HasChildren
	HasText
)

func (k Kind) Has(flag Kind) bool {
	return k&flag != 0
}

func (k Kind) String() string {
	if k == 0 {
		return "empty"
	}
	s := ""
	if k.Has(HasAttributes) {
		s += "+attributes"
	}
	if k.Has(HasChildren) {
		s += "+children"
	}
	if k.Has(HasText) {
		s += "+text"
	}
	return s[1:]
}
