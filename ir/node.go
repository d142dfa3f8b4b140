package ir

import (
	"maps"
	"math"
	"slices"
	"strconv"
)

// Node is a single value in a parsed configuration document. It is a
// recursive tagged union: Type selects which fields are meaningful.
//
// Objects keep their entries in Fields (string-typed key nodes) and
// Values as parallel slices, preserving insertion order. Elements use
// the same slices for tagged children and additionally carry ordered
// attributes, optional text, and the derived Kind facet set.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	// Element facets. Attributes are parallel slices in document
	// order; Kind is derived, see ReKind.
	AttrNames  []string
	AttrValues []*Node
	Text       string
	Kind       Kind

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

// CloneTo deep-copies y into dst, re-parenting all children to their
// copies. dst keeps y's own parent backlinks so a clone can stand in
// for the original at the same tree position.
func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}

	if len(y.AttrNames) > 0 {
		dst.AttrNames = slices.Clone(y.AttrNames)
		dst.AttrValues = make([]*Node, len(y.AttrValues))
		for i, av := range y.AttrValues {
			dstA := &Node{}
			av.CloneTo(dstA)
			dstA.Parent = dst
			dstA.ParentIndex = i
			dstA.ParentField = y.AttrNames[i]
			dst.AttrValues[i] = dstA
		}
	}
	dst.Text = y.Text
	dst.Kind = y.Kind

	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

// FromNumberText builds a number node keeping the original literal, so
// lossless round-trips can reproduce the textual width (1 vs 1.0).
func FromNumberText(text string) *Node {
	n := &Node{
		Type:   NumberType,
		Number: text,
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		n.Int64 = &i
		return n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		n.Float64 = &f
	}
	return n
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// Object returns an empty object node.
func Object() *Node {
	return &Node{Type: ObjectType}
}

// Element returns an empty element node (Kind 0, serializes
// self-closing until facets are added).
func Element() *Node {
	return &Node{Type: ElementType}
}

func FromMap(yMap map[string]*Node) *Node {
	res := &Node{}
	res.Type = ObjectType
	res.Fields = make([]*Node, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		y := yMap[key]
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = key
		yField := &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: key,
			Type:        StringType,
			String:      key,
		}
		res.Fields[i] = yField
		res.Values[i] = y
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object preserving the given entry order.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, 0, len(kvs))
	res.Values = make([]*Node, 0, len(kvs))
	for i := range kvs {
		Set(res, kvs[i].Key, kvs[i].Val)
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

// Get returns the value under field in an object or element, nil when
// absent.
func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Set inserts or overwrites field in an object or element. An existing
// key keeps its original position; a new key appends. The value is
// re-parented to y.
func Set(y *Node, field string, val *Node) {
	for i := range y.Fields {
		if y.Fields[i].String != field {
			continue
		}
		val.Parent = y
		val.ParentIndex = i
		val.ParentField = field
		y.Values[i] = val
		return
	}
	i := len(y.Fields)
	yField := &Node{
		Parent:      y,
		ParentIndex: i,
		ParentField: field,
		Type:        StringType,
		String:      field,
	}
	val.Parent = y
	val.ParentIndex = i
	val.ParentField = field
	y.Fields = append(y.Fields, yField)
	y.Values = append(y.Values, val)
	if y.Type == ElementType {
		y.ReKind()
	}
}

// Attr returns the attribute value named name, nil when absent.
func (y *Node) Attr(name string) *Node {
	for i := range y.AttrNames {
		if y.AttrNames[i] == name {
			return y.AttrValues[i]
		}
	}
	return nil
}

// SetAttr inserts or overwrites an attribute. An existing name keeps
// its position; a new name appends in document order.
func (y *Node) SetAttr(name string, val *Node) {
	val.Parent = y
	val.ParentField = name
	for i := range y.AttrNames {
		if y.AttrNames[i] != name {
			continue
		}
		val.ParentIndex = i
		y.AttrValues[i] = val
		y.ReKind()
		return
	}
	val.ParentIndex = len(y.AttrNames)
	y.AttrNames = append(y.AttrNames, name)
	y.AttrValues = append(y.AttrValues, val)
	y.ReKind()
}

// SetText sets an element's text facet and recomputes Kind.
func (y *Node) SetText(text string) {
	y.Text = text
	y.ReKind()
}

// ReKind recomputes the derived Kind facet set from the element's
// current attributes, children, and text. Kind must never be written
// directly.
func (y *Node) ReKind() {
	k := Kind(0)
	if len(y.AttrNames) > 0 {
		k |= HasAttributes
	}
	if len(y.Fields) > 0 {
		k |= HasChildren
	}
	if y.Text != "" {
		k |= HasText
	}
	y.Kind = k
}

// NumberText returns the textual form of a number node, preferring the
// original literal when one was kept.
func (y *Node) NumberText() string {
	if y.Number != "" {
		return y.Number
	}
	if y.Int64 != nil {
		return strconv.FormatInt(*y.Int64, 10)
	}
	if y.Float64 != nil {
		return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
	}
	return "0"
}

// Float returns the numeric value of a number node.
func (y *Node) Float() float64 {
	if y.Int64 != nil {
		return float64(*y.Int64)
	}
	if y.Float64 != nil {
		return *y.Float64
	}
	f, err := strconv.ParseFloat(y.Number, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Stringify renders a node the way the diff engine compares values:
// scalars as their literal text, containers as compact JSON. A nil node
// renders as the empty string.
func Stringify(y *Node) string {
	if y == nil {
		return ""
	}
	switch y.Type {
	case NullType:
		return "null"
	case BoolType:
		return strconv.FormatBool(y.Bool)
	case NumberType:
		return y.NumberText()
	case StringType:
		return y.String
	default:
		s, err := JSONString(y)
		if err != nil {
			return ""
		}
		return s
	}
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Visit walks the tree pre and post order. f is called with isPost
// false before children and true after; returning false from the pre
// call skips the children. Attribute values are visited before
// children.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, av := range y.AttrValues {
			if err := av.Visit(f); err != nil {
				return err
			}
		}
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
