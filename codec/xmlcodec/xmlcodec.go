package xmlcodec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cfgdoc/cfgdoc/codec"
	"github.com/cfgdoc/cfgdoc/format"
	"github.com/cfgdoc/cfgdoc/ir"
)

// Codec parses and serializes XML documents. The same codec backs the
// ".config" fallback, differing only in the format it reports.
type Codec struct {
	f format.Format
}

func New() *Codec {
	return &Codec{f: format.XMLFormat}
}

// NewConfig returns the codec registered for sniff-resistant ".config"
// files, which parse as XML.
func NewConfig() *Codec {
	return &Codec{f: format.ConfigFormat}
}

func (c *Codec) Format() format.Format {
	return c.f
}

// rawElem is a decoded element before classification.
type rawElem struct {
	name     string
	attrs    []xml.Attr
	children []*rawElem
	text     strings.Builder
}

func (e *rawElem) attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Parse reads an XML document into a tree. Documents whose root
// children all carry key and value attributes collapse to a flat
// object of key to coerced scalar; everything else maps structurally,
// with the root element under its tag name.
func (c *Codec) Parse(data []byte) (*ir.Node, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("xml parse: %w", ir.ErrEmptyContent)
	}
	root, err := decodeDocument(data)
	if err != nil {
		return nil, xmlSyntaxError(err)
	}
	if flat, ok := shorthandObject(root); ok {
		return flat, nil
	}
	doc := ir.Object()
	ir.Set(doc, root.name, elementNode(root))
	return doc, nil
}

func decodeDocument(data []byte) (*rawElem, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *rawElem
	var stack []*rawElem
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			e := &rawElem{name: t.Name.Local}
			e.attrs = append(e.attrs, t.Attr...)
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = e
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, e)
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				// CharData is only valid until the next Token call.
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("no root element")
	}
	return root, nil
}

// xmlSyntaxError maps decoder failures onto the shared taxonomy.
// Structural errors surface with the fixed "Invalid XML format"
// message; the decoder's own message stays recoverable via Unwrap.
func xmlSyntaxError(err error) error {
	var xerr *xml.SyntaxError
	if errors.As(err, &xerr) {
		return &ir.SyntaxError{Msg: "Invalid XML format", Line: xerr.Line, Err: err}
	}
	return &ir.SyntaxError{Msg: err.Error(), Err: err}
}

// shorthandObject collapses appSettings-style documents, where every
// direct child of the root carries both a key and a value attribute,
// to a flat object.
func shorthandObject(root *rawElem) (*ir.Node, bool) {
	if len(root.children) == 0 {
		return nil, false
	}
	for _, c := range root.children {
		if _, ok := c.attr("key"); !ok {
			return nil, false
		}
		if _, ok := c.attr("value"); !ok {
			return nil, false
		}
	}
	obj := ir.Object()
	for _, c := range root.children {
		k, _ := c.attr("key")
		v, _ := c.attr("value")
		ir.Set(obj, k, codec.CoerceScalar(v))
	}
	return obj, true
}

// elementNode converts a decoded element. Text-only elements collapse
// to their coerced scalar so form paths address the value directly; a
// truly empty element stays an element and round-trips self-closing.
func elementNode(e *rawElem) *ir.Node {
	text := strings.TrimSpace(e.text.String())
	if len(e.attrs) == 0 && len(e.children) == 0 {
		if text == "" {
			return ir.Element()
		}
		return codec.CoerceScalar(text)
	}
	n := ir.Element()
	for _, a := range e.attrs {
		n.SetAttr(a.Name.Local, codec.CoerceScalar(a.Value))
	}
	for _, c := range e.children {
		addChild(n, c.name, elementNode(c))
	}
	if text != "" {
		n.SetText(text)
	}
	return n
}

// addChild appends child under tag, flattening repeated tags at the
// same level into an array.
func addChild(parent *ir.Node, tag string, child *ir.Node) {
	existing := ir.Get(parent, tag)
	if existing == nil {
		ir.Set(parent, tag, child)
		return
	}
	if existing.Type == ir.ArrayType {
		child.Parent = existing
		child.ParentIndex = len(existing.Values)
		existing.Values = append(existing.Values, child)
		return
	}
	ir.Set(parent, tag, ir.FromSlice([]*ir.Node{existing, child}))
}
