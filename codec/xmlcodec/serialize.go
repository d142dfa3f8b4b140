package xmlcodec

import (
	"encoding/xml"
	"strings"

	"github.com/cfgdoc/cfgdoc/ir"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Serialize renders a tree as a pretty-printed XML document with the
// standard declaration. Flat scalar objects, which carry no element
// metadata, render in appSettings shorthand; trees built from a
// structural parse reconstruct their elements, attributes, and text.
func (c *Codec) Serialize(node *ir.Node) ([]byte, error) {
	if node == nil {
		return nil, &ir.SerializationError{Msg: "cannot serialize nil tree as XML"}
	}
	var sb strings.Builder
	sb.WriteString(xml.Header)
	switch {
	case node.Type == ir.ObjectType && flatScalarObject(node):
		writeAppSettings(&sb, node)
	case node.Type == ir.ObjectType:
		for i, f := range node.Fields {
			writeValue(&sb, f.String, node.Values[i], 0)
		}
	case node.Type == ir.ElementType:
		name := node.ParentField
		if name == "" {
			name = "root"
		}
		writeElement(&sb, name, node, 0)
	default:
		return nil, &ir.SerializationError{Msg: "cannot serialize " + node.Type.String() + " as an XML document"}
	}
	return []byte(sb.String()), nil
}

// flatScalarObject reports whether every value is a scalar, meaning
// the tree has no element structure to reconstruct.
func flatScalarObject(n *ir.Node) bool {
	for _, v := range n.Values {
		if v == nil || !v.Type.IsScalar() {
			return false
		}
	}
	return true
}

func writeAppSettings(sb *strings.Builder, obj *ir.Node) {
	if len(obj.Fields) == 0 {
		sb.WriteString("<appSettings/>")
		return
	}
	sb.WriteString("<appSettings>\n")
	for i, f := range obj.Fields {
		sb.WriteString(`  <add key="`)
		sb.WriteString(xmlEscaper.Replace(f.String))
		sb.WriteString(`" value="`)
		sb.WriteString(xmlEscaper.Replace(ir.Stringify(obj.Values[i])))
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</appSettings>")
}

// writeValue renders one named value. Arrays repeat the tag once per
// item, plain objects render as elements with child elements, and
// scalars render as text-only elements.
func writeValue(sb *strings.Builder, name string, v *ir.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if v == nil {
		sb.WriteString(indent + "<" + name + "/>\n")
		return
	}
	switch v.Type {
	case ir.ElementType:
		writeElement(sb, name, v, depth)
	case ir.ArrayType:
		for _, item := range v.Values {
			writeValue(sb, name, item, depth)
		}
	case ir.ObjectType:
		if len(v.Fields) == 0 {
			sb.WriteString(indent + "<" + name + "/>\n")
			return
		}
		sb.WriteString(indent + "<" + name + ">\n")
		for i, f := range v.Fields {
			writeValue(sb, f.String, v.Values[i], depth+1)
		}
		sb.WriteString(indent + "</" + name + ">\n")
	case ir.NullType:
		sb.WriteString(indent + "<" + name + "/>\n")
	default:
		text := ir.Stringify(v)
		if text == "" {
			sb.WriteString(indent + "<" + name + "/>\n")
			return
		}
		sb.WriteString(indent + "<" + name + ">" + xmlEscaper.Replace(text) + "</" + name + ">\n")
	}
}

func writeElement(sb *strings.Builder, name string, el *ir.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent + "<" + name)
	for i, an := range el.AttrNames {
		sb.WriteString(" " + an + `="` + xmlEscaper.Replace(ir.Stringify(el.AttrValues[i])) + `"`)
	}
	hasText := el.Text != ""
	hasChildren := len(el.Fields) > 0
	if !hasText && !hasChildren {
		sb.WriteString("/>\n")
		return
	}
	sb.WriteString(">")
	if hasText {
		sb.WriteString(xmlEscaper.Replace(el.Text))
	}
	if hasChildren {
		sb.WriteString("\n")
		for i, f := range el.Fields {
			writeValue(sb, f.String, el.Values[i], depth+1)
		}
		sb.WriteString(indent)
	}
	sb.WriteString("</" + name + ">\n")
}
