// Package yamlcodec maps YAML documents to and from trees.
//
// Mappings decode through goccy's ordered mode so key order survives a
// parse/serialize round trip, matching the order guarantees of the
// JSON codec. Element metadata has no YAML form; element-bearing trees
// serialize through their object projection.
package yamlcodec

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/cfgdoc/cfgdoc/format"
	"github.com/cfgdoc/cfgdoc/ir"
)

type Codec struct{}

func New() *Codec {
	return &Codec{}
}

func (c *Codec) Format() format.Format {
	return format.YAMLFormat
}

func (c *Codec) Parse(data []byte) (*ir.Node, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("yaml parse: %w", ir.ErrEmptyContent)
	}
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		// goccy already renders the position into the message.
		return nil, &ir.SyntaxError{Msg: err.Error(), Err: err}
	}
	return fromYAML(v)
}

func fromYAML(v any) (*ir.Node, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(t), nil
	case int:
		return ir.FromInt(int64(t)), nil
	case int64:
		return ir.FromInt(t), nil
	case uint64:
		return ir.FromNumberText(strconv.FormatUint(t, 10)), nil
	case float64:
		return ir.FromFloat(t), nil
	case string:
		return ir.FromString(t), nil
	case yaml.MapSlice:
		obj := ir.Object()
		for _, item := range t {
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			ir.Set(obj, fmt.Sprint(item.Key), val)
		}
		return obj, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := ir.Object()
		for _, k := range keys {
			val, err := fromYAML(t[k])
			if err != nil {
				return nil, err
			}
			ir.Set(obj, k, val)
		}
		return obj, nil
	case []any:
		items := make([]*ir.Node, 0, len(t))
		for _, e := range t {
			val, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		return ir.FromSlice(items), nil
	default:
		return nil, &ir.SyntaxError{Msg: fmt.Sprintf("unsupported YAML value %T", v)}
	}
}

func (c *Codec) Serialize(node *ir.Node) ([]byte, error) {
	v, err := toYAML(node)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf, yaml.Indent(2))
	if err := enc.Encode(v); err != nil {
		enc.Close()
		return nil, &ir.SerializationError{Msg: "cannot serialize tree as YAML", Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &ir.SerializationError{Msg: "cannot serialize tree as YAML", Err: err}
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func toYAML(n *ir.Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return n.Bool, nil
	case ir.NumberType:
		text := n.NumberText()
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f, nil
		}
		return nil, &ir.SerializationError{Msg: fmt.Sprintf("invalid number literal %q", text)}
	case ir.StringType:
		return n.String, nil
	case ir.ArrayType:
		items := make([]any, 0, len(n.Values))
		for _, v := range n.Values {
			item, err := toYAML(v)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case ir.ObjectType:
		ms := make(yaml.MapSlice, 0, len(n.Fields))
		for i, f := range n.Fields {
			val, err := toYAML(n.Values[i])
			if err != nil {
				return nil, err
			}
			ms = append(ms, yaml.MapItem{Key: f.String, Value: val})
		}
		return ms, nil
	case ir.ElementType:
		ms := make(yaml.MapSlice, 0, len(n.AttrNames)+len(n.Fields)+1)
		for i, an := range n.AttrNames {
			val, err := toYAML(n.AttrValues[i])
			if err != nil {
				return nil, err
			}
			ms = append(ms, yaml.MapItem{Key: "@" + an, Value: val})
		}
		if n.Kind.Has(ir.HasText) {
			ms = append(ms, yaml.MapItem{Key: "#text", Value: n.Text})
		}
		for i, f := range n.Fields {
			val, err := toYAML(n.Values[i])
			if err != nil {
				return nil, err
			}
			ms = append(ms, yaml.MapItem{Key: f.String, Value: val})
		}
		return ms, nil
	default:
		return nil, &ir.SerializationError{Msg: "cannot serialize " + n.Type.String() + " as YAML"}
	}
}
