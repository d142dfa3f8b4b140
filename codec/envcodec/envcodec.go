// Package envcodec parses and serializes ENV-style KEY=VALUE files.
package envcodec

import (
	"fmt"
	"strings"

	"github.com/cfgdoc/cfgdoc/codec"
	"github.com/cfgdoc/cfgdoc/format"
	"github.com/cfgdoc/cfgdoc/ir"
)

type Codec struct{}

func New() *Codec {
	return &Codec{}
}

func (c *Codec) Format() format.Format {
	return format.EnvFormat
}

// Parse reads KEY=VALUE lines into an object, top level always an
// object. Blank lines and '#' comments are skipped; so is any line
// without a '=' after its first character, silently. Values lose one
// layer of matching surrounding quotes, then coerce: true/false to
// boolean, numeric text to number, the rest stays string.
func (c *Codec) Parse(data []byte) (*ir.Node, error) {
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("env parse: %w", ir.ErrEmptyContent)
	}
	obj := ir.Object()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		value := unquote(strings.TrimSpace(line[eq+1:]))
		ir.Set(obj, key, codec.CoerceScalar(value))
	}
	return obj, nil
}

// unquote strips one layer of matching surrounding quotes.
func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// Serialize writes keys in insertion order. Container values become a
// comment line plus the key with the container's JSON in quotes;
// scalars are double-quoted only when they contain a space or '#'.
func (c *Codec) Serialize(node *ir.Node) ([]byte, error) {
	if node == nil || node.Type != ir.ObjectType {
		t := ir.InvalidType
		if node != nil {
			t = node.Type
		}
		return nil, &ir.SerializationError{Msg: fmt.Sprintf("env serialize requires an object, got %s", t)}
	}
	lines := make([]string, 0, len(node.Fields))
	for i, field := range node.Fields {
		key := field.String
		v := node.Values[i]
		switch v.Type {
		case ir.ObjectType, ir.ArrayType, ir.ElementType:
			j, err := ir.JSONString(v)
			if err != nil {
				return nil, err
			}
			lines = append(lines, fmt.Sprintf("# Complex object for key %q", key))
			lines = append(lines, key+`="`+j+`"`)
		default:
			s := ir.Stringify(v)
			if strings.ContainsAny(s, " #") {
				s = `"` + s + `"`
			}
			lines = append(lines, key+"="+s)
		}
	}
	return []byte(strings.Join(lines, "\n")), nil
}
