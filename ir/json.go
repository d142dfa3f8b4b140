package ir

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// JSONString renders the node as compact JSON text. Object keys keep
// insertion order. Elements render as objects with attributes under
// "@name" keys and text under "#text". Fails with SerializationError
// on non-finite numbers.
func JSONString(n *Node) (string, error) {
	b, err := AppendJSON(nil, n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// JSONBytes is JSONString returning the raw buffer.
func JSONBytes(n *Node) ([]byte, error) {
	return AppendJSON(nil, n)
}

// AppendJSON appends the compact JSON form of n to dst.
func AppendJSON(dst []byte, n *Node) ([]byte, error) {
	if n == nil {
		return append(dst, "null"...), nil
	}
	var err error
	switch n.Type {
	case NullType:
		return append(dst, "null"...), nil
	case BoolType:
		return strconv.AppendBool(dst, n.Bool), nil
	case NumberType:
		return appendJSONNumber(dst, n)
	case StringType:
		return appendJSONString(dst, n.String), nil
	case ArrayType:
		dst = append(dst, '[')
		for i, v := range n.Values {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst, err = AppendJSON(dst, v)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case ObjectType:
		dst = append(dst, '{')
		for i, field := range n.Fields {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendJSONString(dst, field.String)
			dst = append(dst, ':')
			dst, err = AppendJSON(dst, n.Values[i])
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	case ElementType:
		return appendJSONElement(dst, n)
	default:
		return nil, &SerializationError{Msg: fmt.Sprintf("cannot encode node type %s", n.Type)}
	}
}

func appendJSONNumber(dst []byte, n *Node) ([]byte, error) {
	if n.Number != "" {
		f, err := strconv.ParseFloat(n.Number, 64)
		if err != nil {
			return nil, &SerializationError{Msg: fmt.Sprintf("number literal %q", n.Number), Err: err}
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, &SerializationError{Msg: fmt.Sprintf("non-finite number %q", n.Number)}
		}
		return append(dst, n.Number...), nil
	}
	if n.Int64 != nil {
		return strconv.AppendInt(dst, *n.Int64, 10), nil
	}
	if n.Float64 != nil {
		f := *n.Float64
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, &SerializationError{Msg: fmt.Sprintf("non-finite number %v", f)}
		}
		return strconv.AppendFloat(dst, f, 'g', -1, 64), nil
	}
	return append(dst, '0'), nil
}

func appendJSONString(dst []byte, s string) []byte {
	// json.Marshal of a string cannot fail.
	b, _ := json.Marshal(s)
	return append(dst, b...)
}

func appendJSONElement(dst []byte, n *Node) ([]byte, error) {
	var err error
	dst = append(dst, '{')
	first := true
	for i := range n.AttrNames {
		if !first {
			dst = append(dst, ',')
		}
		first = false
		dst = appendJSONString(dst, "@"+n.AttrNames[i])
		dst = append(dst, ':')
		dst, err = AppendJSON(dst, n.AttrValues[i])
		if err != nil {
			return nil, err
		}
	}
	if n.Text != "" {
		if !first {
			dst = append(dst, ',')
		}
		first = false
		dst = appendJSONString(dst, "#text")
		dst = append(dst, ':')
		dst = appendJSONString(dst, n.Text)
	}
	for i, field := range n.Fields {
		if !first {
			dst = append(dst, ',')
		}
		first = false
		dst = appendJSONString(dst, field.String)
		dst = append(dst, ':')
		dst, err = AppendJSON(dst, n.Values[i])
		if err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}
