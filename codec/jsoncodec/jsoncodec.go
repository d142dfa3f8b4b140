// Package jsoncodec parses and serializes JSON configuration files.
//
// Parsing decodes at the token level so object key order survives into
// the tree and number literals keep their original text. Serialization
// is standard pretty-printing with 2-space indentation; byte-identical
// output is not a goal for JSON.
package jsoncodec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cfgdoc/cfgdoc/format"
	"github.com/cfgdoc/cfgdoc/ir"
)

type Codec struct{}

func New() *Codec {
	return &Codec{}
}

func (c *Codec) Format() format.Format {
	return format.JSONFormat
}

func (c *Codec) Parse(data []byte) (*ir.Node, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("json parse: %w", ir.ErrEmptyContent)
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	node, err := parseValue(dec)
	if err != nil {
		return nil, syntaxError(text, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing content after top-level value")
		}
		return nil, syntaxError(text, err)
	}
	return node, nil
}

func parseValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return ir.FromString(t), nil
	case json.Number:
		return ir.FromNumberText(t.String()), nil
	case bool:
		return ir.FromBool(t), nil
	case nil:
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (*ir.Node, error) {
	obj := ir.Object()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", keyTok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		// Duplicate keys overwrite in place, keeping first position.
		ir.Set(obj, key, val)
	}
	// consume '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (*ir.Node, error) {
	var items []*ir.Node
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, val)
	}
	// consume ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return ir.FromSlice(items), nil
}

func syntaxError(text string, err error) error {
	var serr *ir.SyntaxError
	if errors.As(err, &serr) {
		return err
	}
	var jerr *json.SyntaxError
	if errors.As(err, &jerr) {
		line, col := lineCol(text, int(jerr.Offset))
		return &ir.SyntaxError{Msg: jerr.Error(), Line: line, Col: col, Err: err}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return &ir.SyntaxError{Msg: "unexpected end of input", Err: err}
	}
	return &ir.SyntaxError{Msg: err.Error(), Err: err}
}

// lineCol converts a byte offset to 1-based line and column.
func lineCol(text string, offset int) (int, int) {
	if offset > len(text) {
		offset = len(text)
	}
	line := 1
	col := 1
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func (c *Codec) Serialize(node *ir.Node) ([]byte, error) {
	return Marshal(node)
}

type marshalOpts struct {
	prefix string
	indent string
}

type MarshalOption func(*marshalOpts)

// WithIndent overrides the default 2-space indentation.
func WithIndent(prefix, indent string) MarshalOption {
	return func(o *marshalOpts) {
		o.prefix = prefix
		o.indent = indent
	}
}

// Marshal renders the tree as pretty-printed JSON.
func Marshal(node *ir.Node, opts ...MarshalOption) ([]byte, error) {
	o := &marshalOpts{indent: "  "}
	for _, opt := range opts {
		opt(o)
	}
	compact, err := ir.JSONBytes(node)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, o.prefix, o.indent); err != nil {
		return nil, &ir.SerializationError{Msg: "indent json", Err: err}
	}
	return buf.Bytes(), nil
}
