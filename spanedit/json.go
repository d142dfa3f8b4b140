package spanedit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cfgdoc/cfgdoc/codec/jsoncodec"
	"github.com/cfgdoc/cfgdoc/ir"
	"github.com/cfgdoc/cfgdoc/ir/fieldpath"
)

// JSONUpdater edits JSON values in place. Spans come from gjson's raw
// value offsets; replacement splices through sjson so only the value
// bytes change.
type JSONUpdater struct{}

func (JSONUpdater) Validate(content string) error {
	if gjson.Valid(content) {
		return nil
	}
	// Reparse for the position detail.
	if _, err := jsoncodec.New().Parse([]byte(content)); err != nil {
		return err
	}
	return &ir.SyntaxError{Msg: "invalid JSON"}
}

// FindValueSpan returns the raw value range at path. String values
// include their quotes, containers their brackets. The empty path
// spans the whole document.
func (JSONUpdater) FindValueSpan(content string, path *fieldpath.Path) (Span, error) {
	if path == nil {
		return Span{Start: 0, End: len(content)}, nil
	}
	gpath, err := gjsonPath(path)
	if err != nil {
		return Span{}, err
	}
	res := gjson.Get(content, gpath)
	if !res.Exists() {
		return Span{}, &ir.PathNotFoundError{Path: path.String()}
	}
	return Span{Start: res.Index, End: res.Index + len(res.Raw)}, nil
}

func (u JSONUpdater) ReplaceValue(content string, path *fieldpath.Path, newValue string) (string, error) {
	if path == nil {
		return "", &ir.PathNotFoundError{Path: ""}
	}
	// sjson would create missing paths; the contract is edit-only.
	if _, err := u.FindValueSpan(content, path); err != nil {
		return "", err
	}
	raw := newValue
	if !isJSONValue(newValue) {
		raw = quoteJSONString(newValue)
	}
	gpath, err := gjsonPath(path)
	if err != nil {
		return "", err
	}
	out, err := sjson.SetRawOptions(content, gpath, raw, &sjson.Options{
		Optimistic:     true,
		ReplaceInPlace: true,
	})
	if err != nil {
		return "", &ir.SerializationError{Msg: "cannot splice JSON value", Err: err}
	}
	return out, nil
}

var gjsonKeyEscaper = strings.NewReplacer(`\`, `\\`, ".", `\.`, "*", `\*`, "?", `\?`)

func gjsonPath(p *fieldpath.Path) (string, error) {
	var sb strings.Builder
	for x := p; x != nil; x = x.Next {
		if x != p {
			sb.WriteByte('.')
		}
		switch {
		case x.Attr != nil:
			return "", &ir.PathNotFoundError{Path: p.String()}
		case x.Index != nil:
			sb.WriteString(strconv.Itoa(*x.Index))
		case x.Key != nil:
			sb.WriteString(gjsonKeyEscaper.Replace(*x.Key))
		}
	}
	return sb.String(), nil
}

// isJSONValue reports whether s already reads as a JSON value, meaning
// it can be spliced raw. Anything else is treated as a plain string
// and quoted.
func isJSONValue(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}
	return json.Valid([]byte(t))
}

func quoteJSONString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
