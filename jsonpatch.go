package cfgdoc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/cfgdoc/cfgdoc/codec/jsoncodec"
	"github.com/cfgdoc/cfgdoc/ir"
	"github.com/cfgdoc/cfgdoc/ir/fieldpath"
)

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// ChangesToJSONPatch converts a change list to an RFC 6902 patch
// document. Paths existing in original become replace ops, new paths
// become add ops. Attribute segments have no JSON Pointer form and
// fail the conversion.
func ChangesToJSONPatch(original *ir.Node, changes []Change) ([]byte, error) {
	type patchOp struct {
		Op    string          `json:"op"`
		Path  string          `json:"path"`
		Value json.RawMessage `json:"value"`
	}
	ops := make([]patchOp, 0, len(changes))
	for _, ch := range changes {
		ptr, err := jsonPointer(ch.Path)
		if err != nil {
			return nil, err
		}
		value, err := ir.JSONBytes(ch.Value)
		if err != nil {
			return nil, err
		}
		op := "add"
		if _, found := ir.Lookup(original, ch.Path); found {
			op = "replace"
		}
		ops = append(ops, patchOp{Op: op, Path: ptr, Value: value})
	}
	return json.Marshal(ops)
}

func jsonPointer(p *fieldpath.Path) (string, error) {
	var sb strings.Builder
	for x := p; x != nil; x = x.Next {
		sb.WriteByte('/')
		switch {
		case x.Attr != nil:
			return "", &ir.SerializationError{Msg: fmt.Sprintf("attribute segment %q has no JSON Pointer form", "@"+*x.Attr)}
		case x.Index != nil:
			sb.WriteString(strconv.Itoa(*x.Index))
		case x.Key != nil:
			sb.WriteString(pointerEscaper.Replace(*x.Key))
		}
	}
	return sb.String(), nil
}

// ApplyJSONPatch applies an RFC 6902 patch document to a tree by way
// of its JSON projection and parses the result back. Element trees
// lose their XML facets in the projection.
func ApplyJSONPatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	docBytes, err := ir.JSONBytes(doc)
	if err != nil {
		return nil, err
	}
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("decode json patch: %w", err)
	}
	out, err := p.Apply(docBytes)
	if err != nil {
		return nil, fmt.Errorf("apply json patch: %w", err)
	}
	return jsoncodec.New().Parse(out)
}
