package codec

import (
	"strconv"

	"github.com/cfgdoc/cfgdoc/format"
	"github.com/cfgdoc/cfgdoc/ir"
)

// Codec is a parse/serialize pair for one file format. Parse never
// partially mutates caller-visible state: it returns a fresh tree or
// an error. Serialize never mutates the tree.
type Codec interface {
	Format() format.Format
	Parse(data []byte) (*ir.Node, error)
	Serialize(node *ir.Node) ([]byte, error)
}

// CoerceScalar converts raw text to its scalar node form: "true" and
// "false" become booleans, non-empty numeric text becomes a number
// keeping the literal, anything else a string. ENV values and XML
// attribute/text content all coerce through here.
func CoerceScalar(s string) *ir.Node {
	switch s {
	case "true":
		return ir.FromBool(true)
	case "false":
		return ir.FromBool(false)
	}
	if s != "" {
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return ir.FromNumberText(s)
		}
	}
	return ir.FromString(s)
}
