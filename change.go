package cfgdoc

import (
	"github.com/cfgdoc/cfgdoc/ir"
	"github.com/cfgdoc/cfgdoc/ir/fieldpath"
)

// Change is one typed modification produced by diffing: set the node
// at Path to Value. A nil Path means the documents differ wholesale
// and the whole tree is replaced by Value.
type Change struct {
	Path  *fieldpath.Path
	Value *ir.Node
}

// Text renders the new value the way serializers print scalars.
// Containers render as compact JSON.
func (c Change) Text() string {
	return ir.Stringify(c.Value)
}

func (c Change) String() string {
	return c.Path.String() + " = " + c.Text()
}
