// Package ir provides the intermediate representation (IR) for parsed
// configuration documents.
//
// # Overview
//
// Every supported file format (JSON, XML, ENV, YAML) parses into the
// same tree of nodes, so the diff and patch engines work on one shape
// regardless of where a document came from. The IR keeps enough
// fidelity for faithful reconstruction where a format needs it (number
// literals, attribute order, the self-closing distinction) and nothing
// positional: byte offsets belong to the span editor, not the tree.
//
// # Node Structure
//
// A Node represents a single value. Nodes can be:
//
//   - Atomic types: null, boolean, number, string
//   - Composite types: object (ordered key-value pairs), array
//   - ElementType: the XML specialization carrying ordered attributes,
//     tagged children, optional text, and a derived Kind facet set
//
// Each node maintains parent backlinks, allowing navigation through
// the tree. Containers own their children exclusively: no sharing, no
// cycles.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	flag := ir.FromBool(true)
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "key", Val: ir.FromString("value")},
//	})
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//
// # IR Structure Constraints
//
// ## Objects
//
// For ObjectType nodes, Fields[i] is the string-typed key for the
// value at Values[i], so there are always as many fields as values.
// Keys are unique within one level and entries keep insertion order;
// Set on an existing key overwrites in place, preserving the original
// position.
//
// ## Numbers
//
// Number values are placed under:
//   - Number: the original literal text, kept so serializers can
//     reproduce the textual width (1 vs 1.0)
//   - Int64 / Float64: parsed caches when the literal fits
//
// The model never distinguishes integer from float; that is a
// serializer concern.
//
// ## Elements
//
// ElementType nodes model XML with three facets: ordered attributes
// (AttrNames/AttrValues), tagged children in Fields/Values with
// repeated tags flattened into arrays, and optional Text. Kind is
// derived from whichever facets are present and is recomputed by
// ReKind after every facet change; it is never set directly. An
// element with no facets serializes self-closing.
//
// # Errors
//
// The package defines the error taxonomy shared by all codecs and
// engines: ErrEmptyContent, SyntaxError, UnsupportedFormatError,
// SerializationError, PathNotFoundError. Each typed error wraps a
// sentinel, so callers branch with errors.Is and recover detail with
// errors.As.
//
// # Related Packages
//
//   - github.com/cfgdoc/cfgdoc/ir/fieldpath - path addressing into trees
//   - github.com/cfgdoc/cfgdoc/codec - parse/serialize between text and IR
package ir
