// Package codec defines the parse/serialize contract shared by all
// format backends and the registry that dispatches to them.
//
// # Overview
//
// A Codec turns raw file text into an ir.Node tree and back. Each
// format lives in its own subpackage (jsoncodec, envcodec, xmlcodec,
// yamlcodec); this package holds what they share: the interface, the
// scalar coercion rules, and the Registry.
//
// # Registry
//
// A Registry is an owned structure, deliberately not a package-level
// map: the caller constructs one, registers codecs under
// case-insensitive keys, and may keep registering at runtime.
//
//	reg := codec.NewRegistry()
//	reg.Register("json", func() codec.Codec { return jsoncodec.New() })
//
//	c, err := reg.Resolve("web.config", content)
//	node, err := c.Parse(content)
//
// Resolve detects the format from the filename, sniffing content to
// disambiguate ".config" files. Unknown keys fail with
// ir.UnsupportedFormatError.
//
// # Related Packages
//
//   - github.com/cfgdoc/cfgdoc/format - format detection
//   - github.com/cfgdoc/cfgdoc/ir - the tree codecs produce and consume
package codec
