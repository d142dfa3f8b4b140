// Package fieldpath provides the dotted path scheme addressing values
// in parsed configuration trees.
//
// Paths are sequences of segments joined by '.':
//   - name - object field or element child tag
//   - digits - array index
//   - @name - XML attribute (final segment only)
//
// # Usage
//
//	// Parse a path
//	p := fieldpath.Parse("servers.0.@host")
//
//	// Build one programmatically
//	p = fieldpath.Key("servers").Append(fieldpath.Index(0)).Append(fieldpath.Attr("host"))
//
//	// Compare paths
//	eq := p.Equal(fieldpath.Parse("servers.0.@host")) // true
//
// # Path Examples
//
//	"database.connection.@host"  // element, element, attribute
//	"tags.2"                     // array element
//	"appSettings.timeout"        // nested object fields
//
// The same syntax is shared by the diff engine, the patch engine, and
// byte-level span editing, so a path emitted by one is addressable by
// the others.
//
// # Related Packages
//
//   - github.com/cfgdoc/cfgdoc/ir - tree representation the paths address
package fieldpath
