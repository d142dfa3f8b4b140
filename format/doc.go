// Package format names the supported configuration file formats and
// resolves which one a file holds.
//
// # Usage
//
//	// Resolve a file's format from its name
//	f, err := format.Detect("app.json", nil)
//
//	// Disambiguate a ".config" file by content
//	f, err = format.Detect("web.config", content)
//
// Detection is extension-based except for ".config", which is sniffed:
// JSON first, then XML, then an ENV-style line heuristic, falling back
// to Config (parsed by the XML codec).
//
// # Related Packages
//
//   - github.com/cfgdoc/cfgdoc/codec - registry dispatching formats to codecs
package format
