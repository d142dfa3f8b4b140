// Package spanedit updates single values inside serialized
// configuration text without reformatting anything else.
//
// # Overview
//
// Parsing and re-serializing a tree normalizes whitespace, quoting,
// and comments. When a caller wants to change one value and keep every
// other byte, the codecs are the wrong tool. This package locates the
// byte span of the value a field path addresses and splices a
// replacement into it:
//
//	out, err := spanedit.Apply(format.EnvFormat, text,
//	    fieldpath.Key("TIMEOUT"), "1800")
//
// The JSON updater finds value spans with gjson and splices through
// sjson; strings are quoted and escaped unless the new value already
// reads as a JSON value. The ENV updater lexes key=value lines with
// byte spans; a quoted value's span includes the quotes, and
// replacements re-quote when the old value was quoted or the new one
// needs it. The XML updater scans tags with a stack; a final @name
// segment addresses an attribute value inside its quotes, numeric
// segments select among repeated sibling tags, and replacements are
// entity-escaped.
//
// # Errors
//
// Malformed input surfaces as ir.SyntaxError with line and column
// where the scanner knows them. Paths that do not resolve surface as
// ir.PathNotFoundError. Formats with no updater, YAML among them,
// surface as ir.UnsupportedFormatError.
//
// # Related Packages
//
//   - ir/fieldpath: the shared path grammar.
//   - codec: full parse/serialize round trips, when byte preservation
//     does not matter.
package spanedit
