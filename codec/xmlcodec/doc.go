// Package xmlcodec maps XML documents to and from trees.
//
// # Overview
//
// Two document shapes are recognized on parse. When every direct child
// of the root element carries both a key and a value attribute, the
// document is treated as appSettings-style shorthand and collapses to
// a flat object of coerced scalars:
//
//	<appSettings>
//	  <add key="x" value="1"/>
//	</appSettings>
//
// parses to {x: 1}. Any other document maps structurally: the root
// element appears in an object under its tag name, attributes become
// named attribute values, trimmed character data becomes element text,
// and repeated tags at the same level flatten into an array. Text-only
// elements collapse to their coerced scalar value, so
//
//	<server>
//	  <timeout>30</timeout>
//	</server>
//
// parses to {server: {timeout: 30}} with server carrying element
// metadata.
//
// # Serialization
//
// Serialize emits the standard XML declaration followed by the
// document body, indented two spaces per level. Trees with element
// metadata reconstruct their structure; flat scalar objects render in
// appSettings shorthand. Elements with no text and no children close
// self-closing, and the five XML special characters are escaped in
// attribute values and text.
//
// # Related Packages
//
//   - codec: the Codec interface and registry this package plugs into.
//   - ir: the tree representation, including element metadata.
package xmlcodec
