package spanedit

import (
	"errors"
	"testing"

	"github.com/cfgdoc/cfgdoc/ir"
	"github.com/cfgdoc/cfgdoc/ir/fieldpath"
)

const xmlDoc = `<?xml version="1.0" encoding="UTF-8"?><configuration><sessionTimeout>1800</sessionTimeout><connection host="db1" port="5432"/><servers><server>alpha</server><server>beta</server></servers></configuration>`

func TestXMLValidate(t *testing.T) {
	u := XMLUpdater{}
	if err := u.Validate(xmlDoc); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if err := u.Validate(`<?xml version="1.0"?><a><!-- note --><b/></a>`); err != nil {
		t.Fatalf("Validate(decl+comment) error: %v", err)
	}

	tests := []struct {
		name     string
		content  string
		wantMsg  string
		wantLine int
		wantCol  int
	}{
		{
			name:    "mismatched close leaves tag open",
			content: "<a><b></a>",
			wantMsg: "unclosed tags: a",
		},
		{
			name:    "two open tags",
			content: "<a><b>",
			wantMsg: "unclosed tags: a, b",
		},
		{
			name:     "unterminated comment",
			content:  "<a><!-- x",
			wantMsg:  "XML parsing error: unterminated comment",
			wantLine: 1,
			wantCol:  4,
		},
		{
			name:     "attribute without value",
			content:  "<a foo>",
			wantMsg:  "XML parsing error: expected '=' after attribute name",
			wantLine: 1,
			wantCol:  4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := u.Validate(tt.content)
			if !errors.Is(err, ir.ErrSyntax) {
				t.Fatalf("Validate(%q) error = %v, want ErrSyntax", tt.content, err)
			}
			var se *ir.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Validate(%q) error type = %T, want *ir.SyntaxError", tt.content, err)
			}
			if se.Msg != tt.wantMsg {
				t.Errorf("Msg = %q, want %q", se.Msg, tt.wantMsg)
			}
			if tt.wantLine > 0 && (se.Line != tt.wantLine || se.Col != tt.wantCol) {
				t.Errorf("position = %d:%d, want %d:%d", se.Line, se.Col, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestXMLFindValueSpan(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
		want    string
	}{
		{"element text", xmlDoc, "configuration.sessionTimeout", "1800"},
		{"attribute inside quotes", xmlDoc, "configuration.connection.@host", "db1"},
		{"second attribute", xmlDoc, "configuration.connection.@port", "5432"},
		{"first occurrence by default", xmlDoc, "configuration.servers.server", "alpha"},
		{"occurrence zero", xmlDoc, "configuration.servers.server.0", "alpha"},
		{"occurrence one", xmlDoc, "configuration.servers.server.1", "beta"},
		{"namespace prefix stripped", `<ns:a xmlns:ns="u"><ns:b>1</ns:b></ns:a>`, "a.b", "1"},
		{"cdata skipped", `<a><![CDATA[zz]]><b>1</b></a>`, "a.b", "1"},
	}
	u := XMLUpdater{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := u.FindValueSpan(tt.content, fieldpath.Parse(tt.path))
			if err != nil {
				t.Fatalf("FindValueSpan(%q) error: %v", tt.path, err)
			}
			if got := tt.content[span.Start:span.End]; got != tt.want {
				t.Errorf("FindValueSpan(%q) covers %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestXMLFindValueSpanErrors(t *testing.T) {
	tests := []struct {
		name string
		path *fieldpath.Path
		want string
	}{
		{"missing element", fieldpath.Parse("configuration.nope"), "configuration.nope"},
		{"missing attribute", fieldpath.Parse("configuration.connection.@nope"), "configuration.connection.@nope"},
		{"attribute not last", fieldpath.Parse("configuration.@x.y"), "configuration.@x.y"},
		{"leading index", fieldpath.Parse("0"), "0"},
		{"double index", fieldpath.Parse("configuration.servers.server.0.0"), "configuration.servers.server.0.0"},
		{"empty path", nil, ""},
	}
	u := XMLUpdater{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.FindValueSpan(xmlDoc, tt.path)
			var pnf *ir.PathNotFoundError
			if !errors.As(err, &pnf) {
				t.Fatalf("FindValueSpan() error = %v, want *ir.PathNotFoundError", err)
			}
			if pnf.Path != tt.want {
				t.Errorf("Path = %q, want %q", pnf.Path, tt.want)
			}
		})
	}
}

func TestXMLReplaceValue(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
		value   string
		want    string
	}{
		{
			name:    "element text",
			content: "<c><timeout>30</timeout></c>",
			path:    "c.timeout",
			value:   "60",
			want:    "<c><timeout>60</timeout></c>",
		},
		{
			name:    "attribute value",
			content: `<c><conn host="db1"/></c>`,
			path:    "c.conn.@host",
			value:   "db2",
			want:    `<c><conn host="db2"/></c>`,
		},
		{
			name:    "second occurrence",
			content: "<s><v>1</v><v>2</v></s>",
			path:    "s.v.1",
			value:   "9",
			want:    "<s><v>1</v><v>9</v></s>",
		},
		{
			name:    "entities escaped",
			content: "<c><msg>old</msg></c>",
			path:    "c.msg",
			value:   `a<b & "c"`,
			want:    "<c><msg>a&lt;b &amp; &quot;c&quot;</msg></c>",
		},
		{
			name:    "apostrophe escaped",
			content: "<c><msg>old</msg></c>",
			path:    "c.msg",
			value:   "it's",
			want:    "<c><msg>it&apos;s</msg></c>",
		},
		{
			name:    "formatting preserved",
			content: "<configuration>\n  <appSettings>\n    <add key=\"Mode\" value=\"live\" />\n  </appSettings>\n</configuration>",
			path:    "configuration.appSettings.add.@value",
			value:   "test",
			want:    "<configuration>\n  <appSettings>\n    <add key=\"Mode\" value=\"test\" />\n  </appSettings>\n</configuration>",
		},
	}
	u := XMLUpdater{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := u.ReplaceValue(tt.content, fieldpath.Parse(tt.path), tt.value)
			if err != nil {
				t.Fatalf("ReplaceValue(%q, %q) error: %v", tt.path, tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ReplaceValue(%q, %q) = %q, want %q", tt.path, tt.value, got, tt.want)
			}
		})
	}
}

func TestXMLReplaceValueMissing(t *testing.T) {
	_, err := XMLUpdater{}.ReplaceValue("<c>1</c>", fieldpath.Parse("nope"), "2")
	if !errors.Is(err, ir.ErrPathNotFound) {
		t.Errorf("ReplaceValue(missing) error = %v, want ErrPathNotFound", err)
	}
}
