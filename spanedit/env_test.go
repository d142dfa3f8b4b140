package spanedit

import (
	"errors"
	"testing"

	"github.com/cfgdoc/cfgdoc/ir"
	"github.com/cfgdoc/cfgdoc/ir/fieldpath"
)

func TestEnvFindValueSpan(t *testing.T) {
	content := "HOST=localhost\n" +
		"PORT=8080 # the port\n" +
		"NAME=\"my app\"\n" +
		"export PATH=/bin\n" +
		"EMPTY=\n" +
		"SPACED = v\n" +
		"  IND=5\n"
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"plain", "HOST", "localhost"},
		{"inline comment excluded", "PORT", "8080"},
		{"quotes included", "NAME", `"my app"`},
		{"export prefix", "PATH", "/bin"},
		{"empty value", "EMPTY", ""},
		{"spaces around separator", "SPACED", "v"},
		{"indented line", "IND", "5"},
	}
	u := EnvUpdater{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := u.FindValueSpan(content, fieldpath.Key(tt.key))
			if err != nil {
				t.Fatalf("FindValueSpan(%q) error: %v", tt.key, err)
			}
			if got := content[span.Start:span.End]; got != tt.want {
				t.Errorf("FindValueSpan(%q) covers %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestEnvFindValueSpanErrors(t *testing.T) {
	content := "A=1\nB=2\n"
	tests := []struct {
		name string
		path *fieldpath.Path
		want string
	}{
		{"missing key", fieldpath.Key("MISSING"), "MISSING"},
		{"empty path", nil, ""},
		{"nested path", fieldpath.Parse("A.B"), "A.B"},
		{"index path", fieldpath.Index(0), "0"},
	}
	u := EnvUpdater{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.FindValueSpan(content, tt.path)
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

func TestEnvValidate(t *testing.T) {
	u := EnvUpdater{}
	ok := "# config\n\nA=1\nexport B=\"two\"\nC=3 # inline\n"
	if err := u.Validate(ok); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if err := u.Validate("A=1\r\nB=2\r\n"); err != nil {
		t.Fatalf("Validate(crlf) error: %v", err)
	}

	tests := []struct {
		name     string
		content  string
		wantMsg  string
		wantLine int
		wantCol  int
	}{
		{"duplicate key", "A=1\nB=2\nA=3\n", `duplicate key "A"`, 3, 1},
		{"missing separator", "FOO\n", "missing '=' separator", 1, 4},
		{"unterminated quote", `A="abc`, "unterminated quoted value", 1, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := u.Validate(tt.content)
			var se *ir.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Validate(%q) error = %v, want *ir.SyntaxError", tt.content, err)
			}
			if se.Msg != tt.wantMsg {
				t.Errorf("Msg = %q, want %q", se.Msg, tt.wantMsg)
			}
			if se.Line != tt.wantLine || se.Col != tt.wantCol {
				t.Errorf("position = %d:%d, want %d:%d", se.Line, se.Col, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestEnvReplaceValue(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
		value   string
		want    string
	}{
		{
			name:    "plain",
			content: "PORT=8080\n",
			key:     "PORT",
			value:   "9090",
			want:    "PORT=9090\n",
		},
		{
			name:    "other lines untouched",
			content: "A=1\nB=2\nC=3\n",
			key:     "B",
			value:   "20",
			want:    "A=1\nB=20\nC=3\n",
		},
		{
			name:    "quoted stays quoted",
			content: "NAME=\"my app\"\n",
			key:     "NAME",
			value:   "other",
			want:    "NAME=\"other\"\n",
		},
		{
			name:    "space forces quotes",
			content: "HOST=x\n",
			key:     "HOST",
			value:   "my host",
			want:    "HOST=\"my host\"\n",
		},
		{
			name:    "hash forces quotes",
			content: "A=1\n",
			key:     "A",
			value:   "a#b",
			want:    "A=\"a#b\"\n",
		},
		{
			name:    "inline comment preserved",
			content: "PORT=8080 # the port\n",
			key:     "PORT",
			value:   "9090",
			want:    "PORT=9090 # the port\n",
		},
		{
			name:    "single quotes become double",
			content: "A='x y'\n",
			key:     "A",
			value:   "z",
			want:    "A=\"z\"\n",
		},
		{
			name:    "empty value filled",
			content: "EMPTY=\n",
			key:     "EMPTY",
			value:   "x",
			want:    "EMPTY=x\n",
		},
		{
			name:    "inner quote escaped",
			content: `NAME="x"`,
			key:     "NAME",
			value:   `say "hi"`,
			want:    `NAME="say \"hi\""`,
		},
		{
			name:    "newline escaped",
			content: `A="x"`,
			key:     "A",
			value:   "l1\nl2",
			want:    `A="l1\nl2"`,
		},
	}
	u := EnvUpdater{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := u.ReplaceValue(tt.content, fieldpath.Key(tt.key), tt.value)
			if err != nil {
				t.Fatalf("ReplaceValue(%q, %q) error: %v", tt.key, tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ReplaceValue(%q, %q) = %q, want %q", tt.key, tt.value, got, tt.want)
			}
		})
	}
}

func TestEnvReplaceValueMissing(t *testing.T) {
	_, err := EnvUpdater{}.ReplaceValue("A=1\n", fieldpath.Key("B"), "2")
	if !errors.Is(err, ir.ErrPathNotFound) {
		t.Errorf("ReplaceValue(missing) error = %v, want ErrPathNotFound", err)
	}
}
