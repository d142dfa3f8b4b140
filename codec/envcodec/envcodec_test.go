package envcodec

import (
	"errors"
	"testing"

	"github.com/cfgdoc/cfgdoc/ir"
)

func TestParse(t *testing.T) {
	in := "HOST=localhost\n" +
		"# comment line\n" +
		"PORT=5432\n" +
		"\n" +
		"DEBUG=true\n" +
		"NAME=\"my app\"\n" +
		"EMPTY=\n" +
		"RATIO=0.75\n"

	got, err := New().Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got.Type != ir.ObjectType {
		t.Fatalf("Parse() type = %v, want object", got.Type)
	}
	wantOrder := []string{"HOST", "PORT", "DEBUG", "NAME", "EMPTY", "RATIO"}
	if len(got.Fields) != len(wantOrder) {
		t.Fatalf("len(Fields) = %d, want %d", len(got.Fields), len(wantOrder))
	}
	for i, w := range wantOrder {
		if f := got.Fields[i].String; f != w {
			t.Errorf("Fields[%d] = %q, want %q", i, f, w)
		}
	}

	checks := []struct {
		key  string
		typ  ir.Type
		want string
	}{
		{"HOST", ir.StringType, "localhost"},
		{"PORT", ir.NumberType, "5432"},
		{"DEBUG", ir.BoolType, "true"},
		{"NAME", ir.StringType, "my app"},
		{"EMPTY", ir.StringType, ""},
		{"RATIO", ir.NumberType, "0.75"},
	}
	for _, c := range checks {
		v := ir.Get(got, c.key)
		if v == nil {
			t.Errorf("Get(%s) = nil", c.key)
			continue
		}
		if v.Type != c.typ || ir.Stringify(v) != c.want {
			t.Errorf("%s = %s (%v), want %s (%v)", c.key, ir.Stringify(v), v.Type, c.want, c.typ)
		}
	}
}

func TestParseQuotes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"double quotes", `K="a b"`, "a b"},
		{"single quotes", `K='a b'`, "a b"},
		{"unmatched quote kept", `K="a`, `"a`},
		// Quoted numerics still coerce after unquoting.
		{"quoted number", `K="5"`, "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Parse([]byte(tt.line))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if s := ir.Stringify(ir.Get(got, "K")); s != tt.want {
				t.Errorf("K = %q, want %q", s, tt.want)
			}
		})
	}
}

func TestParseSkipsMalformed(t *testing.T) {
	got, err := New().Parse([]byte("GOOD=1\nno separator here\n=leading\nALSO=2\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got.Fields) != 2 {
		t.Errorf("len(Fields) = %d, want 2", len(got.Fields))
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := New().Parse([]byte("  \n ")); !errors.Is(err, ir.ErrEmptyContent) {
		t.Errorf("Parse() error = %v, want ErrEmptyContent", err)
	}
}

func TestSerialize(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "HOST", Val: ir.FromString("localhost")},
		{Key: "PORT", Val: ir.FromInt(5432)},
		{Key: "DEBUG", Val: ir.FromBool(true)},
		{Key: "NAME", Val: ir.FromString("my app")},
		{Key: "TAG", Val: ir.FromString("a#b")},
	})

	out, err := New().Serialize(node)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	want := "HOST=localhost\n" +
		"PORT=5432\n" +
		"DEBUG=true\n" +
		"NAME=\"my app\"\n" +
		"TAG=\"a#b\""
	if string(out) != want {
		t.Errorf("Serialize() = %q, want %q", out, want)
	}
}

func TestSerializeComplexValue(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "LIMITS", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "max", Val: ir.FromInt(10)},
		})},
	})

	out, err := New().Serialize(node)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	want := "# Complex object for key \"LIMITS\"\n" +
		`LIMITS="{"max":10}"`
	if string(out) != want {
		t.Errorf("Serialize() = %q, want %q", out, want)
	}
}

func TestSerializeRequiresObject(t *testing.T) {
	for _, n := range []*ir.Node{nil, ir.FromString("x"), ir.FromSlice(nil)} {
		_, err := New().Serialize(n)
		var serr *ir.SerializationError
		if !errors.As(err, &serr) {
			t.Errorf("Serialize(%v) error = %T, want *ir.SerializationError", n, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	in := "A=1\nB=two\nC=true"
	node, err := New().Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	out, err := New().Serialize(node)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if string(out) != in {
		t.Errorf("round-trip = %q, want %q", out, in)
	}
}
