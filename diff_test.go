package cfgdoc

import (
	"testing"

	"github.com/cfgdoc/cfgdoc/codec/jsoncodec"
	"github.com/cfgdoc/cfgdoc/ir"
)

func parseJSON(t *testing.T, in string) *ir.Node {
	t.Helper()
	node, err := jsoncodec.New().Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse(%s) error = %v", in, err)
	}
	return node
}

func TestExtractChangesScalar(t *testing.T) {
	original := parseJSON(t, `{"a": 1, "name": "app", "debug": true, "rate": 1.50}`)

	tests := []struct {
		name     string
		path     string
		value    string
		want     string
		wantType ir.Type
	}{
		{"number edit", "a", "2", "2", ir.NumberType},
		{"number keeps literal", "rate", "2.25", "2.25", ir.NumberType},
		{"string edit", "name", "orders", "orders", ir.StringType},
		{"bool on", "debug", "on", "", 0},       // already true, no change
		{"bool true", "debug", "true", "", 0},   // already true, no change
		{"bool false", "debug", "false", "false", ir.BoolType},
		{"bool garbage means false", "debug", "yes", "false", ir.BoolType},
		// A non-numeric literal against a number falls back to string.
		{"number non-numeric", "a", "abc", "abc", ir.StringType},
		// Absent paths always change, as plain strings.
		{"missing path", "brandNew", "5", "5", ir.StringType},
		{"missing nested", "x.y", "v", "v", ir.StringType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edits := NewEditSet()
			edits.SetScalar(tt.path, tt.value)
			changes := ExtractChanges(original, edits)

			if tt.want == "" && tt.wantType == 0 {
				if len(changes) != 0 {
					t.Fatalf("ExtractChanges() = %v, want none", changes)
				}
				return
			}
			if len(changes) != 1 {
				t.Fatalf("len(changes) = %d, want 1", len(changes))
			}
			ch := changes[0]
			if got := ch.Path.String(); got != tt.path {
				t.Errorf("change path = %q, want %q", got, tt.path)
			}
			if got := ch.Text(); got != tt.want {
				t.Errorf("change value = %q, want %q", got, tt.want)
			}
			if ch.Value.Type != tt.wantType {
				t.Errorf("change type = %v, want %v", ch.Value.Type, tt.wantType)
			}
		})
	}
}

func TestExtractChangesUnchanged(t *testing.T) {
	original := parseJSON(t, `{"a": 1, "s": "x"}`)
	edits := NewEditSet()
	edits.SetScalar("a", "1")
	edits.SetScalar("s", "x")
	if changes := ExtractChanges(original, edits); len(changes) != 0 {
		t.Errorf("ExtractChanges() = %v, want none", changes)
	}
}

func TestExtractChangesOrder(t *testing.T) {
	original := parseJSON(t, `{"a": 1, "b": 2, "c": 3}`)
	edits := NewEditSet()
	edits.SetScalar("c", "30")
	edits.SetScalar("a", "10")
	edits.SetScalar("b", "2") // unchanged, dropped
	edits.SetScalar("d", "40")

	changes := ExtractChanges(original, edits)
	want := []string{"c", "a", "d"}
	if len(changes) != len(want) {
		t.Fatalf("len(changes) = %d, want %d", len(changes), len(want))
	}
	for i, w := range want {
		if got := changes[i].Path.String(); got != w {
			t.Errorf("changes[%d] path = %q, want %q", i, got, w)
		}
	}
}

func TestExtractChangesArray(t *testing.T) {
	original := parseJSON(t, `{"tags": ["a", "b"], "n": 1}`)

	tests := []struct {
		name      string
		path      string
		items     []string
		wantCount int
	}{
		{"append", "tags", []string{"a", "b", "c"}, 1},
		{"remove", "tags", []string{"a"}, 1},
		{"reorder", "tags", []string{"b", "a"}, 1},
		{"unchanged", "tags", []string{"a", "b"}, 0},
		// Absent and non-array originals count as empty arrays.
		{"absent empty snapshot", "missing", nil, 0},
		{"absent with items", "missing", []string{"x"}, 1},
		{"scalar original", "n", []string{"1"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edits := NewEditSet()
			edits.SetArray(tt.path, tt.items...)
			changes := ExtractChanges(original, edits)
			if len(changes) != tt.wantCount {
				t.Fatalf("len(changes) = %d, want %d", len(changes), tt.wantCount)
			}
			if tt.wantCount == 0 {
				return
			}
			ch := changes[0]
			if ch.Value.Type != ir.ArrayType {
				t.Fatalf("change type = %v, want array", ch.Value.Type)
			}
			if len(ch.Value.Values) != len(tt.items) {
				t.Errorf("len(change array) = %d, want %d", len(ch.Value.Values), len(tt.items))
			}
		})
	}
}

// Full cycle from the flat JSON document through edit, diff, patch,
// and serialize.
func TestDiffPatchCycle(t *testing.T) {
	original := parseJSON(t, `{"a": 1}`)

	edits := NewEditSet()
	edits.SetScalar("a", "2")
	changes := ExtractChanges(original, edits)
	if len(changes) != 1 {
		t.Fatalf("len(changes) = %d, want 1", len(changes))
	}
	if changes[0].Value.Type != ir.NumberType || changes[0].Text() != "2" {
		t.Fatalf("change = %s (%v), want number 2", changes[0].Text(), changes[0].Value.Type)
	}

	patched, err := ApplyChanges(original, changes)
	if err != nil {
		t.Fatalf("ApplyChanges() error = %v", err)
	}
	if got := ir.Stringify(ir.Get(patched, "a")); got != "2" {
		t.Errorf("patched a = %q, want 2", got)
	}
	if got := ir.Stringify(ir.Get(original, "a")); got != "1" {
		t.Errorf("original a = %q after patch, want 1", got)
	}

	out, err := jsoncodec.New().Serialize(patched)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if want := "{\n  \"a\": 2\n}"; string(out) != want {
		t.Errorf("Serialize() = %q, want %q", out, want)
	}
}

func TestExtractChangesArrayCycle(t *testing.T) {
	original := parseJSON(t, `{"tags": ["a", "b"]}`)
	edits := NewEditSet()
	edits.SetArray("tags", "a", "b", "c")

	changes := ExtractChanges(original, edits)
	if len(changes) != 1 {
		t.Fatalf("len(changes) = %d, want 1", len(changes))
	}
	patched, err := ApplyChanges(original, changes)
	if err != nil {
		t.Fatalf("ApplyChanges() error = %v", err)
	}
	tags := ir.Get(patched, "tags")
	if tags == nil || tags.Type != ir.ArrayType || len(tags.Values) != 3 {
		t.Fatalf("patched tags = %v, want 3-element array", tags)
	}
}

func TestExtractChangesNilInputs(t *testing.T) {
	if got := ExtractChanges(parseJSON(t, `{"a":1}`), nil); got != nil {
		t.Errorf("ExtractChanges(doc, nil) = %v, want nil", got)
	}

	// Edits against a nil original all land as new string values.
	edits := NewEditSet()
	edits.SetScalar("a", "1")
	changes := ExtractChanges(nil, edits)
	if len(changes) != 1 || changes[0].Value.Type != ir.StringType {
		t.Errorf("ExtractChanges(nil, edits) = %v, want one string change", changes)
	}
}

func TestChangeString(t *testing.T) {
	chs := ExtractChanges(parseJSON(t, `{"a":1}`), func() *EditSet {
		e := NewEditSet()
		e.SetScalar("a", "2")
		return e
	}())
	if got := chs[0].String(); got != "a = 2" {
		t.Errorf("Change.String() = %q, want %q", got, "a = 2")
	}
}
