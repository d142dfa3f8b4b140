package spanedit

import (
	"strings"

	"github.com/cfgdoc/cfgdoc/debug"
	"github.com/cfgdoc/cfgdoc/format"
	"github.com/cfgdoc/cfgdoc/ir"
	"github.com/cfgdoc/cfgdoc/ir/fieldpath"
)

// Span is a byte range in the original text, start inclusive, end
// exclusive.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Splice replaces the span's bytes in content with replacement,
// keeping every other byte.
func Splice(content string, s Span, replacement string) string {
	var sb strings.Builder
	sb.Grow(len(content) - s.Len() + len(replacement))
	sb.WriteString(content[:s.Start])
	sb.WriteString(replacement)
	sb.WriteString(content[s.End:])
	return sb.String()
}

// Updater edits one value in serialized text without reformatting the
// rest. FindValueSpan returns the byte range of the value addressed by
// path; ReplaceValue splices a new value into that range, applying the
// format's quoting and escaping to newValue first.
type Updater interface {
	Validate(content string) error
	FindValueSpan(content string, path *fieldpath.Path) (Span, error)
	ReplaceValue(content string, path *fieldpath.Path, newValue string) (string, error)
}

// ForFormat returns the updater for f. YAML has no byte-preserving
// updater here.
func ForFormat(f format.Format) (Updater, error) {
	switch {
	case f.IsJSON():
		return JSONUpdater{}, nil
	case f.IsXMLFamily():
		return XMLUpdater{}, nil
	case f.IsEnv():
		return EnvUpdater{}, nil
	}
	return nil, &ir.UnsupportedFormatError{Key: f.String()}
}

// Apply validates content and replaces the value at path, preserving
// every byte outside the value span. The empty path addresses nothing
// settable and fails.
func Apply(f format.Format, content string, path *fieldpath.Path, newValue string) (string, error) {
	if path == nil {
		return "", &ir.PathNotFoundError{Path: ""}
	}
	u, err := ForFormat(f)
	if err != nil {
		return "", err
	}
	if err := u.Validate(content); err != nil {
		return "", err
	}
	if debug.Span() {
		debug.Logf("spanedit: %s %s = %q\n", f, path, newValue)
	}
	return u.ReplaceValue(content, path, newValue)
}

// lineCol converts a byte offset to a 1-based line and column.
func lineCol(content string, offset int) (int, int) {
	if offset > len(content) {
		offset = len(content)
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if content[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
