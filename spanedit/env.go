package spanedit

import (
	"fmt"
	"strings"

	"github.com/cfgdoc/cfgdoc/ir"
	"github.com/cfgdoc/cfgdoc/ir/fieldpath"
)

// EnvUpdater edits ENV values in place, addressing entries by a
// single-key path. Quoted value spans include their quotes, so a
// replacement controls the quoting of the whole token.
type EnvUpdater struct{}

type envEntry struct {
	key       string
	keySpan   Span
	valueSpan Span
	quote     byte
}

func (EnvUpdater) Validate(content string) error {
	_, err := parseEnvEntries(content)
	return err
}

func (EnvUpdater) FindValueSpan(content string, path *fieldpath.Path) (Span, error) {
	entry, err := findEnvEntry(content, path)
	if err != nil {
		return Span{}, err
	}
	return entry.valueSpan, nil
}

func (EnvUpdater) ReplaceValue(content string, path *fieldpath.Path, newValue string) (string, error) {
	entry, err := findEnvEntry(content, path)
	if err != nil {
		return "", err
	}
	replacement := newValue
	if entry.quote != 0 || strings.ContainsAny(newValue, " #\n\t") {
		replacement = `"` + escapeEnvString(newValue) + `"`
	}
	return Splice(content, entry.valueSpan, replacement), nil
}

func findEnvEntry(content string, path *fieldpath.Path) (envEntry, error) {
	if path == nil || path.Next != nil || path.Key == nil {
		return envEntry{}, &ir.PathNotFoundError{Path: path.String()}
	}
	entries, err := parseEnvEntries(content)
	if err != nil {
		return envEntry{}, err
	}
	for _, e := range entries {
		if e.key == *path.Key {
			return e, nil
		}
	}
	return envEntry{}, &ir.PathNotFoundError{Path: path.String()}
}

// parseEnvEntries lexes and rejects duplicate keys, reporting the
// position of the second occurrence.
func parseEnvEntries(content string) ([]envEntry, error) {
	entries, err := lexEnv(content)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.key] {
			line, col := lineCol(content, e.keySpan.Start)
			return nil, &ir.SyntaxError{
				Msg:  fmt.Sprintf("duplicate key %q", e.key),
				Line: line,
				Col:  col,
			}
		}
		seen[e.key] = true
	}
	return entries, nil
}

// lexEnv tokenizes line by line, keeping byte spans into content.
// Blank lines and # comments are skipped, an "export " prefix is
// allowed, and an unquoted value ends at an inline # comment with
// trailing spaces stripped.
func lexEnv(content string) ([]envEntry, error) {
	var entries []envEntry
	offset := 0
	lineNo := 0
	for offset < len(content) {
		lineNo++
		eol := offset
		for eol < len(content) && content[eol] != '\n' && content[eol] != '\r' {
			eol++
		}
		next := eol
		if next < len(content) {
			if content[next] == '\r' && next+1 < len(content) && content[next+1] == '\n' {
				next += 2
			} else {
				next++
			}
		}
		line := content[offset:eol]

		leadWS := 0
		for leadWS < len(line) && isEnvSpace(line[leadWS]) {
			leadWS++
		}
		trimmed := strings.TrimRight(line[leadWS:], " \t")
		if trimmed == "" || trimmed[0] == '#' {
			offset = next
			continue
		}

		idx := 0
		if strings.HasPrefix(trimmed, "export") &&
			(len(trimmed) == len("export") || isEnvSpace(trimmed[len("export")])) {
			idx = len("export")
			idx = skipEnvSpaces(trimmed, idx)
		}

		keyStart := idx
		for idx < len(trimmed) && !isEnvSpace(trimmed[idx]) && trimmed[idx] != '=' {
			idx++
		}
		keyEnd := idx
		idx = skipEnvSpaces(trimmed, idx)

		if idx >= len(trimmed) || trimmed[idx] != '=' {
			return nil, &ir.SyntaxError{
				Msg:  "missing '=' separator",
				Line: lineNo,
				Col:  leadWS + idx + 1,
			}
		}
		idx++
		idx = skipEnvSpaces(trimmed, idx)

		var quote byte
		valStart := idx
		valEnd := idx
		if idx < len(trimmed) && (trimmed[idx] == '"' || trimmed[idx] == '\'') {
			quote = trimmed[idx]
			j := idx + 1
			for j < len(trimmed) && trimmed[j] != quote {
				j++
			}
			if j >= len(trimmed) {
				return nil, &ir.SyntaxError{
					Msg:  "unterminated quoted value",
					Line: lineNo,
					Col:  leadWS + j + 1,
				}
			}
			valEnd = j + 1
		} else {
			j := len(trimmed)
			if pos := strings.IndexByte(trimmed[idx:], '#'); pos >= 0 {
				j = idx + pos
			}
			for j > idx && isEnvSpace(trimmed[j-1]) {
				j--
			}
			valEnd = j
		}

		base := offset + leadWS
		entries = append(entries, envEntry{
			key:       trimmed[keyStart:keyEnd],
			keySpan:   Span{Start: base + keyStart, End: base + keyEnd},
			valueSpan: Span{Start: base + valStart, End: base + valEnd},
			quote:     quote,
		})
		offset = next
	}
	return entries, nil
}

func isEnvSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func skipEnvSpaces(s string, idx int) int {
	for idx < len(s) && isEnvSpace(s[idx]) {
		idx++
	}
	return idx
}

func escapeEnvString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
