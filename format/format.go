package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

type Format int

const (
	JSONFormat Format = iota
	XMLFormat
	EnvFormat
	// ConfigFormat is the ambiguous ".config" type. Content sniffing
	// narrows it to JSON, XML, or Env where possible; what remains is
	// handled by the XML codec.
	ConfigFormat
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"json":   JSONFormat,
		"xml":    XMLFormat,
		"env":    EnvFormat,
		"config": ConfigFormat,
		"yaml":   YAMLFormat,
		"yml":    YAMLFormat,
	}[strings.ToLower(v)]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case XMLFormat:
		return []byte("xml"), nil
	case EnvFormat:
		return []byte("env"), nil
	case ConfigFormat:
		return []byte("config"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool   { return f == JSONFormat }
func (f Format) IsXML() bool    { return f == XMLFormat }
func (f Format) IsEnv() bool    { return f == EnvFormat }
func (f Format) IsConfig() bool { return f == ConfigFormat }
func (f Format) IsYAML() bool   { return f == YAMLFormat }

// IsXMLFamily reports whether f parses with the XML codec. Config
// documents that escape sniffing fall back to XML handling.
func (f Format) IsXMLFamily() bool {
	return f == XMLFormat || f == ConfigFormat
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case XMLFormat:
		return ".xml"
	case EnvFormat:
		return ".env"
	case ConfigFormat:
		return ".config"
	case YAMLFormat:
		return ".yaml"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{JSONFormat, XMLFormat, EnvFormat, ConfigFormat, YAMLFormat}
}

var envLineRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*\s*=`)

// Detect resolves a file's logical format from its name and, for the
// ambiguous ".config" extension, its content:
//
//  1. .json, .xml, .env, .yaml/.yml map directly.
//  2. .config with content: trimmed content starting with '{' or '['
//     that is valid JSON is JSON; content starting with "<?xml" or '<'
//     is XML; otherwise if at least half of the non-empty, non-comment
//     lines look like KEY=..., it is Env; what remains is Config.
//  3. .config without content stays Config.
//
// Any other extension is a bad format error.
func Detect(filename string, content []byte) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return JSONFormat, nil
	case ".xml":
		return XMLFormat, nil
	case ".env":
		return EnvFormat, nil
	case ".yaml", ".yml":
		return YAMLFormat, nil
	case ".config":
		if content == nil {
			return ConfigFormat, nil
		}
		return sniffConfig(content), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, strings.TrimPrefix(ext, "."))
}

// sniffConfig disambiguates ".config" content. The order matters: a
// JSON-looking document that fails to parse falls through to the XML
// check, then the Env heuristic, then Config.
func sniffConfig(content []byte) Format {
	trimmed := strings.TrimSpace(string(content))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if json.Valid([]byte(trimmed)) {
			return JSONFormat
		}
	}
	if strings.HasPrefix(trimmed, "<?xml") || strings.HasPrefix(trimmed, "<") {
		return XMLFormat
	}
	total, matching := 0, 0
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		total++
		if envLineRE.MatchString(line) {
			matching++
		}
	}
	if total > 0 && matching*2 >= total {
		return EnvFormat
	}
	return ConfigFormat
}
