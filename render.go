package cfgdoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/cfgdoc/cfgdoc/ir"
)

type renderConfig struct {
	color    *bool
	original *ir.Node
}

type RenderOption func(*renderConfig)

// RenderColor forces colored or plain output, overriding terminal
// detection.
func RenderColor(v bool) RenderOption {
	return func(c *renderConfig) { c.color = &v }
}

// RenderOriginal supplies the tree the changes were diffed against, so
// each line shows the old value next to the new one.
func RenderOriginal(doc *ir.Node) RenderOption {
	return func(c *renderConfig) { c.original = doc }
}

// RenderChanges renders one line per change:
//
//	server.port: 8080 -> 9090
//
// Old values appear only with RenderOriginal. Output is plain unless
// RenderColor(true) is given.
func RenderChanges(changes []Change, opts ...RenderOption) string {
	cfg := renderConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	colored := cfg.color != nil && *cfg.color
	return renderString(changes, cfg.original, colored)
}

// WriteChanges writes the rendering to w. Without an explicit
// RenderColor option, color turns on when w is a terminal.
func WriteChanges(w io.Writer, changes []Change, opts ...RenderOption) error {
	cfg := renderConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	colored := false
	switch {
	case cfg.color != nil:
		colored = *cfg.color
	default:
		if f, ok := w.(*os.File); ok {
			colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	_, err := io.WriteString(w, renderString(changes, cfg.original, colored))
	return err
}

func renderString(changes []Change, original *ir.Node, colored bool) string {
	var sb strings.Builder
	for _, ch := range changes {
		pathText := ch.Path.String()
		if pathText == "" {
			pathText = "(document)"
		}
		newText := ch.Text()
		oldText, hasOld := "", false
		if original != nil {
			if node, ok := ir.Lookup(original, ch.Path); ok {
				oldText = ir.Stringify(node)
				hasOld = true
			}
		}
		if colored {
			pathText = colorize(pathText, color.FgCyan)
			oldText = colorize(oldText, color.FgRed)
			newText = colorize(newText, color.FgGreen)
		}
		if hasOld {
			fmt.Fprintf(&sb, "%s: %s -> %s\n", pathText, oldText, newText)
		} else {
			fmt.Fprintf(&sb, "%s: %s\n", pathText, newText)
		}
	}
	return sb.String()
}

// colorize forces the attribute on so an explicit color request wins
// over the package's own terminal detection.
func colorize(s string, attr color.Attribute) string {
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}
