package spanedit

import (
	"fmt"
	"strings"

	"github.com/cfgdoc/cfgdoc/ir"
	"github.com/cfgdoc/cfgdoc/ir/fieldpath"
)

// XMLUpdater edits XML attribute values and element text in place.
// Paths name elements by tag; a numeric segment selects among
// repeated sibling tags, and a final @name segment addresses an
// attribute. The value span for an attribute sits inside its quotes,
// for text between the surrounding tags.
type XMLUpdater struct{}

func (XMLUpdater) Validate(content string) error {
	sc := &xmlScanner{src: content}
	var stack []string
	for {
		ev, err := sc.next()
		if err != nil {
			return err
		}
		if ev == nil {
			break
		}
		switch ev.kind {
		case xmlStartEvent:
			if !ev.selfClose {
				stack = append(stack, ev.name)
			}
		case xmlEndEvent:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) > 0 {
		return &ir.SyntaxError{Msg: "unclosed tags: " + strings.Join(stack, ", ")}
	}
	return nil
}

func (XMLUpdater) FindValueSpan(content string, path *fieldpath.Path) (Span, error) {
	return findXMLSpan(content, path)
}

func (XMLUpdater) ReplaceValue(content string, path *fieldpath.Path, newValue string) (string, error) {
	span, err := findXMLSpan(content, path)
	if err != nil {
		return "", err
	}
	return Splice(content, span, xmlValueEscaper.Replace(newValue)), nil
}

var xmlValueEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

type xmlQuerySeg struct {
	name string
	idx  int
}

type xmlQuery struct {
	segs []xmlQuerySeg
	attr string
}

// xmlQueryFromPath splits a path into element segments plus an
// optional trailing attribute. A numeric segment binds to the element
// segment before it as an occurrence index; idx -1 matches any
// occurrence.
func xmlQueryFromPath(p *fieldpath.Path) (xmlQuery, error) {
	q := xmlQuery{}
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Attr != nil:
			if x.Next != nil {
				return q, &ir.PathNotFoundError{Path: p.String()}
			}
			q.attr = *x.Attr
		case x.Index != nil:
			if len(q.segs) == 0 || q.segs[len(q.segs)-1].idx >= 0 {
				return q, &ir.PathNotFoundError{Path: p.String()}
			}
			q.segs[len(q.segs)-1].idx = *x.Index
		case x.Key != nil:
			q.segs = append(q.segs, xmlQuerySeg{name: *x.Key, idx: -1})
		}
	}
	if len(q.segs) == 0 {
		return q, &ir.PathNotFoundError{Path: p.String()}
	}
	return q, nil
}

func findXMLSpan(content string, path *fieldpath.Path) (Span, error) {
	q, err := xmlQueryFromPath(path)
	if err != nil {
		return Span{}, err
	}
	type frame struct {
		name string
		idx  int
	}
	var stack []frame
	counts := []map[string]int{{}}
	matches := func() bool {
		if len(stack) != len(q.segs) {
			return false
		}
		for i, f := range stack {
			if f.name != q.segs[i].name {
				return false
			}
			if q.segs[i].idx >= 0 && f.idx != q.segs[i].idx {
				return false
			}
		}
		return true
	}
	sc := &xmlScanner{src: content}
	for {
		ev, err := sc.next()
		if err != nil {
			return Span{}, err
		}
		if ev == nil {
			break
		}
		switch ev.kind {
		case xmlStartEvent:
			cur := counts[len(counts)-1]
			idx := cur[ev.name]
			cur[ev.name] = idx + 1
			stack = append(stack, frame{name: ev.name, idx: idx})
			if q.attr != "" && matches() {
				for _, a := range ev.attrs {
					if a.name == q.attr {
						return a.value, nil
					}
				}
				return Span{}, &ir.PathNotFoundError{Path: path.String()}
			}
			if ev.selfClose {
				stack = stack[:len(stack)-1]
			} else {
				counts = append(counts, map[string]int{})
			}
		case xmlEndEvent:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				counts = counts[:len(counts)-1]
			}
		case xmlTextEvent:
			if q.attr == "" && matches() {
				return ev.text, nil
			}
		}
	}
	return Span{}, &ir.PathNotFoundError{Path: path.String()}
}

type xmlEventKind int

const (
	xmlStartEvent xmlEventKind = iota
	xmlEndEvent
	xmlTextEvent
)

type xmlAttrSpan struct {
	name  string
	value Span
}

type xmlEvent struct {
	kind      xmlEventKind
	name      string
	attrs     []xmlAttrSpan
	selfClose bool
	text      Span
}

// xmlScanner walks raw XML bytes emitting start, end, and text events
// with spans into the source. Comments, processing instructions,
// CDATA sections, and declarations are consumed silently. Namespace
// prefixes are stripped from element and attribute names.
type xmlScanner struct {
	src string
	pos int
}

func (s *xmlScanner) next() (*xmlEvent, error) {
	for s.pos < len(s.src) {
		if s.src[s.pos] != '<' {
			start := s.pos
			for s.pos < len(s.src) && s.src[s.pos] != '<' {
				s.pos++
			}
			return &xmlEvent{kind: xmlTextEvent, text: Span{Start: start, End: s.pos}}, nil
		}
		rest := s.src[s.pos:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			end := strings.Index(rest, "-->")
			if end < 0 {
				return nil, s.errorAt(s.pos, "unterminated comment")
			}
			s.pos += end + len("-->")
		case strings.HasPrefix(rest, "<![CDATA["):
			end := strings.Index(rest, "]]>")
			if end < 0 {
				return nil, s.errorAt(s.pos, "unterminated CDATA section")
			}
			s.pos += end + len("]]>")
		case strings.HasPrefix(rest, "<?"):
			end := strings.Index(rest, "?>")
			if end < 0 {
				return nil, s.errorAt(s.pos, "unterminated processing instruction")
			}
			s.pos += end + len("?>")
		case strings.HasPrefix(rest, "<!"):
			end := strings.IndexByte(rest, '>')
			if end < 0 {
				return nil, s.errorAt(s.pos, "unterminated declaration")
			}
			s.pos += end + 1
		case strings.HasPrefix(rest, "</"):
			return s.scanEndTag()
		default:
			return s.scanStartTag()
		}
	}
	return nil, nil
}

func (s *xmlScanner) scanEndTag() (*xmlEvent, error) {
	i := s.pos + len("</")
	nameStart := i
	for i < len(s.src) && s.src[i] != '>' {
		i++
	}
	if i >= len(s.src) {
		return nil, s.errorAt(s.pos, "unterminated closing tag")
	}
	name := strings.TrimSpace(s.src[nameStart:i])
	if name == "" {
		return nil, s.errorAt(s.pos, "malformed closing tag")
	}
	s.pos = i + 1
	return &xmlEvent{kind: xmlEndEvent, name: localXMLName(name)}, nil
}

func (s *xmlScanner) scanStartTag() (*xmlEvent, error) {
	tagStart := s.pos
	i := s.pos + 1
	nameStart := i
	for i < len(s.src) && !isXMLSpace(s.src[i]) && s.src[i] != '>' && s.src[i] != '/' {
		i++
	}
	name := s.src[nameStart:i]
	if name == "" {
		return nil, s.errorAt(tagStart, "malformed start tag")
	}
	ev := &xmlEvent{kind: xmlStartEvent, name: localXMLName(name)}
	for {
		i = skipXMLSpace(s.src, i)
		if i >= len(s.src) {
			return nil, s.errorAt(tagStart, "unterminated start tag")
		}
		switch s.src[i] {
		case '>':
			s.pos = i + 1
			return ev, nil
		case '/':
			if i+1 < len(s.src) && s.src[i+1] == '>' {
				ev.selfClose = true
				s.pos = i + 2
				return ev, nil
			}
			return nil, s.errorAt(i, "malformed start tag")
		default:
			anStart := i
			for i < len(s.src) && s.src[i] != '=' && !isXMLSpace(s.src[i]) && s.src[i] != '>' && s.src[i] != '/' {
				i++
			}
			attrName := s.src[anStart:i]
			if attrName == "" {
				return nil, s.errorAt(anStart, "malformed attribute")
			}
			i = skipXMLSpace(s.src, i)
			if i >= len(s.src) || s.src[i] != '=' {
				return nil, s.errorAt(anStart, "expected '=' after attribute name")
			}
			i = skipXMLSpace(s.src, i+1)
			if i >= len(s.src) || (s.src[i] != '"' && s.src[i] != '\'') {
				return nil, s.errorAt(anStart, "expected quoted attribute value")
			}
			quote := s.src[i]
			i++
			vStart := i
			for i < len(s.src) && s.src[i] != quote {
				i++
			}
			if i >= len(s.src) {
				return nil, s.errorAt(vStart, "unterminated attribute value")
			}
			ev.attrs = append(ev.attrs, xmlAttrSpan{
				name:  localXMLName(attrName),
				value: Span{Start: vStart, End: i},
			})
			i++
		}
	}
}

func (s *xmlScanner) errorAt(pos int, msg string) error {
	line, col := lineCol(s.src, pos)
	return &ir.SyntaxError{
		Msg:  fmt.Sprintf("XML parsing error: %s", msg),
		Line: line,
		Col:  col,
	}
}

func localXMLName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func isXMLSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func skipXMLSpace(s string, idx int) int {
	for idx < len(s) && isXMLSpace(s[idx]) {
		idx++
	}
	return idx
}
