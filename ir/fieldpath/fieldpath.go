package fieldpath

import (
	"strconv"
	"strings"
)

// Path is one segment of a field path, linked to the rest. A nil *Path
// is the empty path and addresses a tree's root.
//
// Exactly one of Key, Index, Attr is set per segment:
//   - Key: object field or element child tag ("server", "timeout")
//   - Index: array position ("0", "12")
//   - Attr: XML attribute ("@host"), only meaningful as the final
//     segment
type Path struct {
	Key   *string
	Index *int
	Attr  *string
	Next  *Path
}

// Key returns a single-segment path addressing an object field.
func Key(name string) *Path {
	return &Path{Key: &name}
}

// Index returns a single-segment path addressing an array position.
func Index(i int) *Path {
	return &Path{Index: &i}
}

// Attr returns a single-segment path addressing an XML attribute.
func Attr(name string) *Path {
	return &Path{Attr: &name}
}

// Parse parses a dotted path string. Segments are split on '.'; a
// segment starting with '@' becomes an Attr, an all-digit segment
// becomes an Index, anything else a Key. The empty string parses to
// nil, the empty path. Parse cannot fail: every string names some
// path.
func Parse(raw string) *Path {
	if raw == "" {
		return nil
	}
	segs := strings.Split(raw, ".")
	var root, last *Path
	for _, seg := range segs {
		p := parseSegment(seg)
		if root == nil {
			root = p
		} else {
			last.Next = p
		}
		last = p
	}
	return root
}

func parseSegment(seg string) *Path {
	if strings.HasPrefix(seg, "@") {
		name := seg[1:]
		return &Path{Attr: &name}
	}
	if isDigits(seg) {
		if i, err := strconv.Atoi(seg); err == nil {
			return &Path{Index: &i}
		}
	}
	key := seg
	return &Path{Key: &key}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String renders the path in the dotted form Parse reads, segments
// joined by '.', attributes as "@name", indices as bare digits.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	for x := p; x != nil; x = x.Next {
		if x != p {
			sb.WriteByte('.')
		}
		sb.WriteString(x.SegmentString())
	}
	return sb.String()
}

// SegmentString renders only this segment.
func (p *Path) SegmentString() string {
	switch {
	case p == nil:
		return ""
	case p.Attr != nil:
		return "@" + *p.Attr
	case p.Index != nil:
		return strconv.Itoa(*p.Index)
	case p.Key != nil:
		return *p.Key
	}
	return ""
}

// Len returns the number of segments.
func (p *Path) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// Last returns the final segment, nil for the empty path.
func (p *Path) Last() *Path {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x
}

// Append returns a new path consisting of p's segments followed by
// next's. Neither input is modified.
func (p *Path) Append(next *Path) *Path {
	if p == nil {
		return next.clone()
	}
	res := p.clone()
	res.Last().Next = next.clone()
	return res
}

func (p *Path) clone() *Path {
	if p == nil {
		return nil
	}
	res := &Path{}
	if p.Key != nil {
		k := *p.Key
		res.Key = &k
	}
	if p.Index != nil {
		i := *p.Index
		res.Index = &i
	}
	if p.Attr != nil {
		a := *p.Attr
		res.Attr = &a
	}
	res.Next = p.Next.clone()
	return res
}

// Equal reports segment-wise equality.
func (p *Path) Equal(other *Path) bool {
	return p.Compare(other) == 0
}

// Compare orders two paths segment by segment, shorter prefix first.
// Within a segment position: Key < Index < Attr, then by value.
func (p *Path) Compare(other *Path) int {
	pa, pb := p, other
	for pa != nil && pb != nil {
		if c := compareSegment(pa, pb); c != 0 {
			return c
		}
		pa = pa.Next
		pb = pb.Next
	}
	if pa == nil && pb == nil {
		return 0
	}
	if pa == nil {
		return -1
	}
	return 1
}

func compareSegment(a, b *Path) int {
	ra, rb := segmentRank(a), segmentRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 0:
		return strings.Compare(*a.Key, *b.Key)
	case 1:
		switch {
		case *a.Index < *b.Index:
			return -1
		case *a.Index > *b.Index:
			return 1
		}
		return 0
	case 2:
		return strings.Compare(*a.Attr, *b.Attr)
	}
	return 0
}

func segmentRank(p *Path) int {
	switch {
	case p.Key != nil:
		return 0
	case p.Index != nil:
		return 1
	default:
		return 2
	}
}

func (p *Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(d []byte) error {
	pp := Parse(string(d))
	if pp == nil {
		*p = Path{}
		return nil
	}
	*p = *pp
	return nil
}
