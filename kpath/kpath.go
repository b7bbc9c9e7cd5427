package kpath

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// KPath represents a kinded path as a linked list of segments. A nil *KPath
// is the root.
type KPath struct {
	Field    *string // Object field name
	FieldAll bool    // Object field wildcard .*
	Index    *int    // Array index
	IndexAll bool    // Array wildcard [*]
	Next     *KPath  // Next segment in path (nil for leaf)
}

func Field(name string) *KPath {
	return &KPath{Field: &name}
}

func Index(i int) *KPath {
	return &KPath{Index: &i}
}

// String returns the kinded path string representation of this KPath.
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		switch {
		case x.FieldAll:
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteByte('*')
		case x.Field != nil:
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(QuoteField(*x.Field))
		case x.IndexAll:
			buf.WriteString("[*]")
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

// SegmentString returns the representation of this single segment.
func (p *KPath) SegmentString() string {
	if p == nil {
		return ""
	}
	switch {
	case p.FieldAll:
		return "*"
	case p.Field != nil:
		return QuoteField(*p.Field)
	case p.IndexAll:
		return "[*]"
	case p.Index != nil:
		return fmt.Sprintf("[%d]", *p.Index)
	}
	return ""
}

// QuoteField returns f as it must appear in a kinded path.
func QuoteField(f string) string {
	if NeedsQuote(f) {
		return strconv.Quote(f)
	}
	return f
}

// NeedsQuote reports whether a field name must be quoted in a kinded path.
func NeedsQuote(f string) bool {
	if f == "" || f == "*" {
		return true
	}
	if f[0] >= '0' && f[0] <= '9' {
		return true
	}
	for _, r := range f {
		switch r {
		case '.', '[', ']', '"', '\'', '`', '\\':
			return true
		}
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}

// Parse parses a kinded path string into a KPath structure.
//
// Examples:
//   - "a.b.c" → Object path with 3 segments
//   - "a[0][1]" → Array path with 3 segments
//   - "a[*].b" → Array wildcard then object
//   - "" → Root path (returns nil)
//
// Returns an error if the path syntax is invalid.
func Parse(kpath string) (*KPath, error) {
	if kpath == "" {
		return nil, nil
	}
	root := &KPath{}
	if err := parseKFrag(kpath, root, true); err != nil {
		return nil, fmt.Errorf("kpath %q: %w", kpath, err)
	}
	return root, nil
}

// MustParse is like Parse but panics on error.
func MustParse(kpath string) *KPath {
	kp, err := Parse(kpath)
	if err != nil {
		panic(err)
	}
	return kp
}

func parseKFrag(frag string, parent *KPath, top bool) error {
	switch frag[0] {
	case '.':
		if top {
			return fmt.Errorf("leading '.'")
		}
		if len(frag) > 1 && frag[1] == '*' {
			parent.FieldAll = true
			return parseNext(frag[2:], parent)
		}
		field, rest, err := parseKField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		return parseNext(rest, parent)
	case '[':
		i := strings.IndexByte(frag, ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, all, err := parseKIndex(frag[1:i])
		if err != nil {
			return err
		}
		parent.IndexAll = all
		if !all {
			parent.Index = &index
		}
		return parseNext(frag[i+1:], parent)
	default:
		if !top {
			return fmt.Errorf("expected '.' or '[', got %q", frag[0])
		}
		if frag[0] == '*' && (len(frag) == 1 || frag[1] == '.' || frag[1] == '[') {
			parent.FieldAll = true
			return parseNext(frag[1:], parent)
		}
		field, rest, err := parseKField(frag)
		if err != nil {
			return err
		}
		parent.Field = &field
		return parseNext(rest, parent)
	}
}

func parseNext(rest string, parent *KPath) error {
	if len(rest) == 0 {
		return nil
	}
	next := &KPath{}
	if err := parseKFrag(rest, next, false); err != nil {
		return err
	}
	parent.Next = next
	return nil
}

// parseKIndex parses an array index from a string like "0", "42", or "*".
func parseKIndex(is string) (index int, all bool, err error) {
	if is == "*" {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, false, fmt.Errorf("invalid array index %q: %v", is, err)
	}
	return int(u64), false, nil
}

// parseKField parses an object field name from a fragment. Unquoted fields
// stop at '.' or '['.
func parseKField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] == '"' || frag[0] == '`' {
		q, err := strconv.QuotedPrefix(frag)
		if err != nil {
			return "", "", fmt.Errorf("invalid quoted field: %w", err)
		}
		field, err = strconv.Unquote(q)
		if err != nil {
			return "", "", fmt.Errorf("invalid quoted field: %w", err)
		}
		return field, frag[len(q):], nil
	}
	i := strings.IndexAny(frag, ".[")
	if i == -1 {
		return frag, "", nil
	}
	if i == 0 {
		return "", "", fmt.Errorf("empty field")
	}
	return frag[:i], frag[i:], nil
}

// Parent returns the path without its last segment, or nil.
func (p *KPath) Parent() *KPath {
	if p == nil || p.Next == nil {
		return nil
	}
	res := p.segment()
	res.Next = p.Next.Parent()
	return res
}

// Last returns the last segment of p.
func (p *KPath) Last() *KPath {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x
}

// Append returns a copy of p followed by q.
func (p *KPath) Append(q *KPath) *KPath {
	if p == nil {
		return q.clone()
	}
	res := p.segment()
	res.Next = p.Next.Append(q)
	return res
}

func (p *KPath) clone() *KPath {
	if p == nil {
		return nil
	}
	res := p.segment()
	res.Next = p.Next.clone()
	return res
}

// segment copies the first segment of p without its continuation.
func (p *KPath) segment() *KPath {
	res := &KPath{FieldAll: p.FieldAll, IndexAll: p.IndexAll}
	if p.Field != nil {
		f := *p.Field
		res.Field = &f
	}
	if p.Index != nil {
		i := *p.Index
		res.Index = &i
	}
	return res
}

// HasWildcard reports whether any segment of p is a wildcard.
func (p *KPath) HasWildcard() bool {
	for x := p; x != nil; x = x.Next {
		if x.FieldAll || x.IndexAll {
			return true
		}
	}
	return false
}

// RSplit splits a kinded path into the parent path and the last segment.
// Panics if the path cannot be parsed.
//
// Examples:
//   - RSplit("a.b.c") → ("a.b", "c")
//   - RSplit("a[0]") → ("a", "[0]")
//   - RSplit("a") → ("", "a")
//   - RSplit("") → ("", "")
func RSplit(kpath string) (parentPath string, lastSegment string) {
	kp, err := Parse(kpath)
	if err != nil {
		panic(fmt.Sprintf("RSplit: invalid kinded path %q: %v", kpath, err))
	}
	if kp == nil {
		return "", ""
	}
	return kp.Parent().String(), kp.Last().SegmentString()
}

func (kp *KPath) MarshalText() ([]byte, error) {
	return []byte(kp.String()), nil
}

func (kp *KPath) UnmarshalText(d []byte) error {
	pp, err := Parse(string(d))
	if err != nil {
		return err
	}
	if pp == nil {
		*kp = KPath{}
		return nil
	}
	*kp = *pp
	return nil
}
