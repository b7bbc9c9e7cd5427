package edit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/vtree/model"
	"github.com/signadot/vtree/tree"
)

// Pointer is a parsed JSON Pointer (RFC 6901).
type Pointer []string

func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if s[0] != '/' {
		return nil, fmt.Errorf("%w: pointer %q does not start with /", ErrPath, s)
	}
	parts := strings.Split(s[1:], "/")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(strings.ReplaceAll(p, "~1", "/"), "~0", "~")
	}
	return Pointer(parts), nil
}

func (p Pointer) String() string {
	b := &strings.Builder{}
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(tok, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

func (p Pointer) IsRoot() bool {
	return len(p) == 0
}

// Parent returns p without its last token.
func (p Pointer) Parent() Pointer {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

func (p Pointer) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Resolve finds the node p points at.
func (p Pointer) Resolve(m *model.Model) (*tree.Node, error) {
	n := m.Root()
	for i, tok := range p {
		var next *tree.Node
		switch {
		case n.IsObject():
			pos, found := n.Value().FieldPos(tok)
			if found {
				next = n.Child(pos)
			}
		case n.IsArray():
			if row, err := index(tok); err == nil {
				next = n.Child(row)
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %s not found", ErrPath, p[:i+1])
		}
		n = next
	}
	return n, nil
}

// index parses an array index token: decimal without leading zeros.
func index(tok string) (int, error) {
	if tok == "" || len(tok) > 1 && tok[0] == '0' {
		return 0, fmt.Errorf("%w: array index %q", ErrPath, tok)
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: array index %q", ErrPath, tok)
		}
	}
	return strconv.Atoi(tok)
}
