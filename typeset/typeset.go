// Package typeset holds the type names an editing surface offers for
// retyping a node, and maps each name to a conversion target.
package typeset

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/vtree/value"
)

var ErrUnknownType = errors.New("unknown type name")

type Entry struct {
	Name   string
	Target value.Target
}

// Set is an ordered list of type names.
type Set struct {
	name    string
	entries []Entry
}

func New(name string, entries ...Entry) *Set {
	return &Set{name: name, entries: slices.Clone(entries)}
}

var (
	// Kinds names the value types themselves.
	Kinds = New("kinds",
		Entry{"null", value.To(value.NullType)},
		Entry{"bool", value.To(value.BoolType)},
		Entry{"number", value.ToNumber(value.Float64)},
		Entry{"string", value.To(value.StringType)},
		Entry{"array", value.To(value.ArrayType)},
		Entry{"object", value.To(value.ObjectType)},
	)
	JSON = New("json",
		Entry{"array", value.To(value.ArrayType)},
		Entry{"bool", value.To(value.BoolType)},
		Entry{"double", value.ToNumber(value.Float64)},
		Entry{"object", value.To(value.ObjectType)},
		Entry{"string", value.To(value.StringType)},
		Entry{"undefined", value.To(value.NullType)},
	)
	YAML = New("yaml",
		Entry{"array", value.To(value.ArrayType)},
		Entry{"bool", value.To(value.BoolType)},
		Entry{"double", value.ToNumber(value.Float64)},
		Entry{"float", value.ToNumber(value.Float32)},
		Entry{"int", value.ToNumber(value.Int32)},
		Entry{"longlong", value.ToNumber(value.Int64)},
		Entry{"object", value.To(value.ObjectType)},
		Entry{"string", value.To(value.StringType)},
		Entry{"uint", value.ToNumber(value.Uint32)},
		Entry{"ulonglong", value.ToNumber(value.Uint64)},
		Entry{"undefined", value.To(value.NullType)},
	)
)

// ByName returns the predefined set called name ("kinds", "json" or
// "yaml").
func ByName(name string) (*Set, error) {
	switch strings.ToLower(name) {
	case "kinds":
		return Kinds, nil
	case "json":
		return JSON, nil
	case "yaml":
		return YAML, nil
	}
	return nil, fmt.Errorf("%w: type set %q", ErrUnknownType, name)
}

func (s *Set) String() string {
	return s.name
}

func (s *Set) Len() int {
	return len(s.entries)
}

func (s *Set) Entries() []Entry {
	return slices.Clone(s.entries)
}

func (s *Set) Names() []string {
	res := make([]string, len(s.entries))
	for i := range s.entries {
		res[i] = s.entries[i].Name
	}
	return res
}

// Index returns the position of name in s, or -1. Names may be given in
// display form, as in "[int]".
func (s *Set) Index(name string) int {
	name = strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
	return slices.IndexFunc(s.entries, func(e Entry) bool {
		return e.Name == name
	})
}

// Lookup returns the conversion target named name.
func (s *Set) Lookup(name string) (value.Target, error) {
	i := s.Index(name)
	if i == -1 {
		return value.Target{}, fmt.Errorf("%w: %q not in %s", ErrUnknownType, name, s.name)
	}
	return s.entries[i].Target, nil
}

// Name returns the first name in s whose target has type t, or t's own
// name if there is none.
func (s *Set) Name(t value.Type) string {
	for _, e := range s.entries {
		if e.Target.Type == t {
			return e.Name
		}
	}
	return t.String()
}

// Display formats a type name the way the editor lists it.
func Display(name string) string {
	return "[" + name + "]"
}
