package value

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:   "null",
		BoolType:   "bool",
		NumberType: "number",
		StringType: "string",
		ArrayType:  "array",
		ObjectType: "object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, err := ParseType(string(d))
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

func ParseType(s string) (Type, error) {
	t, ok := map[string]Type{
		"null":   NullType,
		"bool":   BoolType,
		"number": NumberType,
		"string": StringType,
		"array":  ArrayType,
		"object": ObjectType,
	}[s]
	if !ok {
		return NullType, fmt.Errorf("%w: unrecognized type %q", ErrUnsupported, s)
	}
	return t, nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		NumberType,
		StringType,
		ArrayType,
		ObjectType,
	}
}

// IsLeaf reports whether values of type t have no children.
func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, ObjectType:
		return false
	default:
		return true
	}
}
