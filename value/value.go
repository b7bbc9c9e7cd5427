package value

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

type Value struct {
	Type Type

	Bool   bool
	Number float64
	String string

	// Fields holds object keys in ascending order; Fields[i] is the key of
	// Values[i]. Arrays use Values only.
	Fields []string
	Values []*Value
}

func Null() *Value {
	return &Value{Type: NullType}
}

func FromBool(b bool) *Value {
	return &Value{Type: BoolType, Bool: b}
}

func FromNumber(f float64) *Value {
	return &Value{Type: NumberType, Number: f}
}

func FromInt(i int64) *Value {
	return &Value{Type: NumberType, Number: float64(i)}
}

func FromString(s string) *Value {
	return &Value{Type: StringType, String: s}
}

func NewArray() *Value {
	return &Value{Type: ArrayType, Values: []*Value{}}
}

func NewObject() *Value {
	return &Value{Type: ObjectType, Fields: []string{}, Values: []*Value{}}
}

func FromSlice(vs []*Value) *Value {
	res := &Value{Type: ArrayType, Values: make([]*Value, len(vs))}
	for i, v := range vs {
		if v == nil {
			v = Null()
		}
		res.Values[i] = v
	}
	return res
}

func FromMap(m map[string]*Value) *Value {
	res := &Value{Type: ObjectType}
	keys := slices.Sorted(maps.Keys(m))
	res.Fields = keys
	res.Values = make([]*Value, len(keys))
	for i, k := range keys {
		v := m[k]
		if v == nil {
			v = Null()
		}
		res.Values[i] = v
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Value
}

// FromKeyVals builds an object from kvs in any order. Duplicate keys are an
// error.
func FromKeyVals(kvs []KeyVal) (*Value, error) {
	res := NewObject()
	for _, kv := range kvs {
		pos, found := res.FieldPos(kv.Key)
		if found {
			return nil, fmt.Errorf("%w %q", ErrDuplicateKey, kv.Key)
		}
		v := kv.Val
		if v == nil {
			v = Null()
		}
		res.InsertField(pos, kv.Key, v)
	}
	return res, nil
}

func (v *Value) IsArray() bool  { return v.Type == ArrayType }
func (v *Value) IsObject() bool { return v.Type == ObjectType }
func (v *Value) IsLeaf() bool   { return v.Type.IsLeaf() }

// Len returns the number of elements of an array or entries of an object,
// and 0 for scalars.
func (v *Value) Len() int {
	if v.Type.IsLeaf() {
		return 0
	}
	return len(v.Values)
}

// Get returns the value under key in an object, or nil.
func (v *Value) Get(key string) *Value {
	if v.Type != ObjectType {
		return nil
	}
	pos, found := v.FieldPos(key)
	if !found {
		return nil
	}
	return v.Values[pos]
}

func (v *Value) Clone() *Value {
	res := &Value{
		Type:   v.Type,
		Bool:   v.Bool,
		Number: v.Number,
		String: v.String,
	}
	switch v.Type {
	case ArrayType:
		res.Values = make([]*Value, len(v.Values))
		for i, vv := range v.Values {
			res.Values[i] = vv.Clone()
		}
	case ObjectType:
		res.Fields = slices.Clone(v.Fields)
		if res.Fields == nil {
			res.Fields = []string{}
		}
		res.Values = make([]*Value, len(v.Values))
		for i, vv := range v.Values {
			res.Values[i] = vv.Clone()
		}
	}
	return res
}

// Reset turns v into an empty value of type t in place; pointers to v stay
// valid.
func (v *Value) Reset(t Type) {
	*v = Value{Type: t}
	switch t {
	case ArrayType:
		v.Values = []*Value{}
	case ObjectType:
		v.Fields = []string{}
		v.Values = []*Value{}
	}
}

// Assign overwrites v in place with the contents of o. o must not be used
// afterwards; its children now belong to v.
func (v *Value) Assign(o *Value) {
	*v = *o
}

func (v *Value) Visit(f func(v *Value, isPost bool) (bool, error)) error {
	dive, err := f(v, false)
	if err != nil {
		return err
	}
	if dive {
		for _, vv := range v.Values {
			if err := vv.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(v, true); err != nil {
		return err
	}
	return nil
}

func (v *Value) GoString() string {
	b := &strings.Builder{}
	v.writeGo(b)
	return b.String()
}

func (v *Value) writeGo(b *strings.Builder) {
	switch v.Type {
	case NullType:
		b.WriteString("null")
	case BoolType:
		fmt.Fprintf(b, "%t", v.Bool)
	case NumberType:
		fmt.Fprintf(b, "%g", v.Number)
	case StringType:
		fmt.Fprintf(b, "%q", v.String)
	case ArrayType:
		b.WriteByte('[')
		for i, vv := range v.Values {
			if i > 0 {
				b.WriteByte(',')
			}
			vv.writeGo(b)
		}
		b.WriteByte(']')
	case ObjectType:
		b.WriteByte('{')
		for i, vv := range v.Values {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%q:", v.Fields[i])
			vv.writeGo(b)
		}
		b.WriteByte('}')
	}
}
