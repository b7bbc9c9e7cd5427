package value

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// MarshalJSON encodes v as compact JSON with object keys in stored
// (ascending) order.
func (v *Value) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := v.writeJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) writeJSON(buf *bytes.Buffer) error {
	switch v.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case NumberType:
		d, err := json.Marshal(v.Number)
		if err != nil {
			return err
		}
		buf.Write(d)
	case StringType:
		writeJSONString(buf, v.String)
	case ArrayType:
		buf.WriteByte('[')
		for i, elt := range v.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := elt.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, field := range v.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, field)
			buf.WriteByte(':')
			if err := v.Values[i].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: type %d", ErrUnsupported, v.Type)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encode only fails on unsupported Go types.
	_ = enc.Encode(s)
	// drop the newline Encode appends
	buf.Truncate(buf.Len() - 1)
}

func (v *Value) UnmarshalJSON(d []byte) error {
	res, err := FromJSON(d)
	if err != nil {
		return err
	}
	*v = *res
	return nil
}

// FromJSON decodes a JSON document. Repeated object keys keep the last
// occurrence.
func FromJSON(d []byte) (*Value, error) {
	if !gjson.ValidBytes(d) {
		return nil, ErrJSON
	}
	return fromGJSON(gjson.ParseBytes(d))
}

func fromGJSON(r gjson.Result) (*Value, error) {
	switch r.Type {
	case gjson.Null:
		return Null(), nil
	case gjson.False:
		return FromBool(false), nil
	case gjson.True:
		return FromBool(true), nil
	case gjson.Number:
		return fromFloat(r.Num)
	case gjson.String:
		return FromString(r.Str), nil
	}
	var err error
	if r.IsArray() {
		res := NewArray()
		r.ForEach(func(_, elt gjson.Result) bool {
			var ev *Value
			ev, err = fromGJSON(elt)
			if err != nil {
				return false
			}
			res.Values = append(res.Values, ev)
			return true
		})
		if err != nil {
			return nil, err
		}
		return res, nil
	}
	res := NewObject()
	r.ForEach(func(key, elt gjson.Result) bool {
		var ev *Value
		ev, err = fromGJSON(elt)
		if err != nil {
			err = fmt.Errorf("%q: %w", key.Str, err)
			return false
		}
		pos, found := res.FieldPos(key.Str)
		if found {
			res.Values[pos] = ev
			return true
		}
		res.InsertField(pos, key.Str, ev)
		return true
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
