package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// FromAny converts a decoded Go value into a Value. It is the validation
// boundary for externally produced trees: kinds outside the JSON/YAML data
// model are rejected with ErrUnsupported.
func FromAny(x any) (*Value, error) {
	switch v := x.(type) {
	case nil:
		return Null(), nil
	case *Value:
		if v == nil {
			return Null(), nil
		}
		return v.Clone(), nil
	case bool:
		return FromBool(v), nil
	case string:
		return FromString(v), nil
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return FromInt(int64(v)), nil
	case int8:
		return FromInt(int64(v)), nil
	case int16:
		return FromInt(int64(v)), nil
	case int32:
		return FromInt(int64(v)), nil
	case int64:
		return FromInt(v), nil
	case uint:
		return FromNumber(float64(v)), nil
	case uint8:
		return FromNumber(float64(v)), nil
	case uint16:
		return FromNumber(float64(v)), nil
	case uint32:
		return FromNumber(float64(v)), nil
	case uint64:
		return FromNumber(float64(v)), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q: %w", ErrUnsupported, v, err)
		}
		return fromFloat(f)
	case []any:
		res := &Value{Type: ArrayType, Values: make([]*Value, len(v))}
		for i, elt := range v {
			ev, err := FromAny(elt)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res.Values[i] = ev
		}
		return res, nil
	case map[string]any:
		res := NewObject()
		for key, elt := range v {
			if err := insertAny(res, key, elt); err != nil {
				return nil, err
			}
		}
		return res, nil
	case map[any]any:
		res := NewObject()
		for k, elt := range v {
			key, err := anyKey(k)
			if err != nil {
				return nil, err
			}
			if err := insertAny(res, key, elt); err != nil {
				return nil, err
			}
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: Go type %s", ErrUnsupported, reflect.TypeOf(x))
}

func fromFloat(f float64) (*Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: non-finite number %v", ErrUnsupported, f)
	}
	return FromNumber(f), nil
}

func insertAny(obj *Value, key string, x any) error {
	ev, err := FromAny(x)
	if err != nil {
		return fmt.Errorf("%q: %w", key, err)
	}
	pos, found := obj.FieldPos(key)
	if found {
		return fmt.Errorf("%w %q", ErrDuplicateKey, key)
	}
	obj.InsertField(pos, key, ev)
	return nil
}

func anyKey(k any) (string, error) {
	switch kv := k.(type) {
	case string:
		return kv, nil
	case nil:
		return "null", nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(kv), nil
	}
	return "", fmt.Errorf("%w: object key of Go type %s", ErrUnsupported, reflect.TypeOf(k))
}

// ToAny returns the value as plain Go data: nil, bool, float64, string,
// []any and map[string]any.
func ToAny(v *Value) any {
	switch v.Type {
	case NullType:
		return nil
	case BoolType:
		return v.Bool
	case NumberType:
		return v.Number
	case StringType:
		return v.String
	case ArrayType:
		res := make([]any, len(v.Values))
		for i, elt := range v.Values {
			res[i] = ToAny(elt)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(v.Fields))
		for i, field := range v.Fields {
			res[field] = ToAny(v.Values[i])
		}
		return res
	default:
		panic("impossible production")
	}
}
