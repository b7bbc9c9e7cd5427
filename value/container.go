package value

import (
	"fmt"
	"slices"
	"strings"
)

// FieldPos returns the position of key among the object's fields and whether
// it is present. When absent, pos is where key would be inserted to keep
// ascending order.
func (v *Value) FieldPos(key string) (pos int, found bool) {
	v.mustBe(ObjectType, "FieldPos")
	return slices.BinarySearchFunc(v.Fields, key, strings.Compare)
}

// InsertField inserts key at pos. pos must be the insertion position
// returned by FieldPos for a key that is not present.
func (v *Value) InsertField(pos int, key string, val *Value) {
	v.mustBe(ObjectType, "InsertField")
	if pos < 0 || pos > len(v.Fields) {
		panic(fmt.Sprintf("value: InsertField position %d out of range [0,%d]", pos, len(v.Fields)))
	}
	if pos > 0 && v.Fields[pos-1] >= key || pos < len(v.Fields) && v.Fields[pos] <= key {
		panic(fmt.Sprintf("value: InsertField %q at %d breaks key order", key, pos))
	}
	v.Fields = slices.Insert(v.Fields, pos, key)
	v.Values = slices.Insert(v.Values, pos, val)
}

// DeleteField removes the entry at pos and returns its value.
func (v *Value) DeleteField(pos int) *Value {
	v.mustBe(ObjectType, "DeleteField")
	v.mustIndex(pos, "DeleteField")
	res := v.Values[pos]
	v.Fields = slices.Delete(v.Fields, pos, pos+1)
	v.Values = slices.Delete(v.Values, pos, pos+1)
	return res
}

func (v *Value) InsertElem(pos int, val *Value) {
	v.mustBe(ArrayType, "InsertElem")
	if pos < 0 || pos > len(v.Values) {
		panic(fmt.Sprintf("value: InsertElem position %d out of range [0,%d]", pos, len(v.Values)))
	}
	v.Values = slices.Insert(v.Values, pos, val)
}

// DeleteElem removes the element at pos and returns it.
func (v *Value) DeleteElem(pos int) *Value {
	v.mustBe(ArrayType, "DeleteElem")
	v.mustIndex(pos, "DeleteElem")
	res := v.Values[pos]
	v.Values = slices.Delete(v.Values, pos, pos+1)
	return res
}

// MoveElem moves the element at from so that it ends up at index to.
func (v *Value) MoveElem(from, to int) {
	v.mustBe(ArrayType, "MoveElem")
	v.mustIndex(from, "MoveElem")
	v.mustIndex(to, "MoveElem")
	v.Values = moveSlice(v.Values, from, to)
}

func moveSlice[T any](s []T, from, to int) []T {
	x := s[from]
	s = slices.Delete(s, from, from+1)
	return slices.Insert(s, to, x)
}

// Detach removes the child at pos from an array or object and returns it.
func (v *Value) Detach(pos int) *Value {
	switch v.Type {
	case ArrayType:
		return v.DeleteElem(pos)
	case ObjectType:
		return v.DeleteField(pos)
	}
	panic(fmt.Sprintf("value: Detach on %s", v.Type))
}

func (v *Value) mustBe(t Type, op string) {
	if v.Type != t {
		panic(fmt.Sprintf("value: %s on %s, want %s", op, v.Type, t))
	}
}

func (v *Value) mustIndex(pos int, op string) {
	if pos < 0 || pos >= len(v.Values) {
		panic(fmt.Sprintf("value: %s index %d out of range [0,%d)", op, pos, len(v.Values)))
	}
}
