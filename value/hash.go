package value

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var seed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the value, stable within a process.
// It panics if v is nil.
func (v *Value) Hash() uint64 {
	if v == nil {
		panic("value: Hash called on nil value")
	}

	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteByte(byte(v.Type))

	var b [8]byte
	switch v.Type {
	case NullType:
	case BoolType:
		if v.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		f := v.Number
		if f == 0 {
			// -0 hashes as 0
			f = 0
		}
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		h.Write(b[:])
	case StringType:
		h.WriteString(v.String)
	case ArrayType:
		for _, vv := range v.Values {
			binary.LittleEndian.PutUint64(b[:], vv.Hash())
			h.Write(b[:])
		}
	case ObjectType:
		for i, field := range v.Fields {
			h.WriteString(field)
			h.WriteByte(0)
			binary.LittleEndian.PutUint64(b[:], v.Values[i].Hash())
			h.Write(b[:])
		}
	}
	return h.Sum64()
}
