package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Width constrains the representation of a number target. Values always
// store float64; a narrower width only restricts which numbers are accepted
// without force.
type Width int

const (
	Float64 Width = iota
	Float32
	Int32
	Int64
	Uint32
	Uint64
)

func (w Width) String() string {
	switch w {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	}
	return "<unknown width>"
}

func Widths() []Width {
	return []Width{Float64, Float32, Int32, Int64, Uint32, Uint64}
}

// Target is the destination of a conversion.
type Target struct {
	Type  Type
	Width Width
}

func To(t Type) Target {
	return Target{Type: t}
}

func ToNumber(w Width) Target {
	return Target{Type: NumberType, Width: w}
}

func (t Target) String() string {
	if t.Type == NumberType && t.Width != Float64 {
		return t.Type.String() + "/" + t.Width.String()
	}
	return t.Type.String()
}

// Outcome classifies a conversion between two types.
type Outcome int

const (
	// NoChange: the value already has the target type.
	NoChange Outcome = iota
	// Exact: every source value has a faithful target representation.
	Exact
	// Checked: some source values convert faithfully, the rest need force.
	Checked
	// Lossy: the conversion always discards information and needs force.
	Lossy
	// Container: array/object re-homing, performed structurally by the
	// shadow tree rather than by Convert.
	Container
)

func (o Outcome) String() string {
	switch o {
	case NoChange:
		return "no-change"
	case Exact:
		return "exact"
	case Checked:
		return "checked"
	case Lossy:
		return "lossy"
	case Container:
		return "container"
	}
	return "<unknown outcome>"
}

var rules = [6][6]Outcome{
	//            null     bool     number   string   array      object
	NullType:   {NoChange, Exact, Lossy, Exact, Lossy, Lossy},
	BoolType:   {Lossy, NoChange, Exact, Exact, Lossy, Lossy},
	NumberType: {Lossy, Checked, NoChange, Exact, Lossy, Lossy},
	StringType: {Lossy, Checked, Checked, NoChange, Lossy, Lossy},
	ArrayType:  {Lossy, Lossy, Lossy, Lossy, NoChange, Container},
	ObjectType: {Lossy, Lossy, Lossy, Lossy, Container, NoChange},
}

// Rule returns the outcome class of converting a from value to type to.
func Rule(from, to Type) Outcome {
	if from < NullType || from > ObjectType || to < NullType || to > ObjectType {
		panic(fmt.Sprintf("value: Rule on unknown types %d -> %d", from, to))
	}
	return rules[from][to]
}

// Convert computes v converted to target. It never modifies v.
//
// The returned outcome is NoChange (res == v) when v already satisfies the
// target, Container (res == nil) for array/object re-homing which the caller
// performs structurally, and otherwise the rule class that applied. Without
// force a conversion that cannot represent v faithfully fails with ErrLossy;
// with force it never fails and saturates, truncates or zeroes instead.
func Convert(v *Value, to Target, force bool) (*Value, Outcome, error) {
	rule := Rule(v.Type, to.Type)
	switch rule {
	case Container:
		return nil, Container, nil
	case NoChange:
		if v.Type != NumberType {
			return v, NoChange, nil
		}
		f, ok := fitWidth(v.Number, to.Width)
		if ok {
			return v, NoChange, nil
		}
		if !force {
			return nil, Checked, lossyErr(v, to)
		}
		return FromNumber(f), Checked, nil
	case Lossy:
		if !force {
			return nil, Lossy, lossyErr(v, to)
		}
		return zero(to.Type), Lossy, nil
	}

	var (
		res *Value
		ok  = true
	)
	switch to.Type {
	case BoolType:
		res, ok = toBool(v)
	case NumberType:
		var f float64
		f, ok = toNumber(v)
		nf, fits := fitWidth(f, to.Width)
		ok = ok && fits
		res = FromNumber(nf)
	case StringType:
		res = toString(v)
	default:
		res = zero(to.Type)
	}
	if !ok && !force {
		return nil, rule, lossyErr(v, to)
	}
	return res, rule, nil
}

func lossyErr(v *Value, to Target) error {
	return fmt.Errorf("%w: %s %s to %s", ErrLossy, v.Type, v.GoString(), to)
}

func zero(t Type) *Value {
	v := &Value{}
	v.Reset(t)
	return v
}

func toBool(v *Value) (*Value, bool) {
	switch v.Type {
	case NullType:
		return FromBool(false), true
	case NumberType:
		return FromBool(v.Number != 0), v.Number == 0 || v.Number == 1
	case StringType:
		switch v.String {
		case "true":
			return FromBool(true), true
		case "false":
			return FromBool(false), true
		}
		s := strings.ToLower(strings.TrimSpace(v.String))
		return FromBool(!(s == "" || s == "0" || s == "false")), false
	}
	return FromBool(v.Bool), true
}

func toNumber(v *Value) (float64, bool) {
	switch v.Type {
	case BoolType:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case NumberType:
		return v.Number, true
	case StringType:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func toString(v *Value) *Value {
	switch v.Type {
	case BoolType:
		return FromString(strconv.FormatBool(v.Bool))
	case NumberType:
		return FromString(strconv.FormatFloat(v.Number, 'g', -1, 64))
	case StringType:
		return FromString(v.String)
	}
	return FromString("")
}

// fitWidth returns f as represented in w and whether that representation
// is exact. Out of range values saturate and fractions truncate toward zero.
func fitWidth(f float64, w Width) (float64, bool) {
	if math.IsNaN(f) {
		return 0, false
	}
	var lo, hi float64
	switch w {
	case Float64:
		return f, !math.IsInf(f, 0)
	case Float32:
		if f > math.MaxFloat32 {
			return math.MaxFloat32, false
		}
		if f < -math.MaxFloat32 {
			return -math.MaxFloat32, false
		}
		r := float64(float32(f))
		return r, r == f
	case Int32:
		lo, hi = math.MinInt32, math.MaxInt32
	case Int64:
		// float64 cannot hold MaxInt64; use the largest representable value below 2^63.
		lo, hi = math.MinInt64, math.Nextafter(1<<63, 0)
	case Uint32:
		lo, hi = 0, math.MaxUint32
	case Uint64:
		lo, hi = 0, math.Nextafter(1<<64, 0)
	default:
		panic(fmt.Sprintf("value: unknown width %d", w))
	}
	switch {
	case f < lo:
		return lo, false
	case f > hi:
		return hi, false
	}
	t := math.Trunc(f)
	if t == 0 {
		// avoid -0
		t = 0
	}
	return t, t == f
}
