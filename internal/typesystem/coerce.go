package typesystem

import "math"

// widenings lists the implicit integer conversions. Only these pairs are
// allowed; no closure is computed from them.
var widenings = map[Prim][]Prim{
	PrimI8:  {PrimI16, PrimI32, PrimI64},
	PrimI16: {PrimI32, PrimI64},
	PrimI32: {PrimI64},
	PrimU8:  {PrimU16, PrimU32, PrimU64},
	PrimU16: {PrimU32, PrimU64},
	PrimU32: {PrimU64},
}

// CanCoerceTo reports whether a value of type from may be used where to
// is expected.
func CanCoerceTo(from, to Type) bool {
	if Equal(from, to) || IsAny(to) {
		return true
	}

	fp, ok := from.(TPrim)
	if !ok {
		return false
	}
	tp, ok := to.(TPrim)
	if !ok {
		return false
	}

	for _, w := range widenings[fp.Kind] {
		if w == tp.Kind {
			return true
		}
	}
	if IsInteger(from) && IsFloat(to) {
		return true
	}
	return fp.Kind == PrimF32 && tp.Kind == PrimF64
}

// Compatible reports whether either side coerces to the other, which is
// what equality comparisons require.
func Compatible(a, b Type) bool {
	return CanCoerceTo(a, b) || CanCoerceTo(b, a)
}

// ArithmeticResult is the type of a numeric binary operation: floats
// dominate, then i64, otherwise i32.
func ArithmeticResult(left, right Type) Type {
	switch {
	case IsFloat(left) || IsFloat(right):
		return F64
	case isPrim(left, PrimI64) || isPrim(right, PrimI64):
		return I64
	default:
		return I32
	}
}

// LiteralType is the type inferred for a number literal.
func LiteralType(v float64) Type {
	if isIntegral(v) {
		return I32
	}
	return F64
}

func isIntegral(v float64) bool {
	return !math.IsInf(v, 0) && v == math.Trunc(v)
}

var integerRanges = map[Prim][2]float64{
	PrimI8:  {-1 << 7, 1<<7 - 1},
	PrimI16: {-1 << 15, 1<<15 - 1},
	PrimI32: {-1 << 31, 1<<31 - 1},
	PrimI64: {-1 << 63, 1<<63 - 1},
	PrimU8:  {0, 1<<8 - 1},
	PrimU16: {0, 1<<16 - 1},
	PrimU32: {0, 1<<32 - 1},
	PrimU64: {0, 1<<64 - 1},
}

// LiteralFits reports whether the number literal v can initialize a
// binding of numeric type t: integral values fit every integer width whose
// range holds them and both float widths, fractional values fit floats.
func LiteralFits(v float64, t Type) bool {
	if IsFloat(t) {
		return true
	}
	p, ok := t.(TPrim)
	if !ok || !IsInteger(t) || !isIntegral(v) {
		return false
	}
	r := integerRanges[p.Kind]
	return v >= r[0] && v <= r[1]
}
