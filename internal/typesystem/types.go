package typesystem

import (
	"fmt"
	"strings"
)

// Type is the closed set of static types. Compare types with Equal; the
// function type holds a slice and is not comparable with ==.
type Type interface {
	String() string
	typeNode()
}

// Prim enumerates the non-compound types.
type Prim int

const (
	PrimI8 Prim = iota
	PrimI16
	PrimI32
	PrimI64
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimF32
	PrimF64
	PrimBool
	PrimStr
	PrimChar
	PrimBytes
	PrimNone
	PrimUnknown // Inference placeholder
	PrimAny     // Escape hatch for untyped values
)

var primNames = map[Prim]string{
	PrimI8:      "i8",
	PrimI16:     "i16",
	PrimI32:     "i32",
	PrimI64:     "i64",
	PrimU8:      "u8",
	PrimU16:     "u16",
	PrimU32:     "u32",
	PrimU64:     "u64",
	PrimF32:     "f32",
	PrimF64:     "f64",
	PrimBool:    "bool",
	PrimStr:     "str",
	PrimChar:    "char",
	PrimBytes:   "bytes",
	PrimNone:    "none",
	PrimUnknown: "?",
	PrimAny:     "any",
}

// TPrim is a primitive type.
type TPrim struct {
	Kind Prim
}

func (t TPrim) String() string { return primNames[t.Kind] }
func (TPrim) typeNode() {}

// TList is list[Elem].
type TList struct {
	Elem Type
}

func (t TList) String() string { return fmt.Sprintf("list[%s]", t.Elem) }
func (TList) typeNode() {}

// TMap is map[Key, Value].
type TMap struct {
	Key   Type
	Value Type
}

func (t TMap) String() string { return fmt.Sprintf("map[%s, %s]", t.Key, t.Value) }
func (TMap) typeNode() {}

// TOption is option[Elem].
type TOption struct {
	Elem Type
}

func (t TOption) String() string { return fmt.Sprintf("option[%s]", t.Elem) }
func (TOption) typeNode() {}

// TResult is result[Ok, Err].
type TResult struct {
	Ok  Type
	Err Type
}

func (t TResult) String() string { return fmt.Sprintf("result[%s, %s]", t.Ok, t.Err) }
func (TResult) typeNode() {}

// TFunc is a function type.
type TFunc struct {
	Params []Type
	Return Type
}

func (t TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ", "), t.Return)
}
func (TFunc) typeNode() {}

// TNamed is a user type name that has not been resolved.
type TNamed struct {
	Name string
}

func (t TNamed) String() string { return t.Name }
func (TNamed) typeNode() {}

var (
	I8      Type = TPrim{PrimI8}
	I16     Type = TPrim{PrimI16}
	I32     Type = TPrim{PrimI32}
	I64     Type = TPrim{PrimI64}
	U8      Type = TPrim{PrimU8}
	U16     Type = TPrim{PrimU16}
	U32     Type = TPrim{PrimU32}
	U64     Type = TPrim{PrimU64}
	F32     Type = TPrim{PrimF32}
	F64     Type = TPrim{PrimF64}
	Bool    Type = TPrim{PrimBool}
	Str     Type = TPrim{PrimStr}
	Char    Type = TPrim{PrimChar}
	Bytes   Type = TPrim{PrimBytes}
	None    Type = TPrim{PrimNone}
	Unknown Type = TPrim{PrimUnknown}
	Any     Type = TPrim{PrimAny}
)

// Equal reports structural equality.
func Equal(a, b Type) bool {
	switch ta := a.(type) {
	case TPrim:
		tb, ok := b.(TPrim)
		return ok && ta.Kind == tb.Kind
	case TList:
		tb, ok := b.(TList)
		return ok && Equal(ta.Elem, tb.Elem)
	case TMap:
		tb, ok := b.(TMap)
		return ok && Equal(ta.Key, tb.Key) && Equal(ta.Value, tb.Value)
	case TOption:
		tb, ok := b.(TOption)
		return ok && Equal(ta.Elem, tb.Elem)
	case TResult:
		tb, ok := b.(TResult)
		return ok && Equal(ta.Ok, tb.Ok) && Equal(ta.Err, tb.Err)
	case TFunc:
		tb, ok := b.(TFunc)
		if !ok || len(ta.Params) != len(tb.Params) || !Equal(ta.Return, tb.Return) {
			return false
		}
		for i := range ta.Params {
			if !Equal(ta.Params[i], tb.Params[i]) {
				return false
			}
		}
		return true
	case TNamed:
		tb, ok := b.(TNamed)
		return ok && ta.Name == tb.Name
	}
	return false
}

func isPrim(t Type, kinds ...Prim) bool {
	p, ok := t.(TPrim)
	if !ok {
		return false
	}
	for _, k := range kinds {
		if p.Kind == k {
			return true
		}
	}
	return false
}

func IsInteger(t Type) bool {
	return isPrim(t, PrimI8, PrimI16, PrimI32, PrimI64, PrimU8, PrimU16, PrimU32, PrimU64)
}

func IsFloat(t Type) bool { return isPrim(t, PrimF32, PrimF64) }

func IsNumeric(t Type) bool { return IsInteger(t) || IsFloat(t) }

func IsAny(t Type) bool { return isPrim(t, PrimAny) }

func IsUnknown(t Type) bool { return isPrim(t, PrimUnknown) }

// IsDynamic reports whether t defers checking to runtime: any or unknown.
func IsDynamic(t Type) bool { return isPrim(t, PrimAny, PrimUnknown) }

// NamedTypes returns every unresolved name inside t.
func NamedTypes(t Type) []string {
	switch tt := t.(type) {
	case TNamed:
		return []string{tt.Name}
	case TList:
		return NamedTypes(tt.Elem)
	case TOption:
		return NamedTypes(tt.Elem)
	case TMap:
		return append(NamedTypes(tt.Key), NamedTypes(tt.Value)...)
	case TResult:
		return append(NamedTypes(tt.Ok), NamedTypes(tt.Err)...)
	case TFunc:
		var names []string
		for _, p := range tt.Params {
			names = append(names, NamedTypes(p)...)
		}
		return append(names, NamedTypes(tt.Return)...)
	}
	return nil
}
