package typesystem

import "strings"

var primByName = map[string]Type{
	"i8":    I8,
	"i16":   I16,
	"i32":   I32,
	"i64":   I64,
	"u8":    U8,
	"u16":   U16,
	"u32":   U32,
	"u64":   U64,
	"f32":   F32,
	"f64":   F64,
	"bool":  Bool,
	"str":   Str,
	"char":  Char,
	"bytes": Bytes,
	"Bytes": Bytes,
	"none":  None,
	"None":  None,
	"any":   Any,
}

// FromString parses an annotation such as "i32" or "map[str, list[f64]]".
// It never fails: anything unrecognized becomes a TNamed.
func FromString(s string) Type {
	s = strings.TrimSpace(s)
	if t, ok := primByName[s]; ok {
		return t
	}

	open := strings.IndexByte(s, '[')
	if open <= 0 || !strings.HasSuffix(s, "]") {
		return TNamed{Name: s}
	}
	head := s[:open]
	args := splitArgs(s[open+1 : len(s)-1])

	switch {
	case head == "list" && len(args) == 1:
		return TList{Elem: FromString(args[0])}
	case head == "map" && len(args) == 2:
		return TMap{Key: FromString(args[0]), Value: FromString(args[1])}
	case (head == "option" || head == "Option") && len(args) == 1:
		return TOption{Elem: FromString(args[0])}
	case (head == "result" || head == "Result") && len(args) == 2:
		return TResult{Ok: FromString(args[0]), Err: FromString(args[1])}
	}
	return TNamed{Name: s}
}

// splitArgs splits on commas that are not nested inside brackets.
func splitArgs(s string) []string {
	var args []string
	depth, start := 0, 0
	for i, ch := range s {
		switch ch {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(args, strings.TrimSpace(s[start:]))
}
