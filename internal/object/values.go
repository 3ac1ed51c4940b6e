package object

// Copy returns a deep copy of lists and maps. Scalars and functions are
// immutable and returned as is.
func Copy(obj Object) Object {
	switch o := obj.(type) {
	case *List:
		elements := make([]Object, len(o.Elements))
		for i, el := range o.Elements {
			elements[i] = Copy(el)
		}
		return &List{Elements: elements}
	case *Map:
		pairs := make(map[string]Object, len(o.Pairs))
		for k, v := range o.Pairs {
			pairs[k] = Copy(v)
		}
		return &Map{Pairs: pairs}
	}
	return obj
}

// Equal compares values structurally. None equals only None; values of
// different types are never equal.
func Equal(a, b Object) bool {
	switch x := a.(type) {
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value == y.Value
	case *String:
		y, ok := b.(*String)
		return ok && x.Value == y.Value
	case *Boolean:
		y, ok := b.(*Boolean)
		return ok && x.Value == y.Value
	case *None:
		_, ok := b.(*None)
		return ok
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case *Map:
		y, ok := b.(*Map)
		if !ok || len(x.Pairs) != len(y.Pairs) {
			return false
		}
		for k, v := range x.Pairs {
			w, ok := y.Pairs[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	case *Function:
		y, ok := b.(*Function)
		return ok && x.Body == y.Body && x.Name == y.Name
	}
	return false
}

// IsTruthy: false, 0, "" and None are falsy; everything else is truthy.
func IsTruthy(obj Object) bool {
	switch o := obj.(type) {
	case *Boolean:
		return o.Value
	case *Number:
		return o.Value != 0
	case *String:
		return o.Value != ""
	case *None:
		return false
	case nil:
		return false
	}
	return true
}

// TypeName is the name reported by type_of.
func TypeName(obj Object) string {
	switch obj.(type) {
	case *Number:
		return "number"
	case *String:
		return "string"
	case *Boolean:
		return "bool"
	case *List:
		return "list"
	case *Map:
		return "map"
	case *Function:
		return "function"
	}
	return "none"
}
