package patterns

import (
	"math"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/object"
)

// Epsilon bounds numeric literal comparison.
const Epsilon = 2.220446049250313e-16

// Binding is one name captured by a successful match.
type Binding struct {
	Name  string
	Value object.Object
}

// Matches reports whether value has the shape of pattern. Guards are not
// evaluated here; the caller owns expression evaluation.
func Matches(pattern ast.Pattern, value object.Object) bool {
	return matches(pattern, value, 0)
}

func matches(pattern ast.Pattern, value object.Object, depth int) bool {
	if depth > config.MaxPatternDepth {
		return false
	}

	switch p := pattern.(type) {
	case *ast.WildcardPattern, *ast.IdentifierPattern:
		return true
	case *ast.NumberPattern:
		n, ok := value.(*object.Number)
		return ok && math.Abs(p.Value-n.Value) < Epsilon
	case *ast.StringPattern:
		s, ok := value.(*object.String)
		return ok && s.Value == p.Value
	case *ast.BooleanPattern:
		b, ok := value.(*object.Boolean)
		return ok && b.Value == p.Value
	case *ast.TuplePattern:
		return matchesSequence(p.Elements, value, depth)
	case *ast.ListPattern:
		return matchesSequence(p.Elements, value, depth)
	case *ast.StructPattern:
		m, ok := value.(*object.Map)
		if !ok {
			return false
		}
		for _, field := range p.Fields {
			fieldValue, ok := m.Pairs[field.Name]
			if !ok || !matches(field.Pattern, fieldValue, depth+1) {
				return false
			}
		}
		return true
	case *ast.OrPattern:
		for _, alt := range p.Alternatives {
			if matches(alt, value, depth+1) {
				return true
			}
		}
		return false
	case *ast.BindingPattern:
		return matches(p.Pattern, value, depth+1)
	case *ast.GuardPattern:
		return matches(p.Pattern, value, depth+1)
	}
	return false
}

func matchesSequence(elems []ast.Pattern, value object.Object, depth int) bool {
	list, ok := value.(*object.List)
	if !ok || len(list.Elements) != len(elems) {
		return false
	}
	for i, el := range elems {
		if !matches(el, list.Elements[i], depth+1) {
			return false
		}
	}
	return true
}

// ExtractBindings returns the names pattern captures from value, in
// pattern order. Or-patterns bind from the first alternative that matches.
func ExtractBindings(pattern ast.Pattern, value object.Object) []Binding {
	var bindings []Binding
	extract(pattern, value, &bindings, 0)
	return bindings
}

func extract(pattern ast.Pattern, value object.Object, bindings *[]Binding, depth int) {
	if depth > config.MaxPatternDepth {
		return
	}

	switch p := pattern.(type) {
	case *ast.IdentifierPattern:
		*bindings = append(*bindings, Binding{Name: p.Name, Value: value})
	case *ast.BindingPattern:
		*bindings = append(*bindings, Binding{Name: p.Name, Value: value})
		extract(p.Pattern, value, bindings, depth+1)
	case *ast.GuardPattern:
		extract(p.Pattern, value, bindings, depth+1)
	case *ast.TuplePattern:
		extractSequence(p.Elements, value, bindings, depth)
	case *ast.ListPattern:
		extractSequence(p.Elements, value, bindings, depth)
	case *ast.StructPattern:
		m, ok := value.(*object.Map)
		if !ok {
			return
		}
		for _, field := range p.Fields {
			if fieldValue, ok := m.Pairs[field.Name]; ok {
				extract(field.Pattern, fieldValue, bindings, depth+1)
			}
		}
	case *ast.OrPattern:
		for _, alt := range p.Alternatives {
			if matches(alt, value, depth+1) {
				extract(alt, value, bindings, depth+1)
				return
			}
		}
	}
}

func extractSequence(elems []ast.Pattern, value object.Object, bindings *[]Binding, depth int) {
	list, ok := value.(*object.List)
	if !ok {
		return
	}
	for i, el := range elems {
		if i >= len(list.Elements) {
			return
		}
		extract(el, list.Elements[i], bindings, depth+1)
	}
}
