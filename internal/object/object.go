package object

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/funvibe/polymodal/internal/ast"
)

type ObjectType string

const (
	NUMBER_OBJ   = "NUMBER"
	STRING_OBJ   = "STRING"
	BOOLEAN_OBJ  = "BOOLEAN"
	LIST_OBJ     = "LIST"
	MAP_OBJ      = "MAP"
	FUNCTION_OBJ = "FUNCTION"
	NONE_OBJ     = "NONE"
)

// Object is a runtime value. Lists and maps have value semantics: the
// evaluator copies them on read, so no two bindings share one.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }

// Inspect prints integral values without a fractional part.
func (n *Number) Inspect() string {
	if n.Value == math.Trunc(n.Value) && math.Abs(n.Value) < 1e21 {
		return strconv.FormatFloat(n.Value, 'f', -1, 64)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// IsIntegral reports whether the number has no fractional part.
func (n *Number) IsIntegral() bool {
	return !math.IsInf(n.Value, 0) && n.Value == math.Trunc(n.Value)
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	items := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		items[i] = el.Inspect()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// Map is keyed by strings. Inspect prints keys in sorted order.
type Map struct {
	Pairs map[string]Object
}

func NewMap() *Map { return &Map{Pairs: make(map[string]Object)} }

func (m *Map) Type() ObjectType { return MAP_OBJ }
func (m *Map) Inspect() string {
	items := make([]string, 0, len(m.Pairs))
	for _, k := range m.Keys() {
		items = append(items, k+": "+m.Pairs[k].Inspect())
	}
	return "{" + strings.Join(items, ", ") + "}"
}

// Keys returns the map keys in sorted order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.Pairs))
	for k := range m.Pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Function is a declared function, method or coroutine body. It captures
// no environment: free names resolve through the call stack and globals.
type Function struct {
	Name       string
	Kind       ast.FunctionKind
	Parameters []*ast.Parameter
	Body       *ast.BlockStatement
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string  { return "<function " + f.Name + ">" }

type None struct{}

func (n *None) Type() ObjectType { return NONE_OBJ }
func (n *None) Inspect() string  { return "None" }

var (
	NONE  = &None{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}
