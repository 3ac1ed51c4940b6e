package analyzer

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/symbols"
	"github.com/funvibe/polymodal/internal/typesystem"
)

// TypeChecker statically checks Compiled programs. It never mutates the
// AST; problems are collected in its reporter.
type TypeChecker struct {
	reporter    *diagnostics.Reporter
	symbolTable *symbols.SymbolTable

	// Hoisted signatures of top-level functions, reused by the second pass
	// so annotation errors are reported once.
	signatures map[*ast.FunctionStatement]typesystem.TFunc

	// Inferred type of every expression visited so far.
	types map[ast.Expression]typesystem.Type
}

// NewTypeChecker creates a checker. source is used only for rendering
// diagnostics.
func NewTypeChecker(source string) *TypeChecker {
	return &TypeChecker{
		reporter:    diagnostics.NewReporter(source),
		symbolTable: symbols.NewGlobalScope(),
		signatures:  make(map[*ast.FunctionStatement]typesystem.TFunc),
		types:       make(map[ast.Expression]typesystem.Type),
	}
}

func (tc *TypeChecker) SetFile(file string) { tc.reporter.SetFile(file) }

func (tc *TypeChecker) Diagnostics() []*diagnostics.Diagnostic { return tc.reporter.Diagnostics() }

func (tc *TypeChecker) Reporter() *diagnostics.Reporter { return tc.reporter }

// Check runs both passes and reports whether no error was found. Programs
// that are not in Compiled mode pass without being inspected.
func (tc *TypeChecker) Check(program *ast.Program) bool {
	if program == nil || program.Mode != ast.ModeCompiled {
		return true
	}

	tc.collectDeclarations(program.Statements)
	for _, stmt := range program.Statements {
		tc.checkStatement(stmt)
	}
	return !tc.reporter.HasErrors()
}

func (tc *TypeChecker) enterScope(scopeType symbols.ScopeType) {
	tc.symbolTable = symbols.NewEnclosedSymbolTable(tc.symbolTable, scopeType)
}

func (tc *TypeChecker) enterFunction(ret typesystem.Type) {
	tc.symbolTable = symbols.NewFunctionScope(tc.symbolTable, ret)
}

func (tc *TypeChecker) exitScope() {
	tc.symbolTable = tc.symbolTable.Outer()
}

// resolveAnnotation turns annotation text into a type. Actor and contract
// names resolve to their map type; any other unresolved name is reported
// when report is set and degrades to any.
func (tc *TypeChecker) resolveAnnotation(node ast.Node, text string, report bool) typesystem.Type {
	return tc.resolveNamed(node, typesystem.FromString(text), report)
}

func (tc *TypeChecker) resolveNamed(node ast.Node, t typesystem.Type, report bool) typesystem.Type {
	switch tt := t.(type) {
	case typesystem.TNamed:
		if tc.symbolTable.IsTypeName(tt.Name) {
			return symbols.ContainerType
		}
		if report {
			tc.reporter.Errorf(diagnostics.ErrT002, node.GetToken(), "unknown type: %s", tt.Name)
		}
		return typesystem.Any
	case typesystem.TList:
		return typesystem.TList{Elem: tc.resolveNamed(node, tt.Elem, report)}
	case typesystem.TOption:
		return typesystem.TOption{Elem: tc.resolveNamed(node, tt.Elem, report)}
	case typesystem.TMap:
		return typesystem.TMap{
			Key:   tc.resolveNamed(node, tt.Key, report),
			Value: tc.resolveNamed(node, tt.Value, report),
		}
	case typesystem.TResult:
		return typesystem.TResult{
			Ok:  tc.resolveNamed(node, tt.Ok, report),
			Err: tc.resolveNamed(node, tt.Err, report),
		}
	}
	return t
}

// assignable reports whether the value of expr, inferred as from, may
// initialize a binding of type to.
func (tc *TypeChecker) assignable(expr ast.Expression, from, to typesystem.Type) bool {
	if typesystem.IsDynamic(from) || typesystem.CanCoerceTo(from, to) {
		return true
	}

	if v, ok := numberLiteralValue(expr); ok && typesystem.IsNumeric(to) {
		return typesystem.LiteralFits(v, to)
	}

	switch target := to.(type) {
	case typesystem.TList:
		if lit, ok := expr.(*ast.ListLiteral); ok {
			return tc.elementsAssignable(lit, target.Elem)
		}
		if list, ok := from.(typesystem.TList); ok {
			return typesystem.IsDynamic(list.Elem)
		}
	case typesystem.TMap:
		if lit, ok := expr.(*ast.MapLiteral); ok && len(lit.Pairs) == 0 {
			return true
		}
		if m, ok := from.(typesystem.TMap); ok {
			return typesystem.CanCoerceTo(m.Key, target.Key) &&
				(typesystem.IsDynamic(m.Value) || typesystem.CanCoerceTo(m.Value, target.Value))
		}
	case typesystem.TOption:
		return typesystem.Equal(from, typesystem.None) || tc.assignable(expr, from, target.Elem)
	case typesystem.TResult:
		return tc.assignable(expr, from, target.Ok) || tc.assignable(expr, from, target.Err)
	}
	return false
}

func (tc *TypeChecker) elementsAssignable(lit *ast.ListLiteral, elem typesystem.Type) bool {
	for _, e := range lit.Elements {
		if !tc.assignable(e, tc.typeOf(e), elem) {
			return false
		}
	}
	return true
}

// typeOf returns the type recorded for an already inferred expression.
func (tc *TypeChecker) typeOf(expr ast.Expression) typesystem.Type {
	if t, ok := tc.types[expr]; ok {
		return t
	}
	return typesystem.Unknown
}

func numberLiteralValue(expr ast.Expression) (float64, bool) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return e.Value, true
	case *ast.PrefixExpression:
		if e.Operator == ast.OpNegate {
			if v, ok := numberLiteralValue(e.Right); ok {
				return -v, true
			}
		}
	}
	return 0, false
}

// containsUnknown reports whether inference left a hole in t.
func containsUnknown(t typesystem.Type) bool {
	switch tt := t.(type) {
	case typesystem.TList:
		return containsUnknown(tt.Elem)
	case typesystem.TMap:
		return containsUnknown(tt.Key) || containsUnknown(tt.Value)
	case typesystem.TOption:
		return containsUnknown(tt.Elem)
	}
	return typesystem.IsUnknown(t)
}
