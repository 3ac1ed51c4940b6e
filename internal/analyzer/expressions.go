package analyzer

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/symbols"
	"github.com/funvibe/polymodal/internal/typesystem"
)

// inferExpression returns the static type of expr and records it. Errors
// yield unknown, which later checks treat as dynamic to avoid cascades.
func (tc *TypeChecker) inferExpression(expr ast.Expression) typesystem.Type {
	if expr == nil {
		return typesystem.None
	}
	t := tc.infer(expr)
	tc.types[expr] = t
	return t
}

func (tc *TypeChecker) infer(expr ast.Expression) typesystem.Type {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return typesystem.LiteralType(e.Value)
	case *ast.StringLiteral:
		return typesystem.Str
	case *ast.BooleanLiteral:
		return typesystem.Bool
	case *ast.NoneLiteral:
		return typesystem.None
	case *ast.Identifier:
		sym, ok := tc.symbolTable.Find(e.Value)
		if !ok {
			tc.reporter.Errorf(diagnostics.ErrT003, e.Token, "undefined variable: %s", e.Value)
			return typesystem.Unknown
		}
		return sym.Type
	case *ast.InfixExpression:
		return tc.inferInfix(e)
	case *ast.PrefixExpression:
		return tc.inferPrefix(e)
	case *ast.AssignExpression:
		return tc.inferAssign(e)
	case *ast.CallExpression:
		return tc.inferCall(e)
	case *ast.MemberExpression:
		return tc.inferMember(e)
	case *ast.IndexExpression:
		return tc.inferIndex(e)
	case *ast.ListLiteral:
		return tc.inferList(e)
	case *ast.MapLiteral:
		return tc.inferMap(e)
	case *ast.MatchExpression:
		return tc.checkMatch(e.Subject, e.Arms)
	case *ast.DestructureExpression:
		valueType := tc.inferExpression(e.Value)
		tc.bindPattern(e.Pattern, valueType)
		return typesystem.None
	case *ast.AsyncExpression:
		return tc.inferExpression(e.Body)
	case *ast.AwaitExpression:
		return tc.inferExpression(e.Value)
	case *ast.YieldExpression:
		tc.inferExpression(e.Value)
		return typesystem.None
	case *ast.GeneratorExpression:
		tc.checkBlock(e.Body)
		return typesystem.TList{Elem: typesystem.Any}
	case *ast.CoroutineExpression:
		tc.enterFunction(nil)
		tc.checkStatements(e.Body.Statements)
		tc.exitScope()
		return typesystem.TFunc{Return: typesystem.Any}
	case *ast.SuspendExpression:
		return typesystem.None
	case *ast.ResumeExpression:
		t := tc.inferExpression(e.Coroutine)
		if _, ok := t.(typesystem.TFunc); !ok && !typesystem.IsDynamic(t) {
			tc.reporter.Errorf(diagnostics.ErrT008, e.Token, "cannot resume %s", t)
		}
		return typesystem.Any
	}
	return typesystem.Unknown
}

func (tc *TypeChecker) inferInfix(e *ast.InfixExpression) typesystem.Type {
	left := tc.inferExpression(e.Left)
	right := tc.inferExpression(e.Right)
	dynamic := typesystem.IsDynamic(left) || typesystem.IsDynamic(right)

	switch {
	case e.Operator.IsArithmetic():
		switch {
		case typesystem.IsNumeric(left) && typesystem.IsNumeric(right):
			return typesystem.ArithmeticResult(left, right)
		case typesystem.Equal(left, typesystem.Str) || typesystem.Equal(right, typesystem.Str):
			return typesystem.Str
		case dynamic:
			return typesystem.Any
		}
	case e.Operator.IsEquality():
		if dynamic || typesystem.Compatible(left, right) {
			return typesystem.Bool
		}
		tc.reporter.Errorf(diagnostics.ErrT010, e.Token, "cannot compare %s and %s", left, right)
		return typesystem.Unknown
	case e.Operator.IsOrdering():
		if dynamic || (typesystem.IsNumeric(left) && typesystem.IsNumeric(right)) {
			return typesystem.Bool
		}
	case e.Operator.IsLogical():
		if boolish(left) && boolish(right) {
			return typesystem.Bool
		}
	}

	tc.reporter.Errorf(diagnostics.ErrT010, e.Token,
		"cannot apply %s to %s and %s", e.Operator, left, right)
	return typesystem.Unknown
}

func boolish(t typesystem.Type) bool {
	return typesystem.IsDynamic(t) || typesystem.Equal(t, typesystem.Bool)
}

func (tc *TypeChecker) inferPrefix(e *ast.PrefixExpression) typesystem.Type {
	operand := tc.inferExpression(e.Right)
	switch e.Operator {
	case ast.OpNot:
		if boolish(operand) {
			return typesystem.Bool
		}
	case ast.OpNegate:
		if typesystem.IsDynamic(operand) {
			return typesystem.Any
		}
		if typesystem.IsNumeric(operand) {
			return operand
		}
	}
	tc.reporter.Errorf(diagnostics.ErrT010, e.Token, "cannot apply %s to %s", e.Operator, operand)
	return typesystem.Unknown
}

func (tc *TypeChecker) inferAssign(e *ast.AssignExpression) typesystem.Type {
	valueType := tc.inferExpression(e.Value)

	sym, ok := tc.symbolTable.Find(e.Name.Value)
	if !ok {
		tc.reporter.Errorf(diagnostics.ErrT003, e.Name.Token, "assignment to undefined variable: %s", e.Name.Value)
		return typesystem.Unknown
	}
	if sym.IsConstant {
		tc.reporter.Errorf(diagnostics.ErrT011, e.Name.Token, "cannot assign to constant %s", e.Name.Value)
		return sym.Type
	}
	if sym.Kind != symbols.VariableSymbol {
		tc.reporter.Errorf(diagnostics.ErrT011, e.Name.Token, "cannot assign to %s %s", sym.Kind, e.Name.Value)
		return sym.Type
	}
	if !tc.assignable(e.Value, valueType, sym.Type) {
		tc.mismatch(e.Value, sym.Type, valueType)
	}
	return sym.Type
}

func (tc *TypeChecker) inferMember(e *ast.MemberExpression) typesystem.Type {
	objType := tc.inferExpression(e.Left)
	if typesystem.IsDynamic(objType) {
		return typesystem.Any
	}
	if m, ok := objType.(typesystem.TMap); ok {
		return m.Value
	}
	tc.reporter.Errorf(diagnostics.ErrT009, e.Member.Token,
		"cannot access member %s on %s", e.Member.Value, objType)
	return typesystem.Unknown
}

func (tc *TypeChecker) inferIndex(e *ast.IndexExpression) typesystem.Type {
	objType := tc.inferExpression(e.Left)
	idxType := tc.inferExpression(e.Index)

	expectInteger := func() {
		if !typesystem.IsDynamic(idxType) && !typesystem.IsInteger(idxType) {
			tc.reporter.Errorf(diagnostics.ErrT006, e.Index.GetToken(), "index must be an integer, got %s", idxType)
		}
	}

	switch t := objType.(type) {
	case typesystem.TList:
		expectInteger()
		return t.Elem
	case typesystem.TMap:
		if !typesystem.IsDynamic(idxType) && !typesystem.CanCoerceTo(idxType, t.Key) {
			tc.reporter.Errorf(diagnostics.ErrT006, e.Index.GetToken(), "map key must be %s, got %s", t.Key, idxType)
		}
		return t.Value
	}
	if typesystem.Equal(objType, typesystem.Str) {
		expectInteger()
		return typesystem.Str
	}
	if typesystem.IsDynamic(objType) {
		return typesystem.Any
	}
	tc.reporter.Errorf(diagnostics.ErrT006, e.Token, "cannot index %s", objType)
	return typesystem.Unknown
}

// inferList types a list by its element type. Mixed elements are a
// warning and the list degrades to list[any].
func (tc *TypeChecker) inferList(e *ast.ListLiteral) typesystem.Type {
	if len(e.Elements) == 0 {
		return typesystem.TList{Elem: typesystem.Any}
	}
	elem := tc.inferExpression(e.Elements[0])
	mixed := false
	for _, el := range e.Elements[1:] {
		t := tc.inferExpression(el)
		if mixed || typesystem.IsUnknown(t) || typesystem.IsUnknown(elem) || typesystem.Equal(t, elem) {
			continue
		}
		if typesystem.IsNumeric(t) && typesystem.IsNumeric(elem) {
			elem = widerNumeric(elem, t)
			continue
		}
		tc.reporter.Warningf(diagnostics.WarnW002, el.GetToken(),
			"list contains mixed types: %s and %s", elem, t)
		mixed = true
	}
	if mixed {
		elem = typesystem.Any
	}
	return typesystem.TList{Elem: elem}
}

// widerNumeric picks the type both numeric operands coerce to.
func widerNumeric(a, b typesystem.Type) typesystem.Type {
	switch {
	case typesystem.CanCoerceTo(a, b):
		return b
	case typesystem.CanCoerceTo(b, a):
		return a
	}
	return typesystem.F64
}

// inferMap types a map literal. Keys are field names, so the key type is
// always str.
func (tc *TypeChecker) inferMap(e *ast.MapLiteral) typesystem.Type {
	value := typesystem.Unknown
	mixed := false
	for _, pair := range e.Pairs {
		tc.types[pair.Key] = typesystem.Str
		t := tc.inferExpression(pair.Value)
		switch {
		case mixed || typesystem.IsUnknown(t):
		case typesystem.IsUnknown(value):
			value = t
		case !typesystem.Equal(t, value):
			tc.reporter.Warningf(diagnostics.WarnW002, pair.Value.GetToken(),
				"map contains mixed value types: %s and %s", value, t)
			mixed = true
		}
	}
	if mixed || typesystem.IsUnknown(value) {
		value = typesystem.Any
	}
	return typesystem.TMap{Key: typesystem.Str, Value: value}
}
