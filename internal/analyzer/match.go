package analyzer

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/symbols"
	"github.com/funvibe/polymodal/internal/typesystem"
)

// checkMatch checks every arm in its own scope. The result is the common
// type of the arm bodies, or any when they differ.
func (tc *TypeChecker) checkMatch(subject ast.Expression, arms []*ast.MatchArm) typesystem.Type {
	subjectType := tc.inferExpression(subject)

	var result typesystem.Type
	for _, arm := range arms {
		tc.enterScope(symbols.ScopeBlock)
		tc.checkPattern(arm.Pattern, subjectType)
		tc.bindPattern(arm.Pattern, subjectType)
		if arm.Guard != nil {
			tc.expectCondition(arm.Guard, "match guard")
		}
		var armType typesystem.Type = typesystem.None
		if arm.Body != nil {
			armType = tc.checkStatements(arm.Body.Statements)
		}
		tc.exitScope()

		switch {
		case result == nil:
			result = armType
		case !typesystem.Equal(result, armType):
			result = typesystem.Any
		}
	}
	if result == nil {
		return typesystem.None
	}
	return result
}

// checkPattern reports literal patterns that can never match a statically
// typed subject.
func (tc *TypeChecker) checkPattern(p ast.Pattern, subject typesystem.Type) {
	if typesystem.IsDynamic(subject) {
		return
	}

	var literal typesystem.Type
	switch pat := p.(type) {
	case *ast.NumberPattern:
		if typesystem.IsNumeric(subject) {
			return
		}
		literal = typesystem.LiteralType(pat.Value)
	case *ast.StringPattern:
		literal = typesystem.Str
	case *ast.BooleanPattern:
		literal = typesystem.Bool
	case *ast.OrPattern:
		for _, alt := range pat.Alternatives {
			tc.checkPattern(alt, subject)
		}
		return
	case *ast.BindingPattern:
		tc.checkPattern(pat.Pattern, subject)
		return
	case *ast.GuardPattern:
		tc.checkPattern(pat.Pattern, subject)
		return
	case *ast.TuplePattern:
		tc.checkElements(pat, pat.Elements, subject)
		return
	case *ast.ListPattern:
		tc.checkElements(pat, pat.Elements, subject)
		return
	default:
		return
	}

	if !typesystem.Compatible(literal, subject) {
		tc.reporter.Errorf(diagnostics.ErrT001, p.GetToken(),
			"pattern of type %s can never match %s", literal, subject)
	}
}

func (tc *TypeChecker) checkElements(p ast.Pattern, elems []ast.Pattern, subject typesystem.Type) {
	list, ok := subject.(typesystem.TList)
	if !ok {
		tc.reporter.Errorf(diagnostics.ErrT001, p.GetToken(), "sequence pattern can never match %s", subject)
		return
	}
	for _, el := range elems {
		tc.checkPattern(el, list.Elem)
	}
}

// bindPattern defines the names a pattern captures in the current scope.
// Or-patterns bind from their first alternative.
func (tc *TypeChecker) bindPattern(p ast.Pattern, t typesystem.Type) {
	switch pat := p.(type) {
	case *ast.IdentifierPattern:
		tc.symbolTable.Define(pat.Name, t, pat)
	case *ast.BindingPattern:
		tc.symbolTable.Define(pat.Name, t, pat)
		tc.bindPattern(pat.Pattern, t)
	case *ast.GuardPattern:
		tc.bindPattern(pat.Pattern, t)
		tc.expectCondition(pat.Condition, "pattern guard")
	case *ast.OrPattern:
		if len(pat.Alternatives) > 0 {
			tc.bindPattern(pat.Alternatives[0], t)
		}
	case *ast.TuplePattern:
		tc.bindElements(pat.Elements, t)
	case *ast.ListPattern:
		tc.bindElements(pat.Elements, t)
	case *ast.StructPattern:
		value := typesystem.Any
		if m, ok := t.(typesystem.TMap); ok {
			value = m.Value
		}
		for _, field := range pat.Fields {
			tc.bindPattern(field.Pattern, value)
		}
	}
}

func (tc *TypeChecker) bindElements(elems []ast.Pattern, t typesystem.Type) {
	elem := typesystem.Any
	if list, ok := t.(typesystem.TList); ok {
		elem = list.Elem
	}
	for _, el := range elems {
		tc.bindPattern(el, elem)
	}
}
