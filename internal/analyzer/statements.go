package analyzer

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/symbols"
	"github.com/funvibe/polymodal/internal/typesystem"
)

// checkStatements checks a statement list in the current scope and
// returns the type of the last statement.
func (tc *TypeChecker) checkStatements(stmts []ast.Statement) typesystem.Type {
	last := typesystem.None
	for _, stmt := range stmts {
		last = tc.checkStatement(stmt)
	}
	return last
}

// checkBlock checks a block in a fresh scope.
func (tc *TypeChecker) checkBlock(block *ast.BlockStatement) typesystem.Type {
	if block == nil {
		return typesystem.None
	}
	tc.enterScope(symbols.ScopeBlock)
	defer tc.exitScope()
	return tc.checkStatements(block.Statements)
}

func (tc *TypeChecker) checkStatement(stmt ast.Statement) typesystem.Type {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		return tc.checkBinding(s, s.Name, s.TypeAnnotation, s.Value, false)
	case *ast.ConstStatement:
		return tc.checkBinding(s, s.Name, s.TypeAnnotation, s.Value, true)
	case *ast.ExpressionStatement:
		return tc.inferExpression(s.Expression)
	case *ast.PrintStatement:
		tc.inferExpression(s.Value)
	case *ast.ReturnStatement:
		tc.checkReturn(s)
	case *ast.IfStatement:
		tc.checkIf(s)
	case *ast.WhileStatement:
		tc.expectCondition(s.Condition, "while")
		tc.checkBlock(s.Body)
	case *ast.ForStatement:
		tc.checkLoop(s.Variable, s.Iterable, s.Body)
	case *ast.ParallelForStatement:
		tc.checkLoop(s.Variable, s.Iterable, s.Body)
	case *ast.ParallelMapStatement:
		tc.checkLoop(s.Variable, s.Iterable, s.Body)
	case *ast.BlockStatement:
		return tc.checkBlock(s)
	case *ast.FunctionStatement:
		if !tc.hoisted(s) {
			sig := tc.functionSignature(s)
			tc.signatures[s] = sig
			tc.symbolTable.DefineFunction(s.Name.Value, sig, s)
		}
		tc.checkFunction(s, false)
	case *ast.ActorStatement:
		tc.checkContainer(&s.ContainerBody)
	case *ast.ContractStatement:
		tc.checkContainer(&s.ContainerBody)
	case *ast.ImportStatement:
		if !tc.symbolTable.IsDefined(s.BindingName()) {
			tc.symbolTable.DefineModule(s.BindingName(), s)
		}
	case *ast.MatchStatement:
		tc.checkMatch(s.Subject, s.Arms)
	}
	// Module, component, flow, deployment and cluster declarations carry
	// no checkable values.
	return typesystem.None
}

func (tc *TypeChecker) hoisted(fn *ast.FunctionStatement) bool {
	_, ok := tc.signatures[fn]
	return ok
}

func (tc *TypeChecker) checkBinding(stmt ast.Statement, name *ast.Identifier, annotation string, value ast.Expression, constant bool) typesystem.Type {
	valueType := tc.inferExpression(value)

	define := tc.symbolTable.Define
	if constant {
		define = tc.symbolTable.DefineConstant
	}

	if annotation != "" {
		declared := tc.resolveAnnotation(name, annotation, true)
		if !tc.assignable(value, valueType, declared) {
			tc.mismatch(value, declared, valueType)
		}
		define(name.Value, declared, stmt)
		return declared
	}

	if containsUnknown(valueType) {
		if constant {
			tc.reporter.Errorf(diagnostics.ErrT001, name.Token,
				"const %s requires an explicit type annotation", name.Value)
		} else {
			tc.reporter.Warningf(diagnostics.WarnW001, name.Token,
				"cannot infer type for %s, defaulting to any", name.Value)
		}
		define(name.Value, typesystem.Any, stmt)
		return typesystem.Any
	}

	define(name.Value, valueType, stmt)
	return valueType
}

func (tc *TypeChecker) checkReturn(s *ast.ReturnStatement) {
	valueType := typesystem.None
	if s.Value != nil {
		valueType = tc.inferExpression(s.Value)
	}

	expected, inFunction := tc.symbolTable.ReturnType()
	if !inFunction || expected == nil {
		return
	}
	if s.Value == nil {
		if !typesystem.Equal(expected, typesystem.None) && !typesystem.IsAny(expected) {
			tc.reporter.Errorf(diagnostics.ErrT001, s.Token,
				"missing return value: expected %s", expected)
		}
		return
	}
	if !tc.assignable(s.Value, valueType, expected) {
		tc.reporter.Errorf(diagnostics.ErrT001, s.Value.GetToken(),
			"return type mismatch: expected %s, got %s", expected, valueType)
	}
}

func (tc *TypeChecker) checkIf(s *ast.IfStatement) {
	tc.expectCondition(s.Condition, "if")

	thenType := tc.checkBlock(s.Consequence)
	if s.Alternative == nil {
		return
	}
	elseType := tc.checkBlock(s.Alternative)

	if branchTyped(thenType) && branchTyped(elseType) && !typesystem.Equal(thenType, elseType) {
		tc.reporter.Warningf(diagnostics.WarnW003, s.Token,
			"if/else branches produce different types: %s and %s", thenType, elseType)
	}
}

// branchTyped reports whether a branch ends with a value worth comparing.
func branchTyped(t typesystem.Type) bool {
	return !typesystem.IsDynamic(t) && !typesystem.Equal(t, typesystem.None)
}

func (tc *TypeChecker) expectCondition(cond ast.Expression, construct string) {
	t := tc.inferExpression(cond)
	if !typesystem.IsDynamic(t) && !typesystem.Equal(t, typesystem.Bool) {
		tc.reporter.Errorf(diagnostics.ErrT004, cond.GetToken(),
			"%s condition must be bool, got %s", construct, t)
	}
}

// checkLoop checks a for-style loop. Lists yield their elements and
// integers count from zero; the variable lives in its own scope.
func (tc *TypeChecker) checkLoop(variable *ast.Identifier, iterable ast.Expression, body *ast.BlockStatement) {
	iterType := tc.inferExpression(iterable)

	elem := typesystem.Any
	switch {
	case typesystem.IsDynamic(iterType):
	case typesystem.IsInteger(iterType):
		elem = typesystem.I32
	default:
		if list, ok := iterType.(typesystem.TList); ok {
			elem = list.Elem
		} else {
			tc.reporter.Errorf(diagnostics.ErrT005, iterable.GetToken(),
				"for loop iterable must be a list or integer, got %s", iterType)
		}
	}

	tc.enterScope(symbols.ScopeBlock)
	defer tc.exitScope()
	tc.symbolTable.Define(variable.Value, elem, variable)
	tc.checkBlock(body)
}

func (tc *TypeChecker) mismatch(node ast.Node, expected, got typesystem.Type) {
	tc.reporter.Errorf(diagnostics.ErrT001, node.GetToken(),
		"type mismatch: expected %s, got %s", expected, got)
}
