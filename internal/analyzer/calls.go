package analyzer

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/symbols"
	"github.com/funvibe/polymodal/internal/typesystem"
)

func (tc *TypeChecker) inferCall(e *ast.CallExpression) typesystem.Type {
	switch callee := e.Function.(type) {
	case *ast.Identifier:
		sym, ok := tc.symbolTable.Find(callee.Value)
		if !ok {
			tc.reporter.Errorf(diagnostics.ErrT008, callee.Token, "unknown function: %s", callee.Value)
			tc.inferArguments(e.Arguments)
			return typesystem.Unknown
		}
		tc.types[callee] = sym.Type
		if isBuiltin(sym) {
			return tc.inferBuiltinCall(callee.Value, e)
		}
		return tc.applyFunction(callee.Value, sym.Type, e)
	case *ast.MemberExpression:
		// Method calls on actors, contracts, modules and maps are resolved
		// at runtime.
		tc.inferMember(callee)
		tc.inferArguments(e.Arguments)
		return typesystem.Any
	default:
		return tc.applyFunction("expression", tc.inferExpression(e.Function), e)
	}
}

func isBuiltin(sym symbols.Symbol) bool {
	return sym.Kind == symbols.FunctionSymbol && sym.DefinitionNode == nil && config.IsBuiltinFunction(sym.Name)
}

func (tc *TypeChecker) inferArguments(args []ast.Expression) []typesystem.Type {
	types := make([]typesystem.Type, len(args))
	for i, arg := range args {
		types[i] = tc.inferExpression(arg)
	}
	return types
}

func (tc *TypeChecker) applyFunction(name string, calleeType typesystem.Type, e *ast.CallExpression) typesystem.Type {
	argTypes := tc.inferArguments(e.Arguments)

	fn, ok := calleeType.(typesystem.TFunc)
	if !ok {
		if typesystem.IsDynamic(calleeType) {
			return typesystem.Any
		}
		tc.reporter.Errorf(diagnostics.ErrT008, e.Token, "%s of type %s is not callable", name, calleeType)
		return typesystem.Unknown
	}

	if len(argTypes) != len(fn.Params) {
		tc.reporter.Errorf(diagnostics.ErrT007, e.Token,
			"function %s expects %d arguments, got %d", name, len(fn.Params), len(argTypes))
		return fn.Return
	}
	for i, param := range fn.Params {
		if !tc.assignable(e.Arguments[i], argTypes[i], param) {
			tc.reporter.Errorf(diagnostics.ErrT007, e.Arguments[i].GetToken(),
				"argument %d to %s: expected %s, got %s", i+1, name, param, argTypes[i])
		}
	}
	return fn.Return
}

func (tc *TypeChecker) inferBuiltinCall(name string, e *ast.CallExpression) typesystem.Type {
	argTypes := tc.inferArguments(e.Arguments)

	arity := func(min, max int) bool {
		if len(argTypes) >= min && len(argTypes) <= max {
			return true
		}
		if min == max {
			tc.reporter.Errorf(diagnostics.ErrT007, e.Token, "%s() expects %d arguments, got %d", name, min, len(argTypes))
		} else {
			tc.reporter.Errorf(diagnostics.ErrT007, e.Token, "%s() expects %d to %d arguments, got %d", name, min, max, len(argTypes))
		}
		return false
	}

	switch name {
	case config.RangeFuncName:
		if arity(1, 2) {
			for i, t := range argTypes {
				if !typesystem.IsDynamic(t) && !typesystem.IsInteger(t) {
					tc.reporter.Errorf(diagnostics.ErrT007, e.Arguments[i].GetToken(),
						"range() expects integer arguments, got %s", t)
				}
			}
		}
		return typesystem.TList{Elem: typesystem.I32}

	case config.LenFuncName:
		if arity(1, 1) && !measurable(argTypes[0]) {
			tc.reporter.Errorf(diagnostics.ErrT007, e.Arguments[0].GetToken(),
				"len() expects a list, map or str, got %s", argTypes[0])
		}
		return typesystem.I32

	case config.StrFuncName, config.TypeOfFuncName:
		arity(1, 1)
		return typesystem.Str

	case config.PushFuncName:
		if !arity(2, 2) {
			return typesystem.Unknown
		}
		list, ok := argTypes[0].(typesystem.TList)
		if !ok {
			if !typesystem.IsDynamic(argTypes[0]) {
				tc.reporter.Errorf(diagnostics.ErrT007, e.Arguments[0].GetToken(),
					"push() expects a list, got %s", argTypes[0])
			}
			return typesystem.Any
		}
		if !typesystem.IsDynamic(list.Elem) && !tc.assignable(e.Arguments[1], argTypes[1], list.Elem) {
			tc.reporter.Errorf(diagnostics.ErrT007, e.Arguments[1].GetToken(),
				"push() onto %s: got %s", list, argTypes[1])
		}
		return list
	}
	return typesystem.Any
}

func measurable(t typesystem.Type) bool {
	switch t.(type) {
	case typesystem.TList, typesystem.TMap:
		return true
	}
	return typesystem.IsDynamic(t) || typesystem.Equal(t, typesystem.Str)
}
