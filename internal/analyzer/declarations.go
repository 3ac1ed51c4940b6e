package analyzer

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/symbols"
	"github.com/funvibe/polymodal/internal/typesystem"
)

// collectDeclarations is the first pass. Container names come first so
// that signatures may mention them; then function signatures and
// annotated lets are hoisted so top-level code can refer to them before
// their definition.
func (tc *TypeChecker) collectDeclarations(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ActorStatement:
			tc.symbolTable.DefineType(s.Name.Value, s)
		case *ast.ContractStatement:
			tc.symbolTable.DefineType(s.Name.Value, s)
		case *ast.ImportStatement:
			tc.symbolTable.DefineModule(s.BindingName(), s)
		}
	}

	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionStatement:
			sig := tc.functionSignature(s)
			tc.signatures[s] = sig
			tc.symbolTable.DefineFunction(s.Name.Value, sig, s)
		case *ast.LetStatement:
			if s.TypeAnnotation != "" {
				tc.symbolTable.DefinePending(s.Name.Value, tc.resolveAnnotation(s, s.TypeAnnotation, false), s)
			}
		case *ast.ConstStatement:
			if s.TypeAnnotation != "" {
				tc.symbolTable.DefinePending(s.Name.Value, tc.resolveAnnotation(s, s.TypeAnnotation, false), s)
			}
		}
	}
}

// functionSignature builds the function type from annotations. Missing
// annotations are any.
func (tc *TypeChecker) functionSignature(fn *ast.FunctionStatement) typesystem.TFunc {
	sig := typesystem.TFunc{Return: typesystem.Any}
	for _, param := range fn.Parameters {
		t := typesystem.Any
		if param.TypeAnnotation != "" {
			t = tc.resolveAnnotation(param.Name, param.TypeAnnotation, true)
		}
		sig.Params = append(sig.Params, t)
	}
	if fn.ReturnType != "" {
		sig.Return = tc.resolveAnnotation(fn, fn.ReturnType, true)
	}
	return sig
}

func (tc *TypeChecker) checkFunction(fn *ast.FunctionStatement, self bool) {
	sig, ok := tc.signatures[fn]
	if !ok {
		sig = tc.functionSignature(fn)
		tc.signatures[fn] = sig
	}

	var ret typesystem.Type
	if fn.ReturnType != "" {
		ret = sig.Return
	}

	tc.enterFunction(ret)
	defer tc.exitScope()

	if self {
		tc.symbolTable.Define("self", symbols.ContainerType, fn)
	}
	for i, param := range fn.Parameters {
		tc.symbolTable.Define(param.Name.Value, sig.Params[i], param.Name)
	}
	if fn.Body != nil {
		tc.checkStatements(fn.Body.Statements)
	}
}

// checkContainer checks state field initializers and method bodies of an
// actor or contract.
func (tc *TypeChecker) checkContainer(body *ast.ContainerBody) {
	for _, field := range body.Fields {
		if field.Value == nil {
			continue
		}
		valueType := tc.inferExpression(field.Value)
		if field.TypeAnnotation == "" {
			continue
		}
		declared := tc.resolveAnnotation(field.Name, field.TypeAnnotation, true)
		if !tc.assignable(field.Value, valueType, declared) {
			tc.mismatch(field.Name, declared, valueType)
		}
	}
	for _, method := range body.Methods {
		tc.checkFunction(method, true)
	}
}
