package symbols

import (
	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/typesystem"
)

// NewPrelude returns the outermost scope holding the builtin functions.
// Builtins with flexible arity or argument types are typed with any and
// get dedicated handling in the type checker.
func NewPrelude() *SymbolTable {
	s := NewEmptySymbolTable()
	s.scopeType = ScopePrelude

	s.DefineFunction(config.RangeFuncName, typesystem.TFunc{
		Params: []typesystem.Type{typesystem.Any},
		Return: typesystem.TList{Elem: typesystem.I32},
	}, nil)
	s.DefineFunction(config.LenFuncName, typesystem.TFunc{
		Params: []typesystem.Type{typesystem.Any},
		Return: typesystem.I32,
	}, nil)
	s.DefineFunction(config.StrFuncName, typesystem.TFunc{
		Params: []typesystem.Type{typesystem.Any},
		Return: typesystem.Str,
	}, nil)
	s.DefineFunction(config.TypeOfFuncName, typesystem.TFunc{
		Params: []typesystem.Type{typesystem.Any},
		Return: typesystem.Str,
	}, nil)
	s.DefineFunction(config.PushFuncName, typesystem.TFunc{
		Params: []typesystem.Type{typesystem.Any, typesystem.Any},
		Return: typesystem.Any,
	}, nil)
	return s
}

// NewGlobalScope opens the user top-level scope over a fresh prelude.
func NewGlobalScope() *SymbolTable {
	return NewEnclosedSymbolTable(NewPrelude(), ScopeGlobal)
}
