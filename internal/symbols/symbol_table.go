package symbols

import (
	"fmt"
	"sort"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/typesystem"
)

type SymbolKind int

type ScopeType int

const (
	ScopePrelude ScopeType = iota // Builtin functions
	ScopeGlobal                   // User code top-level
	ScopeFunction
	ScopeBlock
)

const (
	VariableSymbol SymbolKind = iota
	FunctionSymbol
	TypeSymbol   // Actor and contract names
	ModuleSymbol // Imported modules
)

func (k SymbolKind) String() string {
	switch k {
	case FunctionSymbol:
		return "function"
	case TypeSymbol:
		return "type"
	case ModuleSymbol:
		return "module"
	default:
		return "variable"
	}
}

// ContainerType is the static type of actor and contract values.
var ContainerType typesystem.Type = typesystem.TMap{Key: typesystem.Str, Value: typesystem.Any}

type Symbol struct {
	Name           string
	Type           typesystem.Type
	Kind           SymbolKind
	IsConstant     bool     // Defined with const
	IsPending      bool     // Hoisted signature whose body has not been checked yet
	DefinitionNode ast.Node // The AST node where this symbol was defined
}

// SymbolTable is one lexical scope. Lookups walk outward through the
// enclosing tables.
type SymbolTable struct {
	store     map[string]Symbol
	outer     *SymbolTable
	scopeType ScopeType

	// Declared return type of the function owning this scope; nil outside
	// functions or when the function has no annotation.
	returnType typesystem.Type
}

func NewEmptySymbolTable() *SymbolTable {
	return &SymbolTable{
		store:     make(map[string]Symbol),
		scopeType: ScopeGlobal,
	}
}

func NewEnclosedSymbolTable(outer *SymbolTable, scopeType ScopeType) *SymbolTable {
	s := NewEmptySymbolTable()
	s.outer = outer
	s.scopeType = scopeType
	return s
}

// NewFunctionScope opens a function body scope. ret is nil when the
// function's return type is not annotated.
func NewFunctionScope(outer *SymbolTable, ret typesystem.Type) *SymbolTable {
	s := NewEnclosedSymbolTable(outer, ScopeFunction)
	s.returnType = ret
	return s
}

func (s *SymbolTable) Outer() *SymbolTable { return s.outer }

func (s *SymbolTable) IsFunctionScope() bool { return s.scopeType == ScopeFunction }

func (s *SymbolTable) IsGlobalScope() bool { return s.scopeType == ScopeGlobal }

// ReturnType reports the declared return type of the nearest enclosing
// function. ok is false at top level.
func (s *SymbolTable) ReturnType() (t typesystem.Type, ok bool) {
	for scope := s; scope != nil; scope = scope.outer {
		if scope.scopeType == ScopeFunction {
			return scope.returnType, true
		}
	}
	return nil, false
}

func (s *SymbolTable) Define(name string, t typesystem.Type, node ast.Node) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: VariableSymbol, DefinitionNode: node}
}

func (s *SymbolTable) DefineConstant(name string, t typesystem.Type, node ast.Node) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: VariableSymbol, IsConstant: true, DefinitionNode: node}
}

func (s *SymbolTable) DefineFunction(name string, t typesystem.TFunc, node ast.Node) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: FunctionSymbol, DefinitionNode: node}
}

func (s *SymbolTable) DefinePending(name string, t typesystem.Type, node ast.Node) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: VariableSymbol, IsPending: true, DefinitionNode: node}
}

// DefineType declares an actor or contract name. Its values are maps from
// field and method names to values.
func (s *SymbolTable) DefineType(name string, node ast.Node) {
	s.store[name] = Symbol{Name: name, Type: ContainerType, Kind: TypeSymbol, DefinitionNode: node}
}

func (s *SymbolTable) DefineModule(name string, node ast.Node) {
	s.store[name] = Symbol{Name: name, Type: typesystem.Any, Kind: ModuleSymbol, DefinitionNode: node}
}

func (s *SymbolTable) FindWithScope(name string) (Symbol, *SymbolTable, bool) {
	for scope := s; scope != nil; scope = scope.outer {
		if sym, ok := scope.store[name]; ok {
			return sym, scope, true
		}
	}
	return Symbol{}, nil, false
}

func (s *SymbolTable) Find(name string) (Symbol, bool) {
	sym, _, ok := s.FindWithScope(name)
	return sym, ok
}

func (s *SymbolTable) IsDefined(name string) bool {
	_, ok := s.Find(name)
	return ok
}

func (s *SymbolTable) IsDefinedLocally(name string) bool {
	_, ok := s.store[name]
	return ok
}

// IsTypeName reports whether name is a declared actor or contract.
func (s *SymbolTable) IsTypeName(name string) bool {
	sym, ok := s.Find(name)
	return ok && sym.Kind == TypeSymbol
}

// Update replaces the type of an existing symbol in the scope that
// defines it.
func (s *SymbolTable) Update(name string, t typesystem.Type) error {
	sym, scope, ok := s.FindWithScope(name)
	if !ok {
		return fmt.Errorf("symbol %s not found", name)
	}
	sym.Type = t
	sym.IsPending = false
	scope.store[name] = sym
	return nil
}

// GetAllNames returns every visible name, sorted.
func (s *SymbolTable) GetAllNames() []string {
	seen := make(map[string]bool)
	for scope := s; scope != nil; scope = scope.outer {
		for name := range scope.store {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
