package ownership

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/token"
)

// Ownership is the state of one tracked variable.
type Ownership int

const (
	Owned Ownership = iota
	Borrowed
	Mutable
	Moved
)

func (o Ownership) String() string {
	switch o {
	case Borrowed:
		return "borrowed"
	case Mutable:
		return "mutable"
	case Moved:
		return "moved"
	default:
		return "owned"
	}
}

// VariableState pairs a variable's ownership with the scope level that
// introduced it.
type VariableState struct {
	Ownership  Ownership
	ScopeLevel int
	movedAt    token.Token
}

// BorrowChecker tracks moves in a single forward pass. An inner binding
// hides an outer one of the same name until its scope ends; leaving a
// scope deletes every entry introduced at that level or deeper and brings
// back the entries they hid.
type BorrowChecker struct {
	reporter   *diagnostics.Reporter
	variables  map[string]*VariableState
	shadowed   map[string][]*VariableState
	scopeLevel int
}

func NewBorrowChecker(source string) *BorrowChecker {
	return &BorrowChecker{
		reporter:  diagnostics.NewReporter(source),
		variables: make(map[string]*VariableState),
		shadowed:  make(map[string][]*VariableState),
	}
}

func (bc *BorrowChecker) SetFile(file string) { bc.reporter.SetFile(file) }

func (bc *BorrowChecker) Diagnostics() []*diagnostics.Diagnostic { return bc.reporter.Diagnostics() }

// State returns the tracked state of name, if any.
func (bc *BorrowChecker) State(name string) (VariableState, bool) {
	v, ok := bc.variables[name]
	if !ok {
		return VariableState{}, false
	}
	return *v, true
}

// Check reports whether no moved value is used. Programs that are not in
// Compiled mode pass without being inspected.
func (bc *BorrowChecker) Check(program *ast.Program) bool {
	if program == nil || program.Mode != ast.ModeCompiled {
		return true
	}
	for _, stmt := range program.Statements {
		bc.checkStatement(stmt)
	}
	return !bc.reporter.HasErrors()
}

func (bc *BorrowChecker) beginScope() { bc.scopeLevel++ }

func (bc *BorrowChecker) endScope() {
	for name, state := range bc.variables {
		if state.ScopeLevel < bc.scopeLevel {
			continue
		}
		hidden := bc.shadowed[name]
		if len(hidden) == 0 {
			delete(bc.variables, name)
			continue
		}
		bc.variables[name] = hidden[len(hidden)-1]
		if len(hidden) == 1 {
			delete(bc.shadowed, name)
		} else {
			bc.shadowed[name] = hidden[:len(hidden)-1]
		}
	}
	bc.scopeLevel--
}

func (bc *BorrowChecker) own(name string) {
	if outer, ok := bc.variables[name]; ok && outer.ScopeLevel < bc.scopeLevel {
		bc.shadowed[name] = append(bc.shadowed[name], outer)
	}
	bc.variables[name] = &VariableState{Ownership: Owned, ScopeLevel: bc.scopeLevel}
}

func (bc *BorrowChecker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		bc.checkExpression(s.Value)
		bc.own(s.Name.Value)
	case *ast.ConstStatement:
		bc.checkExpression(s.Value)
		bc.own(s.Name.Value)
	case *ast.ExpressionStatement:
		bc.checkExpression(s.Expression)
	case *ast.PrintStatement:
		bc.checkExpression(s.Value)
	case *ast.ReturnStatement:
		bc.checkExpression(s.Value)
	case *ast.IfStatement:
		bc.checkExpression(s.Condition)
		bc.checkBlock(s.Consequence)
		bc.checkBlock(s.Alternative)
	case *ast.WhileStatement:
		bc.checkExpression(s.Condition)
		bc.checkBlock(s.Body)
	case *ast.ForStatement:
		bc.checkLoop(s.Variable, s.Iterable, s.Body)
	case *ast.ParallelForStatement:
		bc.checkLoop(s.Variable, s.Iterable, s.Body)
	case *ast.ParallelMapStatement:
		bc.checkLoop(s.Variable, s.Iterable, s.Body)
	case *ast.BlockStatement:
		bc.checkBlock(s)
	case *ast.FunctionStatement:
		bc.checkFunction(s)
	case *ast.ActorStatement:
		bc.checkContainer(&s.ContainerBody)
	case *ast.ContractStatement:
		bc.checkContainer(&s.ContainerBody)
	case *ast.MatchStatement:
		bc.checkMatch(s.Subject, s.Arms)
	}
}

func (bc *BorrowChecker) checkBlock(block *ast.BlockStatement) {
	if block == nil {
		return
	}
	bc.beginScope()
	for _, stmt := range block.Statements {
		bc.checkStatement(stmt)
	}
	bc.endScope()
}

func (bc *BorrowChecker) checkLoop(variable *ast.Identifier, iterable ast.Expression, body *ast.BlockStatement) {
	bc.checkExpression(iterable)
	bc.beginScope()
	bc.own(variable.Value)
	bc.checkBlock(body)
	bc.endScope()
}

func (bc *BorrowChecker) checkFunction(fn *ast.FunctionStatement) {
	bc.beginScope()
	for _, param := range fn.Parameters {
		bc.own(param.Name.Value)
	}
	if fn.Body != nil {
		for _, stmt := range fn.Body.Statements {
			bc.checkStatement(stmt)
		}
	}
	bc.endScope()
}

func (bc *BorrowChecker) checkContainer(body *ast.ContainerBody) {
	for _, field := range body.Fields {
		bc.checkExpression(field.Value)
	}
	for _, method := range body.Methods {
		bc.checkFunction(method)
	}
}

func (bc *BorrowChecker) checkMatch(subject ast.Expression, arms []*ast.MatchArm) {
	bc.checkExpression(subject)
	for _, arm := range arms {
		bc.beginScope()
		bc.bindPattern(arm.Pattern)
		bc.checkExpression(arm.Guard)
		if arm.Body != nil {
			for _, stmt := range arm.Body.Statements {
				bc.checkStatement(stmt)
			}
		}
		bc.endScope()
	}
}

// bindPattern introduces every name a pattern captures as Owned.
func (bc *BorrowChecker) bindPattern(p ast.Pattern) {
	switch pat := p.(type) {
	case *ast.IdentifierPattern:
		bc.own(pat.Name)
	case *ast.BindingPattern:
		bc.own(pat.Name)
		bc.bindPattern(pat.Pattern)
	case *ast.GuardPattern:
		bc.bindPattern(pat.Pattern)
		bc.checkExpression(pat.Condition)
	case *ast.OrPattern:
		for _, alt := range pat.Alternatives {
			bc.bindPattern(alt)
		}
	case *ast.TuplePattern:
		for _, el := range pat.Elements {
			bc.bindPattern(el)
		}
	case *ast.ListPattern:
		for _, el := range pat.Elements {
			bc.bindPattern(el)
		}
	case *ast.StructPattern:
		for _, field := range pat.Fields {
			bc.bindPattern(field.Pattern)
		}
	}
}

func (bc *BorrowChecker) checkExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		bc.read(e)
	case *ast.InfixExpression:
		bc.checkExpression(e.Left)
		bc.checkExpression(e.Right)
	case *ast.PrefixExpression:
		bc.checkExpression(e.Right)
	case *ast.AssignExpression:
		bc.checkExpression(e.Value)
		if state, ok := bc.variables[e.Name.Value]; ok {
			state.Ownership = Owned
		}
	case *ast.CallExpression:
		bc.checkCall(e)
	case *ast.MemberExpression:
		bc.checkExpression(e.Left)
	case *ast.IndexExpression:
		bc.checkExpression(e.Left)
		bc.checkExpression(e.Index)
	case *ast.ListLiteral:
		for _, el := range e.Elements {
			bc.checkExpression(el)
		}
	case *ast.MapLiteral:
		// Keys are field names, not reads.
		for _, pair := range e.Pairs {
			bc.checkExpression(pair.Value)
		}
	case *ast.MatchExpression:
		bc.checkMatch(e.Subject, e.Arms)
	case *ast.DestructureExpression:
		bc.checkExpression(e.Value)
		bc.bindPattern(e.Pattern)
	case *ast.AsyncExpression:
		bc.checkExpression(e.Body)
	case *ast.AwaitExpression:
		bc.checkExpression(e.Value)
	case *ast.YieldExpression:
		bc.checkExpression(e.Value)
	case *ast.GeneratorExpression:
		bc.checkBlock(e.Body)
	case *ast.CoroutineExpression:
		bc.checkBlock(e.Body)
	case *ast.ResumeExpression:
		bc.checkExpression(e.Coroutine)
	}
}

// checkCall moves every identifier passed directly as an argument,
// whatever the callee does with it.
func (bc *BorrowChecker) checkCall(e *ast.CallExpression) {
	switch callee := e.Function.(type) {
	case *ast.Identifier:
		bc.read(callee)
	default:
		bc.checkExpression(callee)
	}

	for _, arg := range e.Arguments {
		bc.checkExpression(arg)
		ident, ok := arg.(*ast.Identifier)
		if !ok {
			continue
		}
		if state, ok := bc.variables[ident.Value]; ok && state.Ownership == Owned {
			state.Ownership = Moved
			state.movedAt = ident.Token
		}
	}
}

func (bc *BorrowChecker) read(ident *ast.Identifier) {
	state, ok := bc.variables[ident.Value]
	if !ok || state.Ownership != Moved {
		return
	}
	d := bc.reporter.Errorf(diagnostics.ErrO001, ident.Token, "use of moved value: %s", ident.Value)
	if state.movedAt.Line > 0 {
		d.WithNote("value moved at %d:%d", state.movedAt.Line, state.movedAt.Column)
	}
}
