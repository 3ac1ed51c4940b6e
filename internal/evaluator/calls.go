package evaluator

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/object"
	"github.com/funvibe/polymodal/internal/token"
)

func (e *Evaluator) evalCallExpression(n *ast.CallExpression) (object.Object, error) {
	// Builtins resolve only when no binding shadows them.
	if ident, ok := n.Function.(*ast.Identifier); ok && config.IsBuiltinFunction(ident.Value) {
		if !e.isDefined(ident.Value) {
			args, err := e.evalArguments(n.Arguments)
			if err != nil {
				return nil, err
			}
			return e.callBuiltin(n.Token, ident.Value, args)
		}
	}

	if member, ok := n.Function.(*ast.MemberExpression); ok {
		return e.evalMethodCall(n, member)
	}

	callee, err := e.evalExpression(n.Function)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*object.Function)
	if !ok {
		return nil, e.errorf(n.Token, "%s is not a function", object.TypeName(callee))
	}
	args, err := e.evalArguments(n.Arguments)
	if err != nil {
		return nil, err
	}
	return e.applyFunction(n.Token, fn, args, nil)
}

// evalMethodCall calls receiver.method(args) with self bound to a copy of
// the receiver.
func (e *Evaluator) evalMethodCall(n *ast.CallExpression, member *ast.MemberExpression) (object.Object, error) {
	receiver, err := e.evalExpression(member.Left)
	if err != nil {
		return nil, err
	}
	m, ok := receiver.(*object.Map)
	if !ok {
		return nil, e.errorf(member.Token, "cannot call %s on %s", member.Member.Value, object.TypeName(receiver))
	}
	method, ok := m.Pairs[member.Member.Value]
	if !ok {
		return nil, e.errorf(member.Member.Token, "no member %s", member.Member.Value)
	}
	fn, ok := method.(*object.Function)
	if !ok {
		return nil, e.errorf(n.Token, "member %s is not a function", member.Member.Value)
	}
	args, err := e.evalArguments(n.Arguments)
	if err != nil {
		return nil, err
	}
	return e.applyFunction(n.Token, fn, args, map[string]object.Object{config.SelfName: receiver})
}

// evalArguments evaluates call arguments in the caller's scope, before the
// callee frame exists.
func (e *Evaluator) evalArguments(exprs []ast.Expression) ([]object.Object, error) {
	args := make([]object.Object, 0, len(exprs))
	for _, expr := range exprs {
		val, err := e.evalExpression(expr)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return args, nil
}

// applyFunction pushes a frame holding the bound parameters and any extra
// bindings, runs the body in it and unwraps a return.
func (e *Evaluator) applyFunction(tok token.Token, fn *object.Function, args []object.Object, extra map[string]object.Object) (object.Object, error) {
	if len(args) != len(fn.Parameters) {
		return nil, e.errorf(tok, "%s expects %d arguments, got %d", fn.Name, len(fn.Parameters), len(args))
	}
	if e.MaxDepth > 0 && e.depth >= e.MaxDepth {
		return nil, e.errorf(tok, "maximum call depth %d exceeded in %s", e.MaxDepth, fn.Name)
	}
	e.depth++
	defer func() { e.depth-- }()

	frame := make(map[string]object.Object, len(args)+len(extra))
	for k, v := range extra {
		frame[k] = v
	}
	for i, param := range fn.Parameters {
		frame[param.Name.Value] = args[i]
	}
	return e.executeBody(fn.Body, frame)
}

func (e *Evaluator) executeBody(body *ast.BlockStatement, frame map[string]object.Object) (object.Object, error) {
	if body == nil {
		return object.NONE, nil
	}
	return e.ExecuteInFrame(body.Statements, frame)
}

// CallFunction invokes fn with already evaluated arguments. It is the entry
// point for execution layers that drive functions from outside a program,
// such as an actor mailbox.
func (e *Evaluator) CallFunction(fn *object.Function, args []object.Object) (object.Object, error) {
	var tok token.Token
	if fn.Body != nil {
		tok = fn.Body.Token
	}
	return e.applyFunction(tok, fn, args, nil)
}

// ExecuteInFrame runs statements against frame, which stays the innermost
// scope for their duration. A return yields its value.
func (e *Evaluator) ExecuteInFrame(stmts []ast.Statement, frame map[string]object.Object) (object.Object, error) {
	e.pushFrame(frame)
	defer e.popFrame()

	e.hoistFunctions(stmts)
	return unwrapReturn(e.evalStatements(stmts))
}
