package evaluator

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/object"
	"github.com/funvibe/polymodal/internal/patterns"
)

func (e *Evaluator) evalExpression(expr ast.Expression) (object.Object, error) {
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		return &object.Number{Value: n.Value}, nil
	case *ast.StringLiteral:
		return &object.String{Value: n.Value}, nil
	case *ast.BooleanLiteral:
		return object.NativeBool(n.Value), nil
	case *ast.NoneLiteral:
		return object.NONE, nil
	case *ast.Identifier:
		return e.evalIdentifier(n)
	case *ast.InfixExpression:
		return e.evalInfixExpression(n)
	case *ast.PrefixExpression:
		return e.evalPrefixExpression(n)
	case *ast.AssignExpression:
		return e.evalAssignExpression(n)
	case *ast.CallExpression:
		return e.evalCallExpression(n)
	case *ast.MemberExpression:
		return e.evalMemberExpression(n)
	case *ast.IndexExpression:
		return e.evalIndexExpression(n)
	case *ast.ListLiteral:
		return e.evalListLiteral(n)
	case *ast.MapLiteral:
		return e.evalMapLiteral(n)
	case *ast.MatchExpression:
		return e.evalMatch(n.Token, n.Subject, n.Arms, false)
	case *ast.DestructureExpression:
		return e.evalDestructure(n)
	case *ast.AsyncExpression:
		return e.evalExpression(n.Body)
	case *ast.AwaitExpression:
		return e.evalExpression(n.Value)
	case *ast.YieldExpression:
		return e.evalYield(n)
	case *ast.GeneratorExpression:
		return e.evalGenerator(n)
	case *ast.CoroutineExpression:
		return &object.Function{Name: "coroutine", Kind: ast.FunctionCoroutine, Body: n.Body}, nil
	case *ast.SuspendExpression:
		return object.NONE, nil
	case *ast.ResumeExpression:
		return e.evalResume(n)
	case nil:
		return object.NONE, nil
	}
	return nil, e.errorf(expr.GetToken(), "unsupported expression %T", expr)
}

func (e *Evaluator) evalIdentifier(n *ast.Identifier) (object.Object, error) {
	if val, ok := e.lookup(n.Value); ok {
		return val, nil
	}
	if config.IsBuiltinFunction(n.Value) {
		return nil, e.errorf(n.Token, "builtin %s must be called", n.Value)
	}
	return nil, e.errorf(n.Token, "undefined variable: %s", n.Value)
}

func (e *Evaluator) evalAssignExpression(n *ast.AssignExpression) (object.Object, error) {
	val, err := e.evalExpression(n.Value)
	if err != nil {
		return nil, err
	}
	if err := e.assign(n.Name.Token, n.Name.Value, val); err != nil {
		return nil, err
	}
	return object.Copy(val), nil
}

func (e *Evaluator) evalMemberExpression(n *ast.MemberExpression) (object.Object, error) {
	left, err := e.evalExpression(n.Left)
	if err != nil {
		return nil, err
	}
	m, ok := left.(*object.Map)
	if !ok {
		return nil, e.errorf(n.Token, "cannot access member %s of %s", n.Member.Value, object.TypeName(left))
	}
	val, ok := m.Pairs[n.Member.Value]
	if !ok {
		return nil, e.errorf(n.Member.Token, "no member %s", n.Member.Value)
	}
	return val, nil
}

func (e *Evaluator) evalIndexExpression(n *ast.IndexExpression) (object.Object, error) {
	left, err := e.evalExpression(n.Left)
	if err != nil {
		return nil, err
	}
	index, err := e.evalExpression(n.Index)
	if err != nil {
		return nil, err
	}

	switch container := left.(type) {
	case *object.List:
		i, ok := index.(*object.Number)
		if !ok || !i.IsIntegral() {
			return nil, e.errorf(n.Token, "list index must be an integer, got %s", index.Inspect())
		}
		if i.Value < 0 || i.Value >= float64(len(container.Elements)) {
			return nil, e.errorf(n.Token, "index %s out of bounds for list of length %d",
				i.Inspect(), len(container.Elements))
		}
		return container.Elements[int(i.Value)], nil
	case *object.Map:
		key, ok := index.(*object.String)
		if !ok {
			return nil, e.errorf(n.Token, "map key must be a string, got %s", object.TypeName(index))
		}
		val, ok := container.Pairs[key.Value]
		if !ok {
			return nil, e.errorf(n.Token, "key %q not found", key.Value)
		}
		return val, nil
	}
	return nil, e.errorf(n.Token, "cannot index %s", object.TypeName(left))
}

func (e *Evaluator) evalListLiteral(n *ast.ListLiteral) (object.Object, error) {
	elements := make([]object.Object, 0, len(n.Elements))
	for _, el := range n.Elements {
		val, err := e.evalExpression(el)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return &object.List{Elements: elements}, nil
}

func (e *Evaluator) evalMapLiteral(n *ast.MapLiteral) (object.Object, error) {
	m := object.NewMap()
	for _, pair := range n.Pairs {
		var key string
		switch k := pair.Key.(type) {
		case *ast.Identifier:
			key = k.Value
		case *ast.StringLiteral:
			key = k.Value
		default:
			return nil, e.errorf(pair.Key.GetToken(), "map keys must be names or strings")
		}
		val, err := e.evalExpression(pair.Value)
		if err != nil {
			return nil, err
		}
		m.Pairs[key] = val
	}
	return m, nil
}

// evalDestructure binds the captures of `let pattern = value` in the
// current frame.
func (e *Evaluator) evalDestructure(n *ast.DestructureExpression) (object.Object, error) {
	val, err := e.evalExpression(n.Value)
	if err != nil {
		return nil, err
	}
	if !patterns.Matches(n.Pattern, val) {
		return nil, e.errorf(n.Token, "value %s does not match the destructuring pattern", val.Inspect())
	}
	for _, b := range patterns.ExtractBindings(n.Pattern, val) {
		e.define(b.Name, b.Value)
	}
	return object.NONE, nil
}
