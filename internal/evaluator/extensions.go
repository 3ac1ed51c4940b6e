package evaluator

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/object"
)

// Async, generator and coroutine forms run synchronously on the calling
// evaluator.

func (e *Evaluator) evalGenerator(n *ast.GeneratorExpression) (object.Object, error) {
	e.yields = append(e.yields, []object.Object{})
	defer func() { e.yields = e.yields[:len(e.yields)-1] }()

	if _, err := e.evalBlockStatement(n.Body); err != nil {
		return nil, err
	}
	return &object.List{Elements: e.yields[len(e.yields)-1]}, nil
}

func (e *Evaluator) evalYield(n *ast.YieldExpression) (object.Object, error) {
	if len(e.yields) == 0 {
		return nil, e.errorf(n.Token, "yield outside of a generator")
	}
	var val object.Object = object.NONE
	if n.Value != nil {
		var err error
		if val, err = e.evalExpression(n.Value); err != nil {
			return nil, err
		}
	}
	top := len(e.yields) - 1
	e.yields[top] = append(e.yields[top], val)
	return object.NONE, nil
}

func (e *Evaluator) evalResume(n *ast.ResumeExpression) (object.Object, error) {
	target, err := e.evalExpression(n.Coroutine)
	if err != nil {
		return nil, err
	}
	fn, ok := target.(*object.Function)
	if !ok {
		return nil, e.errorf(n.Token, "cannot resume %s", object.TypeName(target))
	}
	return e.applyFunction(n.Token, fn, nil, nil)
}
