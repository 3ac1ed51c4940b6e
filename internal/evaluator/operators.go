package evaluator

import (
	"math"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/object"
)

func (e *Evaluator) evalPrefixExpression(n *ast.PrefixExpression) (object.Object, error) {
	right, err := e.evalExpression(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case ast.OpNot:
		if b, ok := right.(*object.Boolean); ok {
			return object.NativeBool(!b.Value), nil
		}
	case ast.OpNegate:
		if num, ok := right.(*object.Number); ok {
			return &object.Number{Value: -num.Value}, nil
		}
	}
	return nil, e.errorf(n.Token, "cannot apply %s to %s", n.Operator, object.TypeName(right))
}

func (e *Evaluator) evalInfixExpression(n *ast.InfixExpression) (object.Object, error) {
	if n.Operator.IsLogical() {
		return e.evalLogicalExpression(n)
	}

	left, err := e.evalExpression(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpression(n.Right)
	if err != nil {
		return nil, err
	}

	if n.Operator.IsEquality() {
		return e.evalEquality(n, left, right)
	}

	switch l := left.(type) {
	case *object.Number:
		switch r := right.(type) {
		case *object.Number:
			return e.evalNumberInfix(n, l.Value, r.Value)
		case *object.String:
			if n.Operator == ast.OpAdd {
				return &object.String{Value: l.Inspect() + r.Value}, nil
			}
		}
	case *object.String:
		if n.Operator == ast.OpAdd {
			switch r := right.(type) {
			case *object.String:
				return &object.String{Value: l.Value + r.Value}, nil
			case *object.Number:
				return &object.String{Value: l.Value + r.Inspect()}, nil
			}
		}
	}
	return nil, e.errorf(n.Token, "cannot apply %s to %s and %s",
		n.Operator, object.TypeName(left), object.TypeName(right))
}

func (e *Evaluator) evalNumberInfix(n *ast.InfixExpression, l, r float64) (object.Object, error) {
	switch n.Operator {
	case ast.OpAdd:
		return &object.Number{Value: l + r}, nil
	case ast.OpSubtract:
		return &object.Number{Value: l - r}, nil
	case ast.OpMultiply:
		return &object.Number{Value: l * r}, nil
	case ast.OpDivide:
		if r == 0 {
			return nil, e.errorf(n.Token, "division by zero")
		}
		return &object.Number{Value: l / r}, nil
	case ast.OpModulo:
		if r == 0 {
			return nil, e.errorf(n.Token, "modulo by zero")
		}
		return &object.Number{Value: math.Mod(l, r)}, nil
	case ast.OpLessThan:
		return object.NativeBool(l < r), nil
	case ast.OpLessEqual:
		return object.NativeBool(l <= r), nil
	case ast.OpGreaterThan:
		return object.NativeBool(l > r), nil
	case ast.OpGreaterEqual:
		return object.NativeBool(l >= r), nil
	}
	return nil, e.errorf(n.Token, "unknown operator %s", n.Operator)
}

// evalEquality compares same-tag values structurally. None compares with
// anything; other mixed tags are an error.
func (e *Evaluator) evalEquality(n *ast.InfixExpression, left, right object.Object) (object.Object, error) {
	if left.Type() != right.Type() && left.Type() != object.NONE_OBJ && right.Type() != object.NONE_OBJ {
		return nil, e.errorf(n.Token, "cannot compare %s and %s", object.TypeName(left), object.TypeName(right))
	}
	equal := object.Equal(left, right)
	if n.Operator == ast.OpNotEqual {
		equal = !equal
	}
	return object.NativeBool(equal), nil
}

// evalLogicalExpression short-circuits && and ||. Both operands must be
// booleans.
func (e *Evaluator) evalLogicalExpression(n *ast.InfixExpression) (object.Object, error) {
	left, err := e.evalBool(n, n.Left)
	if err != nil {
		return nil, err
	}
	if n.Operator == ast.OpAnd && !left {
		return object.FALSE, nil
	}
	if n.Operator == ast.OpOr && left {
		return object.TRUE, nil
	}
	right, err := e.evalBool(n, n.Right)
	if err != nil {
		return nil, err
	}
	return object.NativeBool(right), nil
}

func (e *Evaluator) evalBool(n *ast.InfixExpression, operand ast.Expression) (bool, error) {
	val, err := e.evalExpression(operand)
	if err != nil {
		return false, err
	}
	b, ok := val.(*object.Boolean)
	if !ok {
		return false, e.errorf(n.Token, "%s requires bool operands, got %s", n.Operator, object.TypeName(val))
	}
	return b.Value, nil
}
