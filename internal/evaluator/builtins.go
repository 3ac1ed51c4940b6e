package evaluator

import (
	"iter"
	"unicode/utf8"

	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/object"
	"github.com/funvibe/polymodal/internal/token"
)

func (e *Evaluator) callBuiltin(tok token.Token, name string, args []object.Object) (object.Object, error) {
	switch name {
	case config.RangeFuncName:
		return e.builtinRange(tok, args)
	case config.LenFuncName:
		if err := e.checkArity(tok, name, args, 1); err != nil {
			return nil, err
		}
		return e.builtinLen(tok, args[0])
	case config.StrFuncName:
		if err := e.checkArity(tok, name, args, 1); err != nil {
			return nil, err
		}
		return &object.String{Value: args[0].Inspect()}, nil
	case config.TypeOfFuncName:
		if err := e.checkArity(tok, name, args, 1); err != nil {
			return nil, err
		}
		return &object.String{Value: object.TypeName(args[0])}, nil
	case config.PushFuncName:
		if err := e.checkArity(tok, name, args, 2); err != nil {
			return nil, err
		}
		list, ok := args[0].(*object.List)
		if !ok {
			return nil, e.errorf(tok, "push expects a list, got %s", object.TypeName(args[0]))
		}
		elements := append(list.Elements[:len(list.Elements):len(list.Elements)], args[1])
		return &object.List{Elements: elements}, nil
	}
	return nil, e.errorf(tok, "unknown builtin %s", name)
}

func (e *Evaluator) checkArity(tok token.Token, name string, args []object.Object, want int) error {
	if len(args) != want {
		return e.errorf(tok, "%s expects %d arguments, got %d", name, want, len(args))
	}
	return nil
}

// builtinRange accepts range(n) for 0..n-1 and range(a, b) for a..b-1.
func (e *Evaluator) builtinRange(tok token.Token, args []object.Object) (object.Object, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, e.errorf(tok, "range expects 1 or 2 arguments, got %d", len(args))
	}
	bounds := make([]float64, len(args))
	for i, arg := range args {
		n, ok := arg.(*object.Number)
		if !ok || !n.IsIntegral() {
			return nil, e.errorf(tok, "range bounds must be integers, got %s", arg.Inspect())
		}
		bounds[i] = n.Value
	}
	from, to := 0.0, bounds[0]
	if len(bounds) == 2 {
		from, to = bounds[0], bounds[1]
	}
	if to-from > config.MaxRangeLength {
		return nil, e.errorf(tok, "range of %.0f elements exceeds the limit of %d", to-from, config.MaxRangeLength)
	}
	elements := []object.Object{}
	for i := range count(from, to) {
		elements = append(elements, i)
	}
	return &object.List{Elements: elements}, nil
}

// count yields the numbers from..to-1 without materializing them.
func count(from, to float64) iter.Seq[object.Object] {
	return func(yield func(object.Object) bool) {
		for i := from; i < to; i++ {
			if !yield(&object.Number{Value: i}) {
				return
			}
		}
	}
}

func (e *Evaluator) builtinLen(tok token.Token, arg object.Object) (object.Object, error) {
	switch v := arg.(type) {
	case *object.List:
		return &object.Number{Value: float64(len(v.Elements))}, nil
	case *object.String:
		return &object.Number{Value: float64(utf8.RuneCountInString(v.Value))}, nil
	case *object.Map:
		return &object.Number{Value: float64(len(v.Pairs))}, nil
	}
	return nil, e.errorf(tok, "len is not defined for %s", object.TypeName(arg))
}
