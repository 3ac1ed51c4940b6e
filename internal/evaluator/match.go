package evaluator

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/object"
	"github.com/funvibe/polymodal/internal/patterns"
	"github.com/funvibe/polymodal/internal/token"
)

// evalMatch evaluates subject once and runs the first arm whose pattern
// matches and whose guard holds. Statement matches are first checked for
// overlapping arms (fatal) and a missing default arm (warning).
func (e *Evaluator) evalMatch(tok token.Token, subject ast.Expression, arms []*ast.MatchArm, statement bool) (object.Object, error) {
	if statement {
		if err := patterns.CheckOverlap(arms); err != nil {
			return nil, e.errorf(tok, "%v", err)
		}
		if err := patterns.CheckExhaustive(arms); err != nil {
			e.warn(tok, "%v", err)
		}
	}

	value, err := e.evalExpression(subject)
	if err != nil {
		return nil, err
	}

	for _, arm := range arms {
		if !patterns.Matches(arm.Pattern, value) {
			continue
		}
		bindings := patterns.ExtractBindings(arm.Pattern, value)

		ok, err := e.guardHolds(arm, bindings)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		for _, b := range bindings {
			e.define(b.Name, b.Value)
		}
		return e.evalBlockStatement(arm.Body)
	}

	return nil, e.errorf(tok, "no match arm matched %s", value.Inspect())
}

// guardHolds evaluates the arm guard, and the condition of a guard pattern,
// in a temporary frame holding the arm's bindings.
func (e *Evaluator) guardHolds(arm *ast.MatchArm, bindings []patterns.Binding) (bool, error) {
	var guards []ast.Expression
	if gp, ok := arm.Pattern.(*ast.GuardPattern); ok && gp.Condition != nil {
		guards = append(guards, gp.Condition)
	}
	if arm.Guard != nil {
		guards = append(guards, arm.Guard)
	}
	if len(guards) == 0 {
		return true, nil
	}

	frame := make(map[string]object.Object, len(bindings))
	for _, b := range bindings {
		frame[b.Name] = b.Value
	}
	e.pushFrame(frame)
	defer e.popFrame()

	for _, guard := range guards {
		val, err := e.evalExpression(guard)
		if err != nil {
			return false, err
		}
		if !object.IsTruthy(val) {
			return false, nil
		}
	}
	return true, nil
}
