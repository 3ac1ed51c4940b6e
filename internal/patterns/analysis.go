package patterns

import (
	"errors"
	"fmt"
	"math"

	"github.com/funvibe/polymodal/internal/ast"
)

var (
	ErrOverlap       = errors.New("overlapping patterns")
	ErrNotExhaustive = errors.New("match is not exhaustive")
)

// PatternsOverlap reports whether some value could match both patterns.
// It is conservative: sequences overlap when any pair of elements does,
// so (1, 2) and (1, 3) overlap although no value matches both.
func PatternsOverlap(a, b ast.Pattern) bool {
	a, b = unwrap(a), unwrap(b)
	if ast.IsCatchAll(a) || ast.IsCatchAll(b) {
		return true
	}

	if or, ok := a.(*ast.OrPattern); ok {
		for _, alt := range or.Alternatives {
			if PatternsOverlap(alt, b) {
				return true
			}
		}
		return false
	}
	if or, ok := b.(*ast.OrPattern); ok {
		return PatternsOverlap(or, a)
	}

	switch pa := a.(type) {
	case *ast.NumberPattern:
		pb, ok := b.(*ast.NumberPattern)
		return ok && math.Abs(pa.Value-pb.Value) < Epsilon
	case *ast.StringPattern:
		pb, ok := b.(*ast.StringPattern)
		return ok && pa.Value == pb.Value
	case *ast.BooleanPattern:
		pb, ok := b.(*ast.BooleanPattern)
		return ok && pa.Value == pb.Value
	case *ast.TuplePattern:
		pb, ok := b.(*ast.TuplePattern)
		return ok && anyElementOverlaps(pa.Elements, pb.Elements)
	case *ast.ListPattern:
		pb, ok := b.(*ast.ListPattern)
		return ok && anyElementOverlaps(pa.Elements, pb.Elements)
	case *ast.StructPattern:
		pb, ok := b.(*ast.StructPattern)
		if !ok || pa.Name != pb.Name {
			return false
		}
		for _, fa := range pa.Fields {
			for _, fb := range pb.Fields {
				if fa.Name == fb.Name && !PatternsOverlap(fa.Pattern, fb.Pattern) {
					return false
				}
			}
		}
		return true
	}
	return false
}

// unwrap strips binding and guard wrappers.
func unwrap(p ast.Pattern) ast.Pattern {
	for {
		switch w := p.(type) {
		case *ast.BindingPattern:
			p = w.Pattern
		case *ast.GuardPattern:
			p = w.Pattern
		default:
			return p
		}
	}
}

func anyElementOverlaps(a, b []ast.Pattern) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	for i := range a {
		if PatternsOverlap(a[i], b[i]) {
			return true
		}
	}
	return false
}

// CheckOverlap compares every pair of arms. A later arm whose pattern is a
// catch-all is the usual default case and is not compared.
func CheckOverlap(arms []*ast.MatchArm) error {
	for i := 0; i < len(arms); i++ {
		for j := i + 1; j < len(arms); j++ {
			if ast.IsCatchAll(unwrap(arms[j].Pattern)) {
				continue
			}
			if PatternsOverlap(arms[i].Pattern, arms[j].Pattern) {
				return fmt.Errorf("%w: arms %d and %d", ErrOverlap, i+1, j+1)
			}
		}
	}
	return nil
}

// CheckExhaustive only confirms that some unguarded arm is a catch-all;
// coverage by type is not analyzed.
func CheckExhaustive(arms []*ast.MatchArm) error {
	for _, arm := range arms {
		if arm.Guard != nil {
			continue
		}
		if _, guarded := arm.Pattern.(*ast.GuardPattern); guarded {
			continue
		}
		if ast.IsCatchAll(unwrap(arm.Pattern)) {
			return nil
		}
	}
	return fmt.Errorf("%w: add a `_` arm", ErrNotExhaustive)
}
