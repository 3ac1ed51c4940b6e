package ast

import "github.com/funvibe/polymodal/internal/token"

// WildcardPattern is `_`.
type WildcardPattern struct {
	Token token.Token
}

func (wp *WildcardPattern) patternNode()          {}
func (wp *WildcardPattern) TokenLiteral() string  { return wp.Token.Lexeme }
func (wp *WildcardPattern) GetToken() token.Token { return wp.Token }

// IdentifierPattern matches anything and binds it to Name.
type IdentifierPattern struct {
	Token token.Token
	Name  string
}

func (ip *IdentifierPattern) patternNode()          {}
func (ip *IdentifierPattern) TokenLiteral() string  { return ip.Token.Lexeme }
func (ip *IdentifierPattern) GetToken() token.Token { return ip.Token }

type NumberPattern struct {
	Token token.Token
	Value float64
}

func (np *NumberPattern) patternNode()          {}
func (np *NumberPattern) TokenLiteral() string  { return np.Token.Lexeme }
func (np *NumberPattern) GetToken() token.Token { return np.Token }

type StringPattern struct {
	Token token.Token
	Value string
}

func (sp *StringPattern) patternNode()          {}
func (sp *StringPattern) TokenLiteral() string  { return sp.Token.Lexeme }
func (sp *StringPattern) GetToken() token.Token { return sp.Token }

type BooleanPattern struct {
	Token token.Token
	Value bool
}

func (bp *BooleanPattern) patternNode()          {}
func (bp *BooleanPattern) TokenLiteral() string  { return bp.Token.Lexeme }
func (bp *BooleanPattern) GetToken() token.Token { return bp.Token }

// TuplePattern is `(p, q, ...)`; it matches list values of equal length.
type TuplePattern struct {
	Token    token.Token
	Elements []Pattern
}

func (tp *TuplePattern) patternNode()          {}
func (tp *TuplePattern) TokenLiteral() string  { return tp.Token.Lexeme }
func (tp *TuplePattern) GetToken() token.Token { return tp.Token }

// ListPattern is `[p, q, ...]`.
type ListPattern struct {
	Token    token.Token
	Elements []Pattern
}

func (lp *ListPattern) patternNode()          {}
func (lp *ListPattern) TokenLiteral() string  { return lp.Token.Lexeme }
func (lp *ListPattern) GetToken() token.Token { return lp.Token }

// FieldPattern is one `field: pattern` entry of a StructPattern.
type FieldPattern struct {
	Name    string
	Pattern Pattern
}

// StructPattern is `Name { field: p, ... }`, matched against map values.
type StructPattern struct {
	Token  token.Token
	Name   string
	Fields []*FieldPattern
}

func (sp *StructPattern) patternNode()          {}
func (sp *StructPattern) TokenLiteral() string  { return sp.Token.Lexeme }
func (sp *StructPattern) GetToken() token.Token { return sp.Token }

// BindingPattern is `name @ pattern`.
type BindingPattern struct {
	Token   token.Token
	Name    string
	Pattern Pattern
}

func (bp *BindingPattern) patternNode()          {}
func (bp *BindingPattern) TokenLiteral() string  { return bp.Token.Lexeme }
func (bp *BindingPattern) GetToken() token.Token { return bp.Token }

// OrPattern is `p | q | ...`.
type OrPattern struct {
	Token        token.Token
	Alternatives []Pattern
}

func (op *OrPattern) patternNode()          {}
func (op *OrPattern) TokenLiteral() string  { return op.Token.Lexeme }
func (op *OrPattern) GetToken() token.Token { return op.Token }

// GuardPattern wraps a pattern with a condition. The matcher only looks at
// the inner pattern; whoever evaluates expressions checks Condition.
type GuardPattern struct {
	Token     token.Token
	Pattern   Pattern
	Condition Expression
}

func (gp *GuardPattern) patternNode()          {}
func (gp *GuardPattern) TokenLiteral() string  { return gp.Token.Lexeme }
func (gp *GuardPattern) GetToken() token.Token { return gp.Token }

// IsCatchAll reports whether p matches every value: `_` or a bare name.
func IsCatchAll(p Pattern) bool {
	switch p.(type) {
	case *WildcardPattern, *IdentifierPattern:
		return true
	}
	return false
}
