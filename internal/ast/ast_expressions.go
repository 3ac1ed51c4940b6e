package ast

import "github.com/funvibe/polymodal/internal/token"

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()       {}
func (nl *NumberLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() token.Token { return nl.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }

// NoneLiteral is the unit value `none`.
type NoneLiteral struct {
	Token token.Token
}

func (n *NoneLiteral) expressionNode()       {}
func (n *NoneLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NoneLiteral) GetToken() token.Token { return n.Token }

// InfixExpression is a binary operation: left op right.
type InfixExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator BinaryOp
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// PrefixExpression is a unary operation: !x or -x.
type PrefixExpression struct {
	Token    token.Token
	Operator UnaryOp
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// AssignExpression rebinds an existing variable: name = value.
type AssignExpression struct {
	Token token.Token // The '=' token
	Name  *Identifier
	Value Expression
}

func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token { return ae.Token }

// CallExpression is callee(args). The callee is usually an Identifier;
// a MemberExpression callee calls a method on an actor or contract.
type CallExpression struct {
	Token     token.Token // The '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// CalleeName returns the called function's name when the callee is a
// plain identifier.
func (ce *CallExpression) CalleeName() (string, bool) {
	if ident, ok := ce.Function.(*Identifier); ok {
		return ident.Value, true
	}
	return "", false
}

// MemberExpression is left.member.
type MemberExpression struct {
	Token  token.Token // The '.' token
	Left   Expression
	Member *Identifier
}

func (me *MemberExpression) expressionNode()       {}
func (me *MemberExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MemberExpression) GetToken() token.Token { return me.Token }

// IndexExpression is left[index].
type IndexExpression struct {
	Token token.Token // The '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

type ListLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()       {}
func (ll *ListLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token { return ll.Token }

// MapPair is one `key: value` entry. Key is an Identifier (taken as its
// spelling) or a StringLiteral.
type MapPair struct {
	Key   Expression
	Value Expression
}

// MapLiteral keeps entries in source order.
type MapLiteral struct {
	Token token.Token // The '{' token
	Pairs []MapPair
}

func (ml *MapLiteral) expressionNode()       {}
func (ml *MapLiteral) TokenLiteral() string  { return ml.Token.Lexeme }
func (ml *MapLiteral) GetToken() token.Token { return ml.Token }

// MatchArm is `pattern [if guard] => body`.
type MatchArm struct {
	Pattern Pattern
	Guard   Expression // nil when absent
	Body    *BlockStatement
}

// MatchExpression is a match in expression position. It yields the value
// of the chosen arm's body.
type MatchExpression struct {
	Token   token.Token // The 'match' token
	Subject Expression
	Arms    []*MatchArm
}

func (me *MatchExpression) expressionNode()       {}
func (me *MatchExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MatchExpression) GetToken() token.Token { return me.Token }

// DestructureExpression binds the captures of Pattern against Value.
type DestructureExpression struct {
	Token   token.Token // The 'let' token
	Pattern Pattern
	Value   Expression
}

func (de *DestructureExpression) expressionNode()       {}
func (de *DestructureExpression) TokenLiteral() string  { return de.Token.Lexeme }
func (de *DestructureExpression) GetToken() token.Token { return de.Token }

type AsyncExpression struct {
	Token token.Token
	Body  Expression
}

func (ae *AsyncExpression) expressionNode()       {}
func (ae *AsyncExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AsyncExpression) GetToken() token.Token { return ae.Token }

type AwaitExpression struct {
	Token token.Token
	Value Expression
}

func (ae *AwaitExpression) expressionNode()       {}
func (ae *AwaitExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AwaitExpression) GetToken() token.Token { return ae.Token }

type YieldExpression struct {
	Token token.Token
	Value Expression // nil for a bare yield
}

func (ye *YieldExpression) expressionNode()       {}
func (ye *YieldExpression) TokenLiteral() string  { return ye.Token.Lexeme }
func (ye *YieldExpression) GetToken() token.Token { return ye.Token }

type GeneratorExpression struct {
	Token token.Token
	Body  *BlockStatement
}

func (ge *GeneratorExpression) expressionNode()       {}
func (ge *GeneratorExpression) TokenLiteral() string  { return ge.Token.Lexeme }
func (ge *GeneratorExpression) GetToken() token.Token { return ge.Token }

type CoroutineExpression struct {
	Token token.Token
	Body  *BlockStatement
}

func (ce *CoroutineExpression) expressionNode()       {}
func (ce *CoroutineExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CoroutineExpression) GetToken() token.Token { return ce.Token }

type SuspendExpression struct {
	Token token.Token
}

func (se *SuspendExpression) expressionNode()       {}
func (se *SuspendExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SuspendExpression) GetToken() token.Token { return se.Token }

type ResumeExpression struct {
	Token     token.Token
	Coroutine Expression
}

func (re *ResumeExpression) expressionNode()       {}
func (re *ResumeExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *ResumeExpression) GetToken() token.Token { return re.Token }
