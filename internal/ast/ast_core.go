package ast

import "github.com/funvibe/polymodal/internal/token"

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Pattern is a Node that appears on the left of a match arm or in a
// destructuring binding.
type Pattern interface {
	Node
	patternNode()
}

// ExecutionMode comes from the mandatory source header.
type ExecutionMode int

const (
	ModeUnknown ExecutionMode = iota
	ModeCompiled
	ModeInterpreted
)

func (m ExecutionMode) String() string {
	switch m {
	case ModeCompiled:
		return "Compiled"
	case ModeInterpreted:
		return "Interpreted"
	default:
		return "Unknown"
	}
}

// Program is the root node of every AST the parser produces.
type Program struct {
	File       string
	Mode       ExecutionMode
	Target     string // From [target name]; empty when absent
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if p == nil || len(p.Statements) == 0 {
		return token.Token{}
	}
	return p.Statements[0].GetToken()
}

// Parameter is a function parameter with an optional annotation.
type Parameter struct {
	Token          token.Token
	Name           *Identifier
	TypeAnnotation string
}

// BinaryOp is the closed set of infix operators.
type BinaryOp string

const (
	OpAdd          BinaryOp = "+"
	OpSubtract     BinaryOp = "-"
	OpMultiply     BinaryOp = "*"
	OpDivide       BinaryOp = "/"
	OpModulo       BinaryOp = "%"
	OpEqual        BinaryOp = "=="
	OpNotEqual     BinaryOp = "!="
	OpLessThan     BinaryOp = "<"
	OpLessEqual    BinaryOp = "<="
	OpGreaterThan  BinaryOp = ">"
	OpGreaterEqual BinaryOp = ">="
	OpAnd          BinaryOp = "&&"
	OpOr           BinaryOp = "||"
)

func (op BinaryOp) IsArithmetic() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpModulo:
		return true
	}
	return false
}

func (op BinaryOp) IsEquality() bool { return op == OpEqual || op == OpNotEqual }

func (op BinaryOp) IsOrdering() bool {
	switch op {
	case OpLessThan, OpLessEqual, OpGreaterThan, OpGreaterEqual:
		return true
	}
	return false
}

func (op BinaryOp) IsLogical() bool { return op == OpAnd || op == OpOr }

// UnaryOp is the closed set of prefix operators.
type UnaryOp string

const (
	OpNot    UnaryOp = "!"
	OpNegate UnaryOp = "-"
)
