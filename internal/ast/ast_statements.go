package ast

import "github.com/funvibe/polymodal/internal/token"

// LetStatement is `let name[: type] = value`.
type LetStatement struct {
	Token          token.Token
	Name           *Identifier
	TypeAnnotation string // Canonical annotation text, empty when absent
	Value          Expression
}

func (ls *LetStatement) statementNode()        {}
func (ls *LetStatement) TokenLiteral() string  { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token { return ls.Token }

// ConstStatement is `const name[: type] = value`.
type ConstStatement struct {
	Token          token.Token
	Name           *Identifier
	TypeAnnotation string
	Value          Expression
}

func (cs *ConstStatement) statementNode()        {}
func (cs *ConstStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ConstStatement) GetToken() token.Token { return cs.Token }

type ExpressionStatement struct {
	Token      token.Token // The first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

type PrintStatement struct {
	Token token.Token
	Value Expression
}

func (ps *PrintStatement) statementNode()        {}
func (ps *PrintStatement) TokenLiteral() string  { return ps.Token.Lexeme }
func (ps *PrintStatement) GetToken() token.Token { return ps.Token }

type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a bare return
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// IfStatement covers if/elif/else. An elif chain is stored as a nested
// IfStatement, the only statement of Alternative.
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement // nil when there is no else branch
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }

type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }

// ForStatement is `for variable in iterable body`.
type ForStatement struct {
	Token    token.Token
	Variable *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (fs *ForStatement) statementNode()        {}
func (fs *ForStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token { return fs.Token }

// BlockStatement is a brace body, or a single statement written without
// braces.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }

type FunctionKind int

const (
	FunctionPlain FunctionKind = iota
	FunctionAsync
	FunctionCoroutine
)

func (k FunctionKind) String() string {
	switch k {
	case FunctionAsync:
		return "async fn"
	case FunctionCoroutine:
		return "coroutine fn"
	default:
		return "fn"
	}
}

// FunctionStatement declares a named function. Kind distinguishes
// `fn`, `async fn` and `coroutine fn`.
type FunctionStatement struct {
	Token      token.Token
	Kind       FunctionKind
	Name       *Identifier
	Parameters []*Parameter
	ReturnType string // empty when not annotated
	Body       *BlockStatement
}

func (fs *FunctionStatement) statementNode()        {}
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token { return fs.Token }

// ImportStatement is `import module [as alias]`.
type ImportStatement struct {
	Token  token.Token
	Module string
	Alias  string
}

func (is *ImportStatement) statementNode()        {}
func (is *ImportStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *ImportStatement) GetToken() token.Token { return is.Token }

// BindingName is the name the import introduces.
func (is *ImportStatement) BindingName() string {
	if is.Alias != "" {
		return is.Alias
	}
	return is.Module
}

type ModuleStatement struct {
	Token token.Token
	Name  string
}

func (ms *ModuleStatement) statementNode()        {}
func (ms *ModuleStatement) TokenLiteral() string  { return ms.Token.Lexeme }
func (ms *ModuleStatement) GetToken() token.Token { return ms.Token }

// StateField is a `state let name[: type] = value` entry of an actor or
// contract.
type StateField struct {
	Token          token.Token
	Name           *Identifier
	TypeAnnotation string
	Value          Expression
}

// ContainerBody holds the fields and methods shared by actors and contracts.
type ContainerBody struct {
	Name    *Identifier
	Fields  []*StateField
	Methods []*FunctionStatement
}

type ActorStatement struct {
	Token token.Token
	ContainerBody
}

func (as *ActorStatement) statementNode()        {}
func (as *ActorStatement) TokenLiteral() string  { return as.Token.Lexeme }
func (as *ActorStatement) GetToken() token.Token { return as.Token }

type ContractStatement struct {
	Token token.Token
	ContainerBody
}

func (cs *ContractStatement) statementNode()        {}
func (cs *ContractStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ContractStatement) GetToken() token.Token { return cs.Token }

// Section is the name and body shared by component, flow, deployment
// and cluster declarations.
type Section struct {
	Name string
	Body []Statement
}

type ComponentStatement struct {
	Token token.Token
	Section
}

func (cs *ComponentStatement) statementNode()        {}
func (cs *ComponentStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ComponentStatement) GetToken() token.Token { return cs.Token }

type FlowStatement struct {
	Token token.Token
	Section
}

func (fs *FlowStatement) statementNode()        {}
func (fs *FlowStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *FlowStatement) GetToken() token.Token { return fs.Token }

type DeploymentStatement struct {
	Token token.Token
	Section
}

func (ds *DeploymentStatement) statementNode()        {}
func (ds *DeploymentStatement) TokenLiteral() string  { return ds.Token.Lexeme }
func (ds *DeploymentStatement) GetToken() token.Token { return ds.Token }

type ClusterStatement struct {
	Token token.Token
	Section
}

func (cs *ClusterStatement) statementNode()        {}
func (cs *ClusterStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ClusterStatement) GetToken() token.Token { return cs.Token }

// ParallelForStatement is `parallel for variable in iterable body`.
type ParallelForStatement struct {
	Token    token.Token
	Variable *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (ps *ParallelForStatement) statementNode()        {}
func (ps *ParallelForStatement) TokenLiteral() string  { return ps.Token.Lexeme }
func (ps *ParallelForStatement) GetToken() token.Token { return ps.Token }

// ParallelMapStatement is `parallel map variable in iterable body`; it
// yields the list of body values.
type ParallelMapStatement struct {
	Token    token.Token
	Variable *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (ps *ParallelMapStatement) statementNode()        {}
func (ps *ParallelMapStatement) TokenLiteral() string  { return ps.Token.Lexeme }
func (ps *ParallelMapStatement) GetToken() token.Token { return ps.Token }

// MatchStatement is a match in statement position. Unlike MatchExpression
// it is checked for overlap and exhaustiveness before running.
type MatchStatement struct {
	Token   token.Token
	Subject Expression
	Arms    []*MatchArm
}

func (ms *MatchStatement) statementNode()        {}
func (ms *MatchStatement) TokenLiteral() string  { return ms.Token.Lexeme }
func (ms *MatchStatement) GetToken() token.Token { return ms.Token }
