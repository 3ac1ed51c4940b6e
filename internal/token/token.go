package token

import "fmt"

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string      // Exact source text of the token
	Literal interface{} // float64 for NUMBER, unescaped string for STRING, bool for TRUE/FALSE
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

const (
	EOF     = "EOF"
	NEWLINE = "NEWLINE"

	// Headers
	COMPILED    = "COMPILED"
	INTERPRETED = "INTERPRETED"
	TARGET      = "TARGET"

	// Identifiers and literals
	IDENT  = "IDENT"
	NUMBER = "NUMBER"
	STRING = "STRING"

	// Operators
	ASSIGN    = "="
	PLUS      = "+"
	MINUS     = "-"
	ASTERISK  = "*"
	SLASH     = "/"
	PERCENT   = "%"
	BANG      = "!"
	EQ        = "=="
	NOT_EQ    = "!="
	LT        = "<"
	LTE       = "<="
	GT        = ">"
	GTE       = ">="
	AND       = "&&"
	OR        = "||"
	ARROW     = "->"
	FAT_ARROW = "=>"
	AMPERSAND = "&"
	PIPE      = "|"
	AT        = "@"
	QUESTION  = "?"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	DOT       = "."
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	LBRACKET  = "["
	RBRACKET  = "]"

	// Keywords
	LET        = "LET"
	CONST      = "CONST"
	FN         = "FN"
	IF         = "IF"
	ELSE       = "ELSE"
	ELIF       = "ELIF"
	WHILE      = "WHILE"
	FOR        = "FOR"
	RETURN     = "RETURN"
	IMPORT     = "IMPORT"
	MODULE     = "MODULE"
	ACTOR      = "ACTOR"
	CONTRACT   = "CONTRACT"
	COMPONENT  = "COMPONENT"
	FLOW       = "FLOW"
	DEPLOYMENT = "DEPLOYMENT"
	CLUSTER    = "CLUSTER"
	STATE      = "STATE"
	SIGNAL     = "SIGNAL"
	VIEW       = "VIEW"
	EXPORT     = "EXPORT"
	ASYNC      = "ASYNC"
	AWAIT      = "AWAIT"
	SPAWN      = "SPAWN"
	MATCH      = "MATCH"
	MOVE       = "MOVE"
	BORROW     = "BORROW"
	DEFER      = "DEFER"
	REQUIRE    = "REQUIRE"
	SEND       = "SEND"
	PRINT      = "PRINT"
	TRUE       = "TRUE"
	FALSE      = "FALSE"
	NONE       = "NONE"
	YIELD      = "YIELD"
	GENERATOR  = "GENERATOR"
	COROUTINE  = "COROUTINE"
	SUSPEND    = "SUSPEND"
	RESUME     = "RESUME"
	PARALLEL   = "PARALLEL"
)

// Spellings such as "in", "self", "map" and "as" are deliberately absent:
// they stay identifiers so loop, receiver and type syntax remain uniform.
var keywords = map[string]TokenType{
	"let":        LET,
	"const":      CONST,
	"fn":         FN,
	"if":         IF,
	"else":       ELSE,
	"elif":       ELIF,
	"while":      WHILE,
	"for":        FOR,
	"return":     RETURN,
	"import":     IMPORT,
	"module":     MODULE,
	"actor":      ACTOR,
	"contract":   CONTRACT,
	"component":  COMPONENT,
	"flow":       FLOW,
	"deployment": DEPLOYMENT,
	"cluster":    CLUSTER,
	"state":      STATE,
	"signal":     SIGNAL,
	"view":       VIEW,
	"export":     EXPORT,
	"async":      ASYNC,
	"await":      AWAIT,
	"spawn":      SPAWN,
	"match":      MATCH,
	"move":       MOVE,
	"borrow":     BORROW,
	"defer":      DEFER,
	"require":    REQUIRE,
	"send":       SEND,
	"print":      PRINT,
	"true":       TRUE,
	"false":      FALSE,
	"none":       NONE,
	"yield":      YIELD,
	"generator":  GENERATOR,
	"coroutine":  COROUTINE,
	"suspend":    SUSPEND,
	"resume":     RESUME,
	"parallel":   PARALLEL,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether t is one of the reserved word types.
func IsKeyword(t TokenType) bool {
	for _, kw := range keywords {
		if kw == t {
			return true
		}
	}
	return false
}
