package parser

import (
	"fmt"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/diagnostics"
	"github.com/funvibe/polymodal/internal/token"
)

// MaxRecursionDepth bounds expression and pattern nesting.
const MaxRecursionDepth = 500

// Parser is a recursive-descent parser. Every parse function starts with
// curToken on the first token of its production and leaves curToken on
// the last one.
type Parser struct {
	tokens []token.Token
	pos    int // index of the token after peekToken

	curToken  token.Token
	peekToken token.Token

	depth int
	diags []*diagnostics.Diagnostic
	seen  map[string]bool
}

func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens, seen: make(map[string]bool)}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse is a convenience wrapper around New(tokens).ParseProgram().
func Parse(tokens []token.Token) *ast.Program {
	return New(tokens).ParseProgram()
}

// Diagnostics returns the recovery warnings recorded while parsing.
func (p *Parser) Diagnostics() []*diagnostics.Diagnostic {
	return p.diags
}

func (p *Parser) eofToken() token.Token {
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		return token.Token{Type: token.EOF, Line: last.Line, Column: last.Column}
	}
	return token.Token{Type: token.EOF, Line: 1, Column: 1}
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = p.eofToken()
	}
	if p.curToken.Type == "" {
		p.curToken = p.eofToken()
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances when the next token has type t and records a
// warning otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.warn(p.peekToken, "expected %s, got %s", describe(t), describeToken(p.peekToken))
}

// warn records a recovery diagnostic. Only the first one per position is
// kept so a single bad token does not cascade.
func (p *Parser) warn(tok token.Token, format string, args ...interface{}) {
	key := fmt.Sprintf("%d:%d", tok.Line, tok.Column)
	if p.seen[key] {
		return
	}
	p.seen[key] = true
	p.diags = append(p.diags, diagnostics.NewWarning(diagnostics.ErrP001, tok, fmt.Sprintf(format, args...)))
}

// peekSkippingNewlines returns the first token after curToken that is not
// a newline, without consuming anything.
func (p *Parser) peekSkippingNewlines() token.Token {
	if !p.peekTokenIs(token.NEWLINE) {
		return p.peekToken
	}
	for i := p.pos; i < len(p.tokens); i++ {
		if p.tokens[i].Type != token.NEWLINE {
			return p.tokens[i]
		}
	}
	return p.eofToken()
}

func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) skipPeekNewlines() {
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) isSeparator() bool {
	return p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON)
}

// ParseProgram never fails: a statement that cannot be parsed is dropped
// by skipping one token and retrying.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Mode: ast.ModeUnknown}

	switch p.curToken.Type {
	case token.COMPILED:
		program.Mode = ast.ModeCompiled
		p.nextToken()
	case token.INTERPRETED:
		program.Mode = ast.ModeInterpreted
		p.nextToken()
	}
	p.skipNewlines()
	if p.curTokenIs(token.TARGET) {
		if p.expectPeek(token.IDENT) {
			program.Target = p.curToken.Literal.(string)
		}
		p.nextToken()
	}

	for !p.curTokenIs(token.EOF) {
		if p.isSeparator() {
			p.nextToken()
			continue
		}
		stmt := p.parseDeclaration()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

func describe(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.NUMBER:
		return "number"
	case token.STRING:
		return "string"
	case token.NEWLINE:
		return "newline"
	case token.EOF:
		return "end of input"
	}
	if token.IsKeyword(t) {
		return fmt.Sprintf("'%s'", lowerKeyword(t))
	}
	return fmt.Sprintf("'%s'", string(t))
}

func describeToken(tok token.Token) string {
	switch tok.Type {
	case token.NEWLINE, token.EOF:
		return describe(tok.Type)
	}
	return fmt.Sprintf("'%s'", tok.Lexeme)
}

func lowerKeyword(t token.TokenType) string {
	b := []byte(t)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
