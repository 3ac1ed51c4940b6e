package parser

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/token"
)

// parseIfStatement parses if/elif/else. Each elif becomes an IfStatement
// nested alone inside the previous Alternative, so the chain leans right.
func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression()
	if stmt.Condition == nil {
		return nil
	}

	stmt.Consequence = p.parseBody()
	if stmt.Consequence == nil {
		return nil
	}

	next := p.peekSkippingNewlines()
	switch next.Type {
	case token.ELIF:
		p.skipPeekNewlines()
		p.nextToken()
		nested := p.parseIfStatement()
		if nested == nil {
			return nil
		}
		stmt.Alternative = &ast.BlockStatement{Token: next, Statements: []ast.Statement{nested}}
	case token.ELSE:
		p.skipPeekNewlines()
		p.nextToken()
		stmt.Alternative = p.parseBody()
		if stmt.Alternative == nil {
			return nil
		}
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression()
	if stmt.Condition == nil {
		return nil
	}

	stmt.Body = p.parseBody()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseLoopHeader parses `variable in iterable` with curToken on the
// keyword before the variable.
func (p *Parser) parseLoopHeader() (*ast.Identifier, ast.Expression, bool) {
	if !p.expectPeek(token.IDENT) {
		return nil, nil, false
	}
	variable := p.identifier()

	if !p.peekTokenIs(token.IDENT) || p.peekToken.Lexeme != "in" {
		p.warn(p.peekToken, "expected 'in', got %s", describeToken(p.peekToken))
		return nil, nil, false
	}
	p.nextToken()
	p.nextToken()

	iterable := p.parseExpression()
	if iterable == nil {
		return nil, nil, false
	}
	return variable, iterable, true
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}

	variable, iterable, ok := p.parseLoopHeader()
	if !ok {
		return nil
	}
	stmt.Variable = variable
	stmt.Iterable = iterable

	stmt.Body = p.parseBody()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseParallelStatement parses `parallel for x in xs body` and
// `parallel map x in xs body`.
func (p *Parser) parseParallelStatement() ast.Statement {
	tok := p.curToken

	switch {
	case p.peekTokenIs(token.FOR):
		p.nextToken()
		variable, iterable, ok := p.parseLoopHeader()
		if !ok {
			return nil
		}
		body := p.parseBody()
		if body == nil {
			return nil
		}
		return &ast.ParallelForStatement{Token: tok, Variable: variable, Iterable: iterable, Body: body}

	case p.peekTokenIs(token.IDENT) && p.peekToken.Lexeme == "map":
		p.nextToken()
		variable, iterable, ok := p.parseLoopHeader()
		if !ok {
			return nil
		}
		body := p.parseBody()
		if body == nil {
			return nil
		}
		return &ast.ParallelMapStatement{Token: tok, Variable: variable, Iterable: iterable, Body: body}
	}

	p.warn(p.peekToken, "expected 'for' or 'map' after 'parallel', got %s", describeToken(p.peekToken))
	return nil
}

// parseMatch parses `match subject { arms }`. It returns nil arms on failure.
func (p *Parser) parseMatch() (token.Token, ast.Expression, []*ast.MatchArm) {
	tok := p.curToken

	p.nextToken()
	subject := p.parseExpression()
	if subject == nil {
		return tok, nil, nil
	}

	p.skipPeekNewlines()
	if !p.expectPeek(token.LBRACE) {
		return tok, nil, nil
	}
	p.nextToken()

	arms := []*ast.MatchArm{}
	for !p.curTokenIs(token.RBRACE) {
		switch p.curToken.Type {
		case token.EOF:
			p.warn(p.curToken, "unterminated match: expected '}'")
			return tok, nil, nil
		case token.NEWLINE, token.COMMA, token.SEMICOLON:
			p.nextToken()
			continue
		}

		arm := p.parseMatchArm()
		if arm == nil {
			return tok, nil, nil
		}
		arms = append(arms, arm)
		p.nextToken()
	}

	return tok, subject, arms
}

// parseMatchArm parses `pattern [if guard] => body`.
func (p *Parser) parseMatchArm() *ast.MatchArm {
	arm := &ast.MatchArm{}

	arm.Pattern = p.parsePattern()
	if arm.Pattern == nil {
		return nil
	}

	if p.peekTokenIs(token.IF) {
		p.nextToken()
		p.nextToken()
		arm.Guard = p.parseExpression()
		if arm.Guard == nil {
			return nil
		}
	}

	if !p.expectPeek(token.FAT_ARROW) {
		return nil
	}

	arm.Body = p.parseBody()
	if arm.Body == nil {
		return nil
	}
	return arm
}
