package parser

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/token"
)

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.curToken

	switch tok.Type {
	case token.NUMBER:
		return &ast.NumberLiteral{Token: tok, Value: tok.Literal.(float64)}
	case token.STRING:
		return &ast.StringLiteral{Token: tok, Value: tok.Literal.(string)}
	case token.TRUE, token.FALSE:
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}
	case token.NONE:
		return &ast.NoneLiteral{Token: tok}
	case token.IDENT:
		return p.identifier()
	case token.LPAREN:
		p.nextToken()
		p.skipNewlines()
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		p.skipPeekNewlines()
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return expr
	case token.LBRACKET:
		elements, ok := p.parseExpressionList(token.RBRACKET)
		if !ok {
			return nil
		}
		return &ast.ListLiteral{Token: tok, Elements: elements}
	case token.LBRACE:
		return p.parseMapLiteral()
	case token.MATCH:
		tok, subject, arms := p.parseMatch()
		if arms == nil {
			return nil
		}
		return &ast.MatchExpression{Token: tok, Subject: subject, Arms: arms}
	case token.YIELD:
		expr := &ast.YieldExpression{Token: tok}
		if p.atValueEnd() {
			return expr
		}
		p.nextToken()
		expr.Value = p.parseExpression()
		if expr.Value == nil {
			return nil
		}
		return expr
	case token.GENERATOR:
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		return &ast.GeneratorExpression{Token: tok, Body: p.parseBlock()}
	case token.COROUTINE:
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		return &ast.CoroutineExpression{Token: tok, Body: p.parseBlock()}
	case token.SUSPEND:
		return &ast.SuspendExpression{Token: tok}
	}

	p.warn(tok, "unexpected %s", describeToken(tok))
	return nil
}

// parseMapLiteral parses `{ key: value, ... }`. Keys are identifiers
// (taken literally) or strings.
func (p *Parser) parseMapLiteral() ast.Expression {
	lit := &ast.MapLiteral{Token: p.curToken}

	p.skipPeekNewlines()
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return lit
	}

	for {
		p.nextToken()
		p.skipNewlines()

		var key ast.Expression
		switch p.curToken.Type {
		case token.IDENT:
			key = p.identifier()
		case token.STRING:
			key = &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal.(string)}
		default:
			p.warn(p.curToken, "map key must be an identifier or string, got %s", describeToken(p.curToken))
			return nil
		}

		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		p.skipNewlines()
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		lit.Pairs = append(lit.Pairs, ast.MapPair{Key: key, Value: value})

		p.skipPeekNewlines()
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.skipPeekNewlines()
		if p.peekTokenIs(token.RBRACE) {
			break
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return lit
}
