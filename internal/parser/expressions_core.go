package parser

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/token"
)

// The precedence chain, loosest first:
// assignment → or → and → equality → comparison → term → factor → unary → call → primary.

func (p *Parser) parseExpression() ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.warn(p.curToken, "expression too complex: recursion depth limit exceeded")
		return nil
	}
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseOr()
	if left == nil || !p.peekTokenIs(token.ASSIGN) {
		return left
	}

	target, ok := left.(*ast.Identifier)
	if !ok {
		p.warn(p.peekToken, "invalid assignment target")
		return nil
	}
	p.nextToken()
	assign := &ast.AssignExpression{Token: p.curToken, Name: target}
	p.nextToken()
	p.skipNewlines()
	assign.Value = p.parseAssignment()
	if assign.Value == nil {
		return nil
	}
	return assign
}

// parseBinaryLevel parses one left-associative level of the chain.
func (p *Parser) parseBinaryLevel(next func() ast.Expression, ops map[token.TokenType]ast.BinaryOp) ast.Expression {
	left := next()
	if left == nil {
		return nil
	}

	for {
		op, ok := ops[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		expr := &ast.InfixExpression{Token: p.curToken, Left: left, Operator: op}
		p.nextToken()
		p.skipNewlines()
		expr.Right = next()
		if expr.Right == nil {
			return nil
		}
		left = expr
	}
}

var (
	orOps         = map[token.TokenType]ast.BinaryOp{token.OR: ast.OpOr}
	andOps        = map[token.TokenType]ast.BinaryOp{token.AND: ast.OpAnd}
	equalityOps   = map[token.TokenType]ast.BinaryOp{token.EQ: ast.OpEqual, token.NOT_EQ: ast.OpNotEqual}
	comparisonOps = map[token.TokenType]ast.BinaryOp{
		token.LT:  ast.OpLessThan,
		token.LTE: ast.OpLessEqual,
		token.GT:  ast.OpGreaterThan,
		token.GTE: ast.OpGreaterEqual,
	}
	termOps   = map[token.TokenType]ast.BinaryOp{token.PLUS: ast.OpAdd, token.MINUS: ast.OpSubtract}
	factorOps = map[token.TokenType]ast.BinaryOp{
		token.ASTERISK: ast.OpMultiply,
		token.SLASH:    ast.OpDivide,
		token.PERCENT:  ast.OpModulo,
	}
)

func (p *Parser) parseOr() ast.Expression         { return p.parseBinaryLevel(p.parseAnd, orOps) }
func (p *Parser) parseAnd() ast.Expression        { return p.parseBinaryLevel(p.parseEquality, andOps) }
func (p *Parser) parseEquality() ast.Expression   { return p.parseBinaryLevel(p.parseComparison, equalityOps) }
func (p *Parser) parseComparison() ast.Expression { return p.parseBinaryLevel(p.parseTerm, comparisonOps) }
func (p *Parser) parseTerm() ast.Expression       { return p.parseBinaryLevel(p.parseFactor, termOps) }
func (p *Parser) parseFactor() ast.Expression     { return p.parseBinaryLevel(p.parseUnary, factorOps) }

// parseUnary handles the prefix operators, which nest by recursion, and
// the prefix keywords await, resume and async.
func (p *Parser) parseUnary() ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.warn(p.curToken, "expression too complex: recursion depth limit exceeded")
		return nil
	}

	tok := p.curToken
	switch tok.Type {
	case token.BANG, token.MINUS:
		op := ast.OpNot
		if tok.Type == token.MINUS {
			op = ast.OpNegate
		}
		p.nextToken()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		return &ast.PrefixExpression{Token: tok, Operator: op, Right: right}
	case token.AWAIT:
		p.nextToken()
		value := p.parseUnary()
		if value == nil {
			return nil
		}
		return &ast.AwaitExpression{Token: tok, Value: value}
	case token.RESUME:
		p.nextToken()
		co := p.parseUnary()
		if co == nil {
			return nil
		}
		return &ast.ResumeExpression{Token: tok, Coroutine: co}
	case token.ASYNC:
		p.nextToken()
		body := p.parseUnary()
		if body == nil {
			return nil
		}
		return &ast.AsyncExpression{Token: tok, Body: body}
	}
	return p.parseCall()
}

// parseCall parses a primary followed by any number of calls, member
// accesses and index operations.
func (p *Parser) parseCall() ast.Expression {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for {
		switch p.peekToken.Type {
		case token.LPAREN:
			p.nextToken()
			call := &ast.CallExpression{Token: p.curToken, Function: expr}
			args, ok := p.parseExpressionList(token.RPAREN)
			if !ok {
				return nil
			}
			call.Arguments = args
			expr = call
		case token.DOT:
			p.nextToken()
			member := &ast.MemberExpression{Token: p.curToken, Left: expr}
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			member.Member = p.identifier()
			expr = member
		case token.LBRACKET:
			p.nextToken()
			index := &ast.IndexExpression{Token: p.curToken, Left: expr}
			p.nextToken()
			p.skipNewlines()
			index.Index = p.parseExpression()
			if index.Index == nil {
				return nil
			}
			p.skipPeekNewlines()
			if !p.expectPeek(token.RBRACKET) {
				return nil
			}
			expr = index
		default:
			return expr
		}
	}
}

// parseExpressionList parses comma-separated expressions up to end with
// curToken on the opening delimiter. A trailing comma is allowed.
func (p *Parser) parseExpressionList(end token.TokenType) ([]ast.Expression, bool) {
	list := []ast.Expression{}

	p.skipPeekNewlines()
	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	for {
		p.nextToken()
		p.skipNewlines()
		expr := p.parseExpression()
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)

		p.skipPeekNewlines()
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.skipPeekNewlines()
		if p.peekTokenIs(end) {
			break
		}
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}
