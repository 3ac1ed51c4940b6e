package parser

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/token"
)

// parseDeclaration dispatches on the current token between declarations
// and plain statements.
func (p *Parser) parseDeclaration() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.CONST:
		return p.parseConstStatement()
	case token.FN:
		return p.parseFunctionStatement(ast.FunctionPlain, p.curToken)
	case token.ASYNC:
		if p.peekTokenIs(token.FN) {
			tok := p.curToken
			p.nextToken()
			return p.parseFunctionStatement(ast.FunctionAsync, tok)
		}
	case token.COROUTINE:
		if p.peekTokenIs(token.FN) {
			tok := p.curToken
			p.nextToken()
			return p.parseFunctionStatement(ast.FunctionCoroutine, tok)
		}
	case token.MODULE:
		return p.parseModuleStatement()
	case token.IMPORT:
		return p.parseImportStatement()
	case token.ACTOR:
		if body := p.parseContainerBody(); body != nil {
			return &ast.ActorStatement{Token: body.tok, ContainerBody: body.ContainerBody}
		}
		return nil
	case token.CONTRACT:
		if body := p.parseContainerBody(); body != nil {
			return &ast.ContractStatement{Token: body.tok, ContainerBody: body.ContainerBody}
		}
		return nil
	case token.COMPONENT:
		return p.parseComponentStatement()
	case token.FLOW:
		return p.parseFlowStatement()
	case token.DEPLOYMENT:
		if section, tok := p.parseNamedSection(); section != nil {
			return &ast.DeploymentStatement{Token: tok, Section: *section}
		}
		return nil
	case token.CLUSTER:
		if section, tok := p.parseNamedSection(); section != nil {
			return &ast.ClusterStatement{Token: tok, Section: *section}
		}
		return nil
	}
	return p.parseStatement()
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.PRINT:
		return p.parsePrintStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.PARALLEL:
		return p.parseParallelStatement()
	case token.MATCH:
		tok, subject, arms := p.parseMatch()
		if arms == nil {
			return nil
		}
		return &ast.MatchStatement{Token: tok, Subject: subject, Arms: arms}
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression()
	if stmt.Expression == nil {
		return nil
	}
	return stmt
}

// parseLetStatement parses `let name[: type] = value` or a destructuring
// `let (a, b) = value`.
func (p *Parser) parseLetStatement() ast.Statement {
	letTok := p.curToken

	if p.peekTokenIs(token.LPAREN) || p.peekTokenIs(token.LBRACKET) {
		p.nextToken()
		pattern := p.parsePattern()
		if pattern == nil || !p.expectPeek(token.ASSIGN) {
			return nil
		}
		value := p.parseAssignedValue()
		if value == nil {
			return nil
		}
		return &ast.ExpressionStatement{
			Token:      letTok,
			Expression: &ast.DestructureExpression{Token: letTok, Pattern: pattern, Value: value},
		}
	}

	name, annotation, value, ok := p.parseBinding()
	if !ok {
		return nil
	}
	return &ast.LetStatement{Token: letTok, Name: name, TypeAnnotation: annotation, Value: value}
}

func (p *Parser) parseConstStatement() ast.Statement {
	constTok := p.curToken
	name, annotation, value, ok := p.parseBinding()
	if !ok {
		return nil
	}
	return &ast.ConstStatement{Token: constTok, Name: name, TypeAnnotation: annotation, Value: value}
}

// parseBinding parses `name[: type] = value` after a let/const keyword.
func (p *Parser) parseBinding() (*ast.Identifier, string, ast.Expression, bool) {
	if !p.expectPeek(token.IDENT) {
		return nil, "", nil, false
	}
	name := p.identifier()

	annotation := ""
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		annotation = p.parseTypeAnnotation()
		if annotation == "" {
			return nil, "", nil, false
		}
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil, "", nil, false
	}
	value := p.parseAssignedValue()
	if value == nil {
		return nil, "", nil, false
	}
	return name, annotation, value, true
}

// parseAssignedValue parses the expression after '='. A line break right
// after '=' is allowed.
func (p *Parser) parseAssignedValue() ast.Expression {
	p.nextToken()
	p.skipNewlines()
	return p.parseExpression()
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken}
	p.nextToken()
	stmt.Value = p.parseExpression()
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.atValueEnd() {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression()
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

// atValueEnd reports whether the next token ends an optional value, as
// after a bare `return` or `yield`.
func (p *Parser) atValueEnd() bool {
	switch p.peekToken.Type {
	case token.NEWLINE, token.SEMICOLON, token.RBRACE, token.RPAREN, token.RBRACKET, token.COMMA, token.EOF:
		return true
	}
	return false
}

// parseBlock parses a brace-delimited statement list, or a single
// statement wrapped in a block when there is no opening brace.
func (p *Parser) parseBlock() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}

	if !p.curTokenIs(token.LBRACE) {
		stmt := p.parseDeclaration()
		if stmt == nil {
			return nil
		}
		block.Statements = []ast.Statement{stmt}
		return block
	}

	block.Statements = p.parseBraceBody()
	return block
}

// parseBraceBody parses statements from '{' up to the matching '}'.
func (p *Parser) parseBraceBody() []ast.Statement {
	statements := []ast.Statement{}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.isSeparator() {
			p.nextToken()
			continue
		}
		if stmt := p.parseDeclaration(); stmt != nil {
			statements = append(statements, stmt)
			p.nextToken()
			continue
		}
		if !p.curTokenIs(token.RBRACE) {
			p.nextToken()
		}
	}

	if p.curTokenIs(token.EOF) {
		p.warn(p.curToken, "unterminated block: expected '}'")
	}
	return statements
}

// parseBody moves past the current token to a block body, allowing the
// body to start on the next line.
func (p *Parser) parseBody() *ast.BlockStatement {
	p.nextToken()
	p.skipNewlines()
	return p.parseBlock()
}

func (p *Parser) identifier() *ast.Identifier {
	name, _ := p.curToken.Literal.(string)
	if name == "" {
		name = p.curToken.Lexeme
	}
	return &ast.Identifier{Token: p.curToken, Value: name}
}
