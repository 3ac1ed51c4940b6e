package parser

import (
	"strings"

	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/token"
)

// parseFunctionStatement parses `fn name(params) [-> type] body`. tok is the
// first token of the declaration; curToken is on 'fn'.
func (p *Parser) parseFunctionStatement(kind ast.FunctionKind, tok token.Token) *ast.FunctionStatement {
	fn := &ast.FunctionStatement{Token: tok, Kind: kind}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn.Name = p.identifier()

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseParameters()
	if !ok {
		return nil
	}
	fn.Parameters = params

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		fn.ReturnType = p.parseTypeAnnotation()
		if fn.ReturnType == "" {
			return nil
		}
	}

	fn.Body = p.parseBody()
	if fn.Body == nil {
		return nil
	}
	return fn
}

// parseParameters parses `name[: type], ...` up to ')' with curToken on '('.
func (p *Parser) parseParameters() ([]*ast.Parameter, bool) {
	params := []*ast.Parameter{}

	p.skipPeekNewlines()
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}

	for {
		p.skipPeekNewlines()
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		param := &ast.Parameter{Token: p.curToken, Name: p.identifier()}

		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			param.TypeAnnotation = p.parseTypeAnnotation()
			if param.TypeAnnotation == "" {
				return nil, false
			}
		}
		params = append(params, param)

		p.skipPeekNewlines()
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.skipPeekNewlines()
		if p.peekTokenIs(token.RPAREN) {
			break
		}
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return params, true
}

// parseDottedName parses `a.b.c` with curToken on the first identifier.
func (p *Parser) parseDottedName() string {
	parts := []string{p.identifier().Value}
	for p.peekTokenIs(token.DOT) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			break
		}
		parts = append(parts, p.identifier().Value)
	}
	return strings.Join(parts, ".")
}

func (p *Parser) parseModuleStatement() ast.Statement {
	stmt := &ast.ModuleStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.parseDottedName()
	return stmt
}

// parseImportStatement parses `import name [as alias]`; name may be a
// dotted path or a string.
func (p *Parser) parseImportStatement() ast.Statement {
	stmt := &ast.ImportStatement{Token: p.curToken}

	switch {
	case p.peekTokenIs(token.STRING):
		p.nextToken()
		stmt.Module = p.curToken.Literal.(string)
	case p.peekTokenIs(token.IDENT):
		p.nextToken()
		stmt.Module = p.parseDottedName()
	default:
		p.peekError(token.IDENT)
		return nil
	}

	if p.peekTokenIs(token.IDENT) && p.peekToken.Lexeme == "as" {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Alias = p.identifier().Value
	}
	return stmt
}

type containerDecl struct {
	tok token.Token
	ast.ContainerBody
}

// parseContainerBody parses an actor or contract. Inside the braces only
// `state let ...` fields and function declarations are kept; every other
// token is discarded.
func (p *Parser) parseContainerBody() *containerDecl {
	decl := &containerDecl{tok: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.identifier()

	p.skipPeekNewlines()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()

	depth := 0
	for !p.curTokenIs(token.EOF) {
		switch {
		case p.curTokenIs(token.RBRACE) && depth == 0:
			return decl
		case p.curTokenIs(token.STATE) && p.peekTokenIs(token.LET):
			stateTok := p.curToken
			p.nextToken()
			name, annotation, value, ok := p.parseBinding()
			if ok {
				decl.Fields = append(decl.Fields, &ast.StateField{
					Token: stateTok, Name: name, TypeAnnotation: annotation, Value: value,
				})
			}
		case p.curTokenIs(token.FN):
			if fn := p.parseFunctionStatement(ast.FunctionPlain, p.curToken); fn != nil {
				decl.Methods = append(decl.Methods, fn)
			}
		case p.curTokenIs(token.ASYNC) && p.peekTokenIs(token.FN):
			tok := p.curToken
			p.nextToken()
			if fn := p.parseFunctionStatement(ast.FunctionAsync, tok); fn != nil {
				decl.Methods = append(decl.Methods, fn)
			}
		case p.curTokenIs(token.LBRACE):
			depth++
		case p.curTokenIs(token.RBRACE):
			depth--
		}
		p.nextToken()
	}

	p.warn(p.curToken, "unterminated %s body: expected '}'", decl.tok.Lexeme)
	return decl
}

// parseComponentStatement parses `component Name() { ... }`; the empty
// parameter list is optional.
func (p *Parser) parseComponentStatement() ast.Statement {
	stmt := &ast.ComponentStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.identifier().Value

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}

	body, ok := p.parseSectionBody()
	if !ok {
		return nil
	}
	stmt.Body = body
	return stmt
}

func (p *Parser) parseFlowStatement() ast.Statement {
	stmt := &ast.FlowStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.identifier().Value

	body, ok := p.parseSectionBody()
	if !ok {
		return nil
	}
	stmt.Body = body
	return stmt
}

// parseNamedSection parses `keyword "name" { ... }` for deployments and
// clusters. An identifier is accepted in place of the string.
func (p *Parser) parseNamedSection() (*ast.Section, token.Token) {
	tok := p.curToken
	section := &ast.Section{}

	switch {
	case p.peekTokenIs(token.STRING):
		p.nextToken()
		section.Name = p.curToken.Literal.(string)
	case p.peekTokenIs(token.IDENT):
		p.nextToken()
		section.Name = p.identifier().Value
	default:
		p.peekError(token.STRING)
		return nil, tok
	}

	body, ok := p.parseSectionBody()
	if !ok {
		return nil, tok
	}
	section.Body = body
	return section, tok
}

func (p *Parser) parseSectionBody() ([]ast.Statement, bool) {
	p.skipPeekNewlines()
	if !p.expectPeek(token.LBRACE) {
		return nil, false
	}
	return p.parseBraceBody(), true
}
