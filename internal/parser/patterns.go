package parser

import (
	"github.com/funvibe/polymodal/internal/ast"
	"github.com/funvibe/polymodal/internal/config"
	"github.com/funvibe/polymodal/internal/token"
)

// parsePattern parses one pattern, including `p | q` alternatives.
func (p *Parser) parsePattern() ast.Pattern {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.warn(p.curToken, "pattern too complex: recursion depth limit exceeded")
		return nil
	}

	first := p.parsePrimaryPattern()
	if first == nil || !p.peekTokenIs(token.PIPE) {
		return first
	}

	or := &ast.OrPattern{Token: first.GetToken(), Alternatives: []ast.Pattern{first}}
	for p.peekTokenIs(token.PIPE) {
		p.nextToken()
		p.nextToken()
		p.skipNewlines()
		alt := p.parsePrimaryPattern()
		if alt == nil {
			return nil
		}
		or.Alternatives = append(or.Alternatives, alt)
	}
	return or
}

func (p *Parser) parsePrimaryPattern() ast.Pattern {
	tok := p.curToken

	switch tok.Type {
	case token.IDENT:
		name := p.identifier().Value
		switch {
		case name == config.WildcardName:
			return &ast.WildcardPattern{Token: tok}
		case p.peekTokenIs(token.AT):
			p.nextToken()
			p.nextToken()
			inner := p.parsePrimaryPattern()
			if inner == nil {
				return nil
			}
			return &ast.BindingPattern{Token: tok, Name: name, Pattern: inner}
		case p.peekTokenIs(token.LBRACE):
			return p.parseStructPattern(tok, name)
		}
		return &ast.IdentifierPattern{Token: tok, Name: name}

	case token.MINUS:
		if !p.expectPeek(token.NUMBER) {
			return nil
		}
		return &ast.NumberPattern{Token: tok, Value: -p.curToken.Literal.(float64)}

	case token.NUMBER:
		return &ast.NumberPattern{Token: tok, Value: tok.Literal.(float64)}

	case token.STRING:
		return &ast.StringPattern{Token: tok, Value: tok.Literal.(string)}

	case token.TRUE, token.FALSE:
		return &ast.BooleanPattern{Token: tok, Value: tok.Type == token.TRUE}

	case token.LPAREN:
		elements, trailingComma, ok := p.parsePatternList(token.RPAREN)
		if !ok {
			return nil
		}
		if len(elements) == 1 && !trailingComma {
			return elements[0]
		}
		return &ast.TuplePattern{Token: tok, Elements: elements}

	case token.LBRACKET:
		elements, _, ok := p.parsePatternList(token.RBRACKET)
		if !ok {
			return nil
		}
		return &ast.ListPattern{Token: tok, Elements: elements}
	}

	p.warn(tok, "expected pattern, got %s", describeToken(tok))
	return nil
}

// parsePatternList parses comma-separated patterns up to end with
// curToken on the opening delimiter.
func (p *Parser) parsePatternList(end token.TokenType) ([]ast.Pattern, bool, bool) {
	elements := []ast.Pattern{}
	trailingComma := false

	p.skipPeekNewlines()
	if p.peekTokenIs(end) {
		p.nextToken()
		return elements, false, true
	}

	for {
		p.nextToken()
		p.skipNewlines()
		pat := p.parsePattern()
		if pat == nil {
			return nil, false, false
		}
		elements = append(elements, pat)

		p.skipPeekNewlines()
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.skipPeekNewlines()
		if p.peekTokenIs(end) {
			trailingComma = true
			break
		}
	}

	if !p.expectPeek(end) {
		return nil, false, false
	}
	return elements, trailingComma, true
}

// parseStructPattern parses `Name { field: pattern, other }` with curToken
// on Name. A field without a pattern binds the field's own name.
func (p *Parser) parseStructPattern(tok token.Token, name string) ast.Pattern {
	sp := &ast.StructPattern{Token: tok, Name: name}
	p.nextToken()

	for {
		p.skipPeekNewlines()
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			return sp
		}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		fieldTok := p.curToken
		field := &ast.FieldPattern{Name: p.identifier().Value}

		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			field.Pattern = p.parsePattern()
			if field.Pattern == nil {
				return nil
			}
		} else {
			field.Pattern = &ast.IdentifierPattern{Token: fieldTok, Name: field.Name}
		}
		sp.Fields = append(sp.Fields, field)

		p.skipPeekNewlines()
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RBRACE) {
			return nil
		}
		return sp
	}
}
