package parser

import (
	"strings"

	"github.com/funvibe/polymodal/internal/token"
)

// parseTypeAnnotation parses `name` or `name[arg, ...]` and returns its
// canonical text, e.g. "map[str, list[i32]]". It returns "" on failure.
func (p *Parser) parseTypeAnnotation() string {
	var name string
	switch p.curToken.Type {
	case token.IDENT:
		name = p.identifier().Value
	case token.NONE:
		name = "none"
	default:
		p.warn(p.curToken, "expected type name, got %s", describeToken(p.curToken))
		return ""
	}

	if !p.peekTokenIs(token.LBRACKET) {
		return name
	}
	p.nextToken()

	var args []string
	for {
		p.nextToken()
		p.skipNewlines()
		arg := p.parseTypeAnnotation()
		if arg == "" {
			return ""
		}
		args = append(args, arg)

		p.skipPeekNewlines()
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RBRACKET) {
		return ""
	}
	return name + "[" + strings.Join(args, ", ") + "]"
}
