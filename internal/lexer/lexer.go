package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/funvibe/polymodal/internal/token"
)

const (
	compiledHeader    = "[Compiled]"
	interpretedHeader = "[Interpreted]"
	targetHeader      = "[target"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number

	headersScanned bool
	queue          []token.Token
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize lexes the whole input. The result always ends with EOF.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.column++

	if l.readPosition >= len(l.input) {
		l.position = len(l.input)
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.position = l.readPosition
	l.readPosition += w
	l.ch = r
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	if !l.headersScanned {
		l.headersScanned = true
		l.scanHeaders()
	}
	if len(l.queue) > 0 {
		tok := l.queue[0]
		l.queue = l.queue[1:]
		return tok
	}

	for {
		l.skipWhitespace()
		if l.atEOF() {
			return token.Token{Type: token.EOF, Line: l.line, Column: l.column}
		}
		if tok, ok := l.scanToken(); ok {
			return tok
		}
	}
}

// scanToken reads one token starting at the current char. It reports false
// when the char is not part of the language and was skipped.
func (l *Lexer) scanToken() (token.Token, bool) {
	line, col := l.line, l.column

	two := func(next rune, double, single token.TokenType) token.Token {
		if l.peekChar() == next {
			lexeme := string(l.ch) + string(next)
			l.readChar()
			l.readChar()
			return token.Token{Type: double, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
		}
		return l.single(single, line, col)
	}

	switch l.ch {
	case '\n':
		return l.single(token.NEWLINE, line, col), true
	case '=':
		if l.peekChar() == '>' {
			return two('>', token.FAT_ARROW, token.ASSIGN), true
		}
		return two('=', token.EQ, token.ASSIGN), true
	case '!':
		return two('=', token.NOT_EQ, token.BANG), true
	case '<':
		return two('=', token.LTE, token.LT), true
	case '>':
		return two('=', token.GTE, token.GT), true
	case '-':
		return two('>', token.ARROW, token.MINUS), true
	case '&':
		return two('&', token.AND, token.AMPERSAND), true
	case '|':
		return two('|', token.OR, token.PIPE), true
	case '+':
		return l.single(token.PLUS, line, col), true
	case '*':
		return l.single(token.ASTERISK, line, col), true
	case '/':
		return l.single(token.SLASH, line, col), true
	case '%':
		return l.single(token.PERCENT, line, col), true
	case '@':
		return l.single(token.AT, line, col), true
	case '?':
		return l.single(token.QUESTION, line, col), true
	case ',':
		return l.single(token.COMMA, line, col), true
	case ';':
		return l.single(token.SEMICOLON, line, col), true
	case ':':
		return l.single(token.COLON, line, col), true
	case '.':
		return l.single(token.DOT, line, col), true
	case '(':
		return l.single(token.LPAREN, line, col), true
	case ')':
		return l.single(token.RPAREN, line, col), true
	case '{':
		return l.single(token.LBRACE, line, col), true
	case '}':
		return l.single(token.RBRACE, line, col), true
	case '[':
		return l.single(token.LBRACKET, line, col), true
	case ']':
		return l.single(token.RBRACKET, line, col), true
	case '"', '\'':
		return l.readString(line, col), true
	}

	if isDigit(l.ch) {
		return l.readNumber(line, col), true
	}
	if isLetter(l.ch) {
		return l.readIdentifier(line, col), true
	}

	// Unknown characters are dropped.
	l.readChar()
	return token.Token{}, false
}

func (l *Lexer) single(t token.TokenType, line, col int) token.Token {
	lexeme := string(l.ch)
	l.readChar()
	return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
}

// skipWhitespace skips blanks and comments but stops at newlines,
// which are tokens.
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && (l.peekChar() == '/' || l.peekChar() == '#'):
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		default:
			return
		}
	}
}

// skipBlankLines skips whitespace, newlines and comment lines.
func (l *Lexer) skipBlankLines() {
	for {
		l.skipWhitespace()
		if l.atEOF() || l.ch != '\n' {
			return
		}
		l.readChar()
	}
}

// skipLine consumes the remainder of the current line including its newline.
func (l *Lexer) skipLine() {
	for !l.atEOF() && l.ch != '\n' {
		l.readChar()
	}
	if !l.atEOF() {
		l.readChar()
	}
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n && !l.atEOF(); i++ {
		l.readChar()
	}
}

// scanHeaders queues the mode header and the optional target header.
// Both must precede ordinary tokens; anything else leaves the queue empty.
func (l *Lexer) scanHeaders() {
	l.skipBlankLines()
	rest := l.input[l.position:]
	switch {
	case strings.HasPrefix(rest, compiledHeader):
		l.queue = append(l.queue, token.Token{Type: token.COMPILED, Lexeme: compiledHeader, Literal: compiledHeader, Line: l.line, Column: l.column})
		l.advance(len(compiledHeader))
		l.skipLine()
	case strings.HasPrefix(rest, interpretedHeader):
		l.queue = append(l.queue, token.Token{Type: token.INTERPRETED, Lexeme: interpretedHeader, Literal: interpretedHeader, Line: l.line, Column: l.column})
		l.advance(len(interpretedHeader))
		l.skipLine()
	}

	l.skipBlankLines()
	if l.atEOF() {
		return
	}
	rest = l.input[l.position:]
	if !strings.HasPrefix(rest, targetHeader) || len(rest) == len(targetHeader) {
		return
	}
	if next := rest[len(targetHeader)]; next != ' ' && next != '\t' && next != ']' {
		return
	}
	l.queue = append(l.queue, token.Token{Type: token.TARGET, Lexeme: targetHeader, Literal: targetHeader, Line: l.line, Column: l.column})
	l.advance(len(targetHeader))
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}
	if isLetter(l.ch) {
		l.queue = append(l.queue, l.readIdentifier(l.line, l.column))
	}
	l.skipLine()
}

func (l *Lexer) readIdentifier(line, col int) token.Token {
	start := l.position
	for !l.atEOF() && (isLetter(l.ch) || unicode.IsDigit(l.ch) || unicode.IsMark(l.ch)) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	name := norm.NFC.String(lexeme)
	tokType := token.LookupIdent(name)

	var literal interface{} = name
	switch tokType {
	case token.TRUE:
		literal = true
	case token.FALSE:
		literal = false
	}
	return token.Token{Type: tokType, Lexeme: lexeme, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) readNumber(line, col int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lexeme := l.input[start:l.position]
	// Only overflow can fail here; ParseFloat still returns ±Inf then.
	value, _ := strconv.ParseFloat(lexeme, 64)
	return token.Token{Type: token.NUMBER, Lexeme: lexeme, Literal: value, Line: line, Column: col}
}

// readString reads a quoted string. An unterminated string runs to the end
// of input.
func (l *Lexer) readString(line, col int) token.Token {
	quote := l.ch
	start := l.position
	l.readChar()

	var sb strings.Builder
	for !l.atEOF() && l.ch != quote {
		if l.ch == '\\' {
			switch l.peekChar() {
			case 'n':
				sb.WriteRune('\n')
				l.readChar()
			case 't':
				sb.WriteRune('\t')
				l.readChar()
			case '\\':
				sb.WriteRune('\\')
				l.readChar()
			case '"':
				sb.WriteRune('"')
				l.readChar()
			default:
				sb.WriteRune('\\')
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if !l.atEOF() {
		l.readChar() // closing quote
	}

	return token.Token{Type: token.STRING, Lexeme: l.input[start:l.position], Literal: sb.String(), Line: line, Column: col}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
