package lexer

import (
	"math/rand"
	"testing"

	"github.com/funvibe/polymodal/internal/token"
)

type expectedToken struct {
	typ    token.TokenType
	lexeme string
	line   int
	col    int
}

func checkTokens(t *testing.T, input string, expected []expectedToken) []token.Token {
	t.Helper()
	tokens := Tokenize(input)
	if len(tokens) != len(expected) {
		for _, tok := range tokens {
			t.Logf("  %s", tok)
		}
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, tt := range expected {
		tok := tokens[i]
		if tok.Type != tt.typ {
			t.Errorf("tokens[%d] type = %q, want %q", i, tok.Type, tt.typ)
		}
		if tt.lexeme != "" && tok.Lexeme != tt.lexeme {
			t.Errorf("tokens[%d] lexeme = %q, want %q", i, tok.Lexeme, tt.lexeme)
		}
		if tok.Line != tt.line || tok.Column != tt.col {
			t.Errorf("tokens[%d] (%s) at %d:%d, want %d:%d", i, tok.Type, tok.Line, tok.Column, tt.line, tt.col)
		}
	}
	return tokens
}

func TestNextToken_InterpretedProgram(t *testing.T) {
	input := "[Interpreted]\nlet x = 2 + 3\nprint(x)"
	tokens := checkTokens(t, input, []expectedToken{
		{token.INTERPRETED, "[Interpreted]", 1, 1},
		{token.LET, "let", 2, 1},
		{token.IDENT, "x", 2, 5},
		{token.ASSIGN, "=", 2, 7},
		{token.NUMBER, "2", 2, 9},
		{token.PLUS, "+", 2, 11},
		{token.NUMBER, "3", 2, 13},
		{token.NEWLINE, "\n", 2, 14},
		{token.PRINT, "print", 3, 1},
		{token.LPAREN, "(", 3, 6},
		{token.IDENT, "x", 3, 7},
		{token.RPAREN, ")", 3, 8},
		{token.EOF, "", 3, 9},
	})
	if v, ok := tokens[4].Literal.(float64); !ok || v != 2 {
		t.Errorf("number literal = %v", tokens[4].Literal)
	}
}

func TestNextToken_CommentsAndOperators(t *testing.T) {
	input := "let a = 1 // hi\n/# note\nb != c && !d || e->f => g <= h >= i % j"
	checkTokens(t, input, []expectedToken{
		{token.LET, "let", 1, 1},
		{token.IDENT, "a", 1, 5},
		{token.ASSIGN, "=", 1, 7},
		{token.NUMBER, "1", 1, 9},
		{token.NEWLINE, "", 1, 16},
		{token.NEWLINE, "", 2, 8},
		{token.IDENT, "b", 3, 1},
		{token.NOT_EQ, "!=", 3, 3},
		{token.IDENT, "c", 3, 6},
		{token.AND, "&&", 3, 8},
		{token.BANG, "!", 3, 11},
		{token.IDENT, "d", 3, 12},
		{token.OR, "||", 3, 14},
		{token.IDENT, "e", 3, 17},
		{token.ARROW, "->", 3, 18},
		{token.IDENT, "f", 3, 20},
		{token.FAT_ARROW, "=>", 3, 22},
		{token.IDENT, "g", 3, 25},
		{token.LTE, "<=", 3, 27},
		{token.IDENT, "h", 3, 30},
		{token.GTE, ">=", 3, 32},
		{token.IDENT, "i", 3, 35},
		{token.PERCENT, "%", 3, 37},
		{token.IDENT, "j", 3, 39},
		{token.EOF, "", 3, 40},
	})
}

func TestNextToken_Headers(t *testing.T) {
	input := "\n// leading comment\n[Compiled] trailing text\n\n[target wasm32]\nlet x"
	tokens := checkTokens(t, input, []expectedToken{
		{token.COMPILED, "[Compiled]", 3, 1},
		{token.TARGET, "[target", 5, 1},
		{token.IDENT, "wasm32", 5, 9},
		{token.LET, "let", 6, 1},
		{token.IDENT, "x", 6, 5},
		{token.EOF, "", 6, 6},
	})
	if tokens[2].Literal != "wasm32" {
		t.Errorf("target literal = %v", tokens[2].Literal)
	}
}

func TestNextToken_NoHeader(t *testing.T) {
	checkTokens(t, "let [Compiled]", []expectedToken{
		{token.LET, "let", 1, 1},
		{token.LBRACKET, "[", 1, 5},
		{token.IDENT, "Compiled", 1, 6},
		{token.RBRACKET, "]", 1, 14},
		{token.EOF, "", 1, 15},
	})
}

func TestNextToken_Strings(t *testing.T) {
	input := `"a\nb\t\\\"" 'c\q' "multi
line"`
	tokens := Tokenize(input)
	want := []string{"a\nb\t\\\"", `c\q`, "multi\nline"}
	for i, w := range want {
		if tokens[i].Type != token.STRING {
			t.Fatalf("tokens[%d] type = %s, want STRING", i, tokens[i].Type)
		}
		if tokens[i].Literal != w {
			t.Errorf("tokens[%d] literal = %q, want %q", i, tokens[i].Literal, w)
		}
	}
	if tokens[1].Column != 14 {
		t.Errorf("second string column = %d, want 14", tokens[1].Column)
	}
	eof := tokens[len(tokens)-1]
	if eof.Type != token.EOF || eof.Line != 2 || eof.Column != 6 {
		t.Errorf("EOF at %d:%d, want 2:6", eof.Line, eof.Column)
	}
}

func TestNextToken_Numbers(t *testing.T) {
	tokens := Tokenize("3.25 7. 10")
	if tokens[0].Literal != 3.25 {
		t.Errorf("tokens[0] = %v, want 3.25", tokens[0].Literal)
	}
	if tokens[1].Literal != 7.0 || tokens[2].Type != token.DOT {
		t.Errorf("trailing dot should not be part of the number: %v %v", tokens[1], tokens[2])
	}
	if tokens[3].Literal != 10.0 {
		t.Errorf("tokens[3] = %v, want 10", tokens[3].Literal)
	}
}

func TestNextToken_KeywordsAndCarveOuts(t *testing.T) {
	tokens := Tokenize("for item in self.items match none true false")
	expected := []token.TokenType{
		token.FOR, token.IDENT, token.IDENT, token.IDENT, token.DOT, token.IDENT,
		token.MATCH, token.NONE, token.TRUE, token.FALSE, token.EOF,
	}
	for i, typ := range expected {
		if tokens[i].Type != typ {
			t.Errorf("tokens[%d] = %s, want %s", i, tokens[i].Type, typ)
		}
	}
	if tokens[8].Literal != true || tokens[9].Literal != false {
		t.Errorf("boolean literals not set: %v %v", tokens[8].Literal, tokens[9].Literal)
	}
}

func TestNextToken_UnknownCharactersAreSkipped(t *testing.T) {
	checkTokens(t, "let $x = #1", []expectedToken{
		{token.LET, "let", 1, 1},
		{token.IDENT, "x", 1, 6},
		{token.ASSIGN, "=", 1, 8},
		{token.NUMBER, "1", 1, 11},
		{token.EOF, "", 1, 12},
	})
}

func TestNextToken_IdentifiersAreNormalized(t *testing.T) {
	decomposed := Tokenize("cafe\u0301")
	composed := Tokenize("caf\u00e9")
	if decomposed[0].Literal != composed[0].Literal {
		t.Errorf("identifier spellings differ: %q vs %q", decomposed[0].Literal, composed[0].Literal)
	}
	if decomposed[1].Column != 6 {
		t.Errorf("EOF column = %d, want 6 (columns count runes)", decomposed[1].Column)
	}
}

func TestTokenize_AlwaysEndsWithEOF(t *testing.T) {
	alphabet := []rune("ab1 .\n\t\"'\\/#[]{}()=!<>&|-+*%@$~é")
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		n := rng.Intn(40)
		buf := make([]rune, n)
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		input := string(buf)
		tokens := Tokenize(input)
		if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
			t.Fatalf("input %q: missing trailing EOF", input)
		}
		prevLine, prevCol := 0, 0
		for _, tok := range tokens {
			if tok.Line < prevLine || (tok.Line == prevLine && tok.Column <= prevCol && tok.Type != token.EOF) {
				t.Fatalf("input %q: positions not increasing at %s", input, tok)
			}
			prevLine, prevCol = tok.Line, tok.Column
		}
	}
}
