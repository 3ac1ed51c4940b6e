package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"let", LET},
		{"elif", ELIF},
		{"parallel", PARALLEL},
		{"true", TRUE},
		{"none", NONE},
		{"in", IDENT},
		{"self", IDENT},
		{"map", IDENT},
		{"counter", IDENT},
	}

	for _, tt := range tests {
		if got := LookupIdent(tt.input); got != tt.expected {
			t.Errorf("LookupIdent(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	if !IsKeyword(MATCH) {
		t.Errorf("MATCH should be a keyword")
	}
	if IsKeyword(IDENT) {
		t.Errorf("IDENT should not be a keyword")
	}
}
