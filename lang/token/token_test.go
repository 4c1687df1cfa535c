package token

import "testing"

func TestKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  Kind
		ok    bool
	}{
		{"true", KeywordTrue, true},
		{"false", KeywordFalse, true},
		{"null", KeywordNull, true},
		{"local", KeywordLocal, true},
		{"function", KeywordFunction, true},
		{"if", KeywordIf, true},
		{"then", KeywordThen, true},
		{"else", KeywordElse, true},
		{"foo", Illegal, false},
		{"", Illegal, false},
	}

	for _, tt := range tests {
		got, ok := Keyword(tt.ident)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Keyword(%q) = (%v, %v), want (%v, %v)", tt.ident, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindString(t *testing.T) {
	if Plus.String() != "+" {
		t.Errorf("Plus.String() = %q, want %q", Plus.String(), "+")
	}

	if got := Kind(999).String(); got == "" {
		t.Errorf("unknown Kind.String() should not be empty, got %q", got)
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Offset: 5, Line: 2, Column: 3}
	if got, want := p.String(), "2:3"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Ident, Literal: "x", Pos: Position{Line: 1, Column: 1}}

	got := tok.String()
	if got == "" {
		t.Error("Token.String() should not be empty")
	}
}
