package lexer

import (
	"testing"

	"github.com/nojimay/jack/lang/token"
)

func scanAll(t *testing.T, input string) []token.Token {
	t.Helper()

	l := New(input)

	var toks []token.Token

	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}

		toks = append(toks, tok)

		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestNextNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{"1e10", "1e10"},
		{"1E10", "1E10"},
		{"1e+10", "1e+10"},
		{"1e-10", "1e-10"},
		{"0", "0"},
	}

	for _, tt := range tests {
		toks := scanAll(t, tt.input)
		if len(toks) != 2 {
			t.Fatalf("input %q: expected 2 tokens (number, eof), got %d", tt.input, len(toks))
		}

		if toks[0].Kind != token.Number || toks[0].Literal != tt.want {
			t.Errorf("input %q: got %+v, want literal %q", tt.input, toks[0], tt.want)
		}
	}
}

func TestNextStrings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"a\"b"`, `a"b`},
		{`"a\\b"`, `a\b`},
		{`"a\/b"`, "a/b"},
		{`""`, ""},
	}

	for _, tt := range tests {
		toks := scanAll(t, tt.input)
		if len(toks) != 2 {
			t.Fatalf("input %q: expected 2 tokens, got %d", tt.input, len(toks))
		}

		if toks[0].Kind != token.String || toks[0].Literal != tt.want {
			t.Errorf("input %q: got %+v, want literal %q", tt.input, toks[0], tt.want)
		}
	}
}

func TestNextUnterminatedString(t *testing.T) {
	l := New(`"abc`)

	_, err := l.Next()
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestNextUnterminatedEscape(t *testing.T) {
	l := New(`"abc\`)

	_, err := l.Next()
	if err == nil {
		t.Fatal("expected error for unterminated escape")
	}
}

func TestNextUnknownEscape(t *testing.T) {
	l := New(`"a\qb"`)

	_, err := l.Next()
	if err == nil {
		t.Fatal("expected error for unknown escape sequence")
	}
}

func TestNextIdentAndKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"foo", token.Ident},
		{"_bar", token.Ident},
		{"foo123", token.Ident},
		{"true", token.KeywordTrue},
		{"false", token.KeywordFalse},
		{"null", token.KeywordNull},
		{"local", token.KeywordLocal},
		{"function", token.KeywordFunction},
		{"if", token.KeywordIf},
		{"then", token.KeywordThen},
		{"else", token.KeywordElse},
	}

	for _, tt := range tests {
		toks := scanAll(t, tt.input)
		if len(toks) != 2 || toks[0].Kind != tt.kind {
			t.Errorf("input %q: got %+v, want kind %s", tt.input, toks, tt.kind)
		}
	}
}

func TestNextOperatorsAndPunctuation(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"[", token.LBracket},
		{"]", token.RBracket},
		{"{", token.LBrace},
		{"}", token.RBrace},
		{"(", token.LParen},
		{")", token.RParen},
		{",", token.Comma},
		{":", token.Colon},
		{";", token.Semi},
		{".", token.Dot},
		{"=", token.Assign},
		{"==", token.Eq},
		{"!", token.Not},
		{"!=", token.NotEq},
		{"&&", token.And},
		{"||", token.Or},
		{"+", token.Plus},
		{"-", token.Minus},
		{"*", token.Star},
		{"/", token.Slash},
		{"%", token.Percent},
	}

	for _, tt := range tests {
		toks := scanAll(t, tt.input)
		if len(toks) != 2 || toks[0].Kind != tt.kind {
			t.Errorf("input %q: got %+v, want kind %s", tt.input, toks, tt.kind)
		}
	}
}

func TestNextLoneAmpersandAndPipe(t *testing.T) {
	if _, err := New("&").Next(); err == nil {
		t.Error("expected error for lone '&'")
	}

	if _, err := New("|").Next(); err == nil {
		t.Error("expected error for lone '|'")
	}
}

func TestNextUnexpectedCharacter(t *testing.T) {
	if _, err := New("#").Next(); err == nil {
		t.Error("expected error for unexpected character")
	}
}

func TestNextSkipsLineComments(t *testing.T) {
	toks := scanAll(t, "1 // comment\n2")

	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %+v", len(toks), toks)
	}

	if toks[0].Literal != "1" || toks[1].Literal != "2" {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}

func TestNextSkipsBlockComments(t *testing.T) {
	toks := scanAll(t, "1 /* comment\nspanning lines */ 2")

	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %+v", len(toks), toks)
	}

	if toks[0].Literal != "1" || toks[1].Literal != "2" {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}

func TestNextEmptyInput(t *testing.T) {
	toks := scanAll(t, "")

	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Errorf("expected single EOF token, got %+v", toks)
	}
}

func TestNextRepeatedEOF(t *testing.T) {
	l := New("")

	first, err := l.Next()
	if err != nil || first.Kind != token.EOF {
		t.Fatalf("expected EOF, got %+v, %v", first, err)
	}

	second, err := l.Next()
	if err != nil || second.Kind != token.EOF {
		t.Fatalf("expected EOF again, got %+v, %v", second, err)
	}
}

func TestNextTracksLineAndColumn(t *testing.T) {
	toks := scanAll(t, "1\n22")

	if toks[0].Pos.Line != 1 {
		t.Errorf("expected first token on line 1, got %d", toks[0].Pos.Line)
	}

	if toks[1].Pos.Line != 2 || toks[1].Pos.Column != 1 {
		t.Errorf("expected second token at 2:1, got %s", toks[1].Pos)
	}
}
