package lexer

import (
	"testing"

	"github.com/example/jsgo/token"
)

func collectTypes(t *testing.T, input string) []token.TokenType {
	t.Helper()
	l := New(input)
	var types []token.TokenType
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			return types
		}
	}
}

func TestPunctuationAndOperators(t *testing.T) {
	input := `( ) { } [ ] ; : , ~ + - * / % ** === !== == != < <= > >= && || ?? => ...`
	got := collectTypes(t, input)
	want := []token.TokenType{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.LeftBracket, token.RightBracket, token.Semicolon, token.Colon,
		token.Comma, token.BitwiseNot, token.Plus, token.Minus, token.Asterisk,
		token.Slash, token.Percent, token.Exponent, token.StrictEqual,
		token.StrictNotEqual, token.Equal, token.NotEqual, token.LessThan,
		token.LessThanOrEqual, token.GreaterThan, token.GreaterThanOrEqual,
		token.And, token.Or, token.NullishCoalesce, token.Arrow,
		token.Spread, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("token[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	kinds := collectTypes(t, "let x = function() { return this.foo; }")
	if kinds[0] != token.Let {
		t.Fatalf("expected Let, got %v", kinds[0])
	}
	if kinds[1] != token.Identifier {
		t.Fatalf("expected Identifier, got %v", kinds[1])
	}
}

func TestStringLiteralsAndEscapes(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`'it\'s'`, "it's"},
		{`"line1\nline2"`, "line1\nline2"},
		{`"A"`, "A"},
	}
	for _, c := range cases {
		l := New(c.input)
		tok := l.NextToken()
		if tok.Type != token.String {
			t.Fatalf("input %q: expected String token, got %v", c.input, tok.Type)
		}
		if tok.Literal != c.want {
			t.Errorf("input %q: literal = %q, want %q", c.input, tok.Literal, c.want)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"123", "123"},
		{"3.14", "3.14"},
		{"0x1F", "0x1F"},
		{"0b101", "0b101"},
		{"0o17", "0o17"},
		{"1e10", "1e10"},
	}
	for _, c := range cases {
		l := New(c.input)
		tok := l.NextToken()
		if tok.Type != token.Number {
			t.Fatalf("input %q: expected Number token, got %v (%q)", c.input, tok.Type, tok.Literal)
		}
		if tok.Literal != c.want {
			t.Errorf("input %q: literal = %q, want %q", c.input, tok.Literal, c.want)
		}
	}
}

// BigInt literals are an explicit non-goal; the lexer must reject the
// trailing "n" suffix outright instead of folding it into a Number token
// that later fails float parsing with no useful diagnostic.
func TestBigIntLiteralIsRejected(t *testing.T) {
	cases := []string{"123n", "0x1Fn", "0n"}
	for _, input := range cases {
		l := New(input)
		tok := l.NextToken()
		if tok.Type != token.Illegal {
			t.Errorf("input %q: expected Illegal token, got %v (%q)", input, tok.Type, tok.Literal)
		}
	}
}

func TestTemplateLiteralInterpolation(t *testing.T) {
	types := collectTypes(t, "`a${1}b`")
	var head, tail bool
	for _, ty := range types {
		switch ty {
		case token.TemplateHead:
			head = true
		case token.TemplateTail:
			tail = true
		}
	}
	if !head || !tail {
		t.Errorf("expected TemplateHead and TemplateTail tokens around the interpolation, got %v", types)
	}
}

func TestRegExpLiteral(t *testing.T) {
	l := New("/ab+c/gi")
	tok := l.NextTokenWithRegex(token.Illegal)
	if tok.Type != token.RegExp {
		t.Fatalf("expected RegExp token, got %v (%q)", tok.Type, tok.Literal)
	}
}

func TestTokenPositionsTrackLineAndColumn(t *testing.T) {
	l := New("let a\nlet b")
	var last token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		if tok.Literal == "b" {
			last = tok
		}
	}
	pos := last.Pos()
	if pos.Line != 2 {
		t.Errorf("identifier 'b' line = %d, want 2", pos.Line)
	}
}

func TestUnterminatedStringIsIllegal(t *testing.T) {
	l := New(`"unterminated`)
	tok := l.NextToken()
	if tok.Type != token.Illegal {
		t.Errorf("expected Illegal token for unterminated string, got %v", tok.Type)
	}
}
