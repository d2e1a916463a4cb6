package lex

import "testing"

func allTokens(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var out []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next() returned unexpected error: %v", err)
		}
		out = append(out, tok)
		if tok.Kind == EOF {
			return out
		}
	}
}

func TestLexerKeywordsAndIdents(t *testing.T) {
	toks := allTokens(t, "state start fn let xyz")
	want := []Kind{KwState, KwStart, KwFn, KwLet, Ident, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexerIntAndFloatLiterals(t *testing.T) {
	toks := allTokens(t, "42 3.5")
	if toks[0].Kind != Int || toks[0].IntValue != 42 {
		t.Errorf("token 0 = %+v, want Int 42", toks[0])
	}
	if toks[1].Kind != Float || toks[1].FloatValue != 3.5 {
		t.Errorf("token 1 = %+v, want Float 3.5", toks[1])
	}
}

func TestLexerOperatorsLongestMatchFirst(t *testing.T) {
	toks := allTokens(t, "<<= << < <=")
	want := []Kind{ShlEq, Shl, Lt, Le, EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	toks := allTokens(t, `"hello\nworld"`)
	if toks[0].Kind != String || toks[0].StringValue != "hello\nworld" {
		t.Fatalf("token 0 = %+v, want String \"hello\\nworld\"", toks[0])
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := New(`"oops`)
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
	lexErr, ok := err.(*Error)
	if !ok || lexErr.Kind != UnexpectedEOF {
		t.Fatalf("err = %#v, want *Error with Kind UnexpectedEOF", err)
	}
}

func TestLexerUnrecognizedCharacter(t *testing.T) {
	l := New("@")
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected an error for an unrecognized character")
	}
	lexErr, ok := err.(*Error)
	if !ok || lexErr.Kind != UnrecognizedToken {
		t.Fatalf("err = %#v, want *Error with Kind UnrecognizedToken", err)
	}
}

func TestLexerLineColumnTracking(t *testing.T) {
	toks := allTokens(t, "a\nb")
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 1 {
		t.Errorf("first token pos = %+v, want line 1 col 1", toks[0].Pos)
	}
	if toks[1].Pos.Line != 2 || toks[1].Pos.Column != 1 {
		t.Errorf("second token pos = %+v, want line 2 col 1", toks[1].Pos)
	}
}

func TestLexerSkipsComments(t *testing.T) {
	toks := allTokens(t, "a // line comment\nb /* block */ c")
	want := []Kind{Ident, Ident, Ident, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %s, want %s", i, toks[i].Kind, k)
		}
	}
}
