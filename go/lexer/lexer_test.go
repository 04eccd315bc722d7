// Copyright 2026 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lexer

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multigres/oxilex/go/diagnostics"
	"github.com/multigres/oxilex/go/token"
)

type lexResult struct {
	tokens []token.Token
	diag   *diagnostics.State
	errOut *bytes.Buffer
	out    *bytes.Buffer
}

func lex(t *testing.T, src string) lexResult {
	t.Helper()
	var out, errOut bytes.Buffer
	diag := diagnostics.New("test.oxi", diagnostics.WithOutput(&out, &errOut), diagnostics.WithColor(false))
	tokens := Tokenize("test.oxi", src, diag)
	return lexResult{tokens: tokens, diag: diag, errOut: &errOut, out: &out}
}

func tok(kind token.Kind, line, pos int, text string) token.Token {
	return token.NewToken(kind, line, pos, text)
}

func sep(line, pos int, c rune) token.Token {
	return token.NewCharToken(token.Seperator, line, pos, c)
}

func eof() token.Token { return token.NewEOF() }

func TestIfStatementPositions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Token
	}{
		{
			name:  "spaced",
			input: " if (x > 0) { ret true; }",
			expected: []token.Token{
				tok(token.Keyword, 1, 1, "if"),
				sep(1, 4, '('),
				tok(token.Identifier, 1, 5, "x"),
				tok(token.Operator, 1, 7, ">"),
				tok(token.IntLit, 1, 9, "0"),
				sep(1, 10, ')'),
				sep(1, 12, '{'),
				tok(token.Keyword, 1, 14, "ret"),
				tok(token.Keyword, 1, 18, "true"),
				sep(1, 22, ';'),
				sep(1, 24, '}'),
				eof(),
			},
		},
		{
			name:  "condensed",
			input: "if(x>0){ret true;}",
			expected: []token.Token{
				tok(token.Keyword, 1, 0, "if"),
				sep(1, 2, '('),
				tok(token.Identifier, 1, 3, "x"),
				tok(token.Operator, 1, 4, ">"),
				tok(token.IntLit, 1, 5, "0"),
				sep(1, 6, ')'),
				sep(1, 7, '{'),
				tok(token.Keyword, 1, 8, "ret"),
				tok(token.Keyword, 1, 12, "true"),
				sep(1, 16, ';'),
				sep(1, 17, '}'),
				eof(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := lex(t, tt.input)
			assert.Equal(t, tt.expected, res.tokens)
			assert.False(t, res.diag.HasEncounteredError())
		})
	}
}

func TestPositionsAreAbsoluteOffsets(t *testing.T) {
	res := lex(t, "u8 a;\n  i64 b;\nbool c")

	expected := []token.Token{
		tok(token.DataType, 1, 0, "u8"),
		tok(token.Identifier, 1, 3, "a"),
		sep(1, 4, ';'),
		tok(token.DataType, 2, 8, "i64"),
		tok(token.Identifier, 2, 12, "b"),
		sep(2, 13, ';'),
		tok(token.DataType, 3, 15, "bool"),
		tok(token.Identifier, 3, 20, "c"),
		eof(),
	}
	assert.Equal(t, expected, res.tokens)
}

func TestNonASCIIPositionsCountCharacters(t *testing.T) {
	res := lex(t, `"héllo" naïve x`)

	expected := []token.Token{
		tok(token.StringLit, 1, 0, "héllo"),
		tok(token.Identifier, 1, 8, "naïve"),
		tok(token.Identifier, 1, 14, "x"),
		eof(),
	}
	assert.Equal(t, expected, res.tokens)
}

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", " ", "\n\n", "\t\r\n"} {
		res := lex(t, input)
		assert.Equal(t, []token.Token{eof()}, res.tokens, "input %q", input)
	}
}

func TestLexIsSingleUse(t *testing.T) {
	l := New("once.oxi", "a b", diagnostics.New("once.oxi", diagnostics.WithOutput(&bytes.Buffer{}, &bytes.Buffer{})))

	first := l.Lex()
	require.Len(t, first, 3)

	assert.Equal(t, []token.Token{eof()}, l.Lex())
}

func TestNilDiagnosticsCreatesSession(t *testing.T) {
	l := New("x.oxi", "x", nil)
	require.NotNil(t, l.Diagnostics())
	assert.Equal(t, "x.oxi", l.Diagnostics().FileName())
}

func TestWordClassification(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"u8", token.DataType},
		{"u128", token.DataType},
		{"f128", token.DataType},
		{"char", token.DataType},
		{"bool", token.DataType},
		{"elif", token.Keyword},
		{"volatile", token.Keyword},
		{"match", token.Keyword},
		{"continue", token.Keyword},
		{"return", token.Identifier},
		{"_tmp1", token.Identifier},
		{"u8x", token.Identifier},
		{"IF", token.Identifier},
		{"x_ü2", token.Identifier},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := lex(t, tt.input)
			require.Len(t, res.tokens, 2)
			assert.Equal(t, tok(tt.kind, 1, 0, tt.input), res.tokens[0])
		})
	}
}

func TestClassificationPartition(t *testing.T) {
	words := append(append([]string{}, token.DataTypes[:]...), token.Keywords[:]...)
	words = append(words, "foo", "returns", "i9", "_", "Bool")

	for _, w := range words {
		res := lex(t, w)
		require.Len(t, res.tokens, 2, w)
		got := res.tokens[0].Kind
		switch {
		case token.IsDataType(w):
			assert.Equal(t, token.DataType, got, w)
		case token.IsKeyword(w):
			assert.Equal(t, token.Keyword, got, w)
		default:
			assert.Equal(t, token.Identifier, got, w)
		}
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Token
	}{
		{"a >> b", []token.Token{tok(token.Identifier, 1, 0, "a"), tok(token.Operator, 1, 2, ">>"), tok(token.Identifier, 1, 5, "b"), eof()}},
		{"<<", []token.Token{tok(token.Operator, 1, 0, "<<"), eof()}},
		{">=<=", []token.Token{tok(token.Operator, 1, 0, ">="), tok(token.Operator, 1, 2, "<="), eof()}},
		{"== !=", []token.Token{tok(token.Operator, 1, 0, "=="), tok(token.Operator, 1, 3, "!="), eof()}},
		{"^=|=&=", []token.Token{tok(token.Operator, 1, 0, "^="), tok(token.Operator, 1, 2, "|="), tok(token.Operator, 1, 4, "&="), eof()}},
		{"+=-=*=/=%=", []token.Token{
			tok(token.Operator, 1, 0, "+="), tok(token.Operator, 1, 2, "-="), tok(token.Operator, 1, 4, "*="),
			tok(token.Operator, 1, 6, "/="), tok(token.Operator, 1, 8, "%="), eof(),
		}},
		{">>=", []token.Token{tok(token.Operator, 1, 0, ">>"), tok(token.Operator, 1, 2, "="), eof()}},
		{"&&", []token.Token{tok(token.Operator, 1, 0, "&"), tok(token.Operator, 1, 1, "&"), eof()}},
		{"!x", []token.Token{tok(token.Operator, 1, 0, "!"), tok(token.Identifier, 1, 1, "x"), eof()}},
		{"-", []token.Token{tok(token.Operator, 1, 0, "-"), eof()}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, lex(t, tt.input).tokens)
		})
	}
}

func TestSeparators(t *testing.T) {
	res := lex(t, ";,{}[]()")
	require.Len(t, res.tokens, 9)
	for i, c := range ";,{}[]()" {
		assert.Equal(t, sep(1, i, c), res.tokens[i])
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	res := lex(t, "x @ y")

	expected := []token.Token{
		tok(token.Identifier, 1, 0, "x"),
		sep(1, 2, '@'),
		tok(token.Identifier, 1, 4, "y"),
		eof(),
	}
	assert.Equal(t, expected, res.tokens)
	assert.True(t, res.diag.HasEncounteredError())
	assert.Contains(t, res.errOut.String(), "unexpected character '@' found at 1:2 of test.oxi")
	assert.Contains(t, res.out.String(), "1 | x @ y")
}

func TestLineCounting(t *testing.T) {
	res := lex(t, "a\r\nb\n\nc")

	expected := []token.Token{
		tok(token.Identifier, 1, 0, "a"),
		tok(token.Identifier, 2, 3, "b"),
		tok(token.Identifier, 4, 6, "c"),
		eof(),
	}
	assert.Equal(t, expected, res.tokens)
}

func TestTotalityAndMonotonicity(t *testing.T) {
	inputs := []string{
		"",
		"if (a >= 1.5e3) { ret 'x'; } elif b { ret \"s\\u00e9\"; }",
		"\"unterminated",
		"'",
		"'\\",
		"\"\\",
		"1.2.3 0x 9e 1e+",
		"@#$`~?",
		"x\n\"multi\nline\" y\n'\n' z",
		"'\\u' '\\uD800' \"\\uDFFF\" '\\u110000'",
	}

	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("ab_19.eEx+-=<>!\"'\\u{};( )\n\t@é")
	for range 200 {
		n := rng.Intn(40)
		rs := make([]rune, n)
		for i := range rs {
			rs[i] = alphabet[rng.Intn(len(alphabet))]
		}
		inputs = append(inputs, string(rs))
	}

	for _, input := range inputs {
		res := lex(t, input)
		tokens := res.tokens

		require.NotEmpty(t, tokens, "input %q", input)
		assert.Equal(t, token.Eof, tokens[len(tokens)-1].Kind, "input %q", input)
		for _, tk := range tokens[:len(tokens)-1] {
			assert.NotEqual(t, token.Eof, tk.Kind, "input %q: Eof must only appear last", input)
		}

		body := tokens[:len(tokens)-1]
		for i := 1; i < len(body); i++ {
			prev, cur := body[i-1], body[i]
			assert.GreaterOrEqual(t, cur.Line, prev.Line, "input %q: %v then %v", input, prev, cur)
			if cur.Line == prev.Line {
				assert.GreaterOrEqual(t, cur.Pos, prev.Pos, "input %q: %v then %v", input, prev, cur)
			}
		}
	}
}

func TestErrorsAreNonFatal(t *testing.T) {
	res := lex(t, "a ` b 1.2.3 c \"\\q\" d")

	var idents []string
	for _, tk := range res.tokens {
		if tk.Kind == token.Identifier {
			idents = append(idents, tk.Text)
		}
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, idents)
	assert.Equal(t, 3, res.diag.ErrorCount())
	assert.Equal(t, 1, strings.Count(res.out.String(), "In file"))
}
