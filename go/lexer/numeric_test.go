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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multigres/oxilex/go/token"
)

func TestNumericLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  token.Kind
	}{
		{"zero", "0", token.IntLit},
		{"integer", "12345", token.IntLit},
		{"leading zeros", "007", token.IntLit},
		{"max uint128", "340282366920938463463374607431768211455", token.IntLit},
		{"above uint128", "340282366920938463463374607431768211456", token.FlLit},
		{"decimal", "3.14", token.FlLit},
		{"trailing dot", "12.", token.FlLit},
		{"exponent", "1e10", token.FlLit},
		{"upper exponent", "2E3", token.FlLit},
		{"signed exponent", "2.5e-3", token.FlLit},
		{"plus exponent", "6e+2", token.FlLit},
		{"float overflow", "1e400", token.FlLit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := lex(t, tt.input)
			require.Len(t, res.tokens, 2)
			assert.Equal(t, tok(tt.kind, 1, 0, tt.input), res.tokens[0])
			assert.False(t, res.diag.HasEncounteredError())
		})
	}
}

func TestNumberPositionFollowsText(t *testing.T) {
	res := lex(t, "x = 42;\ny = 0.5;")

	expected := []token.Token{
		tok(token.Identifier, 1, 0, "x"),
		tok(token.Operator, 1, 2, "="),
		tok(token.IntLit, 1, 4, "42"),
		sep(1, 6, ';'),
		tok(token.Identifier, 2, 8, "y"),
		tok(token.Operator, 2, 10, "="),
		tok(token.FlLit, 2, 12, "0.5"),
		sep(2, 15, ';'),
		eof(),
	}
	assert.Equal(t, expected, res.tokens)
}

func TestInvalidNumbers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Token
		message  string
	}{
		{
			name:     "two dots",
			input:    "1.2.3",
			expected: []token.Token{eof()},
			message:  `invalid number format "1.2.3" at 1:0`,
		},
		{
			// Only the 0x prefix is special; A is not a decimal digit and
			// ends the number.
			name:     "hex prefix",
			input:    "0x1A",
			expected: []token.Token{tok(token.Identifier, 1, 3, "A"), eof()},
			message:  `invalid number format "0x1" at 1:0`,
		},
		{
			name:     "bare hex prefix",
			input:    "0x",
			expected: []token.Token{eof()},
			message:  `invalid number format "0x" at 1:0`,
		},
		{
			name:     "dangling exponent",
			input:    "9e ",
			expected: []token.Token{eof()},
			message:  `invalid number format "9e" at 1:0`,
		},
		{
			name:     "dangling exponent sign",
			input:    "a 1e+",
			expected: []token.Token{tok(token.Identifier, 1, 0, "a"), eof()},
			message:  `invalid number format "1e+" at 1:2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := lex(t, tt.input)
			assert.Equal(t, tt.expected, res.tokens)
			assert.True(t, res.diag.HasEncounteredError())
			assert.Contains(t, res.errOut.String(), tt.message)
		})
	}
}

func TestSecondExponentEndsNumber(t *testing.T) {
	res := lex(t, "1e5e3")

	expected := []token.Token{
		tok(token.FlLit, 1, 0, "1e5"),
		tok(token.Identifier, 1, 3, "e3"),
		eof(),
	}
	assert.Equal(t, expected, res.tokens)
}

func TestXOnlyAfterLoneZero(t *testing.T) {
	res := lex(t, "10x")

	expected := []token.Token{
		tok(token.IntLit, 1, 0, "10"),
		tok(token.Identifier, 1, 2, "x"),
		eof(),
	}
	assert.Equal(t, expected, res.tokens)
}

func TestClassifyNumber(t *testing.T) {
	tests := []struct {
		text string
		kind token.Kind
		ok   bool
	}{
		{"1", token.IntLit, true},
		{"170141183460469231731687303715884105727", token.IntLit, true},
		{"1.0", token.FlLit, true},
		{"1e-400", token.FlLit, true},
		{"", 0, false},
		{".", 0, false},
		{"0x10", 0, false},
		{"1..", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			kind, ok := classifyNumber(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.kind, kind)
			}
		})
	}
}

func TestInt128Bounds(t *testing.T) {
	assert.True(t, parsesAsUint128("0"))
	assert.False(t, parsesAsUint128("-1"))
	assert.True(t, parsesAsInt128("-170141183460469231731687303715884105728"))
	assert.False(t, parsesAsInt128("-170141183460469231731687303715884105729"))
	assert.False(t, parsesAsInt128("170141183460469231731687303715884105728"))
	assert.False(t, parsesAsUint128("1.5"))
}
