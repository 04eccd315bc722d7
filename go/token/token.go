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

// Package token defines the lexical units produced by the oxi lexer.
package token

import (
	"fmt"
	"strings"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	DataType Kind = iota
	Keyword
	Operator
	Identifier
	IntLit
	FlLit
	StringLit
	CharLit
	// Seperator also stands in for unrecognized characters, so a stream
	// containing bad input is still total.
	Seperator
	Eof
)

var kindNames = [...]string{
	DataType:   "DataType",
	Keyword:    "Keyword",
	Operator:   "Operator",
	Identifier: "Identifier",
	IntLit:     "IntLit",
	FlLit:      "FlLit",
	StringLit:  "StringLit",
	CharLit:    "CharLit",
	Seperator:  "Seperator",
	Eof:        "Eof",
}

// String returns the kind name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// HasCharPayload reports whether tokens of this kind carry a single rune
// rather than text.
func (k Kind) HasCharPayload() bool {
	return k == CharLit || k == Seperator
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown token kind %q", name)
}

// Token is one lexical unit. Line and Pos form the shared header: Line is
// the 1-based line of the first character and Pos is the absolute character
// offset of that character in the whole source buffer (not a column).
// Text is the payload of textual kinds, Char the payload of CharLit and
// Seperator. An Eof token carries no position.
type Token struct {
	Kind Kind
	Line int
	Pos  int
	Text string
	Char rune
}

// NewToken creates a token with a textual payload.
func NewToken(kind Kind, line, pos int, text string) Token {
	return Token{Kind: kind, Line: line, Pos: pos, Text: text}
}

// NewCharToken creates a CharLit or Seperator token.
func NewCharToken(kind Kind, line, pos int, c rune) Token {
	return Token{Kind: kind, Line: line, Pos: pos, Char: c}
}

// NewEOF creates the end-of-input sentinel.
func NewEOF() Token {
	return Token{Kind: Eof}
}

// Lexeme returns the token payload as a string.
func (t Token) Lexeme() string {
	switch {
	case t.Kind == Eof:
		return ""
	case t.Kind.HasCharPayload():
		return string(t.Char)
	default:
		return t.Text
	}
}

// IsEOF reports whether t is the end-of-input sentinel.
func (t Token) IsEOF() bool {
	return t.Kind == Eof
}

// Equal compares two tokens including their positions.
func (t Token) Equal(o Token) bool {
	return t == o
}

// String renders the token as Kind("lexeme")@(line,pos).
func (t Token) String() string {
	switch {
	case t.Kind == Eof:
		return "Eof"
	case t.Kind.HasCharPayload():
		return fmt.Sprintf("%s(%q)@(%d,%d)", t.Kind, t.Char, t.Line, t.Pos)
	default:
		return fmt.Sprintf("%s(%q)@(%d,%d)", t.Kind, t.Text, t.Line, t.Pos)
	}
}

// Format renders a whole token stream, one token per line.
func Format(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
