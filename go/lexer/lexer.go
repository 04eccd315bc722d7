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

// Package lexer turns oxi source text into a flat token stream.
//
// The lexer never fails: malformed input is reported through a
// diagnostics.State and scanning carries on from the next character, so the
// returned stream always ends with exactly one Eof token. Token positions
// are absolute character offsets into the source, not columns.
package lexer

import (
	"fmt"

	"github.com/multigres/oxilex/go/diagnostics"
	"github.com/multigres/oxilex/go/token"
)

// Lexer is a single-use scanner over one source buffer.
type Lexer struct {
	fileName string
	src      []rune

	line   int // 1-based, bumped only when a newline is consumed
	cursor int // absolute character index into src

	tokens []token.Token
	diag   *diagnostics.State
	done   bool
}

// New creates a lexer for src. If diag is nil a session writing to the
// standard streams is created.
func New(fileName, src string, diag *diagnostics.State) *Lexer {
	return NewFromRunes(fileName, []rune(src), diag)
}

// NewFromRunes is New for an already decoded buffer. The lexer does not
// modify src.
func NewFromRunes(fileName string, src []rune, diag *diagnostics.State) *Lexer {
	if diag == nil {
		diag = diagnostics.New(fileName)
	}
	return &Lexer{
		fileName: fileName,
		src:      src,
		line:     1,
		diag:     diag,
	}
}

// Tokenize lexes src in one call.
func Tokenize(fileName, src string, diag *diagnostics.State) []token.Token {
	return New(fileName, src, diag).Lex()
}

// Diagnostics returns the session the lexer reports to.
func (l *Lexer) Diagnostics() *diagnostics.State {
	return l.diag
}

// current returns the character under the cursor.
func (l *Lexer) current() (rune, bool) {
	return l.at(l.cursor)
}

// peek returns the character after the cursor.
func (l *Lexer) peek() (rune, bool) {
	return l.at(l.cursor + 1)
}

func (l *Lexer) at(i int) (rune, bool) {
	if i < 0 || i >= len(l.src) {
		return 0, false
	}
	return l.src[i], true
}

// advance moves the cursor one character forward. Line tracking is left to
// the caller.
func (l *Lexer) advance() {
	l.cursor++
}

func (l *Lexer) emit(t token.Token) {
	l.tokens = append(l.tokens, t)
}

func (l *Lexer) errorf(line, pos int, format string, args ...any) {
	l.diag.Errorf(line, pos, l.src, format, args...)
}

// Lex scans the whole buffer and returns the token stream, terminated by a
// single Eof. The lexer is consumed; calling Lex again yields a stream that
// holds only Eof.
func (l *Lexer) Lex() []token.Token {
	if l.done {
		return []token.Token{token.NewEOF()}
	}
	l.done = true

	for l.cursor < len(l.src) {
		c := l.src[l.cursor]
		switch {
		case isWordStart(c):
			l.scanWord()
		case isDigit(c):
			l.scanNumber()
		case isSeparator(c):
			l.emit(token.NewCharToken(token.Seperator, l.line, l.cursor, c))
			l.advance()
		case isOperator(c):
			l.scanOperator()
		case isBlank(c):
			l.advance()
		case c == '\n':
			l.line++
			l.advance()
		case c == '"':
			l.scanString()
		case c == '\'':
			l.scanChar()
		default:
			l.errorf(l.line, l.cursor, "unexpected character %s found at %d:%d of %s",
				quoteChar(c), l.line, l.cursor, l.fileName)
			l.emit(token.NewCharToken(token.Seperator, l.line, l.cursor, c))
			l.advance()
		}
	}

	l.emit(token.NewEOF())
	tokens := l.tokens
	l.tokens = nil
	return tokens
}

func quoteChar(c rune) string {
	return fmt.Sprintf("%q", c)
}
