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
	"slices"
	"strings"

	"github.com/multigres/oxilex/go/token"
)

// scanWord consumes a run of letters, numbers and underscores and emits it
// as a DataType, Keyword or Identifier.
func (l *Lexer) scanWord() {
	start := l.cursor
	for {
		c, ok := l.current()
		if !ok || !isWordCont(c) {
			break
		}
		l.advance()
	}

	text := string(l.src[start:l.cursor])
	l.emit(token.NewToken(token.Classify(text), l.line, start, text))
}

// scanNumber consumes a numeric literal. Digits and dots are taken
// greedily, an x only directly after a lone 0, and the first e or E
// together with an optional sign. The text is then classified by
// classifyNumber; text that is not a number at all is reported and dropped.
func (l *Lexer) scanNumber() {
	if !slices.ContainsFunc(l.src[l.cursor:], isNumberPart) {
		return
	}

	var sb strings.Builder
	sawExponent := false
scan:
	for {
		c, ok := l.current()
		if !ok {
			break
		}
		switch {
		case isNumberPart(c):
			sb.WriteRune(c)
			l.advance()
		case c == 'x' && sb.String() == "0":
			sb.WriteRune(c)
			l.advance()
		case (c == 'e' || c == 'E') && !sawExponent:
			sawExponent = true
			sb.WriteRune(c)
			l.advance()
			if sign, ok := l.current(); ok && (sign == '+' || sign == '-') {
				sb.WriteRune(sign)
				l.advance()
			}
		default:
			break scan
		}
	}

	text := sb.String()
	pos := l.cursor - len(text)
	kind, ok := classifyNumber(text)
	if !ok {
		l.errorf(l.line, pos, "invalid number format %q at %d:%d", text, l.line, pos)
		return
	}
	l.emit(token.NewToken(kind, l.line, pos, text))
}

// scanOperator emits >>, <<, or any operator character followed by = as a
// two character operator, and everything else as a single character.
func (l *Lexer) scanOperator() {
	c, _ := l.current()
	next, ok := l.peek()
	if ok && ((c == '>' && next == '>') || (c == '<' && next == '<') || next == '=') {
		l.emit(token.NewToken(token.Operator, l.line, l.cursor, string([]rune{c, next})))
		l.advance()
		l.advance()
		return
	}

	l.emit(token.NewToken(token.Operator, l.line, l.cursor, string(c)))
	l.advance()
}
