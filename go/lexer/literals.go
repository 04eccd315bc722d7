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
	"strings"

	"github.com/multigres/oxilex/go/token"
)

// stringUnicodeDigits is the exact number of hex digits a \u escape takes
// inside a string literal. Character literals read a run of any length.
const stringUnicodeDigits = 4

// simpleEscape maps the character after a backslash to its decoded value.
// n, r and t decode to the letters themselves, not to control characters;
// existing oxi sources depend on that.
func simpleEscape(c rune) (rune, bool) {
	switch c {
	case '\\', '\'', '"', 'n', 'r', 't':
		return c, true
	default:
		return 0, false
	}
}

// scanString consumes a double-quoted literal and emits its decoded body.
// Reaching the end of input closes the literal, with a diagnostic.
func (l *Lexer) scanString() {
	line, pos := l.line, l.cursor
	l.advance()

	var sb strings.Builder
	terminated := false
	for {
		c, ok := l.current()
		if !ok {
			break
		}
		if c == '"' {
			l.advance()
			terminated = true
			break
		}
		if c == '\\' {
			l.scanStringEscape(&sb)
			continue
		}
		if c == '\n' {
			l.line++
		}
		sb.WriteRune(c)
		l.advance()
	}

	if !terminated {
		l.errorf(line, pos, "unterminated string literal starting at %d:%d", line, pos)
	}
	l.emit(token.NewToken(token.StringLit, line, pos, sb.String()))
}

// scanStringEscape decodes one escape inside a string. Malformed escapes are
// reported and contribute nothing to the literal.
func (l *Lexer) scanStringEscape(sb *strings.Builder) {
	escPos := l.cursor
	l.advance()

	c, ok := l.current()
	if !ok {
		l.errorf(l.line, escPos, "unterminated escape sequence")
		return
	}
	l.advance()

	if v, ok := simpleEscape(c); ok {
		sb.WriteRune(v)
		return
	}

	switch c {
	case 'u':
		hex := l.takeHex(stringUnicodeDigits)
		if len(hex) < stringUnicodeDigits {
			l.errorf(l.line, escPos, "invalid unicode sequence: expected %d hex digits, found %q",
				stringUnicodeDigits, hex)
			return
		}
		r, err := decodeCodepoint(hex)
		if err != nil {
			l.errorf(l.line, escPos, "invalid unicode sequence: %v", err)
			return
		}
		sb.WriteRune(r)
	case '\n':
		l.errorf(l.line, escPos, "invalid escape sequence %s", quoteChar(c))
		l.line++
	default:
		l.errorf(l.line, escPos, "invalid escape sequence %s", quoteChar(c))
	}
}

// takeHex consumes up to limit hex digits; limit < 0 means no limit.
func (l *Lexer) takeHex(limit int) string {
	var sb strings.Builder
	for n := 0; limit < 0 || n < limit; n++ {
		c, ok := l.current()
		if !ok || !isHexDigit(c) {
			break
		}
		sb.WriteRune(c)
		l.advance()
	}
	return sb.String()
}

// scanChar consumes a single-quoted literal holding exactly one character.
// On any error nothing is emitted.
func (l *Lexer) scanChar() {
	line, pos := l.line, l.cursor
	l.advance()

	c, ok := l.current()
	if !ok {
		l.errorf(line, pos, "unterminated character literal")
		return
	}

	var value rune
	switch c {
	case '\'':
		l.advance()
		l.errorf(line, pos, "empty character literal")
		return
	case '\\':
		if value, ok = l.scanCharEscape(); !ok {
			l.skipCharClose()
			return
		}
	default:
		if c == '\n' {
			l.line++
		}
		value = c
		l.advance()
	}

	if closing, ok := l.current(); !ok || closing != '\'' {
		if l.skipToCharClose() {
			l.errorf(line, pos, "character literal holds more than one character")
		} else {
			l.errorf(line, pos, "unterminated character literal")
		}
		return
	}
	l.advance()
	l.emit(token.NewCharToken(token.CharLit, line, pos, value))
}

// scanCharEscape decodes the escape at the cursor. Unlike strings, \u takes
// every hex digit that follows.
func (l *Lexer) scanCharEscape() (rune, bool) {
	escPos := l.cursor
	l.advance()

	c, ok := l.current()
	if !ok {
		l.errorf(l.line, escPos, "unterminated escape sequence")
		return 0, false
	}
	l.advance()

	if v, ok := simpleEscape(c); ok {
		return v, true
	}
	if c != 'u' {
		if c == '\n' {
			l.line++
		}
		l.errorf(l.line, escPos, "invalid escape sequence %s", quoteChar(c))
		return 0, false
	}

	hex := l.takeHex(-1)
	r, err := decodeCodepoint(hex)
	if err != nil {
		l.errorf(l.line, escPos, "invalid unicode sequence: %v", err)
		return 0, false
	}
	return r, true
}

// skipCharClose drops the closing quote of a literal whose body was bad, so
// the quote does not open a new literal.
func (l *Lexer) skipCharClose() {
	if c, ok := l.current(); ok && c == '\'' {
		l.advance()
	}
}

// skipToCharClose moves past the next quote on the current line, dropping an
// overlong literal body. It reports false and leaves the cursor alone when
// the line has no closing quote.
func (l *Lexer) skipToCharClose() bool {
	for i := l.cursor; i < len(l.src) && l.src[i] != '\n'; i++ {
		if l.src[i] == '\'' {
			l.cursor = i + 1
			return true
		}
	}
	return false
}
