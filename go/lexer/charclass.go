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

import "unicode"

// charClass holds classification flags for an ASCII character.
type charClass uint8

const (
	classDigit     charClass = 1 << iota // 0-9
	classWordStart                       // a-z, A-Z, _
	classHexDigit                        // 0-9, a-f, A-F
	classSeparator                       // ; , { } [ ] ( )
	classOperator                        // > < = ! ^ | & + - * / %
	classBlank                           // space, tab, carriage return
)

// charClassTable is indexed by ASCII code; everything above 0x7f is
// classified through the unicode package instead.
var charClassTable [128]charClass

func init() {
	for c := '0'; c <= '9'; c++ {
		charClassTable[c] |= classDigit | classHexDigit
	}
	for c := 'a'; c <= 'z'; c++ {
		charClassTable[c] |= classWordStart
		charClassTable[c-'a'+'A'] |= classWordStart
		if c <= 'f' {
			charClassTable[c] |= classHexDigit
			charClassTable[c-'a'+'A'] |= classHexDigit
		}
	}
	charClassTable['_'] |= classWordStart

	for _, c := range ";,{}[]()" {
		charClassTable[c] |= classSeparator
	}
	for _, c := range "><=!^|&+-*/%" {
		charClassTable[c] |= classOperator
	}
	for _, c := range " \t\r" {
		charClassTable[c] |= classBlank
	}
}

func hasClass(c rune, class charClass) bool {
	return c >= 0 && c < 128 && charClassTable[c]&class != 0
}

// isDigit reports ASCII decimal digits only.
func isDigit(c rune) bool { return hasClass(c, classDigit) }

// isWordStart reports characters that begin a word. Only ASCII letters and
// underscore qualify; a non-ASCII letter on its own is unexpected input.
func isWordStart(c rune) bool { return hasClass(c, classWordStart) }

// isWordCont reports characters that continue a word, which includes any
// Unicode letter or number.
func isWordCont(c rune) bool {
	if c < 128 {
		return hasClass(c, classWordStart|classDigit)
	}
	return unicode.IsLetter(c) || unicode.IsNumber(c)
}

func isHexDigit(c rune) bool   { return hasClass(c, classHexDigit) }
func isSeparator(c rune) bool  { return hasClass(c, classSeparator) }
func isOperator(c rune) bool   { return hasClass(c, classOperator) }
func isBlank(c rune) bool      { return hasClass(c, classBlank) }
func isNumberPart(c rune) bool { return isDigit(c) || c == '.' }
