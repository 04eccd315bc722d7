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
	"fmt"
	"strconv"
)

const maxCodepoint = 0x10FFFF

// isUTF16Surrogate reports code points reserved for UTF-16 surrogate
// halves. They are never valid scalar values on their own.
func isUTF16Surrogate(c rune) bool {
	return c >= 0xD800 && c <= 0xDFFF
}

// isValidScalar reports whether c is a Unicode scalar value.
func isValidScalar(c rune) bool {
	return c >= 0 && c <= maxCodepoint && !isUTF16Surrogate(c)
}

// decodeCodepoint turns a run of hex digits into a scalar value.
func decodeCodepoint(hex string) (rune, error) {
	if hex == "" {
		return 0, fmt.Errorf("missing hex digits")
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || v > maxCodepoint {
		return 0, fmt.Errorf("code point 0x%s is out of range", hex)
	}
	c := rune(v)
	if isUTF16Surrogate(c) {
		return 0, fmt.Errorf("code point U+%04X is a surrogate", c)
	}
	return c, nil
}
