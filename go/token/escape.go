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

package token

import (
	"fmt"
	"strings"
)

// Escape re-encodes a decoded string literal body so that it can be placed
// back between double quotes. Characters outside the Basic Multilingual
// Plane cannot be written as a four digit \u escape and are kept as is.
// Hex digits are always written in lowercase, so a body spelled \u001B
// comes back as \u001b.
func Escape(decoded string) string {
	var sb strings.Builder
	sb.Grow(len(decoded))
	for _, r := range decoded {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || (r >= 0x7f && r <= 0xffff):
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Quote wraps Escape(decoded) in double quotes.
func Quote(decoded string) string {
	return `"` + Escape(decoded) + `"`
}
