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

// DataTypes lists the primitive type names, in declaration order.
var DataTypes = [15]string{
	"u8", "u16", "u32", "u64", "i8", "i16", "i32", "i64",
	"f32", "f64", "u128", "i128", "f128", "char", "bool",
}

// Keywords lists the reserved words, in declaration order.
var Keywords = [18]string{
	"if", "elif", "else", "while", "for", "as", "ret", "true", "false",
	"struct", "sync", "enum", "void", "volatile", "import", "break", "continue",
	"match",
}

var (
	dataTypeSet = make(map[string]struct{}, len(DataTypes))
	keywordSet  = make(map[string]struct{}, len(Keywords))
)

func init() {
	for _, s := range DataTypes {
		dataTypeSet[s] = struct{}{}
	}
	for _, s := range Keywords {
		keywordSet[s] = struct{}{}
	}
}

// IsDataType reports whether word is a primitive type name.
func IsDataType(word string) bool {
	_, ok := dataTypeSet[word]
	return ok
}

// IsKeyword reports whether word is a reserved word.
func IsKeyword(word string) bool {
	_, ok := keywordSet[word]
	return ok
}

// Classify returns DataType, Keyword or Identifier for an identifier-like
// word. Data types take precedence over keywords.
func Classify(word string) Kind {
	switch {
	case IsDataType(word):
		return DataType
	case IsKeyword(word):
		return Keyword
	default:
		return Identifier
	}
}
