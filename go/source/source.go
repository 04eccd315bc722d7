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

// Package source loads oxi source files for lexing.
package source

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/multigres/oxilex/go/diagnostics"
	"github.com/multigres/oxilex/go/lexer"
	"github.com/multigres/oxilex/go/token"
)

// ErrInvalidUTF8 is returned for files that are not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("source is not valid UTF-8")

// File is a loaded source file.
type File struct {
	Name  string
	Text  string
	runes []rune
}

// Load reads path from fs. A missing or unreadable file is an error the
// caller should treat as fatal for that file; errors.Is(err, fs.ErrNotExist)
// holds for missing files.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("failed to read source file %s: %w", path, ErrInvalidUTF8)
	}
	return FromString(path, string(data)), nil
}

// FromString wraps in-memory text as a File.
func FromString(name, text string) *File {
	return &File{Name: name, Text: text}
}

// Runes returns the text decoded into characters. Positions reported by
// the lexer index into this slice.
func (f *File) Runes() []rune {
	if f.runes == nil {
		f.runes = []rune(f.Text)
	}
	return f.runes
}

// Lex runs a fresh lexer over the file, reporting to diag.
func (f *File) Lex(diag *diagnostics.State) []token.Token {
	return lexer.NewFromRunes(f.Name, f.Runes(), diag).Lex()
}
