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

package tokenio

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/multigres/oxilex/go/token"
)

var sample = []token.Token{
	token.NewToken(token.Keyword, 1, 0, "ret"),
	token.NewCharToken(token.CharLit, 1, 4, 'x'),
	token.NewCharToken(token.Seperator, 1, 7, ';'),
	token.NewEOF(),
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "text, json, yaml")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFlag(t *testing.T) {
	f := FormatText
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&f, "format", "output format")

	require.NoError(t, fs.Parse([]string{"--format", "yaml"}))
	assert.Equal(t, FormatYAML, f)
	assert.Equal(t, "format", fs.Lookup("format").Value.Type())

	assert.Error(t, fs.Parse([]string{"--format", "csv"}))
}

func TestEncodeText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatText, sample))
	assert.Equal(t, "Keyword(\"ret\")@(1,0)\nCharLit('x')@(1,4)\nSeperator(';')@(1,7)\nEof\n", buf.String())
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, sample))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 4)

	assert.Equal(t, map[string]any{"kind": "Keyword", "line": 1.0, "pos": 0.0, "lexeme": "ret"}, got[0])
	assert.Equal(t, map[string]any{"kind": "CharLit", "line": 1.0, "pos": 4.0, "lexeme": "x"}, got[1])
	assert.Equal(t, map[string]any{"kind": "Eof"}, got[3])
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, sample))

	var got []Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	expected := []Record{
		{Kind: "Keyword", Line: 1, Pos: 0, Lexeme: "ret"},
		{Kind: "CharLit", Line: 1, Pos: 4, Lexeme: "x"},
		{Kind: "Seperator", Line: 1, Pos: 7, Lexeme: ";"},
		{Kind: "Eof"},
	}
	assert.Equal(t, expected, got)
}

func TestEncodeUnknownFormat(t *testing.T) {
	assert.Error(t, Encode(&bytes.Buffer{}, Format("csv"), sample))
	assert.Error(t, EncodeFiles(&bytes.Buffer{}, Format("csv"), nil))
}

func TestEncodeFiles(t *testing.T) {
	files := []File{
		{Name: "a.oxi", Tokens: sample[:1]},
		{Name: "b.oxi", Tokens: []token.Token{token.NewEOF()}},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeFiles(&buf, FormatText, files))
		assert.Equal(t, "# a.oxi\nKeyword(\"ret\")@(1,0)\n# b.oxi\nEof\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeFiles(&buf, FormatJSON, files))

		var got []struct {
			File   string           `json:"file"`
			Tokens []map[string]any `json:"tokens"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "a.oxi", got[0].File)
		assert.Equal(t, "ret", got[0].Tokens[0]["lexeme"])
		assert.Equal(t, []map[string]any{{"kind": "Eof"}}, got[1].Tokens)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeFiles(&buf, FormatYAML, files))

		var got []fileRecord
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, []fileRecord{
			{File: "a.oxi", Tokens: []Record{{Kind: "Keyword", Line: 1, Lexeme: "ret"}}},
			{File: "b.oxi", Tokens: []Record{{Kind: "Eof"}}},
		}, got)
	})
}

func TestWriteFile(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, memFs.MkdirAll("/out", 0o755))
	require.NoError(t, afero.WriteFile(memFs, "/out/tokens.txt", []byte("old"), 0o644))

	require.NoError(t, WriteFile(memFs, "/out/tokens.txt", []byte("new"), 0o600))

	data, err := afero.ReadFile(memFs, "/out/tokens.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := memFs.Stat("/out/tokens.txt")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := afero.ReadDir(memFs, "/out")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestWriteFileReadOnly(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/out/tokens.txt", []byte("old"), 0o644))
	ro := afero.NewReadOnlyFs(base)

	err := WriteFile(ro, "/out/tokens.txt", []byte("new"), 0o644)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating temporary file for /out/tokens.txt")

	data, err := afero.ReadFile(base, "/out/tokens.txt")
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}
