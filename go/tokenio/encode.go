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
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/multigres/oxilex/go/token"
)

// Record is the structured form of a token used by the json and yaml
// encodings. Eof records carry only their kind.
type Record struct {
	Kind   string `yaml:"kind" json:"kind"`
	Line   int    `yaml:"line,omitempty" json:"line,omitempty"`
	Pos    int    `yaml:"pos,omitempty" json:"pos,omitempty"`
	Lexeme string `yaml:"lexeme,omitempty" json:"lexeme,omitempty"`
}

// NewRecord converts a token.
func NewRecord(t token.Token) Record {
	if t.IsEOF() {
		return Record{Kind: t.Kind.String()}
	}
	return Record{Kind: t.Kind.String(), Line: t.Line, Pos: t.Pos, Lexeme: t.Lexeme()}
}

// Encode writes tokens to w in the given format.
func Encode(w io.Writer, format Format, tokens []token.Token) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, token.Format(tokens))
		return err
	case FormatJSON:
		return encodeJSON(w, tokens)
	case FormatYAML:
		return encodeYAML(w, tokens)
	default:
		return fmt.Errorf("unknown output format %q", string(format))
	}
}

func encodeJSON(w io.Writer, tokens []token.Token) error {
	items := make([]any, 0, len(tokens))
	for _, t := range tokens {
		items = append(items, recordFields(NewRecord(t)))
	}
	return writeJSONList(w, items)
}

// writeJSONList marshals items through structpb so the output matches
// what protobuf consumers of the dump expect.
func writeJSONList(w io.Writer, items []any) error {
	list, err := structpb.NewList(items)
	if err != nil {
		return fmt.Errorf("failed to build token list: %w", err)
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func recordFields(r Record) map[string]any {
	fields := map[string]any{"kind": r.Kind}
	if r.Kind == token.Eof.String() {
		return fields
	}
	fields["line"] = r.Line
	fields["pos"] = r.Pos
	fields["lexeme"] = r.Lexeme
	return fields
}

func encodeYAML(w io.Writer, tokens []token.Token) error {
	records := make([]Record, len(tokens))
	for i, t := range tokens {
		records[i] = NewRecord(t)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}
	return enc.Close()
}

// File pairs a token stream with the file it was lexed from.
type File struct {
	Name   string
	Tokens []token.Token
}

type fileRecord struct {
	File   string   `yaml:"file"`
	Tokens []Record `yaml:"tokens"`
}

// EncodeFiles writes several token streams. The text encoding precedes each
// stream with a "# name" line; json and yaml emit a list of
// {file, tokens} objects.
func EncodeFiles(w io.Writer, format Format, files []File) error {
	switch format {
	case FormatText, "":
		for _, f := range files {
			if _, err := fmt.Fprintf(w, "# %s\n", f.Name); err != nil {
				return err
			}
			if err := Encode(w, FormatText, f.Tokens); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		items := make([]any, 0, len(files))
		for _, f := range files {
			toks := make([]any, 0, len(f.Tokens))
			for _, t := range f.Tokens {
				toks = append(toks, recordFields(NewRecord(t)))
			}
			items = append(items, map[string]any{"file": f.Name, "tokens": toks})
		}
		return writeJSONList(w, items)
	case FormatYAML:
		records := make([]fileRecord, len(files))
		for i, f := range files {
			records[i].File = f.Name
			for _, t := range f.Tokens {
				records[i].Tokens = append(records[i].Tokens, NewRecord(t))
			}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to marshal tokens: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", string(format))
	}
}
