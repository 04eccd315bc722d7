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

package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/multigres/oxilex/go/diagnostics"
	"github.com/multigres/oxilex/go/source"
	"github.com/multigres/oxilex/go/token"
	"github.com/multigres/oxilex/go/tokenio"
)

// ErrLexicalErrors is returned when at least one file had lexical errors.
// The errors themselves have already been printed as diagnostics.
var ErrLexicalErrors = errors.New("lexical errors found")

// AddLexCommand adds the lex subcommand to root.
func AddLexCommand(root *cobra.Command, oc *OxilexCommand) {
	root.AddCommand(&cobra.Command{
		Use:   "lex FILE...",
		Short: "Print the tokens of one or more source files",
		Long: `Lex each file and print its token stream in the selected format.

Files are lexed concurrently, up to --parallelism at a time. Diagnostics are
written to stderr in argument order. The command fails if a file cannot be
read or contains lexical errors; tokens are still printed for every file
that could be read.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := oc.settings.Resolve()
			if err != nil {
				return err
			}
			return oc.runLex(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), settings, args)
		},
	})
}

// lexResult is the outcome of lexing one file. Diagnostics are buffered so
// concurrent files never interleave their reports.
type lexResult struct {
	name     string
	tokens   []token.Token
	report   bytes.Buffer
	errCount int
	loadErr  error
}

func (oc *OxilexCommand) runLex(ctx context.Context, stdout, stderr io.Writer, settings Settings, files []string) error {
	results, err := lexFiles(ctx, oc.fs, files, settings.Parallelism, settings.colorEnabled(stderr))
	if err != nil {
		return err
	}

	var loadErrs []error
	var streams []tokenio.File
	failed := 0
	for _, res := range results {
		if _, err := res.report.WriteTo(stderr); err != nil {
			return err
		}
		if res.loadErr != nil {
			fmt.Fprintf(stderr, "error: %v\n", res.loadErr)
			loadErrs = append(loadErrs, res.loadErr)
			continue
		}
		if res.errCount > 0 {
			failed++
		}
		streams = append(streams, tokenio.File{Name: res.name, Tokens: res.tokens})
	}

	if err := oc.writeTokens(stdout, settings, streams); err != nil {
		return err
	}

	if len(loadErrs) > 0 {
		return errors.Join(loadErrs...)
	}
	if failed > 0 {
		return fmt.Errorf("%w in %d of %d files", ErrLexicalErrors, failed, len(files))
	}
	return nil
}

// lexFiles lexes every file with its own lexer and diagnostic session,
// at most parallelism at a time. Results are returned in input order.
func lexFiles(ctx context.Context, fs afero.Fs, files []string, parallelism int, color bool) ([]*lexResult, error) {
	results := make([]*lexResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = lexFile(fs, name, color)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func lexFile(fs afero.Fs, name string, color bool) *lexResult {
	res := &lexResult{name: name}

	f, err := source.Load(fs, name)
	if err != nil {
		res.loadErr = err
		return res
	}

	diag := diagnostics.New(name,
		diagnostics.WithOutput(&res.report, &res.report),
		diagnostics.WithColor(color),
	)
	res.tokens = f.Lex(diag)
	res.errCount = diag.ErrorCount()

	slog.Debug("lexed source",
		"file", name,
		"tokens", len(res.tokens),
		"errors", diag.HasEncounteredError(),
	)
	return res
}

// writeTokens prints one stream as is and several streams labelled by
// file, either to stdout or atomically to --output.
func (oc *OxilexCommand) writeTokens(stdout io.Writer, settings Settings, streams []tokenio.File) error {
	if len(streams) == 0 {
		return nil
	}

	var buf bytes.Buffer
	var err error
	if len(streams) == 1 {
		err = tokenio.Encode(&buf, settings.Format, streams[0].Tokens)
	} else {
		err = tokenio.EncodeFiles(&buf, settings.Format, streams)
	}
	if err != nil {
		return err
	}

	if settings.Output == "" || settings.Output == "-" {
		_, err = buf.WriteTo(stdout)
		return err
	}
	if err := tokenio.WriteFile(oc.fs, settings.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write tokens to %s: %w", settings.Output, err)
	}
	slog.Info("wrote tokens", "output", settings.Output, "files", len(streams))
	return nil
}
