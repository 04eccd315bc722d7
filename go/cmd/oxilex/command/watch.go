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
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/multigres/oxilex/go/servenv"
	"github.com/multigres/oxilex/go/tokenio"
	"github.com/multigres/oxilex/go/watch"
)

// AddWatchCommand adds the watch subcommand to root.
func AddWatchCommand(root *cobra.Command, oc *OxilexCommand) {
	root.AddCommand(&cobra.Command{
		Use:   "watch FILE...",
		Short: "Re-lex files whenever they change",
		Long: `Lex each file once, then again every time it is written, printing the
tokens and diagnostics of the changed file. Runs until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := oc.settings.Resolve()
			if err != nil {
				return err
			}
			ctx, stop := servenv.SignalContext(cmd.Context())
			defer stop()
			return oc.runWatch(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), settings, args)
		},
	})
}

func (oc *OxilexCommand) runWatch(ctx context.Context, stdout, stderr io.Writer, settings Settings, files []string) error {
	w := watch.New(watch.WithDebounce(settings.Debounce), watch.WithLogger(slog.Default()))
	color := settings.colorEnabled(stderr)

	slog.Info("watching sources", "files", files)
	return w.Run(ctx, files, func(path string) {
		res := lexFile(oc.fs, path, color)
		_, _ = res.report.WriteTo(stderr)
		if res.loadErr != nil {
			fmt.Fprintf(stderr, "error: %v\n", res.loadErr)
			return
		}
		stream := []tokenio.File{{Name: res.name, Tokens: res.tokens}}
		if err := oc.writeTokens(stdout, settings, stream); err != nil {
			slog.Error("failed to write tokens", "file", path, "err", err)
		}
	})
}
