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
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/multigres/oxilex/go/servenv"
	"github.com/multigres/oxilex/go/viperutil"
)

// OxilexCommand holds the configuration shared by oxilex commands.
type OxilexCommand struct {
	reg      *viperutil.Registry
	vc       *viperutil.ViperConfig
	lg       *servenv.Logger
	settings *settingsValues
	fs       afero.Fs
}

// GetRootCommand creates the root command reading sources from the OS
// filesystem.
func GetRootCommand() *cobra.Command {
	return NewRootCommand(afero.NewOsFs())
}

// NewRootCommand creates the root command with all subcommands, reading
// and writing files through fs.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	reg := viperutil.NewRegistry()
	oc := &OxilexCommand{
		reg:      reg,
		vc:       viperutil.NewViperConfig(reg),
		lg:       servenv.NewLogger(reg),
		settings: newSettingsValues(reg),
		fs:       fs,
	}

	root := &cobra.Command{
		Use:   "oxilex",
		Short: "Tokenize oxi source files",
		Long: `oxilex turns oxi source files into token streams and reports lexical
errors with the offending source line.

Get started with:
  oxilex lex main.oxi              # Print the tokens of a file
  oxilex lex --format json *.oxi   # Dump tokens of several files as JSON
  oxilex watch main.oxi            # Re-lex whenever the file changes

Configuration:
  oxilex searches for a config file named 'oxilex' with a supported extension
  (.yaml, .yml, .json, .toml) in the directories given by --config-path, or
  reads the file given by --config-file. Every setting can also be given as
  an environment variable prefixed with OXILEX_, for example OXILEX_FORMAT=json.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Silence usage for application errors, but allow it for flag errors
			// This gets called after flag parsing, so flag errors will still show usage
			cmd.SilenceUsage = true

			oc.lg.SetOutputs(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err := oc.vc.LoadConfig(oc.reg); err != nil {
				return err
			}
			oc.lg.SetupLogging()
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return oc.lg.Close()
		},
	}

	flags := root.PersistentFlags()
	oc.vc.RegisterFlags(flags)
	oc.lg.RegisterFlags(flags)
	oc.settings.RegisterFlags(flags)

	AddLexCommand(root, oc)
	AddWatchCommand(root, oc)
	AddConfigCommand(root, oc)
	AddVersionCommand(root)

	return root
}
