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
	"github.com/spf13/cobra"

	"github.com/multigres/oxilex/go/viperutil/debug"
)

// AddConfigCommand adds the config subcommand, which prints the settings
// resolved from defaults, config file, environment and flags.
func AddConfigCommand(root *cobra.Command, oc *OxilexCommand) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("dump-format")
			return debug.Write(cmd.OutOrStdout(), oc.reg, cmd.Flags(), format)
		},
	}
	cmd.Flags().String("dump-format", "text", "Format of the dump (text, json, yaml)")
	root.AddCommand(cmd)
}
