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

// oxilex tokenizes oxi source files and reports lexical errors.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/multigres/oxilex/go/cmd/oxilex/command"
)

func main() {
	if err := command.GetRootCommand().Execute(); err != nil {
		// Lexical errors were already reported by the diagnostics.
		if !errors.Is(err, command.ErrLexicalErrors) {
			slog.Error("Command execution failed", "error", err)
		}
		os.Exit(1)
	}
}
