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
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/multigres/oxilex/go/diagnostics"
	"github.com/multigres/oxilex/go/tokenio"
	"github.com/multigres/oxilex/go/viperutil"
	"github.com/multigres/oxilex/go/watch"
)

// Settings is the resolved configuration of the lex and watch commands.
type Settings struct {
	Format      tokenio.Format `mapstructure:"format"`
	Color       string         `mapstructure:"color"`
	Output      string         `mapstructure:"output"`
	Parallelism int            `mapstructure:"parallelism"`
	Debounce    time.Duration  `mapstructure:"debounce"`
}

type settingsValues struct {
	reg         *viperutil.Registry
	format      viperutil.Value[string]
	color       viperutil.Value[string]
	output      viperutil.Value[string]
	parallelism viperutil.Value[int]
	debounce    viperutil.Value[time.Duration]
}

func newSettingsValues(reg *viperutil.Registry) *settingsValues {
	return &settingsValues{
		reg: reg,
		format: viperutil.Configure(reg, "format", viperutil.Options[string]{
			Default:  string(tokenio.FormatText),
			FlagName: "format",
		}),
		color: viperutil.Configure(reg, "color", viperutil.Options[string]{
			Default:  "auto",
			FlagName: "color",
		}),
		output: viperutil.Configure(reg, "output", viperutil.Options[string]{
			FlagName: "output",
		}),
		parallelism: viperutil.Configure(reg, "parallelism", viperutil.Options[int]{
			Default:  runtime.NumCPU(),
			FlagName: "parallelism",
		}),
		debounce: viperutil.Configure(reg, "debounce", viperutil.Options[time.Duration]{
			Default:  watch.DefaultDebounce,
			FlagName: "debounce",
		}),
	}
}

func (sv *settingsValues) RegisterFlags(fs *pflag.FlagSet) {
	format := tokenio.Format(sv.format.Default())
	fs.Var(&format, "format", "Token output format (text, json, yaml)")
	fs.String("color", sv.color.Default(), "Colorize diagnostics (auto, always, never)")
	fs.StringP("output", "o", sv.output.Default(), "Write tokens to this file instead of stdout")
	fs.Int("parallelism", sv.parallelism.Default(), "Maximum number of files lexed concurrently")
	fs.Duration("debounce", sv.debounce.Default(), "Quiet period after a change before watch re-lexes a file")
	viperutil.BindFlags(fs, sv.format, sv.color, sv.output, sv.parallelism, sv.debounce)
}

// Resolve decodes and validates the current settings.
func (sv *settingsValues) Resolve() (Settings, error) {
	var s Settings
	if err := viperutil.Decode(sv.reg, &s); err != nil {
		return s, err
	}
	if s.Format == "" {
		s.Format = tokenio.FormatText
	}
	switch strings.ToLower(s.Color) {
	case "auto", "always", "never":
		s.Color = strings.ToLower(s.Color)
	default:
		return s, fmt.Errorf("invalid color mode %q (want auto, always or never)", s.Color)
	}
	if s.Parallelism <= 0 {
		s.Parallelism = runtime.NumCPU()
	}
	if s.Debounce < 0 {
		return s, fmt.Errorf("debounce must not be negative, got %v", s.Debounce)
	}
	return s, nil
}

// colorEnabled decides whether diagnostics written to w are colourised.
func (s Settings) colorEnabled(w io.Writer) bool {
	switch s.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return diagnostics.IsTerminal(w)
	}
}
