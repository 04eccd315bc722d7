// Copyright 2023 The Vitess Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Modifications Copyright 2025 Supabase, Inc.

// Package debug renders the resolved configuration of a registry.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/multigres/oxilex/go/viperutil"
)

// ConfigData is the dump written by Write.
type ConfigData struct {
	ConfigFile string            `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	Flags      map[string]string `json:"command_line_flags" yaml:"command_line_flags"`
	Config     map[string]any    `json:"viper_config" yaml:"viper_config"`
}

// Collect gathers the flags changed on fs and every setting in reg.
func Collect(reg *viperutil.Registry, fs *pflag.FlagSet) ConfigData {
	data := ConfigData{
		ConfigFile: reg.ConfigFileUsed(),
		Flags:      make(map[string]string),
		Config:     reg.AllSettings(),
	}
	if fs != nil {
		fs.VisitAll(func(flag *pflag.Flag) {
			if flag.Changed {
				data.Flags[flag.Name] = flag.Value.String()
			}
		})
	}
	return data
}

// Write renders the configuration as text (one "key = value" line per
// setting, sorted), json or yaml.
func Write(w io.Writer, reg *viperutil.Registry, fs *pflag.FlagSet, format string) error {
	data := Collect(reg, fs)

	switch strings.ToLower(format) {
	case "", "text":
		keys := make([]string, 0, len(data.Config))
		for k := range data.Config {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, "%s = %v\n", k, data.Config[k]); err != nil {
				return err
			}
		}
		return nil
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown config format %q", format)
	}
}
