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

// Package viperutil wraps viper with typed, registry-scoped configuration
// values that can be bound to flags, environment variables and a config
// file.
package viperutil

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when it is looked up in the
// environment, so log-level is read from OXILEX_LOG_LEVEL.
const EnvPrefix = "OXILEX"

// Registry owns the viper instance every Value registered to it reads
// from. Each command gets its own Registry so tests never share state.
type Registry struct {
	static *viper.Viper
}

// Bindable represents the methods needed to bind a Value to a registry.
type Bindable interface {
	BindEnv(vars ...string) error
	BindPFlag(key string, flag *pflag.Flag) error
	SetDefault(key string, value any)
	Set(key string, value any)
}

var _ Bindable = (*viper.Viper)(nil)

func NewRegistry() *Registry {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return &Registry{static: v}
}

// Combined returns a detached copy of every setting currently visible
// through the registry, with the config file that was used, if any.
func (reg *Registry) Combined() *viper.Viper {
	v := viper.New()
	_ = v.MergeConfigMap(reg.static.AllSettings())

	v.SetConfigFile(reg.static.ConfigFileUsed())
	return v
}

// AllSettings returns the resolved value of every registered key, keyed
// by its full dotted name.
func (reg *Registry) AllSettings() map[string]any {
	settings := make(map[string]any)
	for _, key := range reg.static.AllKeys() {
		settings[key] = reg.static.Get(key)
	}
	return settings
}

// ConfigFileUsed returns the config file read by LoadConfig, if any.
func (reg *Registry) ConfigFileUsed() string {
	return reg.static.ConfigFileUsed()
}
