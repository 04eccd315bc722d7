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

package viperutil

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Value is a typed configuration value registered to a Registry.
type Value[T any] interface {
	Key() string
	Get() T
	Set(v T)
	Default() T
	// Flag returns the flag this value binds to in fs, or nil when the
	// value has no flag.
	Flag(fs *pflag.FlagSet) (*pflag.Flag, error)
	bind(fs *pflag.FlagSet) error
}

// Options configures a Value.
type Options[T any] struct {
	Default  T
	FlagName string
	EnvVars  []string
	// GetFunc builds the getter used to read the value back from viper.
	// When nil, a getter is chosen from T.
	GetFunc func(v *viper.Viper) func(key string) T
}

type static[T any] struct {
	key      string
	flagName string
	reg      *Registry
	get      func(key string) T

	DefaultVal T
}

// Configure registers key in reg and returns a Value reading it.
func Configure[T any](reg *Registry, key string, opts Options[T]) Value[T] {
	reg.static.SetDefault(key, opts.Default)

	if len(opts.EnvVars) > 0 {
		vars := append([]string{key}, opts.EnvVars...)
		if err := reg.static.BindEnv(vars...); err != nil {
			slog.Warn("failed to bind environment variables", "key", key, "err", err)
		}
	}

	getFunc := opts.GetFunc
	if getFunc == nil {
		getFunc = getFuncForType[T]
	}

	return &static[T]{
		key:        key,
		flagName:   opts.FlagName,
		reg:        reg,
		get:        getFunc(reg.static),
		DefaultVal: opts.Default,
	}
}

func (val *static[T]) Key() string { return val.key }
func (val *static[T]) Get() T      { return val.get(val.key) }
func (val *static[T]) Set(v T)     { val.reg.static.Set(val.key, v) }
func (val *static[T]) Default() T  { return val.DefaultVal }

func (val *static[T]) Flag(fs *pflag.FlagSet) (*pflag.Flag, error) {
	if val.flagName == "" {
		return nil, nil
	}
	flag := fs.Lookup(val.flagName)
	if flag == nil {
		return nil, fmt.Errorf("flag %s for key %s is not defined", val.flagName, val.key)
	}
	return flag, nil
}

func (val *static[T]) bind(fs *pflag.FlagSet) error {
	flag, err := val.Flag(fs)
	if err != nil || flag == nil {
		return err
	}
	return val.reg.static.BindPFlag(val.key, flag)
}

// BindFlags binds each value to its flag in fs. Flags must already be
// defined on fs.
func BindFlags(fs *pflag.FlagSet, values ...interface{ bind(*pflag.FlagSet) error }) {
	for _, v := range values {
		if err := v.bind(fs); err != nil {
			slog.Warn("failed to bind flag", "err", err)
		}
	}
}

// getFuncForType picks the viper getter matching T. Types viper has no
// direct getter for are decoded through UnmarshalKey with the registry's
// decode hooks.
func getFuncForType[T any](v *viper.Viper) func(key string) T {
	var zero T
	var f any
	switch any(zero).(type) {
	case string:
		f = v.GetString
	case bool:
		f = v.GetBool
	case int:
		f = v.GetInt
	case int64:
		f = v.GetInt64
	case float64:
		f = v.GetFloat64
	case []string:
		f = v.GetStringSlice
	case time.Duration:
		f = v.GetDuration
	default:
		return func(key string) T {
			var out T
			if err := v.UnmarshalKey(key, &out, viper.DecodeHook(decodeHook())); err != nil {
				slog.Warn("failed to unmarshal config value", "key", key, "err", err)
				return zero
			}
			return out
		}
	}
	return f.(func(string) T)
}
