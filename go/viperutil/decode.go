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

package viperutil

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
)

var flagValueType = reflect.TypeOf((*pflag.Value)(nil)).Elem()

// decodeHook is shared by Decode and the fallback Value getter.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		decodeFlagValue,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// decodeFlagValue converts strings into any type whose pointer implements
// pflag.Value, so enum-like settings are validated by their own Set.
func decodeFlagValue(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to == reflect.TypeOf("") {
		return data, nil
	}
	if !reflect.PointerTo(to).Implements(flagValueType) {
		return data, nil
	}

	ptr := reflect.New(to)
	if err := ptr.Interface().(pflag.Value).Set(reflect.ValueOf(data).String()); err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", to, err)
	}
	return ptr.Elem().Interface(), nil
}

// Decode copies the registry's resolved settings into out, which must be a
// pointer to a struct whose fields carry mapstructure tags matching the
// registered keys.
func Decode(reg *Registry, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeHook(),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := dec.Decode(reg.AllSettings()); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}
