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

package lexer

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/multigres/oxilex/go/token"
)

var (
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	maxInt128  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// classifyNumber decides between IntLit and FlLit. Text must first parse as
// a float64 (overflowing to infinity still counts); among those, text that
// also fits a 128-bit integer is an IntLit.
func classifyNumber(text string) (token.Kind, bool) {
	if !parsesAsFloat(text) {
		return 0, false
	}
	if parsesAsUint128(text) || parsesAsInt128(text) {
		return token.IntLit, true
	}
	return token.FlLit, true
}

func parsesAsFloat(text string) bool {
	_, err := strconv.ParseFloat(text, 64)
	if err == nil {
		return true
	}
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)
}

func parseDecimal(text string) (*big.Int, bool) {
	if text == "" {
		return nil, false
	}
	return new(big.Int).SetString(text, 10)
}

func parsesAsUint128(text string) bool {
	n, ok := parseDecimal(text)
	return ok && n.Sign() >= 0 && n.Cmp(maxUint128) <= 0
}

func parsesAsInt128(text string) bool {
	n, ok := parseDecimal(text)
	return ok && n.Cmp(minInt128) >= 0 && n.Cmp(maxInt128) <= 0
}
