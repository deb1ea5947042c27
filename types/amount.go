// Copyright 2026 Blink Labs Software
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

package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// MicroCcdPerCcd is the number of micro-CCD in one CCD
const MicroCcdPerCcd = 1_000_000

var maxMicroCcd = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)

// CcdAmount is an amount of CCD, counted in micro-CCD
type CcdAmount uint64

// NewCcdAmountFromCcd converts a (possibly fractional) CCD amount to micro-CCD. The
// amount must be non-negative and have at most 6 decimal places
func NewCcdAmountFromCcd(ccd decimal.Decimal) (CcdAmount, error) {
	if ccd.IsNegative() {
		return 0, errors.New("CCD amount cannot be negative")
	}
	micro := ccd.Shift(6)
	if !micro.Equal(micro.Truncate(0)) {
		return 0, fmt.Errorf(
			"CCD amount %s has more than 6 decimal places",
			ccd.String(),
		)
	}
	if micro.GreaterThan(maxMicroCcd) {
		return 0, fmt.Errorf("CCD amount %s is too large", ccd.String())
	}
	return CcdAmount(micro.BigInt().Uint64()), nil
}

// ParseCcdAmount parses a decimal CCD string such as "12.5"
func ParseCcdAmount(ccd string) (CcdAmount, error) {
	d, err := decimal.NewFromString(ccd)
	if err != nil {
		return 0, fmt.Errorf("invalid CCD amount %q: %w", ccd, err)
	}
	return NewCcdAmountFromCcd(d)
}

// MicroCcd returns the amount in micro-CCD
func (a CcdAmount) MicroCcd() uint64 {
	return uint64(a)
}

// Ccd returns the amount in CCD
func (a CcdAmount) Ccd() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -6)
}

// String returns the amount in micro-CCD
func (a CcdAmount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// MarshalJSON encodes the micro-CCD amount as a string, which avoids precision loss in
// JSON consumers that use doubles
func (a CcdAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *CcdAmount) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	v, err := strconv.ParseUint(tmp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid micro-CCD amount %q: %w", tmp, err)
	}
	*a = CcdAmount(v)
	return nil
}

// Energy is the unit of execution cost of a transaction
type Energy uint64

// SequenceNumber is the per-account transaction counter (nonce)
type SequenceNumber uint64
