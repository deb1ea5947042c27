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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	AccountAddressSize = 32
	// Version byte used by the base58check encoding of account addresses
	AccountAddressVersion byte = 1
	// Accounts have 2^24 aliases which share the first 29 bytes
	accountAddressAliasPrefix = 29

	ContractAddressSize = 16
)

// AccountAddress is the 32 byte address of an account
type AccountAddress [AccountAddressSize]byte

// NewAccountAddress returns an AccountAddress based on the provided base58check string
func NewAccountAddress(addr string) (AccountAddress, error) {
	decoded, version, err := base58.CheckDecode(addr)
	if err != nil {
		return AccountAddress{}, fmt.Errorf(
			"invalid account address %q: %w",
			addr,
			err,
		)
	}
	if version != AccountAddressVersion {
		return AccountAddress{}, fmt.Errorf(
			"invalid account address %q: unexpected version byte %d",
			addr,
			version,
		)
	}
	return NewAccountAddressFromBytes(decoded)
}

// NewAccountAddressFromBytes returns an AccountAddress based on the raw bytes provided
func NewAccountAddressFromBytes(data []byte) (AccountAddress, error) {
	if len(data) != AccountAddressSize {
		return AccountAddress{}, fmt.Errorf(
			"invalid account address length: expected %d bytes, got %d",
			AccountAddressSize,
			len(data),
		)
	}
	return AccountAddress(data), nil
}

func (a AccountAddress) Bytes() []byte {
	return a[:]
}

// String returns the base58check encoding of the address
func (a AccountAddress) String() string {
	return base58.CheckEncode(a[:], AccountAddressVersion)
}

// IsAliasOf reports whether both addresses refer to the same account
func (a AccountAddress) IsAliasOf(other AccountAddress) bool {
	return bytes.Equal(
		a[:accountAddressAliasPrefix],
		other[:accountAddressAliasPrefix],
	)
}

func (a AccountAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *AccountAddress) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	addr, err := NewAccountAddress(tmp)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ContractAddress identifies a smart contract instance
type ContractAddress struct {
	Index    uint64 `json:"index"`
	Subindex uint64 `json:"subindex"`
}

func NewContractAddress(index uint64, subindex uint64) ContractAddress {
	return ContractAddress{Index: index, Subindex: subindex}
}

func (c ContractAddress) String() string {
	return fmt.Sprintf("<%d, %d>", c.Index, c.Subindex)
}

// ParseContractAddress parses the "<index, subindex>" form produced by String
func ParseContractAddress(s string) (ContractAddress, error) {
	var ret ContractAddress
	if _, err := fmt.Sscanf(s, "<%d, %d>", &ret.Index, &ret.Subindex); err != nil {
		return ContractAddress{}, errors.New(
			"invalid contract address: expected <index, subindex>",
		)
	}
	return ret, nil
}
