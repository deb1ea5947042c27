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

package signing

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/blinklabs-io/concordium-go/types"
)

// AccountKeys is the canonical form of an account's signing keys: credential index to
// key index to private key
type AccountKeys map[uint8]map[uint8][]byte

// Count returns the number of keys
func (k AccountKeys) Count() int {
	ret := 0
	for _, cred := range k {
		ret += len(cred)
	}
	return ret
}

// KeySource is one of the supported ways of supplying account keys
type KeySource interface {
	AccountKeys() (AccountKeys, error)
}

// SingleKey is the key with index 0 of credential 0
type SingleKey []byte

func (k SingleKey) AccountKeys() (AccountKeys, error) {
	if len(k) == 0 {
		return nil, errors.New("empty key")
	}
	return AccountKeys{0: {0: k}}, nil
}

// SimpleAccountKeys maps credential indices to key indices to private keys
type SimpleAccountKeys map[uint8]map[uint8][]byte

func (k SimpleAccountKeys) AccountKeys() (AccountKeys, error) {
	ret := make(AccountKeys, len(k))
	for credIdx, cred := range k {
		if len(cred) == 0 {
			continue
		}
		keys := make(map[uint8][]byte, len(cred))
		for keyIdx, key := range cred {
			if len(key) == 0 {
				return nil, fmt.Errorf("credential %d key %d is empty", credIdx, keyIdx)
			}
			keys[keyIdx] = key
		}
		ret[credIdx] = keys
	}
	if len(ret) == 0 {
		return nil, errors.New("no keys")
	}
	return ret, nil
}

// WalletExport is the account export file written by Concordium wallets
type WalletExport struct {
	Type        string `json:"type"`
	Version     int    `json:"v"`
	Environment string `json:"environment"`
	Value       struct {
		AccountKeys struct {
			Keys map[string]struct {
				Keys map[string]struct {
					SignKey   string `json:"signKey"`
					VerifyKey string `json:"verifyKey"`
				} `json:"keys"`
				Threshold uint8 `json:"threshold"`
			} `json:"keys"`
			Threshold uint8 `json:"threshold"`
		} `json:"accountKeys"`
		Credentials map[string]string    `json:"credentials"`
		Address     types.AccountAddress `json:"address"`
	} `json:"value"`
}

// ParseWalletExport parses the JSON contents of a wallet export file
func ParseWalletExport(data []byte) (*WalletExport, error) {
	var ret WalletExport
	if err := json.Unmarshal(data, &ret); err != nil {
		return nil, fmt.Errorf("parse wallet export: %w", err)
	}
	return &ret, nil
}

// Address returns the account the export belongs to
func (w *WalletExport) Address() types.AccountAddress {
	return w.Value.Address
}

// Network returns the network the export was made for, or types.NetworkInvalid when the
// environment is unknown
func (w *WalletExport) Network() types.Network {
	return types.NetworkByName(w.Environment)
}

func (w *WalletExport) AccountKeys() (AccountKeys, error) {
	ret := make(AccountKeys)
	for credStr, cred := range w.Value.AccountKeys.Keys {
		credIdx, err := parseIndex(credStr)
		if err != nil {
			return nil, err
		}
		keys := make(map[uint8][]byte, len(cred.Keys))
		for keyStr, pair := range cred.Keys {
			keyIdx, err := parseIndex(keyStr)
			if err != nil {
				return nil, err
			}
			key, err := hex.DecodeString(pair.SignKey)
			if err != nil {
				return nil, fmt.Errorf("credential %d key %d: %w", credIdx, keyIdx, err)
			}
			keys[keyIdx] = key
		}
		ret[credIdx] = keys
	}
	if ret.Count() == 0 {
		return nil, errors.New("wallet export contains no keys")
	}
	return ret, nil
}

func parseIndex(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	return uint8(v), nil
}
