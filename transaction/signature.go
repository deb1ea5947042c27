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

package transaction

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/blinklabs-io/concordium-go/wire"
)

// CredentialSignature maps key indices to signatures made by one credential
type CredentialSignature map[uint8][]byte

// AccountTransactionSignature maps credential indices to the signatures made with the
// keys of that credential
type AccountTransactionSignature map[uint8]CredentialSignature

// Count returns the total number of signatures
func (s AccountTransactionSignature) Count() int {
	ret := 0
	for _, cred := range s {
		ret += len(cred)
	}
	return ret
}

// Encode serializes the signatures with credentials and keys in ascending index order
func (s AccountTransactionSignature) Encode() ([]byte, error) {
	w := wire.NewWriter()
	if err := s.encode(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (s AccountTransactionSignature) encode(w *wire.Writer) error {
	if s.Count() == 0 {
		return ErrNoSignatures
	}
	if len(s) > math.MaxUint8 {
		return wire.OverflowError{Value: strconv.Itoa(len(s)), Width: "credential count (u8)"}
	}
	w.WriteUint8(uint8(len(s)))
	for _, credIdx := range sortedIndices(s) {
		cred := s[credIdx]
		if len(cred) == 0 {
			return fmt.Errorf("credential %d has no signatures", credIdx)
		}
		if len(cred) > math.MaxUint8 {
			return fmt.Errorf(
				"credential %d: %w",
				credIdx,
				wire.OverflowError{Value: strconv.Itoa(len(cred)), Width: "key count (u8)"},
			)
		}
		w.WriteUint8(credIdx)
		w.WriteUint8(uint8(len(cred)))
		for _, keyIdx := range sortedIndices(cred) {
			w.WriteUint8(keyIdx)
			if err := w.WritePrefixedBytes(wire.Prefix16, binary.BigEndian, cred[keyIdx]); err != nil {
				return fmt.Errorf("credential %d key %d: %w", credIdx, keyIdx, err)
			}
		}
	}
	return nil
}

// DecodeSignature parses a serialized signature map
func DecodeSignature(data []byte) (AccountTransactionSignature, error) {
	c := wire.NewCursor(data)
	ret, err := decodeSignature(c)
	if err != nil {
		return nil, err
	}
	if err := c.Done(); err != nil {
		return nil, err
	}
	return ret, nil
}

func decodeSignature(c *wire.Cursor) (AccountTransactionSignature, error) {
	credCount, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	if credCount == 0 {
		return nil, ErrNoSignatures
	}
	ret := make(AccountTransactionSignature, credCount)
	for range credCount {
		offset := c.Offset()
		credIdx, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		if _, ok := ret[credIdx]; ok {
			return nil, wire.DecodingError{
				Offset: offset,
				Reason: fmt.Sprintf("duplicate credential index %d", credIdx),
			}
		}
		keyCount, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		if keyCount == 0 {
			return nil, wire.DecodingError{
				Offset: offset,
				Reason: fmt.Sprintf("credential %d has no signatures", credIdx),
			}
		}
		cred := make(CredentialSignature, keyCount)
		for range keyCount {
			offset := c.Offset()
			keyIdx, err := c.ReadUint8()
			if err != nil {
				return nil, err
			}
			if _, ok := cred[keyIdx]; ok {
				return nil, wire.DecodingError{
					Offset: offset,
					Reason: fmt.Sprintf("duplicate key index %d", keyIdx),
				}
			}
			sig, err := c.ReadPrefixedBytes(wire.Prefix16, binary.BigEndian)
			if err != nil {
				return nil, err
			}
			cred[keyIdx] = sig
		}
		ret[credIdx] = cred
	}
	return ret, nil
}

// MarshalJSON produces {"0": {"0": "<hex>"}} with string indices
func (s AccountTransactionSignature) MarshalJSON() ([]byte, error) {
	tmp := make(map[string]map[string]string, len(s))
	for credIdx, cred := range s {
		keys := make(map[string]string, len(cred))
		for keyIdx, sig := range cred {
			keys[strconv.Itoa(int(keyIdx))] = hex.EncodeToString(sig)
		}
		tmp[strconv.Itoa(int(credIdx))] = keys
	}
	return json.Marshal(tmp)
}

func (s *AccountTransactionSignature) UnmarshalJSON(data []byte) error {
	var tmp map[string]map[string]string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	ret := make(AccountTransactionSignature, len(tmp))
	for credStr, keys := range tmp {
		credIdx, err := strconv.ParseUint(credStr, 10, 8)
		if err != nil {
			return fmt.Errorf("invalid credential index %q: %w", credStr, err)
		}
		cred := make(CredentialSignature, len(keys))
		for keyStr, sigHex := range keys {
			keyIdx, err := strconv.ParseUint(keyStr, 10, 8)
			if err != nil {
				return fmt.Errorf("invalid key index %q: %w", keyStr, err)
			}
			sig, err := hex.DecodeString(sigHex)
			if err != nil {
				return fmt.Errorf("invalid signature hex: %w", err)
			}
			cred[uint8(keyIdx)] = sig
		}
		ret[uint8(credIdx)] = cred
	}
	*s = ret
	return nil
}

func sortedIndices[V any](m map[uint8]V) []uint8 {
	return slices.Sorted(maps.Keys(m))
}
