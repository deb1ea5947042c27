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

// Package types contains the value types shared by the codecs: addresses, amounts,
// timestamps, names and hashes.
package types

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

const Sha256Size = sha256.Size

type Sha256 [Sha256Size]byte

// TransactionHash identifies a transaction (or any block item)
type TransactionHash = Sha256

// ModuleReference identifies a deployed smart contract module
type ModuleReference = Sha256

func NewSha256(data []byte) Sha256 {
	b := Sha256{}
	copy(b[:], data)
	return b
}

// NewSha256FromHex parses a hex-encoded 32-byte hash
func NewSha256FromHex(hexData string) (Sha256, error) {
	data, err := hex.DecodeString(hexData)
	if err != nil {
		return Sha256{}, err
	}
	if len(data) != Sha256Size {
		return Sha256{}, fmt.Errorf(
			"invalid hash length: expected %d bytes, got %d",
			Sha256Size,
			len(data),
		)
	}
	return NewSha256(data), nil
}

func (b Sha256) String() string {
	return hex.EncodeToString(b[:])
}

func (b Sha256) Bytes() []byte {
	return b[:]
}

func (b Sha256) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Sha256) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	parsed, err := NewSha256FromHex(tmp)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Sha256Hash generates a SHA-256 hash over the concatenation of the provided parts
func Sha256Hash(parts ...[]byte) Sha256 {
	h := sha256.New()
	for _, part := range parts {
		h.Write(part)
	}
	return Sha256(h.Sum(nil))
}
