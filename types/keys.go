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
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
)

const (
	PublicKeySize                = ed25519.PublicKeySize
	CredentialRegistrationIdSize = 48
)

// PublicKey is an ed25519 verification key of an account credential
type PublicKey [PublicKeySize]byte

func NewPublicKey(data []byte) (PublicKey, error) {
	if len(data) != PublicKeySize {
		return PublicKey{}, fmt.Errorf(
			"invalid public key length: expected %d bytes, got %d",
			PublicKeySize,
			len(data),
		)
	}
	return PublicKey(data), nil
}

func NewPublicKeyFromHex(hexData string) (PublicKey, error) {
	data, err := hex.DecodeString(hexData)
	if err != nil {
		return PublicKey{}, err
	}
	return NewPublicKey(data)
}

// Validate checks that the key decodes to a point on the curve that is not of small
// order
func (k PublicKey) Validate() error {
	point, err := (&edwards25519.Point{}).SetBytes(k[:])
	if err != nil {
		return fmt.Errorf("public key is not a valid curve point: %w", err)
	}
	if (&edwards25519.Point{}).MultByCofactor(point).Equal(edwards25519.NewIdentityPoint()) == 1 {
		return errors.New("public key is a small order point")
	}
	return nil
}

func (k PublicKey) Ed25519() ed25519.PublicKey {
	return ed25519.PublicKey(k[:])
}

func (k PublicKey) Bytes() []byte {
	return k[:]
}

func (k PublicKey) String() string {
	return hex.EncodeToString(k[:])
}

func (k PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *PublicKey) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	parsed, err := NewPublicKeyFromHex(tmp)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// CredentialRegistrationId is the unique identifier of a deployed credential
type CredentialRegistrationId [CredentialRegistrationIdSize]byte

func NewCredentialRegistrationIdFromHex(hexData string) (CredentialRegistrationId, error) {
	data, err := hex.DecodeString(hexData)
	if err != nil {
		return CredentialRegistrationId{}, err
	}
	if len(data) != CredentialRegistrationIdSize {
		return CredentialRegistrationId{}, fmt.Errorf(
			"invalid credential registration ID length: expected %d bytes, got %d",
			CredentialRegistrationIdSize,
			len(data),
		)
	}
	return CredentialRegistrationId(data), nil
}

func (c CredentialRegistrationId) Bytes() []byte {
	return c[:]
}

func (c CredentialRegistrationId) String() string {
	return hex.EncodeToString(c[:])
}

func (c CredentialRegistrationId) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *CredentialRegistrationId) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	parsed, err := NewCredentialRegistrationIdFromHex(tmp)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
