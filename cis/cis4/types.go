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


// Package cis4 implements CIS-4, the standard for registries of verifiable credentials:
// parameters and responses of its entrypoints, its events and a client for registry
// contracts.
package cis4

import (
	"encoding/binary"
	"fmt"

	"github.com/blinklabs-io/concordium-go/cis"
	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
)

// MaxCredentialTypeSize bounds credential types and revocation reasons
const MaxCredentialTypeSize = 255

func encodePublicKey(w *wire.Writer, key types.PublicKey) {
	w.WriteRaw(key.Bytes())
}

func decodePublicKey(c *wire.Cursor) (types.PublicKey, error) {
	var ret types.PublicKey
	err := c.ReadInto(ret[:])
	return ret, err
}

func encodeShortString(w *wire.Writer, s string) error {
	return w.WritePrefixedString(wire.Prefix8, binary.LittleEndian, s)
}

func decodeShortString(c *wire.Cursor) (string, error) {
	return c.ReadPrefixedString(wire.Prefix8, binary.LittleEndian)
}

// CredentialInfo is the data an issuer registers for a credential
type CredentialInfo struct {
	// HolderId is the public key of the holder, which also identifies the credential
	HolderId        types.PublicKey
	HolderRevocable bool
	ValidFrom       types.Timestamp
	ValidUntil      *types.Timestamp
	MetadataUrl     cis.MetadataUrl
}

func (i CredentialInfo) Encode(w *wire.Writer) error {
	encodePublicKey(w, i.HolderId)
	w.WriteBool(i.HolderRevocable)
	w.WriteUint64LE(uint64(i.ValidFrom))
	w.WriteOptionTag(i.ValidUntil != nil)
	if i.ValidUntil != nil {
		w.WriteUint64LE(uint64(*i.ValidUntil))
	}
	return i.MetadataUrl.Encode(w)
}

func DecodeCredentialInfo(c *wire.Cursor) (CredentialInfo, error) {
	var ret CredentialInfo
	var err error
	if ret.HolderId, err = decodePublicKey(c); err != nil {
		return ret, err
	}
	if ret.HolderRevocable, err = c.ReadBool(); err != nil {
		return ret, err
	}
	validFrom, err := c.ReadUint64LE()
	if err != nil {
		return ret, err
	}
	ret.ValidFrom = types.Timestamp(validFrom)
	present, err := c.ReadOptionTag()
	if err != nil {
		return ret, err
	}
	if present {
		validUntil, err := c.ReadUint64LE()
		if err != nil {
			return ret, err
		}
		tmp := types.Timestamp(validUntil)
		ret.ValidUntil = &tmp
	}
	if ret.MetadataUrl, err = cis.DecodeMetadataUrl(c); err != nil {
		return ret, err
	}
	return ret, nil
}

// CredentialEntry is the response of the credentialEntry entrypoint
type CredentialEntry struct {
	Info CredentialInfo
	// SchemaRef points to the schema of the credential
	SchemaRef       cis.MetadataUrl
	RevocationNonce uint64
}

func (e CredentialEntry) Encode(w *wire.Writer) error {
	if err := e.Info.Encode(w); err != nil {
		return err
	}
	if err := e.SchemaRef.Encode(w); err != nil {
		return err
	}
	w.WriteUint64LE(e.RevocationNonce)
	return nil
}

func decodeCredentialEntry(c *wire.Cursor) (CredentialEntry, error) {
	var ret CredentialEntry
	var err error
	if ret.Info, err = DecodeCredentialInfo(c); err != nil {
		return ret, err
	}
	if ret.SchemaRef, err = cis.DecodeMetadataUrl(c); err != nil {
		return ret, err
	}
	if ret.RevocationNonce, err = c.ReadUint64LE(); err != nil {
		return ret, err
	}
	return ret, nil
}

// DecodeCredentialEntryResponse decodes the response of the credentialEntry entrypoint
func DecodeCredentialEntryResponse(data []byte) (CredentialEntry, error) {
	return cis.DecodeExact(data, decodeCredentialEntry)
}

// CredentialStatus is the response of the credentialStatus entrypoint
type CredentialStatus uint8

const (
	StatusActive       CredentialStatus = 0
	StatusRevoked      CredentialStatus = 1
	StatusExpired      CredentialStatus = 2
	StatusNotActivated CredentialStatus = 3
)

var credentialStatusNames = map[CredentialStatus]string{
	StatusActive:       "Active",
	StatusRevoked:      "Revoked",
	StatusExpired:      "Expired",
	StatusNotActivated: "NotActivated",
}

func (s CredentialStatus) String() string {
	if name, ok := credentialStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("CredentialStatus(%d)", uint8(s))
}

// DecodeCredentialStatusResponse decodes the response of the credentialStatus entrypoint
func DecodeCredentialStatusResponse(data []byte) (CredentialStatus, error) {
	return cis.DecodeExact(data, func(c *wire.Cursor) (CredentialStatus, error) {
		offset := c.Offset()
		tag, err := c.ReadUint8()
		if err != nil {
			return 0, err
		}
		if tag > uint8(StatusNotActivated) {
			return 0, wire.InvalidTagError{Offset: offset, Kind: "credential status", Tag: uint64(tag)}
		}
		return CredentialStatus(tag), nil
	})
}

// EncodeCredentialIdParameter serializes the parameter of the credentialEntry and
// credentialStatus entrypoints
func EncodeCredentialIdParameter(credentialId types.PublicKey) []byte {
	return credentialId.Bytes()
}

// DecodeIssuerResponse decodes the issuer key returned by the issuer entrypoint
func DecodeIssuerResponse(data []byte) (types.PublicKey, error) {
	return cis.DecodeExact(data, decodePublicKey)
}

// RegistryMetadata is the response of the registryMetadata entrypoint
type RegistryMetadata struct {
	IssuerMetadata   cis.MetadataUrl
	CredentialType   string
	CredentialSchema cis.MetadataUrl
}

func (m RegistryMetadata) Encode(w *wire.Writer) error {
	if err := m.IssuerMetadata.Encode(w); err != nil {
		return err
	}
	if err := encodeShortString(w, m.CredentialType); err != nil {
		return fmt.Errorf("credential type: %w", err)
	}
	return m.CredentialSchema.Encode(w)
}

// DecodeRegistryMetadataResponse decodes the response of the registryMetadata entrypoint
func DecodeRegistryMetadataResponse(data []byte) (RegistryMetadata, error) {
	return cis.DecodeExact(data, func(c *wire.Cursor) (RegistryMetadata, error) {
		var ret RegistryMetadata
		var err error
		if ret.IssuerMetadata, err = cis.DecodeMetadataUrl(c); err != nil {
			return ret, err
		}
		if ret.CredentialType, err = decodeShortString(c); err != nil {
			return ret, err
		}
		if ret.CredentialSchema, err = cis.DecodeMetadataUrl(c); err != nil {
			return ret, err
		}
		return ret, nil
	})
}

// RevocationKey is a key allowed to revoke credentials, with the nonce its next
// signature must use
type RevocationKey struct {
	Key   types.PublicKey
	Nonce uint64
}

// DecodeRevocationKeysResponse decodes the response of the revocationKeys entrypoint
func DecodeRevocationKeysResponse(data []byte) ([]RevocationKey, error) {
	return cis.DecodeListResponse(data, func(c *wire.Cursor) (RevocationKey, error) {
		key, err := decodePublicKey(c)
		if err != nil {
			return RevocationKey{}, err
		}
		nonce, err := c.ReadUint64LE()
		if err != nil {
			return RevocationKey{}, err
		}
		return RevocationKey{Key: key, Nonce: nonce}, nil
	})
}

// EncodeRevocationKeysResponse serializes revocation keys as a registry would
func EncodeRevocationKeysResponse(keys []RevocationKey) ([]byte, error) {
	return cis.EncodeList(keys, func(w *wire.Writer, k RevocationKey) error {
		encodePublicKey(w, k.Key)
		w.WriteUint64LE(k.Nonce)
		return nil
	})
}

// RegisterCredentialParam is the parameter of the registerCredential entrypoint
type RegisterCredentialParam struct {
	Info           CredentialInfo
	AdditionalData cis.AdditionalData
}

func (p RegisterCredentialParam) Encode(w *wire.Writer) error {
	if err := p.Info.Encode(w); err != nil {
		return err
	}
	return p.AdditionalData.Encode(w)
}

func DecodeRegisterCredentialParam(data []byte) (RegisterCredentialParam, error) {
	return cis.DecodeExact(data, func(c *wire.Cursor) (RegisterCredentialParam, error) {
		var ret RegisterCredentialParam
		var err error
		if ret.Info, err = DecodeCredentialInfo(c); err != nil {
			return ret, err
		}
		if ret.AdditionalData, err = cis.DecodeAdditionalData(c); err != nil {
			return ret, err
		}
		return ret, nil
	})
}

// RevokeCredentialIssuerParam is the parameter of the revokeCredentialIssuer entrypoint
type RevokeCredentialIssuerParam struct {
	CredentialId   types.PublicKey
	Reason         *string
	AdditionalData cis.AdditionalData
}

func (p RevokeCredentialIssuerParam) Encode(w *wire.Writer) error {
	encodePublicKey(w, p.CredentialId)
	if err := encodeReason(w, p.Reason); err != nil {
		return err
	}
	return p.AdditionalData.Encode(w)
}

func DecodeRevokeCredentialIssuerParam(data []byte) (RevokeCredentialIssuerParam, error) {
	return cis.DecodeExact(data, func(c *wire.Cursor) (RevokeCredentialIssuerParam, error) {
		var ret RevokeCredentialIssuerParam
		var err error
		if ret.CredentialId, err = decodePublicKey(c); err != nil {
			return ret, err
		}
		if ret.Reason, err = decodeReason(c); err != nil {
			return ret, err
		}
		if ret.AdditionalData, err = cis.DecodeAdditionalData(c); err != nil {
			return ret, err
		}
		return ret, nil
	})
}

func encodeReason(w *wire.Writer, reason *string) error {
	w.WriteOptionTag(reason != nil)
	if reason == nil {
		return nil
	}
	if err := encodeShortString(w, *reason); err != nil {
		return fmt.Errorf("revocation reason: %w", err)
	}
	return nil
}

func decodeReason(c *wire.Cursor) (*string, error) {
	present, err := c.ReadOptionTag()
	if err != nil || !present {
		return nil, err
	}
	reason, err := decodeShortString(c)
	if err != nil {
		return nil, err
	}
	return &reason, nil
}

// UpdateRevocationKeysParam is the parameter of the registerRevocationKeys and
// removeRevocationKeys entrypoints
type UpdateRevocationKeysParam struct {
	AdditionalData cis.AdditionalData
	Keys           []types.PublicKey
}

func (p UpdateRevocationKeysParam) Encode(w *wire.Writer) error {
	if err := p.AdditionalData.Encode(w); err != nil {
		return err
	}
	keys, err := cis.EncodeList(p.Keys, func(w *wire.Writer, k types.PublicKey) error {
		encodePublicKey(w, k)
		return nil
	})
	if err != nil {
		return err
	}
	w.WriteRaw(keys)
	return nil
}

func DecodeUpdateRevocationKeysParam(data []byte) (UpdateRevocationKeysParam, error) {
	return cis.DecodeExact(data, func(c *wire.Cursor) (UpdateRevocationKeysParam, error) {
		var ret UpdateRevocationKeysParam
		var err error
		if ret.AdditionalData, err = cis.DecodeAdditionalData(c); err != nil {
			return ret, err
		}
		count, err := c.ReadUint16LE()
		if err != nil {
			return ret, err
		}
		ret.Keys = make([]types.PublicKey, 0, count)
		for range count {
			key, err := decodePublicKey(c)
			if err != nil {
				return ret, err
			}
			ret.Keys = append(ret.Keys, key)
		}
		return ret, nil
	})
}
