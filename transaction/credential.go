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
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
)

const (
	encIdCredPubShareSize   = 96
	credentialSignatureSize = 64

	// Tag of a normal (non-initial) account credential
	normalCredentialTag = 1
)

// YearMonth is a month of a year as used in identity policies
type YearMonth struct {
	Year  uint16
	Month uint8
}

func (ym YearMonth) encode(w *wire.Writer) error {
	if ym.Month < 1 || ym.Month > 12 {
		return fmt.Errorf("invalid month: %d", ym.Month)
	}
	w.WriteUint16BE(ym.Year)
	w.WriteUint8(ym.Month)
	return nil
}

// Policy is the part of the identity that the credential reveals
type Policy struct {
	ValidTo   YearMonth
	CreatedAt YearMonth
	// RevealedAttributes maps attribute tags to their values
	RevealedAttributes map[uint8]string
}

func (p Policy) encode(w *wire.Writer) error {
	if err := p.ValidTo.encode(w); err != nil {
		return fmt.Errorf("valid to: %w", err)
	}
	if err := p.CreatedAt.encode(w); err != nil {
		return fmt.Errorf("created at: %w", err)
	}
	w.WriteUint16BE(uint16(len(p.RevealedAttributes)))
	for _, tag := range sortedIndices(p.RevealedAttributes) {
		w.WriteUint8(tag)
		if err := w.WritePrefixedString(wire.Prefix8, binary.BigEndian, p.RevealedAttributes[tag]); err != nil {
			return fmt.Errorf("attribute %d: %w", tag, err)
		}
	}
	return nil
}

// IdOwnershipProofs prove that the credential was derived from a valid identity
type IdOwnershipProofs struct {
	Sig                            []byte
	Commitments                    []byte
	Challenge                      []byte
	ProofIdCredPub                 map[uint32][]byte
	ProofIpSig                     []byte
	ProofRegId                     []byte
	CredCounterLessThanMaxAccounts []byte
}

func (p IdOwnershipProofs) Bytes() []byte {
	w := wire.NewWriter()
	w.WriteRaw(p.Sig)
	w.WriteRaw(p.Commitments)
	w.WriteRaw(p.Challenge)
	w.WriteUint32BE(uint32(len(p.ProofIdCredPub)))
	for _, arId := range slices.Sorted(maps.Keys(p.ProofIdCredPub)) {
		w.WriteUint32BE(arId)
		w.WriteRaw(p.ProofIdCredPub[arId])
	}
	w.WriteRaw(p.ProofIpSig)
	w.WriteRaw(p.ProofRegId)
	w.WriteRaw(p.CredCounterLessThanMaxAccounts)
	return w.Bytes()
}

// UnsignedCredentialDeploymentInfo is a credential that creates a new account once
// signed with its own keys
type UnsignedCredentialDeploymentInfo struct {
	CredentialPublicKeys CredentialPublicKeys
	CredId               types.CredentialRegistrationId
	IpIdentity           uint32
	RevocationThreshold  uint8
	// ArData maps anonymity revoker identities to encrypted shares of the id credential
	ArData map[uint32][]byte
	Policy Policy
	Proofs IdOwnershipProofs
}

func (u *UnsignedCredentialDeploymentInfo) encodeValues(w *wire.Writer) error {
	if err := u.CredentialPublicKeys.encode(w); err != nil {
		return err
	}
	w.WriteRaw(u.CredId.Bytes())
	w.WriteUint32BE(u.IpIdentity)
	w.WriteUint8(u.RevocationThreshold)
	if len(u.ArData) > 0xffff {
		return fmt.Errorf("too many anonymity revokers: %d", len(u.ArData))
	}
	w.WriteUint16BE(uint16(len(u.ArData)))
	for _, arId := range slices.Sorted(maps.Keys(u.ArData)) {
		share := u.ArData[arId]
		if len(share) != encIdCredPubShareSize {
			return fmt.Errorf(
				"anonymity revoker %d share must be %d bytes, got %d",
				arId,
				encIdCredPubShareSize,
				len(share),
			)
		}
		w.WriteUint32BE(arId)
		w.WriteRaw(share)
	}
	return u.Policy.encode(w)
}

// CredentialDeployment is a credential deployment with the expiry of the message
// carrying it
type CredentialDeployment struct {
	Credential *UnsignedCredentialDeploymentInfo
	Expiry     types.TransactionExpiry
}

// SignDigest returns the digest signed by each of the credential's keys
func (d *CredentialDeployment) SignDigest() (types.Sha256, error) {
	if d.Credential == nil {
		return types.Sha256{}, errors.New("missing credential")
	}
	w := wire.NewWriter()
	if err := d.Credential.encodeValues(w); err != nil {
		return types.Sha256{}, err
	}
	w.WriteRaw(d.Credential.Proofs.Bytes())
	// Deployments that create a new account have no existing address
	w.WriteUint8(0)
	w.WriteUint64BE(uint64(d.Expiry))
	return types.Sha256Hash(w.Bytes()), nil
}

// Serialize returns the block item submitted to a node. Signatures are given in the
// order of the credential's key indices
func (d *CredentialDeployment) Serialize(signatures [][]byte) ([]byte, error) {
	if d.Credential == nil {
		return nil, errors.New("missing credential")
	}
	if len(signatures) == 0 {
		return nil, ErrNoSignatures
	}
	if len(signatures) > 255 {
		return nil, fmt.Errorf("too many signatures: %d", len(signatures))
	}
	proofs := wire.NewWriter()
	proofs.WriteRaw(d.Credential.Proofs.Bytes())
	proofs.WriteUint8(uint8(len(signatures)))
	for i, sig := range signatures {
		if len(sig) != credentialSignatureSize {
			return nil, fmt.Errorf(
				"signature %d must be %d bytes, got %d",
				i,
				credentialSignatureSize,
				len(sig),
			)
		}
		proofs.WriteUint8(uint8(i))
		proofs.WriteRaw(sig)
	}
	w := wire.NewWriter()
	w.WriteUint8(uint8(BlockItemCredentialDeployment))
	w.WriteUint64BE(uint64(d.Expiry))
	w.WriteUint8(normalCredentialTag)
	if err := d.Credential.encodeValues(w); err != nil {
		return nil, err
	}
	if err := w.WritePrefixedBytes(wire.Prefix32, binary.BigEndian, proofs.Bytes()); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
