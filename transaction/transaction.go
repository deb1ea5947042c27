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
	"errors"
	"fmt"
	"math"

	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
)

// HeaderSize is the size of a serialized transaction header
const HeaderSize = types.AccountAddressSize + 8 + 8 + 4 + 8

// Header is the common prefix of every account transaction
type Header struct {
	Sender      types.AccountAddress
	Nonce       types.SequenceNumber
	Energy      types.Energy
	PayloadSize uint32
	Expiry      types.TransactionExpiry
}

func (h Header) encode(w *wire.Writer) {
	w.WriteRaw(h.Sender.Bytes())
	w.WriteUint64BE(uint64(h.Nonce))
	w.WriteUint64BE(uint64(h.Energy))
	w.WriteUint32BE(h.PayloadSize)
	w.WriteUint64BE(uint64(h.Expiry))
}

// Bytes returns the serialized header
func (h Header) Bytes() []byte {
	w := wire.NewWriter()
	h.encode(w)
	return w.Bytes()
}

func decodeHeader(c *wire.Cursor) (Header, error) {
	var ret Header
	var err error
	if ret.Sender, err = readAccountAddress(c); err != nil {
		return ret, err
	}
	nonce, err := c.ReadUint64BE()
	if err != nil {
		return ret, err
	}
	energy, err := c.ReadUint64BE()
	if err != nil {
		return ret, err
	}
	if ret.PayloadSize, err = c.ReadUint32BE(); err != nil {
		return ret, err
	}
	expiry, err := c.ReadUint64BE()
	if err != nil {
		return ret, err
	}
	ret.Nonce = types.SequenceNumber(nonce)
	ret.Energy = types.Energy(energy)
	ret.Expiry = types.TransactionExpiry(expiry)
	return ret, nil
}

// AccountTransaction is an unsigned account transaction
type AccountTransaction struct {
	Sender types.AccountAddress
	Nonce  types.SequenceNumber
	Expiry types.TransactionExpiry
	// EnergyAmount is the energy limit written to the header. The cost is computed from
	// the payload and signature count when zero
	EnergyAmount types.Energy
	Payload      Payload
}

// Header returns the transaction header for the given signature count along with the
// serialized payload
func (t *AccountTransaction) Header(signatureCount int) (Header, []byte, error) {
	if t.Payload == nil {
		return Header{}, nil, errors.New("transaction has no payload")
	}
	payload, err := EncodePayload(t.Payload)
	if err != nil {
		return Header{}, nil, err
	}
	if len(payload) > math.MaxUint32 {
		return Header{}, nil, fmt.Errorf("payload of %d bytes is too large", len(payload))
	}
	energy := t.EnergyAmount
	if energy == 0 {
		energy = EnergyCost(signatureCount, len(payload), t.Payload.baseEnergy())
	}
	return Header{
		Sender:      t.Sender,
		Nonce:       t.Nonce,
		Energy:      energy,
		PayloadSize: uint32(len(payload)),
		Expiry:      t.Expiry,
	}, payload, nil
}

// Energy returns the energy limit that will be written to the header
func (t *AccountTransaction) Energy(signatureCount int) (types.Energy, error) {
	header, _, err := t.Header(signatureCount)
	if err != nil {
		return 0, err
	}
	return header.Energy, nil
}

// Bytes returns the header followed by the payload, which is the data that is signed
func (t *AccountTransaction) Bytes(signatureCount int) ([]byte, error) {
	header, payload, err := t.Header(signatureCount)
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter()
	header.encode(w)
	w.WriteRaw(payload)
	return w.Bytes(), nil
}

// SignDigest returns the digest that each key signs. The signature count is part of the
// digest through the energy cost written to the header
func (t *AccountTransaction) SignDigest(signatureCount int) (types.Sha256, error) {
	data, err := t.Bytes(signatureCount)
	if err != nil {
		return types.Sha256{}, err
	}
	return types.Sha256Hash(data), nil
}

// SignedAccountTransaction is an account transaction with its signatures
type SignedAccountTransaction struct {
	Transaction *AccountTransaction
	Signature   AccountTransactionSignature
}

// blockItem serializes the item without the leading version byte
func (s *SignedAccountTransaction) blockItem() ([]byte, error) {
	if s.Transaction == nil {
		return nil, errors.New("missing transaction")
	}
	w := wire.NewWriter()
	w.WriteUint8(uint8(BlockItemAccountTransaction))
	if err := s.Signature.encode(w); err != nil {
		return nil, err
	}
	data, err := s.Transaction.Bytes(s.Signature.Count())
	if err != nil {
		return nil, err
	}
	w.WriteRaw(data)
	return w.Bytes(), nil
}

// Serialize returns the versioned block item that is submitted to a node
func (s *SignedAccountTransaction) Serialize() ([]byte, error) {
	item, err := s.blockItem()
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter()
	w.WriteUint8(blockItemVersion)
	w.WriteRaw(item)
	return w.Bytes(), nil
}

// Hash returns the transaction hash the chain uses to identify the block item
func (s *SignedAccountTransaction) Hash() (types.TransactionHash, error) {
	item, err := s.blockItem()
	if err != nil {
		return types.TransactionHash{}, err
	}
	return types.Sha256Hash(item), nil
}

// Deserialize parses a versioned block item produced by Serialize. The energy limit in
// the header is kept so serializing the result yields the same bytes
func Deserialize(data []byte) (*SignedAccountTransaction, error) {
	c := wire.NewCursor(data)
	version, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	if version != blockItemVersion {
		return nil, wire.InvalidTagError{
			Offset: 0,
			Kind:   "block item version",
			Tag:    uint64(version),
		}
	}
	kind, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	if BlockItemKind(kind) != BlockItemAccountTransaction {
		return nil, UnsupportedBlockItemKindError{Kind: BlockItemKind(kind)}
	}
	sig, err := decodeSignature(c)
	if err != nil {
		return nil, fmt.Errorf("decode signatures: %w", err)
	}
	header, err := decodeHeader(c)
	if err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	payloadBytes, err := c.Read(int(header.PayloadSize))
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if err := c.Done(); err != nil {
		return nil, err
	}
	payload, err := DecodePayload(payloadBytes)
	if err != nil {
		return nil, err
	}
	return &SignedAccountTransaction{
		Transaction: &AccountTransaction{
			Sender:       header.Sender,
			Nonce:        header.Nonce,
			Expiry:       header.Expiry,
			EnergyAmount: header.Energy,
			Payload:      payload,
		},
		Signature: sig,
	}, nil
}
