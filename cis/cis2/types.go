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

// Package cis2 implements the CIS-2 token standard: parameters and responses of its
// entrypoints, its events and a client for token contracts.
package cis2

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/blinklabs-io/concordium-go/cis"
	"github.com/blinklabs-io/concordium-go/wire"
	"github.com/holiman/uint256"
)

const (
	// MaxTokenIdSize is the largest token id in bytes
	MaxTokenIdSize = 255
	// MaxTokenAmountBytes bounds the LEB128 encoding of a token amount
	MaxTokenAmountBytes = 37
)

// TokenId identifies a token within a contract
type TokenId []byte

func NewTokenIdFromHex(s string) (TokenId, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid token id: %w", err)
	}
	if len(data) > MaxTokenIdSize {
		return nil, fmt.Errorf("token id of %d bytes exceeds %d", len(data), MaxTokenIdSize)
	}
	return TokenId(data), nil
}

func (t TokenId) String() string {
	return hex.EncodeToString(t)
}

func (t TokenId) Encode(w *wire.Writer) error {
	return w.WritePrefixedBytes(wire.Prefix8, binary.LittleEndian, t)
}

func DecodeTokenId(c *wire.Cursor) (TokenId, error) {
	return c.ReadPrefixedBytes(wire.Prefix8, binary.LittleEndian)
}

// TokenAmount is an unsigned token amount of up to 256 bits
type TokenAmount = uint256.Int

// NewTokenAmount returns a token amount holding v
func NewTokenAmount(v uint64) *TokenAmount {
	return uint256.NewInt(v)
}

// ParseTokenAmount parses a decimal token amount
func ParseTokenAmount(s string) (*TokenAmount, error) {
	ret, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid token amount %q: %w", s, err)
	}
	return ret, nil
}

func EncodeTokenAmount(w *wire.Writer, amount *TokenAmount) error {
	if amount == nil {
		return fmt.Errorf("missing token amount")
	}
	return w.WriteULEB128(amount.ToBig(), MaxTokenAmountBytes)
}

func DecodeTokenAmount(c *wire.Cursor) (*TokenAmount, error) {
	offset := c.Offset()
	v, err := c.ReadULEB128(MaxTokenAmountBytes)
	if err != nil {
		return nil, err
	}
	ret, overflow := uint256.FromBig(v)
	if overflow {
		return nil, wire.DecodingError{Offset: offset, Reason: "token amount exceeds 256 bits"}
	}
	return ret, nil
}

// Transfer is one transfer of a transfer call
type Transfer struct {
	TokenId TokenId
	Amount  *TokenAmount
	From    cis.Address
	To      cis.Receiver
	Data    cis.AdditionalData
}

func (t Transfer) Encode(w *wire.Writer) error {
	if err := t.TokenId.Encode(w); err != nil {
		return err
	}
	if err := EncodeTokenAmount(w, t.Amount); err != nil {
		return err
	}
	if err := t.From.Encode(w); err != nil {
		return err
	}
	if err := t.To.Encode(w); err != nil {
		return err
	}
	return t.Data.Encode(w)
}

func DecodeTransfer(c *wire.Cursor) (Transfer, error) {
	var ret Transfer
	var err error
	if ret.TokenId, err = DecodeTokenId(c); err != nil {
		return ret, err
	}
	if ret.Amount, err = DecodeTokenAmount(c); err != nil {
		return ret, err
	}
	if ret.From, err = cis.DecodeAddress(c); err != nil {
		return ret, err
	}
	if ret.To, err = cis.DecodeReceiver(c); err != nil {
		return ret, err
	}
	if ret.Data, err = cis.DecodeAdditionalData(c); err != nil {
		return ret, err
	}
	return ret, nil
}

// EncodeTransferParameter serializes the parameter of the transfer entrypoint
func EncodeTransferParameter(transfers []Transfer) ([]byte, error) {
	return cis.EncodeList(transfers, func(w *wire.Writer, t Transfer) error {
		return t.Encode(w)
	})
}

// DecodeTransferParameter parses the parameter of the transfer entrypoint
func DecodeTransferParameter(data []byte) ([]Transfer, error) {
	return cis.DecodeListResponse(data, DecodeTransfer)
}

// OperatorUpdate adds or removes an operator
type OperatorUpdate uint8

const (
	RemoveOperator OperatorUpdate = 0
	AddOperator    OperatorUpdate = 1
)

func decodeOperatorUpdate(c *wire.Cursor) (OperatorUpdate, error) {
	offset := c.Offset()
	tag, err := c.ReadUint8()
	if err != nil {
		return 0, err
	}
	if tag > uint8(AddOperator) {
		return 0, wire.InvalidTagError{Offset: offset, Kind: "operator update", Tag: uint64(tag)}
	}
	return OperatorUpdate(tag), nil
}

// UpdateOperator is one update of an updateOperator call
type UpdateOperator struct {
	Update   OperatorUpdate
	Operator cis.Address
}

func (u UpdateOperator) Encode(w *wire.Writer) error {
	w.WriteUint8(uint8(u.Update))
	return u.Operator.Encode(w)
}

// EncodeUpdateOperatorParameter serializes the parameter of the updateOperator entrypoint
func EncodeUpdateOperatorParameter(updates []UpdateOperator) ([]byte, error) {
	return cis.EncodeList(updates, func(w *wire.Writer, u UpdateOperator) error {
		return u.Encode(w)
	})
}

// BalanceOfQuery asks for the balance of a token held by an address
type BalanceOfQuery struct {
	TokenId TokenId
	Address cis.Address
}

// EncodeBalanceOfParameter serializes the parameter of the balanceOf entrypoint
func EncodeBalanceOfParameter(queries []BalanceOfQuery) ([]byte, error) {
	return cis.EncodeList(queries, func(w *wire.Writer, q BalanceOfQuery) error {
		if err := q.TokenId.Encode(w); err != nil {
			return err
		}
		return q.Address.Encode(w)
	})
}

// DecodeBalanceOfResponse decodes the balances in the order of the queries
func DecodeBalanceOfResponse(data []byte) ([]*TokenAmount, error) {
	return cis.DecodeListResponse(data, DecodeTokenAmount)
}

// OperatorOfQuery asks whether Address is an operator of Owner
type OperatorOfQuery struct {
	Owner   cis.Address
	Address cis.Address
}

// EncodeOperatorOfParameter serializes the parameter of the operatorOf entrypoint
func EncodeOperatorOfParameter(queries []OperatorOfQuery) ([]byte, error) {
	return cis.EncodeList(queries, func(w *wire.Writer, q OperatorOfQuery) error {
		if err := q.Owner.Encode(w); err != nil {
			return err
		}
		return q.Address.Encode(w)
	})
}

// DecodeOperatorOfResponse decodes the answers in the order of the queries
func DecodeOperatorOfResponse(data []byte) ([]bool, error) {
	return cis.DecodeListResponse(data, func(c *wire.Cursor) (bool, error) {
		return c.ReadBool()
	})
}

// EncodeTokenMetadataParameter serializes the parameter of the tokenMetadata entrypoint
func EncodeTokenMetadataParameter(tokenIds []TokenId) ([]byte, error) {
	return cis.EncodeList(tokenIds, func(w *wire.Writer, t TokenId) error {
		return t.Encode(w)
	})
}

// DecodeTokenMetadataResponse decodes the metadata URLs in the order of the token ids
func DecodeTokenMetadataResponse(data []byte) ([]cis.MetadataUrl, error) {
	return cis.DecodeListResponse(data, cis.DecodeMetadataUrl)
}
