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

// Package cis holds the binary layouts shared by the Concordium Interoperability
// Specifications. The layouts are fixed by the standards and do not go through module
// schemas. Integers are little-endian, as everywhere inside contracts.
package cis

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
)

// StandardIdentifier names a standard, such as "CIS-2"
type StandardIdentifier string

const (
	CIS0 StandardIdentifier = "CIS-0"
	CIS1 StandardIdentifier = "CIS-1"
	CIS2 StandardIdentifier = "CIS-2"
	CIS3 StandardIdentifier = "CIS-3"
	CIS4 StandardIdentifier = "CIS-4"
)

func (s StandardIdentifier) Encode(w *wire.Writer) error {
	return w.WritePrefixedString(wire.Prefix8, binary.LittleEndian, string(s))
}

func DecodeStandardIdentifier(c *wire.Cursor) (StandardIdentifier, error) {
	s, err := c.ReadPrefixedString(wire.Prefix8, binary.LittleEndian)
	return StandardIdentifier(s), err
}

// MetadataUrl points to a JSON metadata document with an optional SHA-256 checksum
type MetadataUrl struct {
	Url      string
	Checksum *types.Sha256
}

func (m MetadataUrl) Encode(w *wire.Writer) error {
	if err := w.WritePrefixedString(wire.Prefix16, binary.LittleEndian, m.Url); err != nil {
		return fmt.Errorf("metadata url: %w", err)
	}
	w.WriteOptionTag(m.Checksum != nil)
	if m.Checksum != nil {
		w.WriteRaw(m.Checksum.Bytes())
	}
	return nil
}

func DecodeMetadataUrl(c *wire.Cursor) (MetadataUrl, error) {
	var ret MetadataUrl
	url, err := c.ReadPrefixedString(wire.Prefix16, binary.LittleEndian)
	if err != nil {
		return ret, err
	}
	ret.Url = url
	present, err := c.ReadOptionTag()
	if err != nil {
		return ret, err
	}
	if present {
		var checksum types.Sha256
		if err := c.ReadInto(checksum[:]); err != nil {
			return ret, err
		}
		ret.Checksum = &checksum
	}
	return ret, nil
}

// AddressKind tells which of the fields of an Address is set
type AddressKind uint8

const (
	AddressAccount  AddressKind = 0
	AddressContract AddressKind = 1
)

// Address is either an account or a contract
type Address struct {
	Kind     AddressKind
	Account  types.AccountAddress
	Contract types.ContractAddress
}

func AccountAddress(account types.AccountAddress) Address {
	return Address{Kind: AddressAccount, Account: account}
}

func ContractAddress(contract types.ContractAddress) Address {
	return Address{Kind: AddressContract, Contract: contract}
}

func (a Address) String() string {
	if a.Kind == AddressContract {
		return a.Contract.String()
	}
	return a.Account.String()
}

func (a Address) Encode(w *wire.Writer) error {
	w.WriteUint8(uint8(a.Kind))
	switch a.Kind {
	case AddressAccount:
		w.WriteRaw(a.Account.Bytes())
	case AddressContract:
		EncodeContractAddress(w, a.Contract)
	default:
		return fmt.Errorf("invalid address kind %d", a.Kind)
	}
	return nil
}

func DecodeAddress(c *wire.Cursor) (Address, error) {
	offset := c.Offset()
	tag, err := c.ReadUint8()
	if err != nil {
		return Address{}, err
	}
	switch AddressKind(tag) {
	case AddressAccount:
		account, err := DecodeAccountAddress(c)
		return AccountAddress(account), err
	case AddressContract:
		contract, err := DecodeContractAddress(c)
		return ContractAddress(contract), err
	default:
		return Address{}, wire.InvalidTagError{Offset: offset, Kind: "address", Tag: uint64(tag)}
	}
}

func DecodeAccountAddress(c *wire.Cursor) (types.AccountAddress, error) {
	var ret types.AccountAddress
	err := c.ReadInto(ret[:])
	return ret, err
}

func EncodeContractAddress(w *wire.Writer, contract types.ContractAddress) {
	w.WriteUint64LE(contract.Index)
	w.WriteUint64LE(contract.Subindex)
}

func DecodeContractAddress(c *wire.Cursor) (types.ContractAddress, error) {
	index, err := c.ReadUint64LE()
	if err != nil {
		return types.ContractAddress{}, err
	}
	subindex, err := c.ReadUint64LE()
	if err != nil {
		return types.ContractAddress{}, err
	}
	return types.NewContractAddress(index, subindex), nil
}

// Receiver is the recipient of a transfer. Contracts are called on the named entrypoint
type Receiver struct {
	Kind       AddressKind
	Account    types.AccountAddress
	Contract   types.ContractAddress
	Entrypoint types.EntrypointName
}

func AccountReceiver(account types.AccountAddress) Receiver {
	return Receiver{Kind: AddressAccount, Account: account}
}

func ContractReceiver(contract types.ContractAddress, entrypoint types.EntrypointName) Receiver {
	return Receiver{Kind: AddressContract, Contract: contract, Entrypoint: entrypoint}
}

// Address returns the receiver without its entrypoint
func (r Receiver) Address() Address {
	return Address{Kind: r.Kind, Account: r.Account, Contract: r.Contract}
}

func (r Receiver) Encode(w *wire.Writer) error {
	if err := r.Address().Encode(w); err != nil {
		return err
	}
	if r.Kind == AddressContract {
		if err := w.WritePrefixedString(wire.Prefix16, binary.LittleEndian, string(r.Entrypoint)); err != nil {
			return fmt.Errorf("entrypoint: %w", err)
		}
	}
	return nil
}

func DecodeReceiver(c *wire.Cursor) (Receiver, error) {
	addr, err := DecodeAddress(c)
	if err != nil {
		return Receiver{}, err
	}
	ret := Receiver{Kind: addr.Kind, Account: addr.Account, Contract: addr.Contract}
	if addr.Kind == AddressContract {
		entrypoint, err := c.ReadPrefixedString(wire.Prefix16, binary.LittleEndian)
		if err != nil {
			return Receiver{}, err
		}
		ret.Entrypoint = types.EntrypointName(entrypoint)
	}
	return ret, nil
}

// AdditionalData is opaque data passed along with a standard operation
type AdditionalData []byte

func (d AdditionalData) Encode(w *wire.Writer) error {
	return w.WritePrefixedBytes(wire.Prefix16, binary.LittleEndian, d)
}

func DecodeAdditionalData(c *wire.Cursor) (AdditionalData, error) {
	return c.ReadPrefixedBytes(wire.Prefix16, binary.LittleEndian)
}

// EncodeList writes the u16 item count followed by each item
func EncodeList[T any](items []T, encodeItem func(*wire.Writer, T) error) ([]byte, error) {
	if len(items) > math.MaxUint16 {
		return nil, fmt.Errorf("list of %d items exceeds %d", len(items), math.MaxUint16)
	}
	w := wire.NewWriter()
	w.WriteUint16LE(uint16(len(items)))
	for i, item := range items {
		if err := encodeItem(w, item); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return w.Bytes(), nil
}

// DecodeListResponse decodes a list response. The u16 count at the start is read, then
// items are decoded until the data is exhausted; the count itself is not enforced
func DecodeListResponse[T any](data []byte, decodeItem func(*wire.Cursor) (T, error)) ([]T, error) {
	c := wire.NewCursor(data)
	if _, err := c.ReadUint16LE(); err != nil {
		return nil, err
	}
	ret := []T{}
	for c.Remaining() > 0 {
		item, err := decodeItem(c)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", len(ret), err)
		}
		ret = append(ret, item)
	}
	return ret, nil
}

// DecodeExact decodes a single value that must take up all of data
func DecodeExact[T any](data []byte, decode func(*wire.Cursor) (T, error)) (T, error) {
	c := wire.NewCursor(data)
	ret, err := decode(c)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := c.Done(); err != nil {
		var zero T
		return zero, err
	}
	return ret, nil
}

// Encode runs an encoder against a fresh writer and returns the bytes
func Encode(encode func(*wire.Writer) error) ([]byte, error) {
	w := wire.NewWriter()
	if err := encode(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

var ErrUnknownEvent = errors.New("unknown event tag")

// UnknownEventError is returned for event tags that the standard does not define
type UnknownEventError struct {
	Standard StandardIdentifier
	Tag      uint8
}

func (e UnknownEventError) Error() string {
	return fmt.Sprintf("%s does not define event tag %d", e.Standard, e.Tag)
}

func (UnknownEventError) Is(target error) bool {
	return target == ErrUnknownEvent
}
