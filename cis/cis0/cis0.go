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

// Package cis0 implements CIS-0, the standard for detecting which standards a contract
// supports.
package cis0

import (
	"context"
	"fmt"

	"github.com/blinklabs-io/concordium-go/cis"
	"github.com/blinklabs-io/concordium-go/contract"
	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
)

// SupportsEntrypoint is the entrypoint every CIS-0 contract exposes
const SupportsEntrypoint types.EntrypointName = "supports"

// SupportKind is the answer for one queried standard
type SupportKind uint8

const (
	NoSupport SupportKind = 0
	Support   SupportKind = 1
	// SupportBy means other contracts implement the standard on this one's behalf
	SupportBy SupportKind = 2
)

// SupportResult is the answer for one queried standard
type SupportResult struct {
	Kind SupportKind
	// Addresses of the implementing contracts for SupportBy
	Addresses []types.ContractAddress
}

func (r SupportResult) Encode(w *wire.Writer) error {
	w.WriteUint8(uint8(r.Kind))
	switch r.Kind {
	case NoSupport, Support:
		return nil
	case SupportBy:
		if len(r.Addresses) > 255 {
			return fmt.Errorf("too many supporting contracts: %d", len(r.Addresses))
		}
		w.WriteUint8(uint8(len(r.Addresses)))
		for _, addr := range r.Addresses {
			cis.EncodeContractAddress(w, addr)
		}
		return nil
	default:
		return fmt.Errorf("invalid support kind %d", r.Kind)
	}
}

func DecodeSupportResult(c *wire.Cursor) (SupportResult, error) {
	offset := c.Offset()
	tag, err := c.ReadUint8()
	if err != nil {
		return SupportResult{}, err
	}
	switch SupportKind(tag) {
	case NoSupport, Support:
		return SupportResult{Kind: SupportKind(tag)}, nil
	case SupportBy:
		count, err := c.ReadUint8()
		if err != nil {
			return SupportResult{}, err
		}
		ret := SupportResult{Kind: SupportBy, Addresses: make([]types.ContractAddress, 0, count)}
		for range count {
			addr, err := cis.DecodeContractAddress(c)
			if err != nil {
				return SupportResult{}, err
			}
			ret.Addresses = append(ret.Addresses, addr)
		}
		return ret, nil
	default:
		return SupportResult{}, wire.InvalidTagError{Offset: offset, Kind: "support result", Tag: uint64(tag)}
	}
}

// EncodeSupportsParameter serializes the list of standards to query
func EncodeSupportsParameter(standards []cis.StandardIdentifier) ([]byte, error) {
	return cis.EncodeList(standards, func(w *wire.Writer, s cis.StandardIdentifier) error {
		return s.Encode(w)
	})
}

// DecodeSupportsResponse decodes the answers to a supports query
func DecodeSupportsResponse(data []byte) ([]SupportResult, error) {
	return cis.DecodeListResponse(data, DecodeSupportResult)
}

// EncodeSupportsResponse serializes answers as a contract would
func EncodeSupportsResponse(results []SupportResult) ([]byte, error) {
	return cis.EncodeList(results, func(w *wire.Writer, r SupportResult) error {
		return r.Encode(w)
	})
}

// Supports queries which of standards the contract behind client implements. The
// results are in the order of standards
func Supports(
	ctx context.Context,
	client *contract.Client,
	standards ...cis.StandardIdentifier,
) ([]SupportResult, error) {
	param, err := EncodeSupportsParameter(standards)
	if err != nil {
		return nil, err
	}
	data, err := client.Query(ctx, SupportsEntrypoint, param)
	if err != nil {
		return nil, err
	}
	ret, err := DecodeSupportsResponse(data)
	if err != nil {
		return nil, err
	}
	if len(ret) != len(standards) {
		return nil, fmt.Errorf("expected %d results, got %d", len(standards), len(ret))
	}
	return ret, nil
}
