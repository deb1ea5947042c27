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

package cis2

import (
	"github.com/blinklabs-io/concordium-go/cis"
	"github.com/blinklabs-io/concordium-go/wire"
)

// EventTag is the first byte of a logged CIS-2 event
type EventTag uint8

const (
	EventTransfer       EventTag = 255
	EventMint           EventTag = 254
	EventBurn           EventTag = 253
	EventUpdateOperator EventTag = 252
	EventTokenMetadata  EventTag = 251
)

// Event is one of the events defined by CIS-2
type Event interface {
	Tag() EventTag
	Encode(w *wire.Writer) error
}

type TransferEvent struct {
	TokenId TokenId
	Amount  *TokenAmount
	From    cis.Address
	To      cis.Address
}

func (TransferEvent) Tag() EventTag { return EventTransfer }

func (e TransferEvent) Encode(w *wire.Writer) error {
	w.WriteUint8(uint8(EventTransfer))
	if err := e.TokenId.Encode(w); err != nil {
		return err
	}
	if err := EncodeTokenAmount(w, e.Amount); err != nil {
		return err
	}
	if err := e.From.Encode(w); err != nil {
		return err
	}
	return e.To.Encode(w)
}

type MintEvent struct {
	TokenId TokenId
	Amount  *TokenAmount
	Owner   cis.Address
}

func (MintEvent) Tag() EventTag { return EventMint }

func (e MintEvent) Encode(w *wire.Writer) error {
	return encodeSupplyEvent(w, EventMint, e.TokenId, e.Amount, e.Owner)
}

type BurnEvent struct {
	TokenId TokenId
	Amount  *TokenAmount
	Owner   cis.Address
}

func (BurnEvent) Tag() EventTag { return EventBurn }

func (e BurnEvent) Encode(w *wire.Writer) error {
	return encodeSupplyEvent(w, EventBurn, e.TokenId, e.Amount, e.Owner)
}

func encodeSupplyEvent(
	w *wire.Writer,
	tag EventTag,
	tokenId TokenId,
	amount *TokenAmount,
	owner cis.Address,
) error {
	w.WriteUint8(uint8(tag))
	if err := tokenId.Encode(w); err != nil {
		return err
	}
	if err := EncodeTokenAmount(w, amount); err != nil {
		return err
	}
	return owner.Encode(w)
}

type UpdateOperatorEvent struct {
	Update   OperatorUpdate
	Owner    cis.Address
	Operator cis.Address
}

func (UpdateOperatorEvent) Tag() EventTag { return EventUpdateOperator }

func (e UpdateOperatorEvent) Encode(w *wire.Writer) error {
	w.WriteUint8(uint8(EventUpdateOperator))
	w.WriteUint8(uint8(e.Update))
	if err := e.Owner.Encode(w); err != nil {
		return err
	}
	return e.Operator.Encode(w)
}

type TokenMetadataEvent struct {
	TokenId     TokenId
	MetadataUrl cis.MetadataUrl
}

func (TokenMetadataEvent) Tag() EventTag { return EventTokenMetadata }

func (e TokenMetadataEvent) Encode(w *wire.Writer) error {
	w.WriteUint8(uint8(EventTokenMetadata))
	if err := e.TokenId.Encode(w); err != nil {
		return err
	}
	return e.MetadataUrl.Encode(w)
}

// DecodeEvent decodes a logged event. Tags outside the CIS-2 range fail with
// cis.UnknownEventError so that contract specific events can be told apart
func DecodeEvent(data []byte) (Event, error) {
	return cis.DecodeExact(data, decodeEvent)
}

func decodeEvent(c *wire.Cursor) (Event, error) {
	tag, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	switch EventTag(tag) {
	case EventTransfer:
		var e TransferEvent
		if e.TokenId, err = DecodeTokenId(c); err != nil {
			return nil, err
		}
		if e.Amount, err = DecodeTokenAmount(c); err != nil {
			return nil, err
		}
		if e.From, err = cis.DecodeAddress(c); err != nil {
			return nil, err
		}
		if e.To, err = cis.DecodeAddress(c); err != nil {
			return nil, err
		}
		return e, nil
	case EventMint, EventBurn:
		tokenId, err := DecodeTokenId(c)
		if err != nil {
			return nil, err
		}
		amount, err := DecodeTokenAmount(c)
		if err != nil {
			return nil, err
		}
		owner, err := cis.DecodeAddress(c)
		if err != nil {
			return nil, err
		}
		if EventTag(tag) == EventMint {
			return MintEvent{TokenId: tokenId, Amount: amount, Owner: owner}, nil
		}
		return BurnEvent{TokenId: tokenId, Amount: amount, Owner: owner}, nil
	case EventUpdateOperator:
		var e UpdateOperatorEvent
		if e.Update, err = decodeOperatorUpdate(c); err != nil {
			return nil, err
		}
		if e.Owner, err = cis.DecodeAddress(c); err != nil {
			return nil, err
		}
		if e.Operator, err = cis.DecodeAddress(c); err != nil {
			return nil, err
		}
		return e, nil
	case EventTokenMetadata:
		var e TokenMetadataEvent
		if e.TokenId, err = DecodeTokenId(c); err != nil {
			return nil, err
		}
		if e.MetadataUrl, err = cis.DecodeMetadataUrl(c); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, cis.UnknownEventError{Standard: cis.CIS2, Tag: tag}
	}
}
