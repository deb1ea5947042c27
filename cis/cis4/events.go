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


package cis4

import (
	"fmt"

	"github.com/blinklabs-io/concordium-go/cis"
	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
)

// EventTag is the first byte of a logged CIS-4 event
type EventTag uint8

const (
	EventRegisterCredential EventTag = 249
	EventRevokeCredential   EventTag = 248
	EventIssuerMetadata     EventTag = 247
	EventCredentialMetadata EventTag = 246
	EventCredentialSchema   EventTag = 245
	EventRevocationKey      EventTag = 244
)

// Event is one of the events defined by CIS-4
type Event interface {
	Tag() EventTag
	Encode(w *wire.Writer) error
}

type RegisterCredentialEvent struct {
	CredentialId   types.PublicKey
	SchemaRef      cis.MetadataUrl
	CredentialType string
}

func (RegisterCredentialEvent) Tag() EventTag { return EventRegisterCredential }

func (e RegisterCredentialEvent) Encode(w *wire.Writer) error {
	w.WriteUint8(uint8(EventRegisterCredential))
	encodePublicKey(w, e.CredentialId)
	if err := e.SchemaRef.Encode(w); err != nil {
		return err
	}
	return encodeShortString(w, e.CredentialType)
}

// RevokerKind tells who revoked a credential
type RevokerKind uint8

const (
	RevokerIssuer RevokerKind = 0
	RevokerHolder RevokerKind = 1
	// RevokerOther is a revocation key registered by the issuer
	RevokerOther RevokerKind = 2
)

type Revoker struct {
	Kind RevokerKind
	// Key is set for RevokerOther
	Key types.PublicKey
}

type RevokeCredentialEvent struct {
	CredentialId types.PublicKey
	Revoker      Revoker
	Reason       *string
}

func (RevokeCredentialEvent) Tag() EventTag { return EventRevokeCredential }

func (e RevokeCredentialEvent) Encode(w *wire.Writer) error {
	w.WriteUint8(uint8(EventRevokeCredential))
	encodePublicKey(w, e.CredentialId)
	w.WriteUint8(uint8(e.Revoker.Kind))
	switch e.Revoker.Kind {
	case RevokerIssuer, RevokerHolder:
	case RevokerOther:
		encodePublicKey(w, e.Revoker.Key)
	default:
		return fmt.Errorf("invalid revoker kind %d", e.Revoker.Kind)
	}
	return encodeReason(w, e.Reason)
}

type IssuerMetadataEvent struct {
	MetadataUrl cis.MetadataUrl
}

func (IssuerMetadataEvent) Tag() EventTag { return EventIssuerMetadata }

func (e IssuerMetadataEvent) Encode(w *wire.Writer) error {
	w.WriteUint8(uint8(EventIssuerMetadata))
	return e.MetadataUrl.Encode(w)
}

type CredentialMetadataEvent struct {
	CredentialId types.PublicKey
	MetadataUrl  cis.MetadataUrl
}

func (CredentialMetadataEvent) Tag() EventTag { return EventCredentialMetadata }

func (e CredentialMetadataEvent) Encode(w *wire.Writer) error {
	w.WriteUint8(uint8(EventCredentialMetadata))
	encodePublicKey(w, e.CredentialId)
	return e.MetadataUrl.Encode(w)
}

type CredentialSchemaEvent struct {
	CredentialType string
	SchemaRef      cis.MetadataUrl
}

func (CredentialSchemaEvent) Tag() EventTag { return EventCredentialSchema }

func (e CredentialSchemaEvent) Encode(w *wire.Writer) error {
	w.WriteUint8(uint8(EventCredentialSchema))
	if err := encodeShortString(w, e.CredentialType); err != nil {
		return err
	}
	return e.SchemaRef.Encode(w)
}

// RevocationKeyAction tells whether a revocation key was added or removed
type RevocationKeyAction uint8

const (
	RevocationKeyRegister RevocationKeyAction = 0
	RevocationKeyRemove   RevocationKeyAction = 1
)

type RevocationKeyEvent struct {
	Key    types.PublicKey
	Action RevocationKeyAction
}

func (RevocationKeyEvent) Tag() EventTag { return EventRevocationKey }

func (e RevocationKeyEvent) Encode(w *wire.Writer) error {
	w.WriteUint8(uint8(EventRevocationKey))
	encodePublicKey(w, e.Key)
	w.WriteUint8(uint8(e.Action))
	return nil
}

// DecodeEvent decodes a logged event. Tags outside the CIS-4 range fail with
// cis.UnknownEventError
func DecodeEvent(data []byte) (Event, error) {
	return cis.DecodeExact(data, decodeEvent)
}

func decodeEvent(c *wire.Cursor) (Event, error) {
	tag, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	switch EventTag(tag) {
	case EventRegisterCredential:
		var e RegisterCredentialEvent
		if e.CredentialId, err = decodePublicKey(c); err != nil {
			return nil, err
		}
		if e.SchemaRef, err = cis.DecodeMetadataUrl(c); err != nil {
			return nil, err
		}
		if e.CredentialType, err = decodeShortString(c); err != nil {
			return nil, err
		}
		return e, nil
	case EventRevokeCredential:
		var e RevokeCredentialEvent
		if e.CredentialId, err = decodePublicKey(c); err != nil {
			return nil, err
		}
		if e.Revoker, err = decodeRevoker(c); err != nil {
			return nil, err
		}
		if e.Reason, err = decodeReason(c); err != nil {
			return nil, err
		}
		return e, nil
	case EventIssuerMetadata:
		var e IssuerMetadataEvent
		if e.MetadataUrl, err = cis.DecodeMetadataUrl(c); err != nil {
			return nil, err
		}
		return e, nil
	case EventCredentialMetadata:
		var e CredentialMetadataEvent
		if e.CredentialId, err = decodePublicKey(c); err != nil {
			return nil, err
		}
		if e.MetadataUrl, err = cis.DecodeMetadataUrl(c); err != nil {
			return nil, err
		}
		return e, nil
	case EventCredentialSchema:
		var e CredentialSchemaEvent
		if e.CredentialType, err = decodeShortString(c); err != nil {
			return nil, err
		}
		if e.SchemaRef, err = cis.DecodeMetadataUrl(c); err != nil {
			return nil, err
		}
		return e, nil
	case EventRevocationKey:
		var e RevocationKeyEvent
		if e.Key, err = decodePublicKey(c); err != nil {
			return nil, err
		}
		offset := c.Offset()
		action, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		if action > uint8(RevocationKeyRemove) {
			return nil, wire.InvalidTagError{Offset: offset, Kind: "revocation key action", Tag: uint64(action)}
		}
		e.Action = RevocationKeyAction(action)
		return e, nil
	default:
		return nil, cis.UnknownEventError{Standard: cis.CIS4, Tag: tag}
	}
}

func decodeRevoker(c *wire.Cursor) (Revoker, error) {
	offset := c.Offset()
	tag, err := c.ReadUint8()
	if err != nil {
		return Revoker{}, err
	}
	switch RevokerKind(tag) {
	case RevokerIssuer, RevokerHolder:
		return Revoker{Kind: RevokerKind(tag)}, nil
	case RevokerOther:
		key, err := decodePublicKey(c)
		if err != nil {
			return Revoker{}, err
		}
		return Revoker{Kind: RevokerOther, Key: key}, nil
	default:
		return Revoker{}, wire.InvalidTagError{Offset: offset, Kind: "revoker", Tag: uint64(tag)}
	}
}
