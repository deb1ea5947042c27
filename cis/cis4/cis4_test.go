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


package cis4_test

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/blinklabs-io/concordium-go/cis"
	"github.com/blinklabs-io/concordium-go/cis/cis4"
	"github.com/blinklabs-io/concordium-go/internal/test"
	"github.com/blinklabs-io/concordium-go/internal/test/node_mock"
	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var (
	key1Hex = strings.Repeat("01", 32)
	key2Hex = strings.Repeat("02", 32)
	key1    = types.PublicKey(test.RepeatByte(0x01, 32))
	key2    = types.PublicKey(test.RepeatByte(0x02, 32))

	validUntil = types.Timestamp(2000)
	reason     = "no"

	testInfo = cis4.CredentialInfo{
		HolderId:        key1,
		HolderRevocable: true,
		ValidFrom:       1000,
		ValidUntil:      &validUntil,
		MetadataUrl:     cis.MetadataUrl{Url: "ab"},
	}
	testInfoHex  = key1Hex + "01" + "e803000000000000" + "01" + "d007000000000000" + "0200616200"
	schemaRef    = cis.MetadataUrl{Url: "s"}
	schemaRefHex = "010073" + "00"
)

func TestCredentialEntryResponse(t *testing.T) {
	data := test.DecodeHexString(testInfoHex + schemaRefHex + "0700000000000000")
	entry, err := cis4.DecodeCredentialEntryResponse(data)
	require.NoError(t, err)
	assert.Equal(t, cis4.CredentialEntry{Info: testInfo, SchemaRef: schemaRef, RevocationNonce: 7}, entry)
	encoded, err := cis.Encode(entry.Encode)
	require.NoError(t, err)
	assert.Equal(t, data, encoded)

	// Without an end of validity
	info := testInfo
	info.ValidUntil = nil
	encoded, err = cis.Encode(info.Encode)
	require.NoError(t, err)
	assert.Equal(t, key1Hex+"01"+"e803000000000000"+"00"+"0200616200", hex.EncodeToString(encoded))
	decoded, err := cis.DecodeExact(encoded, cis4.DecodeCredentialInfo)
	require.NoError(t, err)
	assert.Equal(t, info, decoded)

	_, err = cis4.DecodeCredentialEntryResponse(data[:len(data)-1])
	assert.ErrorIs(t, err, wire.ErrUnderflow)
	_, err = cis.DecodeExact(test.DecodeHexString(key1Hex+"02"), cis4.DecodeCredentialInfo)
	assert.ErrorIs(t, err, wire.ErrInvalidBoolean)
}

func TestCredentialStatusResponse(t *testing.T) {
	testDefs := []struct {
		hexData string
		status  cis4.CredentialStatus
		name    string
	}{
		{hexData: "00", status: cis4.StatusActive, name: "Active"},
		{hexData: "01", status: cis4.StatusRevoked, name: "Revoked"},
		{hexData: "02", status: cis4.StatusExpired, name: "Expired"},
		{hexData: "03", status: cis4.StatusNotActivated, name: "NotActivated"},
	}
	for _, testDef := range testDefs {
		status, err := cis4.DecodeCredentialStatusResponse(test.DecodeHexString(testDef.hexData))
		require.NoError(t, err)
		assert.Equal(t, testDef.status, status)
		assert.Equal(t, testDef.name, status.String())
	}
	_, err := cis4.DecodeCredentialStatusResponse(test.DecodeHexString("04"))
	assert.ErrorIs(t, err, wire.ErrInvalidTag)
	_, err = cis4.DecodeCredentialStatusResponse(test.DecodeHexString("0000"))
	assert.ErrorIs(t, err, wire.ErrTrailingBytes)
}

func TestRegistryResponses(t *testing.T) {
	issuer, err := cis4.DecodeIssuerResponse(test.DecodeHexString(key2Hex))
	require.NoError(t, err)
	assert.Equal(t, key2, issuer)

	metadataHex := "0200616200" + "03616263" + schemaRefHex
	metadata, err := cis4.DecodeRegistryMetadataResponse(test.DecodeHexString(metadataHex))
	require.NoError(t, err)
	expected := cis4.RegistryMetadata{
		IssuerMetadata:   cis.MetadataUrl{Url: "ab"},
		CredentialType:   "abc",
		CredentialSchema: schemaRef,
	}
	assert.Equal(t, expected, metadata)
	encoded, err := cis.Encode(expected.Encode)
	require.NoError(t, err)
	assert.Equal(t, metadataHex, hex.EncodeToString(encoded))

	keysHex := "0200" + key1Hex + "0100000000000000" + key2Hex + "0000000000000000"
	keys, err := cis4.DecodeRevocationKeysResponse(test.DecodeHexString(keysHex))
	require.NoError(t, err)
	assert.Equal(t, []cis4.RevocationKey{{Key: key1, Nonce: 1}, {Key: key2, Nonce: 0}}, keys)
	encoded, err = cis4.EncodeRevocationKeysResponse(keys)
	require.NoError(t, err)
	assert.Equal(t, keysHex, hex.EncodeToString(encoded))
}

func TestParameters(t *testing.T) {
	testDefs := []struct {
		name    string
		param   interface{ Encode(*wire.Writer) error }
		decode  func([]byte) (any, error)
		hexData string
	}{
		{
			name:    "register credential",
			param:   cis4.RegisterCredentialParam{Info: testInfo, AdditionalData: cis.AdditionalData{0xff}},
			decode:  func(data []byte) (any, error) { return cis4.DecodeRegisterCredentialParam(data) },
			hexData: testInfoHex + "0100ff",
		},
		{
			name: "revoke credential with reason",
			param: cis4.RevokeCredentialIssuerParam{
				CredentialId:   key1,
				Reason:         &reason,
				AdditionalData: cis.AdditionalData{},
			},
			decode:  func(data []byte) (any, error) { return cis4.DecodeRevokeCredentialIssuerParam(data) },
			hexData: key1Hex + "01" + "026e6f" + "0000",
		},
		{
			name:    "revoke credential",
			param:   cis4.RevokeCredentialIssuerParam{CredentialId: key1, AdditionalData: cis.AdditionalData{}},
			decode:  func(data []byte) (any, error) { return cis4.DecodeRevokeCredentialIssuerParam(data) },
			hexData: key1Hex + "00" + "0000",
		},
		{
			name: "update revocation keys",
			param: cis4.UpdateRevocationKeysParam{
				AdditionalData: cis.AdditionalData{},
				Keys:           []types.PublicKey{key1, key2},
			},
			decode:  func(data []byte) (any, error) { return cis4.DecodeUpdateRevocationKeysParam(data) },
			hexData: "0000" + "0200" + key1Hex + key2Hex,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data, err := cis.Encode(testDef.param.Encode)
			require.NoError(t, err)
			assert.Equal(t, testDef.hexData, hex.EncodeToString(data))
			decoded, err := testDef.decode(data)
			require.NoError(t, err)
			assert.Equal(t, testDef.param, decoded)
		})
	}

	long := strings.Repeat("x", 256)
	_, err := cis.Encode(cis4.RevokeCredentialIssuerParam{CredentialId: key1, Reason: &long}.Encode)
	assert.Error(t, err)
}

func TestEvents(t *testing.T) {
	testDefs := []struct {
		name    string
		event   cis4.Event
		hexData string
	}{
		{
			name:    "register credential",
			event:   cis4.RegisterCredentialEvent{CredentialId: key1, SchemaRef: schemaRef, CredentialType: "abc"},
			hexData: "f9" + key1Hex + schemaRefHex + "03616263",
		},
		{
			name: "revoke by other",
			event: cis4.RevokeCredentialEvent{
				CredentialId: key1,
				Revoker:      cis4.Revoker{Kind: cis4.RevokerOther, Key: key2},
				Reason:       &reason,
			},
			hexData: "f8" + key1Hex + "02" + key2Hex + "01" + "026e6f",
		},
		{
			name:    "revoke by issuer",
			event:   cis4.RevokeCredentialEvent{CredentialId: key1, Revoker: cis4.Revoker{Kind: cis4.RevokerIssuer}},
			hexData: "f8" + key1Hex + "00" + "00",
		},
		{
			name:    "issuer metadata",
			event:   cis4.IssuerMetadataEvent{MetadataUrl: cis.MetadataUrl{Url: "ab"}},
			hexData: "f7" + "0200616200",
		},
		{
			name:    "credential metadata",
			event:   cis4.CredentialMetadataEvent{CredentialId: key1, MetadataUrl: cis.MetadataUrl{Url: "ab"}},
			hexData: "f6" + key1Hex + "0200616200",
		},
		{
			name:    "credential schema",
			event:   cis4.CredentialSchemaEvent{CredentialType: "abc", SchemaRef: schemaRef},
			hexData: "f5" + "03616263" + schemaRefHex,
		},
		{
			name:    "revocation key",
			event:   cis4.RevocationKeyEvent{Key: key2, Action: cis4.RevocationKeyRemove},
			hexData: "f4" + key2Hex + "01",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data, err := cis.Encode(testDef.event.Encode)
			require.NoError(t, err)
			assert.Equal(t, testDef.hexData, hex.EncodeToString(data))
			event, err := cis4.DecodeEvent(data)
			require.NoError(t, err)
			assert.Equal(t, testDef.event, event)
			assert.Equal(t, testDef.event.Tag(), event.Tag())
		})
	}
}

func TestDecodeEventErrors(t *testing.T) {
	_, err := cis4.DecodeEvent(test.DecodeHexString("f3"))
	assert.ErrorIs(t, err, cis.ErrUnknownEvent)
	// CIS-2 events are not CIS-4 events
	_, err = cis4.DecodeEvent(test.DecodeHexString("ff"))
	assert.ErrorIs(t, err, cis.ErrUnknownEvent)
	_, err = cis4.DecodeEvent(test.DecodeHexString("f4" + key2Hex + "02"))
	assert.ErrorIs(t, err, wire.ErrInvalidTag)
	_, err = cis4.DecodeEvent(test.DecodeHexString("f8" + key1Hex + "03"))
	assert.ErrorIs(t, err, wire.ErrInvalidTag)
	_, err = cis4.DecodeEvent(test.DecodeHexString("f6" + key1Hex))
	assert.ErrorIs(t, err, wire.ErrUnderflow)
}

func TestRegistry(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := node_mock.NewNode(
		"credentials",
		node_mock.ConversationEntry{
			Entrypoint:  cis4.CredentialEntryEntrypoint,
			Parameter:   test.DecodeHexString(key1Hex),
			ReturnValue: test.DecodeHexString(testInfoHex + schemaRefHex + "0700000000000000"),
		},
		node_mock.ConversationEntry{
			Entrypoint:  cis4.CredentialStatusEntrypoint,
			Parameter:   test.DecodeHexString(key1Hex),
			ReturnValue: test.DecodeHexString("01"),
		},
		node_mock.ConversationEntry{
			Entrypoint:  cis4.IssuerEntrypoint,
			ReturnValue: test.DecodeHexString(key2Hex),
		},
		node_mock.ConversationEntry{
			Entrypoint:  cis4.RegistryMetadataEntrypoint,
			ReturnValue: test.DecodeHexString("0200616200" + "03616263" + schemaRefHex),
		},
		node_mock.ConversationEntry{
			Entrypoint:  cis4.RevocationKeysEntrypoint,
			ReturnValue: test.DecodeHexString("0000"),
		},
		node_mock.ConversationEntry{
			Entrypoint:   cis4.CredentialStatusEntrypoint,
			RejectReason: -42,
		},
	)
	registry := cis4.NewRegistry(node.Client())
	ctx := context.Background()

	entry, err := registry.CredentialEntry(ctx, key1)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), entry.RevocationNonce)
	assert.Equal(t, testInfo, entry.Info)

	status, err := registry.CredentialStatus(ctx, key1)
	require.NoError(t, err)
	assert.Equal(t, cis4.StatusRevoked, status)

	issuer, err := registry.Issuer(ctx)
	require.NoError(t, err)
	assert.Equal(t, key2, issuer)

	metadata, err := registry.RegistryMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", metadata.CredentialType)

	keys, err := registry.RevocationKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = registry.CredentialStatus(ctx, key2)
	assert.ErrorContains(t, err, "rejected with code -42")
	require.NoError(t, node.Done())

	payload, err := registry.CreateRegisterCredential(
		ctx,
		cis4.RegisterCredentialParam{Info: testInfo, AdditionalData: cis.AdditionalData{}},
		20000,
	)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiveName("credentials.registerCredential"), payload.ReceiveName)
	assert.Equal(t, testInfoHex+"0000", hex.EncodeToString(payload.Message))

	payload, err = registry.CreateRevokeCredentialIssuer(
		ctx,
		cis4.RevokeCredentialIssuerParam{CredentialId: key1, Reason: &reason},
		20000,
	)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiveName("credentials.revokeCredentialIssuer"), payload.ReceiveName)

	payload, err = registry.CreateRegisterRevocationKeys(ctx, cis4.UpdateRevocationKeysParam{Keys: []types.PublicKey{key2}}, 20000)
	require.NoError(t, err)
	assert.Equal(t, "0000"+"0100"+key2Hex, hex.EncodeToString(payload.Message))

	payload, err = registry.CreateRemoveRevocationKeys(ctx, cis4.UpdateRevocationKeysParam{Keys: []types.PublicKey{key2}}, 20000)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiveName("credentials.removeRevocationKeys"), payload.ReceiveName)
}
