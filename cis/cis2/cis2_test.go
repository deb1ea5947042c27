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


package cis2_test

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/blinklabs-io/concordium-go/cis"
	"github.com/blinklabs-io/concordium-go/cis/cis2"
	"github.com/blinklabs-io/concordium-go/internal/test"
	"github.com/blinklabs-io/concordium-go/internal/test/node_mock"
	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	accountHex  = "00" + "0101010101010101010101010101010101010101010101010101010101010101"
	contractHex = "01" + "0500000000000000" + "0100000000000000"
)

var (
	testAccount  = cis.AccountAddress(types.AccountAddress(test.RepeatByte(0x01, 32)))
	testContract = cis.ContractAddress(types.NewContractAddress(5, 1))
)

func TestTokenAmount(t *testing.T) {
	testDefs := []struct {
		amount  string
		hexData string
	}{
		{amount: "0", hexData: "00"},
		{amount: "300", hexData: "ac02"},
		{amount: "82000000", hexData: "80f18c27"},
		{
			amount:  "115792089237316195423570985008687907853269984665640564039457584007913129639935",
			hexData: strings.Repeat("ff", 36) + "0f",
		},
	}
	for _, testDef := range testDefs {
		amount, err := cis2.ParseTokenAmount(testDef.amount)
		require.NoError(t, err)
		data, err := cis.Encode(func(w *wire.Writer) error {
			return cis2.EncodeTokenAmount(w, amount)
		})
		require.NoError(t, err)
		assert.Equal(t, testDef.hexData, hex.EncodeToString(data))
		decoded, err := cis.DecodeExact(data, cis2.DecodeTokenAmount)
		require.NoError(t, err)
		assert.Equal(t, testDef.amount, decoded.Dec())
	}
}

func TestTokenAmountInvalid(t *testing.T) {
	// 2^256 fits in 37 bytes but not in 256 bits
	_, err := cis.DecodeExact(test.DecodeHexString(strings.Repeat("80", 36)+"10"), cis2.DecodeTokenAmount)
	assert.ErrorContains(t, err, "exceeds 256 bits")
	_, err = cis.DecodeExact(test.DecodeHexString(strings.Repeat("80", 37)+"01"), cis2.DecodeTokenAmount)
	assert.ErrorContains(t, err, "exceeds 37 bytes")
	_, err = cis.DecodeExact(test.DecodeHexString("80"), cis2.DecodeTokenAmount)
	assert.ErrorIs(t, err, wire.ErrUnderflow)
	_, err = cis2.ParseTokenAmount("12ab")
	assert.Error(t, err)
}

func TestBalanceOfResponse(t *testing.T) {
	amounts, err := cis2.DecodeBalanceOfResponse(test.DecodeHexString("0100" + "80f18c27"))
	require.NoError(t, err)
	require.Len(t, amounts, 1)
	assert.Equal(t, uint64(82000000), amounts[0].Uint64())
}

func TestTokenId(t *testing.T) {
	tokenId, err := cis2.NewTokenIdFromHex("0a0b")
	require.NoError(t, err)
	assert.Equal(t, "0a0b", tokenId.String())
	data, err := cis.Encode(tokenId.Encode)
	require.NoError(t, err)
	assert.Equal(t, "020a0b", hex.EncodeToString(data))

	_, err = cis2.NewTokenIdFromHex(strings.Repeat("00", 256))
	assert.Error(t, err)
	_, err = cis2.NewTokenIdFromHex("xyz")
	assert.Error(t, err)
}

func TestTransferParameter(t *testing.T) {
	transfers := []cis2.Transfer{
		{
			TokenId: cis2.TokenId{0x01},
			Amount:  cis2.NewTokenAmount(300),
			From:    testAccount,
			To:      cis.ContractReceiver(types.NewContractAddress(5, 1), "ep"),
			Data:    cis.AdditionalData{},
		},
	}
	expected := "0100" + "0101" + "ac02" + accountHex + contractHex + "0200" + "6570" + "0000"
	data, err := cis2.EncodeTransferParameter(transfers)
	require.NoError(t, err)
	assert.Equal(t, expected, hex.EncodeToString(data))
	decoded, err := cis2.DecodeTransferParameter(data)
	require.NoError(t, err)
	assert.Equal(t, transfers, decoded)

	_, err = cis2.EncodeTransferParameter([]cis2.Transfer{{TokenId: cis2.TokenId{0x01}, From: testAccount}})
	assert.ErrorContains(t, err, "missing token amount")
}

func TestQueryParameters(t *testing.T) {
	data, err := cis2.EncodeBalanceOfParameter([]cis2.BalanceOfQuery{
		{TokenId: cis2.TokenId{}, Address: testContract},
	})
	require.NoError(t, err)
	assert.Equal(t, "0100"+"00"+contractHex, hex.EncodeToString(data))

	data, err = cis2.EncodeOperatorOfParameter([]cis2.OperatorOfQuery{
		{Owner: testAccount, Address: testContract},
	})
	require.NoError(t, err)
	assert.Equal(t, "0100"+accountHex+contractHex, hex.EncodeToString(data))

	data, err = cis2.EncodeUpdateOperatorParameter([]cis2.UpdateOperator{
		{Update: cis2.AddOperator, Operator: testContract},
		{Update: cis2.RemoveOperator, Operator: testAccount},
	})
	require.NoError(t, err)
	assert.Equal(t, "0200"+"01"+contractHex+"00"+accountHex, hex.EncodeToString(data))

	data, err = cis2.EncodeTokenMetadataParameter([]cis2.TokenId{{0x01}, {}})
	require.NoError(t, err)
	assert.Equal(t, "0200"+"0101"+"00", hex.EncodeToString(data))
}

func TestResponses(t *testing.T) {
	operators, err := cis2.DecodeOperatorOfResponse(test.DecodeHexString("0200" + "0100"))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, operators)
	_, err = cis2.DecodeOperatorOfResponse(test.DecodeHexString("0100" + "02"))
	assert.ErrorIs(t, err, wire.ErrInvalidBoolean)

	urls, err := cis2.DecodeTokenMetadataResponse(test.DecodeHexString("0100" + "0200616200"))
	require.NoError(t, err)
	assert.Equal(t, []cis.MetadataUrl{{Url: "ab"}}, urls)
}

func TestEvents(t *testing.T) {
	testDefs := []struct {
		name    string
		event   cis2.Event
		hexData string
	}{
		{
			name: "transfer",
			event: cis2.TransferEvent{
				TokenId: cis2.TokenId{0x01},
				Amount:  cis2.NewTokenAmount(300),
				From:    testAccount,
				To:      testContract,
			},
			hexData: "ff" + "0101" + "ac02" + accountHex + contractHex,
		},
		{
			name:    "mint",
			event:   cis2.MintEvent{TokenId: cis2.TokenId{}, Amount: cis2.NewTokenAmount(10), Owner: testAccount},
			hexData: "fe" + "00" + "0a" + accountHex,
		},
		{
			name:    "burn",
			event:   cis2.BurnEvent{TokenId: cis2.TokenId{}, Amount: cis2.NewTokenAmount(1), Owner: testContract},
			hexData: "fd" + "00" + "01" + contractHex,
		},
		{
			name:    "update operator",
			event:   cis2.UpdateOperatorEvent{Update: cis2.AddOperator, Owner: testAccount, Operator: testContract},
			hexData: "fc" + "01" + accountHex + contractHex,
		},
		{
			name:    "token metadata",
			event:   cis2.TokenMetadataEvent{TokenId: cis2.TokenId{0x01}, MetadataUrl: cis.MetadataUrl{Url: "ab"}},
			hexData: "fb" + "0101" + "0200616200",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data, err := cis.Encode(testDef.event.Encode)
			require.NoError(t, err)
			assert.Equal(t, testDef.hexData, hex.EncodeToString(data))
			event, err := cis2.DecodeEvent(data)
			require.NoError(t, err)
			assert.Equal(t, testDef.event, event)
			assert.Equal(t, testDef.event.Tag(), event.Tag())
		})
	}
}

func TestDecodeEventErrors(t *testing.T) {
	_, err := cis2.DecodeEvent(test.DecodeHexString("fa00"))
	assert.ErrorIs(t, err, cis.ErrUnknownEvent)
	_, err = cis2.DecodeEvent(test.DecodeHexString("fc02"))
	assert.ErrorIs(t, err, wire.ErrInvalidTag)
	_, err = cis2.DecodeEvent(test.DecodeHexString("fb0101"))
	assert.ErrorIs(t, err, wire.ErrUnderflow)
	_, err = cis2.DecodeEvent(test.DecodeHexString("fb" + "0101" + "0200616200" + "00"))
	assert.ErrorIs(t, err, wire.ErrTrailingBytes)
}

func TestContract(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := node_mock.NewNode(
		"token",
		node_mock.ConversationEntry{
			Entrypoint:  cis2.BalanceOfEntrypoint,
			Parameter:   test.DecodeHexString("0100" + "0101" + accountHex),
			ReturnValue: test.DecodeHexString("0100" + "80f18c27"),
		},
		node_mock.ConversationEntry{
			Entrypoint:  cis2.OperatorOfEntrypoint,
			Parameter:   test.DecodeHexString("0100" + accountHex + contractHex),
			ReturnValue: test.DecodeHexString("0100" + "01"),
		},
		node_mock.ConversationEntry{
			Entrypoint:  cis2.TokenMetadataEntrypoint,
			Parameter:   test.DecodeHexString("0100" + "0101"),
			ReturnValue: test.DecodeHexString("0100" + "0200616200"),
		},
		node_mock.ConversationEntry{
			Entrypoint:  cis2.BalanceOfEntrypoint,
			ReturnValue: test.DecodeHexString("0100" + "00"),
		},
		node_mock.ConversationEntry{
			Entrypoint:  "supports",
			Parameter:   test.DecodeHexString("0100" + "054349532d32"),
			ReturnValue: test.DecodeHexString("0100" + "01"),
		},
	)
	token := cis2.NewContract(node.Client())
	ctx := context.Background()

	balances, err := token.BalanceOf(ctx, cis2.BalanceOfQuery{TokenId: cis2.TokenId{0x01}, Address: testAccount})
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "82000000", balances[0].Dec())

	operators, err := token.OperatorOf(ctx, cis2.OperatorOfQuery{Owner: testAccount, Address: testContract})
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, operators)

	urls, err := token.TokenMetadata(ctx, cis2.TokenId{0x01})
	require.NoError(t, err)
	assert.Equal(t, []cis.MetadataUrl{{Url: "ab"}}, urls)

	// One balance for two queries
	_, err = token.BalanceOf(
		ctx,
		cis2.BalanceOfQuery{TokenId: cis2.TokenId{}, Address: testAccount},
		cis2.BalanceOfQuery{TokenId: cis2.TokenId{}, Address: testContract},
	)
	assert.ErrorContains(t, err, "balanceOf returned 1 results for 2 queries")

	supports, err := token.Supports(ctx, cis.CIS2)
	require.NoError(t, err)
	require.Len(t, supports, 1)
	require.NoError(t, node.Done())

	payload, err := token.CreateTransfer(ctx, 10000, cis2.Transfer{
		TokenId: cis2.TokenId{0x01},
		Amount:  cis2.NewTokenAmount(300),
		From:    testAccount,
		To:      cis.AccountReceiver(types.AccountAddress(test.RepeatByte(0x02, 32))),
	})
	require.NoError(t, err)
	assert.Equal(t, types.ReceiveName("token.transfer"), payload.ReceiveName)
	assert.Equal(t, types.Energy(10000), payload.MaxContractExecutionEnergy)
	assert.Equal(
		t,
		"0100"+"0101"+"ac02"+accountHex+"00"+strings.Repeat("02", 32)+"0000",
		hex.EncodeToString(payload.Message),
	)

	payload, err = token.CreateUpdateOperator(ctx, 5000, cis2.UpdateOperator{Update: cis2.AddOperator, Operator: testContract})
	require.NoError(t, err)
	assert.Equal(t, types.ReceiveName("token.updateOperator"), payload.ReceiveName)
	assert.Equal(t, "0100"+"01"+contractHex, hex.EncodeToString(payload.Message))
}
