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


package cis0_test

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/concordium-go/cis"
	"github.com/blinklabs-io/concordium-go/cis/cis0"
	"github.com/blinklabs-io/concordium-go/contract"
	"github.com/blinklabs-io/concordium-go/internal/test"
	"github.com/blinklabs-io/concordium-go/internal/test/node_mock"
	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	supportsParamHex    = "0200" + "054349532d30" + "054349532d32"
	supportsResponseHex = "0300" + "00" + "01" + "0201" + "0500000000000000" + "0100000000000000"
)

var supportsResults = []cis0.SupportResult{
	{Kind: cis0.NoSupport},
	{Kind: cis0.Support},
	{Kind: cis0.SupportBy, Addresses: []types.ContractAddress{types.NewContractAddress(5, 1)}},
}

func TestSupportsParameter(t *testing.T) {
	data, err := cis0.EncodeSupportsParameter([]cis.StandardIdentifier{cis.CIS0, cis.CIS2})
	require.NoError(t, err)
	assert.Equal(t, supportsParamHex, hex.EncodeToString(data))
}

func TestSupportsResponse(t *testing.T) {
	results, err := cis0.DecodeSupportsResponse(test.DecodeHexString(supportsResponseHex))
	require.NoError(t, err)
	assert.Equal(t, supportsResults, results)
	data, err := cis0.EncodeSupportsResponse(results)
	require.NoError(t, err)
	assert.Equal(t, supportsResponseHex, hex.EncodeToString(data))

	_, err = cis0.DecodeSupportsResponse(test.DecodeHexString("010003"))
	assert.ErrorIs(t, err, wire.ErrInvalidTag)
	_, err = cis0.DecodeSupportsResponse(test.DecodeHexString("01000201"))
	assert.ErrorIs(t, err, wire.ErrUnderflow)
	_, err = cis0.EncodeSupportsResponse([]cis0.SupportResult{{Kind: 3}})
	assert.Error(t, err)
}

func TestSupports(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := node_mock.NewNode(
		"token",
		node_mock.ConversationEntry{
			Entrypoint:  cis0.SupportsEntrypoint,
			Parameter:   test.DecodeHexString("0100054349532d32"),
			ReturnValue: test.DecodeHexString("010001"),
		},
		node_mock.ConversationEntry{
			Entrypoint:  cis0.SupportsEntrypoint,
			Parameter:   test.DecodeHexString(supportsParamHex),
			ReturnValue: test.DecodeHexString("0100" + "01"),
		},
		node_mock.ConversationEntry{
			Entrypoint:   cis0.SupportsEntrypoint,
			RejectReason: -2,
		},
	)
	client := node.Client()
	ctx := context.Background()

	results, err := cis0.Supports(ctx, client, cis.CIS2)
	require.NoError(t, err)
	assert.Equal(t, []cis0.SupportResult{{Kind: cis0.Support}}, results)

	// A response with fewer answers than queries is rejected
	_, err = cis0.Supports(ctx, client, cis.CIS0, cis.CIS2)
	assert.ErrorContains(t, err, "expected 2 results, got 1")

	_, err = cis0.Supports(ctx, client, cis.CIS4)
	var invokeErr *contract.InvokeError
	require.ErrorAs(t, err, &invokeErr)
	assert.Equal(t, int32(-2), invokeErr.RejectReason)
	assert.Equal(t, cis0.SupportsEntrypoint, invokeErr.Entrypoint)
	require.NoError(t, node.Done())
}
