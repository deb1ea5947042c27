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

package signing_test

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/blinklabs-io/concordium-go/internal/test"
	"github.com/blinklabs-io/concordium-go/signing"
	"github.com/blinklabs-io/concordium-go/transaction"
	"github.com/blinklabs-io/concordium-go/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccount() types.AccountAddress {
	addr, _ := types.NewAccountAddressFromBytes(test.RepeatByte(0x11, 32))
	return addr
}

func publicKey(t *testing.T, pub ed25519.PublicKey) types.PublicKey {
	ret, err := types.NewPublicKey(pub)
	require.NoError(t, err)
	return ret
}

func TestMessageDigest(t *testing.T) {
	digest := signing.MessageDigest(testAccount(), []byte("Hello world"))
	assert.Equal(
		t,
		"37259611e40b89c420fab778b4c08e440973ee62873f0b1fec13523b0656cfd7",
		digest.String(),
	)
}

func TestKeySources(t *testing.T) {
	_, priv0 := test.Ed25519Key(0x01)
	_, priv1 := test.Ed25519Key(0x02)
	seed0 := priv0.Seed()
	seed1 := priv1.Seed()
	exportJSON := fmt.Sprintf(`{
		"type": "concordium-browser-wallet-account",
		"v": 0,
		"environment": "testnet",
		"value": {
			"accountKeys": {
				"keys": {
					"0": {"keys": {"0": {"signKey": %q, "verifyKey": ""}}, "threshold": 1},
					"1": {"keys": {"2": {"signKey": %q, "verifyKey": ""}}, "threshold": 1}
				},
				"threshold": 2
			},
			"credentials": {"0": "", "1": ""},
			"address": "35G83kEaPTNk9DkdkbXtGyRiBvZpxAbqgYSzdLMfJLkKwHU7TE"
		}
	}`, hex.EncodeToString(seed0), hex.EncodeToString(seed1))
	export, err := signing.ParseWalletExport([]byte(exportJSON))
	require.NoError(t, err)
	assert.Equal(t, testAccount(), export.Address())
	assert.Equal(t, types.NetworkTestnet, export.Network())

	testDefs := []struct {
		name     string
		source   signing.KeySource
		expected signing.AccountKeys
	}{
		{
			name:     "single key",
			source:   signing.SingleKey(seed0),
			expected: signing.AccountKeys{0: {0: seed0}},
		},
		{
			name:     "simple account keys",
			source:   signing.SimpleAccountKeys{0: {0: seed0}, 1: {2: seed1}, 4: {}},
			expected: signing.AccountKeys{0: {0: seed0}, 1: {2: seed1}},
		},
		{
			name:     "wallet export",
			source:   export,
			expected: signing.AccountKeys{0: {0: seed0}, 1: {2: seed1}},
		},
	}
	for _, testDef := range testDefs {
		keys, err := testDef.source.AccountKeys()
		require.NoError(t, err, testDef.name)
		assert.Equal(t, testDef.expected, keys, testDef.name)
	}

	_, err = signing.SingleKey(nil).AccountKeys()
	assert.Error(t, err)
	_, err = signing.SimpleAccountKeys{}.AccountKeys()
	assert.Error(t, err)
	_, err = signing.ParseWalletExport([]byte("{"))
	assert.Error(t, err)
}

func TestSignTransaction(t *testing.T) {
	pub, priv := test.Ed25519Key(0x01)
	signer, err := signing.NewSigner(signing.SingleKey(priv.Seed()))
	require.NoError(t, err)
	assert.Equal(t, 1, signer.SignatureCount())

	tx := &transaction.AccountTransaction{
		Sender:  testAccount(),
		Nonce:   1,
		Expiry:  1700000000,
		Payload: &transaction.Transfer{ToAddress: testAccount(), Amount: 100},
	}
	signed, err := signing.SignTransaction(tx, signer)
	require.NoError(t, err)
	digest, err := tx.SignDigest(1)
	require.NoError(t, err)
	require.Contains(t, signed.Signature, uint8(0))
	assert.True(t, ed25519.Verify(pub, digest.Bytes(), signed.Signature[0][0]))

	// A 64 byte private key gives the same signature as its seed
	signer64, err := signing.NewSigner(signing.SingleKey(priv))
	require.NoError(t, err)
	signed64, err := signing.SignTransaction(tx, signer64)
	require.NoError(t, err)
	assert.Equal(t, signed.Signature, signed64.Signature)

	blob, err := signed.Serialize()
	require.NoError(t, err)
	decoded, err := transaction.Deserialize(blob)
	require.NoError(t, err)
	assert.Equal(t, signed.Signature, decoded.Signature)
}

func TestSignFuncInjection(t *testing.T) {
	var seen [][]byte
	signFunc := func(message []byte, key []byte) ([]byte, error) {
		seen = append(seen, message)
		return append([]byte{}, key...), nil
	}
	signer, err := signing.NewSigner(
		signing.SimpleAccountKeys{0: {0: {0x01}, 1: {0x02}}},
		signing.WithSignFunc(signFunc),
	)
	require.NoError(t, err)
	sig, err := signing.SignMessage(testAccount(), []byte("Hello world"), signer)
	require.NoError(t, err)
	assert.Equal(t, transaction.AccountTransactionSignature{0: {0: {0x01}, 1: {0x02}}}, sig)
	require.Len(t, seen, 2)
	digest := signing.MessageDigest(testAccount(), []byte("Hello world"))
	assert.Equal(t, digest.Bytes(), seen[0])

	failing, err := signing.NewSigner(
		signing.SingleKey{0x01},
		signing.WithSignFunc(func([]byte, []byte) ([]byte, error) {
			return nil, errors.New("device unavailable")
		}),
	)
	require.NoError(t, err)
	_, err = signing.SignMessage(testAccount(), nil, failing)
	assert.ErrorContains(t, err, "device unavailable")

	_, err = signing.Ed25519Sign(nil, []byte{0x01})
	assert.Error(t, err)
}

type staticProvider struct {
	info *signing.AccountInfo
}

func (p staticProvider) AccountInfo(ctx context.Context, _ types.AccountAddress) (*signing.AccountInfo, error) {
	if p.info == nil {
		return nil, errors.New("account not found")
	}
	return p.info, ctx.Err()
}

func TestVerifyMessageSignature(t *testing.T) {
	pub0, priv0 := test.Ed25519Key(0x01)
	pub1, priv1 := test.Ed25519Key(0x02)
	message := []byte("Hello world")
	info := &signing.AccountInfo{
		Address: testAccount(),
		Credentials: map[uint8]signing.CredentialInfo{
			0: {
				Keys:      map[uint8]types.PublicKey{0: publicKey(t, pub0), 1: publicKey(t, pub1)},
				Threshold: 2,
			},
		},
		Threshold: 1,
	}
	signer, err := signing.NewSigner(signing.SimpleAccountKeys{0: {0: priv0.Seed(), 1: priv1.Seed()}})
	require.NoError(t, err)
	sig, err := signing.SignMessage(testAccount(), message, signer)
	require.NoError(t, err)

	ok, err := signing.VerifyMessageSignature(message, sig, info)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = signing.VerifyMessageSignature([]byte("Hello world!"), sig, info)
	require.NoError(t, err)
	assert.False(t, ok)

	// Below the credential threshold
	partial := transaction.AccountTransactionSignature{0: {0: sig[0][0]}}
	ok, err = signing.VerifyMessageSignature(message, partial, info)
	require.NoError(t, err)
	assert.False(t, ok)

	// Below the account threshold
	strict := *info
	strict.Threshold = 2
	ok, err = signing.VerifyMessageSignature(message, sig, &strict)
	require.NoError(t, err)
	assert.False(t, ok)

	// Without signatures nothing is verified, even with zero thresholds
	lenient := signing.AccountInfo{
		Address:     testAccount(),
		Credentials: map[uint8]signing.CredentialInfo{0: {Keys: info.Credentials[0].Keys}},
	}
	for _, empty := range []transaction.AccountTransactionSignature{nil, {}, {0: {}}} {
		ok, err = signing.VerifyMessageSignature(message, empty, &lenient)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	_, err = signing.VerifyMessageSignature(
		message,
		transaction.AccountTransactionSignature{5: {0: sig[0][0]}},
		info,
	)
	assert.ErrorIs(t, err, signing.ErrUnknownCredential)
	_, err = signing.VerifyMessageSignature(
		message,
		transaction.AccountTransactionSignature{0: {0: sig[0][0], 7: sig[0][1]}},
		info,
	)
	assert.ErrorIs(t, err, signing.ErrUnknownKey)

	// A small order point is rejected before verification
	bad := *info
	identity := types.PublicKey{0x01}
	bad.Credentials = map[uint8]signing.CredentialInfo{
		0: {Keys: map[uint8]types.PublicKey{0: identity, 1: publicKey(t, pub1)}, Threshold: 2},
	}
	_, err = signing.VerifyMessageSignature(message, sig, &bad)
	assert.Error(t, err)

	ok, err = signing.VerifyMessageSignatureFor(
		context.Background(),
		staticProvider{info: info},
		testAccount(),
		message,
		sig,
	)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = signing.VerifyMessageSignatureFor(
		context.Background(),
		staticProvider{},
		testAccount(),
		message,
		sig,
	)
	assert.ErrorContains(t, err, "account not found")
}

func TestSignCredentialDeployment(t *testing.T) {
	pub, priv := test.Ed25519Key(0x03)
	deployment := &transaction.CredentialDeployment{
		Credential: &transaction.UnsignedCredentialDeploymentInfo{
			CredentialPublicKeys: transaction.CredentialPublicKeys{
				Keys:      map[uint8]types.PublicKey{0: publicKey(t, pub)},
				Threshold: 1,
			},
			Policy: transaction.Policy{
				ValidTo:   transaction.YearMonth{Year: 2030, Month: 1},
				CreatedAt: transaction.YearMonth{Year: 2025, Month: 1},
			},
		},
		Expiry: 1700000000,
	}
	sigs, err := signing.SignCredentialDeployment(
		deployment,
		map[uint8][]byte{1: {0x02}, 0: {0x01}},
		signing.WithSignFunc(func(_ []byte, key []byte) ([]byte, error) {
			return key, nil
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0x01}, {0x02}}, sigs)

	sigs, err = signing.SignCredentialDeployment(deployment, map[uint8][]byte{0: priv.Seed()})
	require.NoError(t, err)
	digest, err := deployment.SignDigest()
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.True(t, ed25519.Verify(pub, digest.Bytes(), sigs[0]))
	_, err = deployment.Serialize(sigs)
	require.NoError(t, err)
}
