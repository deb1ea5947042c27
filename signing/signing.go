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

// Package signing signs transactions, credential deployments and messages with account
// keys and verifies message signatures against account credentials.
package signing

import (
	"crypto/ed25519"
	"fmt"
	"maps"
	"slices"

	"github.com/blinklabs-io/concordium-go/transaction"
	"github.com/blinklabs-io/concordium-go/types"
)

// SignFunc signs message with a private key
type SignFunc func(message []byte, key []byte) ([]byte, error)

// Ed25519Sign is the default SignFunc. The key is either a 32 byte seed or a 64 byte
// private key
func Ed25519Sign(message []byte, key []byte) ([]byte, error) {
	switch len(key) {
	case ed25519.SeedSize:
		return ed25519.Sign(ed25519.NewKeyFromSeed(key), message), nil
	case ed25519.PrivateKeySize:
		return ed25519.Sign(ed25519.PrivateKey(key), message), nil
	default:
		return nil, fmt.Errorf(
			"invalid ed25519 key length %d: expected %d or %d",
			len(key),
			ed25519.SeedSize,
			ed25519.PrivateKeySize,
		)
	}
}

// AccountSigner signs digests on behalf of an account
type AccountSigner interface {
	// SignatureCount is the number of signatures Sign produces
	SignatureCount() int
	Sign(digest []byte) (transaction.AccountTransactionSignature, error)
}

// Signer is an AccountSigner backed by private keys
type Signer struct {
	keys     AccountKeys
	signFunc SignFunc
}

type SignerOptionFunc func(*Signer)

// WithSignFunc replaces the ed25519 signing function
func WithSignFunc(signFunc SignFunc) SignerOptionFunc {
	return func(s *Signer) {
		s.signFunc = signFunc
	}
}

// NewSigner normalizes the keys of source into a Signer
func NewSigner(source KeySource, opts ...SignerOptionFunc) (*Signer, error) {
	keys, err := source.AccountKeys()
	if err != nil {
		return nil, err
	}
	s := &Signer{
		keys:     keys,
		signFunc: Ed25519Sign,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Signer) SignatureCount() int {
	return s.keys.Count()
}

// Sign signs digest once with every key
func (s *Signer) Sign(digest []byte) (transaction.AccountTransactionSignature, error) {
	ret := make(transaction.AccountTransactionSignature, len(s.keys))
	for credIdx, cred := range s.keys {
		sigs := make(transaction.CredentialSignature, len(cred))
		for keyIdx, key := range cred {
			sig, err := s.signFunc(digest, key)
			if err != nil {
				return nil, fmt.Errorf("sign with credential %d key %d: %w", credIdx, keyIdx, err)
			}
			sigs[keyIdx] = sig
		}
		ret[credIdx] = sigs
	}
	return ret, nil
}

// SignTransaction signs tx with every key of signer
func SignTransaction(
	tx *transaction.AccountTransaction,
	signer AccountSigner,
) (*transaction.SignedAccountTransaction, error) {
	digest, err := tx.SignDigest(signer.SignatureCount())
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest.Bytes())
	if err != nil {
		return nil, err
	}
	return &transaction.SignedAccountTransaction{Transaction: tx, Signature: sig}, nil
}

// MessageDigest returns the digest signed for an arbitrary message. The eight zero bytes
// after the address keep it from matching any transaction sign digest
func MessageDigest(account types.AccountAddress, message []byte) types.Sha256 {
	return types.Sha256Hash(account.Bytes(), make([]byte, 8), message)
}

// SignMessage signs message on behalf of account
func SignMessage(
	account types.AccountAddress,
	message []byte,
	signer AccountSigner,
) (transaction.AccountTransactionSignature, error) {
	digest := MessageDigest(account, message)
	return signer.Sign(digest.Bytes())
}

// SignCredentialDeployment signs a credential deployment with the credential's keys. The
// signatures are returned in ascending key index order
func SignCredentialDeployment(
	deployment *transaction.CredentialDeployment,
	keys map[uint8][]byte,
	opts ...SignerOptionFunc,
) ([][]byte, error) {
	s := &Signer{signFunc: Ed25519Sign}
	for _, opt := range opts {
		opt(s)
	}
	digest, err := deployment.SignDigest()
	if err != nil {
		return nil, err
	}
	indices := slices.Sorted(maps.Keys(keys))
	ret := make([][]byte, 0, len(indices))
	for _, idx := range indices {
		sig, err := s.signFunc(digest.Bytes(), keys[idx])
		if err != nil {
			return nil, fmt.Errorf("sign with key %d: %w", idx, err)
		}
		ret = append(ret, sig)
	}
	return ret, nil
}
