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

package signing

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/blinklabs-io/concordium-go/transaction"
	"github.com/blinklabs-io/concordium-go/types"
)

var (
	ErrUnknownCredential = errors.New("signature uses a credential the account does not have")
	ErrUnknownKey        = errors.New("signature uses a key the credential does not have")
)

// CredentialInfo holds the verification keys of one account credential
type CredentialInfo struct {
	Keys      map[uint8]types.PublicKey
	Threshold uint8
}

// AccountInfo holds what is needed to check signatures made by an account
type AccountInfo struct {
	Address     types.AccountAddress
	Credentials map[uint8]CredentialInfo
	// Threshold is the number of credentials that must sign
	Threshold uint8
}

// AccountInfoProvider looks up account information, typically from a node
type AccountInfoProvider interface {
	AccountInfo(ctx context.Context, account types.AccountAddress) (*AccountInfo, error)
}

// VerifyMessageSignature checks that signature is a valid signature of message by the
// account. It returns false when the signature is empty or falls short of a threshold, or
// when a signature does not verify. It returns an error when the signature refers to keys
// the account does not have or a key is not a valid curve point
func VerifyMessageSignature(
	message []byte,
	signature transaction.AccountTransactionSignature,
	info *AccountInfo,
) (bool, error) {
	if info == nil {
		return false, errors.New("missing account info")
	}
	if signature.Count() == 0 || len(signature) < int(info.Threshold) {
		return false, nil
	}
	digest := MessageDigest(info.Address, message)
	for credIdx, credSigs := range signature {
		cred, ok := info.Credentials[credIdx]
		if !ok {
			return false, fmt.Errorf("%w: credential %d", ErrUnknownCredential, credIdx)
		}
		if len(credSigs) < int(cred.Threshold) {
			return false, nil
		}
		for keyIdx, sig := range credSigs {
			key, ok := cred.Keys[keyIdx]
			if !ok {
				return false, fmt.Errorf("%w: credential %d key %d", ErrUnknownKey, credIdx, keyIdx)
			}
			if err := key.Validate(); err != nil {
				return false, fmt.Errorf("credential %d key %d: %w", credIdx, keyIdx, err)
			}
			if !ed25519.Verify(key.Ed25519(), digest.Bytes(), sig) {
				return false, nil
			}
		}
	}
	return true, nil
}

// VerifyMessageSignatureFor looks up the account with provider and verifies the
// signature against it
func VerifyMessageSignatureFor(
	ctx context.Context,
	provider AccountInfoProvider,
	account types.AccountAddress,
	message []byte,
	signature transaction.AccountTransactionSignature,
) (bool, error) {
	info, err := provider.AccountInfo(ctx, account)
	if err != nil {
		return false, fmt.Errorf("look up account %s: %w", account, err)
	}
	if info != nil && info.Address != account {
		// The digest covers the address as given, which may be an alias
		tmp := *info
		tmp.Address = account
		info = &tmp
	}
	return VerifyMessageSignature(message, signature, info)
}
