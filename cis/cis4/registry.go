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
	"context"

	"github.com/blinklabs-io/concordium-go/cis"
	"github.com/blinklabs-io/concordium-go/cis/cis0"
	"github.com/blinklabs-io/concordium-go/contract"
	"github.com/blinklabs-io/concordium-go/transaction"
	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
)

const (
	CredentialEntryEntrypoint        types.EntrypointName = "credentialEntry"
	CredentialStatusEntrypoint       types.EntrypointName = "credentialStatus"
	IssuerEntrypoint                 types.EntrypointName = "issuer"
	RegistryMetadataEntrypoint       types.EntrypointName = "registryMetadata"
	RevocationKeysEntrypoint         types.EntrypointName = "revocationKeys"
	RegisterCredentialEntrypoint     types.EntrypointName = "registerCredential"
	RevokeCredentialIssuerEntrypoint types.EntrypointName = "revokeCredentialIssuer"
	RegisterRevocationKeysEntrypoint types.EntrypointName = "registerRevocationKeys"
	RemoveRevocationKeysEntrypoint   types.EntrypointName = "removeRevocationKeys"
)

// Registry talks to a CIS-4 credential registry contract
type Registry struct {
	client *contract.Client
}

func NewRegistry(client *contract.Client) *Registry {
	return &Registry{client: client}
}

// Client returns the underlying contract client
func (r *Registry) Client() *contract.Client {
	return r.client
}

func (r *Registry) CredentialEntry(ctx context.Context, credentialId types.PublicKey) (CredentialEntry, error) {
	data, err := r.client.Query(ctx, CredentialEntryEntrypoint, EncodeCredentialIdParameter(credentialId))
	if err != nil {
		return CredentialEntry{}, err
	}
	return DecodeCredentialEntryResponse(data)
}

func (r *Registry) CredentialStatus(ctx context.Context, credentialId types.PublicKey) (CredentialStatus, error) {
	data, err := r.client.Query(ctx, CredentialStatusEntrypoint, EncodeCredentialIdParameter(credentialId))
	if err != nil {
		return 0, err
	}
	return DecodeCredentialStatusResponse(data)
}

// Issuer returns the public key of the registry's issuer
func (r *Registry) Issuer(ctx context.Context) (types.PublicKey, error) {
	data, err := r.client.Query(ctx, IssuerEntrypoint, nil)
	if err != nil {
		return types.PublicKey{}, err
	}
	return DecodeIssuerResponse(data)
}

func (r *Registry) RegistryMetadata(ctx context.Context) (RegistryMetadata, error) {
	data, err := r.client.Query(ctx, RegistryMetadataEntrypoint, nil)
	if err != nil {
		return RegistryMetadata{}, err
	}
	return DecodeRegistryMetadataResponse(data)
}

func (r *Registry) RevocationKeys(ctx context.Context) ([]RevocationKey, error) {
	data, err := r.client.Query(ctx, RevocationKeysEntrypoint, nil)
	if err != nil {
		return nil, err
	}
	return DecodeRevocationKeysResponse(data)
}

type encoder interface {
	Encode(w *wire.Writer) error
}

func (r *Registry) createUpdate(
	ctx context.Context,
	entrypoint types.EntrypointName,
	param encoder,
	maxEnergy types.Energy,
) (*transaction.UpdateContract, error) {
	data, err := cis.Encode(param.Encode)
	if err != nil {
		return nil, err
	}
	return r.client.CreateUpdateRaw(ctx, entrypoint, data, 0, maxEnergy)
}

// CreateRegisterCredential builds the payload of a transaction registering a credential
func (r *Registry) CreateRegisterCredential(
	ctx context.Context,
	param RegisterCredentialParam,
	maxEnergy types.Energy,
) (*transaction.UpdateContract, error) {
	return r.createUpdate(ctx, RegisterCredentialEntrypoint, param, maxEnergy)
}

// CreateRevokeCredentialIssuer builds the payload of a transaction in which the issuer
// revokes a credential
func (r *Registry) CreateRevokeCredentialIssuer(
	ctx context.Context,
	param RevokeCredentialIssuerParam,
	maxEnergy types.Energy,
) (*transaction.UpdateContract, error) {
	return r.createUpdate(ctx, RevokeCredentialIssuerEntrypoint, param, maxEnergy)
}

func (r *Registry) CreateRegisterRevocationKeys(
	ctx context.Context,
	param UpdateRevocationKeysParam,
	maxEnergy types.Energy,
) (*transaction.UpdateContract, error) {
	return r.createUpdate(ctx, RegisterRevocationKeysEntrypoint, param, maxEnergy)
}

func (r *Registry) CreateRemoveRevocationKeys(
	ctx context.Context,
	param UpdateRevocationKeysParam,
	maxEnergy types.Energy,
) (*transaction.UpdateContract, error) {
	return r.createUpdate(ctx, RemoveRevocationKeysEntrypoint, param, maxEnergy)
}

// Supports reports which standards the registry implements
func (r *Registry) Supports(
	ctx context.Context,
	standards ...cis.StandardIdentifier,
) ([]cis0.SupportResult, error) {
	return cis0.Supports(ctx, r.client, standards...)
}
