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
	"context"
	"fmt"

	"github.com/blinklabs-io/concordium-go/cis"
	"github.com/blinklabs-io/concordium-go/cis/cis0"
	"github.com/blinklabs-io/concordium-go/contract"
	"github.com/blinklabs-io/concordium-go/transaction"
	"github.com/blinklabs-io/concordium-go/types"
)

const (
	TransferEntrypoint       types.EntrypointName = "transfer"
	UpdateOperatorEntrypoint types.EntrypointName = "updateOperator"
	BalanceOfEntrypoint      types.EntrypointName = "balanceOf"
	OperatorOfEntrypoint     types.EntrypointName = "operatorOf"
	TokenMetadataEntrypoint  types.EntrypointName = "tokenMetadata"
)

// Contract talks to a CIS-2 token contract
type Contract struct {
	client *contract.Client
}

func NewContract(client *contract.Client) *Contract {
	return &Contract{client: client}
}

// Client returns the underlying contract client
func (c *Contract) Client() *contract.Client {
	return c.client
}

func checkCount(entrypoint types.EntrypointName, expected int, actual int) error {
	if expected != actual {
		return fmt.Errorf("%s returned %d results for %d queries", entrypoint, actual, expected)
	}
	return nil
}

// BalanceOf returns the balances for the queries in order
func (c *Contract) BalanceOf(ctx context.Context, queries ...BalanceOfQuery) ([]*TokenAmount, error) {
	param, err := EncodeBalanceOfParameter(queries)
	if err != nil {
		return nil, err
	}
	data, err := c.client.Query(ctx, BalanceOfEntrypoint, param)
	if err != nil {
		return nil, err
	}
	ret, err := DecodeBalanceOfResponse(data)
	if err != nil {
		return nil, err
	}
	if err := checkCount(BalanceOfEntrypoint, len(queries), len(ret)); err != nil {
		return nil, err
	}
	return ret, nil
}

// OperatorOf answers the queries in order
func (c *Contract) OperatorOf(ctx context.Context, queries ...OperatorOfQuery) ([]bool, error) {
	param, err := EncodeOperatorOfParameter(queries)
	if err != nil {
		return nil, err
	}
	data, err := c.client.Query(ctx, OperatorOfEntrypoint, param)
	if err != nil {
		return nil, err
	}
	ret, err := DecodeOperatorOfResponse(data)
	if err != nil {
		return nil, err
	}
	if err := checkCount(OperatorOfEntrypoint, len(queries), len(ret)); err != nil {
		return nil, err
	}
	return ret, nil
}

// TokenMetadata returns the metadata URLs of the tokens in order
func (c *Contract) TokenMetadata(ctx context.Context, tokenIds ...TokenId) ([]cis.MetadataUrl, error) {
	param, err := EncodeTokenMetadataParameter(tokenIds)
	if err != nil {
		return nil, err
	}
	data, err := c.client.Query(ctx, TokenMetadataEntrypoint, param)
	if err != nil {
		return nil, err
	}
	ret, err := DecodeTokenMetadataResponse(data)
	if err != nil {
		return nil, err
	}
	if err := checkCount(TokenMetadataEntrypoint, len(tokenIds), len(ret)); err != nil {
		return nil, err
	}
	return ret, nil
}

// CreateTransfer builds the payload of a transaction performing the transfers
func (c *Contract) CreateTransfer(
	ctx context.Context,
	maxEnergy types.Energy,
	transfers ...Transfer,
) (*transaction.UpdateContract, error) {
	param, err := EncodeTransferParameter(transfers)
	if err != nil {
		return nil, err
	}
	return c.client.CreateUpdateRaw(ctx, TransferEntrypoint, param, 0, maxEnergy)
}

// CreateUpdateOperator builds the payload of a transaction performing the updates
func (c *Contract) CreateUpdateOperator(
	ctx context.Context,
	maxEnergy types.Energy,
	updates ...UpdateOperator,
) (*transaction.UpdateContract, error) {
	param, err := EncodeUpdateOperatorParameter(updates)
	if err != nil {
		return nil, err
	}
	return c.client.CreateUpdateRaw(ctx, UpdateOperatorEntrypoint, param, 0, maxEnergy)
}

// Supports reports which standards the contract implements
func (c *Contract) Supports(
	ctx context.Context,
	standards ...cis.StandardIdentifier,
) ([]cis0.SupportResult, error) {
	return cis0.Supports(ctx, c.client, standards...)
}
