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

// Package contract provides a client bound to a single smart contract instance. It uses
// the module schema to serialize parameters and decode results of simulated calls, and
// builds update payloads for transactions.
package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blinklabs-io/concordium-go/schema"
	"github.com/blinklabs-io/concordium-go/transaction"
	"github.com/blinklabs-io/concordium-go/types"
)

// Client is bound to one contract instance
type Client struct {
	node          NodeClient
	address       types.ContractAddress
	logger        *slog.Logger
	cache         *SchemaCache
	schema        *schema.ModuleSchema
	schemaVersion *schema.SchemaVersion
	invoker       Invoker
	energy        types.Energy

	mutex sync.Mutex
	info  *InstanceInfo
}

// NewClient returns a client for the instance at address. Nothing is fetched until the
// client is used
func NewClient(node NodeClient, address types.ContractAddress, opts ...ClientOptionFunc) *Client {
	c := &Client{
		node:    node,
		address: address,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.cache == nil {
		c.cache = defaultSchemaCache
	}
	return c
}

// Address returns the address of the instance
func (c *Client) Address() types.ContractAddress {
	return c.address
}

// Info returns the instance information, fetching it on first use
func (c *Client) Info(ctx context.Context) (*InstanceInfo, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.info != nil {
		return c.info, nil
	}
	info, err := c.node.GetInstanceInfo(ctx, c.address)
	if err != nil {
		return nil, fmt.Errorf("get instance info for %s: %w", c.address, err)
	}
	c.logger.Debug(
		"fetched contract instance info",
		"component", "contract",
		"address", c.address.String(),
		"name", info.Name.String(),
		"module", info.SourceModule.String(),
	)
	c.info = info
	return info, nil
}

// ContractName returns the name of the contract the instance was created from
func (c *Client) ContractName(ctx context.Context) (types.ContractName, error) {
	info, err := c.Info(ctx)
	if err != nil {
		return "", err
	}
	return info.Name.ContractName(), nil
}

// Schema returns the module schema of the instance. A schema given with WithSchema is
// used as is; otherwise the embedded schema is fetched once per module and schema version
// option and kept in the schema cache
func (c *Client) Schema(ctx context.Context) (*schema.ModuleSchema, error) {
	if c.schema != nil {
		return c.schema, nil
	}
	info, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}
	if cached, ok := c.cache.Get(info.SourceModule, c.schemaVersion); ok {
		return cached, nil
	}
	source, err := c.node.GetModuleSource(ctx, info.SourceModule)
	if err != nil {
		return nil, fmt.Errorf("get module source %s: %w", info.SourceModule, err)
	}
	raw, impliedVersion, err := source.EmbeddedSchemaBytes()
	if err != nil {
		return nil, err
	}
	var versions []schema.SchemaVersion
	switch {
	case c.schemaVersion != nil:
		versions = append(versions, *c.schemaVersion)
	case impliedVersion != nil:
		versions = append(versions, *impliedVersion)
	}
	moduleSchema, err := schema.ParseModuleSchema(raw, versions...)
	if err != nil {
		return nil, fmt.Errorf("parse schema of module %s: %w", info.SourceModule, err)
	}
	c.logger.Debug(
		"loaded module schema",
		"component", "contract",
		"module", info.SourceModule.String(),
		"schema_version", moduleSchema.Version.String(),
	)
	c.cache.Add(info.SourceModule, c.schemaVersion, moduleSchema)
	return moduleSchema, nil
}

func (c *Client) receiveName(ctx context.Context, entrypoint types.EntrypointName) (types.ReceiveName, error) {
	name, err := c.ContractName(ctx)
	if err != nil {
		return "", err
	}
	return name.ReceiveName(entrypoint), nil
}

// InvokeRaw simulates a call of entrypoint with an already serialized parameter
func (c *Client) InvokeRaw(
	ctx context.Context,
	entrypoint types.EntrypointName,
	param types.Parameter,
	amount types.CcdAmount,
) (*InvokeResult, error) {
	method, err := c.receiveName(ctx, entrypoint)
	if err != nil {
		return nil, err
	}
	req := &InvokeRequest{
		Invoker:   c.invoker,
		Contract:  c.address,
		Amount:    amount,
		Method:    method,
		Parameter: param,
		Energy:    c.energy,
	}
	result, err := c.node.InvokeInstance(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", method, err)
	}
	c.logger.Debug(
		"invoked contract",
		"component", "contract",
		"address", c.address.String(),
		"method", method.String(),
		"success", result.Success,
		"used_energy", uint64(result.UsedEnergy),
	)
	return result, nil
}

// Query simulates a call of entrypoint with an already serialized parameter and returns
// the raw return value. A rejected call fails with an *InvokeError
func (c *Client) Query(
	ctx context.Context,
	entrypoint types.EntrypointName,
	param types.Parameter,
) ([]byte, error) {
	result, err := c.InvokeRaw(ctx, entrypoint, param, 0)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &InvokeError{
			Entrypoint:   entrypoint,
			RejectReason: result.RejectReason,
			Raw:          result.ReturnValue,
		}
	}
	return result.ReturnValue, nil
}

// Invoke serializes value with the entrypoint's parameter schema, simulates the call and
// decodes the return value. A failed call returns an *InvokeError holding the decoded
// error value when the schema declares one. When the schema has no return value type the
// raw bytes are returned
func (c *Client) Invoke(
	ctx context.Context,
	entrypoint types.EntrypointName,
	value any,
) (any, error) {
	moduleSchema, contractName, err := c.schemaAndName(ctx)
	if err != nil {
		return nil, err
	}
	param, err := c.serializeParameter(moduleSchema, contractName, entrypoint, value)
	if err != nil {
		return nil, err
	}
	result, err := c.InvokeRaw(ctx, entrypoint, param, 0)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		invokeErr := &InvokeError{
			Entrypoint:   entrypoint,
			RejectReason: result.RejectReason,
			Raw:          result.ReturnValue,
		}
		errType, err := moduleSchema.ReceiveError(contractName.String(), entrypoint.String())
		if err == nil && len(result.ReturnValue) > 0 {
			decoded, err := schema.DecodeValue(errType, result.ReturnValue)
			if err != nil {
				return nil, fmt.Errorf("decode error value of %s: %w", entrypoint, err)
			}
			invokeErr.Value = decoded
		}
		return nil, invokeErr
	}
	rvType, err := moduleSchema.ReturnValue(contractName.String(), entrypoint.String())
	if err != nil {
		if errors.Is(err, schema.ErrMissingType) {
			return result.ReturnValue, nil
		}
		return nil, err
	}
	ret, err := schema.DecodeValue(rvType, result.ReturnValue)
	if err != nil {
		return nil, fmt.Errorf("decode return value of %s: %w", entrypoint, err)
	}
	return ret, nil
}

// CreateUpdate builds the payload of a transaction that calls entrypoint with value
// serialized by the entrypoint's parameter schema
func (c *Client) CreateUpdate(
	ctx context.Context,
	entrypoint types.EntrypointName,
	value any,
	amount types.CcdAmount,
	maxEnergy types.Energy,
) (*transaction.UpdateContract, error) {
	moduleSchema, contractName, err := c.schemaAndName(ctx)
	if err != nil {
		return nil, err
	}
	param, err := c.serializeParameter(moduleSchema, contractName, entrypoint, value)
	if err != nil {
		return nil, err
	}
	return c.CreateUpdateRaw(ctx, entrypoint, param, amount, maxEnergy)
}

// CreateUpdateRaw builds an update payload with an already serialized parameter
func (c *Client) CreateUpdateRaw(
	ctx context.Context,
	entrypoint types.EntrypointName,
	param types.Parameter,
	amount types.CcdAmount,
	maxEnergy types.Energy,
) (*transaction.UpdateContract, error) {
	method, err := c.receiveName(ctx, entrypoint)
	if err != nil {
		return nil, err
	}
	return &transaction.UpdateContract{
		Amount:                     amount,
		Address:                    c.address,
		ReceiveName:                method,
		Message:                    param,
		MaxContractExecutionEnergy: maxEnergy,
	}, nil
}

func (c *Client) schemaAndName(ctx context.Context) (*schema.ModuleSchema, types.ContractName, error) {
	moduleSchema, err := c.Schema(ctx)
	if err != nil {
		return nil, "", err
	}
	name, err := c.ContractName(ctx)
	if err != nil {
		return nil, "", err
	}
	return moduleSchema, name, nil
}

func (c *Client) serializeParameter(
	moduleSchema *schema.ModuleSchema,
	contractName types.ContractName,
	entrypoint types.EntrypointName,
	value any,
) (types.Parameter, error) {
	paramType, err := moduleSchema.ReceiveParameter(contractName.String(), entrypoint.String())
	if err != nil {
		if errors.Is(err, schema.ErrMissingType) && value == nil {
			return nil, nil
		}
		return nil, err
	}
	data, err := schema.EncodeValue(paramType, value)
	if err != nil {
		return nil, fmt.Errorf("serialize parameter of %s: %w", entrypoint, err)
	}
	return types.NewParameter(data)
}
