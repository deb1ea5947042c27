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

package contract_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/blinklabs-io/concordium-go/contract"
	"github.com/blinklabs-io/concordium-go/internal/test"
	"github.com/blinklabs-io/concordium-go/module"
	"github.com/blinklabs-io/concordium-go/schema"
	"github.com/blinklabs-io/concordium-go/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func counterSchema() *schema.ModuleSchema {
	return &schema.ModuleSchema{
		Version: schema.SchemaV3,
		Contracts: map[string]*schema.ContractSchema{
			"counter": {
				Receive: map[string]*schema.FunctionSchema{
					"view": {ReturnValue: schema.U32{}},
					"inc":  {Parameter: schema.U8{}, Error: schema.I16{}},
					"raw":  {},
				},
			},
		},
	}
}

type fakeNode struct {
	mutex        sync.Mutex
	source       *module.VersionedSource
	sourceCalls  int
	infoCalls    int
	lastRequest  *contract.InvokeRequest
	invokeResult func(req *contract.InvokeRequest) *contract.InvokeResult
	infoErr      error
}

func newFakeNode(t *testing.T) *fakeNode {
	raw, err := counterSchema().Encode(true)
	require.NoError(t, err)
	wasm := module.AppendCustomSection(test.DecodeHexString("0061736d01000000"), "concordium-schema", raw)
	return &fakeNode{
		source: &module.VersionedSource{Version: module.V1, Source: wasm},
		invokeResult: func(req *contract.InvokeRequest) *contract.InvokeResult {
			switch req.Method {
			case "counter.view":
				return &contract.InvokeResult{Success: true, ReturnValue: test.DecodeHexString("05000000"), UsedEnergy: 10}
			case "counter.inc":
				return &contract.InvokeResult{RejectReason: -1, ReturnValue: test.DecodeHexString("ffff")}
			default:
				return &contract.InvokeResult{Success: true, ReturnValue: []byte{0xde, 0xad}}
			}
		},
	}
}

func (n *fakeNode) GetInstanceInfo(_ context.Context, address types.ContractAddress) (*contract.InstanceInfo, error) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.infoCalls++
	if n.infoErr != nil {
		return nil, n.infoErr
	}
	return &contract.InstanceInfo{
		Name:         "init_counter",
		SourceModule: n.source.Reference(),
		Methods:      []types.ReceiveName{"counter.view", "counter.inc"},
		Version:      module.V1,
	}, nil
}

func (n *fakeNode) GetModuleSource(_ context.Context, ref types.ModuleReference) (*module.VersionedSource, error) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.sourceCalls++
	if ref != n.source.Reference() {
		return nil, errors.New("module not found")
	}
	return n.source, nil
}

func (n *fakeNode) InvokeInstance(ctx context.Context, req *contract.InvokeRequest) (*contract.InvokeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.lastRequest = req
	return n.invokeResult(req), nil
}

func newTestCache(t *testing.T) *contract.SchemaCache {
	cache, err := contract.NewSchemaCache(8)
	require.NoError(t, err)
	return cache
}

func TestInvoke(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := newFakeNode(t)
	invoker := contract.AccountInvoker(types.AccountAddress{0x01})
	client := contract.NewClient(
		node,
		types.NewContractAddress(3, 0),
		contract.WithSchemaCache(newTestCache(t)),
		contract.WithInvoker(invoker),
		contract.WithEnergy(30000),
	)
	ctx := context.Background()

	v, err := client.Invoke(ctx, "view", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)
	assert.Equal(t, invoker, node.lastRequest.Invoker)
	assert.Equal(t, types.Energy(30000), node.lastRequest.Energy)
	assert.Equal(t, types.NewContractAddress(3, 0), node.lastRequest.Contract)

	_, err = client.Invoke(ctx, "inc", 7)
	var invokeErr *contract.InvokeError
	require.ErrorAs(t, err, &invokeErr)
	assert.ErrorIs(t, err, contract.ErrInvokeFailed)
	assert.Equal(t, int64(-1), invokeErr.Value)
	assert.Equal(t, int32(-1), invokeErr.RejectReason)
	assert.Equal(t, types.Parameter{0x07}, node.lastRequest.Parameter)

	v, err = client.Invoke(ctx, "raw", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, v)

	// The parameter must match the schema
	_, err = client.Invoke(ctx, "inc", "seven")
	assert.ErrorIs(t, err, schema.ErrSchemaMismatch)
	_, err = client.Invoke(ctx, "missing", nil)
	assert.ErrorIs(t, err, schema.ErrUnknownEntrypoint)

	assert.Equal(t, 1, node.infoCalls)
	assert.Equal(t, 1, node.sourceCalls)
}

func TestSchemaCacheShared(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := newFakeNode(t)
	cache := newTestCache(t)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := contract.NewClient(node, types.NewContractAddress(uint64(i), 0), contract.WithSchemaCache(cache))
			_, err := client.Schema(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, cache.Len())

	client := contract.NewClient(node, types.NewContractAddress(9, 0), contract.WithSchemaCache(cache))
	before := node.sourceCalls
	moduleSchema, err := client.Schema(ctx)
	require.NoError(t, err)
	assert.Equal(t, counterSchema(), moduleSchema)
	assert.Equal(t, before, node.sourceCalls)
}

func TestWithSchema(t *testing.T) {
	node := newFakeNode(t)
	custom := counterSchema()
	custom.Contracts["counter"].Receive["view"].ReturnValue = schema.U16{}
	client := contract.NewClient(node, types.NewContractAddress(3, 0), contract.WithSchema(custom))
	node.invokeResult = func(*contract.InvokeRequest) *contract.InvokeResult {
		return &contract.InvokeResult{Success: true, ReturnValue: test.DecodeHexString("0500")}
	}
	v, err := client.Invoke(context.Background(), "view", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)
	assert.Equal(t, 0, node.sourceCalls)
}

func TestUnversionedEmbeddedSchema(t *testing.T) {
	node := newFakeNode(t)
	legacy := &schema.ModuleSchema{
		Version: schema.SchemaV1,
		Contracts: map[string]*schema.ContractSchema{
			"counter": {
				Receive: map[string]*schema.FunctionSchema{
					"view": {ReturnValue: schema.U32{}},
				},
			},
		},
	}
	raw, err := legacy.Encode(false)
	require.NoError(t, err)
	// Section names older than the version marker imply the schema version
	node.source.Source = module.AppendCustomSection(test.DecodeHexString("0061736d01000000"), "concordium-schema-v2", raw)
	client := contract.NewClient(node, types.NewContractAddress(3, 0), contract.WithSchemaCache(newTestCache(t)))
	moduleSchema, err := client.Schema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, legacy, moduleSchema)

	// An explicit version takes precedence over the section name
	node.source.Source = module.AppendCustomSection(test.DecodeHexString("0061736d01000000"), "concordium-schema", raw)
	client = contract.NewClient(
		node,
		types.NewContractAddress(3, 0),
		contract.WithSchemaCache(newTestCache(t)),
		contract.WithSchemaVersion(schema.SchemaV1),
	)
	moduleSchema, err = client.Schema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, legacy, moduleSchema)
}

func TestSchemaCacheKeyedBySchemaVersion(t *testing.T) {
	node := newFakeNode(t)
	legacy := &schema.ModuleSchema{
		Version: schema.SchemaV1,
		Contracts: map[string]*schema.ContractSchema{
			"counter": {
				Receive: map[string]*schema.FunctionSchema{
					"view": {ReturnValue: schema.U32{}},
				},
			},
		},
	}
	raw, err := legacy.Encode(false)
	require.NoError(t, err)
	node.source.Source = module.AppendCustomSection(test.DecodeHexString("0061736d01000000"), "concordium-schema", raw)
	cache := newTestCache(t)
	ctx := context.Background()

	forced := contract.NewClient(
		node,
		types.NewContractAddress(3, 0),
		contract.WithSchemaCache(cache),
		contract.WithSchemaVersion(schema.SchemaV1),
	)
	moduleSchema, err := forced.Schema(ctx)
	require.NoError(t, err)
	assert.Equal(t, legacy, moduleSchema)
	assert.Equal(t, 1, cache.Len())

	// A client without the version option must not get the schema parsed with it
	plain := contract.NewClient(node, types.NewContractAddress(4, 0), contract.WithSchemaCache(cache))
	_, err = plain.Schema(ctx)
	assert.ErrorIs(t, err, schema.ErrVersionRequired)

	again := contract.NewClient(
		node,
		types.NewContractAddress(5, 0),
		contract.WithSchemaCache(cache),
		contract.WithSchemaVersion(schema.SchemaV1),
	)
	before := node.sourceCalls
	moduleSchema, err = again.Schema(ctx)
	require.NoError(t, err)
	assert.Equal(t, legacy, moduleSchema)
	assert.Equal(t, before, node.sourceCalls)
}

func TestCreateUpdate(t *testing.T) {
	node := newFakeNode(t)
	client := contract.NewClient(node, types.NewContractAddress(3, 1), contract.WithSchemaCache(newTestCache(t)))
	payload, err := client.CreateUpdate(context.Background(), "inc", 7, 100, 5000)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiveName("counter.inc"), payload.ReceiveName)
	assert.Equal(t, types.Parameter{0x07}, payload.Message)
	assert.Equal(t, types.NewContractAddress(3, 1), payload.Address)
	assert.Equal(t, types.CcdAmount(100), payload.Amount)
	assert.Equal(t, types.Energy(5000), payload.MaxContractExecutionEnergy)
}

func TestNodeErrors(t *testing.T) {
	node := newFakeNode(t)
	node.infoErr = errors.New("instance not found")
	client := contract.NewClient(node, types.NewContractAddress(3, 0), contract.WithSchemaCache(newTestCache(t)))
	_, err := client.Invoke(context.Background(), "view", nil)
	assert.ErrorContains(t, err, "instance not found")

	node = newFakeNode(t)
	client = contract.NewClient(node, types.NewContractAddress(3, 0), contract.WithSchemaCache(newTestCache(t)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.InvokeRaw(ctx, "view", nil, 0)
	assert.ErrorIs(t, err, context.Canceled)

	node.source.Source = test.DecodeHexString("0061736d01000000")
	client = contract.NewClient(node, types.NewContractAddress(4, 0), contract.WithSchemaCache(newTestCache(t)))
	_, err = client.Schema(context.Background())
	assert.ErrorIs(t, err, module.ErrNoEmbeddedSchema)
}
