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


// Package node_mock provides a scripted contract.NodeClient for tests. The node serves a
// single contract instance and answers invocations from a conversation of expected calls.
package node_mock

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/blinklabs-io/concordium-go/contract"
	"github.com/blinklabs-io/concordium-go/module"
	"github.com/blinklabs-io/concordium-go/types"
)

// MockModuleSource is an empty V1 module served for every instance
var MockModuleSource = &module.VersionedSource{
	Version: module.V1,
	Source:  []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00},
}

// ConversationEntry is one expected invocation and its answer
type ConversationEntry struct {
	Entrypoint types.EntrypointName
	// Parameter is compared with the received parameter when not nil
	Parameter []byte
	// ReturnValue is returned from a successful call
	ReturnValue []byte
	// RejectReason makes the call fail when not zero
	RejectReason int32
	// Error is returned instead of a result when set
	Error error
}

// Node is a contract.NodeClient that serves one contract instance
type Node struct {
	contractName types.ContractName
	mutex        sync.Mutex
	conversation []ConversationEntry
	position     int
}

// NewNode returns a node that serves contractName and answers invocations with the
// conversation entries in order
func NewNode(contractName types.ContractName, conversation ...ConversationEntry) *Node {
	return &Node{
		contractName: contractName,
		conversation: conversation,
	}
}

// Client returns a contract client for the instance served by the node
func (n *Node) Client(opts ...contract.ClientOptionFunc) *contract.Client {
	return contract.NewClient(n, types.NewContractAddress(1, 0), opts...)
}

// Done returns an error when some of the conversation was not used
func (n *Node) Done() error {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if n.position != len(n.conversation) {
		return fmt.Errorf("%d conversation entries left", len(n.conversation)-n.position)
	}
	return nil
}

func (n *Node) GetInstanceInfo(_ context.Context, _ types.ContractAddress) (*contract.InstanceInfo, error) {
	return &contract.InstanceInfo{
		Name:         n.contractName.InitName(),
		SourceModule: MockModuleSource.Reference(),
		Version:      module.V1,
	}, nil
}

func (n *Node) GetModuleSource(_ context.Context, ref types.ModuleReference) (*module.VersionedSource, error) {
	if ref != MockModuleSource.Reference() {
		return nil, fmt.Errorf("unknown module %s", ref)
	}
	return MockModuleSource, nil
}

func (n *Node) InvokeInstance(ctx context.Context, req *contract.InvokeRequest) (*contract.InvokeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if n.position >= len(n.conversation) {
		return nil, fmt.Errorf("unexpected invocation of %s", req.Method)
	}
	entry := n.conversation[n.position]
	n.position++
	expected := n.contractName.ReceiveName(entry.Entrypoint)
	if req.Method != expected {
		return nil, fmt.Errorf("invocation did not match expected method: expected %s, got %s", expected, req.Method)
	}
	if entry.Parameter != nil && !bytes.Equal(entry.Parameter, req.Parameter) {
		return nil, fmt.Errorf(
			"parameter does not match expected value: got %x, expected %x",
			[]byte(req.Parameter),
			entry.Parameter,
		)
	}
	if entry.Error != nil {
		return nil, entry.Error
	}
	if entry.RejectReason != 0 {
		return &contract.InvokeResult{RejectReason: entry.RejectReason, ReturnValue: entry.ReturnValue}, nil
	}
	return &contract.InvokeResult{Success: true, ReturnValue: entry.ReturnValue}, nil
}
