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

package contract

import (
	"context"

	"github.com/blinklabs-io/concordium-go/module"
	"github.com/blinklabs-io/concordium-go/types"
)

// InstanceInfo describes a contract instance
type InstanceInfo struct {
	Name         types.InitName
	SourceModule types.ModuleReference
	Owner        types.AccountAddress
	Amount       types.CcdAmount
	Methods      []types.ReceiveName
	Version      module.Version
}

// InvokerKind selects who a contract invocation is made on behalf of
type InvokerKind uint8

const (
	InvokerNone InvokerKind = iota
	InvokerAccount
	InvokerContract
)

// Invoker is the sender of a simulated invocation
type Invoker struct {
	Kind     InvokerKind
	Account  types.AccountAddress
	Contract types.ContractAddress
}

func AccountInvoker(account types.AccountAddress) Invoker {
	return Invoker{Kind: InvokerAccount, Account: account}
}

func ContractInvoker(contract types.ContractAddress) Invoker {
	return Invoker{Kind: InvokerContract, Contract: contract}
}

// InvokeRequest is a simulated call of a receive function
type InvokeRequest struct {
	Invoker   Invoker
	Contract  types.ContractAddress
	Amount    types.CcdAmount
	Method    types.ReceiveName
	Parameter types.Parameter
	// Energy is the limit for the invocation. The node picks a default when zero
	Energy types.Energy
}

// InvokeResult is the outcome of a simulated call
type InvokeResult struct {
	Success bool
	// ReturnValue holds the return value on success and the error value on failure
	ReturnValue []byte
	UsedEnergy  types.Energy
	// RejectReason is the contract's reject code when the call failed
	RejectReason int32
}

// NodeClient is the subset of node queries the contract client needs
type NodeClient interface {
	GetInstanceInfo(ctx context.Context, address types.ContractAddress) (*InstanceInfo, error)
	GetModuleSource(ctx context.Context, ref types.ModuleReference) (*module.VersionedSource, error)
	InvokeInstance(ctx context.Context, req *InvokeRequest) (*InvokeResult, error)
}
