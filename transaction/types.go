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

package transaction

import (
	"errors"
	"fmt"
)

// TransactionType is the tag that starts every account transaction payload
type TransactionType uint8

const (
	TxTypeDeployModule                TransactionType = 0
	TxTypeInitContract                TransactionType = 1
	TxTypeUpdate                      TransactionType = 2
	TxTypeTransfer                    TransactionType = 3
	TxTypeUpdateCredentialKeys        TransactionType = 13
	TxTypeTransferWithSchedule        TransactionType = 19
	TxTypeRegisterData                TransactionType = 21
	TxTypeTransferWithMemo            TransactionType = 22
	TxTypeTransferWithScheduleAndMemo TransactionType = 24
	TxTypeConfigureBaker              TransactionType = 25
	TxTypeConfigureDelegation         TransactionType = 26
)

var transactionTypeNames = map[TransactionType]string{
	TxTypeDeployModule:                "DeployModule",
	TxTypeInitContract:                "InitContract",
	TxTypeUpdate:                      "Update",
	TxTypeTransfer:                    "Transfer",
	TxTypeUpdateCredentialKeys:        "UpdateCredentialKeys",
	TxTypeTransferWithSchedule:        "TransferWithSchedule",
	TxTypeRegisterData:                "RegisterData",
	TxTypeTransferWithMemo:            "TransferWithMemo",
	TxTypeTransferWithScheduleAndMemo: "TransferWithScheduleAndMemo",
	TxTypeConfigureBaker:              "ConfigureBaker",
	TxTypeConfigureDelegation:         "ConfigureDelegation",
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TransactionType(%d)", uint8(t))
}

// BlockItemKind distinguishes the kinds of items that can be submitted to the chain
type BlockItemKind uint8

const (
	BlockItemAccountTransaction   BlockItemKind = 0
	BlockItemCredentialDeployment BlockItemKind = 1
	BlockItemUpdateInstruction    BlockItemKind = 2
)

// blockItemVersion is the version byte in front of every submitted block item
const blockItemVersion = 0

var (
	ErrUnsupportedTransactionKind = errors.New("unsupported transaction kind")
	ErrUnsupportedBlockItemKind   = errors.New("unsupported block item kind")
	ErrNoSignatures               = errors.New("transaction signature must contain at least one signature")
)

// UnsupportedTransactionKindError is returned when deserializing a transaction whose
// kind is not one of Transfer, TransferWithMemo and RegisterData
type UnsupportedTransactionKindError struct {
	Type TransactionType
}

func (e UnsupportedTransactionKindError) Error() string {
	return fmt.Sprintf("deserialization of %s transactions is not supported", e.Type)
}

func (UnsupportedTransactionKindError) Is(target error) bool {
	return target == ErrUnsupportedTransactionKind
}

// UnsupportedBlockItemKindError is returned when deserializing a block item other than
// an account transaction
type UnsupportedBlockItemKindError struct {
	Kind BlockItemKind
}

func (e UnsupportedBlockItemKindError) Error() string {
	return fmt.Sprintf("deserialization of block item kind %d is not supported", e.Kind)
}

func (UnsupportedBlockItemKindError) Is(target error) bool {
	return target == ErrUnsupportedBlockItemKind
}
