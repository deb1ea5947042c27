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

import "github.com/blinklabs-io/concordium-go/types"

// NewTransferWithMemo builds a memo transfer whose memo is v encoded as CBOR
func NewTransferWithMemo(
	to types.AccountAddress,
	amount types.CcdAmount,
	v any,
) (*TransferWithMemo, error) {
	memo, err := types.NewMemoFromValue(v)
	if err != nil {
		return nil, err
	}
	return &TransferWithMemo{ToAddress: to, Memo: memo, Amount: amount}, nil
}

// NewRegisterData builds a register data payload holding v encoded as CBOR
func NewRegisterData(v any) (*RegisterData, error) {
	data, err := types.NewDataBlobFromValue(v)
	if err != nil {
		return nil, err
	}
	return &RegisterData{Data: data}, nil
}
