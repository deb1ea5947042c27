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
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/blinklabs-io/concordium-go/types"
)

var ErrInvokeFailed = errors.New("contract invocation failed")

// InvokeError is returned when a simulated call is rejected by the contract
type InvokeError struct {
	Entrypoint   types.EntrypointName
	RejectReason int32
	// Value is the decoded error value, nil when the schema has no error type
	Value any
	Raw   []byte
}

func (e *InvokeError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf(
			"invocation of %s rejected with code %d: %v",
			e.Entrypoint,
			e.RejectReason,
			e.Value,
		)
	}
	return fmt.Sprintf(
		"invocation of %s rejected with code %d (error value %s)",
		e.Entrypoint,
		e.RejectReason,
		hex.EncodeToString(e.Raw),
	)
}

func (*InvokeError) Is(target error) bool {
	return target == ErrInvokeFailed
}
