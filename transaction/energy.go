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

// Energy cost constants used by the chain
const (
	energyPerSignature      = 100
	energyPerByte           = 1
	deployModuleCostDivisor = 10
)

const (
	simpleTransferCost          types.Energy = 300
	registerDataCost            types.Energy = 300
	configureDelegationCost     types.Energy = 300
	configureBakerCost          types.Energy = 300
	configureBakerWithKeysCost  types.Energy = 4050
	scheduledTransferPerRelease types.Energy = 300
	updateCredentialKeysPerCred types.Energy = 500
	updateCredentialKeysPerKey  types.Energy = 100
)

// EnergyCost returns the energy needed to cover a transaction with the given number of
// signatures, payload size and kind specific base cost
func EnergyCost(signatureCount int, payloadSize int, base types.Energy) types.Energy {
	return types.Energy(energyPerSignature*signatureCount) +
		types.Energy(energyPerByte*(HeaderSize+payloadSize)) +
		base
}

func scheduledTransferCost(releases int) types.Energy {
	return scheduledTransferPerRelease * types.Energy(releases)
}

func updateCredentialKeysCost(credentials int, keys int) types.Energy {
	return updateCredentialKeysPerCred*types.Energy(max(credentials, 1)) +
		updateCredentialKeysPerKey*types.Energy(keys)
}
