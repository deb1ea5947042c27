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


package types

// Network definitions
var (
	NetworkMainnet = Network{
		Name:          "mainnet",
		GenesisHash:   mustSha256Hex("9dd9ca4d19e9393877d2c44b70f89acbfc0883c2243e5eeaecc0d1cd0503f478"),
		GrpcAddress:   "grpc.mainnet.concordium.software",
		GrpcPort:      20000,
		CcdScanDomain: "ccdscan.io",
	}
	NetworkTestnet = Network{
		Name:          "testnet",
		GenesisHash:   mustSha256Hex("4221332d34e1694168c2a0c0b3fd0f273809612cb13d000d5c2e00e85f50f796"),
		GrpcAddress:   "grpc.testnet.concordium.com",
		GrpcPort:      20000,
		CcdScanDomain: "testnet.ccdscan.io",
	}

	NetworkInvalid = Network{
		Name: "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkTestnet,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByGenesisHash returns a predefined network by the hash of its genesis block
func NetworkByGenesisHash(hash Sha256) Network {
	for _, network := range networks {
		if network.GenesisHash == hash {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents a Concordium network
type Network struct {
	Name          string
	GenesisHash   Sha256
	GrpcAddress   string
	GrpcPort      uint
	CcdScanDomain string
}

func (n Network) String() string {
	return n.Name
}

func mustSha256Hex(s string) Sha256 {
	ret, err := NewSha256FromHex(s)
	if err != nil {
		panic(err)
	}
	return ret
}
