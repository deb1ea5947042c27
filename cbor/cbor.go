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

package cbor

// CBOR major types, as the top 3 bits of the initial byte
const (
	CborTypeUint       uint8 = 0x00
	CborTypeByteString uint8 = 0x40
	CborTypeTextString uint8 = 0x60
	CborTypeArray      uint8 = 0x80
	CborTypeMap        uint8 = 0xa0

	CborTypeMask uint8 = 0xe0
)

// MajorType returns the CBOR major type of the first data item in cborData
func MajorType(cborData []byte) (uint8, bool) {
	if len(cborData) == 0 {
		return 0, false
	}
	return cborData[0] & CborTypeMask, true
}
