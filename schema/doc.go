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

// Package schema implements smart contract schemas: the type grammar describing the
// binary layout of contract parameters, return values, errors, events and state, the
// versioned module schema that maps contracts and entrypoints to those types, and a
// codec that converts between the binary form and JSON compatible Go values.
//
// Decoded values use the following shapes:
//
//	Unit, no fields            []any{}
//	Bool                       bool
//	U8, U16, U32               uint64
//	I8, I16, I32               int64
//	U64, I64, U128, I128       decimal string
//	ULeb128, ILeb128, Amount   decimal string
//	AccountAddress             base58check string
//	ContractAddress            Object{index, subindex}
//	Timestamp                  RFC3339 string
//	Duration                   string such as "1d 2h 3m 4s 5ms"
//	ByteList, ByteArray        lowercase hex string
//	Pair, List, Set, Array     []any
//	Map                        []any of [key, value] pairs
//	Struct (named fields)      Object
//	Struct (unnamed fields)    []any
//	Enum, TaggedEnum           Object with the variant name as its single key
//	ContractName               Object{contract}
//	ReceiveName                Object{contract, func}
//	Option                     nil or the inner value
package schema
