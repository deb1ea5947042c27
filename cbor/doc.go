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

// Package cbor provides CBOR encoding/decoding utilities for transaction memos and
// registered data.
//
// This package wraps github.com/fxamacker/cbor/v2. The chain itself treats memos and
// registered data as opaque bytes (at most 256 of them), but wallets and explorers
// conventionally store a single CBOR data item there, most often a text string.
//
// # Encoding
//
// Encode uses core deterministic encoding (sorted map keys, shortest integer and
// float forms), so the same value always produces the same bytes. This matters
// because the payload bytes end up in the transaction sign digest.
//
// # Decoding
//
// Decode returns the number of bytes consumed. DecodeExact additionally rejects
// trailing bytes, which is what memo decoding wants.
package cbor
