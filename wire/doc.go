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

// Package wire provides the primitive binary readers and writers that every other
// codec in this module is built from.
//
// # Byte order
//
// Contract data (parameters, state, return values, CIS standard messages) is
// little-endian. Account transactions and block items are big-endian. Callers pick
// the byte order explicitly, either through the LE/BE helpers or by passing a
// binary.ByteOrder.
//
// # Framing
//
//   - Optional values: 1 byte presence flag (0 or 1, nothing else) then the payload
//   - Booleans: 1 byte, 0 or 1
//   - Length-prefixed data: 1, 2, 4 or 8 byte prefix chosen by the call site
//
// The prefix width is part of the caller's contract. Reading with a different width
// than was written is not detected.
//
// # Errors
//
// Reads past the end of the buffer return UnderflowError. All error types implement
// Is() against the sentinel errors in this package so that errors.Is works through
// any amount of wrapping.
package wire
