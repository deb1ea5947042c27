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

package wire

import (
	"errors"
	"fmt"
)

// Sentinel errors so callers can use errors.Is without caring about positions
var (
	ErrUnderflow      = errors.New("buffer underflow")
	ErrInvalidBoolean = errors.New("invalid boolean")
	ErrInvalidTag     = errors.New("invalid tag")
	ErrTrailingBytes  = errors.New("trailing bytes")
	ErrOverflow       = errors.New("value overflow")
)

// UnderflowError indicates that fewer bytes remain than a read requires
type UnderflowError struct {
	Offset    int
	Needed    int
	Remaining int
}

func (e UnderflowError) Error() string {
	return fmt.Sprintf(
		"buffer underflow at offset %d: need %d bytes, have %d",
		e.Offset,
		e.Needed,
		e.Remaining,
	)
}

func (UnderflowError) Is(target error) bool {
	return target == ErrUnderflow
}

// InvalidBooleanError indicates a boolean byte other than 0 or 1
type InvalidBooleanError struct {
	Offset int
	Value  byte
}

func (e InvalidBooleanError) Error() string {
	return fmt.Sprintf(
		"invalid boolean at offset %d: expected 0 or 1, found %d",
		e.Offset,
		e.Value,
	)
}

func (InvalidBooleanError) Is(target error) bool {
	return target == ErrInvalidBoolean
}

// InvalidTagError indicates a discriminant outside of its declared range
type InvalidTagError struct {
	Offset int
	Kind   string
	Tag    uint64
}

func (e InvalidTagError) Error() string {
	return fmt.Sprintf(
		"invalid %s tag at offset %d: %d",
		e.Kind,
		e.Offset,
		e.Tag,
	)
}

func (InvalidTagError) Is(target error) bool {
	return target == ErrInvalidTag
}

// DecodingError indicates bytes that are present but cannot be interpreted
type DecodingError struct {
	Offset int
	Reason string
}

func (e DecodingError) Error() string {
	return fmt.Sprintf("decoding failed at offset %d: %s", e.Offset, e.Reason)
}

// TrailingBytesError indicates that a decode finished before the end of its input
type TrailingBytesError struct {
	Offset    int
	Remaining int
}

func (e TrailingBytesError) Error() string {
	return fmt.Sprintf(
		"%d unexpected trailing bytes at offset %d",
		e.Remaining,
		e.Offset,
	)
}

func (TrailingBytesError) Is(target error) bool {
	return target == ErrTrailingBytes
}

// OverflowError indicates a value that does not fit the width it is written with
type OverflowError struct {
	Value string
	Width string
}

func (e OverflowError) Error() string {
	return fmt.Sprintf("value %s does not fit in %s", e.Value, e.Width)
}

func (OverflowError) Is(target error) bool {
	return target == ErrOverflow
}
