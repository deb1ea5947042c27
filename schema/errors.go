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

package schema

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaMismatch      = errors.New("value does not match schema")
	ErrUnknownVariant      = errors.New("unknown enum variant")
	ErrUnknownContract     = errors.New("unknown contract")
	ErrUnknownEntrypoint   = errors.New("unknown entrypoint")
	ErrMissingType         = errors.New("missing type in schema")
	ErrMaxDepth            = errors.New("schema nesting exceeds maximum depth")
	ErrVersionRequired     = errors.New("schema version must be provided for unversioned module schemas")
	ErrUnsupportedVersion  = errors.New("unsupported module schema version")
	ErrUnknownFunctionKind = errors.New("unknown function schema kind")
)

// PathError attributes an error to the position in the value where it happened, for
// example "transfers[1].from.Account"
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("at %s: %s", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError is returned when a value cannot be encoded with a type
type SchemaMismatchError struct {
	Expected string
	Actual   string
}

func (e SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: expected %s, got %s", e.Expected, e.Actual)
}

func (SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// UnknownVariantError is returned for an enum discriminant outside of the declared
// variants
type UnknownVariantError struct {
	Index uint64
	Count int
}

func (e UnknownVariantError) Error() string {
	return fmt.Sprintf(
		"unknown enum variant %d (enum has %d variants)",
		e.Index,
		e.Count,
	)
}

func (UnknownVariantError) Is(target error) bool {
	return target == ErrUnknownVariant
}

type UnknownContractError struct {
	Contract string
}

func (e UnknownContractError) Error() string {
	return fmt.Sprintf("contract %q not found in module schema", e.Contract)
}

func (UnknownContractError) Is(target error) bool {
	return target == ErrUnknownContract
}

type UnknownEntrypointError struct {
	Contract   string
	Entrypoint string
}

func (e UnknownEntrypointError) Error() string {
	return fmt.Sprintf(
		"entrypoint %q not found in schema of contract %q",
		e.Entrypoint,
		e.Contract,
	)
}

func (UnknownEntrypointError) Is(target error) bool {
	return target == ErrUnknownEntrypoint
}

// MissingTypeError is returned when a contract or function is present in the schema but
// has no type for the requested purpose
type MissingTypeError struct {
	Contract string
	Function string
	Kind     string
}

func (e MissingTypeError) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("no %s schema for contract %q", e.Kind, e.Contract)
	}
	return fmt.Sprintf(
		"no %s schema for %q of contract %q",
		e.Kind,
		e.Function,
		e.Contract,
	)
}

func (MissingTypeError) Is(target error) bool {
	return target == ErrMissingType
}

func mismatch(expected string, actual any) error {
	return SchemaMismatchError{Expected: expected, Actual: describe(actual)}
}

// describe renders a short description of a caller supplied value
func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		if len(x) > 32 {
			return fmt.Sprintf("string %q...", x[:32])
		}
		return fmt.Sprintf("string %q", x)
	case []any:
		return fmt.Sprintf("array of %d elements", len(x))
	case Object:
		return fmt.Sprintf("object with %d fields", len(x))
	case map[string]any:
		return fmt.Sprintf("object with %d fields", len(x))
	default:
		return fmt.Sprintf("%T %v", v, v)
	}
}
