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
	"bytes"
	"fmt"
	"sort"

	"github.com/blinklabs-io/concordium-go/wire"
)

// SchemaVersion identifies the layout of a module schema
type SchemaVersion uint8

const (
	// SchemaV0 holds a state type and parameter types only (V0 smart contracts)
	SchemaV0 SchemaVersion = 0
	// SchemaV1 adds return values (V1 smart contracts)
	SchemaV1 SchemaVersion = 1
	// SchemaV2 adds error types
	SchemaV2 SchemaVersion = 2
	// SchemaV3 adds an event type per contract
	SchemaV3 SchemaVersion = 3
)

func (v SchemaVersion) String() string {
	return fmt.Sprintf("V%d", uint8(v))
}

// versionedMagic prefixes module schemas that carry their own version byte
var versionedMagic = []byte{0xff, 0xff}

// FunctionSchema holds the types of an init or receive function. Any of them may be nil
type FunctionSchema struct {
	Parameter   Type
	ReturnValue Type
	Error       Type
}

// ContractSchema holds the types of a single contract
type ContractSchema struct {
	// State is only present in V0 schemas
	State   Type
	Init    *FunctionSchema
	Receive map[string]*FunctionSchema
	// Event is only present in V3 schemas
	Event Type
}

// ModuleSchema maps contract names to their schemas
type ModuleSchema struct {
	Version   SchemaVersion
	Contracts map[string]*ContractSchema
}

// ParseModuleSchema parses a module schema. Schemas produced by newer tooling start with
// a marker and carry their own version, in which case version is ignored. Older schemas
// must be given their version by the caller
func ParseModuleSchema(data []byte, version ...SchemaVersion) (*ModuleSchema, error) {
	c := wire.NewCursor(data)
	var schemaVersion SchemaVersion
	if bytes.HasPrefix(data, versionedMagic) {
		if err := c.Skip(len(versionedMagic)); err != nil {
			return nil, err
		}
		v, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		schemaVersion = SchemaVersion(v)
	} else {
		if len(version) == 0 {
			return nil, ErrVersionRequired
		}
		schemaVersion = version[0]
	}
	if schemaVersion > SchemaV3 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, schemaVersion)
	}
	count, err := c.ReadUint32LE()
	if err != nil {
		return nil, err
	}
	ret := &ModuleSchema{
		Version:   schemaVersion,
		Contracts: make(map[string]*ContractSchema, boundedCap(count, c.Remaining())),
	}
	for range count {
		name, err := readSchemaString(c)
		if err != nil {
			return nil, err
		}
		contract, err := readContractSchema(c, schemaVersion)
		if err != nil {
			return nil, fmt.Errorf("contract %q: %w", name, err)
		}
		ret.Contracts[name] = contract
	}
	if err := c.Done(); err != nil {
		return nil, err
	}
	return ret, nil
}

func readOptionalType(c *wire.Cursor) (Type, error) {
	present, err := c.ReadOptionTag()
	if err != nil || !present {
		return nil, err
	}
	return readType(c, 0)
}

func readContractSchema(c *wire.Cursor, version SchemaVersion) (*ContractSchema, error) {
	ret := &ContractSchema{}
	if version == SchemaV0 {
		state, err := readOptionalType(c)
		if err != nil {
			return nil, err
		}
		ret.State = state
	}
	present, err := c.ReadOptionTag()
	if err != nil {
		return nil, err
	}
	if present {
		ret.Init, err = readFunctionSchema(c, version)
		if err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
	}
	count, err := c.ReadUint32LE()
	if err != nil {
		return nil, err
	}
	ret.Receive = make(map[string]*FunctionSchema, boundedCap(count, c.Remaining()))
	for range count {
		name, err := readSchemaString(c)
		if err != nil {
			return nil, err
		}
		fn, err := readFunctionSchema(c, version)
		if err != nil {
			return nil, fmt.Errorf("receive %q: %w", name, err)
		}
		ret.Receive[name] = fn
	}
	if version == SchemaV3 {
		event, err := readOptionalType(c)
		if err != nil {
			return nil, err
		}
		ret.Event = event
	}
	return ret, nil
}

// Function kinds of V1 and later schemas. The kind lists which types follow, in the
// order parameter, return value, error
var functionKinds = [][3]bool{
	{true, false, false},
	{false, true, false},
	{true, true, false},
	{false, false, true},
	{true, false, true},
	{false, true, true},
	{true, true, true},
}

func readFunctionSchema(c *wire.Cursor, version SchemaVersion) (*FunctionSchema, error) {
	if version == SchemaV0 {
		param, err := readType(c, 0)
		if err != nil {
			return nil, err
		}
		return &FunctionSchema{Parameter: param}, nil
	}
	offset := c.Offset()
	kind, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	maxKind := len(functionKinds)
	if version == SchemaV1 {
		// No error types before V2
		maxKind = 3
	}
	if int(kind) >= maxKind {
		return nil, wire.InvalidTagError{
			Offset: offset,
			Kind:   "function schema",
			Tag:    uint64(kind),
		}
	}
	present := functionKinds[kind]
	ret := &FunctionSchema{}
	for i, dest := range []*Type{&ret.Parameter, &ret.ReturnValue, &ret.Error} {
		if !present[i] {
			continue
		}
		t, err := readType(c, 0)
		if err != nil {
			return nil, err
		}
		*dest = t
	}
	return ret, nil
}

// Encode serializes the module schema. With versioned set, the output starts with the
// version marker. Map entries are written in ascending key order
func (m *ModuleSchema) Encode(versioned bool) ([]byte, error) {
	w := wire.NewWriter()
	if versioned {
		w.WriteRaw(versionedMagic)
		w.WriteUint8(uint8(m.Version))
	}
	names := sortedKeys(m.Contracts)
	w.WriteUint32LE(uint32(len(names)))
	for _, name := range names {
		if err := writeSchemaString(w, name); err != nil {
			return nil, err
		}
		if err := writeContractSchema(w, m.Contracts[name], m.Version); err != nil {
			return nil, fmt.Errorf("contract %q: %w", name, err)
		}
	}
	return w.Bytes(), nil
}

func writeOptionalType(w *wire.Writer, t Type) error {
	if t == nil {
		w.WriteOptionTag(false)
		return nil
	}
	w.WriteOptionTag(true)
	return writeType(w, t, 0)
}

func writeContractSchema(w *wire.Writer, c *ContractSchema, version SchemaVersion) error {
	if version == SchemaV0 {
		if err := writeOptionalType(w, c.State); err != nil {
			return err
		}
	}
	if c.Init == nil {
		w.WriteOptionTag(false)
	} else {
		w.WriteOptionTag(true)
		if err := writeFunctionSchema(w, c.Init, version); err != nil {
			return err
		}
	}
	names := sortedKeys(c.Receive)
	w.WriteUint32LE(uint32(len(names)))
	for _, name := range names {
		if err := writeSchemaString(w, name); err != nil {
			return err
		}
		if err := writeFunctionSchema(w, c.Receive[name], version); err != nil {
			return err
		}
	}
	if version == SchemaV3 {
		return writeOptionalType(w, c.Event)
	}
	return nil
}

func writeFunctionSchema(w *wire.Writer, fn *FunctionSchema, version SchemaVersion) error {
	if version == SchemaV0 {
		if fn.Parameter == nil {
			return fmt.Errorf("%w: V0 functions require a parameter type", ErrMissingType)
		}
		return writeType(w, fn.Parameter, 0)
	}
	present := [3]bool{fn.Parameter != nil, fn.ReturnValue != nil, fn.Error != nil}
	kind := -1
	for i, k := range functionKinds {
		if k == present {
			kind = i
			break
		}
	}
	if kind < 0 || (version == SchemaV1 && kind >= 3) {
		return fmt.Errorf("%w: %v", ErrUnknownFunctionKind, present)
	}
	w.WriteUint8(uint8(kind))
	for _, t := range []Type{fn.Parameter, fn.ReturnValue, fn.Error} {
		if t == nil {
			continue
		}
		if err := writeType(w, t, 0); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
