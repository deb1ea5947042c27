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

// Package module handles versioned smart contract module sources: their binary
// envelope, their reference hash and the schema embedded in the wasm code.
package module

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/blinklabs-io/concordium-go/schema"
	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
)

// Version is the smart contract version a module targets
type Version uint32

const (
	V0 Version = 0
	V1 Version = 1
)

var ErrNoEmbeddedSchema = errors.New("module does not contain an embedded schema")

// VersionedSource is a wasm module together with its smart contract version
type VersionedSource struct {
	Version Version
	Source  []byte
}

// ParseVersionedSource parses a u32 big-endian version, a u32 big-endian length and
// the wasm bytes
func ParseVersionedSource(data []byte) (*VersionedSource, error) {
	c := wire.NewCursor(data)
	version, err := c.ReadUint32BE()
	if err != nil {
		return nil, err
	}
	if Version(version) > V1 {
		return nil, fmt.Errorf("unsupported module version %d", version)
	}
	source, err := c.ReadPrefixedBytes(wire.Prefix32, binary.BigEndian)
	if err != nil {
		return nil, err
	}
	if err := c.Done(); err != nil {
		return nil, err
	}
	return &VersionedSource{Version: Version(version), Source: source}, nil
}

// Bytes returns the versioned serialization of the module
func (m *VersionedSource) Bytes() []byte {
	w := wire.NewWriter()
	w.WriteUint32BE(uint32(m.Version))
	w.WriteUint32BE(uint32(len(m.Source)))
	w.WriteRaw(m.Source)
	return w.Bytes()
}

// Reference returns the module reference, the SHA-256 hash of the versioned bytes
func (m *VersionedSource) Reference() types.ModuleReference {
	return types.Sha256Hash(m.Bytes())
}

// EmbeddedSchema extracts the module schema from the wasm custom sections. Schemas
// written by newer tooling carry their own version; older ones are identified by the
// name of the section they are stored in
func (m *VersionedSource) EmbeddedSchema() (*schema.ModuleSchema, error) {
	raw, version, err := m.EmbeddedSchemaBytes()
	if err != nil {
		return nil, err
	}
	if version == nil {
		return schema.ParseModuleSchema(raw)
	}
	return schema.ParseModuleSchema(raw, *version)
}

// EmbeddedSchemaBytes returns the raw embedded schema and, for unversioned schemas, the
// version implied by its section name
func (m *VersionedSource) EmbeddedSchemaBytes() ([]byte, *schema.SchemaVersion, error) {
	sections, err := CustomSections(m.Source)
	if err != nil {
		return nil, nil, err
	}
	for _, section := range sections {
		switch section.Name {
		case "concordium-schema":
			return section.Data, nil, nil
		case "concordium-schema-v1":
			v := schema.SchemaV0
			return section.Data, &v, nil
		case "concordium-schema-v2":
			v := schema.SchemaV1
			return section.Data, &v, nil
		}
	}
	return nil, nil, ErrNoEmbeddedSchema
}

// CustomSection is a named custom section of a wasm module
type CustomSection struct {
	Name string
	Data []byte
}

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

const customSectionID = 0

// CustomSections returns the custom sections of a wasm module in order of appearance
func CustomSections(wasm []byte) ([]CustomSection, error) {
	if !bytes.HasPrefix(wasm, wasmHeader) {
		return nil, errors.New("not a wasm module: bad magic or version")
	}
	c := wire.NewCursor(wasm[len(wasmHeader):])
	var ret []CustomSection
	for c.Remaining() > 0 {
		id, err := c.ReadUint8()
		if err != nil {
			return nil, err
		}
		size, err := c.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		body, err := c.Read(int(size))
		if err != nil {
			return nil, err
		}
		if id != customSectionID {
			continue
		}
		bc := wire.NewCursor(body)
		nameLen, err := bc.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		name, err := bc.ReadString(int(nameLen))
		if err != nil {
			return nil, err
		}
		data, _ := bc.Read(bc.Remaining())
		ret = append(ret, CustomSection{Name: name, Data: data})
	}
	return ret, nil
}

// AppendCustomSection returns a copy of wasm with a custom section appended
func AppendCustomSection(wasm []byte, name string, data []byte) []byte {
	body := wire.NewWriter()
	body.WriteVarUint32(uint32(len(name)))
	body.WriteRaw([]byte(name))
	body.WriteRaw(data)
	w := wire.NewWriter()
	w.WriteRaw(wasm)
	w.WriteUint8(customSectionID)
	w.WriteVarUint32(uint32(body.Len()))
	w.WriteRaw(body.Bytes())
	return w.Bytes()
}
