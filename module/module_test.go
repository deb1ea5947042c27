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

package module_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/concordium-go/internal/test"
	"github.com/blinklabs-io/concordium-go/module"
	"github.com/blinklabs-io/concordium-go/schema"
	"github.com/blinklabs-io/concordium-go/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emptyWasmHex = "0061736d01000000"

func TestVersionedSource(t *testing.T) {
	data := test.DecodeHexString("00000001" + "00000008" + emptyWasmHex)
	src, err := module.ParseVersionedSource(data)
	require.NoError(t, err)
	assert.Equal(t, module.V1, src.Version)
	assert.Equal(t, emptyWasmHex, hex.EncodeToString(src.Source))
	assert.Equal(t, data, src.Bytes())
	assert.Equal(
		t,
		"05eec527719da94bf19c3cdc9767a8d56986eee72f885879f407b0c4ab81a925",
		src.Reference().String(),
	)
}

func TestVersionedSourceErrors(t *testing.T) {
	_, err := module.ParseVersionedSource(test.DecodeHexString("00000002" + "00000000"))
	assert.Error(t, err)
	_, err = module.ParseVersionedSource(test.DecodeHexString("00000000" + "00000009" + emptyWasmHex))
	assert.ErrorIs(t, err, wire.ErrUnderflow)
	_, err = module.ParseVersionedSource(test.DecodeHexString("00000000" + "00000000" + "00"))
	assert.ErrorIs(t, err, wire.ErrTrailingBytes)
}

func testModuleSchema(version schema.SchemaVersion) *schema.ModuleSchema {
	fn := &schema.FunctionSchema{Parameter: schema.U8{}}
	if version > schema.SchemaV0 {
		fn.ReturnValue = schema.U32{}
	}
	return &schema.ModuleSchema{
		Version: version,
		Contracts: map[string]*schema.ContractSchema{
			"counter": {
				Receive: map[string]*schema.FunctionSchema{"view": fn},
			},
		},
	}
}

func TestEmbeddedSchema(t *testing.T) {
	testDefs := []struct {
		section   string
		version   schema.SchemaVersion
		versioned bool
	}{
		{section: "concordium-schema", version: schema.SchemaV3, versioned: true},
		{section: "concordium-schema-v1", version: schema.SchemaV0},
		{section: "concordium-schema-v2", version: schema.SchemaV1},
	}
	for _, testDef := range testDefs {
		expected := testModuleSchema(testDef.version)
		raw, err := expected.Encode(testDef.versioned)
		require.NoError(t, err)
		wasm := test.DecodeHexString(emptyWasmHex)
		// A non-custom section before the schema must be skipped
		wasm = append(wasm, 0x01, 0x01, 0x00)
		wasm = module.AppendCustomSection(wasm, "name", []byte("counter"))
		wasm = module.AppendCustomSection(wasm, testDef.section, raw)
		src := &module.VersionedSource{Version: module.V1, Source: wasm}

		sections, err := module.CustomSections(wasm)
		require.NoError(t, err)
		require.Len(t, sections, 2)
		assert.Equal(t, "name", sections[0].Name)

		parsed, err := src.EmbeddedSchema()
		require.NoError(t, err, testDef.section)
		assert.Equal(t, expected, parsed)
	}
}

func TestEmbeddedSchemaMissing(t *testing.T) {
	src := &module.VersionedSource{Source: test.DecodeHexString(emptyWasmHex)}
	_, err := src.EmbeddedSchema()
	assert.ErrorIs(t, err, module.ErrNoEmbeddedSchema)

	src = &module.VersionedSource{Source: []byte("not wasm")}
	_, err = src.EmbeddedSchema()
	assert.Error(t, err)
}
