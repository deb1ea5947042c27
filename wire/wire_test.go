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

package wire_test

import (
	"encoding/binary"
	"errors"
	"math/big"
	"testing"

	"github.com/blinklabs-io/concordium-go/internal/test"
	"github.com/blinklabs-io/concordium-go/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorIntegers(t *testing.T) {
	c := wire.NewCursor(test.DecodeHexString("01020000000003040000000000000001000000000000ff"))
	u8, err := c.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(1), u8)
	u16, err := c.ReadUint16LE()
	require.NoError(t, err)
	assert.Equal(t, uint16(2), u16)
	u32, err := c.ReadUint32BE()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), u32)
	u64, err := c.ReadUint64BE()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0400000000000000), u64)
	i64, err := c.ReadInt64LE()
	require.NoError(t, err)
	assert.Equal(t, int64(-0x00ffffffffffffff), i64)
	require.NoError(t, c.Done())
}

func TestCursorUnderflow(t *testing.T) {
	c := wire.NewCursor([]byte{0x01, 0x02, 0x03})
	_, err := c.ReadUint32LE()
	require.Error(t, err)
	var underflow wire.UnderflowError
	require.True(t, errors.As(err, &underflow))
	assert.Equal(t, 4, underflow.Needed)
	assert.Equal(t, 3, underflow.Remaining)
	assert.ErrorIs(t, err, wire.ErrUnderflow)
	// A failed read does not advance
	assert.Equal(t, 0, c.Offset())
}

func TestCursorPrefixedOverrun(t *testing.T) {
	// Claims 5 bytes but only 2 follow
	c := wire.NewCursor([]byte{0x05, 0x00, 0xaa, 0xbb})
	_, err := c.ReadPrefixedBytes(wire.Prefix16, binary.LittleEndian)
	assert.ErrorIs(t, err, wire.ErrUnderflow)
}

func TestCursorBoolAndOption(t *testing.T) {
	testDefs := []struct {
		input     byte
		value     bool
		boolErr   error
		optionErr error
	}{
		{input: 0x00, value: false},
		{input: 0x01, value: true},
		{input: 0x02, boolErr: wire.ErrInvalidBoolean, optionErr: wire.ErrInvalidTag},
		{input: 0xff, boolErr: wire.ErrInvalidBoolean, optionErr: wire.ErrInvalidTag},
	}
	for _, testDef := range testDefs {
		v, err := wire.NewCursor([]byte{testDef.input}).ReadBool()
		if testDef.boolErr != nil {
			assert.ErrorIs(t, err, testDef.boolErr)
		} else {
			require.NoError(t, err)
			assert.Equal(t, testDef.value, v)
		}
		v, err = wire.NewCursor([]byte{testDef.input}).ReadOptionTag()
		if testDef.optionErr != nil {
			assert.ErrorIs(t, err, testDef.optionErr)
		} else {
			require.NoError(t, err)
			assert.Equal(t, testDef.value, v)
		}
	}
}

func TestCursorInvalidUTF8(t *testing.T) {
	c := wire.NewCursor([]byte{0x02, 0xc3, 0x28})
	_, err := c.ReadPrefixedString(wire.Prefix8, binary.LittleEndian)
	var decErr wire.DecodingError
	assert.True(t, errors.As(err, &decErr))
}

func TestInt128RoundTrip(t *testing.T) {
	values := []string{
		"0",
		"1",
		"-1",
		"170141183460469231731687303715884105727",
		"-170141183460469231731687303715884105728",
	}
	for _, value := range values {
		v, _ := new(big.Int).SetString(value, 10)
		w := wire.NewWriter()
		require.NoError(t, w.WriteInt128LE(v))
		assert.Equal(t, 16, w.Len())
		got, err := wire.NewCursor(w.Bytes()).ReadInt128LE()
		require.NoError(t, err)
		assert.Equal(t, 0, v.Cmp(got), "value %s", value)
	}
	tooBig, _ := new(big.Int).SetString("170141183460469231731687303715884105728", 10)
	assert.ErrorIs(t, wire.NewWriter().WriteInt128LE(tooBig), wire.ErrOverflow)
	assert.ErrorIs(t, wire.NewWriter().WriteUint128LE(big.NewInt(-1)), wire.ErrOverflow)
}

func TestLEB128(t *testing.T) {
	testDefs := []struct {
		hex    string
		value  int64
		signed bool
	}{
		{hex: "00", value: 0},
		{hex: "7f", value: 127},
		{hex: "8001", value: 128},
		{hex: "80f18c27", value: 82000000},
		{hex: "7f", value: -1, signed: true},
		{hex: "3f", value: 63, signed: true},
		{hex: "c000", value: 64, signed: true},
		{hex: "807f", value: -128, signed: true},
	}
	for _, testDef := range testDefs {
		data := test.DecodeHexString(testDef.hex)
		var got *big.Int
		var err error
		if testDef.signed {
			got, err = wire.NewCursor(data).ReadILEB128(16)
		} else {
			got, err = wire.NewCursor(data).ReadULEB128(16)
		}
		require.NoError(t, err, testDef.hex)
		assert.Equal(t, testDef.value, got.Int64(), testDef.hex)
		w := wire.NewWriter()
		if testDef.signed {
			require.NoError(t, w.WriteILEB128(big.NewInt(testDef.value), 16))
		} else {
			require.NoError(t, w.WriteULEB128(big.NewInt(testDef.value), 16))
		}
		assert.Equal(t, data, w.Bytes(), testDef.hex)
	}
}

func TestLEB128TooLong(t *testing.T) {
	_, err := wire.NewCursor([]byte{0x80, 0x80, 0x01}).ReadULEB128(2)
	var decErr wire.DecodingError
	assert.True(t, errors.As(err, &decErr))
	assert.ErrorIs(
		t,
		wire.NewWriter().WriteULEB128(big.NewInt(1<<14), 2),
		wire.ErrOverflow,
	)
}

func TestWriterLengthOverflow(t *testing.T) {
	w := wire.NewWriter()
	err := w.WritePrefixedBytes(wire.Prefix8, binary.BigEndian, make([]byte, 256))
	assert.ErrorIs(t, err, wire.ErrOverflow)
	require.NoError(t, w.WritePrefixedBytes(wire.Prefix16, binary.BigEndian, []byte{0xaa}))
	assert.Equal(t, []byte{0x00, 0x01, 0xaa}, w.Bytes())
}

func TestVarUint32(t *testing.T) {
	w := wire.NewWriter()
	w.WriteVarUint32(624485)
	assert.Equal(t, test.DecodeHexString("e58e26"), w.Bytes())
	v, err := wire.NewCursor(w.Bytes()).ReadVarUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(624485), v)
}
