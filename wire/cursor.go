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
	"encoding/binary"
	"fmt"
	"math/big"
	"unicode/utf8"
)

// PrefixWidth is the number of bytes used by a length prefix
type PrefixWidth uint8

const (
	Prefix8  PrefixWidth = 1
	Prefix16 PrefixWidth = 2
	Prefix32 PrefixWidth = 4
	Prefix64 PrefixWidth = 8
)

func (w PrefixWidth) String() string {
	return fmt.Sprintf("u%d", int(w)*8)
}

// maxValue returns the largest length representable with the prefix width
func (w PrefixWidth) maxValue() uint64 {
	if w >= Prefix64 {
		return ^uint64(0)
	}
	return (uint64(1) << (uint(w) * 8)) - 1
}

// Cursor is a sequential read position over an immutable byte buffer.
// A Cursor is meant to be used by a single decode call and then discarded.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a Cursor positioned at the start of data
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the number of bytes consumed so far
func (c *Cursor) Offset() int {
	return c.pos
}

// Remaining returns the number of unread bytes
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Done returns an error if any bytes are left unread
func (c *Cursor) Done() error {
	if c.Remaining() > 0 {
		return TrailingBytesError{Offset: c.pos, Remaining: c.Remaining()}
	}
	return nil
}

// peek returns the next n bytes without copying or advancing
func (c *Cursor) peek(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, UnderflowError{
			Offset:    c.pos,
			Needed:    n,
			Remaining: c.Remaining(),
		}
	}
	return c.data[c.pos : c.pos+n], nil
}

// Read returns a copy of the next n bytes
func (c *Cursor) Read(n int) ([]byte, error) {
	b, err := c.peek(n)
	if err != nil {
		return nil, err
	}
	ret := make([]byte, n)
	copy(ret, b)
	c.pos += n
	return ret, nil
}

// ReadInto fills dest with the next len(dest) bytes
func (c *Cursor) ReadInto(dest []byte) error {
	b, err := c.peek(len(dest))
	if err != nil {
		return err
	}
	copy(dest, b)
	c.pos += len(dest)
	return nil
}

// Skip advances past the next n bytes
func (c *Cursor) Skip(n int) error {
	if _, err := c.peek(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// ReadByte reads a single byte
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.peek(1)
	if err != nil {
		return 0, err
	}
	c.pos++
	return b[0], nil
}

func (c *Cursor) ReadUint8() (uint8, error) {
	return c.ReadByte()
}

func (c *Cursor) ReadInt8() (int8, error) {
	b, err := c.ReadByte()
	return int8(b), err
}

func (c *Cursor) readFixed(n int) ([]byte, error) {
	b, err := c.peek(n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

func (c *Cursor) ReadUint16(order binary.ByteOrder) (uint16, error) {
	b, err := c.readFixed(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

func (c *Cursor) ReadUint32(order binary.ByteOrder) (uint32, error) {
	b, err := c.readFixed(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

func (c *Cursor) ReadUint64(order binary.ByteOrder) (uint64, error) {
	b, err := c.readFixed(8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(b), nil
}

func (c *Cursor) ReadUint16LE() (uint16, error) {
	return c.ReadUint16(binary.LittleEndian)
}

func (c *Cursor) ReadUint32LE() (uint32, error) {
	return c.ReadUint32(binary.LittleEndian)
}

func (c *Cursor) ReadUint64LE() (uint64, error) {
	return c.ReadUint64(binary.LittleEndian)
}

func (c *Cursor) ReadUint16BE() (uint16, error) {
	return c.ReadUint16(binary.BigEndian)
}

func (c *Cursor) ReadUint32BE() (uint32, error) {
	return c.ReadUint32(binary.BigEndian)
}

func (c *Cursor) ReadUint64BE() (uint64, error) {
	return c.ReadUint64(binary.BigEndian)
}

func (c *Cursor) ReadInt16LE() (int16, error) {
	v, err := c.ReadUint16LE()
	return int16(v), err
}

func (c *Cursor) ReadInt32LE() (int32, error) {
	v, err := c.ReadUint32LE()
	return int32(v), err
}

func (c *Cursor) ReadInt64LE() (int64, error) {
	v, err := c.ReadUint64LE()
	return int64(v), err
}

// ReadUint128LE reads an unsigned little-endian 128-bit integer
func (c *Cursor) ReadUint128LE() (*big.Int, error) {
	b, err := c.readFixed(16)
	if err != nil {
		return nil, err
	}
	// big.Int wants big-endian bytes
	tmp := make([]byte, 16)
	for i := range 16 {
		tmp[15-i] = b[i]
	}
	return new(big.Int).SetBytes(tmp), nil
}

// ReadInt128LE reads a two's complement little-endian 128-bit integer
func (c *Cursor) ReadInt128LE() (*big.Int, error) {
	ret, err := c.ReadUint128LE()
	if err != nil {
		return nil, err
	}
	if ret.Bit(127) == 1 {
		ret.Sub(ret, twoTo128)
	}
	return ret, nil
}

// ReadBool reads a boolean byte, accepting only 0 and 1
func (c *Cursor) ReadBool() (bool, error) {
	offset := c.pos
	b, err := c.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, InvalidBooleanError{Offset: offset, Value: b}
	}
}

// ReadOptionTag reads the presence flag of an optional value. Only 0 and 1 are accepted
func (c *Cursor) ReadOptionTag() (bool, error) {
	offset := c.pos
	b, err := c.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, InvalidTagError{
			Offset: offset,
			Kind:   "option",
			Tag:    uint64(b),
		}
	}
}

// ReadLength reads a length prefix of the given width and byte order
func (c *Cursor) ReadLength(
	width PrefixWidth,
	order binary.ByteOrder,
) (uint64, error) {
	switch width {
	case Prefix8:
		v, err := c.ReadUint8()
		return uint64(v), err
	case Prefix16:
		v, err := c.ReadUint16(order)
		return uint64(v), err
	case Prefix32:
		v, err := c.ReadUint32(order)
		return uint64(v), err
	case Prefix64:
		return c.ReadUint64(order)
	default:
		return 0, fmt.Errorf("unsupported length prefix width: %d", width)
	}
}

// ReadPrefixedBytes reads a length prefix followed by that many bytes
func (c *Cursor) ReadPrefixedBytes(
	width PrefixWidth,
	order binary.ByteOrder,
) ([]byte, error) {
	n, err := c.ReadLength(width, order)
	if err != nil {
		return nil, err
	}
	if n > uint64(c.Remaining()) {
		return nil, UnderflowError{
			Offset:    c.pos,
			Needed:    clampInt(n),
			Remaining: c.Remaining(),
		}
	}
	return c.Read(int(n))
}

// ReadString reads n bytes and returns them as a string. The bytes must be valid UTF-8
func (c *Cursor) ReadString(n int) (string, error) {
	offset := c.pos
	b, err := c.readFixed(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", DecodingError{
			Offset: offset,
			Reason: "string is not valid UTF-8",
		}
	}
	return string(b), nil
}

// ReadPrefixedString reads a length prefix followed by a UTF-8 string of that length
func (c *Cursor) ReadPrefixedString(
	width PrefixWidth,
	order binary.ByteOrder,
) (string, error) {
	n, err := c.ReadLength(width, order)
	if err != nil {
		return "", err
	}
	if n > uint64(c.Remaining()) {
		return "", UnderflowError{
			Offset:    c.pos,
			Needed:    clampInt(n),
			Remaining: c.Remaining(),
		}
	}
	return c.ReadString(int(n))
}

func clampInt(n uint64) int {
	const maxInt = int(^uint(0) >> 1)
	if n > uint64(maxInt) {
		return maxInt
	}
	return int(n)
}
