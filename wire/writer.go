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
)

var (
	maxUint128 = new(big.Int).Sub(twoTo128, big.NewInt(1))
	maxInt128  = new(big.Int).Sub(new(big.Int).Rsh(twoTo128, 1), big.NewInt(1))
	minInt128  = new(big.Int).Neg(new(big.Int).Rsh(twoTo128, 1))
)

// Writer accumulates an encoding. Each write appends the unambiguous encoding of one value
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated encoding
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteRaw appends b without any framing
func (w *Writer) WriteRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteInt8(v int8) {
	w.WriteUint8(uint8(v))
}

func (w *Writer) WriteUint16(order binary.ByteOrder, v uint16) {
	var tmp [2]byte
	order.PutUint16(tmp[:], v)
	w.WriteRaw(tmp[:])
}

func (w *Writer) WriteUint32(order binary.ByteOrder, v uint32) {
	var tmp [4]byte
	order.PutUint32(tmp[:], v)
	w.WriteRaw(tmp[:])
}

func (w *Writer) WriteUint64(order binary.ByteOrder, v uint64) {
	var tmp [8]byte
	order.PutUint64(tmp[:], v)
	w.WriteRaw(tmp[:])
}

func (w *Writer) WriteUint16LE(v uint16) { w.WriteUint16(binary.LittleEndian, v) }
func (w *Writer) WriteUint32LE(v uint32) { w.WriteUint32(binary.LittleEndian, v) }
func (w *Writer) WriteUint64LE(v uint64) { w.WriteUint64(binary.LittleEndian, v) }
func (w *Writer) WriteUint16BE(v uint16) { w.WriteUint16(binary.BigEndian, v) }
func (w *Writer) WriteUint32BE(v uint32) { w.WriteUint32(binary.BigEndian, v) }
func (w *Writer) WriteUint64BE(v uint64) { w.WriteUint64(binary.BigEndian, v) }
func (w *Writer) WriteInt16LE(v int16)   { w.WriteUint16LE(uint16(v)) }
func (w *Writer) WriteInt32LE(v int32)   { w.WriteUint32LE(uint32(v)) }
func (w *Writer) WriteInt64LE(v int64)   { w.WriteUint64LE(uint64(v)) }

// WriteUint128LE writes v as an unsigned little-endian 128-bit integer
func (w *Writer) WriteUint128LE(v *big.Int) error {
	if v.Sign() < 0 || v.Cmp(maxUint128) > 0 {
		return OverflowError{Value: v.String(), Width: "u128"}
	}
	w.writeBig128(v)
	return nil
}

// WriteInt128LE writes v as a two's complement little-endian 128-bit integer
func (w *Writer) WriteInt128LE(v *big.Int) error {
	if v.Cmp(minInt128) < 0 || v.Cmp(maxInt128) > 0 {
		return OverflowError{Value: v.String(), Width: "i128"}
	}
	tmp := new(big.Int).Set(v)
	if tmp.Sign() < 0 {
		tmp.Add(tmp, twoTo128)
	}
	w.writeBig128(tmp)
	return nil
}

func (w *Writer) writeBig128(v *big.Int) {
	var be [16]byte
	v.FillBytes(be[:])
	var le [16]byte
	for i := range 16 {
		le[i] = be[15-i]
	}
	w.WriteRaw(le[:])
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
		return
	}
	w.WriteUint8(0)
}

// WriteOptionTag writes the presence flag of an optional value
func (w *Writer) WriteOptionTag(present bool) {
	w.WriteBool(present)
}

// WriteLength writes a length prefix of the given width and byte order
func (w *Writer) WriteLength(
	width PrefixWidth,
	order binary.ByteOrder,
	n uint64,
) error {
	if n > width.maxValue() {
		return OverflowError{
			Value: fmt.Sprintf("%d", n),
			Width: width.String() + " length prefix",
		}
	}
	switch width {
	case Prefix8:
		w.WriteUint8(uint8(n))
	case Prefix16:
		w.WriteUint16(order, uint16(n))
	case Prefix32:
		w.WriteUint32(order, uint32(n))
	case Prefix64:
		w.WriteUint64(order, n)
	default:
		return fmt.Errorf("unsupported length prefix width: %d", width)
	}
	return nil
}

// WritePrefixedBytes writes a length prefix followed by b
func (w *Writer) WritePrefixedBytes(
	width PrefixWidth,
	order binary.ByteOrder,
	b []byte,
) error {
	if err := w.WriteLength(width, order, uint64(len(b))); err != nil {
		return err
	}
	w.WriteRaw(b)
	return nil
}

// WritePrefixedString writes a length prefix followed by the bytes of s
func (w *Writer) WritePrefixedString(
	width PrefixWidth,
	order binary.ByteOrder,
	s string,
) error {
	return w.WritePrefixedBytes(width, order, []byte(s))
}
