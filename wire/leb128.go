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
	"fmt"
	"math/big"
)

var twoTo128 = new(big.Int).Lsh(big.NewInt(1), 128)

// ReadULEB128 reads an unsigned LEB128 integer occupying at most maxBytes bytes
func (c *Cursor) ReadULEB128(maxBytes int) (*big.Int, error) {
	offset := c.pos
	ret := new(big.Int)
	for i := range maxBytes {
		b, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		part := new(big.Int).SetUint64(uint64(b & 0x7f))
		ret.Or(ret, part.Lsh(part, uint(i)*7))
		if b&0x80 == 0 {
			return ret, nil
		}
	}
	return nil, DecodingError{
		Offset: offset,
		Reason: fmt.Sprintf("LEB128 value exceeds %d bytes", maxBytes),
	}
}

// ReadILEB128 reads a signed LEB128 integer occupying at most maxBytes bytes
func (c *Cursor) ReadILEB128(maxBytes int) (*big.Int, error) {
	offset := c.pos
	ret := new(big.Int)
	for i := range maxBytes {
		b, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		part := new(big.Int).SetUint64(uint64(b & 0x7f))
		ret.Or(ret, part.Lsh(part, uint(i)*7))
		if b&0x80 == 0 {
			// Sign bit of the final group
			if b&0x40 != 0 {
				ret.Sub(ret, new(big.Int).Lsh(big.NewInt(1), uint(i+1)*7))
			}
			return ret, nil
		}
	}
	return nil, DecodingError{
		Offset: offset,
		Reason: fmt.Sprintf("LEB128 value exceeds %d bytes", maxBytes),
	}
}

// ReadVarUint32 reads an unsigned LEB128 integer that must fit in 32 bits
func (c *Cursor) ReadVarUint32() (uint32, error) {
	offset := c.pos
	var ret uint64
	for i := range 5 {
		b, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		ret |= uint64(b&0x7f) << (uint(i) * 7)
		if b&0x80 == 0 {
			if ret > 0xffffffff {
				break
			}
			return uint32(ret), nil
		}
	}
	return 0, DecodingError{
		Offset: offset,
		Reason: "LEB128 value does not fit in 32 bits",
	}
}

// WriteULEB128 writes v as unsigned LEB128, failing if it needs more than maxBytes bytes
func (w *Writer) WriteULEB128(v *big.Int, maxBytes int) error {
	if v.Sign() < 0 {
		return OverflowError{Value: v.String(), Width: "unsigned LEB128"}
	}
	tmp := new(big.Int).Set(v)
	out := make([]byte, 0, 8)
	for {
		b := byte(tmp.Uint64() & 0x7f)
		tmp.Rsh(tmp, 7)
		if tmp.Sign() != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if tmp.Sign() == 0 {
			break
		}
	}
	if len(out) > maxBytes {
		return OverflowError{
			Value: v.String(),
			Width: fmt.Sprintf("%d LEB128 bytes", maxBytes),
		}
	}
	w.WriteRaw(out)
	return nil
}

// WriteILEB128 writes v as signed LEB128, failing if it needs more than maxBytes bytes
func (w *Writer) WriteILEB128(v *big.Int, maxBytes int) error {
	tmp := new(big.Int).Set(v)
	out := make([]byte, 0, 8)
	low := new(big.Int)
	mask := big.NewInt(0x7f)
	for {
		low.And(tmp, mask)
		b := byte(low.Uint64())
		// Arithmetic shift, rounding towards negative infinity
		tmp.Rsh(tmp, 7)
		signBitClear := b&0x40 == 0
		if (tmp.Sign() == 0 && signBitClear) ||
			(tmp.Cmp(big.NewInt(-1)) == 0 && !signBitClear) {
			out = append(out, b)
			break
		}
		out = append(out, b|0x80)
	}
	if len(out) > maxBytes {
		return OverflowError{
			Value: v.String(),
			Width: fmt.Sprintf("%d LEB128 bytes", maxBytes),
		}
	}
	w.WriteRaw(out)
	return nil
}

// WriteVarUint32 writes v as unsigned LEB128
func (w *Writer) WriteVarUint32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			w.WriteUint8(b | 0x80)
			continue
		}
		w.WriteUint8(b)
		return
	}
}
