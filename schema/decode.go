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
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
)

// Lists of zero sized elements are not bounded by the input length
const maxZeroSizedElements = 1 << 16

// DecodeValue decodes data according to t into a JSON compatible value. The whole input
// must be consumed
func DecodeValue(t Type, data []byte) (any, error) {
	d := &decoder{c: wire.NewCursor(data)}
	ret, err := d.decode(t, 0)
	if err != nil {
		return nil, err
	}
	if err := d.c.Done(); err != nil {
		return nil, err
	}
	return ret, nil
}

// DecodeValueFrom decodes a single value from the cursor, leaving any following bytes
// unread
func DecodeValueFrom(t Type, c *wire.Cursor) (any, error) {
	d := &decoder{c: c}
	return d.decode(t, 0)
}

type decoder struct {
	c    *wire.Cursor
	path path
}

// path tracks the position within the value being processed
type path []string

func (p *path) push(segment string) {
	*p = append(*p, segment)
}

func (p *path) pushIndex(i uint64) {
	*p = append(*p, "["+strconv.FormatUint(i, 10)+"]")
}

func (p *path) pop() {
	*p = (*p)[:len(*p)-1]
}

func (p path) String() string {
	var sb strings.Builder
	for _, segment := range p {
		if !strings.HasPrefix(segment, "[") && sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(segment)
	}
	return sb.String()
}

// fail attributes err to the current path. Errors that already carry a path pass through
func (p path) fail(err error) error {
	if _, ok := err.(*PathError); ok {
		return err
	}
	return &PathError{Path: p.String(), Err: err}
}

func (d *decoder) fail(err error) error {
	return d.path.fail(err)
}

func (d *decoder) decode(t Type, depth int) (any, error) {
	if depth > MaxDepth {
		return nil, d.fail(ErrMaxDepth)
	}
	c := d.c
	switch x := t.(type) {
	case Unit:
		return []any{}, nil
	case Bool:
		v, err := c.ReadBool()
		if err != nil {
			return nil, d.fail(err)
		}
		return v, nil
	case U8:
		v, err := c.ReadUint8()
		if err != nil {
			return nil, d.fail(err)
		}
		return uint64(v), nil
	case U16:
		v, err := c.ReadUint16LE()
		if err != nil {
			return nil, d.fail(err)
		}
		return uint64(v), nil
	case U32:
		v, err := c.ReadUint32LE()
		if err != nil {
			return nil, d.fail(err)
		}
		return uint64(v), nil
	case U64:
		v, err := c.ReadUint64LE()
		if err != nil {
			return nil, d.fail(err)
		}
		return strconv.FormatUint(v, 10), nil
	case U128:
		v, err := c.ReadUint128LE()
		if err != nil {
			return nil, d.fail(err)
		}
		return v.String(), nil
	case I8:
		v, err := c.ReadInt8()
		if err != nil {
			return nil, d.fail(err)
		}
		return int64(v), nil
	case I16:
		v, err := c.ReadInt16LE()
		if err != nil {
			return nil, d.fail(err)
		}
		return int64(v), nil
	case I32:
		v, err := c.ReadInt32LE()
		if err != nil {
			return nil, d.fail(err)
		}
		return int64(v), nil
	case I64:
		v, err := c.ReadInt64LE()
		if err != nil {
			return nil, d.fail(err)
		}
		return strconv.FormatInt(v, 10), nil
	case I128:
		v, err := c.ReadInt128LE()
		if err != nil {
			return nil, d.fail(err)
		}
		return v.String(), nil
	case Amount:
		v, err := c.ReadUint64LE()
		if err != nil {
			return nil, d.fail(err)
		}
		return types.CcdAmount(v).String(), nil
	case AccountAddress:
		b, err := c.Read(types.AccountAddressSize)
		if err != nil {
			return nil, d.fail(err)
		}
		addr, _ := types.NewAccountAddressFromBytes(b)
		return addr.String(), nil
	case ContractAddress:
		index, err := c.ReadUint64LE()
		if err != nil {
			return nil, d.fail(err)
		}
		subindex, err := c.ReadUint64LE()
		if err != nil {
			return nil, d.fail(err)
		}
		return Object{
			{Name: "index", Value: index},
			{Name: "subindex", Value: subindex},
		}, nil
	case Timestamp:
		offset := c.Offset()
		v, err := c.ReadUint64LE()
		if err != nil {
			return nil, d.fail(err)
		}
		if types.Timestamp(v) > types.MaxTimestamp {
			return nil, d.fail(wire.DecodingError{
				Offset: offset,
				Reason: fmt.Sprintf("timestamp %d is out of range", v),
			})
		}
		return types.Timestamp(v).String(), nil
	case Duration:
		v, err := c.ReadUint64LE()
		if err != nil {
			return nil, d.fail(err)
		}
		return types.Duration(v).String(), nil
	case Pair:
		first, err := d.decode(x.First, depth+1)
		if err != nil {
			return nil, err
		}
		second, err := d.decode(x.Second, depth+1)
		if err != nil {
			return nil, err
		}
		return []any{first, second}, nil
	case List:
		return d.decodeSequence(x.Size, x.Elem, depth)
	case Set:
		return d.decodeSequence(x.Size, x.Elem, depth)
	case Array:
		return d.decodeElements(uint64(x.Len), x.Elem, depth)
	case Map:
		n, err := d.readCount(x.Size, satAdd(minSize(x.Key), minSize(x.Value)))
		if err != nil {
			return nil, err
		}
		ret := make([]any, 0, n)
		for i := range n {
			d.path.pushIndex(i)
			k, err := d.decode(x.Key, depth+1)
			if err != nil {
				return nil, err
			}
			v, err := d.decode(x.Value, depth+1)
			if err != nil {
				return nil, err
			}
			d.path.pop()
			ret = append(ret, []any{k, v})
		}
		return ret, nil
	case Struct:
		return d.decodeFields(x.Fields, depth)
	case Enum:
		idx, err := d.readDiscriminant(len(x.Variants))
		if err != nil {
			return nil, err
		}
		return d.decodeVariant(x.Variants[idx], depth)
	case TaggedEnum:
		tag, err := c.ReadUint8()
		if err != nil {
			return nil, d.fail(err)
		}
		variant, ok := x.Variants[tag]
		if !ok {
			return nil, d.fail(UnknownVariantError{Index: uint64(tag), Count: len(x.Variants)})
		}
		return d.decodeVariant(variant, depth)
	case Option:
		present, err := c.ReadOptionTag()
		if err != nil {
			return nil, d.fail(err)
		}
		if !present {
			return nil, nil
		}
		return d.decode(x.Elem, depth+1)
	case String:
		s, err := d.readString(x.Size)
		if err != nil {
			return nil, err
		}
		return s, nil
	case ContractName:
		offset := c.Offset()
		s, err := d.readString(x.Size)
		if err != nil {
			return nil, err
		}
		name, ok := strings.CutPrefix(s, "init_")
		if !ok {
			return nil, d.fail(wire.DecodingError{
				Offset: offset,
				Reason: fmt.Sprintf("contract name %q lacks \"init_\" prefix", s),
			})
		}
		return Object{{Name: "contract", Value: name}}, nil
	case ReceiveName:
		offset := c.Offset()
		s, err := d.readString(x.Size)
		if err != nil {
			return nil, err
		}
		contract, fn, ok := strings.Cut(s, ".")
		if !ok {
			return nil, d.fail(wire.DecodingError{
				Offset: offset,
				Reason: fmt.Sprintf("receive name %q lacks '.' separator", s),
			})
		}
		return Object{
			{Name: "contract", Value: contract},
			{Name: "func", Value: fn},
		}, nil
	case ULeb128:
		v, err := c.ReadULEB128(int(x.MaxBytes))
		if err != nil {
			return nil, d.fail(err)
		}
		return v.String(), nil
	case ILeb128:
		v, err := c.ReadILEB128(int(x.MaxBytes))
		if err != nil {
			return nil, d.fail(err)
		}
		return v.String(), nil
	case ByteList:
		width, err := x.Size.prefixWidth()
		if err != nil {
			return nil, d.fail(err)
		}
		b, err := c.ReadPrefixedBytes(width, binary.LittleEndian)
		if err != nil {
			return nil, d.fail(err)
		}
		return hex.EncodeToString(b), nil
	case ByteArray:
		b, err := c.Read(int(x.Len))
		if err != nil {
			return nil, d.fail(err)
		}
		return hex.EncodeToString(b), nil
	default:
		return nil, d.fail(fmt.Errorf("unsupported schema type %s", TypeName(t)))
	}
}

// readCount reads a length prefix and checks that the remaining input can hold that
// many elements of at least elemSize bytes
func (d *decoder) readCount(size SizeLength, elemSize uint64) (uint64, error) {
	width, err := size.prefixWidth()
	if err != nil {
		return 0, d.fail(err)
	}
	n, err := d.c.ReadLength(width, binary.LittleEndian)
	if err != nil {
		return 0, d.fail(err)
	}
	if err := d.checkCount(n, elemSize); err != nil {
		return 0, err
	}
	return n, nil
}

func (d *decoder) checkCount(n uint64, elemSize uint64) error {
	remaining := uint64(d.c.Remaining())
	if elemSize == 0 {
		if n > maxZeroSizedElements {
			return d.fail(wire.DecodingError{
				Offset: d.c.Offset(),
				Reason: fmt.Sprintf("%d zero sized elements", n),
			})
		}
		return nil
	}
	if needed := satMul(n, elemSize); needed > remaining {
		return d.fail(wire.UnderflowError{
			Offset:    d.c.Offset(),
			Needed:    int(min(needed, uint64(^uint(0)>>1))),
			Remaining: int(remaining),
		})
	}
	return nil
}

func (d *decoder) decodeSequence(size SizeLength, elem Type, depth int) (any, error) {
	n, err := d.readCount(size, minSize(elem))
	if err != nil {
		return nil, err
	}
	return d.decodeN(n, elem, depth)
}

func (d *decoder) decodeElements(n uint64, elem Type, depth int) (any, error) {
	if err := d.checkCount(n, minSize(elem)); err != nil {
		return nil, err
	}
	return d.decodeN(n, elem, depth)
}

func (d *decoder) decodeN(n uint64, elem Type, depth int) (any, error) {
	ret := make([]any, 0, n)
	for i := range n {
		d.path.pushIndex(i)
		v, err := d.decode(elem, depth+1)
		if err != nil {
			return nil, err
		}
		d.path.pop()
		ret = append(ret, v)
	}
	return ret, nil
}

func (d *decoder) readDiscriminant(count int) (int, error) {
	var idx uint64
	if count <= 256 {
		v, err := d.c.ReadUint8()
		if err != nil {
			return 0, d.fail(err)
		}
		idx = uint64(v)
	} else {
		v, err := d.c.ReadUint16LE()
		if err != nil {
			return 0, d.fail(err)
		}
		idx = uint64(v)
	}
	if idx >= uint64(count) {
		return 0, d.fail(UnknownVariantError{Index: idx, Count: count})
	}
	return int(idx), nil
}

func (d *decoder) decodeVariant(v Variant, depth int) (any, error) {
	d.path.push(v.Name)
	fields, err := d.decodeFields(v.Fields, depth)
	if err != nil {
		return nil, err
	}
	d.path.pop()
	return Object{{Name: v.Name, Value: fields}}, nil
}

func (d *decoder) decodeFields(f Fields, depth int) (any, error) {
	switch f.Kind {
	case FieldsNamed:
		ret := make(Object, 0, len(f.Named))
		for _, field := range f.Named {
			d.path.push(field.Name)
			v, err := d.decode(field.Type, depth+1)
			if err != nil {
				return nil, err
			}
			d.path.pop()
			ret = append(ret, Field{Name: field.Name, Value: v})
		}
		return ret, nil
	case FieldsUnnamed:
		ret := make([]any, 0, len(f.Unnamed))
		for i, t := range f.Unnamed {
			d.path.pushIndex(uint64(i))
			v, err := d.decode(t, depth+1)
			if err != nil {
				return nil, err
			}
			d.path.pop()
			ret = append(ret, v)
		}
		return ret, nil
	case FieldsNone:
		return []any{}, nil
	default:
		return nil, d.fail(fmt.Errorf("unknown fields kind %d", f.Kind))
	}
}

func (d *decoder) readString(size SizeLength) (string, error) {
	width, err := size.prefixWidth()
	if err != nil {
		return "", d.fail(err)
	}
	s, err := d.c.ReadPrefixedString(width, binary.LittleEndian)
	if err != nil {
		return "", d.fail(err)
	}
	return s, nil
}
