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
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/blinklabs-io/concordium-go/wire"
)

// MaxDepth limits the nesting of schema types
const MaxDepth = 256

// Enum discriminants are at most two bytes wide
const maxEnumVariants = 1 << 16

// ParseType parses a serialized schema type. The whole input must be consumed
func ParseType(data []byte) (Type, error) {
	c := wire.NewCursor(data)
	t, err := readType(c, 0)
	if err != nil {
		return nil, err
	}
	if err := c.Done(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseTypeBase64 parses a base64 encoded schema type, as produced by the contract
// build tooling
func ParseTypeBase64(data string) (Type, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode base64 schema: %w", err)
	}
	return ParseType(raw)
}

// EncodeType serializes a schema type
func EncodeType(t Type) ([]byte, error) {
	w := wire.NewWriter()
	if err := writeType(w, t, 0); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeTypeBase64 serializes a schema type and encodes it as base64
func EncodeTypeBase64(t Type) (string, error) {
	raw, err := EncodeType(t)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func readSizeLength(c *wire.Cursor) (SizeLength, error) {
	offset := c.Offset()
	b, err := c.ReadUint8()
	if err != nil {
		return 0, err
	}
	if b > uint8(SizeU64) {
		return 0, wire.InvalidTagError{
			Offset: offset,
			Kind:   "size length",
			Tag:    uint64(b),
		}
	}
	return SizeLength(b), nil
}

// readSchemaString reads a u32 little-endian length prefixed string
func readSchemaString(c *wire.Cursor) (string, error) {
	return c.ReadPrefixedString(wire.Prefix32, binary.LittleEndian)
}

func writeSchemaString(w *wire.Writer, s string) error {
	return w.WritePrefixedString(wire.Prefix32, binary.LittleEndian, s)
}

// boundedCap caps a declared element count by the number of bytes left, so a bogus
// count cannot force a large allocation
func boundedCap(count uint32, remaining int) int {
	if int64(count) > int64(remaining) {
		return remaining
	}
	return int(count)
}

func readType(c *wire.Cursor, depth int) (Type, error) {
	if depth > MaxDepth {
		return nil, ErrMaxDepth
	}
	offset := c.Offset()
	tag, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	switch TypeTag(tag) {
	case TagUnit:
		return Unit{}, nil
	case TagBool:
		return Bool{}, nil
	case TagU8:
		return U8{}, nil
	case TagU16:
		return U16{}, nil
	case TagU32:
		return U32{}, nil
	case TagU64:
		return U64{}, nil
	case TagU128:
		return U128{}, nil
	case TagI8:
		return I8{}, nil
	case TagI16:
		return I16{}, nil
	case TagI32:
		return I32{}, nil
	case TagI64:
		return I64{}, nil
	case TagI128:
		return I128{}, nil
	case TagAmount:
		return Amount{}, nil
	case TagAccountAddress:
		return AccountAddress{}, nil
	case TagContractAddress:
		return ContractAddress{}, nil
	case TagTimestamp:
		return Timestamp{}, nil
	case TagDuration:
		return Duration{}, nil
	case TagPair:
		first, err := readType(c, depth+1)
		if err != nil {
			return nil, err
		}
		second, err := readType(c, depth+1)
		if err != nil {
			return nil, err
		}
		return Pair{First: first, Second: second}, nil
	case TagList, TagSet:
		size, err := readSizeLength(c)
		if err != nil {
			return nil, err
		}
		elem, err := readType(c, depth+1)
		if err != nil {
			return nil, err
		}
		if TypeTag(tag) == TagSet {
			return Set{Size: size, Elem: elem}, nil
		}
		return List{Size: size, Elem: elem}, nil
	case TagMap:
		size, err := readSizeLength(c)
		if err != nil {
			return nil, err
		}
		key, err := readType(c, depth+1)
		if err != nil {
			return nil, err
		}
		value, err := readType(c, depth+1)
		if err != nil {
			return nil, err
		}
		return Map{Size: size, Key: key, Value: value}, nil
	case TagArray:
		n, err := c.ReadUint32LE()
		if err != nil {
			return nil, err
		}
		elem, err := readType(c, depth+1)
		if err != nil {
			return nil, err
		}
		return Array{Len: n, Elem: elem}, nil
	case TagStruct:
		fields, err := readFields(c, depth+1)
		if err != nil {
			return nil, err
		}
		return Struct{Fields: fields}, nil
	case TagEnum:
		count, err := c.ReadUint32LE()
		if err != nil {
			return nil, err
		}
		if count > maxEnumVariants {
			return nil, wire.DecodingError{
				Offset: offset,
				Reason: fmt.Sprintf("enum with %d variants", count),
			}
		}
		variants := make([]Variant, 0, boundedCap(count, c.Remaining()))
		for range count {
			v, err := readVariant(c, depth+1)
			if err != nil {
				return nil, err
			}
			variants = append(variants, v)
		}
		return Enum{Variants: variants}, nil
	case TagTaggedEnum:
		count, err := c.ReadUint32LE()
		if err != nil {
			return nil, err
		}
		variants := make(map[uint8]Variant, boundedCap(count, c.Remaining()))
		for range count {
			variantOffset := c.Offset()
			variantTag, err := c.ReadUint8()
			if err != nil {
				return nil, err
			}
			if _, ok := variants[variantTag]; ok {
				return nil, wire.DecodingError{
					Offset: variantOffset,
					Reason: fmt.Sprintf("duplicate tagged enum tag %d", variantTag),
				}
			}
			v, err := readVariant(c, depth+1)
			if err != nil {
				return nil, err
			}
			variants[variantTag] = v
		}
		return TaggedEnum{Variants: variants}, nil
	case TagString, TagContractName, TagReceiveName, TagByteList:
		size, err := readSizeLength(c)
		if err != nil {
			return nil, err
		}
		switch TypeTag(tag) {
		case TagString:
			return String{Size: size}, nil
		case TagContractName:
			return ContractName{Size: size}, nil
		case TagReceiveName:
			return ReceiveName{Size: size}, nil
		default:
			return ByteList{Size: size}, nil
		}
	case TagULeb128:
		n, err := c.ReadUint32LE()
		if err != nil {
			return nil, err
		}
		return ULeb128{MaxBytes: n}, nil
	case TagILeb128:
		n, err := c.ReadUint32LE()
		if err != nil {
			return nil, err
		}
		return ILeb128{MaxBytes: n}, nil
	case TagByteArray:
		n, err := c.ReadUint32LE()
		if err != nil {
			return nil, err
		}
		return ByteArray{Len: n}, nil
	default:
		return nil, wire.InvalidTagError{
			Offset: offset,
			Kind:   "schema type",
			Tag:    uint64(tag),
		}
	}
}

func readVariant(c *wire.Cursor, depth int) (Variant, error) {
	name, err := readSchemaString(c)
	if err != nil {
		return Variant{}, err
	}
	fields, err := readFields(c, depth)
	if err != nil {
		return Variant{}, err
	}
	return Variant{Name: name, Fields: fields}, nil
}

func readFields(c *wire.Cursor, depth int) (Fields, error) {
	offset := c.Offset()
	kind, err := c.ReadUint8()
	if err != nil {
		return Fields{}, err
	}
	switch FieldsKind(kind) {
	case FieldsNamed:
		count, err := c.ReadUint32LE()
		if err != nil {
			return Fields{}, err
		}
		named := make([]NamedField, 0, boundedCap(count, c.Remaining()))
		for range count {
			name, err := readSchemaString(c)
			if err != nil {
				return Fields{}, err
			}
			t, err := readType(c, depth+1)
			if err != nil {
				return Fields{}, err
			}
			named = append(named, NamedField{Name: name, Type: t})
		}
		return Fields{Kind: FieldsNamed, Named: named}, nil
	case FieldsUnnamed:
		count, err := c.ReadUint32LE()
		if err != nil {
			return Fields{}, err
		}
		unnamed := make([]Type, 0, boundedCap(count, c.Remaining()))
		for range count {
			t, err := readType(c, depth+1)
			if err != nil {
				return Fields{}, err
			}
			unnamed = append(unnamed, t)
		}
		return Fields{Kind: FieldsUnnamed, Unnamed: unnamed}, nil
	case FieldsNone:
		return Fields{Kind: FieldsNone}, nil
	default:
		return Fields{}, wire.InvalidTagError{
			Offset: offset,
			Kind:   "fields",
			Tag:    uint64(kind),
		}
	}
}

func writeType(w *wire.Writer, t Type, depth int) error {
	if depth > MaxDepth {
		return ErrMaxDepth
	}
	switch x := t.(type) {
	case Unit, Bool, U8, U16, U32, U64, U128, I8, I16, I32, I64, I128,
		Amount, AccountAddress, ContractAddress, Timestamp, Duration:
		w.WriteUint8(uint8(t.Tag()))
	case Pair:
		w.WriteUint8(uint8(TagPair))
		if err := writeType(w, x.First, depth+1); err != nil {
			return err
		}
		return writeType(w, x.Second, depth+1)
	case List:
		w.WriteUint8(uint8(TagList))
		w.WriteUint8(uint8(x.Size))
		return writeType(w, x.Elem, depth+1)
	case Set:
		w.WriteUint8(uint8(TagSet))
		w.WriteUint8(uint8(x.Size))
		return writeType(w, x.Elem, depth+1)
	case Map:
		w.WriteUint8(uint8(TagMap))
		w.WriteUint8(uint8(x.Size))
		if err := writeType(w, x.Key, depth+1); err != nil {
			return err
		}
		return writeType(w, x.Value, depth+1)
	case Array:
		w.WriteUint8(uint8(TagArray))
		w.WriteUint32LE(x.Len)
		return writeType(w, x.Elem, depth+1)
	case Struct:
		w.WriteUint8(uint8(TagStruct))
		return writeFields(w, x.Fields, depth+1)
	case Enum:
		w.WriteUint8(uint8(TagEnum))
		return writeVariants(w, x.Variants, depth+1)
	case Option:
		w.WriteUint8(uint8(TagEnum))
		return writeVariants(w, optionEnum(x).Variants, depth+1)
	case TaggedEnum:
		w.WriteUint8(uint8(TagTaggedEnum))
		w.WriteUint32LE(uint32(len(x.Variants)))
		tags := make([]int, 0, len(x.Variants))
		for tag := range x.Variants {
			tags = append(tags, int(tag))
		}
		sort.Ints(tags)
		for _, tag := range tags {
			v := x.Variants[uint8(tag)]
			w.WriteUint8(uint8(tag))
			if err := writeSchemaString(w, v.Name); err != nil {
				return err
			}
			if err := writeFields(w, v.Fields, depth+1); err != nil {
				return err
			}
		}
	case String:
		w.WriteUint8(uint8(TagString))
		w.WriteUint8(uint8(x.Size))
	case ContractName:
		w.WriteUint8(uint8(TagContractName))
		w.WriteUint8(uint8(x.Size))
	case ReceiveName:
		w.WriteUint8(uint8(TagReceiveName))
		w.WriteUint8(uint8(x.Size))
	case ByteList:
		w.WriteUint8(uint8(TagByteList))
		w.WriteUint8(uint8(x.Size))
	case ULeb128:
		w.WriteUint8(uint8(TagULeb128))
		w.WriteUint32LE(x.MaxBytes)
	case ILeb128:
		w.WriteUint8(uint8(TagILeb128))
		w.WriteUint32LE(x.MaxBytes)
	case ByteArray:
		w.WriteUint8(uint8(TagByteArray))
		w.WriteUint32LE(x.Len)
	default:
		return fmt.Errorf("cannot serialize schema type %s", TypeName(t))
	}
	return nil
}

func writeVariants(w *wire.Writer, variants []Variant, depth int) error {
	w.WriteUint32LE(uint32(len(variants)))
	for _, v := range variants {
		if err := writeSchemaString(w, v.Name); err != nil {
			return err
		}
		if err := writeFields(w, v.Fields, depth); err != nil {
			return err
		}
	}
	return nil
}

func writeFields(w *wire.Writer, f Fields, depth int) error {
	w.WriteUint8(uint8(f.Kind))
	switch f.Kind {
	case FieldsNamed:
		w.WriteUint32LE(uint32(len(f.Named)))
		for _, field := range f.Named {
			if err := writeSchemaString(w, field.Name); err != nil {
				return err
			}
			if err := writeType(w, field.Type, depth+1); err != nil {
				return err
			}
		}
	case FieldsUnnamed:
		w.WriteUint32LE(uint32(len(f.Unnamed)))
		for _, t := range f.Unnamed {
			if err := writeType(w, t, depth+1); err != nil {
				return err
			}
		}
	case FieldsNone:
	default:
		return fmt.Errorf("unknown fields kind %d", f.Kind)
	}
	return nil
}
