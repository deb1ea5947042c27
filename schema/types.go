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
	"fmt"

	"github.com/blinklabs-io/concordium-go/wire"
)

// TypeTag is the leading byte of a serialized schema type
type TypeTag uint8

const (
	TagUnit            TypeTag = 0
	TagBool            TypeTag = 1
	TagU8              TypeTag = 2
	TagU16             TypeTag = 3
	TagU32             TypeTag = 4
	TagU64             TypeTag = 5
	TagI8              TypeTag = 6
	TagI16             TypeTag = 7
	TagI32             TypeTag = 8
	TagI64             TypeTag = 9
	TagAmount          TypeTag = 10
	TagAccountAddress  TypeTag = 11
	TagContractAddress TypeTag = 12
	TagTimestamp       TypeTag = 13
	TagDuration        TypeTag = 14
	TagPair            TypeTag = 15
	TagList            TypeTag = 16
	TagSet             TypeTag = 17
	TagMap             TypeTag = 18
	TagArray           TypeTag = 19
	TagStruct          TypeTag = 20
	TagEnum            TypeTag = 21
	TagString          TypeTag = 22
	TagU128            TypeTag = 23
	TagI128            TypeTag = 24
	TagContractName    TypeTag = 25
	TagReceiveName     TypeTag = 26
	TagULeb128         TypeTag = 27
	TagILeb128         TypeTag = 28
	TagByteList        TypeTag = 29
	TagByteArray       TypeTag = 30
	TagTaggedEnum      TypeTag = 31
)

// SizeLength is the width of the length prefix of a variable sized type
type SizeLength uint8

const (
	SizeU8  SizeLength = 0
	SizeU16 SizeLength = 1
	SizeU32 SizeLength = 2
	SizeU64 SizeLength = 3
)

func (s SizeLength) prefixWidth() (wire.PrefixWidth, error) {
	switch s {
	case SizeU8:
		return wire.Prefix8, nil
	case SizeU16:
		return wire.Prefix16, nil
	case SizeU32:
		return wire.Prefix32, nil
	case SizeU64:
		return wire.Prefix64, nil
	default:
		return 0, fmt.Errorf("unknown size length %d", s)
	}
}

func (s SizeLength) String() string {
	switch s {
	case SizeU8:
		return "U8"
	case SizeU16:
		return "U16"
	case SizeU32:
		return "U32"
	case SizeU64:
		return "U64"
	default:
		return fmt.Sprintf("SizeLength(%d)", s)
	}
}

// Type describes the binary layout of a value exposed by a smart contract. The set of
// implementations is closed
type Type interface {
	// Tag returns the tag the type is serialized with. Option is serialized as an Enum
	Tag() TypeTag
	isType()
}

type (
	Unit            struct{}
	Bool            struct{}
	U8              struct{}
	U16             struct{}
	U32             struct{}
	U64             struct{}
	U128            struct{}
	I8              struct{}
	I16             struct{}
	I32             struct{}
	I64             struct{}
	I128            struct{}
	Amount          struct{}
	AccountAddress  struct{}
	ContractAddress struct{}
	Timestamp       struct{}
	Duration        struct{}
)

// Pair is a tuple of two values
type Pair struct {
	First  Type
	Second Type
}

// List is a length-prefixed sequence
type List struct {
	Size SizeLength
	Elem Type
}

// Set is a length-prefixed sequence of unique values
type Set struct {
	Size SizeLength
	Elem Type
}

// Map is a length-prefixed sequence of key/value pairs
type Map struct {
	Size  SizeLength
	Key   Type
	Value Type
}

// Array is a sequence with a length fixed by the schema
type Array struct {
	Len  uint32
	Elem Type
}

type Struct struct {
	Fields Fields
}

// Enum selects one of its variants by index. The discriminant is a single byte for up
// to 256 variants and a little-endian u16 otherwise
type Enum struct {
	Variants []Variant
}

// TaggedEnum selects a variant by an explicit one byte tag
type TaggedEnum struct {
	Variants map[uint8]Variant
}

type String struct {
	Size SizeLength
}

// ContractName is serialized as "init_<name>"
type ContractName struct {
	Size SizeLength
}

// ReceiveName is serialized as "<contract>.<entrypoint>"
type ReceiveName struct {
	Size SizeLength
}

type ULeb128 struct {
	MaxBytes uint32
}

type ILeb128 struct {
	MaxBytes uint32
}

type ByteList struct {
	Size SizeLength
}

type ByteArray struct {
	Len uint32
}

// Option is an in-memory convenience for an optional value. It is serialized as
// Enum{None, Some(Elem)} and decodes to nil or the inner value
type Option struct {
	Elem Type
}

func (Unit) Tag() TypeTag            { return TagUnit }
func (Bool) Tag() TypeTag            { return TagBool }
func (U8) Tag() TypeTag              { return TagU8 }
func (U16) Tag() TypeTag             { return TagU16 }
func (U32) Tag() TypeTag             { return TagU32 }
func (U64) Tag() TypeTag             { return TagU64 }
func (U128) Tag() TypeTag            { return TagU128 }
func (I8) Tag() TypeTag              { return TagI8 }
func (I16) Tag() TypeTag             { return TagI16 }
func (I32) Tag() TypeTag             { return TagI32 }
func (I64) Tag() TypeTag             { return TagI64 }
func (I128) Tag() TypeTag            { return TagI128 }
func (Amount) Tag() TypeTag          { return TagAmount }
func (AccountAddress) Tag() TypeTag  { return TagAccountAddress }
func (ContractAddress) Tag() TypeTag { return TagContractAddress }
func (Timestamp) Tag() TypeTag       { return TagTimestamp }
func (Duration) Tag() TypeTag        { return TagDuration }
func (Pair) Tag() TypeTag            { return TagPair }
func (List) Tag() TypeTag            { return TagList }
func (Set) Tag() TypeTag             { return TagSet }
func (Map) Tag() TypeTag             { return TagMap }
func (Array) Tag() TypeTag           { return TagArray }
func (Struct) Tag() TypeTag          { return TagStruct }
func (Enum) Tag() TypeTag            { return TagEnum }
func (TaggedEnum) Tag() TypeTag      { return TagTaggedEnum }
func (String) Tag() TypeTag          { return TagString }
func (ContractName) Tag() TypeTag    { return TagContractName }
func (ReceiveName) Tag() TypeTag     { return TagReceiveName }
func (ULeb128) Tag() TypeTag         { return TagULeb128 }
func (ILeb128) Tag() TypeTag         { return TagILeb128 }
func (ByteList) Tag() TypeTag        { return TagByteList }
func (ByteArray) Tag() TypeTag       { return TagByteArray }
func (Option) Tag() TypeTag          { return TagEnum }

func (Unit) isType()            {}
func (Bool) isType()            {}
func (U8) isType()              {}
func (U16) isType()             {}
func (U32) isType()             {}
func (U64) isType()             {}
func (U128) isType()            {}
func (I8) isType()              {}
func (I16) isType()             {}
func (I32) isType()             {}
func (I64) isType()             {}
func (I128) isType()            {}
func (Amount) isType()          {}
func (AccountAddress) isType()  {}
func (ContractAddress) isType() {}
func (Timestamp) isType()       {}
func (Duration) isType()        {}
func (Pair) isType()            {}
func (List) isType()            {}
func (Set) isType()             {}
func (Map) isType()             {}
func (Array) isType()           {}
func (Struct) isType()          {}
func (Enum) isType()            {}
func (TaggedEnum) isType()      {}
func (String) isType()          {}
func (ContractName) isType()    {}
func (ReceiveName) isType()     {}
func (ULeb128) isType()         {}
func (ILeb128) isType()         {}
func (ByteList) isType()        {}
func (ByteArray) isType()       {}
func (Option) isType()          {}

// FieldsKind distinguishes structs, tuples and unit-like field lists
type FieldsKind uint8

const (
	FieldsNamed   FieldsKind = 0
	FieldsUnnamed FieldsKind = 1
	FieldsNone    FieldsKind = 2
)

// Fields is the body of a struct or of an enum variant
type Fields struct {
	Kind    FieldsKind
	Named   []NamedField
	Unnamed []Type
}

type NamedField struct {
	Name string
	Type Type
}

type Variant struct {
	Name   string
	Fields Fields
}

// NamedFields is a shorthand for a struct-like field list
func NamedFields(fields ...NamedField) Fields {
	return Fields{Kind: FieldsNamed, Named: fields}
}

// UnnamedFields is a shorthand for a tuple-like field list
func UnnamedFields(types ...Type) Fields {
	return Fields{Kind: FieldsUnnamed, Unnamed: types}
}

// NoFields is the field list of a unit-like variant
func NoFields() Fields {
	return Fields{Kind: FieldsNone}
}

// TypeName returns a short human readable name of t, used in error messages and
// templates
func TypeName(t Type) string {
	switch x := t.(type) {
	case Unit:
		return "Unit"
	case Bool:
		return "Bool"
	case U8:
		return "UInt8"
	case U16:
		return "UInt16"
	case U32:
		return "UInt32"
	case U64:
		return "UInt64"
	case U128:
		return "UInt128"
	case I8:
		return "Int8"
	case I16:
		return "Int16"
	case I32:
		return "Int32"
	case I64:
		return "Int64"
	case I128:
		return "Int128"
	case Amount:
		return "Amount"
	case AccountAddress:
		return "AccountAddress"
	case ContractAddress:
		return "ContractAddress"
	case Timestamp:
		return "Timestamp"
	case Duration:
		return "Duration"
	case Pair:
		return "Pair"
	case List:
		return "List"
	case Set:
		return "Set"
	case Map:
		return "Map"
	case Array:
		return fmt.Sprintf("Array[%d]", x.Len)
	case Struct:
		return "Struct"
	case Enum:
		return "Enum"
	case TaggedEnum:
		return "TaggedEnum"
	case String:
		return "String"
	case ContractName:
		return "ContractName"
	case ReceiveName:
		return "ReceiveName"
	case ULeb128:
		return "ULeb128"
	case ILeb128:
		return "ILeb128"
	case ByteList:
		return "ByteList"
	case ByteArray:
		return fmt.Sprintf("ByteArray[%d]", x.Len)
	case Option:
		return "Option"
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%T", t)
	}
}

// optionEnum returns the Enum an Option is serialized as
func optionEnum(o Option) Enum {
	return Enum{
		Variants: []Variant{
			{Name: "None", Fields: NoFields()},
			{Name: "Some", Fields: UnnamedFields(o.Elem)},
		},
	}
}

// minSize returns the smallest number of bytes a value of type t can occupy
func minSize(t Type) uint64 {
	switch x := t.(type) {
	case Unit:
		return 0
	case Struct:
		return fieldsMinSize(x.Fields)
	case Bool, U8, I8, ULeb128, ILeb128, Enum, TaggedEnum, Option:
		return 1
	case U16, I16:
		return 2
	case U32, I32:
		return 4
	case U64, I64, Amount, Timestamp, Duration:
		return 8
	case U128, I128, ContractAddress:
		return 16
	case AccountAddress:
		return 32
	case Pair:
		return satAdd(minSize(x.First), minSize(x.Second))
	case List:
		return sizeLengthBytes(x.Size)
	case Set:
		return sizeLengthBytes(x.Size)
	case Map:
		return sizeLengthBytes(x.Size)
	case String:
		return sizeLengthBytes(x.Size)
	case ContractName:
		return sizeLengthBytes(x.Size)
	case ReceiveName:
		return sizeLengthBytes(x.Size)
	case ByteList:
		return sizeLengthBytes(x.Size)
	case Array:
		return satMul(uint64(x.Len), minSize(x.Elem))
	case ByteArray:
		return uint64(x.Len)
	default:
		return 0
	}
}

func fieldsMinSize(f Fields) uint64 {
	var ret uint64
	switch f.Kind {
	case FieldsNamed:
		for _, field := range f.Named {
			ret = satAdd(ret, minSize(field.Type))
		}
	case FieldsUnnamed:
		for _, t := range f.Unnamed {
			ret = satAdd(ret, minSize(t))
		}
	}
	return ret
}

func sizeLengthBytes(s SizeLength) uint64 {
	w, err := s.prefixWidth()
	if err != nil {
		return 0
	}
	return uint64(w)
}

func satAdd(a, b uint64) uint64 {
	if a+b < a {
		return ^uint64(0)
	}
	return a + b
}

func satMul(a, b uint64) uint64 {
	if a != 0 && b > ^uint64(0)/a {
		return ^uint64(0)
	}
	return a * b
}
