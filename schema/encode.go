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
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/blinklabs-io/concordium-go/types"
	"github.com/blinklabs-io/concordium-go/wire"
)

// EncodeValue serializes value according to t. Values use the same shapes DecodeValue
// produces. Numbers may also be given as Go integers, json.Number, integral float64 or
// *big.Int, and objects as map[string]any
func EncodeValue(t Type, value any) ([]byte, error) {
	w := wire.NewWriter()
	if err := EncodeValueTo(t, value, w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeValueTo appends the serialization of value to w
func EncodeValueTo(t Type, value any, w *wire.Writer) error {
	e := &encoder{w: w}
	return e.encode(t, value, 0)
}

// EncodeJSON parses jsonData and serializes the result according to t
func EncodeJSON(t Type, jsonData []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("parse JSON value: %w", err)
	}
	return EncodeValue(t, value)
}

type encoder struct {
	w    *wire.Writer
	path path
}

func (e *encoder) fail(err error) error {
	// Width overflows from the writer are shape mismatches of the caller's value
	var overflow wire.OverflowError
	if errors.As(err, &overflow) {
		err = SchemaMismatchError{Expected: overflow.Width, Actual: overflow.Value}
	}
	return e.path.fail(err)
}

var (
	bigOne    = big.NewInt(1)
	maxUint64 = new(big.Int).SetUint64(math.MaxUint64)
)

func unsignedMax(bits uint) *big.Int {
	ret := new(big.Int).Lsh(bigOne, bits)
	return ret.Sub(ret, bigOne)
}

func signedRange(bits uint) (*big.Int, *big.Int) {
	hi := new(big.Int).Lsh(bigOne, bits-1)
	lo := new(big.Int).Neg(hi)
	return lo, hi.Sub(hi, bigOne)
}

// toBigInt converts the accepted representations of an integer
func toBigInt(v any) (*big.Int, bool) {
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			return nil, false
		}
		return new(big.Int).Set(x), true
	case json.Number:
		return new(big.Int).SetString(string(x), 10)
	case string:
		return new(big.Int).SetString(strings.TrimSpace(x), 10)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return nil, false
		}
		ret, _ := big.NewFloat(x).Int(nil)
		return ret, true
	case float32:
		return toBigInt(float64(x))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), true
	}
	return nil, false
}

func (e *encoder) integer(t Type, v any, lo *big.Int, hi *big.Int) (*big.Int, error) {
	n, ok := toBigInt(v)
	if !ok || n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return nil, e.fail(mismatch(TypeName(t), v))
	}
	return n, nil
}

func (e *encoder) unsigned(t Type, v any, bits uint) (uint64, error) {
	n, err := e.integer(t, v, new(big.Int), unsignedMax(bits))
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (e *encoder) signed(t Type, v any, bits uint) (int64, error) {
	lo, hi := signedRange(bits)
	n, err := e.integer(t, v, lo, hi)
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

func (e *encoder) encode(t Type, v any, depth int) error {
	if depth > MaxDepth {
		return e.fail(ErrMaxDepth)
	}
	w := e.w
	switch x := t.(type) {
	case Unit:
		if !isEmptyUnit(v) {
			return e.fail(mismatch("Unit ([])", v))
		}
	case Bool:
		b, ok := v.(bool)
		if !ok {
			return e.fail(mismatch("Bool", v))
		}
		w.WriteBool(b)
	case U8:
		n, err := e.unsigned(t, v, 8)
		if err != nil {
			return err
		}
		w.WriteUint8(uint8(n))
	case U16:
		n, err := e.unsigned(t, v, 16)
		if err != nil {
			return err
		}
		w.WriteUint16LE(uint16(n))
	case U32:
		n, err := e.unsigned(t, v, 32)
		if err != nil {
			return err
		}
		w.WriteUint32LE(uint32(n))
	case U64:
		n, err := e.unsigned(t, v, 64)
		if err != nil {
			return err
		}
		w.WriteUint64LE(n)
	case I8:
		n, err := e.signed(t, v, 8)
		if err != nil {
			return err
		}
		w.WriteInt8(int8(n))
	case I16:
		n, err := e.signed(t, v, 16)
		if err != nil {
			return err
		}
		w.WriteInt16LE(int16(n))
	case I32:
		n, err := e.signed(t, v, 32)
		if err != nil {
			return err
		}
		w.WriteInt32LE(int32(n))
	case I64:
		n, err := e.signed(t, v, 64)
		if err != nil {
			return err
		}
		w.WriteInt64LE(n)
	case U128:
		n, err := e.integer(t, v, new(big.Int), unsignedMax(128))
		if err != nil {
			return err
		}
		if err := w.WriteUint128LE(n); err != nil {
			return e.fail(err)
		}
	case I128:
		lo, hi := signedRange(128)
		n, err := e.integer(t, v, lo, hi)
		if err != nil {
			return err
		}
		if err := w.WriteInt128LE(n); err != nil {
			return e.fail(err)
		}
	case Amount:
		n, err := e.integer(t, v, new(big.Int), maxUint64)
		if err != nil {
			return err
		}
		w.WriteUint64LE(n.Uint64())
	case AccountAddress:
		addr, err := toAccountAddress(v)
		if err != nil {
			return e.fail(err)
		}
		w.WriteRaw(addr.Bytes())
	case ContractAddress:
		addr, err := e.toContractAddress(v)
		if err != nil {
			return err
		}
		w.WriteUint64LE(addr.Index)
		w.WriteUint64LE(addr.Subindex)
	case Timestamp:
		ts, err := toTimestamp(v)
		if err != nil {
			return e.fail(err)
		}
		w.WriteUint64LE(uint64(ts))
	case Duration:
		d, err := toDuration(v)
		if err != nil {
			return e.fail(err)
		}
		w.WriteUint64LE(uint64(d))
	case Pair:
		items, ok := v.([]any)
		if !ok || len(items) != 2 {
			return e.fail(mismatch("Pair ([first, second])", v))
		}
		return e.encodeItems([]Type{x.First, x.Second}, items, depth)
	case List:
		return e.encodeSequence(x.Size, x.Elem, v, depth)
	case Set:
		return e.encodeSequence(x.Size, x.Elem, v, depth)
	case Array:
		items, ok := v.([]any)
		if !ok || len(items) != int(x.Len) {
			return e.fail(mismatch(TypeName(t), v))
		}
		for i, item := range items {
			e.path.pushIndex(uint64(i))
			if err := e.encode(x.Elem, item, depth+1); err != nil {
				return err
			}
			e.path.pop()
		}
	case Map:
		entries, ok := v.([]any)
		if !ok {
			return e.fail(mismatch("Map ([[key, value], ...])", v))
		}
		if err := e.writeSize(x.Size, len(entries)); err != nil {
			return err
		}
		for i, entry := range entries {
			e.path.pushIndex(uint64(i))
			pair, ok := entry.([]any)
			if !ok || len(pair) != 2 {
				return e.fail(mismatch("map entry ([key, value])", entry))
			}
			if err := e.encodeItems([]Type{x.Key, x.Value}, pair, depth); err != nil {
				return err
			}
			e.path.pop()
		}
	case Struct:
		return e.encodeFields(x.Fields, v, depth)
	case Enum:
		return e.encodeEnum(x, v, depth)
	case TaggedEnum:
		name, inner, err := e.variantSelection(v)
		if err != nil {
			return err
		}
		for tag, variant := range x.Variants {
			if variant.Name != name {
				continue
			}
			w.WriteUint8(tag)
			e.path.push(name)
			if err := e.encodeFields(variant.Fields, inner, depth); err != nil {
				return err
			}
			e.path.pop()
			return nil
		}
		return e.fail(mismatch("a variant of "+TypeName(t), name))
	case Option:
		if v == nil {
			w.WriteOptionTag(false)
			return nil
		}
		w.WriteOptionTag(true)
		return e.encode(x.Elem, v, depth+1)
	case String:
		s, ok := v.(string)
		if !ok {
			return e.fail(mismatch("String", v))
		}
		return e.writeString(x.Size, s)
	case ContractName:
		obj, ok := objectFields(v)
		name, found := obj.Get("contract")
		s, isString := name.(string)
		if !ok || !found || !isString || len(obj) != 1 {
			return e.fail(mismatch(`ContractName ({"contract": name})`, v))
		}
		return e.writeString(x.Size, "init_"+s)
	case ReceiveName:
		obj, ok := objectFields(v)
		contract, foundContract := obj.Get("contract")
		fn, foundFunc := obj.Get("func")
		cs, contractString := contract.(string)
		fs, funcString := fn.(string)
		if !ok || !foundContract || !foundFunc || !contractString || !funcString || len(obj) != 2 {
			return e.fail(mismatch(`ReceiveName ({"contract": name, "func": name})`, v))
		}
		return e.writeString(x.Size, cs+"."+fs)
	case ULeb128:
		n, ok := toBigInt(v)
		if !ok || n.Sign() < 0 {
			return e.fail(mismatch(TypeName(t), v))
		}
		if err := w.WriteULEB128(n, int(x.MaxBytes)); err != nil {
			return e.fail(err)
		}
	case ILeb128:
		n, ok := toBigInt(v)
		if !ok {
			return e.fail(mismatch(TypeName(t), v))
		}
		if err := w.WriteILEB128(n, int(x.MaxBytes)); err != nil {
			return e.fail(err)
		}
	case ByteList:
		b, err := toBytes(v)
		if err != nil {
			return e.fail(err)
		}
		width, err := x.Size.prefixWidth()
		if err != nil {
			return e.fail(err)
		}
		if err := w.WritePrefixedBytes(width, binary.LittleEndian, b); err != nil {
			return e.fail(err)
		}
	case ByteArray:
		b, err := toBytes(v)
		if err != nil {
			return e.fail(err)
		}
		if len(b) != int(x.Len) {
			return e.fail(SchemaMismatchError{
				Expected: TypeName(t),
				Actual:   fmt.Sprintf("%d bytes", len(b)),
			})
		}
		w.WriteRaw(b)
	default:
		return e.fail(fmt.Errorf("unsupported schema type %s", TypeName(t)))
	}
	return nil
}

func isEmptyUnit(v any) bool {
	if v == nil {
		return true
	}
	items, ok := v.([]any)
	return ok && len(items) == 0
}

func (e *encoder) encodeItems(itemTypes []Type, items []any, depth int) error {
	for i, item := range items {
		e.path.pushIndex(uint64(i))
		if err := e.encode(itemTypes[i], item, depth+1); err != nil {
			return err
		}
		e.path.pop()
	}
	return nil
}

func (e *encoder) writeSize(size SizeLength, n int) error {
	width, err := size.prefixWidth()
	if err != nil {
		return e.fail(err)
	}
	if err := e.w.WriteLength(width, binary.LittleEndian, uint64(n)); err != nil {
		return e.fail(err)
	}
	return nil
}

func (e *encoder) writeString(size SizeLength, s string) error {
	width, err := size.prefixWidth()
	if err != nil {
		return e.fail(err)
	}
	if err := e.w.WritePrefixedString(width, binary.LittleEndian, s); err != nil {
		return e.fail(err)
	}
	return nil
}

func (e *encoder) encodeSequence(size SizeLength, elem Type, v any, depth int) error {
	items, ok := v.([]any)
	if !ok {
		return e.fail(mismatch("List", v))
	}
	if err := e.writeSize(size, len(items)); err != nil {
		return err
	}
	for i, item := range items {
		e.path.pushIndex(uint64(i))
		if err := e.encode(elem, item, depth+1); err != nil {
			return err
		}
		e.path.pop()
	}
	return nil
}

// variantSelection extracts the variant name and its fields from {"Variant": fields}
func (e *encoder) variantSelection(v any) (string, any, error) {
	obj, ok := objectFields(v)
	if !ok || len(obj) != 1 {
		return "", nil, e.fail(mismatch(`enum variant ({"Variant": fields})`, v))
	}
	return obj[0].Name, obj[0].Value, nil
}

func (e *encoder) encodeEnum(x Enum, v any, depth int) error {
	name, inner, err := e.variantSelection(v)
	if err != nil {
		return err
	}
	for idx, variant := range x.Variants {
		if variant.Name != name {
			continue
		}
		if len(x.Variants) <= 256 {
			e.w.WriteUint8(uint8(idx))
		} else {
			e.w.WriteUint16LE(uint16(idx))
		}
		e.path.push(name)
		if err := e.encodeFields(variant.Fields, inner, depth); err != nil {
			return err
		}
		e.path.pop()
		return nil
	}
	names := make([]string, 0, len(x.Variants))
	for _, variant := range x.Variants {
		names = append(names, variant.Name)
	}
	return e.fail(SchemaMismatchError{
		Expected: "one of variants [" + strings.Join(names, ", ") + "]",
		Actual:   fmt.Sprintf("variant %q", name),
	})
}

func (e *encoder) encodeFields(f Fields, v any, depth int) error {
	switch f.Kind {
	case FieldsNamed:
		obj, ok := objectFields(v)
		if !ok {
			return e.fail(mismatch("struct (object)", v))
		}
		if len(obj) != len(f.Named) {
			return e.fail(SchemaMismatchError{
				Expected: fmt.Sprintf("object with %d fields", len(f.Named)),
				Actual:   describe(v),
			})
		}
		for _, field := range f.Named {
			fv, found := obj.Get(field.Name)
			if !found {
				return e.fail(SchemaMismatchError{
					Expected: fmt.Sprintf("field %q", field.Name),
					Actual:   "missing field",
				})
			}
			e.path.push(field.Name)
			if err := e.encode(field.Type, fv, depth+1); err != nil {
				return err
			}
			e.path.pop()
		}
	case FieldsUnnamed:
		items, ok := v.([]any)
		if !ok || len(items) != len(f.Unnamed) {
			return e.fail(SchemaMismatchError{
				Expected: fmt.Sprintf("array of %d elements", len(f.Unnamed)),
				Actual:   describe(v),
			})
		}
		return e.encodeItems(f.Unnamed, items, depth)
	case FieldsNone:
		if !isEmptyUnit(v) {
			return e.fail(mismatch("no fields ([])", v))
		}
	default:
		return e.fail(fmt.Errorf("unknown fields kind %d", f.Kind))
	}
	return nil
}

func toAccountAddress(v any) (types.AccountAddress, error) {
	switch x := v.(type) {
	case types.AccountAddress:
		return x, nil
	case string:
		addr, err := types.NewAccountAddress(x)
		if err != nil {
			return types.AccountAddress{}, SchemaMismatchError{
				Expected: "AccountAddress (base58)",
				Actual:   describe(v),
			}
		}
		return addr, nil
	default:
		return types.AccountAddress{}, mismatch("AccountAddress (base58)", v)
	}
}

func (e *encoder) toContractAddress(v any) (types.ContractAddress, error) {
	if addr, ok := v.(types.ContractAddress); ok {
		return addr, nil
	}
	obj, ok := objectFields(v)
	if !ok || len(obj) != 2 {
		return types.ContractAddress{}, e.fail(
			mismatch(`ContractAddress ({"index": n, "subindex": n})`, v),
		)
	}
	var ret types.ContractAddress
	for _, part := range []struct {
		name string
		dest *uint64
	}{
		{"index", &ret.Index},
		{"subindex", &ret.Subindex},
	} {
		fv, found := obj.Get(part.name)
		if !found {
			return types.ContractAddress{}, e.fail(
				mismatch(`ContractAddress ({"index": n, "subindex": n})`, v),
			)
		}
		e.path.push(part.name)
		n, err := e.unsigned(U64{}, fv, 64)
		if err != nil {
			return types.ContractAddress{}, err
		}
		e.path.pop()
		*part.dest = n
	}
	return ret, nil
}

func toTimestamp(v any) (types.Timestamp, error) {
	switch x := v.(type) {
	case types.Timestamp:
		return x, nil
	case time.Time:
		return types.NewTimestamp(x)
	case string:
		ts, err := types.ParseTimestamp(x)
		if err != nil {
			return 0, mismatch("Timestamp (RFC3339)", v)
		}
		return ts, nil
	default:
		return 0, mismatch("Timestamp (RFC3339)", v)
	}
}

func toDuration(v any) (types.Duration, error) {
	switch x := v.(type) {
	case types.Duration:
		return x, nil
	case time.Duration:
		return types.NewDuration(x)
	case string:
		d, err := types.ParseDuration(x)
		if err != nil {
			return 0, mismatch(`Duration ("1d 2h 3m 4s 5ms")`, v)
		}
		return d, nil
	default:
		return 0, mismatch(`Duration ("1d 2h 3m 4s 5ms")`, v)
	}
}

func toBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		b, err := hex.DecodeString(x)
		if err != nil {
			return nil, mismatch("hex string", v)
		}
		return b, nil
	default:
		return nil, mismatch("hex string", v)
	}
}
