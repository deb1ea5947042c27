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

package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blinklabs-io/concordium-go/cbor"
)

// MaxDataSize is the maximum size of a memo or registered data blob
const MaxDataSize = 256

func checkDataSize(kind string, data []byte) error {
	if len(data) > MaxDataSize {
		return fmt.Errorf(
			"%s of %d bytes exceeds the maximum of %d",
			kind,
			len(data),
			MaxDataSize,
		)
	}
	return nil
}

// Memo is an arbitrary payload attached to a transfer. Wallets expect it to hold a
// single CBOR data item
type Memo []byte

func NewMemo(data []byte) (Memo, error) {
	if err := checkDataSize("memo", data); err != nil {
		return nil, err
	}
	return Memo(data), nil
}

// NewMemoFromValue encodes v as CBOR and wraps it in a Memo
func NewMemoFromValue(v any) (Memo, error) {
	data, err := cbor.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encode memo: %w", err)
	}
	return NewMemo(data)
}

// Decode decodes the CBOR contents of the memo into dest
func (m Memo) Decode(dest any) error {
	return cbor.DecodeExact(m, dest)
}

// Text returns the memo contents when it is a CBOR text string
func (m Memo) Text() (string, error) {
	if t, ok := cbor.MajorType(m); !ok || t != cbor.CborTypeTextString {
		return "", errors.New("memo is not a CBOR text string")
	}
	var ret string
	if err := m.Decode(&ret); err != nil {
		return "", err
	}
	return ret, nil
}

func (m Memo) String() string {
	return hex.EncodeToString(m)
}

func (m Memo) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Memo) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(tmp)
	if err != nil {
		return err
	}
	memo, err := NewMemo(decoded)
	if err != nil {
		return err
	}
	*m = memo
	return nil
}

// DataBlob is the payload of a register data transaction
type DataBlob []byte

func NewDataBlob(data []byte) (DataBlob, error) {
	if err := checkDataSize("data blob", data); err != nil {
		return nil, err
	}
	return DataBlob(data), nil
}

// NewDataBlobFromValue encodes v as CBOR and wraps it in a DataBlob
func NewDataBlobFromValue(v any) (DataBlob, error) {
	data, err := cbor.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encode data blob: %w", err)
	}
	return NewDataBlob(data)
}

// Decode decodes the CBOR contents of the blob into dest
func (d DataBlob) Decode(dest any) error {
	return cbor.DecodeExact(d, dest)
}

func (d DataBlob) String() string {
	return hex.EncodeToString(d)
}

func (d DataBlob) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DataBlob) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(tmp)
	if err != nil {
		return err
	}
	blob, err := NewDataBlob(decoded)
	if err != nil {
		return err
	}
	*d = blob
	return nil
}
