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
	"encoding/json"
)

// Field is a single named entry of an Object
type Field struct {
	Name  string
	Value any
}

// Object is a JSON object that keeps its fields in declaration order. Decoded structs
// and enum variants are returned as an Object
type Object []Field

// Get returns the value of the named field
func (o Object) Get(name string) (any, bool) {
	for _, f := range o {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Map returns the fields as a map, losing their order
func (o Object) Map() map[string]any {
	ret := make(map[string]any, len(o))
	for _, f := range o {
		ret[f.Name] = f.Value
	}
	return ret
}

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// objectFields normalizes the object shapes accepted when encoding
func objectFields(v any) (Object, bool) {
	switch x := v.(type) {
	case Object:
		return x, true
	case map[string]any:
		ret := make(Object, 0, len(x))
		for k, val := range x {
			ret = append(ret, Field{Name: k, Value: val})
		}
		return ret, true
	default:
		return nil, false
	}
}
