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
	"sort"
)

// Template returns an example value showing the JSON shape expected for t. Leaves are
// placeholder strings such as "<UInt64>"
func Template(t Type) any {
	return template(t, 0)
}

func template(t Type, depth int) any {
	if depth > MaxDepth {
		return "<...>"
	}
	switch x := t.(type) {
	case Unit:
		return []any{}
	case Pair:
		return []any{template(x.First, depth+1), template(x.Second, depth+1)}
	case List:
		return []any{template(x.Elem, depth+1)}
	case Set:
		return []any{template(x.Elem, depth+1)}
	case Array:
		return []any{template(x.Elem, depth+1)}
	case Map:
		return []any{[]any{template(x.Key, depth+1), template(x.Value, depth+1)}}
	case Struct:
		return fieldsTemplate(x.Fields, depth)
	case Enum:
		return variantsTemplate(x.Variants, depth)
	case TaggedEnum:
		tags := make([]int, 0, len(x.Variants))
		for tag := range x.Variants {
			tags = append(tags, int(tag))
		}
		sort.Ints(tags)
		variants := make([]Variant, 0, len(tags))
		for _, tag := range tags {
			variants = append(variants, x.Variants[uint8(tag)])
		}
		return variantsTemplate(variants, depth)
	case Option:
		return Object{{Name: "Option", Value: []any{nil, template(x.Elem, depth+1)}}}
	case ContractAddress:
		return Object{
			{Name: "index", Value: "<UInt64>"},
			{Name: "subindex", Value: "<UInt64>"},
		}
	case ContractName:
		return Object{{Name: "contract", Value: "<String>"}}
	case ReceiveName:
		return Object{
			{Name: "contract", Value: "<String>"},
			{Name: "func", Value: "<String>"},
		}
	case ByteList:
		return "<String with lowercase hex>"
	case ByteArray:
		return fmt.Sprintf("<String with lowercase hex of length %d>", 2*x.Len)
	default:
		return "<" + TypeName(t) + ">"
	}
}

func variantsTemplate(variants []Variant, depth int) any {
	options := make([]any, 0, len(variants))
	for _, v := range variants {
		options = append(options, Object{{Name: v.Name, Value: fieldsTemplate(v.Fields, depth)}})
	}
	return Object{{Name: "Enum", Value: options}}
}

func fieldsTemplate(f Fields, depth int) any {
	switch f.Kind {
	case FieldsNamed:
		ret := make(Object, 0, len(f.Named))
		for _, field := range f.Named {
			ret = append(ret, Field{Name: field.Name, Value: template(field.Type, depth+1)})
		}
		return ret
	case FieldsUnnamed:
		ret := make([]any, 0, len(f.Unnamed))
		for _, t := range f.Unnamed {
			ret = append(ret, template(t, depth+1))
		}
		return ret
	default:
		return []any{}
	}
}
