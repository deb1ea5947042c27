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

package contract

import (
	"fmt"

	"github.com/blinklabs-io/concordium-go/schema"
	"github.com/blinklabs-io/concordium-go/types"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSchemaCacheSize is the number of module schemas kept by the shared cache
const DefaultSchemaCacheSize = 128

// SchemaCache holds parsed module schemas by module reference and the schema version the
// caller forced, if any. It is safe for concurrent use and can be shared between clients
type SchemaCache struct {
	cache *lru.Cache[schemaCacheKey, *schema.ModuleSchema]
}

type schemaCacheKey struct {
	module types.ModuleReference
	// version is -1 when the version came from the module itself
	version int
}

func newSchemaCacheKey(ref types.ModuleReference, version *schema.SchemaVersion) schemaCacheKey {
	key := schemaCacheKey{module: ref, version: -1}
	if version != nil {
		key.version = int(*version)
	}
	return key
}

func NewSchemaCache(size int) (*SchemaCache, error) {
	cache, err := lru.New[schemaCacheKey, *schema.ModuleSchema](size)
	if err != nil {
		return nil, fmt.Errorf("create schema cache: %w", err)
	}
	return &SchemaCache{cache: cache}, nil
}

// Get returns the schema of module ref parsed with the given forced version, or nil for none
func (c *SchemaCache) Get(ref types.ModuleReference, version *schema.SchemaVersion) (*schema.ModuleSchema, bool) {
	return c.cache.Get(newSchemaCacheKey(ref, version))
}

func (c *SchemaCache) Add(ref types.ModuleReference, version *schema.SchemaVersion, moduleSchema *schema.ModuleSchema) {
	c.cache.Add(newSchemaCacheKey(ref, version), moduleSchema)
}

func (c *SchemaCache) Len() int {
	return c.cache.Len()
}

var defaultSchemaCache = func() *SchemaCache {
	c, err := NewSchemaCache(DefaultSchemaCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}()
