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
	"log/slog"

	"github.com/blinklabs-io/concordium-go/schema"
	"github.com/blinklabs-io/concordium-go/types"
)

// ClientOptionFunc is a type that represents functions that modify the Client config
type ClientOptionFunc func(*Client)

// WithLogger specifies the logger to use. slog.Default() is used when nil
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSchemaCache specifies the cache shared by clients for module schemas
func WithSchemaCache(cache *SchemaCache) ClientOptionFunc {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithSchema uses the given module schema instead of the one embedded in the module
func WithSchema(moduleSchema *schema.ModuleSchema) ClientOptionFunc {
	return func(c *Client) {
		c.schema = moduleSchema
	}
}

// WithSchemaVersion specifies the version of an embedded schema that does not carry one
func WithSchemaVersion(version schema.SchemaVersion) ClientOptionFunc {
	return func(c *Client) {
		c.schemaVersion = &version
	}
}

// WithInvoker specifies the sender used for invocations
func WithInvoker(invoker Invoker) ClientOptionFunc {
	return func(c *Client) {
		c.invoker = invoker
	}
}

// WithEnergy specifies the energy limit for invocations
func WithEnergy(energy types.Energy) ClientOptionFunc {
	return func(c *Client) {
		c.energy = energy
	}
}
