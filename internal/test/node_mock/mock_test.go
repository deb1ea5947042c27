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


package node_mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/blinklabs-io/concordium-go/contract"
	"github.com/blinklabs-io/concordium-go/internal/test/node_mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation(t *testing.T) {
	node := node_mock.NewNode(
		"demo",
		node_mock.ConversationEntry{Entrypoint: "view", Parameter: []byte{0x01}, ReturnValue: []byte{0x02}},
		node_mock.ConversationEntry{Entrypoint: "view", Error: errors.New("node unavailable")},
	)
	client := node.Client()
	ctx := context.Background()
	assert.Error(t, node.Done())

	_, err := client.Query(ctx, "view", []byte{0x03})
	assert.ErrorContains(t, err, "parameter does not match expected value")
	_, err = client.Query(ctx, "view", nil)
	assert.ErrorContains(t, err, "node unavailable")
	_, err = client.Query(ctx, "view", nil)
	assert.ErrorContains(t, err, "unexpected invocation of demo.view")
	require.NoError(t, node.Done())

	node = node_mock.NewNode(
		"demo",
		node_mock.ConversationEntry{Entrypoint: "view", Parameter: []byte{0x01}, ReturnValue: []byte{0x02}},
	)
	client = node.Client()
	data, err := client.Query(ctx, "view", []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, data)
	_, err = node.Client().Query(ctx, "other", nil)
	assert.ErrorContains(t, err, "unexpected invocation")

	info, err := client.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, node_mock.MockModuleSource.Reference(), info.SourceModule)
	_, err = node.GetModuleSource(ctx, info.SourceModule)
	require.NoError(t, err)

	var _ contract.NodeClient = node
}
