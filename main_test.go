package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chative-support-desk/server/internal/agent/graph/conversations"
	"github.com/chative-support-desk/server/internal/agent/model"
	"github.com/chative-support-desk/server/internal/agent/repo"
)

type echoWorkflow struct{}

func (echoWorkflow) Invoke(_ context.Context, in model.QueryInput) (*model.TurnResult, error) {
	turn := model.Turn{Query: in.Query, Response: "re: " + in.Query}
	return &model.TurnResult{
		SessionID: in.SessionID,
		Response:  turn.Response,
		History:   conversations.Append(in.History, turn),
	}, nil
}

func TestChatLoop(t *testing.T) {
	n := 0
	manager := conversations.NewManager(echoWorkflow{}, repo.NewMemorySessionStore(), nil,
		conversations.WithIDGenerator(func() string {
			n++
			return "s-" + string(rune('0'+n))
		}))

	in := strings.NewReader("where is my order\n\nquit\nhello\n")
	var out bytes.Buffer
	require.NoError(t, chat(context.Background(), manager, in, &out))

	text := out.String()
	assert.Contains(t, text, "session s-1")
	assert.Contains(t, text, "re: where is my order")
	assert.Contains(t, text, conversations.GoodbyeMessage)
	assert.Contains(t, text, "New session s-2")
	assert.Contains(t, text, "re: hello")
}
