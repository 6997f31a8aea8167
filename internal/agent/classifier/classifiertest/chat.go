// Package classifiertest provides a scripted chat model for tests of the
// classifier stages and the workflow.
package classifiertest

import (
	"context"
	"strings"
	"sync"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Reply produces the completion for a rendered prompt.
type Reply func(ctx context.Context, prompt string) (string, error)

// ChatModel answers prompts by stage. The stage is recognised from the
// prompt text, so one model can serve all three classifiers.
type ChatModel struct {
	Intent    Reply
	Sentiment Reply
	OrderID   Reply
	// Usage, when set, is attached to every completion.
	Usage *schema.TokenUsage

	mu    sync.Mutex
	calls map[string]int
}

// Fixed returns a Reply that always answers text.
func Fixed(text string) Reply {
	return func(context.Context, string) (string, error) { return text, nil }
}

// Fail returns a Reply that always fails with err.
func Fail(err error) Reply {
	return func(context.Context, string) (string, error) { return "", err }
}

// Block returns a Reply that waits for the context to end.
func Block() Reply {
	return func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}
}

func stageOf(prompt string) string {
	switch {
	case strings.Contains(prompt, "Categorize the following customer query"):
		return "intent"
	case strings.Contains(prompt, "Analyze the sentiment"):
		return "sentiment"
	default:
		return "order_id"
	}
}

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	var sb strings.Builder
	for _, msg := range input {
		if msg != nil {
			sb.WriteString(msg.Content)
		}
	}
	prompt := sb.String()
	stage := stageOf(prompt)

	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[stage]++
	m.mu.Unlock()

	var reply Reply
	switch stage {
	case "intent":
		reply = m.Intent
	case "sentiment":
		reply = m.Sentiment
	default:
		reply = m.OrderID
	}
	if reply == nil {
		reply = Fixed("")
	}

	text, err := reply(ctx, prompt)
	if err != nil {
		return nil, err
	}
	out := schema.AssistantMessage(text, nil)
	if m.Usage != nil {
		usage := *m.Usage
		out.ResponseMeta = &schema.ResponseMeta{Usage: &usage}
	}
	return out, nil
}

func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	out, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{out}), nil
}

// Calls returns how often stage ("intent", "sentiment", "order_id") was hit.
func (m *ChatModel) Calls(stage string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[stage]
}

// TotalCalls returns the number of completions served.
func (m *ChatModel) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

var _ einomodel.BaseChatModel = (*ChatModel)(nil)
