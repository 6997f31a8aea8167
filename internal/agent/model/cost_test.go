package model

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
)

func TestUsageCostUSD(t *testing.T) {
	u := Usage{
		Model:  "gemini-2.5-flash-lite",
		Tokens: &schema.TokenUsage{PromptTokens: 1_000_000, CompletionTokens: 500_000},
	}
	assert.InDelta(t, 0.10+0.20, u.CostUSD(), 1e-9)
}

func TestUsageCostUSDUnknownModelOrNoTokens(t *testing.T) {
	assert.Zero(t, Usage{Model: "gpt-x", Tokens: &schema.TokenUsage{PromptTokens: 10}}.CostUSD())
	assert.Zero(t, Usage{Model: "gemini-2.5-flash"}.CostUSD())
}
