// Package classifier wraps the remote text-completion model behind three
// narrow classifiers. Raw completions never leave this package: each one
// is normalised into a model type right after the call.
package classifier

import (
	"context"
	_ "embed"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"

	"github.com/chative-support-desk/server/internal/agent/model"
)

const (
	StageIntent    = "intent"
	StageSentiment = "sentiment"
	StageOrderID   = "order_id"
)

var (
	//go:embed prompts/intent.txt
	intentPrompt string
	//go:embed prompts/sentiment.txt
	sentimentPrompt string
	//go:embed prompts/order_id.txt
	orderIDPrompt string
)

// Config is shared by the three classifiers.
type Config struct {
	Model   string
	Timeout time.Duration
}

func ConfigFrom(c model.ClassifierModelConfig) Config {
	return Config{Model: c.Model, Timeout: c.Timeout}
}

// IntentClassifier maps a query onto a business category, using the
// catalog examples as few-shot context.
type IntentClassifier struct {
	stage
	examples string
}

func NewIntentClassifier(chat einomodel.BaseChatModel, cfg Config, examples string) *IntentClassifier {
	return &IntentClassifier{stage: newStage(StageIntent, intentPrompt, chat, cfg), examples: examples}
}

// Classify never returns Default: small talk is recognised before the
// classifier is consulted, so a Default answer here is treated as General.
func (c *IntentClassifier) Classify(ctx context.Context, query string) (model.Category, model.Usage, error) {
	raw, usage, err := c.call(ctx, map[string]any{"dataset": c.examples, "query": query})
	if err != nil {
		return "", usage, err
	}
	category := model.ParseCategory(raw)
	if category == model.CategoryDefault {
		category = model.CategoryGeneral
	}
	return category, usage, nil
}

type SentimentClassifier struct {
	stage
}

func NewSentimentClassifier(chat einomodel.BaseChatModel, cfg Config) *SentimentClassifier {
	return &SentimentClassifier{stage: newStage(StageSentiment, sentimentPrompt, chat, cfg)}
}

func (c *SentimentClassifier) Classify(ctx context.Context, query string) (model.Sentiment, model.Usage, error) {
	raw, usage, err := c.call(ctx, map[string]any{"query": query})
	if err != nil {
		return "", usage, err
	}
	return model.ParseSentiment(raw), usage, nil
}

type OrderIDExtractor struct {
	stage
}

func NewOrderIDExtractor(chat einomodel.BaseChatModel, cfg Config) *OrderIDExtractor {
	return &OrderIDExtractor{stage: newStage(StageOrderID, orderIDPrompt, chat, cfg)}
}

func (c *OrderIDExtractor) Extract(ctx context.Context, query string) (model.OrderID, model.Usage, error) {
	raw, usage, err := c.call(ctx, map[string]any{"query": query})
	if err != nil {
		return "", usage, err
	}
	return model.ParseOrderID(raw), usage, nil
}

// Set bundles the classifiers the workflow needs.
type Set struct {
	Intent    *IntentClassifier
	Sentiment *SentimentClassifier
	OrderID   *OrderIDExtractor
}

// NewSet builds all three classifiers over one chat model.
func NewSet(chat einomodel.BaseChatModel, cfg Config, examples string) *Set {
	return &Set{
		Intent:    NewIntentClassifier(chat, cfg, examples),
		Sentiment: NewSentimentClassifier(chat, cfg),
		OrderID:   NewOrderIDExtractor(chat, cfg),
	}
}
