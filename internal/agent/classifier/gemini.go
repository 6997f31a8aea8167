package classifier

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/chative-support-desk/server/internal/agent/model"
	logx "github.com/chative-support-desk/server/pkg/logger"
)

// GeminiConfig holds the credentials and tuning of the classifier model.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   model.ClassifierModelConfig
}

// NewGeminiChatModel creates the chat model behind every classifier stage.
// Labels are short, so thinking is switched off.
func NewGeminiChatModel(ctx context.Context, cfg GeminiConfig) (*gemini.ChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	temperature := cfg.Model.Temperature
	maxTokens := cfg.Model.MaxTokens
	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(int32(0)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating classifier model")
		return nil, fmt.Errorf("error creating classifier model: %w", err)
	}

	logx.Debug().Str("model", cfg.Model.Model).Msg("Classifier model ready")
	return cm, nil
}
