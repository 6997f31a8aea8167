package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/chative-support-desk/server/internal/agent/model"
	errx "github.com/chative-support-desk/server/internal/core/error"
	logx "github.com/chative-support-desk/server/pkg/logger"
)

// stage is one prompt + one round trip to the remote model.
type stage struct {
	name      string
	chat      einomodel.BaseChatModel
	tpl       prompt.ChatTemplate
	modelName string
	timeout   time.Duration
}

func newStage(name, template string, chat einomodel.BaseChatModel, cfg Config) stage {
	return stage{
		name:      name,
		chat:      chat,
		tpl:       prompt.FromMessages(schema.FString, schema.UserMessage(strings.TrimSpace(template))),
		modelName: cfg.Model,
		timeout:   cfg.Timeout,
	}
}

// call renders the prompt with vars and returns the raw completion text.
// Every failure of the round trip, deadline included, is reported as
// errx.ErrClassifierUnavailable.
func (s stage) call(ctx context.Context, vars map[string]any) (string, model.Usage, error) {
	usage := model.Usage{Model: s.modelName}

	msgs, err := s.tpl.Format(ctx, vars)
	if err != nil {
		return "", usage, fmt.Errorf("%s: render prompt: %w", s.name, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	ctx = callbacks.ReuseHandlers(ctx, &callbacks.RunInfo{
		Name:      s.name,
		Type:      s.modelName,
		Component: components.ComponentOfChatModel,
	})

	start := time.Now()
	out, err := s.chat.Generate(ctx, msgs)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		logx.Warn().Err(err).Str("stage", s.name).Dur("elapsed", time.Since(start)).Msg("Classifier call failed")
		return "", usage, errx.WrapClassifier(s.name, err)
	}
	if out == nil {
		return "", usage, errx.WrapClassifier(s.name, errors.New("empty completion"))
	}
	if out.ResponseMeta != nil {
		usage.Tokens = out.ResponseMeta.Usage
	}

	logx.Debug().
		Str("stage", s.name).
		Str("raw", out.Content).
		Dur("elapsed", time.Since(start)).
		Float64("cost_usd", usage.CostUSD()).
		Msg("Classifier answered")
	return out.Content, usage, nil
}
