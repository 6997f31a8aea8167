package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/prompt"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/chative-support-desk/server/pkg/logger"
)

// newPromptHandler logs rendered prompts; the catalog context makes them
// long, so only the size is kept outside trace level.
func newPromptHandler() *callbackHelper.PromptCallbackHandler {
	return &callbackHelper.PromptCallbackHandler{
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *prompt.CallbackOutput) context.Context {
			if output == nil || len(output.Result) == 0 || output.Result[0] == nil {
				return ctx
			}
			content := output.Result[0].Content
			logx.Debug().Str("prompt", info.Name).Int("chars", len(content)).Msg("Prompt rendered")
			logx.Trace().Str("prompt", info.Name).Str("content", content).Msg("Prompt content")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Warn().Err(err).Str("prompt", info.Name).Msg("Prompt render failed")
			return ctx
		},
	}
}
