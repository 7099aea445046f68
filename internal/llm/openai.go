package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pders01/diagen/internal/config"
)

// OpenAI implements Client via the official openai-go SDK (chat
// completions). It also serves OpenAI-compatible providers through a
// custom base URL.
type OpenAI struct {
	model string
	opts  []option.RequestOption
}

func newOpenAI(cfg config.LLM) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key missing for provider %s; set llm.api_key_env", cfg.Provider)
	}
	if cfg.Model == "" {
		return nil, errors.New("llm.model is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{model: cfg.Model, opts: opts}, nil
}

func (o *OpenAI) Generate(ctx context.Context, system, user string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
