// Package llm abstracts the external generative-model call. Generating
// is the pipeline's single model-facing suspension point; everything
// downstream works on the returned raw text.
package llm

import (
	"context"
	"fmt"

	"github.com/pders01/diagen/internal/config"
)

// Client produces a raw model response for a system/user prompt pair.
type Client interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// New builds the client for the configured provider.
func New(cfg config.LLM) (Client, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAI(cfg)
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible API behind a base URL.
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("provider deepseek requires llm.base_url")
		}
		return newOpenAI(cfg)
	case "ollama":
		return newOllama(cfg)
	case "mock":
		return &Mock{}, nil
	default:
		return nil, fmt.Errorf("llm provider %q not supported", cfg.Provider)
	}
}
