package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/pders01/diagen/internal/config"
)

// DefaultOllamaModel is the local model used when none is configured.
const DefaultOllamaModel = "llama3.1"

// Ollama implements Client against a local Ollama server.
type Ollama struct {
	client *api.Client
	model  string
}

func newOllama(cfg config.LLM) (*Ollama, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultOllamaModel
	}

	var client *api.Client
	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid llm.base_url: %w", err)
		}
		client = api.NewClient(base, http.DefaultClient)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
	}

	return &Ollama{client: client, model: model}, nil
}

func (o *Ollama) Generate(ctx context.Context, system, user string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  o.model,
		System: system,
		Prompt: user,
		Stream: &stream,
	}

	var sb strings.Builder
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}

	if sb.Len() == 0 {
		return "", errors.New("ollama: empty response")
	}
	return sb.String(), nil
}
