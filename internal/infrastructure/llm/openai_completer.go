package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/config"
)

type openAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter creates a Completer for an Azure OpenAI deployment or the OpenAI API
func NewOpenAICompleter(settings *config.LLMSettings) (llm.Completer, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("llm api key is empty")
	}
	if settings.Deployment == "" {
		return nil, fmt.Errorf("llm deployment name is empty")
	}

	var cfg openai.ClientConfig
	switch settings.APIType {
	case config.LLMTypeAzure:
		if settings.BaseURL == "" {
			return nil, fmt.Errorf("llm base url is required for azure")
		}
		cfg = openai.DefaultAzureConfig(settings.APIKey, settings.BaseURL)
		if settings.APIVersion != "" {
			cfg.APIVersion = settings.APIVersion
		}
		deployment := settings.Deployment
		cfg.AzureModelMapperFunc = func(string) string { return deployment }
	case config.LLMTypeOpenAI:
		cfg = openai.DefaultConfig(settings.APIKey)
		if settings.BaseURL != "" {
			cfg.BaseURL = strings.TrimRight(settings.BaseURL, "/")
		}
	default:
		return nil, fmt.Errorf("unsupported llm api type: %s", settings.APIType)
	}

	return &openAICompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  settings.Deployment,
	}, nil
}

func (c *openAICompleter) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
