package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type openAIClient struct {
	client   *openai.Client
	defaults Options
	timeout  time.Duration
}

func newOpenAIClient(cfg FactoryConfig) *openAIClient {
	clientConfig := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &openAIClient{
		client:  openai.NewClientWithConfig(clientConfig),
		timeout: timeout,
		defaults: Options{
			Model:       valueOrDefault(cfg.Model, openai.GPT4oMini),
			Temperature: orFloat(cfg.Temperature, 0.3),
			MaxTokens:   orInt(cfg.MaxTokens, 512),
		},
	}
}

func (c *openAIClient) Name() string { return "openai" }

func (c *openAIClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	merged := c.merge(opts)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: merged.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   merged.MaxTokens,
		Temperature: float32(merged.Temperature),
	}
	if merged.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *openAIClient) merge(opts Options) Options {
	out := c.defaults
	if opts.Model != "" {
		out.Model = opts.Model
	}
	if opts.Temperature != 0 {
		out.Temperature = opts.Temperature
	}
	if opts.MaxTokens != 0 {
		out.MaxTokens = opts.MaxTokens
	}
	out.JSONMode = opts.JSONMode
	return out
}
