package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type ollamaClient struct {
	baseURL    string
	httpClient *http.Client
	defaults   Options
	timeout    time.Duration
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type ollamaError struct {
	Error string `json:"error"`
}

func newOllamaClient(cfg FactoryConfig) *ollamaClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://127.0.0.1:11434"
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second // local models can be slow
	}
	return &ollamaClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		defaults: Options{
			Model:       valueOrDefault(cfg.Model, "llama2"),
			Temperature: orFloat(cfg.Temperature, 0.3),
			MaxTokens:   orInt(cfg.MaxTokens, 512),
		},
	}
}

func (c *ollamaClient) Name() string { return "ollama" }

func (c *ollamaClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	merged := c.merge(opts)
	apiReq := ollamaRequest{
		Model:  merged.Model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: merged.Temperature,
			NumPredict:  merged.MaxTokens,
		},
	}
	if merged.JSONMode {
		apiReq.Format = "json"
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(apiReq)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		var apiErr ollamaError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return "", fmt.Errorf("ollama API error (%d): %s", httpResp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("ollama API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	return strings.TrimSpace(resp.Response), nil
}

func (c *ollamaClient) merge(opts Options) Options {
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

func valueOrDefault(val, def string) string {
	if val != "" {
		return val
	}
	return def
}

func orInt(v, d int) int {
	if v != 0 {
		return v
	}
	return d
}

func orFloat(v, d float64) float64 {
	if v != 0 {
		return v
	}
	return d
}
