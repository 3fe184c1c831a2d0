// Package openaicompat talks to OpenAI-compatible chat completion APIs
// (DeepSeek, Qwen/DashScope, OpenAI) through langchaingo.
package openaicompat

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Known endpoints keyed by provider name.
var defaultBaseURLs = map[string]string{
	"deepseek": "https://api.deepseek.com/v1",
	"qwen":     "https://dashscope-intl.aliyuncs.com/compatible-mode/v1",
	"alibaba":  "https://dashscope-intl.aliyuncs.com/compatible-mode/v1",
	"openai":   "https://api.openai.com/v1",
}

// Config configures a client.
type Config struct {
	Provider string // deepseek, qwen, openai
	APIKey   string
	Model    string
	BaseURL  string // empty uses the provider default
}

// Request is a single-turn chat request.
type Request struct {
	SystemInstruction string
	Prompt            string
	Temperature       float64
	MaxTokens         int
	JSON              bool
}

// Response holds the reply text and token usage.
type Response struct {
	Text         string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Client is safe for concurrent use.
type Client struct {
	llm   llms.Model
	name  string
	model string
}

// New creates a client for one provider.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openaicompat: API key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("openaicompat: model is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURLs[cfg.Provider]
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("openaicompat: create %s client: %w", cfg.Provider, err)
	}
	return &Client{llm: llm, name: cfg.Provider, model: cfg.Model}, nil
}

// Name returns the provider name.
func (c *Client) Name() string { return c.name }

// Model returns the model being used.
func (c *Client) Model() string { return c.model }

// GenerateContent sends one chat completion request.
func (c *Client) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	var messages []llms.MessageContent
	if req.SystemInstruction != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.SystemInstruction))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	var options []llms.CallOption
	if req.Temperature > 0 {
		options = append(options, llms.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		options = append(options, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.JSON {
		options = append(options, llms.WithJSONMode())
	}

	resp, err := c.llm.GenerateContent(ctx, messages, options...)
	if err != nil {
		return nil, fmt.Errorf("openaicompat: %s generate content: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openaicompat: %s returned no choices", c.name)
	}

	choice := resp.Choices[0]
	return &Response{
		Text:         choice.Content,
		InputTokens:  intFromInfo(choice.GenerationInfo, "PromptTokens"),
		OutputTokens: intFromInfo(choice.GenerationInfo, "CompletionTokens"),
		TotalTokens:  intFromInfo(choice.GenerationInfo, "TotalTokens"),
	}, nil
}

func intFromInfo(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
