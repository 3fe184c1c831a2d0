package llmprovider

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"

	"time-tracking-assistant/pkg/gemini"
	"time-tracking-assistant/pkg/openaicompat"
)

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, &gemini.Request{
		SystemInstruction: req.SystemInstruction,
		Prompt:            flattenMessages(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
		JSON:              req.ResponseSchema != nil,
		Schema:            toGenaiSchema(req.ResponseSchema),
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      Message{Role: RoleAssistant, Text: resp.Text},
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// chatClient is the subset of openaicompat.Client used by the adapter.
type chatClient interface {
	GenerateContent(ctx context.Context, req *openaicompat.Request) (*openaicompat.Response, error)
	Name() string
	Model() string
}

// OpenAICompatAdapter adapts pkg/openaicompat (DeepSeek, Qwen, OpenAI) to
// llmprovider.Provider interface. These APIs have JSON mode but no schema.
type OpenAICompatAdapter struct {
	client chatClient
}

// NewOpenAICompatAdapter creates a new adapter
func NewOpenAICompatAdapter(client chatClient) *OpenAICompatAdapter {
	return &OpenAICompatAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAICompatAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, &openaicompat.Request{
		SystemInstruction: req.SystemInstruction,
		Prompt:            flattenMessages(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
		JSON:              req.ResponseSchema != nil,
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      Message{Role: RoleAssistant, Text: resp.Text},
		ProviderName: a.client.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
			TotalTokens:  resp.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *OpenAICompatAdapter) Name() string {
	return a.client.Name()
}

// Model returns model name
func (a *OpenAICompatAdapter) Model() string {
	return a.client.Model()
}

// timeoutProvider bounds each call of the wrapped provider.
type timeoutProvider struct {
	Provider
	timeout time.Duration
}

func withTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{Provider: p, timeout: d}
}

func (p *timeoutProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.Provider.GenerateContent(ctx, req)
}

// flattenMessages joins a conversation into one prompt. Single-turn requests
// pass through unchanged.
func flattenMessages(msgs []Message) string {
	if len(msgs) == 1 {
		return msgs[0].Text
	}
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if m.Role == RoleAssistant {
			b.WriteString("Assistant: ")
		}
		b.WriteString(m.Text)
	}
	return b.String()
}

func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:             genaiType(s.Type),
		Description:      s.Description,
		Enum:             s.Enum,
		Required:         s.Required,
		PropertyOrdering: s.PropertyOrdering,
		Items:            toGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = toGenaiSchema(v)
		}
	}
	return out
}

func genaiType(t SchemaType) genai.Type {
	switch t {
	case TypeObject:
		return genai.TypeObject
	case TypeString:
		return genai.TypeString
	case TypeInteger:
		return genai.TypeInteger
	case TypeNumber:
		return genai.TypeNumber
	case TypeBoolean:
		return genai.TypeBoolean
	case TypeArray:
		return genai.TypeArray
	}
	return genai.TypeUnspecified
}
