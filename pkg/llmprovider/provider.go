package llmprovider

import (
	"context"
	"strings"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "gemini", "deepseek")
	Name() string

	// Model returns the model being used
	Model() string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request represents a normalized LLM generation request
type Request struct {
	SystemInstruction string
	Messages          []Message
	Temperature       float64
	MaxTokens         int

	// ResponseSchema asks for a JSON reply. Providers without native schema
	// support fall back to plain JSON mode.
	ResponseSchema *Schema
}

// Message represents a conversation message
type Message struct {
	Role string
	Text string
}

// Response represents a normalized LLM generation response
type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Text returns the trimmed reply text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Content.Text)
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// SchemaType is the JSON type of a Schema node.
type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeNumber  SchemaType = "number"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
)

// Schema is a provider-neutral subset of JSON Schema.
type Schema struct {
	Type             SchemaType
	Description      string
	Properties       map[string]*Schema
	Items            *Schema
	Required         []string
	Enum             []string
	PropertyOrdering []string
}

// UserPrompt builds a single-turn request.
func UserPrompt(prompt string) *Request {
	return &Request{
		Messages: []Message{{Role: RoleUser, Text: prompt}},
	}
}
