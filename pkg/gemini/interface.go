package gemini

import (
	"context"
	"errors"
)

// IGemini defines the interface for Gemini API client.
// Implementations are safe for concurrent use.
type IGemini interface {
	// GenerateContent sends a generation request to Gemini API
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model being used
	Model() string
}

// Config configures the Gemini client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional endpoint override
}

// Validate checks required fields.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("gemini: API key is required")
	}
	return nil
}

// New creates a new Gemini client with the given configuration
func New(ctx context.Context, cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return newGeminiImpl(ctx, cfg)
}
