package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/genai"

	"time-tracking-assistant/config"
)

func TestInitializeProviders(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "deepseek", Enabled: true, Priority: 2, APIKey: "ds-key", Model: "deepseek-chat", Timeout: "30s"},
			{Name: "gemini", Enabled: true, Priority: 1, APIKey: "gm-key", Model: "gemini-2.5-flash"},
			{Name: "qwen", Enabled: false, Priority: 3, APIKey: "qw-key", Model: "qwen-plus"},
			{Name: "openai", Enabled: true, Priority: 4, Model: "gpt-4o-mini"}, // no key, skipped
			{Name: "mystery", Enabled: true, Priority: 5, APIKey: "k", Model: "m"},
		},
	}

	logger := &mockLogger{}
	providers, err := InitializeProviders(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("InitializeProviders() error = %v", err)
	}

	if len(providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(providers))
	}
	if providers[0].Name() != "gemini" || providers[1].Name() != "deepseek" {
		t.Errorf("providers not sorted by priority: %s, %s", providers[0].Name(), providers[1].Name())
	}
	if _, ok := providers[1].(*timeoutProvider); !ok {
		t.Errorf("deepseek provider should carry its timeout")
	}
	if len(logger.warnMessages) != 2 {
		t.Errorf("expected 2 skipped-provider warnings, got %d", len(logger.warnMessages))
	}
}

func TestInitializeProviders_NoneEnabled(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{{Name: "gemini", APIKey: "k", Model: "m"}},
	}
	if _, err := InitializeProviders(context.Background(), cfg, &mockLogger{}); !errors.Is(err, ErrNoProvidersConfigured) {
		t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
	}
}

func TestWithTimeout(t *testing.T) {
	slow := &blockingProvider{}
	p := withTimeout(slow, 20*time.Millisecond)

	start := time.Now()
	_, err := p.GenerateContent(context.Background(), UserPrompt("hi"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Errorf("timeout not applied")
	}
	if p.Name() != "blocking" {
		t.Errorf("Name() should pass through, got %q", p.Name())
	}

	if withTimeout(slow, 0) != Provider(slow) {
		t.Errorf("zero timeout should return the provider unchanged")
	}
}

type blockingProvider struct{}

func (blockingProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
func (blockingProvider) Name() string  { return "blocking" }
func (blockingProvider) Model() string { return "blocking-model" }

func TestToGenaiSchema(t *testing.T) {
	s := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"command": {Type: TypeString, Enum: []string{"start", "stop", "idle"}},
			"tags":    {Type: TypeArray, Items: &Schema{Type: TypeString}},
		},
		Required:         []string{"command"},
		PropertyOrdering: []string{"command", "tags"},
	}

	got := toGenaiSchema(s)
	if got.Type != genai.TypeObject {
		t.Fatalf("Type = %v", got.Type)
	}
	if got.Properties["command"].Type != genai.TypeString || len(got.Properties["command"].Enum) != 3 {
		t.Errorf("command property not converted: %+v", got.Properties["command"])
	}
	if got.Properties["tags"].Items == nil || got.Properties["tags"].Items.Type != genai.TypeString {
		t.Errorf("array items not converted")
	}
	if toGenaiSchema(nil) != nil {
		t.Errorf("nil schema should stay nil")
	}
}

func TestFlattenMessages(t *testing.T) {
	if got := flattenMessages([]Message{{Role: RoleUser, Text: "only"}}); got != "only" {
		t.Errorf("single message = %q", got)
	}

	got := flattenMessages([]Message{
		{Role: RoleUser, Text: "start coding"},
		{Role: RoleAssistant, Text: "Started."},
		{Role: RoleUser, Text: "stop"},
	})
	want := "start coding\n\nAssistant: Started.\n\nstop"
	if got != want {
		t.Errorf("flattenMessages() = %q, want %q", got, want)
	}
}
