package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile_ProvidersAndEnvExpansion(t *testing.T) {
	t.Setenv("TEST_DEEPSEEK_KEY", "ds-secret")
	t.Setenv("POSTGRES_HOST", "db.internal")

	path := writeConfig(t, `
database:
  driver: postgres
postgres:
  host: localhost
  password: pw
llm:
  retry_attempts: 2
  providers:
    - name: deepseek
      enabled: true
      priority: 1
      api_key: ${TEST_DEEPSEEK_KEY}
      model: deepseek-chat
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if len(cfg.LLM.Providers) != 1 || cfg.LLM.Providers[0].APIKey != "ds-secret" {
		t.Fatalf("provider not loaded: %+v", cfg.LLM.Providers)
	}
	if cfg.LLM.RetryAttempts != 2 {
		t.Errorf("RetryAttempts = %d", cfg.LLM.RetryAttempts)
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Errorf("POSTGRES_HOST should override postgres.host, got %q", cfg.Postgres.Host)
	}
	if cfg.Postgres.Port != 5432 || cfg.Tracker.HistoryLimit != 10 {
		t.Errorf("defaults not applied: %+v %+v", cfg.Postgres, cfg.Tracker)
	}
	want := "host=db.internal port=5432 dbname=timetracker user=postgres password=pw sslmode=disable"
	if got := cfg.Postgres.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestLoadFile_GeminiKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gm-secret")

	cfg, err := LoadFile(writeConfig(t, "database:\n  driver: sqlite\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if len(cfg.LLM.Providers) != 1 {
		t.Fatalf("expected synthesized gemini provider, got %+v", cfg.LLM.Providers)
	}
	p := cfg.LLM.Providers[0]
	if p.Name != "gemini" || p.APIKey != "gm-secret" || p.Model != "gemini-2.5-flash" || !p.Enabled {
		t.Errorf("unexpected provider %+v", p)
	}
}

func TestLoadFile_NoProviders(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadFile(writeConfig(t, "database:\n  driver: sqlite\n"))
	if err != nil {
		t.Fatalf("missing providers must not prevent startup: %v", err)
	}
	if len(cfg.LLM.Providers) != 0 {
		t.Errorf("unexpected providers %+v", cfg.LLM.Providers)
	}

	_, err = LoadFile(writeConfig(t, "llm:\n  providers:\n    - name: gemini\n      enabled: true\n      priority: 0\n      model: m\n"))
	if err == nil {
		t.Error("expected error for an invalid provider list")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gm-secret")

	if _, err := LoadFile(writeConfig(t, "database:\n  driver: mysql\n")); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestValidateLLMConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LLMConfig
		wantErr bool
	}{
		{name: "empty", cfg: LLMConfig{}, wantErr: true},
		{
			name:    "missing model",
			cfg:     LLMConfig{Providers: []ProviderConfig{{Name: "gemini", Enabled: true, Priority: 1}}},
			wantErr: true,
		},
		{
			name: "duplicate priority",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "gemini", Model: "a", Enabled: true, Priority: 1},
				{Name: "deepseek", Model: "b", Enabled: true, Priority: 1},
			}},
			wantErr: true,
		},
		{
			name:    "all disabled",
			cfg:     LLMConfig{Providers: []ProviderConfig{{Name: "gemini", Model: "a", Priority: 1}}},
			wantErr: true,
		},
		{
			name:    "valid",
			cfg:     LLMConfig{Providers: []ProviderConfig{{Name: "gemini", Model: "a", Enabled: true, Priority: 1}}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLLMConfig(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateLLMConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
