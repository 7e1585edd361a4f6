package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"OPENAI_API_KEY", "MODEL", "MAX_TOKENS", "TEMPERATURE", "HOST", "PORT", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", cfg.Model)
	}
	if cfg.MaxTokens != 500 {
		t.Errorf("max tokens = %d, want 500", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", cfg.Temperature)
	}
	if cfg.Host != "0.0.0.0" || cfg.Port != "12001" {
		t.Errorf("address = %s:%s, want 0.0.0.0:12001", cfg.Host, cfg.Port)
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() without API key should fail")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MODEL", "gpt-4o")
	t.Setenv("MAX_TOKENS", "900")
	t.Setenv("TEMPERATURE", "0.2")
	t.Setenv("PORT", "8080")

	cfg := Load()

	if cfg.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", cfg.Model)
	}
	if cfg.MaxTokens != 900 {
		t.Errorf("max tokens = %d, want 900", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", cfg.Temperature)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestGetEnvAsIntBadValue(t *testing.T) {
	t.Setenv("MAX_TOKENS", "not-a-number")
	if got := getEnvAsInt("MAX_TOKENS", 500); got != 500 {
		t.Errorf("getEnvAsInt() = %d, want default 500", got)
	}
}
