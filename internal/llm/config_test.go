package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderNone, cfg.Provider)
	assert.False(t, cfg.Enabled())
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestConfig_Validate(t *testing.T) {
	withRetry := func(c Config) Config {
		c.Retry.MaxAttempts = 1
		return c
	}
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"none", Config{Provider: ProviderNone}, false},
		{"empty", Config{}, false},
		{"mock", withRetry(Config{Provider: ProviderMock}), false},
		{"anthropic without key", withRetry(Config{Provider: ProviderAnthropic}), true},
		{"anthropic with key", withRetry(Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}), false},
		{"openai without key", withRetry(Config{Provider: ProviderOpenAI}), true},
		{"openai with key", withRetry(Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "k"}}), false},
		{"gemini without key", withRetry(Config{Provider: ProviderGemini}), true},
		{"openrouter with key", withRetry(Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "k"}}), false},
		{"zero attempts", Config{Provider: ProviderMock}, true},
		{"unknown", Config{Provider: "bard"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("LEITNER_LLM_PROVIDER", "openai")
	t.Setenv("LEITNER_OPENAI_API_KEY", "sk-env")
	t.Setenv("LEITNER_OPENAI_MODEL", "gpt-4o")
	t.Setenv("LEITNER_LLM_TIMEOUT", "5s")
	t.Setenv("LEITNER_LLM_MAX_ATTEMPTS", "7")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 7, cfg.Retry.MaxAttempts)
	require.NoError(t, cfg.Validate())
}

func TestConfig_ApplyEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("LEITNER_LLM_TIMEOUT", "soon")
	t.Setenv("LEITNER_LLM_MAX_ATTEMPTS", "many")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestConfig_Discover(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg := DefaultConfig()
	assert.False(t, cfg.Discover())
	assert.Equal(t, ProviderNone, cfg.Provider)

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	require.True(t, cfg.Discover())
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)
}
