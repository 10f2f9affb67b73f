package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_Disabled(t *testing.T) {
	_, err := NewProvider(context.Background(), DefaultConfig(), nil)
	require.ErrorIs(t, err, ErrDisabled)
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderAnthropic
	_, err := NewProvider(context.Background(), cfg, nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDisabled)
}

func TestNewProvider_WrapsDecorators(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAI.APIKey = "sk-test"

	p, err := NewProvider(context.Background(), cfg, nil)
	require.NoError(t, err)

	timeout, ok := p.(*TimeoutProvider)
	require.True(t, ok, "outermost decorator should be the timeout, got %T", p)
	retry, ok := timeout.inner.(*RetryProvider)
	require.True(t, ok, "expected retry under timeout, got %T", timeout.inner)
	_, ok = retry.inner.(*LoggingProvider)
	require.True(t, ok, "expected logging under retry, got %T", retry.inner)
	assert.Equal(t, "gpt-4o-mini", p.ModelID())
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}
