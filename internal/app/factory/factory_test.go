package factory

import (
	"context"
	"testing"

	"SolverClient/internal/config"
	"SolverClient/internal/solver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewClientStub(t *testing.T) {
	cfg := config.Defaults()
	cfg.AIProvider = "STUB"
	cfg.SpeechProvider = "stub"

	client, err := NewClient(cfg, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	svc := solver.New(client, Settings(cfg), zaptest.NewLogger(t).Sugar())
	got, err := svc.Chat(context.Background(), "olá", solver.ModeSimple)
	require.NoError(t, err)
	assert.Equal(t, "olá", got)
	assert.NotNil(t, svc.GenerateSpeech(context.Background(), "olá"))
}

func TestNewClientKnownProviders(t *testing.T) {
	for _, p := range []string{ProviderGemini, ProviderGeminiLegacy, ProviderOpenAI, ""} {
		for _, sp := range []string{ProviderGemini, ProviderGoogle, ""} {
			cfg := config.Defaults()
			cfg.AIProvider, cfg.SpeechProvider = p, sp
			_, err := NewClient(cfg, zaptest.NewLogger(t).Sugar())
			assert.NoError(t, err, "provider=%q speech=%q", p, sp)
		}
	}
}

func TestNewClientUnknownProvider(t *testing.T) {
	cfg := config.Defaults()
	cfg.AIProvider = "claude"
	_, err := NewClient(cfg, zaptest.NewLogger(t).Sugar())
	assert.ErrorContains(t, err, "unknown AI provider")

	cfg = config.Defaults()
	cfg.SpeechProvider = "yandex"
	_, err = NewClient(cfg, zaptest.NewLogger(t).Sugar())
	assert.ErrorContains(t, err, "unknown speech provider")
}

func TestSettings(t *testing.T) {
	cfg := config.Defaults()
	s := Settings(cfg)
	assert.Equal(t, "gemini-3-pro-preview", s.ThinkingModel)
	assert.Equal(t, "gemini-3-flash-preview", s.FastModel)
	assert.Equal(t, "gemini-3-pro-preview", s.ChatModel)
	assert.Equal(t, "gemini-2.5-flash-preview-tts", s.TTSModel)
	assert.Equal(t, "Kore", s.Voice)
	assert.InDelta(t, 0.1, s.Temperature, 1e-6)
	assert.EqualValues(t, 16384, s.SolveThinkingBudget)
	assert.EqualValues(t, 8192, s.ChatThinkingBudget)

	cfg.AIProvider = ProviderOpenAI
	cfg.SpeechProvider = ProviderGoogle
	s = Settings(cfg)
	assert.Equal(t, cfg.OpenAI.ThinkingModel, s.ThinkingModel)
	assert.Equal(t, cfg.OpenAI.FastModel, s.FastModel)
	assert.Equal(t, cfg.OpenAI.ChatModel, s.ChatModel)
	assert.Equal(t, "pt-BR-Standard-A", s.Voice)
}
