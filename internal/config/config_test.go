package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"AIProvider", cfg.AIProvider, "gemini"},
		{"SpeechProvider", cfg.SpeechProvider, "gemini"},
		{"ResponseMode", cfg.ResponseMode, "EXPLAINED"},
		{"Thinking", cfg.Thinking, true},
		{"ThinkingModel", cfg.Gemini.ThinkingModel, "gemini-3-pro-preview"},
		{"FastModel", cfg.Gemini.FastModel, "gemini-3-flash-preview"},
		{"ChatModel", cfg.Gemini.ChatModel, "gemini-3-pro-preview"},
		{"TTSModel", cfg.Gemini.TTSModel, "gemini-2.5-flash-preview-tts"},
		{"Voice", cfg.Gemini.Voice, "Kore"},
		{"SolveThinkingBudget", cfg.Gemini.SolveThinkingBudget, int32(16384)},
		{"ChatThinkingBudget", cfg.Gemini.ChatThinkingBudget, int32(8192)},
		{"APIKey", cfg.APIKey, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
	assert.InDelta(t, 0.1, cfg.Gemini.Temperature, 1e-6)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("THINKING", "false")
	t.Setenv("GEMINI_VOICE", "Puck")
	t.Setenv("GEMINI_SOLVE_THINKING_BUDGET", "1024")
	t.Setenv("IMAGES_TO_PICK", "3")
	t.Setenv("WATCH_OVERLAP_POLICY", "preempt")
	t.Setenv("PLAYER_VOLUME_DB", "-6")

	cfg := Load()

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "openai", cfg.AIProvider)
	assert.False(t, cfg.Thinking)
	assert.Equal(t, "Puck", cfg.Gemini.Voice)
	assert.Equal(t, int32(1024), cfg.Gemini.SolveThinkingBudget)
	assert.Equal(t, 3, cfg.Images.ToPick)
	assert.Equal(t, "preempt", cfg.Watch.OverlapPolicy)
	assert.InDelta(t, -6.0, cfg.VolumeDB, 1e-9)
	assert.Equal(t, 5, cfg.Watch.IntervalSeconds)
	// не заданные в окружении значения остаются дефолтными
	assert.Equal(t, "gemini-3-pro-preview", cfg.Gemini.ChatModel)
}

func TestLoadMissingAPIKeyIsEmpty(t *testing.T) {
	t.Setenv("API_KEY", "")

	cfg := Load()
	assert.Empty(t, cfg.APIKey)
}

func TestBindFlagsOverride(t *testing.T) {
	cfg := Defaults()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	BindFlags(fs, cfg)

	require.NoError(t, fs.Parse([]string{"-mode", "SIMPLE", "-thinking=false", "-ai-provider", "stub", "-images-concurrency", "4"}))

	assert.Equal(t, "SIMPLE", cfg.ResponseMode)
	assert.False(t, cfg.Thinking)
	assert.Equal(t, "stub", cfg.AIProvider)
	assert.Equal(t, 4, cfg.Images.Concurrency)
}

func TestOpenAIKeyFallback(t *testing.T) {
	cfg := Defaults()
	cfg.APIKey = "shared"
	assert.Equal(t, "shared", cfg.OpenAIKey())

	cfg.OpenAI.APIKey = "own"
	assert.Equal(t, "own", cfg.OpenAIKey())
}
