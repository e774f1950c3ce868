package factory

import (
	"fmt"
	"strings"

	"SolverClient/internal/ai"
	"SolverClient/internal/ai/cloudtts"
	"SolverClient/internal/ai/gemini"
	"SolverClient/internal/ai/geminilegacy"
	"SolverClient/internal/ai/openai"
	"SolverClient/internal/config"
	"SolverClient/internal/solver"

	"go.uber.org/zap"
)

const (
	ProviderGemini       = "gemini"
	ProviderGeminiLegacy = "gemini-legacy"
	ProviderOpenAI       = "openai"
	ProviderGoogle       = "google"
	ProviderStub         = "stub"
)

// NewClient собирает AI-клиента по конфигурации: текст и чат от AIProvider, речь от SpeechProvider.
// Клиент оборачивается ограничителем частоты запросов.
func NewClient(cfg *config.Config, logger *zap.SugaredLogger) (ai.Client, error) {
	text, err := textClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	speech, err := speechClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Infow("AI-клиент собран",
		"provider", providerName(cfg.AIProvider, ProviderGemini),
		"speech_provider", providerName(cfg.SpeechProvider, ProviderGemini),
		"rate_limit", cfg.RateLimit,
	)

	return ai.NewRateLimited(ai.Composite{
		ContentGenerator: text,
		ChatSender:       text,
		SpeechGenerator:  speech,
	}, cfg.RateLimit), nil
}

// Settings модели и параметры генерации для выбранного провайдера.
func Settings(cfg *config.Config) solver.Settings {
	s := solver.Settings{
		ThinkingModel:       cfg.Gemini.ThinkingModel,
		FastModel:           cfg.Gemini.FastModel,
		ChatModel:           cfg.Gemini.ChatModel,
		TTSModel:            cfg.Gemini.TTSModel,
		Voice:               cfg.Gemini.Voice,
		Temperature:         cfg.Gemini.Temperature,
		SolveThinkingBudget: cfg.Gemini.SolveThinkingBudget,
		ChatThinkingBudget:  cfg.Gemini.ChatThinkingBudget,
	}
	if providerName(cfg.AIProvider, ProviderGemini) == ProviderOpenAI {
		s.ThinkingModel = cfg.OpenAI.ThinkingModel
		s.FastModel = cfg.OpenAI.FastModel
		s.ChatModel = cfg.OpenAI.ChatModel
	}
	if providerName(cfg.SpeechProvider, ProviderGemini) == ProviderGoogle {
		s.Voice = cfg.GoogleTTS.Voice
	}
	return s
}

type textGenerator interface {
	ai.ContentGenerator
	ai.ChatSender
}

func textClient(cfg *config.Config, logger *zap.SugaredLogger) (textGenerator, error) {
	switch p := providerName(cfg.AIProvider, ProviderGemini); p {
	case ProviderGemini:
		return gemini.New(cfg.APIKey, logger), nil
	case ProviderGeminiLegacy:
		return geminilegacy.New(cfg.APIKey, logger), nil
	case ProviderOpenAI:
		return openai.New(cfg.OpenAIKey(), logger), nil
	case ProviderStub:
		return ai.NewStubClient(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", p)
	}
}

func speechClient(cfg *config.Config, logger *zap.SugaredLogger) (ai.SpeechGenerator, error) {
	switch p := providerName(cfg.SpeechProvider, ProviderGemini); p {
	case ProviderGemini:
		return gemini.New(cfg.APIKey, logger), nil
	case ProviderGoogle:
		return cloudtts.New(cfg.GoogleTTS, logger), nil
	case ProviderStub:
		return ai.NewStubClient(), nil
	default:
		return nil, fmt.Errorf("unknown speech provider %q", p)
	}
}

func providerName(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}
