package config

import (
	"flag"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode      bool    `env:"DEBUG_MODE"`       //Режим дебага
	APIKey         string  `env:"API_KEY"`          // Ключ AI‑сервиса. Пустой ключ передаётся как есть, ошибку вернёт сам сервис
	AIProvider     string  `env:"AI_PROVIDER"`      // gemini|gemini-legacy|openai|stub, по умолчанию gemini
	SpeechProvider string  `env:"SPEECH_PROVIDER"`  // gemini|google|stub, по умолчанию gemini
	ResponseMode   string  `env:"RESPONSE_MODE"`    // SIMPLE|EXPLAINED
	Thinking       bool    `env:"THINKING"`         // Использовать «думающую» модель при решении по картинке
	RateLimit      float64 `env:"AI_RATE_LIMIT"`    // Запросов в секунду к провайдеру; 0 — без ограничений
	VolumeDB       float64 `env:"PLAYER_VOLUME_DB"` // Громкость воспроизведения в dB, отрицательные тише

	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	GoogleTTS GoogleTTSConfig
	Images    ImagesConfig
	Watch     WatchConfig
}

// GeminiConfig модели и параметры генерации Gemini.
type GeminiConfig struct {
	ThinkingModel       string  `env:"GEMINI_THINKING_MODEL"`        // Модель для решения с рассуждениями
	FastModel           string  `env:"GEMINI_FAST_MODEL"`            // Быстрая модель, когда рассуждения выключены
	ChatModel           string  `env:"GEMINI_CHAT_MODEL"`            // Модель чата
	TTSModel            string  `env:"GEMINI_TTS_MODEL"`             // Модель синтеза речи
	Voice               string  `env:"GEMINI_VOICE"`                 // Готовый голос, напр. Kore
	Temperature         float32 `env:"GEMINI_TEMPERATURE"`           // Температура при решении по картинке
	SolveThinkingBudget int32   `env:"GEMINI_SOLVE_THINKING_BUDGET"` // Бюджет рассуждений для решения по картинке
	ChatThinkingBudget  int32   `env:"GEMINI_CHAT_THINKING_BUDGET"`  // Бюджет рассуждений для чата
}

// OpenAIConfig используется при AI_PROVIDER=openai.
type OpenAIConfig struct {
	APIKey        string `env:"OPENAI_API_KEY"` // Если пуст — берётся API_KEY
	ThinkingModel string `env:"OPENAI_THINKING_MODEL"`
	FastModel     string `env:"OPENAI_FAST_MODEL"`
	ChatModel     string `env:"OPENAI_CHAT_MODEL"`
}

// GoogleTTSConfig конфигурация для синтеза речи через Google Cloud Text-to-Speech.
type GoogleTTSConfig struct {
	// Путь к файлу ключа сервисного аккаунта. Фактически читается из ENV GOOGLE_APPLICATION_CREDENTIALS.
	CredentialsPath  string  `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	Language         string  `env:"GOOGLE_TTS_LANGUAGE"`
	Voice            string  `env:"GOOGLE_TTS_VOICE"`
	SpeakingRate     float64 `env:"GOOGLE_TTS_SPEAKING_RATE"`
	Pitch            float64 `env:"GOOGLE_TTS_PITCH"`
	VolumeGainDb     float64 `env:"GOOGLE_TTS_VOLUME_DB"`
	EffectsProfileID string  `env:"GOOGLE_TTS_EFFECTS_PROFILE_ID"`
}

// ImagesConfig подготовка картинок перед отправкой.
type ImagesConfig struct {
	SourceDir    string `env:"IMAGES_SOURCE_DIR"`    // Папка, из которой берутся последние картинки
	ToPick       int    `env:"IMAGES_TO_PICK"`       // Сколько последних изображений брать
	TTLSeconds   int    `env:"IMAGES_TTL_SECONDS"`   // Картинки старше TTL удаляются после решения; 0 — не удалять
	MaxWidth     int    `env:"IMAGES_MAX_WIDTH"`     // Максимальная ширина после масштабирования
	MaxSizeBytes int    `env:"IMAGES_MAX_SIZE_BYTES"` // Максимальный размер JPEG
	Quality      int    `env:"IMAGES_JPEG_QUALITY"`  // Качество JPEG
	Concurrency  int    `env:"IMAGES_CONCURRENCY"`   // Сколько картинок решать параллельно
}

// WatchConfig режим наблюдения за папкой: новые картинки решаются по таймеру.
type WatchConfig struct {
	IntervalSeconds      int    `env:"WATCH_INTERVAL_SECONDS"`       // Период опроса папки
	TickTimeoutSeconds   int    `env:"WATCH_TICK_TIMEOUT_SECONDS"`   // Тайм-аут одного тика
	OverlapPolicy        string `env:"WATCH_OVERLAP_POLICY"`         // skip|preempt
	MaxConsecutiveErrors int    `env:"WATCH_MAX_CONSECUTIVE_ERRORS"` // Остановка после N ошибок подряд
	Speak                bool   `env:"WATCH_SPEAK"`                  // Озвучивать ответы
	NotifySound          string `env:"WATCH_NOTIFY_SOUND"`           // mp3/wav, проигрывается при готовом ответе; пусто — без звука
	CaptureSeconds       int    `env:"WATCH_CAPTURE_SECONDS"`        // Снимать экран в папку источника каждые N секунд; 0 — выключено
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:      false,
		AIProvider:     "gemini",
		SpeechProvider: "gemini",
		ResponseMode:   "EXPLAINED",
		Thinking:       true,
		Gemini: GeminiConfig{
			ThinkingModel:       "gemini-3-pro-preview",
			FastModel:           "gemini-3-flash-preview",
			ChatModel:           "gemini-3-pro-preview",
			TTSModel:            "gemini-2.5-flash-preview-tts",
			Voice:               "Kore",
			Temperature:         0.1,
			SolveThinkingBudget: 16384,
			ChatThinkingBudget:  8192,
		},
		OpenAI: OpenAIConfig{
			ThinkingModel: "gpt-4o",
			FastModel:     "gpt-4o-mini",
			ChatModel:     "gpt-4o",
		},
		GoogleTTS: GoogleTTSConfig{
			CredentialsPath: "service-account.json",
			Language:        "pt-BR",
			Voice:           "pt-BR-Standard-A",
			SpeakingRate:    1.0,
		},
		Images: ImagesConfig{
			SourceDir:    "images",
			ToPick:       1,
			TTLSeconds:   0,
			MaxWidth:     1280,
			MaxSizeBytes: 1 * 1024 * 1024,
			Quality:      80,
			Concurrency:  2,
		},
		Watch: WatchConfig{
			IntervalSeconds:      5,
			TickTimeoutSeconds:   180,
			OverlapPolicy:        "skip",
			MaxConsecutiveErrors: 5,
		},
	}
}

// Load читает дефолты, затем .env и переменные окружения. Флаги не трогает.
func Load() *Config {
	_ = godotenv.Load()

	cfg := Defaults()
	_ = env.Parse(cfg)
	return cfg
}

// NewConfig загружает конфигурацию приложения и регистрирует флаги в flag.CommandLine.
// flag.Parse вызывает main после регистрации собственных флагов.
func NewConfig() *Config {
	cfg := Load()
	BindFlags(flag.CommandLine, cfg)
	return cfg
}

// BindFlags регистрирует флаги, перекрывающие значения cfg.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага")
	fs.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "ключ AI-сервиса (перекрывает ENV API_KEY)")
	fs.StringVar(&cfg.AIProvider, "ai-provider", cfg.AIProvider, "провайдер: gemini|gemini-legacy|openai|stub")
	fs.StringVar(&cfg.SpeechProvider, "speech-provider", cfg.SpeechProvider, "провайдер синтеза речи: gemini|google|stub")
	fs.StringVar(&cfg.ResponseMode, "mode", cfg.ResponseMode, "режим ответа: SIMPLE|EXPLAINED")
	fs.BoolVar(&cfg.Thinking, "thinking", cfg.Thinking, "использовать модель с рассуждениями")
	fs.Float64Var(&cfg.VolumeDB, "volume-db", cfg.VolumeDB, "громкость воспроизведения в dB (отрицательные — тише)")
	fs.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "запросов в секунду к провайдеру (0 — без ограничений)")
	// Gemini
	fs.StringVar(&cfg.Gemini.ThinkingModel, "gemini-thinking-model", cfg.Gemini.ThinkingModel, "модель Gemini с рассуждениями")
	fs.StringVar(&cfg.Gemini.FastModel, "gemini-fast-model", cfg.Gemini.FastModel, "быстрая модель Gemini")
	fs.StringVar(&cfg.Gemini.ChatModel, "gemini-chat-model", cfg.Gemini.ChatModel, "модель Gemini для чата")
	fs.StringVar(&cfg.Gemini.TTSModel, "gemini-tts-model", cfg.Gemini.TTSModel, "модель Gemini TTS")
	fs.StringVar(&cfg.Gemini.Voice, "gemini-voice", cfg.Gemini.Voice, "готовый голос Gemini TTS, напр. Kore")
	// OpenAI
	fs.StringVar(&cfg.OpenAI.ThinkingModel, "openai-thinking-model", cfg.OpenAI.ThinkingModel, "модель OpenAI для решения с рассуждениями")
	fs.StringVar(&cfg.OpenAI.FastModel, "openai-fast-model", cfg.OpenAI.FastModel, "быстрая модель OpenAI")
	fs.StringVar(&cfg.OpenAI.ChatModel, "openai-chat-model", cfg.OpenAI.ChatModel, "модель OpenAI для чата")
	// Google TTS
	fs.StringVar(&cfg.GoogleTTS.Language, "google-tts-language", cfg.GoogleTTS.Language, "язык синтеза, напр. pt-BR")
	fs.StringVar(&cfg.GoogleTTS.Voice, "google-tts-voice", cfg.GoogleTTS.Voice, "имя голоса, напр. pt-BR-Standard-A")
	fs.Float64Var(&cfg.GoogleTTS.SpeakingRate, "google-tts-speaking-rate", cfg.GoogleTTS.SpeakingRate, "скорость речи (1.0 по умолчанию)")
	// Картинки
	fs.StringVar(&cfg.Images.SourceDir, "images-source-dir", cfg.Images.SourceDir, "путь к папке с исходными изображениями")
	fs.IntVar(&cfg.Images.ToPick, "images-to-pick", cfg.Images.ToPick, "количество последних изображений для решения")
	fs.IntVar(&cfg.Images.TTLSeconds, "images-ttl-seconds", cfg.Images.TTLSeconds, "удалять картинки старше, в секундах (0 — не удалять)")
	fs.IntVar(&cfg.Images.MaxWidth, "images-max-width", cfg.Images.MaxWidth, "максимальная ширина картинки после масштабирования")
	fs.IntVar(&cfg.Images.Concurrency, "images-concurrency", cfg.Images.Concurrency, "сколько картинок решать параллельно")
	// Наблюдение
	fs.IntVar(&cfg.Watch.IntervalSeconds, "watch-interval", cfg.Watch.IntervalSeconds, "период опроса папки в режиме наблюдения, сек")
	fs.StringVar(&cfg.Watch.OverlapPolicy, "watch-overlap", cfg.Watch.OverlapPolicy, "политика наложения тиков: skip|preempt")
	fs.BoolVar(&cfg.Watch.Speak, "watch-speak", cfg.Watch.Speak, "озвучивать ответы в режиме наблюдения")
	fs.IntVar(&cfg.Watch.CaptureSeconds, "watch-capture", cfg.Watch.CaptureSeconds, "снимать экран каждые N секунд в режиме наблюдения (0 — выключено)")
	fs.StringVar(&cfg.Watch.NotifySound, "watch-notify-sound", cfg.Watch.NotifySound, "звук уведомления о готовом ответе (mp3/wav)")
}

// OpenAIKey ключ OpenAI с откатом на общий API_KEY.
func (c *Config) OpenAIKey() string {
	if k := strings.TrimSpace(c.OpenAI.APIKey); k != "" {
		return k
	}
	return c.APIKey
}
