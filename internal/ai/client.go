package ai

import (
	"context"
	"errors"
)

// ErrUnsupported возвращается провайдером, который не умеет выполнять запрошенную операцию.
var ErrUnsupported = errors.New("operation is not supported by provider")

// ContentGenerator отправляет мультимодальный запрос (картинка + текст) одним вызовом.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, req ContentRequest) (Reply, error)
}

// ChatSender открывает новую сессию чата с системной инструкцией и отправляет в неё одно сообщение.
type ChatSender interface {
	SendChatMessage(ctx context.Context, req ChatRequest) (Reply, error)
}

// SpeechGenerator запрашивает ответ в аудио‑модальности.
type SpeechGenerator interface {
	GenerateSpeech(ctx context.Context, req SpeechRequest) (Reply, error)
}

// Client интерфейс для взаимодействия с AI. Все реализации должны быть взаимозаменяемыми.
type Client interface {
	ContentGenerator
	ChatSender
	SpeechGenerator
}

// Image картинка в том виде, в каком её ждёт API: base64 без префикса data URL.
type Image struct {
	MIMEType string
	Data     string
}

// ContentRequest запрос «картинка + промпт».
type ContentRequest struct {
	Model       string
	Image       Image
	Prompt      string
	Temperature float32
	// ThinkingBudget бюджет внутренних рассуждений модели; 0 не передаётся вовсе.
	ThinkingBudget int32
}

// ChatRequest одно сообщение в свежей сессии чата.
type ChatRequest struct {
	Model             string
	SystemInstruction string
	ThinkingBudget    int32
	Message           string
}

// SpeechRequest синтез речи готовым голосом провайдера.
type SpeechRequest struct {
	Model string
	Voice string
	Text  string
}

// InlineData бинарная часть ответа в base64, как она приходит по сети.
type InlineData struct {
	MIMEType string
	Data     string
}

// Reply ответ провайдера. Пустой Text это валидный ответ без текста, а не ошибка.
type Reply struct {
	Text string
	// Audio первая inline‑часть первого кандидата; nil, если её нет.
	Audio *InlineData
}

// Composite собирает Client из отдельных реализаций, например текст от одного провайдера, речь от другого.
type Composite struct {
	ContentGenerator
	ChatSender
	SpeechGenerator
}

var _ Client = Composite{}
