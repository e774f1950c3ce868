package ai

import (
	"context"
	"encoding/base64"
)

// StubClient заглушка, которая не делает реальных запросов
type StubClient struct{}

func NewStubClient() *StubClient { return &StubClient{} }

func (c *StubClient) GenerateContent(_ context.Context, _ ContentRequest) (Reply, error) {
	return Reply{Text: "запрос получен"}, nil
}

func (c *StubClient) SendChatMessage(_ context.Context, req ChatRequest) (Reply, error) {
	return Reply{Text: req.Message}, nil
}

// GenerateSpeech возвращает полсекунды тишины в PCM 24 кГц, чтобы плеер было чем проверить.
func (c *StubClient) GenerateSpeech(_ context.Context, _ SpeechRequest) (Reply, error) {
	silence := make([]byte, 24000)
	return Reply{Audio: &InlineData{
		MIMEType: "audio/L16;codec=pcm;rate=24000",
		Data:     base64.StdEncoding.EncodeToString(silence),
	}}, nil
}
