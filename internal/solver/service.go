package solver

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"SolverClient/internal/ai"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Тексты‑заглушки на случай успешного ответа без текста.
const (
	SolveFallback = "Não foi possível processar."
	ChatFallback  = "Erro no processamento."
)

const imageMIMEType = "image/jpeg"

// Settings модели и параметры генерации, которые сервис подставляет в запросы.
type Settings struct {
	ThinkingModel       string
	FastModel           string
	ChatModel           string
	TTSModel            string
	Voice               string
	Temperature         float32
	SolveThinkingBudget int32
	ChatThinkingBudget  int32
}

// Audio синтезированная речь. MIMEType берётся из ответа провайдера, напр. audio/L16;codec=pcm;rate=24000.
type Audio struct {
	Data     []byte
	MIMEType string
}

// Service решение по картинке, короткий чат и синтез речи поверх ai.Client.
// Состояния между вызовами нет, методы можно вызывать конкурентно.
type Service struct {
	client   ai.Client
	settings Settings
	logger   *zap.SugaredLogger
}

func New(client ai.Client, settings Settings, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{client: client, settings: settings, logger: logger}
}

// SolveFromImage отправляет картинку (base64 JPEG) с промптом режима и возвращает очищенный ответ.
// thinking выбирает модель с рассуждениями и бюджетом, иначе быструю модель.
// Ошибки транспорта не перехватываются и возвращаются вызывающему.
func (s *Service) SolveFromImage(ctx context.Context, imageBase64 string, thinking bool, mode Mode) (string, error) {
	req := ai.ContentRequest{
		Model:       s.settings.FastModel,
		Image:       ai.Image{MIMEType: imageMIMEType, Data: imageBase64},
		Prompt:      SolvePrompt(mode),
		Temperature: s.settings.Temperature,
	}
	if thinking {
		req.Model = s.settings.ThinkingModel
		req.ThinkingBudget = s.settings.SolveThinkingBudget
	}

	reqID := uuid.NewString()
	start := time.Now()
	s.logger.Infow("Решение по картинке...", "request_id", reqID, "model", req.Model, "mode", mode.String(), "thinking", thinking)
	reply, err := s.client.GenerateContent(ctx, req)
	if err != nil {
		s.logger.Errorw("Ошибка решения по картинке", "request_id", reqID, "duration", time.Since(start).String(), "error", err)
		return "", fmt.Errorf("solve from image: %w", err)
	}
	s.logger.Infow("Решение получено", "request_id", reqID, "duration", time.Since(start).String())

	return Clean(orFallback(reply.Text, SolveFallback)), nil
}

// Chat открывает новую сессию с инструкцией режима, отправляет одно сообщение и возвращает очищенный ответ.
// История между вызовами не хранится.
func (s *Service) Chat(ctx context.Context, message string, mode Mode) (string, error) {
	req := ai.ChatRequest{
		Model:             s.settings.ChatModel,
		SystemInstruction: ChatInstruction(mode),
		ThinkingBudget:    s.settings.ChatThinkingBudget,
		Message:           message,
	}

	reqID := uuid.NewString()
	start := time.Now()
	s.logger.Infow("Сообщение в чат...", "request_id", reqID, "model", req.Model, "mode", mode.String())
	reply, err := s.client.SendChatMessage(ctx, req)
	if err != nil {
		s.logger.Errorw("Ошибка чата", "request_id", reqID, "duration", time.Since(start).String(), "error", err)
		return "", fmt.Errorf("chat: %w", err)
	}
	s.logger.Infow("Ответ чата получен", "request_id", reqID, "duration", time.Since(start).String())

	return Clean(orFallback(reply.Text, ChatFallback)), nil
}

// GenerateSpeech синтезирует речь и возвращает раскодированное аудио.
// Любая ошибка (в том числе паника клиента) и ответ без аудио дают nil: ошибка только пишется в лог.
func (s *Service) GenerateSpeech(ctx context.Context, text string) (audio *Audio) {
	reqID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("Ошибка при генерации аудио", "request_id", reqID, "panic", r)
			audio = nil
		}
	}()

	start := time.Now()
	reply, err := s.client.GenerateSpeech(ctx, ai.SpeechRequest{
		Model: s.settings.TTSModel,
		Voice: s.settings.Voice,
		Text:  text,
	})
	if err != nil {
		s.logger.Errorw("Ошибка при генерации аудио", "request_id", reqID, "duration", time.Since(start).String(), "error", err)
		return nil
	}
	if reply.Audio == nil || reply.Audio.Data == "" {
		s.logger.Warnw("В ответе нет аудио", "request_id", reqID, "duration", time.Since(start).String())
		return nil
	}

	data, err := base64.StdEncoding.DecodeString(reply.Audio.Data)
	if err != nil {
		s.logger.Errorw("Не удалось раскодировать аудио", "request_id", reqID, "error", err)
		return nil
	}
	s.logger.Infow("Аудио получено", "request_id", reqID, "bytes", len(data), "mime", reply.Audio.MIMEType, "duration", time.Since(start).String())
	return &Audio{Data: data, MIMEType: reply.Audio.MIMEType}
}

func orFallback(text, fallback string) string {
	if text == "" {
		return fallback
	}
	return text
}
