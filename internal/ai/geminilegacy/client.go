package geminilegacy

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"SolverClient/internal/ai"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Client работает через старый SDK github.com/google/generative-ai-go.
// Бюджет рассуждений в этом SDK не поддерживается и игнорируется; синтеза речи нет.
type Client struct {
	apiKey string
	logger *zap.SugaredLogger
}

func New(apiKey string, logger *zap.SugaredLogger) *Client {
	return &Client{apiKey: strings.TrimSpace(apiKey), logger: logger}
}

func (c *Client) GenerateContent(ctx context.Context, req ai.ContentRequest) (ai.Reply, error) {
	img, err := base64.StdEncoding.DecodeString(req.Image.Data)
	if err != nil {
		return ai.Reply{}, fmt.Errorf("gemini legacy: bad image base64: %w", err)
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return ai.Reply{}, fmt.Errorf("gemini legacy: create client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(strings.TrimSpace(req.Model))
	m.SetTemperature(req.Temperature)

	mime := req.Image.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	parts := []genai.Part{
		genai.Blob{MIMEType: mime, Data: img},
		genai.Text(req.Prompt),
	}

	started := time.Now()
	resp, err := m.GenerateContent(ctx, parts...)
	c.logDone("Gemini legacy generate", req.Model, started, err)
	if err != nil {
		return ai.Reply{}, err
	}
	return ai.Reply{Text: firstText(resp)}, nil
}

func (c *Client) SendChatMessage(ctx context.Context, req ai.ChatRequest) (ai.Reply, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return ai.Reply{}, fmt.Errorf("gemini legacy: create client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(strings.TrimSpace(req.Model))
	if si := strings.TrimSpace(req.SystemInstruction); si != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(si)}}
	}

	session := m.StartChat()
	started := time.Now()
	resp, err := session.SendMessage(ctx, genai.Text(req.Message))
	c.logDone("Gemini legacy chat", req.Model, started, err)
	if err != nil {
		return ai.Reply{}, err
	}
	return ai.Reply{Text: firstText(resp)}, nil
}

func (c *Client) GenerateSpeech(_ context.Context, _ ai.SpeechRequest) (ai.Reply, error) {
	return ai.Reply{}, fmt.Errorf("gemini legacy speech: %w", ai.ErrUnsupported)
}

// firstText склеивает текстовые части первого кандидата.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

func (c *Client) logDone(what, model string, started time.Time, err error) {
	if c.logger == nil {
		return
	}
	if err != nil {
		c.logger.Errorw(what+" failed", "model", model, "took", time.Since(started).String(), "error", err)
		return
	}
	c.logger.Infow(what+" completed", "model", model, "took", time.Since(started).String())
}

var _ ai.Client = (*Client)(nil)
