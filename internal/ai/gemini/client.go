package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"SolverClient/internal/ai"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Client ходит в Gemini API через google.golang.org/genai.
// SDK‑клиент создаётся на каждый вызов: это дёшево и читает только ключ.
type Client struct {
	apiKey string
	logger *zap.SugaredLogger
}

// New создаёт клиента. Пустой ключ не проверяется: ошибку вернёт сам API при вызове.
// При пустом ключе SDK сам подставит GOOGLE_API_KEY или GEMINI_API_KEY из окружения, если они заданы.
func New(apiKey string, logger *zap.SugaredLogger) *Client {
	return &Client{apiKey: strings.TrimSpace(apiKey), logger: logger}
}

func (c *Client) sdk(ctx context.Context) (*genai.Client, error) {
	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return cl, nil
}

func (c *Client) GenerateContent(ctx context.Context, req ai.ContentRequest) (ai.Reply, error) {
	img, err := base64.StdEncoding.DecodeString(req.Image.Data)
	if err != nil {
		return ai.Reply{}, fmt.Errorf("gemini: bad image base64: %w", err)
	}
	cl, err := c.sdk(ctx)
	if err != nil {
		return ai.Reply{}, err
	}

	mime := req.Image.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(img, mime),
			genai.NewPartFromText(req.Prompt),
		}, genai.RoleUser),
	}

	started := time.Now()
	resp, err := cl.Models.GenerateContent(ctx, req.Model, contents, contentConfig(req))
	c.logDone("Gemini generate", req.Model, started, err)
	if err != nil {
		return ai.Reply{}, err
	}
	return replyFrom(resp), nil
}

func (c *Client) SendChatMessage(ctx context.Context, req ai.ChatRequest) (ai.Reply, error) {
	cl, err := c.sdk(ctx)
	if err != nil {
		return ai.Reply{}, err
	}

	chat, err := cl.Chats.Create(ctx, req.Model, chatConfig(req), nil)
	if err != nil {
		return ai.Reply{}, fmt.Errorf("gemini: create chat: %w", err)
	}

	started := time.Now()
	resp, err := chat.SendMessage(ctx, genai.Part{Text: req.Message})
	c.logDone("Gemini chat", req.Model, started, err)
	if err != nil {
		return ai.Reply{}, err
	}
	return replyFrom(resp), nil
}

func (c *Client) GenerateSpeech(ctx context.Context, req ai.SpeechRequest) (ai.Reply, error) {
	cl, err := c.sdk(ctx)
	if err != nil {
		return ai.Reply{}, err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(req.Text)}, genai.RoleUser),
	}

	started := time.Now()
	resp, err := cl.Models.GenerateContent(ctx, req.Model, contents, speechConfig(req))
	c.logDone("Gemini TTS", req.Model, started, err)
	if err != nil {
		return ai.Reply{}, err
	}
	return replyFrom(resp), nil
}

func contentConfig(req ai.ContentRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(req.ThinkingBudget)}
	}
	return cfg
}

func chatConfig(req ai.ChatRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if si := strings.TrimSpace(req.SystemInstruction); si != "" {
		cfg.SystemInstruction = genai.NewContentFromText(si, genai.RoleUser)
	}
	if req.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(req.ThinkingBudget)}
	}
	return cfg
}

func speechConfig(req ai.SpeechRequest) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: req.Voice},
			},
		},
	}
}

// replyFrom достаёт текст и первую inline‑часть первого кандидата.
// SDK уже раскодировал base64 в байты, поэтому для границы ai.Reply кодируем обратно.
func replyFrom(resp *genai.GenerateContentResponse) ai.Reply {
	if resp == nil {
		return ai.Reply{}
	}
	var out ai.Reply
	if len(resp.Candidates) == 0 {
		return out
	}
	out.Text = resp.Text()
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 {
		return out
	}
	if p := cand.Content.Parts[0]; p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
		out.Audio = &ai.InlineData{
			MIMEType: p.InlineData.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(p.InlineData.Data),
		}
	}
	return out
}

func (c *Client) logDone(what, model string, started time.Time, err error) {
	if c.logger == nil {
		return
	}
	took := time.Since(started).String()
	if err != nil {
		c.logger.Errorw(what+" failed", "model", model, "took", took, "error", err)
		return
	}
	c.logger.Infow(what+" completed", "model", model, "took", took)
}

var _ ai.Client = (*Client)(nil)
