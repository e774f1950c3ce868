package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SolverClient/internal/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"go.uber.org/zap"
)

// Client отправляет запросы в OpenAI Responses API.
// Бюджет рассуждений не передаётся: модели задаются конфигом, синтез речи не поддерживается.
type Client struct {
	client *openai.Client
	logger *zap.SugaredLogger
}

func New(apiKey string, logger *zap.SugaredLogger) *Client {
	cli := openai.NewClient(option.WithAPIKey(strings.TrimSpace(apiKey)))
	return &Client{client: &cli, logger: logger}
}

func (c *Client) GenerateContent(ctx context.Context, req ai.ContentRequest) (ai.Reply, error) {
	params := responses.ResponseNewParams{
		Model:       req.Model,
		Temperature: openai.Float(float64(req.Temperature)),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(
					responses.ResponseInputMessageContentListParam{
						{
							OfInputImage: &responses.ResponseInputImageParam{
								Detail:   responses.ResponseInputImageDetailAuto,
								ImageURL: openai.String(dataURL(req.Image)),
							},
						},
						{
							OfInputText: &responses.ResponseInputTextParam{
								Text: req.Prompt,
							},
						},
					},
					responses.EasyInputMessageRoleUser,
				),
			},
		},
	}
	return c.send(ctx, "OpenAI generate", params)
}

func (c *Client) SendChatMessage(ctx context.Context, req ai.ChatRequest) (ai.Reply, error) {
	params := responses.ResponseNewParams{
		Model: req.Model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(
					responses.ResponseInputMessageContentListParam{
						{OfInputText: &responses.ResponseInputTextParam{Text: req.Message}},
					},
					responses.EasyInputMessageRoleUser,
				),
			},
		},
	}
	if si := strings.TrimSpace(req.SystemInstruction); si != "" {
		params.Instructions = openai.String(si)
	}
	return c.send(ctx, "OpenAI chat", params)
}

func (c *Client) GenerateSpeech(_ context.Context, _ ai.SpeechRequest) (ai.Reply, error) {
	return ai.Reply{}, fmt.Errorf("openai speech: %w", ai.ErrUnsupported)
}

func (c *Client) send(ctx context.Context, what string, params responses.ResponseNewParams) (ai.Reply, error) {
	start := time.Now()
	resp, err := c.client.Responses.New(ctx, params)
	dur := time.Since(start)
	if err != nil {
		c.logger.Errorw(what+" failed", "model", params.Model, "duration", dur.String(), "error", err)
		return ai.Reply{}, err
	}
	c.logger.Infow(what+" completed", "model", params.Model, "duration", dur.String())
	return ai.Reply{Text: resp.OutputText()}, nil
}

func dataURL(img ai.Image) string {
	contentType := img.MIMEType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, img.Data)
}

var _ ai.Client = (*Client)(nil)
