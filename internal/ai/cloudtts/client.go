package cloudtts

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"SolverClient/internal/ai"
	"SolverClient/internal/config"

	gctts "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Client синтезирует речь через Google Cloud Text-to-Speech (MP3). Авторизация только через ADC.
type Client struct {
	cfg    config.GoogleTTSConfig
	logger *zap.SugaredLogger
}

func New(cfg config.GoogleTTSConfig, logger *zap.SugaredLogger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// GenerateSpeech выполняет запрос к Google TTS. req.Voice перекрывает голос из конфига, если задан
// как полное имя голоса Cloud TTS (например, pt-BR-Wavenet-A); Model игнорируется.
func (c *Client) GenerateSpeech(ctx context.Context, req ai.SpeechRequest) (ai.Reply, error) {
	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return ai.Reply{}, fmt.Errorf("google tts: ADC credentials not found: %w", err)
	}

	ttsClient, err := gctts.NewClient(ctx, option.WithCredentials(creds))
	if err != nil {
		return ai.Reply{}, err
	}
	defer ttsClient.Close()

	started := time.Now()
	resp, err := ttsClient.SynthesizeSpeech(ctx, synthesizeRequest(c.cfg, req))
	if err != nil {
		c.logger.Errorw("Google TTS synthesize failed", "took", time.Since(started).String(), "error", err)
		return ai.Reply{}, err
	}
	c.logger.Infow("Google TTS synthesize completed", "took", time.Since(started).String())

	audio := resp.GetAudioContent()
	if len(audio) == 0 {
		return ai.Reply{}, nil
	}
	return ai.Reply{Audio: &ai.InlineData{
		MIMEType: "audio/mpeg",
		Data:     base64.StdEncoding.EncodeToString(audio),
	}}, nil
}

func synthesizeRequest(gc config.GoogleTTSConfig, req ai.SpeechRequest) *ttspb.SynthesizeSpeechRequest {
	voice := gc.Voice
	// Короткие имена голосов Gemini (Kore, Puck) Cloud TTS не понимает.
	if v := strings.TrimSpace(req.Voice); strings.Count(v, "-") >= 2 {
		voice = v
	}

	audio := &ttspb.AudioConfig{
		AudioEncoding: ttspb.AudioEncoding_MP3,
		SpeakingRate:  gc.SpeakingRate,
		Pitch:         gc.Pitch,
		VolumeGainDb:  gc.VolumeGainDb,
	}
	if ep := strings.TrimSpace(gc.EffectsProfileID); ep != "" {
		audio.EffectsProfileId = []string{ep}
	}

	return &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{InputSource: &ttspb.SynthesisInput_Text{Text: req.Text}},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: gc.Language,
			Name:         voice,
		},
		AudioConfig: audio,
	}
}

var _ ai.SpeechGenerator = (*Client)(nil)
