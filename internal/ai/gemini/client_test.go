package gemini

import (
	"context"
	"encoding/base64"
	"testing"

	"SolverClient/internal/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func TestContentConfigThinkingBudget(t *testing.T) {
	cfg := contentConfig(ai.ContentRequest{Temperature: 0.1, ThinkingBudget: 16384})
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.1, *cfg.Temperature, 1e-6)
	require.NotNil(t, cfg.ThinkingConfig)
	require.NotNil(t, cfg.ThinkingConfig.ThinkingBudget)
	assert.Equal(t, int32(16384), *cfg.ThinkingConfig.ThinkingBudget)

	cfg = contentConfig(ai.ContentRequest{Temperature: 0.1})
	assert.Nil(t, cfg.ThinkingConfig)
}

func TestChatConfig(t *testing.T) {
	cfg := chatConfig(ai.ChatRequest{SystemInstruction: "  seja direto ", ThinkingBudget: 8192})
	require.NotNil(t, cfg.SystemInstruction)
	require.Len(t, cfg.SystemInstruction.Parts, 1)
	assert.Equal(t, "seja direto", cfg.SystemInstruction.Parts[0].Text)
	require.NotNil(t, cfg.ThinkingConfig)
	assert.Equal(t, int32(8192), *cfg.ThinkingConfig.ThinkingBudget)
}

func TestSpeechConfigVoice(t *testing.T) {
	cfg := speechConfig(ai.SpeechRequest{Voice: "Kore"})
	assert.Equal(t, []string{"AUDIO"}, cfg.ResponseModalities)
	require.NotNil(t, cfg.SpeechConfig)
	assert.Equal(t, "Kore", cfg.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
}

func TestReplyFromAudio(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0xff, 0x00}
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{
				InlineData: &genai.Blob{MIMEType: "audio/L16;codec=pcm;rate=24000", Data: pcm},
			}}},
		}},
	}

	got := replyFrom(resp)
	require.NotNil(t, got.Audio)
	assert.Equal(t, "audio/L16;codec=pcm;rate=24000", got.Audio.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pcm), got.Audio.Data)
}

func TestReplyFromText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "x = 4"}}},
		}},
	}

	got := replyFrom(resp)
	assert.Equal(t, "x = 4", got.Text)
	assert.Nil(t, got.Audio)
}

func TestReplyFromEmpty(t *testing.T) {
	assert.Equal(t, ai.Reply{}, replyFrom(nil))
	assert.Equal(t, ai.Reply{}, replyFrom(&genai.GenerateContentResponse{}))
}

func TestGenerateContentRejectsBadBase64(t *testing.T) {
	c := New("key", zap.NewNop().Sugar())
	_, err := c.GenerateContent(context.Background(), ai.ContentRequest{
		Model: "gemini-3-flash-preview",
		Image: ai.Image{MIMEType: "image/jpeg", Data: "%%%not-base64"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad image base64")
}

func TestEmptyKeyFailsAtCallTime(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	c := New("   ", zap.NewNop().Sugar())
	assert.Empty(t, c.apiKey)

	_, err := c.SendChatMessage(context.Background(), ai.ChatRequest{Model: "gemini-3-pro-preview", Message: "oi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini: create client")
}
