package cloudtts

import (
	"testing"

	"SolverClient/internal/ai"
	"SolverClient/internal/config"

	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/stretchr/testify/assert"
)

func TestSynthesizeRequestUsesConfig(t *testing.T) {
	gc := config.GoogleTTSConfig{
		Language:         "pt-BR",
		Voice:            "pt-BR-Standard-A",
		SpeakingRate:     1.1,
		EffectsProfileID: "headphone-class-device",
	}

	req := synthesizeRequest(gc, ai.SpeechRequest{Text: "olá", Voice: "Kore"})

	assert.Equal(t, "olá", req.GetInput().GetText())
	assert.Equal(t, "pt-BR", req.GetVoice().GetLanguageCode())
	assert.Equal(t, "pt-BR-Standard-A", req.GetVoice().GetName())
	assert.Equal(t, ttspb.AudioEncoding_MP3, req.GetAudioConfig().GetAudioEncoding())
	assert.InDelta(t, 1.1, req.GetAudioConfig().GetSpeakingRate(), 1e-9)
	assert.Equal(t, []string{"headphone-class-device"}, req.GetAudioConfig().GetEffectsProfileId())
}

func TestSynthesizeRequestVoiceOverride(t *testing.T) {
	req := synthesizeRequest(config.GoogleTTSConfig{Voice: "pt-BR-Standard-A"}, ai.SpeechRequest{Voice: "pt-BR-Wavenet-B"})
	assert.Equal(t, "pt-BR-Wavenet-B", req.GetVoice().GetName())
}
