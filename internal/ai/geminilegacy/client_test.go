package geminilegacy

import (
	"context"
	"testing"

	"SolverClient/internal/ai"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstTextJoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("x = "),
				genai.Blob{MIMEType: "image/png", Data: []byte{1}},
				genai.Text("4"),
			}},
		}},
	}
	assert.Equal(t, "x = 4", firstText(resp))
}

func TestFirstTextEmpty(t *testing.T) {
	assert.Empty(t, firstText(nil))
	assert.Empty(t, firstText(&genai.GenerateContentResponse{}))
	assert.Empty(t, firstText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
}

func TestGenerateSpeechUnsupported(t *testing.T) {
	_, err := New("", nil).GenerateSpeech(context.Background(), ai.SpeechRequest{Text: "olá"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrUnsupported)
}
