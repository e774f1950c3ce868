package player

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromMIME(t *testing.T) {
	tests := []struct {
		mime   string
		format string
		rate   int
	}{
		{"audio/L16;codec=pcm;rate=24000", FormatPCM, 24000},
		{"audio/L16; rate=16000", FormatPCM, 16000},
		{"audio/pcm", FormatPCM, DefaultPCMRate},
		{"audio/mpeg", FormatMP3, 0},
		{"audio/wav", FormatWAV, 0},
		{"mp3", FormatMP3, 0},
		{"audio/ogg", "", 0},
		{"", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			format, rate := FormatFromMIME(tt.mime)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.rate, rate)
		})
	}
}

func pcm(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}
	return out
}

func TestPCMStreamer(t *testing.T) {
	data := append(pcm(0, 16384, -32768, 32767), 0x01) // лишний байт отбрасывается
	s := NewPCMStreamer(data)
	require.Equal(t, 4, s.Len())

	buf := make([][2]float64, 3)
	n, ok := s.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.InDelta(t, 0.0, buf[0][0], 1e-9)
	assert.InDelta(t, 0.5, buf[1][0], 1e-9)
	assert.InDelta(t, -1.0, buf[2][1], 1e-9)

	n, ok = s.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = s.Stream(buf)
	assert.False(t, ok)
	assert.Zero(t, n)

	require.NoError(t, s.Seek(0))
	assert.Equal(t, 0, s.Position())
	assert.Error(t, s.Seek(5))
}

func TestSaveWAVFromPCM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, SaveWAV(f, "audio/L16;codec=pcm;rate=24000", pcm(1, 2, 3, 4, 5, 6)))
	require.NoError(t, f.Close())

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()

	streamer, format, err := wav.Decode(in)
	require.NoError(t, err)
	assert.Equal(t, beep.SampleRate(24000), format.SampleRate)
	assert.Equal(t, 1, format.NumChannels)
	assert.Equal(t, 6, streamer.Len())
}

func TestSaveWAVRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Error(t, SaveWAV(f, "audio/L16", nil))
	assert.Error(t, SaveWAV(f, "audio/ogg", []byte{1, 2}))
}

func TestVolume(t *testing.T) {
	s := NewPCMStreamer(pcm(16384, -16384))

	v := NewWithVolume(-12).volume(s)
	assert.InDelta(t, -2.0, v.Volume, 1e-9)
	assert.InDelta(t, 2.0, v.Base, 1e-9)

	buf := make([][2]float64, 2)
	n, ok := v.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 2, n)
	assert.InDelta(t, 0.125, buf[0][0], 1e-9)
	assert.InDelta(t, -0.125, buf[1][1], 1e-9)

	assert.Zero(t, New().volume(s).Volume)
}
