package player

import (
	"encoding/binary"
	"errors"
	"strconv"
	"strings"

	"github.com/faiface/beep"
)

const (
	FormatMP3 = "mp3"
	FormatWAV = "wav"
	FormatPCM = "pcm"

	// DefaultPCMRate частота Gemini TTS, если MIME её не содержит.
	DefaultPCMRate = 24000
)

// FormatFromMIME определяет формат и частоту (для PCM) по MIME-типу,
// например "audio/L16;codec=pcm;rate=24000".
func FormatFromMIME(mimeType string) (string, int) {
	parts := strings.Split(strings.ToLower(mimeType), ";")
	base := strings.TrimSpace(parts[0])

	rate := 0
	for _, p := range parts[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(p), "=")
		if ok && key == "rate" {
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				rate = n
			}
		}
	}

	switch base {
	case "audio/mpeg", "audio/mp3", FormatMP3:
		return FormatMP3, 0
	case "audio/wav", "audio/x-wav", "audio/wave", FormatWAV:
		return FormatWAV, 0
	case "audio/l16", "audio/pcm", FormatPCM:
		if rate == 0 {
			rate = DefaultPCMRate
		}
		return FormatPCM, rate
	default:
		return "", 0
	}
}

// PCMStreamer отдаёт моно 16-bit little-endian PCM как beep.Streamer.
type PCMStreamer struct {
	data []byte
	pos  int
	err  error
}

func NewPCMStreamer(data []byte) *PCMStreamer {
	return &PCMStreamer{data: data[:len(data)/2*2]}
}

func (s *PCMStreamer) Format(rate int) beep.Format {
	return beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 1, Precision: 2}
}

func (s *PCMStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && s.pos < s.Len() {
		off := s.pos * 2
		v := float64(int16(binary.LittleEndian.Uint16(s.data[off:off+2]))) / 32768
		samples[n][0], samples[n][1] = v, v
		n++
		s.pos++
	}
	return n, n > 0
}

func (s *PCMStreamer) Err() error { return s.err }

func (s *PCMStreamer) Len() int { return len(s.data) / 2 }

func (s *PCMStreamer) Position() int { return s.pos }

func (s *PCMStreamer) Seek(p int) error {
	if p < 0 || p > s.Len() {
		return errors.New("pcm: seek out of range")
	}
	s.pos = p
	return nil
}

func (s *PCMStreamer) Close() error { return nil }
