package player

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Player воспроизводит аудио в зависимости от MIME-типа.
type Player interface {
	Play(mimeType string, r io.ReadCloser) error
}

// Default реализует Player и поддерживает mp3, wav и сырой PCM.
type Default struct{ volumeDB float64 }

// New создаёт плеер без изменения громкости (0 dB).
func New() *Default { return &Default{volumeDB: 0} }

// NewWithVolume создаёт плеер с предустановленной громкостью в dB (отрицательные — тише).
func NewWithVolume(db float64) *Default { return &Default{volumeDB: db} }

func (d *Default) Play(mimeType string, r io.ReadCloser) error {
	streamer, format, err := Decode(mimeType, r)
	if err != nil {
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(d.volume(streamer), beep.Callback(func() { close(done) })))
	<-done
	return nil
}

// volume применяет громкость плеера; при 0 dB поток не меняется.
func (d *Default) volume(s beep.Streamer) *effects.Volume {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   d.volumeDB / 6, // 6 dB на удвоение амплитуды
		Silent:   false,
	}
}

// PlayBytes удобная обёртка над Play для аудио в памяти.
func (d *Default) PlayBytes(mimeType string, data []byte) error {
	return d.Play(mimeType, io.NopCloser(bytes.NewReader(data)))
}

// Decode открывает поток по MIME-типу.
func Decode(mimeType string, r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	format, rate := FormatFromMIME(mimeType)
	switch format {
	case FormatWAV:
		return wav.Decode(r)
	case FormatMP3:
		return mp3.Decode(r)
	case FormatPCM:
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, beep.Format{}, err
		}
		s := NewPCMStreamer(data)
		return s, s.Format(rate), nil
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported audio type %q; use mp3, wav or pcm", mimeType)
	}
}

// SaveWAV пишет аудио в WAV. Готовый WAV копируется как есть.
func SaveWAV(w io.WriteSeeker, mimeType string, data []byte) error {
	if len(data) == 0 {
		return errors.New("empty audio")
	}
	if format, _ := FormatFromMIME(mimeType); format == FormatWAV {
		_, err := w.Write(data)
		return err
	}
	streamer, format, err := Decode(mimeType, io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return err
	}
	defer streamer.Close()
	return wav.Encode(w, streamer, format)
}
