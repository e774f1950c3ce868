package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"SolverClient/internal/app/factory"
	"SolverClient/internal/config"
	"SolverClient/internal/service/tts/player"
	"SolverClient/internal/solver"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()
	text := flag.String("text", "", "текст для озвучивания (обязательно)")
	out := flag.String("out", "", "путь для сохранения (.wav или исходный формат); пусто — не сохранять")
	play := flag.Bool("play", true, "воспроизвести результат")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	if strings.TrimSpace(*text) == "" {
		fmt.Fprintln(os.Stderr, "-text is required")
		os.Exit(2)
	}

	client, err := factory.NewClient(cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to create AI client", "error", err)
	}
	svc := solver.New(client, factory.Settings(cfg), sugar)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	audio := svc.GenerateSpeech(ctx, *text)
	if audio == nil {
		sugar.Errorw("speech synthesis returned no audio", "speech_provider", cfg.SpeechProvider)
		os.Exit(1)
	}
	sugar.Infow("speech ready", "mime", audio.MIMEType, "bytes", len(audio.Data))

	if *out != "" {
		if err := save(*out, audio); err != nil {
			sugar.Fatalw("failed to save audio", "path", *out, "error", err)
		}
		sugar.Infow("audio saved", "path", *out)
	}

	if *play {
		if err := player.NewWithVolume(cfg.VolumeDB).PlayBytes(audio.MIMEType, audio.Data); err != nil {
			sugar.Fatalw("playback failed", "error", err)
		}
	}
}

func save(path string, audio *solver.Audio) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if !strings.EqualFold(filepath.Ext(path), ".wav") {
		return os.WriteFile(path, audio.Data, 0o644)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := player.SaveWAV(f, audio.MIMEType, audio.Data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
