package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"SolverClient/internal/app/factory"
	"SolverClient/internal/app/requester"
	"SolverClient/internal/app/scheduler"
	"SolverClient/internal/app/screenshotter"
	"SolverClient/internal/config"
	"SolverClient/internal/service/notify"
	"SolverClient/internal/service/tts/player"
	"SolverClient/internal/solver"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()
	latest := flag.Bool("latest", false, "решить последние картинки из папки источника")
	screen := flag.Bool("screen", false, "снять экран и решить задачу на снимке")
	speak := flag.Bool("speak", false, "озвучить ответ")
	watch := flag.Bool("watch", false, "следить за папкой источника и решать новые картинки")
	flag.Parse()

	// создаём предустановленный регистратор zap
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

	mode, err := solver.ParseMode(cfg.ResponseMode)
	if err != nil {
		sugar.Fatalw("bad response mode", "error", err)
	}

	client, err := factory.NewClient(cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to create AI client", "error", err)
	}
	svc := solver.New(client, factory.Settings(cfg), sugar)
	req := requester.New(cfg, svc, sugar)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sugar.Infow("Starting solve",
		"DebugMode", cfg.DebugMode,
		"mode", mode.String(),
		"thinking", cfg.Thinking,
	)

	p := player.NewWithVolume(cfg.VolumeDB)
	if *watch {
		opts := []scheduler.Option{scheduler.WithOutput(func(res requester.Result) {
			fmt.Printf("== %s\n%s\n\n", res.Path, res.Answer)
		})}
		if cfg.Watch.Speak || *speak {
			opts = append(opts, scheduler.WithSpeech(svc, p))
		}
		if cfg.Watch.NotifySound != "" {
			opts = append(opts, scheduler.WithNotifier(notify.NewSoundNotifier(sugar, cfg.Watch.NotifySound, p)))
		}
		go screenshotter.New(cfg, sugar).Run(ctx)
		err := scheduler.New(cfg, mode, req, sugar, opts...).Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			sugar.Errorw("watch stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	var results []requester.Result
	switch {
	case *screen:
		results = []requester.Result{req.SolveScreen(ctx, mode)}
	case *latest:
		results, err = req.SolveLatest(ctx, mode)
		if err != nil {
			sugar.Fatalw("failed to pick images", "dir", cfg.Images.SourceDir, "error", err)
		}
	default:
		if flag.NArg() == 0 {
			fmt.Fprintln(os.Stderr, "usage: solve [flags] image.jpg [image2.png ...] | -latest | -screen")
			os.Exit(2)
		}
		results = req.SolveFiles(ctx, flag.Args(), mode)
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			sugar.Errorw("solve failed", "path", res.Path, "error", res.Err)
			continue
		}
		fmt.Printf("== %s\n%s\n\n", res.Path, res.Answer)

		if *speak {
			audio := svc.GenerateSpeech(ctx, res.Answer)
			if audio == nil {
				sugar.Warnw("speech unavailable", "path", res.Path)
				continue
			}
			if err := p.PlayBytes(audio.MIMEType, audio.Data); err != nil {
				sugar.Warnw("playback failed", "mime", audio.MIMEType, "error", err)
			}
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
