package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"SolverClient/internal/app/factory"
	"SolverClient/internal/config"
	"SolverClient/internal/solver"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()
	message := flag.String("message", "", "одно сообщение; без флага сообщения читаются из stdin построчно")
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

	mode, err := solver.ParseMode(cfg.ResponseMode)
	if err != nil {
		sugar.Fatalw("bad response mode", "error", err)
	}

	client, err := factory.NewClient(cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to create AI client", "error", err)
	}
	svc := solver.New(client, factory.Settings(cfg), sugar)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *message != "" {
		answer, err := svc.Chat(ctx, *message, mode)
		if err != nil {
			sugar.Fatalw("chat failed", "error", err)
		}
		fmt.Println(answer)
		return
	}

	// Каждая строка отправляется в новую сессию: история не сохраняется
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		answer, err := svc.Chat(ctx, line, mode)
		if err != nil {
			sugar.Errorw("chat failed", "error", err)
		} else {
			fmt.Println(answer)
		}
		if ctx.Err() != nil {
			return
		}
		fmt.Print("> ")
	}
}
