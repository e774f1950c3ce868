package screenshotter

import (
	"context"
	stdimage "image"
	"os"
	"path/filepath"
	"time"

	"SolverClient/internal/config"
	"SolverClient/internal/service/image"

	"go.uber.org/zap"
)

// Screenshotter периодически снимает экран в папку источника, откуда картинки забирает наблюдение.
type Screenshotter struct {
	cfg       *config.Config
	processor *image.Processor
	capture   func() (stdimage.Image, error)
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func New(cfg *config.Config, logger *zap.SugaredLogger) *Screenshotter {
	return &Screenshotter{
		cfg:       cfg,
		processor: image.NewProcessor(cfg.Images.MaxWidth, cfg.Images.MaxSizeBytes, cfg.Images.Quality),
		capture:   image.CaptureScreen,
		logger:    logger,
		now:       time.Now,
	}
}

// Run запускает цикл снятия скриншотов. Блокирующий метод; обычно запускается в отдельной горутине.
func (s *Screenshotter) Run(ctx context.Context) {
	// Фича-флаг: при нулевом интервале скриншоттер выключен
	if s.cfg.Watch.CaptureSeconds <= 0 {
		s.logger.Infow("Screenshotter is disabled by config")
		return
	}
	interval := time.Duration(s.cfg.Watch.CaptureSeconds) * time.Second
	t := time.NewTicker(interval)
	defer t.Stop()

	// Гарантируем, что директория существует
	if err := os.MkdirAll(s.cfg.Images.SourceDir, 0o755); err != nil {
		s.logger.Errorw("Failed to create source dir for screenshots", "dir", s.cfg.Images.SourceDir, "error", err)
		// продолжаем — возможно директорию поправят вручную
	}

	s.logger.Infow("Screenshotter started", "interval", interval.String(), "outputDir", s.cfg.Images.SourceDir)
	// Немедленно делаем первый кадр
	s.captureOnce()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("Screenshotter stopped", "reason", ctx.Err())
			return
		case <-t.C:
			s.captureOnce()
		}
	}
}

// captureOnce снимает экран и сохраняет JPEG; возвращает путь или пустую строку при ошибке.
func (s *Screenshotter) captureOnce() string {
	img, err := s.capture()
	if err != nil {
		s.logger.Errorw("Failed to capture screen", "error", err)
		return ""
	}

	prepared, err := s.processor.Encode(img)
	if err != nil {
		s.logger.Errorw("Failed to encode screenshot", "error", err)
		return ""
	}

	filename := s.now().Format("2006-01-02_15-04-05.000") + ".jpg"
	fullPath := filepath.Join(s.cfg.Images.SourceDir, filename)
	if err := os.WriteFile(fullPath, prepared.Data, 0o644); err != nil {
		s.logger.Errorw("Failed to write screenshot file", "path", fullPath, "error", err)
		return ""
	}
	s.logger.Debugw("Screenshot saved", "path", fullPath, "width", prepared.Width, "size", prepared.SizeBytes)
	return fullPath
}
