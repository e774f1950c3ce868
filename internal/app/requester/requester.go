package requester

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"SolverClient/internal/config"
	"SolverClient/internal/service/image"
	"SolverClient/internal/solver"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result решение одной картинки. Err не nil, если картинку не удалось подготовить или решить.
type Result struct {
	Path   string
	Answer string
	Err    error
}

type Requester struct {
	cfg       *config.Config
	solver    *solver.Service
	processor *image.Processor
	cleaner   *image.Cleaner
	logger    *zap.SugaredLogger
}

func New(cfg *config.Config, svc *solver.Service, logger *zap.SugaredLogger) *Requester {
	return &Requester{
		cfg:       cfg,
		solver:    svc,
		processor: image.NewProcessor(cfg.Images.MaxWidth, cfg.Images.MaxSizeBytes, cfg.Images.Quality),
		cleaner:   image.NewCleaner(logger),
		logger:    logger,
	}
}

// SolveLatest решает N последних картинок из папки источника и чистит устаревшие.
func (r *Requester) SolveLatest(ctx context.Context, mode solver.Mode) ([]Result, error) {
	paths, err := r.LatestImages()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		r.logger.Infow("Нет доступных изображений для отправки", "dir", r.cfg.Images.SourceDir)
		return nil, nil
	}

	results := r.SolveFiles(ctx, paths, mode)

	ttl := time.Duration(r.cfg.Images.TTLSeconds) * time.Second
	r.cleaner.Clean(r.cfg.Images.SourceDir, ttl, r.cfg.DebugMode)
	return results, nil
}

// SolveFiles решает картинки параллельно; порядок результатов совпадает с порядком paths.
func (r *Requester) SolveFiles(ctx context.Context, paths []string, mode solver.Mode) []Result {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.cfg.Images.Concurrency))
	for i, p := range paths {
		g.Go(func() error {
			results[i] = r.solveFile(gctx, p, mode)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// SolveScreen снимает экран и решает задачу на снимке.
func (r *Requester) SolveScreen(ctx context.Context, mode solver.Mode) Result {
	res := Result{Path: "screen"}
	img, err := image.CaptureScreen()
	if err != nil {
		res.Err = fmt.Errorf("capture screen: %w", err)
		return res
	}
	prepared, err := r.processor.Encode(img)
	if err != nil {
		res.Err = fmt.Errorf("encode screen: %w", err)
		return res
	}
	res.Answer, res.Err = r.solver.SolveFromImage(ctx, prepared.Base64(), r.cfg.Thinking, mode)
	return res
}

// LatestImages N последних картинок из папки источника, новые первыми.
func (r *Requester) LatestImages() ([]string, error) {
	return r.pickLastImages(r.cfg.Images.SourceDir, r.cfg.Images.ToPick)
}

func (r *Requester) solveFile(ctx context.Context, path string, mode solver.Mode) Result {
	res := Result{Path: path}
	prepared, err := r.processor.Process(path)
	if err != nil {
		r.logger.Warnw("Не удалось обработать изображение", "path", path, "error", err)
		res.Err = err
		return res
	}
	r.logger.Infow("Отправка..", "path", path, "width", prepared.Width, "size", prepared.SizeBytes)
	res.Answer, res.Err = r.solver.SolveFromImage(ctx, prepared.Base64(), r.cfg.Thinking, mode)
	return res
}

func (r *Requester) pickLastImages(dir string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	type fileInfo struct {
		path string
		mod  int64
	}
	files := make([]fileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !image.IsImageFile(e.Name()) {
			continue
		}
		fi, statErr := e.Info()
		if statErr != nil {
			r.logger.Warnw("Не удалось получить информацию о файле", "name", e.Name(), "error", statErr)
			continue
		}
		files = append(files, fileInfo{path: filepath.Join(dir, e.Name()), mod: fi.ModTime().UnixNano()})
	}

	slices.SortFunc(files, func(a, b fileInfo) int { // по убыванию времени
		return -cmp.Compare(a.mod, b.mod)
	})

	n = min(n, len(files))
	out := make([]string, 0, n)
	for i := range n {
		out = append(out, files[i].path)
	}
	return out, nil
}
