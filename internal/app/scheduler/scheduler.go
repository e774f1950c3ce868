package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"SolverClient/internal/app/requester"
	"SolverClient/internal/config"
	"SolverClient/internal/service/image"
	"SolverClient/internal/solver"

	"go.uber.org/zap"
)

// Overlap policies
const (
	overlapSkip    = "skip"
	overlapPreempt = "preempt"
)

var errPreempted = errors.New("tick preempted")

// ImageSolver источник новых картинок и их решение.
type ImageSolver interface {
	LatestImages() ([]string, error)
	SolveFiles(ctx context.Context, paths []string, mode solver.Mode) []requester.Result
}

// SpeechGenerator озвучивает ответ; nil означает, что аудио нет.
type SpeechGenerator interface {
	GenerateSpeech(ctx context.Context, text string) *solver.Audio
}

// AudioPlayer проигрывает аудио из памяти.
type AudioPlayer interface {
	PlayBytes(mimeType string, data []byte) error
}

// Notifier звуковое уведомление о готовом ответе.
type Notifier interface {
	PlayAnswer(ctx context.Context) error
}

type Option func(*Scheduler)

// WithSpeech включает озвучивание ответов.
func WithSpeech(sp SpeechGenerator, p AudioPlayer) Option {
	return func(s *Scheduler) { s.speech, s.player = sp, p }
}

func WithNotifier(n Notifier) Option {
	return func(s *Scheduler) { s.notifier = n }
}

// WithOutput задаёт обработчик готовых ответов.
func WithOutput(fn func(requester.Result)) Option {
	return func(s *Scheduler) { s.output = fn }
}

// Scheduler по таймеру проверяет папку источника и решает картинки, которых ещё не видел.
type Scheduler struct {
	cfg      *config.Config
	mode     solver.Mode
	images   ImageSolver
	speech   SpeechGenerator
	player   AudioPlayer
	notifier Notifier
	output   func(requester.Result)
	logger   *zap.SugaredLogger
	cleaner  *image.Cleaner

	interval time.Duration
	timeout  time.Duration

	running    atomic.Bool
	mu         sync.Mutex
	cancelPrev context.CancelCauseFunc
	gen        int64 // Счётчик текущего тика
	wg         sync.WaitGroup

	seenMu sync.Mutex
	seen   map[string]time.Time // путь -> mtime уже решённой картинки

	consecutiveErrors int // счётчик ошибок
}

func New(cfg *config.Config, mode solver.Mode, images ImageSolver, logger *zap.SugaredLogger, opts ...Option) *Scheduler {
	s := &Scheduler{
		cfg:      cfg,
		mode:     mode,
		images:   images,
		output:   func(requester.Result) {},
		logger:   logger,
		cleaner:  image.NewCleaner(logger),
		interval: time.Duration(cfg.Watch.IntervalSeconds) * time.Second,
		timeout:  time.Duration(cfg.Watch.TickTimeoutSeconds) * time.Second,
		seen:     make(map[string]time.Time),
	}
	if s.interval <= 0 {
		s.interval = 5 * time.Second
	}
	if s.timeout <= 0 {
		s.timeout = 3 * time.Minute
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run запускает цикл до отмены контекста или достижения лимита ошибок подряд.
// Картинки, лежащие в папке на момент старта, считаются уже решёнными.
func (s *Scheduler) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if paths, err := s.images.LatestImages(); err == nil {
		s.markSeen(paths...)
	}

	// Фоновая задача очистки изображений по TTL
	ttl := time.Duration(s.cfg.Images.TTLSeconds) * time.Second
	stopClean := make(chan struct{})
	go func() {
		defer close(stopClean)
		t := time.NewTicker(s.interval)
		defer t.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-t.C:
				s.cleaner.Clean(s.cfg.Images.SourceDir, ttl, s.cfg.DebugMode)
			}
		}
	}()

	stop := func() {
		s.stopPrev(context.Canceled)
		cancel()
		s.wg.Wait()
		<-stopClean
	}

	s.logger.Infow("Scheduler started", "interval", s.interval.String(), "overlap", s.cfg.Watch.OverlapPolicy, "dir", s.cfg.Images.SourceDir)

	done := make(chan error)
	for {
		t := time.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			t.Stop()
			stop()
			return context.Cause(ctx)
		case err := <-done:
			t.Stop()
			if err == nil {
				s.consecutiveErrors = 0
				continue
			}
			s.consecutiveErrors++
			s.logger.Errorw("Tick failed", "error", err, "consecutiveErrors", s.consecutiveErrors)
			if s.consecutiveErrors >= max(1, s.cfg.Watch.MaxConsecutiveErrors) {
				s.logger.Errorw("Stopping due to consecutive errors threshold", "threshold", s.cfg.Watch.MaxConsecutiveErrors)
				stop()
				return err
			}
		case <-t.C:
			s.startTick(runCtx, done)
		}
	}
}

func (s *Scheduler) startTick(parent context.Context, done chan<- error) {
	// Политика overlap
	if s.running.Load() {
		switch s.cfg.Watch.OverlapPolicy {
		case overlapPreempt:
			s.logger.Infow("Preempting previous tick")
			s.stopPrev(errPreempted)
			s.wg.Wait()
		default: // skip
			s.logger.Debugw("Skipping tick due to overlap")
			return
		}
	}

	cancelCtx, cancel := context.WithCancelCause(parent)
	tickCtx, cancelTimeout := context.WithTimeoutCause(cancelCtx, s.timeout, errors.New("tick timeout"))

	s.mu.Lock()
	s.gen++
	localGen := s.gen
	s.cancelPrev = cancel
	s.mu.Unlock()

	s.running.Store(true)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			cancelTimeout()
			cancel(nil)
			s.mu.Lock()
			if s.gen == localGen {
				s.cancelPrev = nil
				s.running.Store(false)
			}
			s.mu.Unlock()
		}()

		err := s.runTick(tickCtx)
		if errors.Is(context.Cause(tickCtx), errPreempted) {
			return
		}
		// Главный цикл может как раз ждать этот тик в wg.Wait после stopPrev
		select {
		case done <- err:
		case <-cancelCtx.Done():
		case <-parent.Done():
		}
	}()
}

func (s *Scheduler) runTick(ctx context.Context) error {
	paths, err := s.images.LatestImages()
	if err != nil {
		return fmt.Errorf("pick images: %w", err)
	}
	fresh := s.unseen(paths)
	if len(fresh) == 0 {
		return nil
	}

	start := time.Now()
	s.logger.Infow("Tick start", "images", len(fresh))

	var errs []error
	for _, res := range s.images.SolveFiles(ctx, fresh, s.mode) {
		if res.Err != nil {
			// Сломанную картинку повторно не решаем; после отмены тика решаем заново
			if ctx.Err() == nil {
				s.markSeen(res.Path)
			}
			errs = append(errs, fmt.Errorf("%s: %w", res.Path, res.Err))
			continue
		}
		s.markSeen(res.Path)
		s.output(res)
		s.announce(ctx, res.Answer)
	}

	s.logger.Infow("Tick done", "duration", time.Since(start).String(), "failed", len(errs))
	return errors.Join(errs...)
}

// announce проигрывает уведомление и озвучку. Ошибки здесь не прерывают тик.
func (s *Scheduler) announce(ctx context.Context, answer string) {
	if s.notifier != nil {
		_ = s.notifier.PlayAnswer(ctx)
	}
	if s.speech == nil || s.player == nil {
		return
	}
	audio := s.speech.GenerateSpeech(ctx, answer)
	if audio == nil {
		s.logger.Warnw("Озвучка недоступна")
		return
	}
	if err := s.player.PlayBytes(audio.MIMEType, audio.Data); err != nil {
		s.logger.Warnw("Не удалось воспроизвести озвучку", "mime", audio.MIMEType, "error", err)
	}
}

func (s *Scheduler) unseen(paths []string) []string {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		if mod, ok := s.seen[p]; ok && mod.Equal(fi.ModTime()) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Scheduler) markSeen(paths ...string) {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil {
			s.seen[p] = fi.ModTime()
		}
	}
}

func (s *Scheduler) stopPrev(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelPrev != nil {
		s.cancelPrev(cause)
		s.cancelPrev = nil
	}
}
