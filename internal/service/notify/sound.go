package notify

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	ttsplayer "SolverClient/internal/service/tts/player"

	"go.uber.org/zap"
)

// SoundNotifier проигрывает короткий звук, когда готов ответ.
type SoundNotifier struct {
	logger *zap.SugaredLogger
	path   string
	ply    ttsplayer.Player
}

// NewSoundNotifier создаёт нотификатор. Относительный путь сначала ищется рядом с бинарём,
// затем от текущей рабочей директории.
func NewSoundNotifier(logger *zap.SugaredLogger, path string, ply ttsplayer.Player) *SoundNotifier {
	if ply == nil {
		ply = ttsplayer.New()
	}
	return &SoundNotifier{
		logger: logger,
		path:   resolve(path),
		ply:    ply,
	}
}

func resolve(path string) string {
	path = filepath.FromSlash(strings.TrimSpace(path))
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if exe, err := os.Executable(); err == nil {
		cand := filepath.Join(filepath.Dir(exe), path)
		if _, statErr := os.Stat(cand); statErr == nil {
			return cand
		}
	}
	return path
}

// PlayAnswer проигрывает звук уведомления о готовом ответе. Ошибки логируются и возвращаются,
// чтобы вызывающий мог их проигнорировать.
func (n *SoundNotifier) PlayAnswer(ctx context.Context) error {
	if err := context.Cause(ctx); err != nil {
		return err
	}

	f, err := os.Open(n.path)
	if err != nil {
		n.logger.Warnw("Не удалось открыть звуковой файл уведомления", "path", n.path, "error", err)
		return err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(n.path), "."))
	if ext == "" {
		ext = ttsplayer.FormatMP3 // по умолчанию
	}
	defer f.Close()
	if err := n.ply.Play(ext, f); err != nil {
		n.logger.Warnw("Не удалось воспроизвести звуковое уведомление", "path", n.path, "error", err)
		return err
	}
	return context.Cause(ctx)
}
