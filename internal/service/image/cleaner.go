package image

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
)

var imageExts = []string{".jpg", ".jpeg", ".png"}

// IsImageFile проверяет расширение файла без учёта регистра.
func IsImageFile(name string) bool {
	return slices.Contains(imageExts, strings.ToLower(filepath.Ext(name)))
}

// Cleaner удаляет из папки источника картинки, которые уже не понадобятся.
type Cleaner struct {
	logger *zap.SugaredLogger
}

func NewCleaner(logger *zap.SugaredLogger) *Cleaner { return &Cleaner{logger: logger} }

// Clean удаляет картинки из dir с mtime старше ttl и возвращает их число.
// При debug, нулевом ttl или пустой dir файлы не трогаются.
func (c *Cleaner) Clean(dir string, ttl time.Duration, debug bool) int {
	switch {
	case debug:
		c.logger.Infow("DEBUG: очистка картинок пропущена", "dir", dir, "ttl", ttl.String())
		return 0
	case ttl <= 0, dir == "":
		return 0
	}

	stale, err := c.expired(dir, time.Now().Add(-ttl))
	if err != nil {
		c.logger.Warnw("Не удалось прочитать папку для очистки", "dir", dir, "error", err)
		return 0
	}

	removed := 0
	for _, path := range stale {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warnw("Не удалось удалить картинку", "path", path, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		c.logger.Infow("Старые картинки удалены", "dir", dir, "removed", removed, "ttl", ttl.String())
	}
	return removed
}

// expired картинки верхнего уровня dir, изменённые до deadline. Отсутствующая папка не ошибка.
func (c *Cleaner) expired(dir string, deadline time.Time) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !IsImageFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			c.logger.Debugw("Файл пропал во время очистки", "name", e.Name(), "error", err)
			continue
		}
		if info.ModTime().Before(deadline) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}
