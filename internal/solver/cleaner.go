package solver

import "strings"

var (
	markerRemover = strings.NewReplacer("$", "", "*", "", "_", "", "#", "")
	escapeRemover = strings.NewReplacer(`\[`, "", `\]`, "", `\(`, "", `\)`, "")
)

// Clean убирает из ответа модели разметку: символы $ * _ # и экранированные скобки \[ \] \( \).
// Обрезка пробелов идёт последней, потому что удаление маркеров может открыть новые пробелы по краям.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	out := markerRemover.Replace(text)
	// `\\[[` после одного прохода снова даёт `\[`, поэтому повторяем до неподвижной точки.
	for {
		next := escapeRemover.Replace(out)
		if next == out {
			break
		}
		out = next
	}
	return strings.TrimSpace(out)
}
