package solver

import (
	"fmt"
	"strings"
)

// Mode режим ответа: только результат или результат с короткой расшифровкой.
type Mode int

const (
	// ModeExplained результат и не больше двух коротких фраз объяснения. Нулевое значение, режим по умолчанию.
	ModeExplained Mode = iota
	// ModeSimple только результат, без объяснений.
	ModeSimple
)

func (m Mode) String() string {
	if m == ModeSimple {
		return "SIMPLE"
	}
	return "EXPLAINED"
}

// ParseMode разбирает SIMPLE|EXPLAINED без учёта регистра. Пустая строка даёт режим по умолчанию.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "EXPLAINED":
		return ModeExplained, nil
	case "SIMPLE":
		return ModeSimple, nil
	default:
		return ModeExplained, fmt.Errorf("unknown response mode %q: want SIMPLE or EXPLAINED", s)
	}
}
