package entity

import (
	"fmt"
	"strings"
)

// Language код языка распознавания в формате tesseract
type Language string

const (
	LanguageRussian        Language = "rus"     // русский
	LanguageEnglish        Language = "eng"     // английский
	LanguageRussianEnglish Language = "rus+eng" // русский и английский одновременно
)

// DefaultLanguage язык, с которым стартует новая сессия
const DefaultLanguage = LanguageRussianEnglish

// Languages возвращает поддерживаемые языки в порядке отображения
func Languages() []Language {
	return []Language{LanguageRussian, LanguageEnglish, LanguageRussianEnglish}
}

// ParseLanguage проверяет, что код входит в список поддерживаемых
func ParseLanguage(code string) (Language, error) {
	lang := Language(strings.TrimSpace(code))
	for _, l := range Languages() {
		if l == lang {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
}

// Codes разбивает составной код на отдельные языки ("rus+eng" -> rus, eng)
func (l Language) Codes() []string {
	return strings.Split(string(l), "+")
}

func (l Language) String() string {
	return string(l)
}
