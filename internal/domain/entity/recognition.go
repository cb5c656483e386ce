package entity

import "strings"

// RecognitionStatus состояние буфера с результатом распознавания.
type RecognitionStatus int

const (
	StatusNone         RecognitionStatus = iota // распознавание ещё не запускалось
	StatusRecognized                            // движок вернул текст
	StatusNothingFound                          // движок отработал, но текста нет
)

func (s RecognitionStatus) String() string {
	switch s {
	case StatusRecognized:
		return "recognized"
	case StatusNothingFound:
		return "nothing_found"
	default:
		return "none"
	}
}

// Recognition хранит итог распознавания.
type Recognition struct {
	Text     string            // текст как его вернул движок
	Language Language          // язык, с которым запускали движок
	Status   RecognitionStatus // явный флаг вместо разбора текста
}

// Saveable сообщает, есть ли в результате настоящий текст для сохранения.
func (r Recognition) Saveable() bool {
	return r.Status == StatusRecognized && strings.TrimSpace(r.Text) != ""
}
