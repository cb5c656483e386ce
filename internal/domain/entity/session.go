package entity

import (
	"image"

	"github.com/google/uuid"
)

// Session состояние одного рабочего сеанса: одно изображение и один результат
type Session struct {
	ID           string      // идентификатор сессии для логов
	ChatID       int64       // Telegram Chat ID, 0 для терминала
	SourceName   string      // имя загруженного файла
	Original     image.Image // изображение в том виде, в каком его загрузили
	Processed    image.Image // изображение, которое уйдёт в OCR
	Preprocessed bool        // Processed получено конвейером, а не скопировано
	Result       Recognition // последний результат распознавания
	Language     Language    // выбранный язык распознавания
}

// NewSession создаёт пустую сессию с языком по умолчанию
func NewSession(chatID int64) *Session {
	return &Session{
		ID:       uuid.NewString(),
		ChatID:   chatID,
		Language: DefaultLanguage,
	}
}

// HasImage сообщает, загружено ли изображение
func (s *Session) HasImage() bool {
	return s.Original != nil
}

// Load заменяет изображение сессии; обработанная копия совпадает с оригиналом
func (s *Session) Load(name string, img image.Image) {
	s.SourceName = name
	s.Original = img
	s.Processed = img
	s.Preprocessed = false
	s.Result = Recognition{}
}

// SetProcessed сохраняет результат конвейера предобработки
func (s *Session) SetProcessed(img image.Image) {
	s.Processed = img
	s.Preprocessed = true
	s.Result = Recognition{}
}

// SetResult сохраняет результат распознавания
func (s *Session) SetResult(r Recognition) {
	s.Result = r
}

// SetLanguage меняет язык распознавания
func (s *Session) SetLanguage(lang Language) {
	s.Language = lang
}

// Clear сбрасывает изображение, обработанную копию и текст. Язык сохраняется.
func (s *Session) Clear() {
	s.SourceName = ""
	s.Original = nil
	s.Processed = nil
	s.Preprocessed = false
	s.Result = Recognition{}
}
