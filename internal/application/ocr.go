package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"scan-ocr/internal/domain/entity"
	"scan-ocr/internal/domain/port"
	"scan-ocr/internal/infrastructure/vision"
)

// TextExtension расширение файла с результатом по умолчанию.
const TextExtension = ".txt"

// OCRService выполняет операции сессии: загрузку, предобработку, распознавание,
// сохранение и очистку. Каждая операция синхронная и либо завершается целиком,
// либо оставляет сессию без изменений.
type OCRService struct {
	preprocessor port.Preprocessor
	recognizer   port.Recognizer
	log          zerolog.Logger
}

// NewOCRService создаёт сервис распознавания.
func NewOCRService(preprocessor port.Preprocessor, recognizer port.Recognizer, log zerolog.Logger) *OCRService {
	return &OCRService{
		preprocessor: preprocessor,
		recognizer:   recognizer,
		log:          log,
	}
}

// LoadFile читает изображение с диска и загружает его в сессию.
func (s *OCRService) LoadFile(ctx context.Context, session *entity.Session, path string) error {
	if !vision.IsSupportedFile(path) {
		return entity.LoadError("unsupported file", fmt.Errorf("%w: %q", entity.ErrUnsupportedFormat, filepath.Ext(path)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return entity.LoadError("read file", err)
	}

	return s.Load(ctx, session, filepath.Base(path), data)
}

// Load декодирует изображение и заменяет им изображение сессии.
func (s *OCRService) Load(ctx context.Context, session *entity.Session, name string, data []byte) error {
	_ = ctx

	img, format, err := vision.Decode(data)
	if err != nil {
		return entity.LoadError("decode image", err)
	}

	session.Load(name, img)

	s.log.Info().
		Str("session", session.ID).
		Str("op", "load").
		Str("name", name).
		Str("format", format).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Msg("image loaded")

	return nil
}

// Preprocess прогоняет оригинал через конвейер. Результат всегда считается
// заново от оригинала, поэтому повторный вызов даёт то же изображение.
func (s *OCRService) Preprocess(ctx context.Context, session *entity.Session) (*image.Gray, error) {
	if !session.HasImage() {
		return nil, entity.ErrNoImage
	}

	start := time.Now()
	processed, err := s.preprocessor.Process(ctx, session.Original)
	if err != nil {
		s.log.Error().Err(err).Str("session", session.ID).Str("op", "preprocess").Msg("preprocessing failed")
		return nil, entity.ProcessingError("preprocess image", err)
	}

	session.SetProcessed(processed)

	s.log.Info().
		Str("session", session.ID).
		Str("op", "preprocess").
		Dur("elapsed", time.Since(start)).
		Msg("image preprocessed")

	return processed, nil
}

// Recognize передаёт текущее изображение сессии во внешний движок.
// Пустой ответ движка не ошибка: результат получает статус StatusNothingFound.
func (s *OCRService) Recognize(ctx context.Context, session *entity.Session) (entity.Recognition, error) {
	if !session.HasImage() || session.Processed == nil {
		return entity.Recognition{}, entity.ErrNoImage
	}

	start := time.Now()
	text, err := s.recognizer.Recognize(ctx, session.Processed, session.Language)
	if err != nil {
		s.log.Error().Err(err).Str("session", session.ID).Str("op", "recognize").Msg("recognition failed")
		return entity.Recognition{}, entity.RecognitionError("recognize text", err)
	}

	result := entity.Recognition{
		Text:     text,
		Language: session.Language,
		Status:   entity.StatusRecognized,
	}
	if strings.TrimSpace(text) == "" {
		result.Status = entity.StatusNothingFound
	}
	session.SetResult(result)

	s.log.Info().
		Str("session", session.ID).
		Str("op", "recognize").
		Str("lang", session.Language.String()).
		Bool("preprocessed", session.Preprocessed).
		Stringer("status", result.Status).
		Int("chars", len([]rune(text))).
		Dur("elapsed", time.Since(start)).
		Msg("text recognized")

	return result, nil
}

// Export возвращает распознанный текст в UTF-8 для сохранения или отправки.
func (s *OCRService) Export(session *entity.Session) ([]byte, error) {
	if !session.Result.Saveable() {
		return nil, entity.ErrNothingToSave
	}
	return []byte(session.Result.Text), nil
}

// Save записывает распознанный текст в файл и возвращает итоговый путь.
// Если у пути нет расширения, добавляется .txt.
func (s *OCRService) Save(ctx context.Context, session *entity.Session, path string) (string, error) {
	_ = ctx

	data, err := s.Export(session)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(path) == "" {
		return "", entity.SaveError("write file", errors.New("path is empty"))
	}
	path = WithTextExtension(path)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", entity.SaveError("write file", err)
	}

	s.log.Info().
		Str("session", session.ID).
		Str("op", "save").
		Str("path", path).
		Int("bytes", len(data)).
		Msg("text saved")

	return path, nil
}

// Clear сбрасывает изображение, обработанную копию и текст сессии.
func (s *OCRService) Clear(ctx context.Context, session *entity.Session) {
	_ = ctx
	session.Clear()
	s.log.Info().Str("session", session.ID).Str("op", "clear").Msg("session cleared")
}

// WithTextExtension добавляет .txt к пути без расширения.
func WithTextExtension(path string) string {
	if filepath.Ext(path) == "" {
		return path + TextExtension
	}
	return path
}
