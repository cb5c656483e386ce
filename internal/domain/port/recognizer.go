package port

import (
	"context"
	"image"

	"scan-ocr/internal/domain/entity"
)

// Recognizer интерфейс внешнего движка распознавания текста
type Recognizer interface {
	// Recognize возвращает текст как есть; пустая строка означает, что текста не найдено
	Recognize(ctx context.Context, img image.Image, lang entity.Language) (string, error)
}
