package port

import (
	"context"
	"image"
)

// Preprocessor интерфейс конвейера предобработки изображения
type Preprocessor interface {
	// Process строит бинарное изображение для OCR, не изменяя исходное
	Process(ctx context.Context, img image.Image) (*image.Gray, error)
}
