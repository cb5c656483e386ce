package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"scan-ocr/internal/domain/entity"
)

// Форматы, которые принимает загрузчик. Остальные отклоняются, даже если декодер зарегистрирован.
var supportedFormats = map[string]bool{
	"png":  true,
	"jpeg": true,
	"bmp":  true,
	"tiff": true,
}

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsSupportedFile проверяет расширение файла изображения.
func IsSupportedFile(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Decode превращает байты файла в изображение и возвращает имя формата.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty file", entity.ErrUnsupportedFormat)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", entity.ErrUnsupportedFormat, err)
	}
	if !supportedFormats[format] {
		return nil, "", fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", format, err)
	}
	if img.Bounds().Empty() {
		return nil, "", fmt.Errorf("decode %s: empty image", format)
	}

	return img, format, nil
}

// EncodePNG кодирует изображение в PNG без потерь.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, entity.ErrInvalidInput
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}

// ToColor дублирует единственный канал в три для вывода на экран.
func ToColor(gray *image.Gray) *image.RGBA {
	b := gray.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := gray.GrayAt(x, y).Y
			dst.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return dst
}
