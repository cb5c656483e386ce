//go:build gosseract
// +build gosseract

package tesseract

import (
	"context"
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"

	"scan-ocr/internal/domain/entity"
	"scan-ocr/internal/domain/port"
	"scan-ocr/internal/infrastructure/vision"
)

// Engine распознаёт текст через libtesseract. Клиент создаётся на каждый вызов.
type Engine struct {
	cfg           Config
	clientFactory func() *gosseract.Client
}

// NewEngine создаёт движок с заданными настройками.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract-lib" }

// Available всегда true: библиотека слинкована в бинарник.
func (e *Engine) Available() bool { return true }

// Recognize распознаёт текст на изображении и возвращает его без изменений.
// OEM не задаётся явно: клиент инициализируется с OEM_DEFAULT, то есть --oem 3.
func (e *Engine) Recognize(ctx context.Context, img image.Image, lang entity.Language) (string, error) {
	_ = ctx

	data, err := vision.EncodePNG(img)
	if err != nil {
		return "", err
	}

	c := e.clientFactory()
	defer c.Close()

	if e.cfg.TessdataPrefix != "" {
		c.TessdataPrefix = e.cfg.TessdataPrefix
	}
	if err := c.SetLanguage(lang.Codes()...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if err := c.SetPageSegMode(gosseract.PageSegMode(PageSegMode)); err != nil {
		return "", fmt.Errorf("set page seg mode: %w", err)
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}

	return text, nil
}

// Проверка реализации интерфейса
var _ port.Recognizer = (*Engine)(nil)
