//go:build !gosseract
// +build !gosseract

package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"
	"strconv"
	"strings"

	"scan-ocr/internal/domain/entity"
	"scan-ocr/internal/domain/port"
	"scan-ocr/internal/infrastructure/vision"
)

// Engine вызывает бинарник tesseract, передавая PNG через stdin.
type Engine struct {
	cfg Config
}

// NewEngine создаёт движок с заданными настройками.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Name() string { return "tesseract-cli" }

// Available сообщает, найден ли бинарник.
func (e *Engine) Available() bool {
	_, err := exec.LookPath(e.cfg.binary())
	return err == nil
}

// Recognize распознаёт текст на изображении и возвращает его без изменений.
func (e *Engine) Recognize(ctx context.Context, img image.Image, lang entity.Language) (string, error) {
	data, err := vision.EncodePNG(img)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.cfg.binary(), e.args(lang)...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("run %s: %w: %s", e.cfg.binary(), err, msg)
		}
		return "", fmt.Errorf("run %s: %w", e.cfg.binary(), err)
	}

	return stdout.String(), nil
}

func (e *Engine) args(lang entity.Language) []string {
	args := []string{"stdin", "stdout"}
	if e.cfg.TessdataPrefix != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataPrefix)
	}
	return append(args,
		"-l", lang.String(),
		"--oem", strconv.Itoa(EngineMode),
		"--psm", strconv.Itoa(PageSegMode),
	)
}

// Проверка реализации интерфейса
var _ port.Recognizer = (*Engine)(nil)
