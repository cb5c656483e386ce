package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"scan-ocr/internal/domain/entity"
)

// fakeRecognizer подменяет внешний движок в тестах.
type fakeRecognizer struct {
	text  string
	err   error
	calls int
	image image.Image
	lang  entity.Language
}

func (f *fakeRecognizer) Recognize(ctx context.Context, img image.Image, lang entity.Language) (string, error) {
	f.calls++
	f.image = img
	f.lang = lang
	return f.text, f.err
}

type failingPreprocessor struct{}

func (failingPreprocessor) Process(ctx context.Context, img image.Image) (*image.Gray, error) {
	return nil, errors.New("malformed buffer")
}

// textPNG рисует чёрный текст на белом фоне и кодирует в PNG.
func textPNG(t *testing.T, w, h int, text string) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: img, Src: image.Black, Face: basicfont.Face7x13, Dot: fixed.P(10, h/2)}
	d.DrawString(text)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
