package tesseract

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"scan-ocr/internal/domain/entity"
	"scan-ocr/internal/infrastructure/vision"
)

// ensureEnglishInstalled пропускает тест, если tesseract или eng.traineddata не установлены.
func ensureEnglishInstalled(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(DefaultBinary); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
	out, err := exec.Command(DefaultBinary, "--list-langs").CombinedOutput()
	if err != nil || !strings.Contains(string(out), "\neng") {
		t.Skip("tesseract eng language data not installed")
	}
}

func TestEngine_RecognizesSyntheticText(t *testing.T) {
	ensureEnglishInstalled(t)

	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: img, Src: image.Black, Face: basicfont.Face7x13, Dot: fixed.P(10, 55)}
	d.DrawString("HELLO WORLD")

	processed, err := vision.NewPreprocessor().Process(context.Background(), img)
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), processed.Bounds())

	text, err := NewEngine(Config{}).Recognize(context.Background(), processed, entity.LanguageEnglish)
	require.NoError(t, err)
	require.NotEmpty(t, strings.TrimSpace(text))
}
