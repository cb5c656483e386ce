package shell

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	app "scan-ocr/internal/application"
	"scan-ocr/internal/domain/entity"
	"scan-ocr/internal/infrastructure/vision"
)

type stubRecognizer struct {
	text  string
	err   error
	calls int
}

func (s *stubRecognizer) Recognize(ctx context.Context, img image.Image, lang entity.Language) (string, error) {
	s.calls++
	return s.text, s.err
}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 50, 30))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func newTestShell(rec *stubRecognizer) (*Shell, *bytes.Buffer) {
	var out bytes.Buffer
	svc := app.NewOCRService(vision.NewPreprocessor(), rec, zerolog.Nop())
	return New(svc, entity.NewSession(0), NewUI(&out, nil, true), ""), &out
}

func TestShell_WarnsWithoutImage(t *testing.T) {
	rec := &stubRecognizer{text: "x"}
	sh, out := newTestShell(rec)
	ctx := context.Background()

	sh.Execute(ctx, "process")
	sh.Execute(ctx, "recognize")
	sh.Execute(ctx, "save out.txt")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, []string{
		"⚠ Сначала загрузите изображение!",
		"⚠ Сначала загрузите изображение!",
		"⚠ Нет текста для сохранения!",
	}, lines)
	require.Zero(t, rec.calls)
	require.False(t, sh.session.HasImage())
}

func TestShell_Session(t *testing.T) {
	dir := t.TempDir()
	imgPath := writePNG(t, dir, "scan.png")
	target := filepath.Join(dir, "result")

	rec := &stubRecognizer{text: "Привет\n"}
	sh, out := newTestShell(rec)

	script := strings.Join([]string{
		"load " + imgPath,
		"lang eng",
		"process",
		"recognize",
		"save " + target,
		"clear",
		"process",
		"quit",
		"recognize",
	}, "\n")
	require.NoError(t, sh.Run(context.Background(), strings.NewReader(script)))

	output := out.String()
	require.Contains(t, output, "✓ Изображение загружено: scan.png (50x30)")
	require.Contains(t, output, "✓ Язык распознавания: eng")
	require.Contains(t, output, "✓ Изображение обработано")
	require.Contains(t, output, "✓ Распознавание завершено!\nПривет\n")
	require.Contains(t, output, "✓ Текст успешно сохранён: "+target+".txt")
	require.True(t, strings.HasSuffix(output, "⚠ Сначала загрузите изображение!\n"))
	require.Equal(t, 1, rec.calls)

	data, err := os.ReadFile(target + ".txt")
	require.NoError(t, err)
	require.Equal(t, "Привет\n", string(data))
}

func TestShell_NothingFoundCannotBeSaved(t *testing.T) {
	dir := t.TempDir()
	sh, out := newTestShell(&stubRecognizer{text: "\n"})
	ctx := context.Background()

	sh.Execute(ctx, "load "+writePNG(t, dir, "scan.png"))
	sh.Execute(ctx, "recognize")
	require.Contains(t, out.String(), "⚠ Текст не распознан")

	out.Reset()
	sh.Execute(ctx, "save "+filepath.Join(dir, "out.txt"))
	require.Equal(t, "⚠ Нет текста для сохранения!\n", out.String())
}

func TestShell_Errors(t *testing.T) {
	dir := t.TempDir()
	sh, out := newTestShell(&stubRecognizer{err: errors.New("engine down")})
	ctx := context.Background()

	sh.Execute(ctx, "load "+filepath.Join(dir, "notes.gif"))
	require.Contains(t, out.String(), "✗ Не удалось загрузить изображение")

	sh.Execute(ctx, "load "+writePNG(t, dir, "scan.png"))
	out.Reset()
	sh.Execute(ctx, "recognize")
	require.Contains(t, out.String(), "✗ Ошибка распознавания")
	require.Contains(t, out.String(), "engine down")
}

func TestShell_LanguageAndStatus(t *testing.T) {
	sh, out := newTestShell(&stubRecognizer{})
	ctx := context.Background()

	sh.Execute(ctx, "lang")
	require.Contains(t, out.String(), "Язык распознавания: rus+eng")

	out.Reset()
	sh.Execute(ctx, "lang deu")
	require.Contains(t, out.String(), "⚠ Неподдерживаемый язык")
	require.Equal(t, entity.DefaultLanguage, sh.session.Language)

	out.Reset()
	sh.Execute(ctx, "status")
	require.Contains(t, out.String(), "Изображение не загружено")

	out.Reset()
	sh.Execute(ctx, "frobnicate")
	require.Contains(t, out.String(), "Неизвестная команда")
}

func TestDefaultTextPath(t *testing.T) {
	require.Equal(t, "scan.txt", defaultTextPath("scan.png"))
	require.Equal(t, "result.txt", defaultTextPath(""))
}

func TestShell_RunStopsOnCancelWhileWaitingForInput(t *testing.T) {
	sh, _ := newTestShell(&stubRecognizer{})

	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- sh.Run(ctx, in) }()

	cancel()
	select {
	case err := <-result:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
