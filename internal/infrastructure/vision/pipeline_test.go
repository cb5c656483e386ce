package vision

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/require"

	"scan-ocr/internal/domain/entity"
)

func requireBinary(t *testing.T, img *image.Gray) {
	t.Helper()
	for i, v := range img.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d has value %d", i, v)
		}
	}
}

func TestProcess_OutputIsBinary(t *testing.T) {
	p := NewPreprocessor()

	for _, src := range []image.Image{
		noiseImage(64, 48, 1),
		noiseImage(17, 9, 2),
		textImage(200, 100, "Hello OCR"),
	} {
		out, err := p.Process(context.Background(), src)
		require.NoError(t, err)
		require.Equal(t, src.Bounds().Dx(), out.Bounds().Dx())
		require.Equal(t, src.Bounds().Dy(), out.Bounds().Dy())
		requireBinary(t, out)
	}
}

func TestProcess_IdempotentAndLeavesOriginalIntact(t *testing.T) {
	p := NewPreprocessor()
	src := noiseImage(40, 30, 7)
	before := append([]uint8(nil), src.Pix...)

	first, err := p.Process(context.Background(), src)
	require.NoError(t, err)
	second, err := p.Process(context.Background(), src)
	require.NoError(t, err)

	require.Equal(t, first.Pix, second.Pix)
	require.Equal(t, before, src.Pix)
}

func TestProcess_UniformWhiteStaysWhite(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 32, 32))
	draw.Draw(src, src.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	out, err := NewPreprocessor().Process(context.Background(), src)
	require.NoError(t, err)
	for _, v := range out.Pix {
		require.Equal(t, uint8(255), v)
	}
}

func TestProcess_TextKeepsStrokes(t *testing.T) {
	out, err := NewPreprocessor().Process(context.Background(), textImage(200, 100, "HELLO"))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 200, 100), out.Bounds())

	black := 0
	for _, v := range out.Pix {
		if v == 0 {
			black++
		}
	}
	require.Positive(t, black)
	require.Less(t, black, len(out.Pix)/2)
}

func TestProcess_SubImageBounds(t *testing.T) {
	full := noiseImage(50, 50, 3)
	sub := full.SubImage(image.Rect(10, 20, 40, 45))

	out, err := NewPreprocessor().Process(context.Background(), sub)
	require.NoError(t, err)
	require.Equal(t, 30, out.Bounds().Dx())
	require.Equal(t, 25, out.Bounds().Dy())
	requireBinary(t, out)
}

func TestProcess_NilImage(t *testing.T) {
	_, err := NewPreprocessor().Process(context.Background(), nil)
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}
