package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"scan-ocr/internal/domain/entity"
)

func TestDecode_SupportedFormats(t *testing.T) {
	src := textImage(40, 20, "a")

	encoders := map[string]func(*bytes.Buffer) error{
		"png": func(b *bytes.Buffer) error {
			data, err := EncodePNG(src)
			b.Write(data)
			return err
		},
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"tiff": func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) },
	}

	for format, encode := range encoders {
		var buf bytes.Buffer
		require.NoError(t, encode(&buf), format)

		img, got, err := Decode(buf.Bytes())
		require.NoError(t, err, format)
		require.Equal(t, format, got)
		require.Equal(t, src.Bounds(), img.Bounds())
	}
}

func TestDecode_RejectsOtherFormats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White}), nil))

	_, _, err := Decode(buf.Bytes())
	require.ErrorIs(t, err, entity.ErrUnsupportedFormat)

	_, _, err = Decode([]byte("definitely not an image"))
	require.ErrorIs(t, err, entity.ErrUnsupportedFormat)

	_, _, err = Decode(nil)
	require.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}

func TestIsSupportedFile(t *testing.T) {
	for _, name := range []string{"a.png", "b.JPG", "c.jpeg", "d.bmp", "e.tif", "f.TIFF"} {
		require.True(t, IsSupportedFile(name), name)
	}
	for _, name := range []string{"a.gif", "b.txt", "noext", "c.webp"} {
		require.False(t, IsSupportedFile(name), name)
	}
}

func TestToColor(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 1))
	g.Pix[0], g.Pix[1] = 0, 255

	c := ToColor(g)
	r, gg, b, a := c.At(1, 0).RGBA()
	require.Equal(t, uint32(0xffff), r)
	require.Equal(t, r, gg)
	require.Equal(t, r, b)
	require.Equal(t, uint32(0xffff), a)

	r, _, _, _ = c.At(0, 0).RGBA()
	require.Zero(t, r)
}

func TestEncodePNG_Nil(t *testing.T) {
	_, err := EncodePNG(nil)
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}
