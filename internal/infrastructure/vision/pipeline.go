//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"
	"image"
	"math"

	"github.com/up-zero/gotool/imageutil"

	"scan-ocr/internal/domain/entity"
	"scan-ocr/internal/domain/port"
)

// Ядро гауссова размытия 5×5 при автоматической сигме (как в OpenCV), сумма 16.
var binomial5 = [5]int{1, 4, 6, 4, 1}

// Preprocessor конвейер предобработки на чистом Go, без OpenCV.
type Preprocessor struct{}

// NewPreprocessor создаёт конвейер предобработки.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// Process переводит изображение в оттенки серого, размывает, бинаризует
// адаптивным порогом и чистит морфологией. Исходное изображение не меняется.
func (p *Preprocessor) Process(ctx context.Context, img image.Image) (*image.Gray, error) {
	if img == nil {
		return nil, entity.ErrInvalidInput
	}
	if img.Bounds().Empty() {
		return nil, errors.New("empty image")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gray := grayscale(img)
	blurred := gaussianBlur5(gray)
	binary := adaptiveThreshold(blurred, thresholdBlockSize, thresholdOffset)

	// Закрытие заполняет разрывы в штрихах, открытие убирает мелкие точки.
	return morphOpen(morphClose(binary)), nil
}

// grayscale возвращает копию в оттенках серого с началом координат в (0,0) и Stride == ширине.
func grayscale(img image.Image) *image.Gray {
	g := imageutil.Grayscale(img)
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		off := g.PixOffset(b.Min.X, b.Min.Y+y)
		copy(dst.Pix[y*w:(y+1)*w], g.Pix[off:off+w])
	}
	return dst
}

func gaussianBlur5(src *image.Gray) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	r := len(binomial5) / 2

	tmp := make([]int, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			s := 0
			for k := -r; k <= r; k++ {
				s += binomial5[k+r] * int(row[reflect101(x+k, w)])
			}
			tmp[y*w+x] = s
		}
	}

	dst := image.NewGray(src.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := 0
			for k := -r; k <= r; k++ {
				s += binomial5[k+r] * tmp[reflect101(y+k, h)*w+x]
			}
			// 16*16 = 256, округляем к ближайшему
			dst.Pix[y*w+x] = uint8((s + 128) >> 8)
		}
	}
	return dst
}

// adaptiveThreshold сравнивает пиксель с гауссовым средним окрестности blockSize×blockSize
// за вычетом offset: выше порога белый, иначе чёрный.
func adaptiveThreshold(src *image.Gray, blockSize int, offset float64) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	kernel := gaussianKernel(blockSize)
	r := blockSize / 2

	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			var s float64
			for k := -r; k <= r; k++ {
				s += kernel[k+r] * float64(row[clamp(x+k, w)])
			}
			tmp[y*w+x] = s
		}
	}

	delta := int(math.Ceil(offset))
	dst := image.NewGray(src.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var s float64
			for k := -r; k <= r; k++ {
				s += kernel[k+r] * tmp[clamp(y+k, h)*w+x]
			}
			mean := int(math.Round(s))
			if mean > 255 {
				mean = 255
			}

			i := y*w + x
			if int(src.Pix[i])-mean > -delta {
				dst.Pix[i] = thresholdMaxValue
			}
		}
	}
	return dst
}

// gaussianKernel нормированное одномерное ядро; сигма выводится из размера как в OpenCV.
func gaussianKernel(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	r := size / 2

	kernel := make([]float64, size)
	var sum float64
	for i := range kernel {
		d := float64(i - r)
		kernel[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// morphClose замыкание прямоугольным элементом morphKernelSize×morphKernelSize с якорем (1,1), как в OpenCV.
func morphClose(src *image.Gray) *image.Gray {
	se := imageutil.NewRectKernel(morphKernelSize, morphKernelSize)
	return asGray(imageutil.MorphologyClose(src, se))
}

// morphOpen размыкание тем же элементом.
func morphOpen(src *image.Gray) *image.Gray {
	se := imageutil.NewRectKernel(morphKernelSize, morphKernelSize)
	return asGray(imageutil.MorphologyOpen(src, se))
}

func asGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	return grayscale(img)
}

// reflect101 отражает индекс относительно границы без повторения крайнего пикселя: dcb|abcd|cba.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Проверка реализации интерфейса
var _ port.Preprocessor = (*Preprocessor)(nil)
