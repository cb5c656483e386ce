//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"scan-ocr/internal/domain/entity"
	"scan-ocr/internal/domain/port"
)

// Preprocessor конвейер предобработки на OpenCV.
type Preprocessor struct{}

// NewPreprocessor создаёт конвейер предобработки.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// Process переводит изображение в оттенки серого, размывает, бинаризует
// адаптивным порогом и чистит морфологией. Исходное изображение не меняется.
func (p *Preprocessor) Process(ctx context.Context, img image.Image) (*image.Gray, error) {
	_ = ctx
	if img == nil {
		return nil, entity.ErrInvalidInput
	}

	// ImageToMatRGB раскладывает каналы в порядке BGR.
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer src.Close()

	if src.Empty() {
		return nil, errors.New("empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(gray, &blur, image.Pt(blurKernelSize, blurKernelSize), 0, 0, gocv.BorderDefault)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.AdaptiveThreshold(blur, &thresh, thresholdMaxValue, gocv.AdaptiveThresholdGaussian,
		gocv.ThresholdBinary, thresholdBlockSize, thresholdOffset)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(morphKernelSize, morphKernelSize))
	defer kernel.Close()

	// Закрытие заполняет разрывы в штрихах, открытие убирает мелкие точки.
	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(thresh, &closed, gocv.MorphClose, kernel)

	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(closed, &opened, gocv.MorphOpen, kernel)

	return matToGray(opened)
}

// matToGray копирует одноканальную матрицу в image.Gray.
func matToGray(mat gocv.Mat) (*image.Gray, error) {
	if mat.Empty() {
		return nil, errors.New("empty result")
	}
	if mat.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("unexpected mat type %v", mat.Type())
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("mat to image: %w", err)
	}

	gray, ok := img.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("unexpected image type %T", img)
	}
	return gray, nil
}

// Проверка реализации интерфейса
var _ port.Preprocessor = (*Preprocessor)(nil)
