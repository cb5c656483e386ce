// Package tesseract запускает внешний движок распознавания Tesseract.
//
// По умолчанию движок вызывается как отдельный процесс (бинарник tesseract).
// Сборка с тегом gosseract линкует libtesseract через github.com/otiai10/gosseract/v2:
//
//	go build -tags gosseract ./...
package tesseract

// Режимы движка фиксированы: LSTM по умолчанию и один однородный блок текста.
const (
	EngineMode  = 3 // --oem 3
	PageSegMode = 6 // --psm 6
)

// DefaultBinary имя исполняемого файла, который ищется в PATH.
const DefaultBinary = "tesseract"

// Config настройки запуска движка.
type Config struct {
	BinaryPath     string // путь к tesseract; пусто: искать в PATH
	TessdataPrefix string // каталог с *.traineddata; пусто: по умолчанию движка
}

func (c Config) binary() string {
	if c.BinaryPath != "" {
		return c.BinaryPath
	}
	return DefaultBinary
}
