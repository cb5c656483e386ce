// Command scanocr распознаёт текст на отсканированных изображениях из терминала.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"scan-ocr/config"
	"scan-ocr/internal/api/shell"
	app "scan-ocr/internal/application"
	"scan-ocr/internal/domain/entity"
	"scan-ocr/internal/infrastructure/tesseract"
	"scan-ocr/internal/infrastructure/vision"
	"scan-ocr/internal/observability"
)

var (
	// Global flags
	cfgFile   string
	language  string
	logLevel  string
	logFormat string
	noColor   bool

	cfg    *config.Config
	logger zerolog.Logger
)

// cliLogLevel уровень журнала CLI, если ни файл, ни окружение, ни флаг его не задали.
const cliLogLevel = "warn"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scanocr",
		Short: "Preprocess scanned images and extract text with Tesseract",
		Long: `scanocr loads a scanned image (PNG, JPEG, BMP or TIFF), optionally runs a fixed
preprocessing pipeline (grayscale, Gaussian blur, adaptive threshold, morphological
close/open) and passes the result to Tesseract (--oem 3 --psm 6).

Languages: rus, eng, rus+eng.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(cmd)
			if err != nil {
				return err
			}

			logger = observability.NewLogger(observability.LogConfig{
				Level:       cfg.LogLevel,
				Format:      cfg.LogFormat,
				ServiceName: "scanocr",
			})
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (YAML)")
	root.PersistentFlags().StringVarP(&language, "lang", "l", string(entity.DefaultLanguage), "recognition language: rus, eng, rus+eng")
	root.PersistentFlags().StringVar(&logLevel, "log-level", cliLogLevel, "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format: console or json")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(newRunCmd())
	root.AddCommand(newPreprocessCmd())
	root.AddCommand(newShellCmd())
	root.AddCommand(newLangsCmd())

	return root
}

// loadConfig читает файл и окружение, накладывает явно заданные флаги и только потом проверяет.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	base := config.DefaultConfig()
	base.LogLevel = cliLogLevel

	c, err := config.Read(cfgFile, base)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		c.Language = language
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		c.LogFormat = logFormat
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// После первого сигнала возвращаем обработку по умолчанию: повторный Ctrl+C завершает процесс.
	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newOCRService собирает сервис с движком из настроек.
func newOCRService() (*app.OCRService, *tesseract.Engine) {
	engine := tesseract.NewEngine(tesseract.Config{
		BinaryPath:     cfg.TesseractPath,
		TessdataPrefix: cfg.TessdataPrefix,
	})
	return app.NewOCRService(vision.NewPreprocessor(), engine, logger), engine
}

// newSession создаёт сессию терминала с языком из настроек.
func newSession() *entity.Session {
	session := entity.NewSession(0)
	session.SetLanguage(cfg.DefaultLanguage())
	return session
}

func newUI() *shell.UI {
	return shell.NewUI(os.Stdout, os.Stderr, noColor)
}
