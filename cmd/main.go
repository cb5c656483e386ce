package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"scan-ocr/config"
	telegram "scan-ocr/internal/api"
	"scan-ocr/internal/container"
	"scan-ocr/internal/infrastructure/storage"
	"scan-ocr/internal/infrastructure/tesseract"
	"scan-ocr/internal/infrastructure/vision"
	"scan-ocr/internal/observability"
)

func main() {
	cfg, err := config.Load(os.Getenv("SCAN_OCR_CONFIG"))
	if err != nil {
		bootLog := observability.NewLogger(observability.LogConfig{Format: "console"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := observability.NewLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "scan-ocr-bot",
	})

	if cfg.TelegramToken == "" {
		log.Fatal().Msg("TELEGRAM_TOKEN is required")
	}

	engine := tesseract.NewEngine(tesseract.Config{
		BinaryPath:     cfg.TesseractPath,
		TessdataPrefix: cfg.TessdataPrefix,
	})
	if !engine.Available() {
		log.Warn().Str("engine", engine.Name()).Msg("tesseract is not available, recognition will fail")
	}

	// Создаём хранилище сессий
	sessionRepo := storage.NewMemorySessionRepository(cfg.DefaultLanguage())

	// Собираем сервисы приложения
	appContainer := container.New(sessionRepo, vision.NewPreprocessor(), engine, log)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("lang", cfg.Language).Msg("bot is running")
	if err := bot.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("bot error")
	}
}
