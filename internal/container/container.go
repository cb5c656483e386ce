package container

import (
	"github.com/rs/zerolog"

	app "scan-ocr/internal/application"
	"scan-ocr/internal/domain/port"
)

type Container struct {
	SessionService *app.SessionService
	OCRService     *app.OCRService
}

func New(sessionRepo port.SessionRepository, preprocessor port.Preprocessor, recognizer port.Recognizer, log zerolog.Logger) *Container {
	sessionService := app.NewSessionService(sessionRepo)
	ocrService := app.NewOCRService(preprocessor, recognizer, log)

	return &Container{
		SessionService: sessionService,
		OCRService:     ocrService,
	}
}
