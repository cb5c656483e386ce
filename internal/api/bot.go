package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"scan-ocr/internal/container"
	"scan-ocr/internal/domain/entity"
	"scan-ocr/internal/infrastructure/vision"
)

const (
	msgStart = `👋 Привет! Я распознаю текст на отсканированных изображениях.

📸 Отправьте изображение (PNG, JPEG, BMP или TIFF) как фото или файл.

📋 Команды:
/process — предобработать изображение
/recognize — распознать текст
/lang — язык распознавания (rus, eng, rus+eng)
/save — получить текст файлом
/clear — очистить всё
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте изображение с текстом
2️⃣ При необходимости отправьте /process: бот переведёт изображение в ч/б и уберёт шум
3️⃣ Отправьте /recognize и получите текст
4️⃣ /save пришлёт результат файлом .txt

🔄 /start начинает заново: сбрасывает изображение, текст и язык.

💡 Файлом изображение приходит без сжатия, так распознавание точнее.`

	msgLoaded         = "✓ Изображение загружено. Отправьте /recognize для распознавания или /process для предобработки."
	msgProcessed      = "✓ Изображение обработано. Теперь можно распознать текст: /recognize"
	msgRecognizing    = "⏳ Распознавание текста..."
	msgRecognized     = "✓ Распознавание завершено!"
	msgNoImage        = "⚠️ Сначала загрузите изображение!"
	msgNothingToSave  = "⚠️ Нет текста для сохранения!"
	msgCleared        = "Все очищено. Загрузите новое изображение."
	msgSendImage      = "📸 Отправьте изображение (PNG, JPEG, BMP или TIFF) как фото или файл."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgSavedCaption   = "💾 Распознанный текст"
	msgNothingFound   = `⚠️ Текст не распознан. Попробуйте:
1. Обработать изображение (/process)
2. Использовать более качественное изображение
3. Проверить язык распознавания (/lang)`

	msgLanguage            = "Язык распознавания: %s\nДоступные: %s. Пример: /lang eng"
	msgLanguageSet         = "✓ Язык распознавания: %s"
	msgUnsupportedLanguage = "⚠️ Неподдерживаемый язык. Доступные: %s"
	msgLoadError           = "❌ Не удалось загрузить изображение:\n%v"
	msgProcessingError     = "❌ Ошибка при обработке:\n%v"
	msgRecognitionError    = "❌ Ошибка распознавания:\n%v"
	msgSaveError           = "❌ Не удалось сохранить файл:\n%v"
	msgInternalError       = "❌ Внутренняя ошибка. Попробуйте ещё раз."
)

// Ограничение Telegram на длину сообщения с запасом.
const maxMessageRunes = 4000

// botAPI часть tgbotapi.BotAPI, которой пользуется бот
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Bot представляет Telegram-бота
type Bot struct {
	api  botAPI
	app  *container.Container
	http *http.Client
	log  zerolog.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, app *container.Container, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info().Str("account", api.Self.UserName).Msg("authorized")

	return newBot(api, app, log), nil
}

func newBot(api botAPI, app *container.Container, log zerolog.Logger) *Bot {
	return &Bot{
		api:  api,
		app:  app,
		http: http.DefaultClient,
		log:  log,
	}
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}

			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	session, err := b.app.SessionService.Get(ctx, msg.Chat.ID)
	if err != nil {
		b.log.Error().Err(err).Int64("chat", msg.Chat.ID).Msg("get session")
		b.sendMessage(msg.Chat.ID, msgInternalError)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, session)
		return
	}

	// Обработка фото и изображений, присланных файлом
	if fileID, name, ok := imageFile(msg); ok {
		b.handleImage(ctx, msg, session, fileID, name)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendImage)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, session *entity.Session) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		// Начинаем с чистого листа: забываем изображение, текст и выбранный язык
		if err := b.app.SessionService.Reset(ctx, chatID); err != nil {
			b.log.Error().Err(err).Int64("chat", chatID).Msg("reset session")
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "process":
		b.handleProcess(ctx, chatID, session)

	case "recognize":
		b.handleRecognize(ctx, chatID, session)

	case "lang":
		b.handleLanguage(ctx, chatID, session, msg.CommandArguments())

	case "save":
		b.handleSave(chatID, session)

	case "clear":
		b.app.OCRService.Clear(ctx, session)
		b.saveSession(ctx, session)
		b.sendMessage(chatID, msgCleared)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handleImage скачивает изображение и загружает его в сессию
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, session *entity.Session, fileID, name string) {
	data, err := b.downloadFile(ctx, fileID)
	if err != nil {
		b.log.Error().Err(err).Int64("chat", msg.Chat.ID).Msg("download image")
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgLoadError, err))
		return
	}

	if err := b.app.OCRService.Load(ctx, session, name, data); err != nil {
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgLoadError, err))
		return
	}

	b.saveSession(ctx, session)
	b.sendMessage(msg.Chat.ID, msgLoaded)
}

func (b *Bot) handleProcess(ctx context.Context, chatID int64, session *entity.Session) {
	processed, err := b.app.OCRService.Preprocess(ctx, session)
	if errors.Is(err, entity.ErrNoImage) {
		b.sendMessage(chatID, msgNoImage)
		return
	}
	if err != nil {
		b.sendMessage(chatID, fmt.Sprintf(msgProcessingError, err))
		return
	}
	b.saveSession(ctx, session)

	// Для показа дублируем канал в RGB; в OCR уходит одноканальное изображение.
	preview, err := vision.EncodePNG(vision.ToColor(processed))
	if err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("encode preview")
		b.sendMessage(chatID, msgProcessed)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "processed.png", Bytes: preview})
	photo.Caption = msgProcessed
	if _, err := b.api.Send(photo); err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("send preview")
		b.sendMessage(chatID, msgProcessed)
	}
}

func (b *Bot) handleRecognize(ctx context.Context, chatID int64, session *entity.Session) {
	if !session.HasImage() {
		b.sendMessage(chatID, msgNoImage)
		return
	}

	b.sendMessage(chatID, msgRecognizing)

	result, err := b.app.OCRService.Recognize(ctx, session)
	if errors.Is(err, entity.ErrNoImage) {
		b.sendMessage(chatID, msgNoImage)
		return
	}
	if err != nil {
		b.sendMessage(chatID, fmt.Sprintf(msgRecognitionError, err))
		return
	}
	b.saveSession(ctx, session)

	if result.Status == entity.StatusNothingFound {
		b.sendMessage(chatID, msgNothingFound)
		return
	}

	b.sendMessage(chatID, msgRecognized)
	for _, part := range splitMessage(result.Text, maxMessageRunes) {
		b.sendMessage(chatID, part)
	}
}

func (b *Bot) handleLanguage(ctx context.Context, chatID int64, session *entity.Session, args string) {
	available := languageList()

	code := strings.TrimSpace(args)
	if code == "" {
		b.sendMessage(chatID, fmt.Sprintf(msgLanguage, session.Language, available))
		return
	}

	updated, err := b.app.SessionService.SetLanguage(ctx, chatID, code)
	if errors.Is(err, entity.ErrUnsupportedLanguage) {
		b.sendMessage(chatID, fmt.Sprintf(msgUnsupportedLanguage, available))
		return
	}
	if err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("set language")
		b.sendMessage(chatID, msgInternalError)
		return
	}

	b.sendMessage(chatID, fmt.Sprintf(msgLanguageSet, updated.Language))
}

// handleSave отправляет распознанный текст документом
func (b *Bot) handleSave(chatID int64, session *entity.Session) {
	data, err := b.app.OCRService.Export(session)
	if errors.Is(err, entity.ErrNothingToSave) {
		b.sendMessage(chatID, msgNothingToSave)
		return
	}
	if err != nil {
		b.sendMessage(chatID, fmt.Sprintf(msgSaveError, err))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: resultFileName(session.SourceName), Bytes: data})
	doc.Caption = msgSavedCaption
	if _, err := b.api.Send(doc); err != nil {
		saveErr := entity.SaveError("send document", err)
		b.log.Error().Err(saveErr).Int64("chat", chatID).Msg("save text")
		b.sendMessage(chatID, fmt.Sprintf(msgSaveError, saveErr))
		return
	}

	b.log.Info().Str("session", session.ID).Str("op", "save").Int("bytes", len(data)).Msg("text sent")
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

func (b *Bot) saveSession(ctx context.Context, session *entity.Session) {
	if err := b.app.SessionService.Save(ctx, session); err != nil {
		b.log.Error().Err(err).Str("session", session.ID).Msg("save session")
	}
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("send message")
	}
}

// imageFile выбирает фото максимального размера или документ-изображение
func imageFile(msg *tgbotapi.Message) (fileID, name string, ok bool) {
	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		return photo.FileID, "photo.jpg", true
	}

	if doc := msg.Document; doc != nil {
		if strings.HasPrefix(doc.MimeType, "image/") || vision.IsSupportedFile(doc.FileName) {
			return doc.FileID, doc.FileName, true
		}
	}

	return "", "", false
}

func resultFileName(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "result"
	}
	return base + ".txt"
}

func languageList() string {
	codes := make([]string, 0, 3)
	for _, l := range entity.Languages() {
		codes = append(codes, l.String())
	}
	return strings.Join(codes, ", ")
}

// splitMessage режет текст на части не длиннее limit символов, по возможности по переводу строки
func splitMessage(text string, limit int) []string {
	runes := []rune(text)

	var parts []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > 0; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if strings.TrimSpace(string(runes)) != "" {
		parts = append(parts, string(runes))
	}
	return parts
}
