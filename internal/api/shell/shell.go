// Package shell реализует интерактивную сессию в терминале: загрузка,
// предобработка, распознавание, сохранение и очистка по одной команде в строке.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	app "scan-ocr/internal/application"
	"scan-ocr/internal/domain/entity"
)

const helpText = `Команды:
  load <файл>       загрузить изображение (png, jpg, bmp, tiff)
  process           предобработать изображение
  recognize         распознать текст
  lang [код]        показать или выбрать язык: rus, eng, rus+eng
  save [файл]       сохранить текст (по умолчанию <имя изображения>.txt)
  text              показать распознанный текст
  status            состояние сессии
  clear             очистить всё
  help              эта справка
  quit              выход`

// Shell одна сессия в терминале.
type Shell struct {
	ocr     *app.OCRService
	session *entity.Session
	ui      *UI
	prompt  string
}

// New создаёт оболочку над сессией. Пустой prompt отключает приглашение.
func New(ocr *app.OCRService, session *entity.Session, ui *UI, prompt string) *Shell {
	return &Shell{ocr: ocr, session: session, ui: ui, prompt: prompt}
}

// Run читает команды из in до quit, конца ввода или отмены контекста.
// Отмена прерывает ожидание строки сразу, не дожидаясь ввода.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt != "" {
			fmt.Fprint(s.ui.out, s.prompt)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if quit := s.Execute(ctx, line); quit {
				return nil
			}
		}
	}
}

// Execute выполняет одну команду. Возвращает true для quit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "":
	case "load", "open":
		s.load(ctx, arg)
	case "process", "preprocess":
		s.process(ctx)
	case "recognize", "ocr":
		s.recognize(ctx)
	case "lang", "language":
		s.language(arg)
	case "save":
		s.save(ctx, arg)
	case "text":
		s.text()
	case "status":
		s.status()
	case "clear":
		s.ocr.Clear(ctx, s.session)
		s.ui.Info("Все очищено. Загрузите новое изображение.")
	case "help", "?":
		s.ui.Text(helpText)
	case "quit", "exit", "q":
		return true
	default:
		s.ui.Warning("Неизвестная команда %q. Введите help для справки.", name)
	}
	return false
}

func (s *Shell) load(ctx context.Context, path string) {
	if path == "" {
		s.ui.Warning("Укажите файл: load <файл>")
		return
	}

	if err := s.ocr.LoadFile(ctx, s.session, path); err != nil {
		s.ui.Error("Не удалось загрузить изображение: %v", err)
		return
	}

	b := s.session.Original.Bounds()
	s.ui.Success("Изображение загружено: %s (%dx%d). Введите recognize для распознавания.",
		s.session.SourceName, b.Dx(), b.Dy())
}

func (s *Shell) process(ctx context.Context) {
	_, err := s.ocr.Preprocess(ctx, s.session)
	if errors.Is(err, entity.ErrNoImage) {
		s.ui.Warning("Сначала загрузите изображение!")
		return
	}
	if err != nil {
		s.ui.Error("Ошибка при обработке: %v", err)
		return
	}
	s.ui.Success("Изображение обработано. Теперь можно распознать текст.")
}

func (s *Shell) recognize(ctx context.Context) {
	if !s.session.HasImage() {
		s.ui.Warning("Сначала загрузите изображение!")
		return
	}

	var (
		result entity.Recognition
		err    error
	)
	s.ui.Spin("Распознавание текста...", func() {
		result, err = s.ocr.Recognize(ctx, s.session)
	})
	if err != nil {
		s.ui.Error("Ошибка распознавания: %v", err)
		return
	}

	if result.Status == entity.StatusNothingFound {
		s.ui.Warning("Текст не распознан. Попробуйте:\n" +
			"  1. Обработать изображение (process)\n" +
			"  2. Использовать более качественное изображение\n" +
			"  3. Проверить язык распознавания (lang)")
		return
	}

	s.ui.Success("Распознавание завершено!")
	s.ui.Text(result.Text)
}

func (s *Shell) language(code string) {
	if code == "" {
		s.ui.Info("Язык распознавания: %s (доступные: %s)", s.session.Language, languageList())
		return
	}

	lang, err := entity.ParseLanguage(code)
	if err != nil {
		s.ui.Warning("Неподдерживаемый язык %q. Доступные: %s", code, languageList())
		return
	}
	s.session.SetLanguage(lang)
	s.ui.Success("Язык распознавания: %s", lang)
}

func (s *Shell) save(ctx context.Context, path string) {
	if !s.session.Result.Saveable() {
		s.ui.Warning("Нет текста для сохранения!")
		return
	}
	if path == "" {
		path = defaultTextPath(s.session.SourceName)
	}

	saved, err := s.ocr.Save(ctx, s.session, path)
	if errors.Is(err, entity.ErrNothingToSave) {
		s.ui.Warning("Нет текста для сохранения!")
		return
	}
	if err != nil {
		s.ui.Error("Не удалось сохранить файл: %v", err)
		return
	}
	s.ui.Success("Текст успешно сохранён: %s", saved)
}

func (s *Shell) text() {
	if !s.session.Result.Saveable() {
		s.ui.Info("Распознанного текста нет.")
		return
	}
	s.ui.Text(s.session.Result.Text)
}

func (s *Shell) status() {
	if !s.session.HasImage() {
		s.ui.Info("Изображение не загружено. Язык: %s", s.session.Language)
		return
	}

	b := s.session.Original.Bounds()
	s.ui.Info("Изображение: %s (%dx%d), обработано: %s, язык: %s, результат: %s",
		s.session.SourceName, b.Dx(), b.Dy(), yesNo(s.session.Preprocessed),
		s.session.Language, s.session.Result.Status)
}

// defaultTextPath строит имя файла результата рядом с текущим каталогом: scan.png -> scan.txt
func defaultTextPath(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." {
		base = "result"
	}
	return base + app.TextExtension
}

func languageList() string {
	codes := make([]string, 0, 3)
	for _, l := range entity.Languages() {
		codes = append(codes, l.String())
	}
	return strings.Join(codes, ", ")
}

func yesNo(v bool) string {
	if v {
		return "да"
	}
	return "нет"
}
