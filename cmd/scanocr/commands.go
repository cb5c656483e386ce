package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/up-zero/gotool/imageutil"

	"scan-ocr/internal/api/shell"
	"scan-ocr/internal/domain/entity"
)

// newRunCmd загрузка, предобработка, распознавание и сохранение за один вызов.
func newRunCmd() *cobra.Command {
	var (
		out string
		raw bool
	)

	cmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Recognize text in an image and print or save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ui := newUI()
			svc, engine := newOCRService()
			if !engine.Available() {
				ui.Warning("tesseract не найден (%s), распознавание завершится ошибкой", engine.Name())
			}

			session := newSession()
			if err := svc.LoadFile(ctx, session, args[0]); err != nil {
				return err
			}

			if !raw {
				if _, err := svc.Preprocess(ctx, session); err != nil {
					return err
				}
			}

			var (
				result entity.Recognition
				err    error
			)
			ui.Spin("Распознавание текста...", func() {
				result, err = svc.Recognize(ctx, session)
			})
			if err != nil {
				return err
			}

			if result.Status == entity.StatusNothingFound {
				ui.Warning("Текст не распознан. Попробуйте другое изображение или язык (--lang).")
				return nil
			}

			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), result.Text)
				return nil
			}

			saved, err := svc.Save(ctx, session, out)
			if err != nil {
				return err
			}
			ui.Success("Текст успешно сохранён: %s", saved)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write text to file (.txt is added when there is no extension)")
	cmd.Flags().BoolVar(&raw, "raw", false, "skip preprocessing and recognize the original image")

	return cmd
}

// newPreprocessCmd записывает результат конвейера в файл для просмотра.
func newPreprocessCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "preprocess <image>",
		Short: "Run the preprocessing pipeline and write the binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.HasSuffix(strings.ToLower(out), ".png") {
				return errors.New("--out must be a .png file")
			}

			ctx := cmd.Context()
			svc, _ := newOCRService()

			session := newSession()
			if err := svc.LoadFile(ctx, session, args[0]); err != nil {
				return err
			}

			processed, err := svc.Preprocess(ctx, session)
			if err != nil {
				return err
			}

			if err := imageutil.Save(out, processed, 100); err != nil {
				return entity.SaveError("write image", err)
			}

			newUI().Success("Изображение обработано: %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "processed.png", "output PNG path")

	return cmd
}

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session: load, process, recognize, save, clear",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, engine := newOCRService()
			ui := newUI()
			if !engine.Available() {
				ui.Warning("tesseract не найден (%s), распознавание завершится ошибкой", engine.Name())
			}
			ui.Text("Введите help для списка команд.")

			sh := shell.New(svc, newSession(), ui, "scanocr> ")
			err := sh.Run(cmd.Context(), os.Stdin)
			if errors.Is(err, cmd.Context().Err()) {
				return nil
			}
			return err
		},
	}
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List supported recognition languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, lang := range entity.Languages() {
				marker := " "
				if lang == cfg.DefaultLanguage() {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, lang)
			}
			return nil
		},
	}
}
