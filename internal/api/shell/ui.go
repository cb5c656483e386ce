package shell

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// UI печатает уведомления для пользователя. Это не журнал: уведомления
// показываются сразу и никуда не сохраняются.
type UI struct {
	out      io.Writer
	progress io.Writer // куда рисовать спиннер; nil — без спиннера
	noColor  bool
}

// NewUI создаёт вывод в out. Спиннер рисуется в progress, если он задан.
func NewUI(out, progress io.Writer, noColor bool) *UI {
	return &UI{out: out, progress: progress, noColor: noColor}
}

func (ui *UI) Success(format string, args ...any) {
	ui.print(color.FgGreen, "✓", format, args...)
}

func (ui *UI) Warning(format string, args ...any) {
	ui.print(color.FgYellow, "⚠", format, args...)
}

func (ui *UI) Error(format string, args ...any) {
	ui.print(color.FgRed, "✗", format, args...)
}

func (ui *UI) Info(format string, args ...any) {
	ui.print(color.FgCyan, "ℹ", format, args...)
}

// Text печатает текст как есть, без значка и цвета.
func (ui *UI) Text(text string) {
	fmt.Fprintln(ui.out, text)
}

// Spin показывает спиннер, пока выполняется fn.
func (ui *UI) Spin(message string, fn func()) {
	if ui.progress == nil {
		fn()
		return
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(ui.progress))
	s.Suffix = " " + message
	s.Start()
	defer s.Stop()

	fn()
}

func (ui *UI) print(attr color.Attribute, icon, format string, args ...any) {
	c := color.New(attr)
	if ui.noColor {
		c.DisableColor()
	}
	c.Fprintf(ui.out, "%s %s\n", icon, fmt.Sprintf(format, args...))
}
