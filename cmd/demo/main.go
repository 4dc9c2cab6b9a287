package main

import (
	"log/slog"

	"github.com/ispapp/codebridge/internal/ui/theme"
	"github.com/ispapp/codebridge/pkg/code"
	"github.com/ispapp/codebridge/pkg/highlight"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var samples = map[highlight.Mode]string{
	highlight.None: "plain text, nothing to highlight",
	highlight.Python: `def hello():
    # greet the user
    print("Hello, Python!")
    for name in ['a', 'b']:
        print(name)`,
	highlight.VBA: `Sub Hello()
    ' greet the user
    Dim msg
    msg = "Hello, VBA!"
    If Len(msg) > 0 Then MsgBox msg
End Sub`,
}

// Standalone window for trying the editor widget without a session.
func main() {
	myApp := app.New()
	theme.NewAppTheme("").ApplyTheme(myApp)

	myWindow := myApp.NewWindow("Code Editor Demo")
	myWindow.Resize(fyne.NewSize(900, 600))

	editor := code.NewCodeEditor()
	mode := highlight.Python

	rehighlight := func() {
		editor.SetHighlights(highlight.Paint(highlight.Highlight(editor.Text(), mode)))
	}
	editor.OnChanged = func(string) { rehighlight() }

	modeSelect := widget.NewSelect(highlight.ModeNames(), func(value string) {
		m, err := highlight.ParseMode(value)
		if err != nil {
			slog.Warn("unknown mode", "mode", value)
			return
		}
		mode = m
		editor.SetText(samples[m])
		rehighlight()
	})
	modeSelect.SetSelected(mode.String())

	paletteSelect := widget.NewSelect(code.PaletteNames(), func(value string) {
		theme.NewAppTheme(value).ApplyTheme(myApp)
	})

	sizeSlider := widget.NewSlider(8, 24)
	sizeSlider.Step = 1
	sizeSlider.SetValue(float64(editor.FontSize()))
	sizeSlider.OnChanged = func(v float64) { editor.SetFontSize(float32(v)) }

	modeLabel := widget.NewLabel("Mode: Edit")
	var toggleBtn *widget.Button
	toggleBtn = widget.NewButton("View Mode (Syntax Highlight)", func() {
		editor.ToggleMode()
		if !editor.IsEditMode() {
			toggleBtn.SetText("Edit Mode")
			modeLabel.SetText("Mode: View (Highlighted)")
		} else {
			toggleBtn.SetText("View Mode (Syntax Highlight)")
			modeLabel.SetText("Mode: Edit")
		}
	})

	toolbar := container.NewHBox(
		widget.NewLabel("Language:"),
		modeSelect,
		widget.NewSeparator(),
		widget.NewLabel("Palette:"),
		paletteSelect,
		widget.NewSeparator(),
		container.NewGridWrap(fyne.NewSize(140, sizeSlider.MinSize().Height), sizeSlider),
		widget.NewSeparator(),
		modeLabel,
		toggleBtn,
	)

	myWindow.SetContent(container.NewBorder(toolbar, nil, nil, nil, editor))
	myWindow.ShowAndRun()
}
