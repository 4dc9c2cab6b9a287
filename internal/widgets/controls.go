package widgets

import (
	"log/slog"

	"github.com/ispapp/codebridge/internal/data"
	"github.com/ispapp/codebridge/internal/settings"
	"github.com/ispapp/codebridge/pkg/highlight"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"
)

// Controls is the font size slider and the highlight mode selector.
type Controls struct {
	FontSlider *widget.Slider
	FontLabel  *widget.Label
	ModeSelect *widget.Select

	// OnModeChanged is called when the user picks a different mode.
	OnModeChanged func(highlight.Mode)
}

// CreateControls builds the controls on top of the data bindings. data.Init
// must have run.
func CreateControls() *Controls {
	c := &Controls{}

	c.FontSlider = widget.NewSliderWithData(settings.MinFontSize, settings.MaxFontSize, data.FontSize)
	c.FontSlider.Step = 1
	c.FontLabel = widget.NewLabelWithData(binding.FloatToStringWithFormat(data.FontSize, "%.0f pt"))

	data.FontSize.AddListener(binding.NewDataListener(func() {
		settings.Current.FontSize = int(data.GetFontSize())
	}))

	c.ModeSelect = widget.NewSelect(highlight.ModeNames(), func(value string) {
		mode, err := highlight.ParseMode(value)
		if err != nil {
			slog.Warn("unknown mode selected", "mode", value, "error", err)
			return
		}
		if current, _ := data.Mode.Get(); current == mode.String() {
			return
		}
		data.Mode.Set(mode.String())
		settings.Current.Mode = mode.String()
		if c.OnModeChanged != nil {
			c.OnModeChanged(mode)
		}
	})
	if mode, err := data.Mode.Get(); err == nil {
		c.ModeSelect.Selected = mode
	}

	return c
}

// ShowMode updates the selector to mode without calling OnModeChanged.
func (c *Controls) ShowMode(mode highlight.Mode) {
	data.Mode.Set(mode.String())
	c.ModeSelect.SetSelected(mode.String())
}

// Container lays the controls out for a toolbar row.
func (c *Controls) Container() fyne.CanvasObject {
	slider := container.NewGridWrap(fyne.NewSize(160, c.FontSlider.MinSize().Height), c.FontSlider)
	return container.NewHBox(
		widget.NewLabel(lang.L("Font size")),
		slider,
		c.FontLabel,
		widget.NewLabel(lang.L("Mode")),
		c.ModeSelect,
	)
}
