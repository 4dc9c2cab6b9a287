package data

import (
	"log/slog"

	"github.com/ispapp/codebridge/internal/settings"

	"fyne.io/fyne/v2/data/binding"
)

// Global data bindings
var (
	// FontSize is the editor font size in points
	FontSize binding.Float

	// Mode is the highlight mode name shown in the mode selector
	Mode binding.String

	// Status is the status line text
	Status binding.String

	// Editing is true while the editable view is shown
	Editing binding.Bool
)

// Init creates the bindings and seeds them from s.
func Init(s *settings.AppSettings) {
	slog.Debug("initializing data bindings")

	FontSize = binding.NewFloat()
	Mode = binding.NewString()
	Status = binding.NewString()
	Editing = binding.NewBool()

	FontSize.Set(float64(settings.ClampFontSize(s.FontSize)))
	Mode.Set(s.HighlightMode().String())
	Editing.Set(s.StartInEdit)
}

// GetFontSize returns the bound font size, or the default before Init.
func GetFontSize() float32 {
	if FontSize == nil {
		return settings.DefaultFontSize
	}
	v, err := FontSize.Get()
	if err != nil {
		return settings.DefaultFontSize
	}
	return float32(v)
}

// SetStatus updates the status line
func SetStatus(message string) {
	if Status == nil {
		return
	}
	if err := Status.Set(message); err != nil {
		slog.Warn("failed to update status", "error", err)
	}
}
