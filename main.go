package main

import (
	"log/slog"
	"os"

	"github.com/ispapp/codebridge/internal/settings"
	"github.com/ispapp/codebridge/internal/ui"
	"github.com/ispapp/codebridge/internal/ui/theme"
	"github.com/ispapp/codebridge/internal/ui/translations"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

var GlobalApp fyne.App

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := translations.Load(); err != nil {
		slog.Warn("continuing with built-in strings", "error", err)
	}

	// Create new Fyne application
	GlobalApp = app.NewWithID("co.ispapp.codebridge")
	_theme := theme.NewAppTheme(settings.Current.Palette)
	_theme.ApplyTheme(GlobalApp)
	mainUI := ui.NewMainUI(GlobalApp, settings.Current)

	// Show and run the application
	mainUI.Window.ShowAndRun()
}
