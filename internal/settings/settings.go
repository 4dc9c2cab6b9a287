package settings

import (
	"fmt"
	"strconv"

	"github.com/ispapp/codebridge/pkg/highlight"
)

// Font size limits of the editor, in points.
const (
	MinFontSize     = 8
	MaxFontSize     = 24
	DefaultFontSize = 18
)

// AppSettings holds all application settings
type AppSettings struct {
	// Editor Settings
	FontSize       int    `json:"font_size"`
	Mode           string `json:"mode"`
	AutoDetectMode bool   `json:"auto_detect_mode"`
	StartInEdit    bool   `json:"start_in_edit"`

	// Highlight palette, a chroma style name; empty for the built-in colors
	Palette string `json:"palette"`

	// UI Settings
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`
}

// DefaultSettings returns the default application settings
func DefaultSettings() *AppSettings {
	return &AppSettings{
		// Editor Settings
		FontSize:       DefaultFontSize,
		Mode:           highlight.None.String(),
		AutoDetectMode: false,
		StartInEdit:    true,

		Palette: "",

		// UI Settings
		WindowWidth:  800,
		WindowHeight: 600,
	}
}

// Current is the settings of the running app. It is never persisted.
var Current = DefaultSettings()

// HighlightMode returns the configured mode, None when it does not parse.
func (s *AppSettings) HighlightMode() highlight.Mode {
	m, err := highlight.ParseMode(s.Mode)
	if err != nil {
		return highlight.None
	}
	return m
}

// ClampFontSize limits size to the editor range.
func ClampFontSize(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

// Validation functions
func (s *AppSettings) Validate() []string {
	var errors []string

	if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
		errors = append(errors, fmt.Sprintf("Font size must be between %d and %d", MinFontSize, MaxFontSize))
	}

	if _, err := highlight.ParseMode(s.Mode); err != nil {
		errors = append(errors, err.Error())
	}

	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		errors = append(errors, "Window size must be greater than 0")
	}

	return errors
}

// Helper functions to convert settings to/from strings for UI
func (s *AppSettings) GetFontSizeString() string {
	return strconv.Itoa(s.FontSize)
}

func (s *AppSettings) SetFontSizeString(value string) error {
	size, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	s.FontSize = ClampFontSize(size)
	return nil
}
