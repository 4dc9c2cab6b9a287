package ui

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ispapp/codebridge/internal/data"
	"github.com/ispapp/codebridge/internal/dialogs"
	"github.com/ispapp/codebridge/internal/session"
	"github.com/ispapp/codebridge/internal/settings"
	"github.com/ispapp/codebridge/internal/widgets"
	"github.com/ispapp/codebridge/pkg/code"
	"github.com/ispapp/codebridge/pkg/highlight"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"
)

// MainUI connects the session to the window. Every handler is a thin
// adapter: it calls one session operation and reports the outcome.
type MainUI struct {
	Window   fyne.Window
	Session  *session.Session
	Editor   *code.CodeEditor
	Controls *widgets.Controls
	Keymap   *code.Keymap
}

// NewMainUI builds the main window for cfg.
func NewMainUI(app fyne.App, cfg *settings.AppSettings) *MainUI {
	for _, problem := range cfg.Validate() {
		slog.Warn("invalid setting", "problem", problem)
	}

	// Initialize global data bindings
	data.Init(cfg)

	sess := session.New(session.WithAutoDetectMode(cfg.AutoDetectMode))
	sess.SetMode(cfg.HighlightMode())

	m := &MainUI{
		Window:   app.NewWindow(lang.L("Code Bridge")),
		Session:  sess,
		Editor:   code.NewCodeEditor(),
		Controls: widgets.CreateControls(),
		Keymap:   code.NewKeymap(),
	}

	m.wire()
	m.bindShortcuts()
	m.Editor.SetEditMode(cfg.StartInEdit)
	m.Editor.SetFontSize(data.GetFontSize())

	m.Window.SetMainMenu(m.mainMenu())
	m.Window.SetContent(container.NewBorder(
		m.toolbar(),
		widget.NewLabelWithData(data.Status),
		nil, nil,
		m.Editor,
	))
	m.Window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	m.Window.SetPadded(true)
	m.Window.Canvas().Focus(m.Editor.FocusTarget())
	m.Window.SetOnClosed(func() {
		slog.Info("window closed", "dirty", m.Session.Dirty())
	})

	m.refresh()
	return m
}

func (m *MainUI) wire() {
	m.Session.OnChange(m.refresh)

	m.Editor.OnChanged = m.Session.SetText
	m.Editor.OnReturn = m.Session.InsertNumberedLine
	m.Editor.OnModeChanged = func(editing bool) {
		data.Editing.Set(editing)
	}

	m.Controls.OnModeChanged = m.Session.SetMode
	data.FontSize.AddListener(binding.NewDataListener(func() {
		m.Editor.SetFontSize(data.GetFontSize())
	}))
}

// refresh pushes session state into the widgets.
func (m *MainUI) refresh() {
	m.Editor.SetText(m.Session.Text())
	m.Editor.SetHighlights(m.Session.Painted())
	if m.Controls.ModeSelect.Selected != m.Session.Mode().String() {
		m.Controls.ShowMode(m.Session.Mode())
	}

	title := lang.L("Code Bridge")
	if m.Session.Path() != "" {
		title = m.Session.Name() + " - " + title
	}
	m.Window.SetTitle(title)
	data.SetStatus(m.status())
}

func (m *MainUI) status() string {
	name := m.Session.Name()
	if m.Session.Dirty() {
		name += " *"
	}
	parts := []string{name, m.Session.Mode().String()}

	info := m.Session.LastLoad()
	if info.Encoding != "" {
		parts = append(parts, info.Encoding)
	}
	if info.Lossy {
		parts = append(parts, lang.L("invalid bytes replaced"))
	}
	return strings.Join(parts, " | ")
}

// Open shows the file picker and loads the chosen file.
func (m *MainUI) Open() {
	dialogs.ShowOpenDialog(m.Window, m.Session.Path(), func(reader fyne.URIReadCloser) error {
		return m.Session.Load(reader, reader.URI().Path())
	})
}

// Save writes to the current file, asking for one when there is none.
func (m *MainUI) Save() {
	err := m.Session.Save()
	switch {
	case errors.Is(err, session.ErrNoPath):
		m.SaveAs()
	case err != nil:
		dialogs.ShowError(err, m.Window)
	default:
		dialogs.ShowSaved(m.Session.Name(), m.Window)
	}
}

// SaveAs asks for a destination and saves there.
func (m *MainUI) SaveAs() {
	dialogs.ShowSaveAsDialog(m.Window, m.Session.Path(), m.saveTo)
}

// saveTo prefers the atomic file write for local files and falls back to
// the dialog's writer for other storage.
func (m *MainUI) saveTo(writer fyne.URIWriteCloser) error {
	uri := writer.URI()
	if uri.Scheme() != "file" {
		return m.Session.SaveTo(writer, uri.Path())
	}
	if err := writer.Close(); err != nil {
		slog.Debug("closing dialog writer", "path", uri.Path(), "error", err)
	}
	return m.Session.SaveAs(uri.Path())
}

// AddLineNumbers renumbers the buffer.
func (m *MainUI) AddLineNumbers() {
	m.Session.AddLineNumbers()
}

// RemoveLineNumbers strips numbering from the buffer.
func (m *MainUI) RemoveLineNumbers() {
	m.Session.RemoveLineNumbers()
}

func (m *MainUI) bindShortcuts() {
	ctrl := fyne.KeyModifierShortcutDefault
	shift := fyne.KeyModifierShift

	m.Keymap.Bind(fyne.KeyO, ctrl, m.Open)
	m.Keymap.Bind(fyne.KeyS, ctrl, m.Save)
	m.Keymap.Bind(fyne.KeyS, ctrl|shift, m.SaveAs)
	m.Keymap.Bind(fyne.KeyL, ctrl, m.AddLineNumbers)
	m.Keymap.Bind(fyne.KeyL, ctrl|shift, m.RemoveLineNumbers)
	m.Keymap.Bind(fyne.KeyE, ctrl, m.Editor.ToggleMode)

	m.Keymap.Install(m.Window.Canvas())
	m.Editor.SetKeymap(m.Keymap)
}

func (m *MainUI) menuItem(label string, key fyne.KeyName, modifier fyne.KeyModifier, action func()) *fyne.MenuItem {
	item := fyne.NewMenuItem(label, action)
	item.Shortcut = m.Keymap.Shortcut(key, modifier)
	return item
}

func (m *MainUI) mainMenu() *fyne.MainMenu {
	ctrl := fyne.KeyModifierShortcutDefault
	shift := fyne.KeyModifierShift

	fileMenu := fyne.NewMenu(lang.L("File"),
		m.menuItem(lang.L("Open..."), fyne.KeyO, ctrl, m.Open),
		m.menuItem(lang.L("Save"), fyne.KeyS, ctrl, m.Save),
		m.menuItem(lang.L("Save As..."), fyne.KeyS, ctrl|shift, m.SaveAs),
	)

	editMenu := fyne.NewMenu(lang.L("Edit"),
		m.menuItem(lang.L("Add Line Numbers"), fyne.KeyL, ctrl, m.AddLineNumbers),
		m.menuItem(lang.L("Remove Line Numbers"), fyne.KeyL, ctrl|shift, m.RemoveLineNumbers),
		fyne.NewMenuItemSeparator(),
		m.menuItem(lang.L("Toggle Highlighted View"), fyne.KeyE, ctrl, m.Editor.ToggleMode),
	)

	modeItems := make([]*fyne.MenuItem, 0, len(highlight.Modes()))
	for _, mode := range highlight.Modes() {
		modeItems = append(modeItems, fyne.NewMenuItem(mode.String(), func() {
			m.Session.SetMode(mode)
		}))
	}
	modeMenu := fyne.NewMenu(lang.L("Mode"), modeItems...)

	helpMenu := fyne.NewMenu(lang.L("Help"),
		fyne.NewMenuItem(lang.L("About"), func() {
			dialog.ShowInformation(lang.L("About"), lang.L("Line numbering and highlighting for Python and VBA source"), m.Window)
		}),
	)

	return fyne.NewMainMenu(fileMenu, editMenu, modeMenu, helpMenu)
}

func (m *MainUI) toolbar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewButton(lang.L("Open"), m.Open),
		widget.NewButton(lang.L("Add Line Numbers"), m.AddLineNumbers),
		widget.NewButton(lang.L("Remove Line Numbers"), m.RemoveLineNumbers),
		widget.NewButton(lang.L("Save"), m.Save),
		widget.NewButton(lang.L("Save As"), m.SaveAs),
		m.Controls.Container(),
	)
}
