package dialogs

import (
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/ispapp/codebridge/internal/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/storage"
)

// OpenFunc receives the chosen file. The reader is closed after it returns.
type OpenFunc func(reader fyne.URIReadCloser) error

// SaveFunc receives the chosen destination. The writer is closed after it
// returns, unless the callback closed it already.
type SaveFunc func(writer fyne.URIWriteCloser) error

// ShowOpenDialog lets the user pick any file and hands it to onOpen.
func ShowOpenDialog(parent fyne.Window, startPath string, onOpen OpenFunc) {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			ShowError(err, parent)
			return
		}
		if reader == nil {
			return // User cancelled
		}
		defer reader.Close()

		if err := onOpen(reader); err != nil {
			ShowError(err, parent)
		}
	}, parent)

	setLocation(fileDialog, startPath)
	fileDialog.Show()
}

// ShowSaveAsDialog asks for a destination and hands it to onSave. On success
// the saved notification is shown.
func ShowSaveAsDialog(parent fyne.Window, currentPath string, onSave SaveFunc) {
	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			ShowError(err, parent)
			return
		}
		if writer == nil {
			return // User cancelled
		}
		defer writer.Close()

		if err := onSave(writer); err != nil {
			ShowError(err, parent)
			return
		}
		ShowSaved(writer.URI().Name(), parent)
	}, parent)

	name := session.UntitledName
	if currentPath != "" {
		name = filepath.Base(currentPath)
	}
	fileDialog.SetFileName(name)
	setLocation(fileDialog, currentPath)
	fileDialog.Show()
}

type locatable interface {
	SetLocation(fyne.ListableURI)
}

// setLocation starts the dialog in the directory of path, if it still exists.
func setLocation(d locatable, path string) {
	if path == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(filepath.Dir(path)))
	if err != nil {
		slog.Debug("dialog location unavailable", "path", path, "error", err)
		return
	}
	d.SetLocation(lister)
}

// ShowError shows a blocking error dialog with a localized title.
func ShowError(err error, parent fyne.Window) {
	slog.Error("operation failed", "error", err)
	dialog.ShowError(errors.New(ErrorMessage(err)), parent)
}

// ErrorMessage maps session errors to user-facing text.
func ErrorMessage(err error) string {
	var opErr *session.OperationError
	path := ""
	if errors.As(err, &opErr) {
		path = opErr.Path
	}

	switch {
	case errors.Is(err, session.ErrUnreadable):
		return lang.L("Could not open {{.Path}}", map[string]any{"Path": path})
	case errors.Is(err, session.ErrWriteFailed):
		return lang.L("Could not save {{.Path}}", map[string]any{"Path": path})
	case errors.Is(err, session.ErrNoPath):
		return lang.L("Choose where to save the file first")
	}
	return err.Error()
}

// ShowSaved announces a successful save.
func ShowSaved(name string, parent fyne.Window) {
	dialog.ShowInformation(lang.L("Saved"), lang.L("{{.Name}} saved", map[string]any{"Name": name}), parent)
}
