package code

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Keymap binds desktop shortcuts to commands. The editor consults it while
// it has focus and Install registers the same bindings on a window canvas.
type Keymap struct {
	shortcuts []*desktop.CustomShortcut
	handlers  map[string]func()
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{handlers: make(map[string]func())}
}

// Bind maps key plus modifier to run. Binding the same combination twice
// replaces the earlier command.
func (k *Keymap) Bind(key fyne.KeyName, modifier fyne.KeyModifier, run func()) {
	s := &desktop.CustomShortcut{KeyName: key, Modifier: modifier}
	if _, exists := k.handlers[s.ShortcutName()]; !exists {
		k.shortcuts = append(k.shortcuts, s)
	}
	k.handlers[s.ShortcutName()] = run
}

// Handle runs the command bound to s, reporting whether there was one.
func (k *Keymap) Handle(s fyne.Shortcut) bool {
	if k == nil || s == nil {
		return false
	}
	run, ok := k.handlers[s.ShortcutName()]
	if !ok {
		return false
	}
	slog.Debug("shortcut", "name", s.ShortcutName())
	run()
	return true
}

// Shortcut returns the bound shortcut for key plus modifier, or nil.
func (k *Keymap) Shortcut(key fyne.KeyName, modifier fyne.KeyModifier) fyne.Shortcut {
	want := (&desktop.CustomShortcut{KeyName: key, Modifier: modifier}).ShortcutName()
	for _, s := range k.shortcuts {
		if s.ShortcutName() == want {
			return s
		}
	}
	return nil
}

// Shortcuts lists the bindings in the order they were added.
func (k *Keymap) Shortcuts() []*desktop.CustomShortcut {
	return k.shortcuts
}

// Install registers every binding on c for when nothing focusable has focus.
func (k *Keymap) Install(c fyne.Canvas) {
	for _, s := range k.shortcuts {
		c.AddShortcut(s, func(typed fyne.Shortcut) { k.Handle(typed) })
	}
}
