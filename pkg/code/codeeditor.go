package code

import (
	"image/color"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ispapp/codebridge/pkg/highlight"
	"github.com/ispapp/codebridge/pkg/linenum"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DefaultFontSize is the editor text size in points.
const DefaultFontSize float32 = 18

// CodeEditor shows one buffer either as an editable monospace Entry or as a
// read-only RichText painted with highlight spans.
type CodeEditor struct {
	widget.BaseWidget

	content     *numberedEntry
	richContent *widget.RichText
	override    *container.ThemeOverride

	isEditMode bool
	runs       []highlight.Span // painted, non-overlapping
	fontSize   float32
	syncing    bool // true while text is pushed in programmatically

	// OnChanged is called after the user edits the text.
	OnChanged func(string)

	// OnReturn handles the Return key at the cursor and returns the new
	// cursor. When nil the editor inserts the numbered line itself.
	OnReturn func(row, col int) (int, int)

	// OnModeChanged is called after the editor switches between edit and view.
	OnModeChanged func(editing bool)
}

// NewCodeEditor creates an editor in edit mode.
func NewCodeEditor() *CodeEditor {
	e := &CodeEditor{
		isEditMode: true,
		fontSize:   DefaultFontSize,
	}
	e.ExtendBaseWidget(e)
	e.createUI()
	return e
}

func (e *CodeEditor) createUI() {
	e.content = newNumberedEntry()
	e.content.onReturn = e.insertNumberedLine
	e.content.OnChanged = func(text string) {
		if e.syncing {
			return
		}
		if e.OnChanged != nil {
			e.OnChanged(text)
		}
	}

	e.richContent = widget.NewRichText()
	e.richContent.Scroll = container.ScrollBoth
	e.richContent.Hide()

	e.override = container.NewThemeOverride(
		container.NewStack(e.content, e.richContent),
		&sizedTheme{size: e.fontSize},
	)
}

// SetText replaces the text without calling OnChanged. The cursor is kept
// where it was, clamped to the new text.
func (e *CodeEditor) SetText(text string) {
	if text == e.content.Text {
		return
	}
	row, col := e.Cursor()

	e.syncing = true
	e.content.SetText(text)
	e.syncing = false

	e.SetCursor(row, col)
	if !e.isEditMode {
		e.updateRichText()
	}
}

// Text returns the editor content
func (e *CodeEditor) Text() string {
	return e.content.Text
}

// SetHighlights replaces the painted runs shown in view mode.
func (e *CodeEditor) SetHighlights(runs []highlight.Span) {
	e.runs = runs
	if !e.isEditMode {
		e.updateRichText()
	}
}

// SetFontSize changes the text size of both views.
func (e *CodeEditor) SetFontSize(size float32) {
	if size <= 0 || size == e.fontSize {
		return
	}
	e.fontSize = size
	e.override.Theme = &sizedTheme{size: size}
	e.override.Refresh()
}

// FontSize returns the text size in points.
func (e *CodeEditor) FontSize() float32 {
	return e.fontSize
}

// Cursor returns the cursor row and rune column.
func (e *CodeEditor) Cursor() (int, int) {
	return e.content.CursorRow, e.content.CursorColumn
}

// SetCursor moves the cursor, clamped to the text.
func (e *CodeEditor) SetCursor(row, col int) {
	lines := strings.Split(e.content.Text, "\n")
	row = max(0, min(row, len(lines)-1))
	col = max(0, min(col, utf8.RuneCountInString(lines[row])))

	e.content.CursorRow = row
	e.content.CursorColumn = col
	e.content.Refresh()
}

// insertNumberedLine handles Return in the entry.
func (e *CodeEditor) insertNumberedLine() {
	row, col := e.Cursor()
	if e.OnReturn != nil {
		row, col = e.OnReturn(row, col)
		e.SetCursor(row, col)
		return
	}

	text, row, col := linenum.InsertNumberedLine(e.content.Text, row, col)
	e.content.SetText(text)
	e.SetCursor(row, col)
}

// ToggleMode switches between edit and view modes
func (e *CodeEditor) ToggleMode() {
	e.SetEditMode(!e.isEditMode)
}

// IsEditMode returns true if the editor is in edit mode
func (e *CodeEditor) IsEditMode() bool {
	return e.isEditMode
}

// SetEditMode shows the Entry when editing is true and the highlighted
// RichText otherwise.
func (e *CodeEditor) SetEditMode(editing bool) {
	if editing == e.isEditMode {
		return
	}
	e.isEditMode = editing

	if editing {
		e.richContent.Hide()
		e.content.Show()
	} else {
		e.updateRichText()
		e.content.Hide()
		e.richContent.Show()
	}
	slog.Debug("editor mode changed", "editing", editing)

	if e.OnModeChanged != nil {
		e.OnModeChanged(editing)
	}
}

// SetKeymap lets the focused entry run keymap shortcuts.
func (e *CodeEditor) SetKeymap(k *Keymap) {
	e.content.keymap = k
}

// FocusTarget is the object to focus for typing.
func (e *CodeEditor) FocusTarget() fyne.Focusable {
	return e.content
}

func (e *CodeEditor) updateRichText() {
	e.richContent.Segments = Segments(e.content.Text, e.runs)
	e.richContent.Refresh()
}

// CreateRenderer is a private method to Fyne which links this widget to its renderer
func (e *CodeEditor) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(e.override)
}

// Segments cuts text into RichText segments, coloring the runs. Runs must
// not overlap; use highlight.Paint first.
func Segments(text string, runs []highlight.Span) []widget.RichTextSegment {
	byLine := make(map[int][]highlight.Span)
	for _, r := range runs {
		byLine[r.Line] = append(byLine[r.Line], r)
	}

	var segments []widget.RichTextSegment
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			segments = append(segments, textSegment(plain.String(), ""))
			plain.Reset()
		}
	}

	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			plain.WriteByte('\n')
		}
		rs := []rune(line)
		col := 0
		for _, r := range byLine[i+1] {
			start := min(r.StartCol, len(rs))
			end := min(r.EndCol, len(rs))
			if start < col || start >= end {
				continue
			}
			plain.WriteString(string(rs[col:start]))
			flush()
			segments = append(segments, textSegment(string(rs[start:end]), ColorNameFor(r.Category)))
			col = end
		}
		plain.WriteString(string(rs[col:]))
	}
	flush()

	if len(segments) == 0 {
		segments = append(segments, textSegment("", ""))
	}
	return segments
}

func textSegment(text string, colorName fyne.ThemeColorName) *widget.TextSegment {
	if colorName == "" {
		colorName = theme.ColorNameForeground
	}
	return &widget.TextSegment{
		Text: text,
		Style: widget.RichTextStyle{
			ColorName: colorName,
			Inline:    true,
			SizeName:  theme.SizeNameText,
			TextStyle: fyne.TextStyle{Monospace: true},
		},
	}
}

// numberedEntry is a multi-line Entry whose Return key inserts a numbered
// line and which runs keymap shortcuts before its own.
type numberedEntry struct {
	widget.Entry

	onReturn func()
	keymap   *Keymap
}

func newNumberedEntry() *numberedEntry {
	entry := &numberedEntry{}
	entry.MultiLine = true
	entry.Wrapping = fyne.TextWrapOff
	entry.TextStyle = fyne.TextStyle{Monospace: true}
	entry.ExtendBaseWidget(entry)
	return entry
}

func (n *numberedEntry) TypedKey(key *fyne.KeyEvent) {
	if (key.Name == fyne.KeyReturn || key.Name == fyne.KeyEnter) && n.onReturn != nil {
		n.onReturn()
		return
	}
	n.Entry.TypedKey(key)
}

func (n *numberedEntry) TypedShortcut(s fyne.Shortcut) {
	if n.keymap.Handle(s) {
		return
	}
	n.Entry.TypedShortcut(s)
}

// sizedTheme overrides the text size of the current app theme.
type sizedTheme struct {
	size float32
}

func (t *sizedTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.Current().Color(name, variant)
}

func (t *sizedTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.Current().Font(style)
}

func (t *sizedTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.Current().Icon(name)
}

func (t *sizedTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText {
		return t.size
	}
	return theme.Current().Size(name)
}
