package code

import (
	"image/color"
	"strings"
	"testing"

	"github.com/ispapp/codebridge/pkg/highlight"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segmentText(segments []widget.RichTextSegment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.(*widget.TextSegment).Text)
	}
	return b.String()
}

func TestSegments(t *testing.T) {
	text := "def f():\n    x = 'é' # c"
	runs := highlight.Paint(highlight.Highlight(text, highlight.Python))
	segments := Segments(text, runs)

	assert.Equal(t, text, segmentText(segments))

	colored := map[string]fyne.ThemeColorName{}
	for _, s := range segments {
		ts := s.(*widget.TextSegment)
		assert.True(t, ts.Style.Inline)
		assert.True(t, ts.Style.TextStyle.Monospace)
		if ts.Style.ColorName != theme.ColorNameForeground {
			colored[ts.Text] = ts.Style.ColorName
		}
	}
	assert.Equal(t, map[string]fyne.ThemeColorName{
		"def": ColorNameKeyword,
		"'é'": ColorNameString,
		"# c": ColorNameComment,
	}, colored)
}

func TestSegmentsPlainText(t *testing.T) {
	segments := Segments("a\n\nb", nil)
	require.Len(t, segments, 1)
	assert.Equal(t, "a\n\nb", segmentText(segments))

	segments = Segments("", nil)
	require.Len(t, segments, 1)
	assert.Equal(t, "", segmentText(segments))
}

func TestSegmentsIgnoresStaleRuns(t *testing.T) {
	runs := []highlight.Span{
		{Category: highlight.Keyword, Line: 1, StartCol: 0, EndCol: 10},
		{Category: highlight.Comment, Line: 5, StartCol: 0, EndCol: 2},
	}
	segments := Segments("abc", runs)
	assert.Equal(t, "abc", segmentText(segments))
	require.Len(t, segments, 1)
	assert.Equal(t, ColorNameKeyword, segments[0].(*widget.TextSegment).Style.ColorName)
}

func TestReturnInsertsNumberedLine(t *testing.T) {
	test.NewTempApp(t)

	editor := NewCodeEditor()
	var changed string
	editor.OnChanged = func(s string) { changed = s }

	test.Type(editor.content, "001 | abc")
	assert.Equal(t, "001 | abc", changed)

	editor.content.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.Equal(t, "001 | abc\n002 | ", editor.Text())
	assert.Equal(t, "001 | abc\n002 | ", changed)

	row, col := editor.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 6, col)
}

func TestReturnDelegates(t *testing.T) {
	test.NewTempApp(t)

	editor := NewCodeEditor()
	editor.SetText("x")
	editor.OnReturn = func(row, col int) (int, int) {
		editor.SetText("x\ny")
		return 1, 1
	}
	editor.content.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEnter})

	assert.Equal(t, "x\ny", editor.Text())
	row, col := editor.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)
}

func TestSetTextDoesNotNotify(t *testing.T) {
	test.NewTempApp(t)

	editor := NewCodeEditor()
	calls := 0
	editor.OnChanged = func(string) { calls++ }

	editor.SetText("one\ntwo")
	assert.Equal(t, "one\ntwo", editor.Text())
	assert.Zero(t, calls)
}

func TestSetCursorClamps(t *testing.T) {
	test.NewTempApp(t)

	editor := NewCodeEditor()
	editor.SetText("ab\nc")
	editor.SetCursor(9, 9)

	row, col := editor.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)
}

func TestToggleMode(t *testing.T) {
	test.NewTempApp(t)

	editor := NewCodeEditor()
	var modes []bool
	editor.OnModeChanged = func(editing bool) { modes = append(modes, editing) }

	editor.SetText("# note")
	editor.SetHighlights([]highlight.Span{{Category: highlight.Comment, Line: 1, StartCol: 0, EndCol: 6}})
	require.True(t, editor.IsEditMode())

	editor.ToggleMode()
	assert.False(t, editor.IsEditMode())
	assert.False(t, editor.content.Visible())
	assert.True(t, editor.richContent.Visible())
	require.Len(t, editor.richContent.Segments, 1)
	assert.Equal(t, ColorNameComment, editor.richContent.Segments[0].(*widget.TextSegment).Style.ColorName)

	editor.ToggleMode()
	assert.True(t, editor.IsEditMode())
	assert.Equal(t, []bool{false, true}, modes)
}

func TestFontSize(t *testing.T) {
	test.NewTempApp(t)

	editor := NewCodeEditor()
	assert.Equal(t, DefaultFontSize, editor.FontSize())

	editor.SetFontSize(12)
	assert.Equal(t, float32(12), editor.FontSize())
	assert.Equal(t, float32(12), editor.override.Theme.Size(theme.SizeNameText))
	assert.Equal(t, theme.Current().Size(theme.SizeNamePadding), editor.override.Theme.Size(theme.SizeNamePadding))
}

func TestKeymap(t *testing.T) {
	k := NewKeymap()
	saves := 0
	k.Bind(fyne.KeyS, fyne.KeyModifierShortcutDefault, func() { saves++ })
	k.Bind(fyne.KeyS, fyne.KeyModifierShortcutDefault|fyne.KeyModifierShift, func() {})

	assert.True(t, k.Handle(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}))
	assert.Equal(t, 1, saves)
	assert.False(t, k.Handle(&desktop.CustomShortcut{KeyName: fyne.KeyQ, Modifier: fyne.KeyModifierShortcutDefault}))
	assert.Len(t, k.Shortcuts(), 2)
	assert.NotNil(t, k.Shortcut(fyne.KeyS, fyne.KeyModifierShortcutDefault))
	assert.Nil(t, k.Shortcut(fyne.KeyO, fyne.KeyModifierShortcutDefault))

	var nilMap *Keymap
	assert.False(t, nilMap.Handle(&fyne.ShortcutCopy{}))
}

func TestEntryRunsKeymap(t *testing.T) {
	test.NewTempApp(t)

	editor := NewCodeEditor()
	k := NewKeymap()
	toggled := false
	k.Bind(fyne.KeyE, fyne.KeyModifierShortcutDefault, func() { toggled = true })
	editor.SetKeymap(k)

	editor.content.TypedShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyE, Modifier: fyne.KeyModifierShortcutDefault})
	assert.True(t, toggled)
}

func TestPaletteFromStyle(t *testing.T) {
	p, ok := PaletteFromStyle("vs")
	require.True(t, ok)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, p.Keyword)
	assert.Equal(t, color.RGBA{0, 128, 0, 255}, p.Comment)
	assert.Equal(t, color.RGBA{163, 21, 21, 255}, p.String)

	c, ok := p.Color(ColorNameString)
	assert.True(t, ok)
	assert.Equal(t, p.String, c)
	_, ok = p.Color(theme.ColorNamePrimary)
	assert.False(t, ok)

	_, ok = PaletteFromStyle("no-such-style")
	assert.False(t, ok)
	assert.Contains(t, PaletteNames(), "monokai")
}
