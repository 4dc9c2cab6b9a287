package widgets

import (
	"testing"

	"github.com/ispapp/codebridge/internal/data"
	"github.com/ispapp/codebridge/internal/settings"
	"github.com/ispapp/codebridge/pkg/highlight"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeSelect(t *testing.T) {
	test.NewTempApp(t)
	data.Init(settings.DefaultSettings())

	c := CreateControls()
	assert.Equal(t, "none", c.ModeSelect.Selected)
	assert.Equal(t, highlight.ModeNames(), c.ModeSelect.Options)

	var picked []highlight.Mode
	c.OnModeChanged = func(m highlight.Mode) { picked = append(picked, m) }

	c.ModeSelect.SetSelected("python")
	assert.Equal(t, []highlight.Mode{highlight.Python}, picked)
	assert.Equal(t, "python", settings.Current.Mode)

	mode, err := data.Mode.Get()
	require.NoError(t, err)
	assert.Equal(t, "python", mode)

	// programmatic updates do not call back
	c.ShowMode(highlight.VBA)
	assert.Equal(t, "vba", c.ModeSelect.Selected)
	assert.Len(t, picked, 1)

	assert.NotNil(t, c.Container())
}
