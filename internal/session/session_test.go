package session

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ispapp/codebridge/pkg/highlight"
	"github.com/ispapp/codebridge/pkg/textenc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func newTestSession(opts ...Option) *Session {
	noGuess := textenc.NewResolver(textenc.DetectorFunc(func([]byte) (textenc.EncodingGuess, bool) {
		return textenc.EncodingGuess{}, false
	}))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(append([]Option{WithResolver(noGuess), WithLogger(logger)}, opts...)...)
}

func TestNewSessionIsEmpty(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, "", s.Text())
	assert.Equal(t, "", s.Path())
	assert.Equal(t, UntitledName, s.Name())
	assert.Equal(t, highlight.None, s.Mode())
	assert.False(t, s.Dirty())
	assert.Empty(t, s.Spans())
}

func TestLoad(t *testing.T) {
	s := newTestSession()
	changes := 0
	s.OnChange(func() { changes++ })

	err := s.Load(strings.NewReader("a\r\nb\rc"), "/tmp/x.txt")
	require.NoError(t, err)

	assert.Equal(t, "a\nb\nc", s.Text())
	assert.Equal(t, "/tmp/x.txt", s.Path())
	assert.Equal(t, "x.txt", s.Name())
	assert.False(t, s.Dirty())
	assert.Equal(t, 1, changes)

	info := s.LastLoad()
	assert.Equal(t, textenc.UTF8, info.Encoding)
	assert.False(t, info.Lossy)
	assert.Equal(t, 7, info.Size)
}

func TestLoadUnreadableKeepsState(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.Load(strings.NewReader("keep me"), "/tmp/keep.txt"))

	err := s.Load(failingReader{}, "/tmp/other.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "open", opErr.Op)
	assert.Equal(t, "/tmp/other.txt", opErr.Path)

	assert.Equal(t, "keep me", s.Text())
	assert.Equal(t, "/tmp/keep.txt", s.Path())
}

func TestLoadFileMissing(t *testing.T) {
	s := newTestSession()
	err := s.LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.Equal(t, "", s.Path())
}

func TestLoadInvalidBytesIsLossy(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.Load(bytes.NewReader([]byte("ok\xff!")), "bad.txt"))
	assert.Equal(t, "ok�!", s.Text())
	assert.True(t, s.LastLoad().Lossy)
}

func TestSaveWithoutPath(t *testing.T) {
	s := newTestSession()
	s.SetText("hello")

	err := s.Save()
	assert.ErrorIs(t, err, ErrNoPath)
	assert.True(t, s.Dirty())
}

func TestSaveAsAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	s := newTestSession()
	s.SetText("日本語\nline two  \n\n\t")
	require.NoError(t, s.SaveAs(path))
	assert.Equal(t, path, s.Path())
	assert.False(t, s.Dirty())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "日本語\nline two", string(raw))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	other := newTestSession()
	require.NoError(t, other.LoadFile(path))
	assert.Equal(t, "日本語\nline two", other.Text())
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("old contents"), 0600))

	s := newTestSession()
	require.NoError(t, s.LoadFile(path))
	s.SetText("new")
	require.NoError(t, s.Save())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(raw))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveAsFailureKeepsPath(t *testing.T) {
	s := newTestSession()
	s.SetText("x")

	err := s.SaveAs(filepath.Join(t.TempDir(), "no", "such", "dir", "f.txt"))
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.Equal(t, "", s.Path())
	assert.True(t, s.Dirty())
}

func TestSaveTo(t *testing.T) {
	s := newTestSession()
	s.SetText("print('x')\n\n")

	var buf bytes.Buffer
	require.NoError(t, s.SaveTo(&buf, "/tmp/p.py"))
	assert.Equal(t, "print('x')", buf.String())
	assert.Equal(t, "/tmp/p.py", s.Path())

	err := s.SaveTo(failingWriter{}, "/tmp/q.py")
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.Equal(t, "/tmp/p.py", s.Path())
}

func TestLineNumberCommands(t *testing.T) {
	s := newTestSession()
	s.SetText("a\nb")

	s.AddLineNumbers()
	assert.Equal(t, "001 | a\n002 | b", s.Text())

	s.AddLineNumbers()
	assert.Equal(t, "001 | a\n002 | b", s.Text())

	s.RemoveLineNumbers()
	assert.Equal(t, "a\nb", s.Text())
}

func TestInsertNumberedLine(t *testing.T) {
	s := newTestSession()
	s.SetText("001 | abc")

	row, col := s.InsertNumberedLine(0, 9)
	assert.Equal(t, 1, row)
	assert.Equal(t, 6, col)
	assert.Equal(t, "001 | abc\n002 | ", s.Text())
}

func TestModeChangeRehighlights(t *testing.T) {
	s := newTestSession()
	s.SetText("def f(): # note")
	assert.Empty(t, s.Spans())

	s.SetMode(highlight.Python)
	assert.NotEmpty(t, s.Spans())
	assert.Contains(t, s.Spans(), highlight.Span{Category: highlight.Keyword, Line: 1, StartCol: 0, EndCol: 3})

	s.SetMode(highlight.None)
	assert.Empty(t, s.Spans())
}

func TestEditRehighlights(t *testing.T) {
	s := newTestSession()
	s.SetMode(highlight.VBA)
	s.SetText("Dim x")
	require.Len(t, s.Spans(), 1)

	s.SetText("x = 1")
	assert.Empty(t, s.Spans())
}

func TestAutoDetectMode(t *testing.T) {
	s := newTestSession(WithAutoDetectMode(true))
	require.NoError(t, s.Load(strings.NewReader("import os"), "/src/tool.py"))
	assert.Equal(t, highlight.Python, s.Mode())
	assert.NotEmpty(t, s.Spans())

	// an explicit mode is kept
	require.NoError(t, s.Load(strings.NewReader("Sub A()"), "/src/Module1.bas"))
	assert.Equal(t, highlight.Python, s.Mode())

	manual := newTestSession()
	require.NoError(t, manual.Load(strings.NewReader("import os"), "/src/tool.py"))
	assert.Equal(t, highlight.None, manual.Mode())
}

func TestPainted(t *testing.T) {
	s := newTestSession()
	s.SetMode(highlight.Python)
	s.SetText(`x = "a # b"`)

	assert.Len(t, s.Spans(), 2)
	assert.Equal(t, []highlight.Span{{Category: highlight.String, Line: 1, StartCol: 4, EndCol: 11}}, s.Painted())
}
