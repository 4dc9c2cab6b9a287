// Package session holds the one open document: its text, its backing file,
// the highlight mode and the spans computed for it.
//
// A Session is owned by the UI event loop and is not safe for concurrent use.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ispapp/codebridge/pkg/highlight"
	"github.com/ispapp/codebridge/pkg/linenum"
	"github.com/ispapp/codebridge/pkg/textenc"
	"github.com/natefinch/atomic"
)

// UntitledName is reported by Name when the document has no path.
const UntitledName = "untitled.txt"

// Document is the in-memory text and its optional backing file.
type Document struct {
	Buffer string
	Path   string
}

// LoadInfo describes how the last loaded file was decoded.
type LoadInfo struct {
	Detected string // detector's guess, empty when none
	Encoding string // encoding used for the buffer
	Lossy    bool
	Size     int
}

// Session mediates load, save and the buffer transforms.
type Session struct {
	doc      Document
	mode     highlight.Mode
	spans    []highlight.Span
	dirty    bool
	lastLoad LoadInfo

	resolver       *textenc.Resolver
	autoDetectMode bool
	logger         *slog.Logger
	listeners      []func()
}

// Option configures a Session.
type Option func(*Session)

// WithResolver replaces the default statistical resolver.
func WithResolver(r *textenc.Resolver) Option {
	return func(s *Session) { s.resolver = r }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithAutoDetectMode makes Load pick a mode from the file name while the
// current mode is None.
func WithAutoDetectMode(enabled bool) Option {
	return func(s *Session) { s.autoDetectMode = enabled }
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		resolver: textenc.NewResolver(textenc.NewDetector()),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to run after every change of text, path or mode.
func (s *Session) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Session) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// Text returns the buffer.
func (s *Session) Text() string { return s.doc.Buffer }

// Path returns the backing file path, empty when there is none.
func (s *Session) Path() string { return s.doc.Path }

// Document returns a copy of the document.
func (s *Session) Document() Document { return s.doc }

// Dirty reports unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// Mode returns the highlight mode.
func (s *Session) Mode() highlight.Mode { return s.mode }

// LastLoad describes the most recent successful load.
func (s *Session) LastLoad() LoadInfo { return s.lastLoad }

// Name returns the base name of the backing file.
func (s *Session) Name() string {
	if s.doc.Path == "" {
		return UntitledName
	}
	return filepath.Base(s.doc.Path)
}

// Spans returns the current highlight spans in application order.
func (s *Session) Spans() []highlight.Span {
	out := make([]highlight.Span, len(s.spans))
	copy(out, s.spans)
	return out
}

// Painted returns the spans flattened the way they are displayed.
func (s *Session) Painted() []highlight.Span {
	return highlight.Paint(s.spans)
}

// SetText replaces the buffer with user-edited text.
func (s *Session) SetText(text string) {
	if text == s.doc.Buffer {
		return
	}
	s.doc.Buffer = text
	s.dirty = true
	s.rehighlight()
	s.notify()
}

// SetMode changes the highlight mode and recomputes all spans.
func (s *Session) SetMode(mode highlight.Mode) {
	s.mode = mode
	s.rehighlight()
	s.notify()
}

// rehighlight clears every span and recomputes them over the whole buffer.
func (s *Session) rehighlight() {
	s.spans = nil
	s.spans = highlight.Highlight(s.doc.Buffer, s.mode)

	if overlaps := highlight.Overlaps(s.spans); len(overlaps) > 0 {
		s.logger.Debug("overlapping highlight spans",
			"mode", s.mode.String(),
			"count", len(overlaps),
			"first", overlaps[0].Later.String())
	}
}

// Load reads all bytes from r, decodes them and replaces the buffer. On a
// read failure the buffer and path are left unchanged.
func (s *Session) Load(r io.Reader, path string) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		s.logger.Error("failed to read file", "op", "open", "path", path, "error", err)
		return NewOperationError("open", path, fmt.Errorf("%w: %w", ErrUnreadable, err))
	}

	res := s.resolver.ResolveWithGuess(raw)
	info := LoadInfo{Encoding: res.Encoding, Lossy: res.Lossy, Size: len(raw)}
	if res.Guess != nil {
		info.Detected = res.Guess.Name
	}

	s.doc = Document{
		Buffer: textenc.NormalizeLineEndings(res.Text),
		Path:   path,
	}
	s.lastLoad = info
	s.dirty = false

	if s.autoDetectMode && s.mode == highlight.None {
		s.mode = highlight.DetectMode(path)
	}
	s.rehighlight()

	s.logger.Info("file loaded",
		"op", "open",
		"path", path,
		"bytes", info.Size,
		"detected", info.Detected,
		"encoding", info.Encoding,
		"lossy", info.Lossy)

	s.notify()
	return nil
}

// LoadFile opens path and loads it.
func (s *Session) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		s.logger.Error("failed to open file", "op", "open", "path", path, "error", err)
		return NewOperationError("open", path, fmt.Errorf("%w: %w", ErrUnreadable, err))
	}
	defer f.Close()

	return s.Load(f, path)
}

// content is what gets written: the buffer without trailing whitespace.
func (s *Session) content() string {
	return strings.TrimRightFunc(s.doc.Buffer, unicode.IsSpace)
}

// Save writes the buffer to the backing path. Without a path it returns
// ErrNoPath and the caller must go through SaveAs.
func (s *Session) Save() error {
	if s.doc.Path == "" {
		return NewOperationError("save", "", ErrNoPath)
	}
	if err := s.writeFile(s.doc.Path); err != nil {
		return err
	}
	s.dirty = false
	s.notify()
	return nil
}

// SaveAs writes the buffer to path and makes it the backing path.
func (s *Session) SaveAs(path string) error {
	if path == "" {
		return NewOperationError("save", "", ErrNoPath)
	}
	if err := s.writeFile(path); err != nil {
		return err
	}
	s.doc.Path = path
	s.dirty = false
	s.notify()
	return nil
}

// SaveTo writes the buffer to w, typically a writer handed out by a save
// dialog, and makes path the backing path.
func (s *Session) SaveTo(w io.Writer, path string) error {
	n, err := io.WriteString(w, s.content())
	if err != nil {
		s.logger.Error("failed to write file", "op", "save", "path", path, "error", err)
		return NewOperationError("save", path, fmt.Errorf("%w: %w", ErrWriteFailed, err))
	}
	if path != "" {
		s.doc.Path = path
	}
	s.dirty = false
	s.logger.Info("file saved", "op", "save", "path", path, "bytes", n)
	s.notify()
	return nil
}

// writeFile replaces path atomically with the UTF-8 content.
func (s *Session) writeFile(path string) error {
	_, statErr := os.Stat(path)
	created := errors.Is(statErr, os.ErrNotExist)

	content := s.content()
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		s.logger.Error("failed to write file", "op", "save", "path", path, "error", err)
		return NewOperationError("save", path, fmt.Errorf("%w: %w", ErrWriteFailed, err))
	}
	if created {
		if err := os.Chmod(path, 0644); err != nil {
			s.logger.Warn("failed to set file mode", "path", path, "error", err)
		}
	}

	s.logger.Info("file saved", "op", "save", "path", path, "bytes", len(content))
	return nil
}

// AddLineNumbers renumbers every line of the buffer.
func (s *Session) AddLineNumbers() {
	s.transform(linenum.AddText)
}

// RemoveLineNumbers strips numbering from every line of the buffer.
func (s *Session) RemoveLineNumbers() {
	s.transform(linenum.RemoveText)
}

// InsertNumberedLine splits the line at the cursor and starts the new line
// with the next number. It returns the new cursor position.
func (s *Session) InsertNumberedLine(row, col int) (int, int) {
	text, row, col := linenum.InsertNumberedLine(s.doc.Buffer, row, col)
	s.doc.Buffer = text
	s.dirty = true
	s.rehighlight()
	s.notify()
	return row, col
}

func (s *Session) transform(fn func(string) string) {
	next := fn(s.doc.Buffer)
	if next != s.doc.Buffer {
		s.doc.Buffer = next
		s.dirty = true
	}
	s.rehighlight()
	s.notify()
}
