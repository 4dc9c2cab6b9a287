package textenc

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// UTF8 is the canonical name reported for UTF-8 decodes.
const UTF8 = "utf-8"

// ErrUndecodable is returned by strict decoding when the bytes do not form
// valid text in the requested encoding.
var ErrUndecodable = errors.New("bytes are not valid in the requested encoding")

// ErrUnknownEncoding is returned when an encoding name has no decoder.
var ErrUnknownEncoding = errors.New("unknown encoding")

// unreliable single-byte guesses; the expected input is East-Asian-heavy so
// these are treated as UTF-8.
var denylist = map[string]bool{
	"ascii":        true,
	"us-ascii":     true,
	"windows-1252": true,
	"iso-8859-1":   true,
	"charmap":      true,
}

// names the detector reports that the indexes spell differently
var aliases = map[string]string{
	"gb-18030": "gb18030",
	"utf-8-sig": UTF8,
}

// Result describes one resolution.
type Result struct {
	Text     string
	Encoding string         // encoding actually used to produce Text
	Guess    *EncodingGuess // nil when the detector produced nothing
	Lossy    bool           // true when the replacement fallback was used
}

// Resolver decodes bytes using a Detector.
type Resolver struct {
	Detector Detector
}

// NewResolver creates a resolver. A nil detector means "never detects",
// which resolves everything as UTF-8.
func NewResolver(detector Detector) *Resolver {
	return &Resolver{Detector: detector}
}

var defaultResolver = NewResolver(NewDetector())

// Resolve decodes raw with the default statistical detector.
func Resolve(raw []byte) string {
	return defaultResolver.Resolve(raw)
}

// ResolveWithGuess is Resolve with the details of the decision.
func ResolveWithGuess(raw []byte) Result {
	return defaultResolver.ResolveWithGuess(raw)
}

// Resolve decodes raw. It never fails.
func (r *Resolver) Resolve(raw []byte) string {
	return r.ResolveWithGuess(raw).Text
}

// ResolveWithGuess decodes raw and reports which encoding was used.
func (r *Resolver) ResolveWithGuess(raw []byte) Result {
	res := Result{Encoding: UTF8}
	if len(raw) == 0 {
		return res
	}

	name := UTF8
	if r.Detector != nil {
		if guess, ok := r.Detector.Detect(raw); ok {
			g := guess
			res.Guess = &g
			name = resolveName(guess.Name)
		}
	}

	text, err := DecodeStrict(name, raw)
	if err != nil {
		res.Text = decodeLossy(raw)
		res.Encoding = UTF8
		res.Lossy = true
		return res
	}

	res.Text = text
	res.Encoding = name
	return res
}

// resolveName applies the denylist and alias table to a detector name.
func resolveName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || denylist[n] {
		return UTF8
	}
	if alias, ok := aliases[n]; ok {
		return alias
	}
	return n
}

// DecodeStrict decodes raw with the named encoding and fails instead of
// substituting replacement characters.
func DecodeStrict(name string, raw []byte) (string, error) {
	if resolveAlias(name) == UTF8 {
		if !utf8.Valid(raw) {
			return "", ErrUndecodable
		}
		return string(bytes.TrimPrefix(raw, bom)), nil
	}

	enc, err := lookup(name)
	if err != nil {
		return "", err
	}

	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.Join(ErrUndecodable, err)
	}
	if !bytes.ContainsRune(out, utf8.RuneError) {
		return string(out), nil
	}

	// a replacement rune is only legitimate when it was really in the input
	back, err := enc.NewEncoder().Bytes(out)
	if err != nil || !bytes.Equal(back, raw) {
		return "", ErrUndecodable
	}
	return string(out), nil
}

var bom = []byte{0xEF, 0xBB, 0xBF}

func resolveAlias(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[n]; ok {
		return alias
	}
	if n == "utf8" {
		return UTF8
	}
	return n
}

// lookup finds a decoder for an encoding name.
func lookup(name string) (encoding.Encoding, error) {
	n := resolveAlias(name)
	switch n {
	case "utf-32be":
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), nil
	case "utf-32le":
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), nil
	}

	if enc, err := htmlindex.Get(n); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := ianaindex.IANA.Encoding(n); err == nil && enc != nil {
		return enc, nil
	}
	return nil, ErrUnknownEncoding
}

// decodeLossy decodes raw as UTF-8, replacing each invalid byte with U+FFFD.
func decodeLossy(raw []byte) string {
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	}
	return string(out)
}
