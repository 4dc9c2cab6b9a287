// Package linenum adds and removes "NNN | " line-number prefixes.
//
// Stripping recognizes any leading run of whitespace, digits, an optional
// single separator ('|', ':' or '.') and whitespace, so text numbered by
// other tools ("12: foo", "  7. bar") is cleaned as well. Whitespace and
// digits are matched in their Unicode sense, which covers full-width digits
// and the ideographic space.
package linenum

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Separator is written between the number and the line content.
const Separator = " | "

// Width is the zero-padded width of a rendered line number.
const Width = 3

// prefixPattern matches one or more numbering prefixes at the start of a line.
// Repeated prefixes are consumed together so stripping is idempotent. After a
// separator only one blank is consumed, which keeps the indentation of
// numbered source code intact.
var prefixPattern = regexp.MustCompile(`^(?:[\s\p{Z}]*\p{Nd}+(?:[\s\p{Z}]*[|:.][\s\p{Z}]?|[\s\p{Z}]*))+`)

// Split breaks text into lines on '\n'. A trailing newline yields a trailing
// empty line.
func Split(text string) []string {
	return strings.Split(text, "\n")
}

// Join is the inverse of Split.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// StripLine removes the numbering prefix of a single line, if any.
func StripLine(line string) string {
	loc := prefixPattern.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return line[loc[1]:]
}

// Strip removes numbering prefixes from every line. The input is not modified.
func Strip(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = StripLine(line)
	}
	return out
}

// Remove is Strip.
func Remove(lines []string) []string {
	return Strip(lines)
}

// Prefix renders the numbering prefix for 1-based line n.
func Prefix(n int) string {
	return fmt.Sprintf("%0*d%s", Width, n, Separator)
}

// Add strips existing prefixes and numbers every line starting at 1.
func Add(lines []string) []string {
	stripped := Strip(lines)
	for i, line := range stripped {
		stripped[i] = Prefix(i+1) + line
	}
	return stripped
}

// AddText numbers a whole buffer.
func AddText(text string) string {
	return Join(Add(Split(text)))
}

// RemoveText strips numbering from a whole buffer.
func RemoveText(text string) string {
	return Join(Remove(Split(text)))
}

// InsertNumberedLine inserts a line break at the cursor followed by the
// prefix of the next line. row is 0-based, col is a rune column within the
// row and is clamped to the line. The returned cursor points right after the
// inserted prefix.
func InsertNumberedLine(text string, row, col int) (string, int, int) {
	lines := Split(text)
	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}

	line := lines[row]
	if col < 0 {
		col = 0
	}
	if n := utf8.RuneCountInString(line); col > n {
		col = n
	}

	offset := byteOffset(line, col)
	prefix := Prefix(row + 2)

	lines[row] = line[:offset]
	rest := prefix + line[offset:]
	lines = append(lines[:row+1], append([]string{rest}, lines[row+1:]...)...)

	return Join(lines), row + 1, utf8.RuneCountInString(prefix)
}

// byteOffset converts a rune column into a byte offset within s.
func byteOffset(s string, col int) int {
	i := 0
	for offset := range s {
		if i == col {
			return offset
		}
		i++
	}
	return len(s)
}
