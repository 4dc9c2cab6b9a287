// Package highlight computes keyword, comment and string spans for Python
// and VBA source with fixed regular expressions.
//
// Each category is matched independently on every line and the spans are
// returned in application order (keyword, comment, string). Overlaps are not
// reconciled: Paint reproduces the "last applied wins" rendering and
// Overlaps reports where categories collide.
package highlight

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Highlight returns the spans of text under mode. Mode None yields nil.
func Highlight(text string, mode Mode) []Span {
	rs := RulesFor(mode)
	if rs == nil {
		return nil
	}

	lines := strings.Split(text, "\n")
	var spans []Span
	for _, rule := range rs.Rules {
		for i, line := range lines {
			line = strings.TrimSuffix(line, "\r")
			spans = append(spans, matchLine(rule, line, i+1)...)
		}
	}
	return spans
}

func matchLine(rule Rule, line string, lineNo int) []Span {
	var spans []Span
	for _, loc := range rule.Pattern.FindAllStringIndex(line, -1) {
		if loc[0] == loc[1] {
			continue
		}
		if rule.WordBounded && !isWordBoundary(line, loc[0], loc[1]) {
			continue
		}
		start := utf8.RuneCountInString(line[:loc[0]])
		spans = append(spans, Span{
			Category: rule.Category,
			Line:     lineNo,
			StartCol: start,
			EndCol:   start + utf8.RuneCountInString(line[loc[0]:loc[1]]),
		})
	}
	return spans
}

// isWordBoundary reports whether line[start:end] is not glued to a Unicode
// word character on either side.
func isWordBoundary(line string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(line[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(line) {
		r, _ := utf8.DecodeRuneInString(line[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Paint flattens spans into non-overlapping runs, giving every rune the
// category of the last span that covers it. Runs are ordered by line and
// column.
func Paint(spans []Span) []Span {
	byLine := make(map[int][]Span)
	for _, s := range spans {
		if s.EndCol > s.StartCol {
			byLine[s.Line] = append(byLine[s.Line], s)
		}
	}

	lineNos := make([]int, 0, len(byLine))
	for n := range byLine {
		lineNos = append(lineNos, n)
	}
	sort.Ints(lineNos)

	var runs []Span
	for _, n := range lineNos {
		width := 0
		for _, s := range byLine[n] {
			if s.EndCol > width {
				width = s.EndCol
			}
		}

		cells := make([]Category, width)
		for _, s := range byLine[n] {
			for c := s.StartCol; c < s.EndCol; c++ {
				cells[c] = s.Category
			}
		}

		for c := 0; c < width; {
			if cells[c] == 0 {
				c++
				continue
			}
			start := c
			for c < width && cells[c] == cells[start] {
				c++
			}
			runs = append(runs, Span{Category: cells[start], Line: n, StartCol: start, EndCol: c})
		}
	}
	return runs
}

// Overlap is a pair of spans of different categories sharing at least one
// rune. Later is the span applied after Earlier.
type Overlap struct {
	Earlier Span
	Later   Span
}

// Overlaps lists collisions between categories, in application order.
func Overlaps(spans []Span) []Overlap {
	byLine := make(map[int][]Span)
	var order []int
	for _, s := range spans {
		if _, seen := byLine[s.Line]; !seen {
			order = append(order, s.Line)
		}
		byLine[s.Line] = append(byLine[s.Line], s)
	}
	sort.Ints(order)

	var out []Overlap
	for _, n := range order {
		line := byLine[n]
		for i := range line {
			for j := i + 1; j < len(line); j++ {
				a, b := line[i], line[j]
				if a.Category == b.Category {
					continue
				}
				if a.StartCol < b.EndCol && b.StartCol < a.EndCol {
					out = append(out, Overlap{Earlier: a, Later: b})
				}
			}
		}
	}
	return out
}
