package highlight

import (
	"fmt"
	"strings"
)

// Category is the kind of text a span covers.
type Category int

const (
	Keyword Category = iota + 1
	Comment
	String
)

// Categories lists all categories in application order.
var Categories = []Category{Keyword, Comment, String}

func (c Category) String() string {
	switch c {
	case Keyword:
		return "keyword"
	case Comment:
		return "comment"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Span marks a highlighted range of a single line. Line is 1-based, columns
// are 0-based rune offsets and EndCol is exclusive.
type Span struct {
	Category Category
	Line     int
	StartCol int
	EndCol   int
}

func (s Span) String() string {
	return fmt.Sprintf("%s@%d:%d-%d", s.Category, s.Line, s.StartCol, s.EndCol)
}

// Mode selects a rule set.
type Mode int

const (
	None Mode = iota
	Python
	VBA
)

var modeNames = map[Mode]string{
	None:   "none",
	Python: "python",
	VBA:    "vba",
}

// Modes returns every mode in menu order.
func Modes() []Mode {
	return []Mode{None, Python, VBA}
}

// ModeNames returns the names of every mode in menu order.
func ModeNames() []string {
	names := make([]string, 0, len(modeNames))
	for _, m := range Modes() {
		names = append(names, m.String())
	}
	return names
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "none"
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(name string) (Mode, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for m, s := range modeNames {
		if s == n {
			return m, nil
		}
	}
	return None, fmt.Errorf("unknown highlight mode %q", name)
}
