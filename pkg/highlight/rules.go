package highlight

import (
	"regexp"
	"strings"
)

// Rule is one pattern painted with one category.
type Rule struct {
	Pattern  *regexp.Regexp
	Category Category
	// WordBounded rules reject matches glued to non-ASCII letters, which
	// the ASCII \b of RE2 would otherwise accept.
	WordBounded bool
}

// Ruleset holds the rules of one mode in application order.
type Ruleset struct {
	Mode  Mode
	Rules []Rule
}

var (
	pythonKeywords = []string{
		"def", "class", "import", "from", "return", "if", "else", "for",
		"while", "try", "except", "with", "as", "in", "print",
	}

	vbaKeywords = []string{
		"Sub", "End", "Function", "Dim", "Set", "If", "Then", "Else", "For",
		"Each", "Next", "Exit", "Do", "Loop", "With",
	}
)

var rulesets = map[Mode]*Ruleset{
	Python: newPythonRules(),
	VBA:    newVBARules(),
}

// RulesFor returns the rule set for a mode, or nil for None.
func RulesFor(mode Mode) *Ruleset {
	return rulesets[mode]
}

func newPythonRules() *Ruleset {
	rs := &Ruleset{Mode: Python}
	rs.addRule(`\b(`+strings.Join(pythonKeywords, "|")+`)\b`, Keyword, true)
	rs.addRule(`#.*`, Comment, false)
	// no escape handling: a quote inside a literal ends it
	rs.addRule(`'[^']*'|"[^"]*"`, String, false)
	return rs
}

func newVBARules() *Ruleset {
	rs := &Ruleset{Mode: VBA}
	rs.addRule(`(?i)\b(`+strings.Join(vbaKeywords, "|")+`)\b`, Keyword, true)
	rs.addRule(`'.*`, Comment, false)
	rs.addRule(`"[^"]*"`, String, false)
	return rs
}

// addRule appends a rule; rules are applied in the order they were added.
func (rs *Ruleset) addRule(pattern string, category Category, wordBounded bool) {
	rs.Rules = append(rs.Rules, Rule{
		Pattern:     regexp.MustCompile(pattern),
		Category:    category,
		WordBounded: wordBounded,
	})
}
