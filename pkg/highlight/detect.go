package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// VBA module extensions chroma does not register.
var vbaExtensions = map[string]bool{
	".bas": true,
	".cls": true,
	".frm": true,
	".vba": true,
	".vbs": true,
}

// DetectMode guesses a mode from a file name using chroma's lexer registry.
// It returns None when the file is neither Python nor a Visual Basic dialect.
func DetectMode(filename string) Mode {
	base := filepath.Base(filename)
	if base == "" || base == "." {
		return None
	}
	if vbaExtensions[strings.ToLower(filepath.Ext(base))] {
		return VBA
	}

	lexer := lexers.Match(base)
	if lexer == nil {
		return None
	}

	name := strings.ToLower(lexer.Config().Name)
	switch {
	case strings.HasPrefix(name, "python"):
		return Python
	case strings.HasPrefix(name, "vb"):
		return VBA
	}
	return None
}
