// Package translations registers the English and Japanese UI catalogs with
// fyne's lang package.
package translations

import (
	"embed"
	"fmt"

	"fyne.io/fyne/v2/lang"
)

//go:embed locales/*.json
var catalogs embed.FS

// Load adds the embedded catalogs. It must run before any window is built.
func Load() error {
	if err := lang.AddTranslationsFS(catalogs, "locales"); err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}
	return nil
}
