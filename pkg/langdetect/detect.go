// Package langdetect classifies files as TeX sources using go-enry's
// linguist data.
package langdetect

import (
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// TeX is the linguist language name chktex can lint.
const TeX = "TeX"

// LanguagesForExtension returns the linguist languages registered for ext.
// ext may be given with or without the leading dot.
func LanguagesForExtension(ext string) []string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return nil
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return enry.GetLanguagesByExtension("file"+strings.ToLower(ext), nil, nil)
}

// IsTeXExtension reports whether linguist maps ext to TeX.
func IsTeXExtension(ext string) bool {
	return slices.Contains(LanguagesForExtension(ext), TeX)
}
