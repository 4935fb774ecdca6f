package theme

import (
	"embed"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// EmbeddedThemes contains all bundled theme files.
//
//go:embed themes/*.toml themes/*.yaml
var EmbeddedThemes embed.FS

// DefaultThemeName is the name of the built-in default theme.
const DefaultThemeName = "default"

// BundledThemes lists all embedded theme names.
var BundledThemes = []string{"catppuccin", "default", "minimal"}

var themeExtensions = []string{".toml", ".yaml", ".yml"}

// GetEmbeddedTheme retrieves a bundled theme by name.
// Returns the raw content, its format and whether it was found.
func GetEmbeddedTheme(name string) ([]byte, Format, bool) {
	for _, ext := range themeExtensions {
		path := "themes/" + name + ext
		data, err := EmbeddedThemes.ReadFile(path)
		if err == nil {
			return data, FormatForPath(path), true
		}
	}
	return nil, "", false
}

// LoadEmbedded parses a bundled theme.
func LoadEmbedded(name string) (*Theme, bool, error) {
	data, format, found := GetEmbeddedTheme(name)
	if !found {
		return nil, false, nil
	}
	t, err := Parse(name, data, format)
	if err != nil {
		return nil, true, err
	}
	t.IsDefault = name == DefaultThemeName
	return t, true, nil
}

// Default returns the embedded default theme.
func Default() *Theme {
	t, _, err := LoadEmbedded(DefaultThemeName)
	if err != nil || t == nil {
		// The default theme is part of the binary; failing here is a build defect.
		panic("theme: embedded default theme is invalid")
	}
	return t
}

// ListEmbeddedThemes returns names of all embedded themes.
func ListEmbeddedThemes() []string {
	entries, err := fs.ReadDir(EmbeddedThemes, "themes")
	if err != nil {
		return BundledThemes
	}

	var themes []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := themeName(entry.Name()); ok {
			themes = append(themes, name)
		}
	}
	sort.Strings(themes)
	return themes
}

// IsEmbeddedTheme checks if a theme name is bundled.
func IsEmbeddedTheme(name string) bool {
	_, _, found := GetEmbeddedTheme(name)
	return found
}

// themeName strips a known theme extension from a file name.
func themeName(file string) (string, bool) {
	ext := filepath.Ext(file)
	for _, known := range themeExtensions {
		if ext == known {
			return strings.TrimSuffix(file, ext), true
		}
	}
	return "", false
}
