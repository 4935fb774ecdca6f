package theme

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a theme file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Design is the resolved look of one alert type.
type Design struct {
	Background string `toml:"background" yaml:"background"`
	Foreground string `toml:"foreground" yaml:"foreground"`
	Icon       string `toml:"icon" yaml:"icon"`
	Padding    int    `toml:"padding" yaml:"padding"`
	Bold       bool   `toml:"bold" yaml:"bold"`
}

// Overrides are per-alert style options applied on top of a theme design.
// Nil and empty fields keep the theme value.
type Overrides struct {
	Background string
	Foreground string
	Icon       *string
	Padding    *int
	Bold       *bool
}

// Merge returns d with the non-empty overrides applied.
func (d Design) Merge(o Overrides) Design {
	if o.Background != "" {
		d.Background = o.Background
	}
	if o.Foreground != "" {
		d.Foreground = o.Foreground
	}
	if o.Icon != nil {
		d.Icon = *o.Icon
	}
	if o.Padding != nil {
		d.Padding = *o.Padding
	}
	if o.Bold != nil {
		d.Bold = *o.Bold
	}
	return d
}

// themeFile is the on-disk layout of a theme file.
type themeFile struct {
	Foreground string     `toml:"foreground" yaml:"foreground"`
	Padding    *int       `toml:"padding" yaml:"padding"`
	Bold       bool       `toml:"bold" yaml:"bold"`
	Success    designFile `toml:"success" yaml:"success"`
	Info       designFile `toml:"info" yaml:"info"`
	Warning    designFile `toml:"warning" yaml:"warning"`
	Error      designFile `toml:"error" yaml:"error"`
}

// designFile is one alert type section. Unset fields inherit the theme-wide value.
type designFile struct {
	Background string `toml:"background" yaml:"background"`
	Foreground string `toml:"foreground" yaml:"foreground"`
	Icon       string `toml:"icon" yaml:"icon"`
	Padding    *int   `toml:"padding" yaml:"padding"`
	Bold       *bool  `toml:"bold" yaml:"bold"`
}

func (f designFile) overrides() Overrides {
	o := Overrides{
		Background: f.Background,
		Foreground: f.Foreground,
		Padding:    f.Padding,
		Bold:       f.Bold,
	}
	if f.Icon != "" {
		o.Icon = &f.Icon
	}
	return o
}

// Theme holds the designs of all alert types.
type Theme struct {
	Name      string    // Theme name (without extension)
	Path      string    // Full path to the theme file (empty for embedded)
	ModTime   time.Time // Last modification time
	IsDefault bool      // True if this is the embedded default theme

	designs map[Type]Design
}

// Parse decodes theme content in the given format.
func Parse(name string, data []byte, format Format) (*Theme, error) {
	var s themeFile
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to parse theme %q: %w", name, err)
		}
	default:
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse theme %q: %w", name, err)
		}
	}

	padding := 1
	if s.Padding != nil {
		padding = *s.Padding
	}

	base := Design{Foreground: s.Foreground, Padding: padding, Bold: s.Bold}
	designs := make(map[Type]Design, len(typeNames))
	for t, f := range map[Type]designFile{
		Success: s.Success,
		Info:    s.Info,
		Warning: s.Warning,
		Error:   s.Error,
	} {
		designs[t] = base.Merge(f.overrides())
	}

	return &Theme{Name: name, designs: designs}, nil
}

// NewTheme loads a theme file. The format follows the file extension.
func NewTheme(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(name, data, FormatForPath(path))
	if err != nil {
		return nil, err
	}
	t.Path = path
	t.ModTime = info.ModTime()
	return t, nil
}

// FormatForPath returns the theme format implied by a file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Design returns the design for an alert type.
func (t *Theme) Design(typ Type) Design {
	if d, ok := t.designs[typ]; ok {
		return d
	}
	return t.designs[Info]
}

// Reload re-reads the theme from disk if it has been modified.
// Themes are immutable; a modified file yields a fresh Theme and true.
func (t *Theme) Reload() (*Theme, bool, error) {
	if t.Path == "" {
		return t, false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return t, false, err
	}

	if !info.ModTime().After(t.ModTime) {
		return t, false, nil
	}

	fresh, err := NewTheme(t.Name, t.Path)
	if err != nil {
		return t, false, err
	}
	return fresh, true, nil
}
