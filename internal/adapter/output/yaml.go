package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats results as a YAML sequence.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// FormatPlacements writes placements as YAML.
func (f *YAMLFormatter) FormatPlacements(w io.Writer, reports []PlacementReport) error {
	return f.encode(w, reports)
}

// FormatFits writes fit results as YAML.
func (f *YAMLFormatter) FormatFits(w io.Writer, reports []FitReport) error {
	return f.encode(w, reports)
}

func (f *YAMLFormatter) encode(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
