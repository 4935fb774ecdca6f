package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// FormatPlacements writes placements as a JSON array.
func (f *JSONFormatter) FormatPlacements(w io.Writer, reports []PlacementReport) error {
	return f.encode(w, reports)
}

// FormatFits writes fit results as a JSON array.
func (f *JSONFormatter) FormatFits(w io.Writer, reports []FitReport) error {
	return f.encode(w, reports)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
