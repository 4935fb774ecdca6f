// Package output provides output formatters for placement and fit results.
package output

import (
	"io"

	"github.com/jmylchreest/alertkit/internal/placement"
)

// Formatter formats layout results for output.
type Formatter interface {
	// FormatPlacements writes resolved placements to the writer.
	FormatPlacements(w io.Writer, reports []PlacementReport) error
	// FormatFits writes text fitting results to the writer.
	FormatFits(w io.Writer, reports []FitReport) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// FormatTypes returns the supported format names.
func FormatTypes() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template string // Custom template for plain format, executed per report
	Verbose  bool   // Include inputs in plain format
}

// PlacementReport is a resolved placement together with its inputs.
type PlacementReport struct {
	Anchor        placement.Anchor `json:"anchor" yaml:"anchor"`
	Margin        int              `json:"margin" yaml:"margin"`
	ParentWidth   int              `json:"parent_width" yaml:"parent_width"`
	ParentHeight  int              `json:"parent_height" yaml:"parent_height"`
	WidthFraction float64          `json:"width_fraction" yaml:"width_fraction"`
	X             float64          `json:"x" yaml:"x"`
	Y             float64          `json:"y" yaml:"y"`
	AlertWidth    int              `json:"alert_width" yaml:"alert_width"`
	// Top-left corner of an alert of AlertWidth by BoxHeight
	Left      int `json:"left" yaml:"left"`
	Top       int `json:"top" yaml:"top"`
	BoxHeight int `json:"box_height" yaml:"box_height"`
}

// NewPlacementReport combines a request and its result.
func NewPlacementReport(req placement.Request, res placement.Result, boxHeight int) PlacementReport {
	width := res.Width(req.ParentWidth)
	left, top := res.Origin(width, boxHeight)
	return PlacementReport{
		Anchor:        res.Anchor,
		Margin:        req.Margin,
		ParentWidth:   req.ParentWidth,
		ParentHeight:  req.ParentHeight,
		WidthFraction: res.RelativeWidth,
		X:             res.X,
		Y:             res.Y,
		AlertWidth:    width,
		Left:          left,
		Top:           top,
		BoxHeight:     boxHeight,
	}
}

// FitReport is the result of fitting one text into a width.
type FitReport struct {
	Text      string `json:"text" yaml:"text"`
	Available int    `json:"available" yaml:"available"`
	Measure   string `json:"measure" yaml:"measure"`
	Result    string `json:"result" yaml:"result"`
	Width     int    `json:"width" yaml:"width"`
	Truncated bool   `json:"truncated" yaml:"truncated"`
}
