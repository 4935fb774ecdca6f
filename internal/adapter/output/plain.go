package output

import (
	"fmt"
	"io"
	"strconv"
	"text/template"
)

// PlainFormatter formats results as plain text, one line per report.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
// An invalid template falls back to the default format.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// FormatPlacements writes one line per placement.
func (f *PlainFormatter) FormatPlacements(w io.Writer, reports []PlacementReport) error {
	for _, r := range reports {
		if f.template != nil {
			if err := f.execute(w, r); err != nil {
				return err
			}
			continue
		}

		line := fmt.Sprintf("%-6s x=%s y=%s width=%d left=%d top=%d",
			r.Anchor, formatFloat(r.X), formatFloat(r.Y), r.AlertWidth, r.Left, r.Top)
		if f.opts.Verbose {
			line += fmt.Sprintf(" (parent=%dx%d margin=%d fraction=%s)",
				r.ParentWidth, r.ParentHeight, r.Margin, formatFloat(r.WidthFraction))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatFits writes the fitted text, one line per report.
func (f *PlainFormatter) FormatFits(w io.Writer, reports []FitReport) error {
	for _, r := range reports {
		if f.template != nil {
			if err := f.execute(w, r); err != nil {
				return err
			}
			continue
		}

		line := r.Result
		if f.opts.Verbose {
			line = fmt.Sprintf("%s (%d/%d %s)", r.Result, r.Width, r.Available, r.Measure)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// execute runs the custom template and terminates the line.
func (f *PlainFormatter) execute(w io.Writer, data any) error {
	if err := f.template.Execute(w, data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
