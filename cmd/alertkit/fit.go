package main

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/alertkit/internal/adapter/output"
	"github.com/jmylchreest/alertkit/internal/config"
	"github.com/jmylchreest/alertkit/internal/textfit"
)

var fitOpts struct {
	width    int
	measure  string
	ellipsis string

	format   string
	template string
}

var fitCmd = &cobra.Command{
	Use:   "fit [text...]",
	Short: "Truncate text to a width with an ellipsis",
	Long: `Fit each text argument into --width and print the result.

Text that fits is printed unchanged. Longer text is cut at the last word
boundary that leaves room for the ellipsis, or mid-word when no boundary
fits. Without arguments, each line of stdin is fitted.

Examples:
  alertkit fit --width 20 "This is a very long alert message"
  git log --oneline | alertkit fit --width 40`,
	RunE: runFit,
}

func init() {
	rootCmd.AddCommand(fitCmd)

	fitCmd.Flags().IntVarP(&fitOpts.width, "width", "w", 40,
		"Available width")
	fitCmd.Flags().StringVarP(&fitOpts.measure, "measure", "m", "",
		"Width measure (cells, runes; default from config)")
	fitCmd.Flags().StringVar(&fitOpts.ellipsis, "ellipsis", textfit.Ellipsis,
		"Truncation marker")

	fitCmd.Flags().StringVarP(&fitOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	fitCmd.Flags().StringVar(&fitOpts.template, "template", "",
		"Custom Go template for plain output")
}

func runFit(cmd *cobra.Command, args []string) error {
	mode := fitOpts.measure
	if mode == "" {
		mode = getConfig().Measure.Mode
	}
	if !slices.Contains(config.ValidMeasureModes(), mode) {
		return fmt.Errorf("invalid measure mode %q (valid: %v)", mode, config.ValidMeasureModes())
	}

	texts := args
	if len(texts) == 0 {
		var err error
		texts, err = readLines(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	reports := fitReports(texts, mode, fitOpts.width, fitOpts.ellipsis)

	formatter := output.NewFormatter(output.FormatType(fitOpts.format), output.FormatterOptions{
		Template: fitOpts.template,
		Verbose:  globalOpts.verbose,
	})
	return formatter.FormatFits(cmd.OutOrStdout(), reports)
}

func fitReports(texts []string, mode string, width int, ellipsis string) []output.FitReport {
	measure := textfit.MeasurerFor(mode)

	reports := make([]output.FitReport, 0, len(texts))
	for _, text := range texts {
		result := textfit.FitWithEllipsis(text, measure, width, ellipsis)
		reports = append(reports, output.FitReport{
			Text:      text,
			Available: width,
			Measure:   mode,
			Result:    result,
			Width:     measure(result),
			Truncated: result != text,
		})
	}
	return reports
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
