package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/alertkit/internal/adapter/output"
	"github.com/jmylchreest/alertkit/internal/alert"
	"github.com/jmylchreest/alertkit/internal/placement"
)

var placeOpts struct {
	width     int
	height    int
	boxHeight int
	alert     alertFlags

	format   string
	template string
}

var placeCmd = &cobra.Command{
	Use:   "place [anchor...]",
	Short: "Print where alerts would be placed",
	Long: `Resolve alert placements for a parent of the given size and print them.

Without arguments, all nine anchors are resolved. x and y are the anchor
point of the alert, left and top the corner of an alert box of the resolved
width and --box-height.

Examples:
  # All anchors in a 1920x1080 window with a 15px margin
  alertkit place --width 1920 --height 1080 --margin 15

  # Bottom-right as JSON
  alertkit place se --format json

  # Only the top-left corner
  alertkit place ne --template '{{.Left}},{{.Top}}'`,
	RunE: runPlace,
}

func init() {
	rootCmd.AddCommand(placeCmd)

	placeCmd.Flags().IntVarP(&placeOpts.width, "width", "W", 80,
		"Parent width")
	placeCmd.Flags().IntVarP(&placeOpts.height, "height", "H", 24,
		"Parent height")
	placeCmd.Flags().IntVar(&placeOpts.boxHeight, "box-height", 1,
		"Alert height used for the top-left corner")
	placeOpts.alert.register(placeCmd)

	placeCmd.Flags().StringVarP(&placeOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	placeCmd.Flags().StringVar(&placeOpts.template, "template", "",
		"Custom Go template for plain output")
}

func runPlace(cmd *cobra.Command, args []string) error {
	if placeOpts.width < 0 || placeOpts.height < 0 {
		return fmt.Errorf("parent size must not be negative: %dx%d", placeOpts.width, placeOpts.height)
	}

	opts, err := placeOpts.alert.apply(cmd.Flags(), getConfig().Options())
	if err != nil {
		return err
	}

	anchors, err := parseAnchors(args)
	if err != nil {
		return err
	}

	reports, err := placementReports(anchors, opts, placeOpts.width, placeOpts.height, placeOpts.boxHeight)
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(output.FormatType(placeOpts.format), output.FormatterOptions{
		Template: placeOpts.template,
		Verbose:  globalOpts.verbose,
	})
	return formatter.FormatPlacements(cmd.OutOrStdout(), reports)
}

// parseAnchors parses anchor arguments, all anchors when there are none.
func parseAnchors(args []string) ([]placement.Anchor, error) {
	if len(args) == 0 {
		return placement.Anchors(), nil
	}

	anchors := make([]placement.Anchor, 0, len(args))
	for _, arg := range args {
		anchor, err := placement.ParseAnchor(arg)
		if err != nil {
			return nil, err
		}
		anchors = append(anchors, anchor)
	}
	return anchors, nil
}

func placementReports(anchors []placement.Anchor, opts alert.Options, width, height, boxHeight int) ([]output.PlacementReport, error) {
	reports := make([]output.PlacementReport, 0, len(anchors))
	for _, anchor := range anchors {
		req := placement.Request{
			Anchor:        anchor,
			Margin:        opts.Margin,
			ParentWidth:   width,
			ParentHeight:  height,
			WidthFraction: opts.WidthFraction,
		}
		res, err := placement.ResolveRequest(req)
		if err != nil {
			return nil, err
		}
		reports = append(reports, output.NewPlacementReport(req, res, boxHeight))
	}
	return reports, nil
}
