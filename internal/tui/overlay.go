package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay draws box over base with its top-left corner at (left, top),
// measured in cells. Both may contain ANSI styling. Base lines are padded
// with spaces where the box reaches past them.
func Overlay(base, box string, left, top int) string {
	if box == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")

	for i, boxLine := range boxLines {
		row := top + i
		if row < 0 {
			continue
		}
		for len(baseLines) <= row {
			baseLines = append(baseLines, "")
		}
		baseLines[row] = overlayLine(baseLines[row], boxLine, left)
	}

	return strings.Join(baseLines, "\n")
}

func overlayLine(line, box string, left int) string {
	left = max(0, left)
	boxWidth := ansi.StringWidth(box)

	prefix := ansi.Truncate(line, left, "")
	if w := ansi.StringWidth(prefix); w < left {
		prefix += strings.Repeat(" ", left-w)
	}

	suffix := ""
	if ansi.StringWidth(line) > left+boxWidth {
		suffix = ansi.TruncateLeft(line, left+boxWidth, "")
	}

	return prefix + ansi.ResetStyle + box + ansi.ResetStyle + suffix
}
