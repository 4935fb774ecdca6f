package textfit

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Cells measures terminal cells, ignoring ANSI escape sequences.
func Cells(text string) int {
	return ansi.StringWidth(text)
}

// Runes measures East Asian aware rune widths of plain text.
func Runes(text string) int {
	return runewidth.StringWidth(text)
}

// Fixed returns a Measurer where every rune is unit wide.
func Fixed(unit int) Measurer {
	return func(text string) int {
		return utf8.RuneCountInString(text) * unit
	}
}

// Scaled multiplies the width reported by m, turning cells into pixels.
func Scaled(m Measurer, factor int) Measurer {
	return func(text string) int {
		return m(text) * factor
	}
}

// MeasurerFor returns the Measurer registered under name, falling back to Cells.
func MeasurerFor(name string) Measurer {
	switch name {
	case "runes":
		return Runes
	default:
		return Cells
	}
}
