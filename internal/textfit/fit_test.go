package textfit

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tenPerRune = Fixed(10)

func TestFit_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		available int
		expected  string
	}{
		{"fits verbatim", "Short", 1000, "Short"},
		{"word boundary", "This is a very long alert message", 150, "This is a..."},
		{"budget below ellipsis", "X", 5, "..."},
		{"drops partial word", "Hello World again", 110, "Hello..."},
		{"keeps whole word before space", "This is fine today", 100, "This is..."},
		{"no spaces falls back to characters", "abcdefghijklmnopqrstuvwxyz", 100, "abcd..."},
		{"exact fit", "0123456789", 100, "0123456789"},
		{"empty", "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fit(tt.text, tenPerRune, tt.available))
		})
	}
}

func TestFit_LongMessageStaysWithinBudget(t *testing.T) {
	result := Fit("This is a very long alert message", tenPerRune, 150)

	assert.True(t, strings.HasSuffix(result, Ellipsis))
	assert.LessOrEqual(t, tenPerRune(result), 150)
	assert.True(t, strings.HasPrefix("This is a very long alert message", strings.TrimSuffix(result, Ellipsis)))
}

func TestFit_FitsReturnsInput(t *testing.T) {
	texts := []string{"a", "alert", "two words", "日本語のテキスト"}
	for _, text := range texts {
		avail := Cells(text)
		assert.Equal(t, text, Fit(text, Cells, avail))
		assert.Equal(t, text, Fit(text, Cells, avail+10))
	}
}

func TestFit_WidthBoundProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcdefghij klmnop qrstuv wxyz ")
	ellipsisWidth := tenPerRune(Ellipsis)

	for length := 0; length <= 500; length += 7 {
		var b strings.Builder
		for range length {
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		text := b.String()

		for _, avail := range []int{0, 10, 35, 60, 150, 1000, 5000} {
			result := Fit(text, tenPerRune, avail)
			require.LessOrEqual(t, tenPerRune(result), avail+ellipsisWidth,
				"len=%d avail=%d result=%q", length, avail, result)
			if result != text {
				require.True(t, strings.HasSuffix(result, Ellipsis))
			}
			if result != Ellipsis {
				require.LessOrEqual(t, len([]rune(result)), len([]rune(text)))
			}
		}
	}
}

func TestFit_Deterministic(t *testing.T) {
	text := "Backup finished with 3 warnings, see the log for details"
	first := Fit(text, tenPerRune, 220)
	second := Fit(text, tenPerRune, 220)
	assert.Equal(t, first, second)
}

func TestFit_OriginalTextRecoversOnGrow(t *testing.T) {
	original := "Deployment of service api-gateway completed successfully"

	narrow := Fit(original, tenPerRune, 200)
	wide := Fit(original, tenPerRune, 400)

	require.True(t, strings.HasSuffix(narrow, Ellipsis))
	assert.Greater(t, len(wide), len(narrow))

	// Refitting the truncated text can never get the lost words back.
	compounded := Fit(narrow, tenPerRune, 400)
	assert.Equal(t, narrow, compounded)
	assert.NotEqual(t, wide, compounded)
}

func TestFitWithEllipsis_CustomMarker(t *testing.T) {
	result := FitWithEllipsis("Hello World again", tenPerRune, 90, "…")
	assert.Equal(t, "Hello…", result)
}

func TestFit_WideRunes(t *testing.T) {
	text := "通知 メッセージ が 長すぎます"
	result := Fit(text, Cells, 14)

	assert.True(t, strings.HasSuffix(result, Ellipsis))
	assert.LessOrEqual(t, Cells(result), 14)
}

func TestFit_StyledTextKeepsEscapesWhole(t *testing.T) {
	result := Fit("\x1b[31mhello world again\x1b[0m", Cells, 14)
	assert.Equal(t, "\x1b[31mhello world\x1b[m...", result)
	assert.LessOrEqual(t, Cells(result), 14)

	// The colour starts after the cut, so nothing needs closing.
	assert.Equal(t, "ab...", Fit("ab\x1b[31mcdefghij\x1b[0m", Cells, 8))

	result = Fit("ab\x1b[31mcdefghij\x1b[0m", Cells, 9)
	assert.Equal(t, "ab\x1b[31mc\x1b[m...", result)
}

func TestFit_GraphemeClusters(t *testing.T) {
	family := "\U0001F468\u200D\U0001F469\u200D\U0001F467\u200D\U0001F466"
	accented := "e\u0301"

	tests := []struct {
		name      string
		cluster   string
		count     int
		available int
	}{
		{"zwj emoji", family, 10, 19},
		{"combining marks", accented, 12, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat(tt.cluster, tt.count)
			result := Fit(text, Cells, tt.available)

			require.True(t, strings.HasSuffix(result, Ellipsis))
			assert.LessOrEqual(t, Cells(result), tt.available)

			kept := strings.TrimSuffix(result, Ellipsis)
			assert.NotEmpty(t, kept)
			assert.Empty(t, strings.ReplaceAll(kept, tt.cluster, ""), "cut inside a cluster: %q", kept)
		})
	}
}

func TestFit_WholeFirstWord(t *testing.T) {
	assert.Equal(t, "Greetings...", Fit("Greetings World", tenPerRune, 120))
}

func TestMeasurers(t *testing.T) {
	assert.Equal(t, 5, Cells("hello"))
	assert.Equal(t, 5, Cells("\x1b[31mhello\x1b[0m"))
	assert.Equal(t, 4, Runes("日本"))
	assert.Equal(t, 30, Fixed(10)("abc"))
	assert.Equal(t, 16, Scaled(Cells, 8)("ab"))
	assert.Equal(t, 2, MeasurerFor("runes")("日"))
	assert.Equal(t, 3, MeasurerFor("cells")("abc"))
}
