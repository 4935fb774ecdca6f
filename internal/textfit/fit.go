// Package textfit shortens alert text to fit a width budget.
package textfit

import "github.com/charmbracelet/x/ansi"

// Ellipsis marks truncated text.
const Ellipsis = "..."

// Measurer returns the rendered width of a string. It must be pure and
// monotonic non-decreasing in string length.
type Measurer func(text string) int

// Fit returns text unchanged when it fits within available, otherwise a
// shortened copy ending in Ellipsis. Callers must pass the original text on
// every call: fitting an already truncated string loses information for good.
func Fit(text string, measure Measurer, available int) string {
	return FitWithEllipsis(text, measure, available, Ellipsis)
}

// FitWithEllipsis is Fit with a custom truncation marker.
//
// The result is the text itself, a word-boundary cut followed by the marker,
// a character cut followed by the marker, or the bare marker when there is no
// room for any text. Only the bare marker may exceed available.
//
// Cuts fall between grapheme clusters and never inside an escape sequence.
// A cut that keeps any escape sequence closes the styling before the marker.
func FitWithEllipsis(text string, measure Measurer, available int, ellipsis string) string {
	if measure(text) <= available {
		return text
	}

	budget := available - measure(ellipsis)
	t := split(text)
	markerLen := split(ellipsis).len()

	n := t.len()
	for n > 0 && measure(t.prefix(n)) > budget {
		n--
	}

	if n-markerLen < markerLen {
		return ellipsis
	}

	if cut, ok := t.wordCut(n); ok {
		candidate := t.prefix(cut) + ellipsis
		if measure(candidate) <= available {
			return candidate
		}
	}

	return t.prefix(n-markerLen) + ellipsis
}

// segment is a grapheme cluster or a whole escape sequence.
type segment struct {
	text   string
	escape bool
}

// segments is text split for cutting. visible indexes the grapheme clusters.
type segments struct {
	all     []segment
	visible []int
}

func split(text string) segments {
	var s segments
	var state byte
	for len(text) > 0 {
		var n int
		escape := text[0] == ansi.ESC || (text[0] >= 0x80 && text[0] < 0xa0)
		if escape {
			_, _, n, state = ansi.DecodeSequence(text, state, nil)
		} else {
			cluster, _ := ansi.FirstGraphemeCluster(text, ansi.GraphemeWidth)
			n = len(cluster)
		}
		n = max(n, 1)

		if !escape {
			s.visible = append(s.visible, len(s.all))
		}
		s.all = append(s.all, segment{text: text[:n], escape: escape})
		text = text[n:]
	}
	return s
}

// len returns the number of grapheme clusters.
func (s segments) len() int {
	return len(s.visible)
}

func (s segments) cluster(i int) string {
	return s.all[s.visible[i]].text
}

// prefix returns the first n clusters with the escape sequences between them,
// followed by a style reset when any escape sequence was kept.
func (s segments) prefix(n int) string {
	if n <= 0 {
		return ""
	}
	if n >= s.len() {
		n = s.len()
	}

	var out []byte
	styled := false
	for _, seg := range s.all[:s.visible[n-1]+1] {
		out = append(out, seg.text...)
		styled = styled || seg.escape
	}
	if styled {
		out = append(out, ansi.ResetStyle...)
	}
	return string(out)
}

// wordCut returns the length of the longest prefix of the first n clusters
// that ends on a whole word, trailing spaces trimmed. The prefix is whole
// already when the cluster after it is a space.
func (s segments) wordCut(n int) (int, bool) {
	space := func(i int) bool { return s.cluster(i) == " " }

	cut := n
	if n < s.len() && !space(n) {
		for cut > 0 && !space(cut-1) {
			cut--
		}
	}
	for cut > 0 && space(cut-1) {
		cut--
	}
	if cut == 0 {
		return 0, false
	}
	return cut, true
}
