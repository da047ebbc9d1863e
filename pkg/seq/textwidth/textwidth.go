// Package textwidth estimates the rendered width of label text without
// access to font metrics.
//
// Widths come from fixed per-class advances tuned for a 13px sans-serif
// face: lower-case letters, upper-case letters, digits, spaces, narrow
// punctuation, and everything else each have one advance. Runes that
// occupy two terminal cells (CJK ideographs, full-width forms, most emoji)
// use [WideAdvance]; combining marks and other zero-width runes add nothing.
// Text is NFC-normalized first so precomposed and decomposed spellings of
// the same string measure the same.
//
// Estimates are deterministic and depend only on the input string.
package textwidth

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// Per-class advances in pixels.
const (
	LowerAdvance = 6.5
	UpperAdvance = 8.5
	DigitAdvance = 7.0
	SpaceAdvance = 3.5
	PunctAdvance = 4.0
	OtherAdvance = 7.5
	WideAdvance  = 13.0
)

// LineHeight is the vertical distance between baselines of wrapped lines.
// Ascent is the distance from the top of a line box to its baseline.
const (
	LineHeight = 16.0
	Ascent     = 12.0
)

// Horizontal insets added around measured text.
const (
	// BoxPadding is the space between a participant label and its box edge.
	BoxPadding = 12.0
	// NotePadding is the space between note text and the note border.
	NotePadding = 8.0
	// LabelPadding is the space kept between a message label and the
	// lifelines it sits between.
	LabelPadding = 10.0
)

// narrow glyphs get PunctAdvance; other symbols use OtherAdvance.
const narrow = `.,:;'"!|il()[]{}` + "`"

var condition = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Advance returns the width of a single rune.
func Advance(r rune) float64 {
	if r == ' ' || r == '\t' {
		return SpaceAdvance
	}
	switch w := condition.RuneWidth(r); {
	case w == 0:
		return 0
	case w == 2:
		return WideAdvance
	}
	switch {
	case r >= '0' && r <= '9':
		return DigitAdvance
	case strings.ContainsRune(narrow, r):
		return PunctAdvance
	case unicode.IsUpper(r):
		return UpperAdvance
	case unicode.IsLower(r):
		return LowerAdvance
	default:
		return OtherAdvance
	}
}

// Estimate returns the width of a single line of text.
func Estimate(text string) float64 {
	var w float64
	for _, r := range norm.NFC.String(text) {
		w += Advance(r)
	}
	return w
}

// Lines splits text on line breaks. Empty text yields no lines.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Block returns the width of the widest line and the number of lines.
func Block(text string) (width float64, lines int) {
	ls := Lines(text)
	for _, l := range ls {
		width = max(width, Estimate(l))
	}
	return width, len(ls)
}

// Height returns the height of n lines of text.
func Height(n int) float64 {
	return float64(n) * LineHeight
}
