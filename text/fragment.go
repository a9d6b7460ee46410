// Package text defines the atomic input type the extraction pipeline
// consumes: a single positioned run of text as reported by a PDF
// text-extraction library. Decoding PDF content streams into fragments is
// explicitly out of scope for this module (spec.md §1); a real PDF library
// is expected to produce these.
package text

import "strings"

// PositionedFragment is a single positioned text run in PDF user-space
// (origin bottom-left, Y increasing upward).
type PositionedFragment struct {
	Text   string
	X, Y   float64
	Width  float64
	Height float64
}

// Trimmed reports whether the fragment's text is empty once whitespace is
// stripped from both ends. Empty-after-trim fragments are discarded before
// line assembly (spec.md §4.1 step 1).
func (f PositionedFragment) Trimmed() string {
	return strings.TrimSpace(f.Text)
}

// Right returns the X coordinate of the fragment's right edge.
func (f PositionedFragment) Right() float64 {
	return f.X + f.Width
}
