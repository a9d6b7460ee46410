package model

import "github.com/brightlinelabs/regdiff/text"

// PageLine is one assembled visual line of text: all fragments in the same
// Y-bucket on a page, ordered left to right and composed into a single
// string (spec.md §3, §4.1). Exactly one PageLine exists per (page,
// Y-bucket) after assembly.
type PageLine struct {
	Page       int // 1-based
	Text       string
	X          float64 // leftmost contributing fragment's X
	Y          float64
	Height     float64 // tallest contributing fragment's height
	PageHeight float64

	// Fragments are the source fragments this line was assembled from, kept
	// for downstream components (superscript attachment, alignment
	// detection) that need per-fragment geometry rather than just the
	// composed string.
	Fragments []text.PositionedFragment
}

// IsEmpty reports whether the line's text is blank.
func (l PageLine) IsEmpty() bool {
	return l.Text == ""
}
