package model

// ClauseNode is a single identifiable numbered unit within a section, e.g.
// "2(a)(i)" (spec.md §3). Clauses form a tree per section: every non-root
// clause names its immediate parent by id.
type ClauseNode struct {
	// ID is the canonical identifier, e.g. "2(a)(i)".
	ID string

	// RawLabel is the label as it appeared in the source text, e.g. "2(a)"
	// or "(i)".
	RawLabel string

	// ParentID is the id of the immediate parent clause, empty for roots.
	ParentID string

	// Level is 1 (root numeric), 2 (letter marker), 3 (roman), or 4
	// (numeric sub-marker).
	Level int

	// TextPreserved is the full clause text; newlines and indentation are
	// significant (spec.md §4.5).
	TextPreserved string

	// PageStart and PageEnd are the 1-based page range the clause spans.
	PageStart int
	PageEnd   int

	// AnchorPage and AnchorY are the coordinates a viewer would scroll to.
	AnchorPage int
	AnchorY    float64

	// Synthetic is true when the node wraps text that had no recognisable
	// label (spec.md §4.5 flushUnmatched).
	Synthetic bool

	// SourceLineCount is the number of source lines folded into this clause.
	SourceLineCount int
}

// IsRoot reports whether this is a top-level (level 1) clause.
func (c *ClauseNode) IsRoot() bool {
	return c.Level == 1
}
