package model

import "strings"

// DiffTokenKind classifies a single token produced by the diff engine.
type DiffTokenKind int

const (
	DiffEqual DiffTokenKind = iota
	DiffAdded
	DiffRemoved
)

// String returns the kind's wire name.
func (k DiffTokenKind) String() string {
	switch k {
	case DiffAdded:
		return "added"
	case DiffRemoved:
		return "removed"
	default:
		return "equal"
	}
}

// DiffToken is one unit of output from the diff engine (spec.md §3).
// Adjacent tokens of the same kind may be merged but are not required to be.
type DiffToken struct {
	Value string
	Kind  DiffTokenKind
}

// Text concatenates the values of a token slice, ignoring kind.
func TokensText(tokens []DiffToken) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Value)
	}
	return sb.String()
}

// TokensOfKind concatenates the values of tokens matching kind, in order.
// Used by ComparisonBuilder to build removed/added snippets (spec.md §4.8).
func TokensOfKind(tokens []DiffToken, kind DiffTokenKind) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.Kind == kind {
			sb.WriteString(t.Value)
		}
	}
	return sb.String()
}

// RowStatus classifies a ComparisonRow (spec.md §3).
type RowStatus int

const (
	StatusUnchanged RowStatus = iota
	StatusChanged
	StatusAdded
	StatusRemoved
	StatusAmbiguous
)

// String returns the status's wire name.
func (s RowStatus) String() string {
	switch s {
	case StatusChanged:
		return "changed"
	case StatusAdded:
		return "added"
	case StatusRemoved:
		return "removed"
	case StatusAmbiguous:
		return "ambiguous"
	default:
		return "unchanged"
	}
}

// AmbiguousExplanation is the fixed explanatory text carried by an
// ambiguous row's diffs in place of a real diff (spec.md §4.6, §7).
const AmbiguousExplanation = "This clause id maps to more than one clause on at least one side; the diff has been suppressed to avoid showing a misleading comparison."

// ComparisonRow is one aligned clause pairing across the two documents
// (spec.md §3).
type ComparisonRow struct {
	Key          string
	DisplayLabel string
	InBase       bool
	InCompared   bool
	Base         *ClauseNode
	Compared     *ClauseNode
	Status       RowStatus

	DiffWord      []DiffToken
	DiffSentence  []DiffToken
	DiffParagraph []DiffToken
}

// SectionPageRange is a {pageStart, pageEnd} pair for one side of one
// section (spec.md §4.8).
type SectionPageRange struct {
	PageStart int
	PageEnd   int
}

// SectionPageMap maps a section header to its page range on each side.
type SectionPageMap struct {
	SectionHeader string
	Base          SectionPageRange
	Compared      SectionPageRange
}

// SectionAnchor is a navigation anchor for one comparison row (spec.md §4.8).
type SectionAnchor struct {
	SectionHeader  string
	AnchorID       string
	Label          string
	Base           *AnchorPoint
	Compared       *AnchorPoint
	Status         RowStatus
	RemovedSnippet string
	AddedSnippet   string
}

// AnchorPoint is a value-copy scroll target: a page and Y coordinate.
type AnchorPoint struct {
	Page int
	Y    float64
}

// ComparisonResult is the pure output of compare(baseDoc, comparedDoc)
// (spec.md §6).
type ComparisonResult struct {
	Sections               []*ExtractedSection
	SectionPageMap         []SectionPageMap
	SectionAnchors         []SectionAnchor
	Rows                   []ComparisonRow
	SelectedSectionDefault string
	Coverage               SectionCoverage
}

// WordDiffText renders the row's word-level diff as plain text, ignoring
// kind (spec.md §9 Supplemented Features, mirrors tabula's
// Page.ExtractText() convenience reader over Elements).
func (r ComparisonRow) WordDiffText() string { return TokensText(r.DiffWord) }

// SentenceDiffText renders the row's sentence-level diff as plain text.
func (r ComparisonRow) SentenceDiffText() string { return TokensText(r.DiffSentence) }

// ParagraphDiffText renders the row's paragraph-level diff as plain text.
func (r ComparisonRow) ParagraphDiffText() string { return TokensText(r.DiffParagraph) }
