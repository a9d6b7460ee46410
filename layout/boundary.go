package layout

import (
	"regexp"
	"strings"

	"github.com/brightlinelabs/regdiff/model"
)

// canonicalSectionHeaders is the fixed ordered list of section names a
// document is expected to contain (spec.md §4.4). Order matters only for
// tie-breaking when headers repeat; boundaries are emitted in line order.
var canonicalSectionHeaders = []string{
	"Objective",
	"Scope",
	"Core content",
	"Governance",
	"Strategy",
	"Risk management",
	"Metrics and targets",
}

// UnsectionedHeader names the virtual section used when no canonical
// boundary is found anywhere in the document.
const UnsectionedHeader = "Unsectioned"

const boundaryLookahead = 20

var rootClauseLineRe = regexp.MustCompile(`^\d+(\.\d+)*(\([A-Za-z0-9ivxlcdmIVXLCDM]+\))*[.)]?(\s|$)`)

// appendixCutoffRe matches the appendix heading that truncates the body
// (spec.md §4.4).
var appendixCutoffRe = regexp.MustCompile(`(?i)^appendix(?:es)?\b`)

var terminalPunctuation = map[byte]bool{'.': true, '!': true, '?': true, ':': true, ';': true}

func isRootClauseLine(text string) bool {
	return rootClauseLineRe.MatchString(strings.TrimSpace(text))
}

// SectionBoundary is one located canonical header line.
type SectionBoundary struct {
	Header    string
	LineIndex int
}

// SectionBoundaryFinder locates the canonical section headers within an
// ordered list of lines (spec.md §4.4).
type SectionBoundaryFinder struct{}

// NewSectionBoundaryFinder creates a SectionBoundaryFinder.
func NewSectionBoundaryFinder() *SectionBoundaryFinder {
	return &SectionBoundaryFinder{}
}

// IsCanonicalHeader reports whether a normalized line equals one of the
// fixed canonical section headers. Exposed so FooterFilter can always keep
// header lines regardless of where they fall on the page.
func IsCanonicalHeader(normalized string) bool {
	for _, h := range canonicalSectionHeaders {
		if Normalize(h) == normalized {
			return true
		}
	}
	return false
}

// Find scans lines for the first qualifying occurrence of each canonical
// header, in line order. A line qualifies when its normalized form equals
// the header and a root-clause-looking line exists within the next 20
// lines.
func (f *SectionBoundaryFinder) Find(lines []model.PageLine) []SectionBoundary {
	found := map[string]bool{}
	var boundaries []SectionBoundary

	for i, l := range lines {
		normalized := Normalize(l.Text)
		if !IsCanonicalHeader(normalized) || found[normalized] {
			continue
		}
		if !hasRootClauseWithin(lines, i+1, boundaryLookahead) {
			continue
		}
		for _, h := range canonicalSectionHeaders {
			if Normalize(h) == normalized {
				boundaries = append(boundaries, SectionBoundary{Header: h, LineIndex: i})
				found[normalized] = true
				break
			}
		}
	}

	return boundaries
}

func hasRootClauseWithin(lines []model.PageLine, start, span int) bool {
	end := start + span
	if end > len(lines) {
		end = len(lines)
	}
	for i := start; i < end; i++ {
		if isRootClauseLine(lines[i].Text) {
			return true
		}
	}
	return false
}

// AppendixCutoff locates the line index at which the document's appendix
// material begins, so it can be discarded before clause parsing (spec.md
// §4.4). It returns -1 when no cutoff applies.
type AppendixCutoff struct{}

// NewAppendixCutoff creates an AppendixCutoff.
func NewAppendixCutoff() *AppendixCutoff {
	return &AppendixCutoff{}
}

// Find returns the index of the first line that qualifies as an appendix
// cutoff, or -1 if none qualifies.
func (a *AppendixCutoff) Find(lines []model.PageLine, boundaries []SectionBoundary) int {
	lastBoundary := -1
	for _, b := range boundaries {
		if b.LineIndex > lastBoundary {
			lastBoundary = b.LineIndex
		}
	}

	rootCount := 0
	for i, l := range lines {
		isRoot := isRootClauseLine(l.Text)
		if isAppendixHeading(l.Text) {
			if (lastBoundary >= 0 && i > lastBoundary) || (lastBoundary == -1 && rootCount >= 3) {
				return i
			}
		}
		if isRoot {
			rootCount++
		}
	}
	return -1
}

func isAppendixHeading(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !appendixCutoffRe.MatchString(trimmed) {
		return false
	}
	if len(trimmed) > 90 {
		return false
	}
	if len(strings.Fields(trimmed)) > 10 {
		return false
	}
	if trimmed == "" {
		return false
	}
	if terminalPunctuation[trimmed[len(trimmed)-1]] {
		return false
	}
	return true
}
