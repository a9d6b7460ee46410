package model

// ExtractedSection is a named top-level division of a document, containing
// its clause tree in document order (spec.md §3).
type ExtractedSection struct {
	Header           string
	NormalizedHeader string
	Clauses          []*ClauseNode
	Coverage         SectionCoverage

	// StartParagraph/EndParagraph are the first/last non-synthetic root
	// clause ids in the section, if any.
	StartParagraph string
	EndParagraph   string
}

// SectionCoverage reports how much of a section's source lines were
// attributed to some clause (spec.md §3, §4.5).
type SectionCoverage struct {
	TotalLines     int
	MappedLines    int
	UnmatchedLines int
	Percent        float64
}

// NewSectionCoverage computes a SectionCoverage from raw line counts.
// Percent = round(1000*mapped/total)/10, matching spec.md §3 exactly so
// that 1/3 renders as 33.3, not 33.33333.
func NewSectionCoverage(total, mapped int) SectionCoverage {
	unmatched := total - mapped
	var percent float64
	if total > 0 {
		percent = roundTo1DP(1000.0 * float64(mapped) / float64(total) / 10.0)
	}
	return SectionCoverage{
		TotalLines:     total,
		MappedLines:    mapped,
		UnmatchedLines: unmatched,
		Percent:        percent,
	}
}

func roundTo1DP(v float64) float64 {
	scaled := v*10 + 0.5
	return float64(int64(scaled)) / 10
}

// MergeSectionCoverage sums two single-side coverages across both documents
// under comparison, recomputing the percentage (spec.md §4.8).
func MergeSectionCoverage(a, b SectionCoverage) SectionCoverage {
	return NewSectionCoverage(a.TotalLines+b.TotalLines, a.MappedLines+b.MappedLines)
}

// FindClause returns the first clause in the section with the given id, or
// nil if none matches.
func (s *ExtractedSection) FindClause(id string) *ClauseNode {
	for _, c := range s.Clauses {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// CloneEmpty returns a copy of the section with no clauses, used by
// SectionAligner when one side lacks a header the other side has.
func (s *ExtractedSection) CloneEmpty() *ExtractedSection {
	return &ExtractedSection{
		Header:           s.Header,
		NormalizedHeader: s.NormalizedHeader,
	}
}
