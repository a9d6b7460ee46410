package align

import (
	"strings"

	"github.com/brightlinelabs/regdiff/model"
)

// SectionStatus classifies one paired section across the two documents
// under comparison (spec.md §4.6).
type SectionStatus int

const (
	SectionMatched SectionStatus = iota
	SectionMissingInBase
	SectionMissingInCompared
)

// String returns the status's wire name.
func (s SectionStatus) String() string {
	switch s {
	case SectionMissingInBase:
		return "missing_in_base"
	case SectionMissingInCompared:
		return "missing_in_compared"
	default:
		return "matched"
	}
}

// SectionPairing is one header paired across the base and compared
// documents; either side may be nil.
type SectionPairing struct {
	Header   string
	Base     *model.ExtractedSection
	Compared *model.ExtractedSection
	Status   SectionStatus
}

// SectionAligner builds the ordered union of sections across two documents,
// discarding appendix material (spec.md §4.6).
type SectionAligner struct{}

// NewSectionAligner creates a SectionAligner.
func NewSectionAligner() *SectionAligner {
	return &SectionAligner{}
}

// Align pairs sections from base and compared by normalized header. Base
// order is preserved; compared-only headers are appended in their own
// order. Appendix sections (normalized header begins with "appendix") are
// discarded from both sides before pairing.
func (a *SectionAligner) Align(base, compared *model.ExtractedDocument) []SectionPairing {
	baseSections := dropAppendix(base.Sections)
	comparedSections := dropAppendix(compared.Sections)

	baseByHeader := map[string]*model.ExtractedSection{}
	for _, s := range baseSections {
		baseByHeader[s.NormalizedHeader] = s
	}
	comparedByHeader := map[string]*model.ExtractedSection{}
	for _, s := range comparedSections {
		comparedByHeader[s.NormalizedHeader] = s
	}

	var order []string
	seen := map[string]bool{}
	for _, s := range baseSections {
		if !seen[s.NormalizedHeader] {
			order = append(order, s.NormalizedHeader)
			seen[s.NormalizedHeader] = true
		}
	}
	for _, s := range comparedSections {
		if !seen[s.NormalizedHeader] {
			order = append(order, s.NormalizedHeader)
			seen[s.NormalizedHeader] = true
		}
	}

	pairings := make([]SectionPairing, 0, len(order))
	for _, normalized := range order {
		b := baseByHeader[normalized]
		c := comparedByHeader[normalized]

		status := SectionMatched
		header := ""
		switch {
		case b != nil && c != nil:
			header = b.Header
		case b != nil:
			status = SectionMissingInCompared
			header = b.Header
		default:
			status = SectionMissingInBase
			header = c.Header
		}

		pairings = append(pairings, SectionPairing{Header: header, Base: b, Compared: c, Status: status})
	}

	return pairings
}

func dropAppendix(sections []*model.ExtractedSection) []*model.ExtractedSection {
	out := make([]*model.ExtractedSection, 0, len(sections))
	for _, s := range sections {
		if strings.HasPrefix(s.NormalizedHeader, "appendix") {
			continue
		}
		out = append(out, s)
	}
	return out
}
