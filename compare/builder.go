package compare

import (
	"regexp"
	"sort"
	"strings"

	"github.com/brightlinelabs/regdiff/align"
	"github.com/brightlinelabs/regdiff/model"
)

const snippetMaxLen = 180
const snippetEllipsis = "…"

// fallbackAnchorY is used only when a section has no clauses at all on the
// compared side to derive a median from; spec.md §9 flags the original
// hardcoded y=780 fallback as a magic constant, so this is a last resort,
// not the common path.
const fallbackAnchorY = 780.0

var whitespaceRe = regexp.MustCompile(`\s+`)

// ComparisonBuilder assembles the final ComparisonResult from a pair of
// extracted documents (spec.md §4.8).
type ComparisonBuilder struct {
	sectionAligner *align.SectionAligner
	clauseAligner  *align.ClauseAligner
}

// New creates a ComparisonBuilder.
func New(sectionAligner *align.SectionAligner, clauseAligner *align.ClauseAligner) *ComparisonBuilder {
	return &ComparisonBuilder{sectionAligner: sectionAligner, clauseAligner: clauseAligner}
}

// Build runs section alignment, clause alignment and diffing, then
// assembles the navigation structures a consumer needs (spec.md §4.8).
func (b *ComparisonBuilder) Build(base, compared *model.ExtractedDocument) *model.ComparisonResult {
	pairings := b.sectionAligner.Align(base, compared)

	result := &model.ComparisonResult{}
	var totalLines, mappedLines int

	for _, pairing := range pairings {
		if isEmptyPairing(pairing) {
			continue
		}

		rows := b.clauseAligner.Align(pairing)
		if len(rows) == 0 {
			continue
		}

		representative := pairing.Base
		if representative == nil {
			representative = pairing.Compared
		}
		result.Sections = append(result.Sections, representative)

		result.SectionPageMap = append(result.SectionPageMap, model.SectionPageMap{
			SectionHeader: pairing.Header,
			Base:          pageRange(pairing.Base),
			Compared:      pageRange(pairing.Compared),
		})

		fallbackY := medianAnchorY(pairing.Compared)

		for rowIdx, row := range rows {
			result.Rows = append(result.Rows, model.ComparisonRow{
				Key:           pairing.Header + "::" + row.Key,
				DisplayLabel:  row.DisplayLabel,
				InBase:        row.InBase,
				InCompared:    row.InCompared,
				Base:          row.Base,
				Compared:      row.Compared,
				Status:        row.Status,
				DiffWord:      row.DiffWord,
				DiffSentence:  row.DiffSentence,
				DiffParagraph: row.DiffParagraph,
			})

			result.SectionAnchors = append(result.SectionAnchors, buildAnchor(pairing, row, rows, rowIdx, fallbackY))
		}

		if pairing.Base != nil {
			totalLines += pairing.Base.Coverage.TotalLines
			mappedLines += pairing.Base.Coverage.MappedLines
		}
		if pairing.Compared != nil {
			totalLines += pairing.Compared.Coverage.TotalLines
			mappedLines += pairing.Compared.Coverage.MappedLines
		}
	}

	result.Coverage = model.NewSectionCoverage(totalLines, mappedLines)
	result.SelectedSectionDefault = selectedSectionDefault(pairings)

	return result
}

func isEmptyPairing(p align.SectionPairing) bool {
	baseEmpty := p.Base == nil || len(p.Base.Clauses) == 0
	comparedEmpty := p.Compared == nil || len(p.Compared.Clauses) == 0
	return baseEmpty && comparedEmpty
}

func pageRange(s *model.ExtractedSection) model.SectionPageRange {
	if s == nil || len(s.Clauses) == 0 {
		return model.SectionPageRange{}
	}
	start, end := s.Clauses[0].PageStart, s.Clauses[0].PageEnd
	for _, c := range s.Clauses[1:] {
		if c.PageStart < start {
			start = c.PageStart
		}
		if c.PageEnd > end {
			end = c.PageEnd
		}
	}
	return model.SectionPageRange{PageStart: start, PageEnd: end}
}

func medianAnchorY(s *model.ExtractedSection) float64 {
	if s == nil || len(s.Clauses) == 0 {
		return fallbackAnchorY
	}
	ys := make([]float64, len(s.Clauses))
	for i, c := range s.Clauses {
		ys[i] = c.AnchorY
	}
	sort.Float64s(ys)
	return ys[len(ys)/2]
}

func buildAnchor(pairing align.SectionPairing, row model.ComparisonRow, rows []model.ComparisonRow, rowIdx int, fallbackY float64) model.SectionAnchor {
	anchor := model.SectionAnchor{
		SectionHeader: pairing.Header,
		AnchorID:      pairing.Header + "::" + row.Key,
		Label:         row.DisplayLabel,
		Status:        row.Status,
	}

	if row.Base != nil {
		anchor.Base = &model.AnchorPoint{Page: row.Base.AnchorPage, Y: row.Base.AnchorY}
	}
	if row.Compared != nil {
		anchor.Compared = &model.AnchorPoint{Page: row.Compared.AnchorPage, Y: row.Compared.AnchorY}
	}

	switch row.Status {
	case model.StatusChanged:
		anchor.RemovedSnippet = truncateSnippet(model.TokensOfKind(row.DiffWord, model.DiffRemoved))
		anchor.AddedSnippet = truncateSnippet(model.TokensOfKind(row.DiffWord, model.DiffAdded))
	case model.StatusRemoved:
		anchor.RemovedSnippet = truncateSnippet(model.TokensOfKind(row.DiffWord, model.DiffRemoved))
	case model.StatusAdded:
		anchor.AddedSnippet = truncateSnippet(model.TokensOfKind(row.DiffWord, model.DiffAdded))
	}

	if row.Status == model.StatusAdded && anchor.Compared == nil {
		if fallback := findFallbackComparedAnchor(rows, rowIdx); fallback != nil {
			anchor.Compared = fallback
		} else if pairing.Compared != nil {
			anchor.Compared = &model.AnchorPoint{Page: pageRange(pairing.Compared).PageStart, Y: fallbackY}
		}
	}

	return anchor
}

// findFallbackComparedAnchor scans outward from rowIdx for the nearest row
// with a compared clause (spec.md §4.8).
func findFallbackComparedAnchor(rows []model.ComparisonRow, rowIdx int) *model.AnchorPoint {
	for distance := 1; distance < len(rows); distance++ {
		if rowIdx-distance >= 0 && rows[rowIdx-distance].Compared != nil {
			c := rows[rowIdx-distance].Compared
			return &model.AnchorPoint{Page: c.AnchorPage, Y: c.AnchorY}
		}
		if rowIdx+distance < len(rows) && rows[rowIdx+distance].Compared != nil {
			c := rows[rowIdx+distance].Compared
			return &model.AnchorPoint{Page: c.AnchorPage, Y: c.AnchorY}
		}
	}
	return nil
}

func truncateSnippet(s string) string {
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
	r := []rune(s)
	if len(r) <= snippetMaxLen {
		return s
	}
	return string(r[:snippetMaxLen]) + snippetEllipsis
}

func selectedSectionDefault(pairings []align.SectionPairing) string {
	for _, p := range pairings {
		if p.Status == align.SectionMatched {
			return p.Header
		}
	}
	for _, p := range pairings {
		if !isEmptyPairing(p) {
			return p.Header
		}
	}
	return ""
}
