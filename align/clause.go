package align

import (
	"strings"

	"github.com/brightlinelabs/regdiff/model"
)

// Differ is the diffing dependency ClauseAligner needs to fill in a
// matched row's word/sentence/paragraph diffs (spec.md §4.7). Implemented
// by diffengine.DiffEngine; declared here to avoid a layout<->diffengine
// import cycle.
type Differ interface {
	Word(base, compared string) []model.DiffToken
	Sentence(base, compared string) []model.DiffToken
	Paragraph(base, compared string) []model.DiffToken
}

// ClauseAligner pairs clauses within one already-paired section by
// canonical id (spec.md §4.6).
type ClauseAligner struct {
	differ Differ
}

// NewClauseAligner creates a ClauseAligner.
func NewClauseAligner(differ Differ) *ClauseAligner {
	return &ClauseAligner{differ: differ}
}

// Align builds the ordered comparison rows for one section pairing.
func (a *ClauseAligner) Align(pairing SectionPairing) []model.ComparisonRow {
	baseByID := groupByID(pairing.Base)
	comparedByID := groupByID(pairing.Compared)

	var order []string
	seen := map[string]bool{}
	if pairing.Base != nil {
		for _, c := range pairing.Base.Clauses {
			if !seen[c.ID] {
				order = append(order, c.ID)
				seen[c.ID] = true
			}
		}
	}
	if pairing.Compared != nil {
		for _, c := range pairing.Compared.Clauses {
			if !seen[c.ID] {
				order = append(order, c.ID)
				seen[c.ID] = true
			}
		}
	}

	rows := make([]model.ComparisonRow, 0, len(order))
	for _, id := range order {
		baseClauses := baseByID[id]
		comparedClauses := comparedByID[id]
		rows = append(rows, a.buildRow(id, baseClauses, comparedClauses))
	}
	return rows
}

func (a *ClauseAligner) buildRow(id string, baseClauses, comparedClauses []*model.ClauseNode) model.ComparisonRow {
	if len(baseClauses) > 1 || len(comparedClauses) > 1 {
		var base, compared *model.ClauseNode
		if len(baseClauses) > 0 {
			base = baseClauses[0]
		}
		if len(comparedClauses) > 0 {
			compared = comparedClauses[0]
		}
		return model.ComparisonRow{
			Key:          id,
			DisplayLabel: displayLabel(base, compared),
			InBase:       base != nil,
			InCompared:   compared != nil,
			Base:         base,
			Compared:     compared,
			Status:       model.StatusAmbiguous,
			DiffWord:      []model.DiffToken{{Value: model.AmbiguousExplanation, Kind: model.DiffEqual}},
			DiffSentence:  []model.DiffToken{{Value: model.AmbiguousExplanation, Kind: model.DiffEqual}},
			DiffParagraph: []model.DiffToken{{Value: model.AmbiguousExplanation, Kind: model.DiffEqual}},
		}
	}

	var base, compared *model.ClauseNode
	if len(baseClauses) == 1 {
		base = baseClauses[0]
	}
	if len(comparedClauses) == 1 {
		compared = comparedClauses[0]
	}

	row := model.ComparisonRow{
		Key:          id,
		DisplayLabel: displayLabel(base, compared),
		InBase:       base != nil,
		InCompared:   compared != nil,
		Base:         base,
		Compared:     compared,
	}

	switch {
	case base != nil && compared != nil:
		baseText := strings.TrimSpace(base.TextPreserved)
		comparedText := strings.TrimSpace(compared.TextPreserved)
		if baseText == comparedText {
			row.Status = model.StatusUnchanged
		} else {
			row.Status = model.StatusChanged
		}
		row.DiffWord = a.differ.Word(base.TextPreserved, compared.TextPreserved)
		row.DiffSentence = a.differ.Sentence(base.TextPreserved, compared.TextPreserved)
		row.DiffParagraph = a.differ.Paragraph(base.TextPreserved, compared.TextPreserved)
	case base != nil:
		row.Status = model.StatusRemoved
		row.DiffWord = []model.DiffToken{{Value: base.TextPreserved, Kind: model.DiffRemoved}}
		row.DiffSentence = row.DiffWord
		row.DiffParagraph = row.DiffWord
	default:
		row.Status = model.StatusAdded
		row.DiffWord = []model.DiffToken{{Value: compared.TextPreserved, Kind: model.DiffAdded}}
		row.DiffSentence = row.DiffWord
		row.DiffParagraph = row.DiffWord
	}

	return row
}

func displayLabel(base, compared *model.ClauseNode) string {
	switch {
	case base != nil && compared != nil:
		if base.RawLabel == compared.RawLabel {
			return base.RawLabel
		}
		return base.RawLabel + " | " + compared.RawLabel
	case base != nil:
		return base.RawLabel
	case compared != nil:
		return compared.RawLabel
	default:
		return "Unknown"
	}
}

func groupByID(section *model.ExtractedSection) map[string][]*model.ClauseNode {
	out := map[string][]*model.ClauseNode{}
	if section == nil {
		return out
	}
	for _, c := range section.Clauses {
		out[c.ID] = append(out[c.ID], c)
	}
	return out
}
