package align

import (
	"testing"

	"github.com/brightlinelabs/regdiff/model"
)

type fakeDiffer struct{}

func (fakeDiffer) Word(base, compared string) []model.DiffToken {
	if base == compared {
		return []model.DiffToken{{Value: base, Kind: model.DiffEqual}}
	}
	return []model.DiffToken{{Value: base, Kind: model.DiffRemoved}, {Value: compared, Kind: model.DiffAdded}}
}

func (f fakeDiffer) Sentence(base, compared string) []model.DiffToken  { return f.Word(base, compared) }
func (f fakeDiffer) Paragraph(base, compared string) []model.DiffToken { return f.Word(base, compared) }

func clauseNode(id, label, text string) *model.ClauseNode {
	return &model.ClauseNode{ID: id, RawLabel: label, TextPreserved: text}
}

func TestClauseAligner_UnchangedWhenTrimmedTextsEqual(t *testing.T) {
	base := &model.ExtractedSection{Clauses: []*model.ClauseNode{clauseNode("25", "25", "Same text.")}}
	compared := &model.ExtractedSection{Clauses: []*model.ClauseNode{clauseNode("25", "25", " Same text. ")}}

	rows := NewClauseAligner(fakeDiffer{}).Align(SectionPairing{Base: base, Compared: compared, Status: SectionMatched})

	if len(rows) != 1 || rows[0].Status != model.StatusUnchanged {
		t.Fatalf("expected unchanged row, got %+v", rows)
	}
}

func TestClauseAligner_ChangedWhenTextsDiffer(t *testing.T) {
	base := &model.ExtractedSection{Clauses: []*model.ClauseNode{clauseNode("25", "25", "Old text.")}}
	compared := &model.ExtractedSection{Clauses: []*model.ClauseNode{clauseNode("25", "25", "New text.")}}

	rows := NewClauseAligner(fakeDiffer{}).Align(SectionPairing{Base: base, Compared: compared, Status: SectionMatched})

	if len(rows) != 1 || rows[0].Status != model.StatusChanged {
		t.Fatalf("expected changed row, got %+v", rows)
	}
}

func TestClauseAligner_AmbiguousWhenDuplicateIDs(t *testing.T) {
	base := &model.ExtractedSection{Clauses: []*model.ClauseNode{
		clauseNode("25", "25", "First."),
		clauseNode("25", "25", "Second."),
	}}
	compared := &model.ExtractedSection{Clauses: []*model.ClauseNode{clauseNode("25", "25", "Compared.")}}

	rows := NewClauseAligner(fakeDiffer{}).Align(SectionPairing{Base: base, Compared: compared, Status: SectionMatched})

	if len(rows) != 1 || rows[0].Status != model.StatusAmbiguous {
		t.Fatalf("expected ambiguous row, got %+v", rows)
	}
	if rows[0].DiffWord[0].Value != model.AmbiguousExplanation {
		t.Fatalf("expected fixed ambiguous explanation, got %v", rows[0].DiffWord)
	}
}

func TestClauseAligner_BaseOnlyIsRemoved(t *testing.T) {
	base := &model.ExtractedSection{Clauses: []*model.ClauseNode{clauseNode("25", "25", "Only in base.")}}

	rows := NewClauseAligner(fakeDiffer{}).Align(SectionPairing{Base: base, Compared: nil, Status: SectionMissingInCompared})

	if len(rows) != 1 || rows[0].Status != model.StatusRemoved || rows[0].InCompared {
		t.Fatalf("expected removed row, got %+v", rows)
	}
}

func TestClauseAligner_DisplayLabelJoinsWhenLabelsDiffer(t *testing.T) {
	base := &model.ExtractedSection{Clauses: []*model.ClauseNode{clauseNode("25", "25.", "Text.")}}
	compared := &model.ExtractedSection{Clauses: []*model.ClauseNode{clauseNode("25", "25", "Text.")}}

	rows := NewClauseAligner(fakeDiffer{}).Align(SectionPairing{Base: base, Compared: compared, Status: SectionMatched})

	if rows[0].DisplayLabel != "25. | 25" {
		t.Fatalf("expected joined display label, got %q", rows[0].DisplayLabel)
	}
}
