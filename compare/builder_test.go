package compare

import (
	"strings"
	"testing"

	"github.com/brightlinelabs/regdiff/align"
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

func clause(id, label, text string, page int, y float64) *model.ClauseNode {
	return &model.ClauseNode{ID: id, RawLabel: label, TextPreserved: text, PageStart: page, PageEnd: page, AnchorPage: page, AnchorY: y}
}

func newBuilder() *ComparisonBuilder {
	return New(align.NewSectionAligner(), align.NewClauseAligner(fakeDiffer{}))
}

func TestBuild_FlattensRowKeysWithHeaderPrefix(t *testing.T) {
	base := &model.ExtractedDocument{Sections: []*model.ExtractedSection{
		{Header: "Objective", NormalizedHeader: "objective", Clauses: []*model.ClauseNode{clause("1", "1", "Text.", 1, 700)}},
	}}
	compared := &model.ExtractedDocument{Sections: []*model.ExtractedSection{
		{Header: "Objective", NormalizedHeader: "objective", Clauses: []*model.ClauseNode{clause("1", "1", "Text.", 1, 700)}},
	}}

	result := newBuilder().Build(base, compared)

	if len(result.Rows) != 1 || result.Rows[0].Key != "Objective::1" {
		t.Fatalf("expected flattened key with header prefix, got %+v", result.Rows)
	}
}

func TestBuild_SkipsSectionsEmptyOnBothSides(t *testing.T) {
	base := &model.ExtractedDocument{Sections: []*model.ExtractedSection{
		{Header: "Objective", NormalizedHeader: "objective"},
	}}
	compared := &model.ExtractedDocument{Sections: []*model.ExtractedSection{
		{Header: "Objective", NormalizedHeader: "objective"},
	}}

	result := newBuilder().Build(base, compared)

	if len(result.Sections) != 0 || len(result.Rows) != 0 {
		t.Fatalf("expected empty section dropped entirely, got %+v", result)
	}
}

func TestBuild_AddedRowTruncatesSnippetWithEllipsis(t *testing.T) {
	longText := strings.Repeat("word ", 60)
	base := &model.ExtractedDocument{Sections: []*model.ExtractedSection{{Header: "Scope", NormalizedHeader: "scope"}}}
	compared := &model.ExtractedDocument{Sections: []*model.ExtractedSection{
		{Header: "Scope", NormalizedHeader: "scope", Clauses: []*model.ClauseNode{clause("1", "1", longText, 1, 700)}},
	}}

	result := newBuilder().Build(base, compared)

	if len(result.SectionAnchors) != 1 {
		t.Fatalf("expected one anchor, got %d", len(result.SectionAnchors))
	}
	snippet := result.SectionAnchors[0].AddedSnippet
	if !strings.HasSuffix(snippet, snippetEllipsis) {
		t.Fatalf("expected truncated snippet to end in ellipsis, got %q", snippet)
	}
}

func TestBuild_SelectedSectionDefaultPrefersMatched(t *testing.T) {
	base := &model.ExtractedDocument{Sections: []*model.ExtractedSection{
		{Header: "Objective", NormalizedHeader: "objective", Clauses: []*model.ClauseNode{clause("1", "1", "Text.", 1, 700)}},
	}}
	compared := &model.ExtractedDocument{Sections: []*model.ExtractedSection{
		{Header: "Objective", NormalizedHeader: "objective", Clauses: []*model.ClauseNode{clause("1", "1", "Text.", 1, 700)}},
	}}

	result := newBuilder().Build(base, compared)

	if result.SelectedSectionDefault != "Objective" {
		t.Fatalf("expected Objective selected by default, got %q", result.SelectedSectionDefault)
	}
}

func TestBuild_MergesCoverageAcrossSides(t *testing.T) {
	base := &model.ExtractedDocument{Sections: []*model.ExtractedSection{
		{Header: "Objective", NormalizedHeader: "objective",
			Clauses:  []*model.ClauseNode{clause("1", "1", "Text.", 1, 700)},
			Coverage: model.NewSectionCoverage(10, 8),
		},
	}}
	compared := &model.ExtractedDocument{Sections: []*model.ExtractedSection{
		{Header: "Objective", NormalizedHeader: "objective",
			Clauses:  []*model.ClauseNode{clause("1", "1", "Text.", 1, 700)},
			Coverage: model.NewSectionCoverage(10, 10),
		},
	}}

	result := newBuilder().Build(base, compared)

	if result.Coverage.TotalLines != 20 || result.Coverage.MappedLines != 18 {
		t.Fatalf("unexpected merged coverage: %+v", result.Coverage)
	}
}
