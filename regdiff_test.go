package regdiff

import (
	"testing"

	"github.com/brightlinelabs/regdiff/layout"
	"github.com/brightlinelabs/regdiff/model"
	"github.com/brightlinelabs/regdiff/text"
)

type fakeSource struct {
	pages map[int][]text.PositionedFragment
}

func (f *fakeSource) PageFragments(page int) ([]text.PositionedFragment, float64, error) {
	frags, ok := f.pages[page]
	if !ok {
		return nil, 0, layout.ErrInvalidPage
	}
	return frags, 792, nil
}

func singleFragment(line string, x, y float64) text.PositionedFragment {
	return text.PositionedFragment{Text: line, X: x, Y: y, Width: float64(len(line)) * 6, Height: 10}
}

func newDocSource() *fakeSource {
	return &fakeSource{
		pages: map[int][]text.PositionedFragment{
			1: {
				singleFragment("Objective", 72, 760),
				singleFragment("25. The entity shall disclose its governance processes.", 72, 700),
				singleFragment("Governance", 72, 650),
				singleFragment("30. Governance processes shall be disclosed in full.", 72, 600),
			},
		},
	}
}

func TestExtractThenCompare_IdenticalDocumentsYieldOnlyUnchangedRows(t *testing.T) {
	doc, err := Extract(newDocSource(), model.SideBase)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	result := Compare(doc, doc)
	for _, row := range result.Rows {
		if row.Status != model.StatusUnchanged && row.Status != model.StatusAmbiguous {
			t.Fatalf("expected only unchanged/ambiguous rows comparing a document to itself, got %+v", row)
		}
	}
}
