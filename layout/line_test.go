package layout

import (
	"errors"
	"testing"

	"github.com/brightlinelabs/regdiff/config"
	"github.com/brightlinelabs/regdiff/model"
	"github.com/brightlinelabs/regdiff/text"
)

func TestAssemblePage_OrderAndBucketing(t *testing.T) {
	a := NewLineAssembler(config.Default())
	fragments := []text.PositionedFragment{
		{Text: "25.", X: 72, Y: 700, Width: 14, Height: 10},
		{Text: "The entity shall", X: 90, Y: 700.5, Width: 80, Height: 10},
		{Text: "disclose.", X: 72, Y: 688, Width: 50, Height: 10},
	}

	lines := a.AssemblePage(1, fragments, 792)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Y <= lines[1].Y {
		t.Fatalf("lines not in descending Y order: %v", lines)
	}
	if lines[0].Text != "25. The entity shall" {
		t.Fatalf("unexpected composed text: %q", lines[0].Text)
	}
}

func TestJoinSeparator_ClosingPunctuationAttaches(t *testing.T) {
	if sep := joinSeparator("word", ").", 5); sep != "" {
		t.Fatalf("expected no space before closing punctuation, got %q", sep)
	}
}

func TestJoinSeparator_HyphenAttaches(t *testing.T) {
	if sep := joinSeparator("obli-", "gations", 2); sep != "" {
		t.Fatalf("expected no space around hyphen, got %q", sep)
	}
}

func TestJoinSeparator_WordGapInsertsSingleSpace(t *testing.T) {
	if sep := joinSeparator("shall", "apply", 2); sep != " " {
		t.Fatalf("expected single space for word/word gap, got %q", sep)
	}
}

func TestJoinSeparator_LargeGapMultiSpace(t *testing.T) {
	sep := joinSeparator("Name", "%", 20)
	if len(sep) < 2 {
		t.Fatalf("expected multi-space separator for large non-word gap, got %q", sep)
	}
}

func TestAssemble_SkipsUnextractablePageAndStopsAtSentinel(t *testing.T) {
	src := &fakeSource{
		pages: map[int][]text.PositionedFragment{
			1: {{Text: "1. First clause.", X: 72, Y: 700, Width: 100, Height: 10}},
		},
		errs: map[int]error{
			2: errors.New("boom"),
		},
		lastPage: 2,
	}

	a := NewLineAssembler(config.Default())
	lines, issues := a.Assemble(src, model.SideBase)

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if len(issues) != 1 || issues[0].ExtractionFlags[0] != model.FlagUnextractable {
		t.Fatalf("expected one unextractable issue, got %v", issues)
	}
}

type fakeSource struct {
	pages    map[int][]text.PositionedFragment
	errs     map[int]error
	lastPage int
}

func (f *fakeSource) PageFragments(page int) ([]text.PositionedFragment, float64, error) {
	if page > f.lastPage {
		return nil, 0, ErrInvalidPage
	}
	if err, ok := f.errs[page]; ok {
		return nil, 0, err
	}
	return f.pages[page], 792, nil
}
