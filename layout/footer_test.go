package layout

import (
	"testing"

	"github.com/brightlinelabs/regdiff/config"
	"github.com/brightlinelabs/regdiff/model"
)

func TestFilter_DropsKnownFooterPhraseInBand(t *testing.T) {
	f := NewFooterFilter(config.Default(), nil)
	lines := []model.PageLine{
		{Page: 1, Text: "IFRS Foundation", Y: 20, PageHeight: 792},
		{Page: 1, Text: "25. The entity shall disclose.", Y: 700, PageHeight: 792},
	}
	out := f.Filter(lines)
	if len(out) != 1 || out[0].Text != "25. The entity shall disclose." {
		t.Fatalf("expected known footer phrase dropped, got %v", out)
	}
}

func TestFilter_DropsBarePageNumber(t *testing.T) {
	f := NewFooterFilter(config.Default(), nil)
	lines := []model.PageLine{
		{Page: 1, Text: "12", Y: 15, PageHeight: 792},
	}
	out := f.Filter(lines)
	if len(out) != 0 {
		t.Fatalf("expected bare page number dropped, got %v", out)
	}
}

func TestFilter_DropsRepeatedSignatureAcrossPages(t *testing.T) {
	f := NewFooterFilter(config.Default(), nil)
	lines := []model.PageLine{
		{Page: 1, Text: "IFRS S2 Climate-related Disclosures Exposure Draft", Y: 18, PageHeight: 792},
		{Page: 2, Text: "IFRS S2 Climate-related Disclosures Exposure Draft", Y: 18, PageHeight: 792},
		{Page: 1, Text: "30. Governance processes shall be disclosed.", Y: 650, PageHeight: 792},
	}
	out := f.Filter(lines)
	if len(out) != 1 {
		t.Fatalf("expected repeated signature dropped on both pages, got %v", out)
	}
}

func TestFilter_KeepsNonRepeatingFooterBandLine(t *testing.T) {
	f := NewFooterFilter(config.Default(), nil)
	lines := []model.PageLine{
		{Page: 1, Text: "A once-off note about a disclosure requirement here.", Y: 20, PageHeight: 792},
	}
	out := f.Filter(lines)
	if len(out) != 1 {
		t.Fatalf("expected non-repeating footer-band line kept, got %v", out)
	}
}

func TestFilter_AlwaysKeepsBoundaryLine(t *testing.T) {
	isBoundary := func(s string) bool { return s == "objective" }
	f := NewFooterFilter(config.Default(), isBoundary)
	lines := []model.PageLine{
		{Page: 1, Text: "Objective", Y: 10, PageHeight: 792},
		{Page: 2, Text: "Objective", Y: 10, PageHeight: 792},
	}
	out := f.Filter(lines)
	if len(out) != 2 {
		t.Fatalf("expected boundary lines always kept, got %v", out)
	}
}

func TestFilter_KeepsLinesOutsideFooterBand(t *testing.T) {
	f := NewFooterFilter(config.Default(), nil)
	lines := []model.PageLine{
		{Page: 1, Text: "Copyright", Y: 400, PageHeight: 792},
	}
	out := f.Filter(lines)
	if len(out) != 1 {
		t.Fatalf("expected line outside footer band kept regardless of phrase, got %v", out)
	}
}

func TestNormalize_FoldsWidthAndQuotes(t *testing.T) {
	got := Normalize("Ｃopyright ’s  test")
	want := "copyright's test"
	if got != want {
		t.Fatalf("Normalize() = %q, want %q", got, want)
	}
}
