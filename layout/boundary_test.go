package layout

import (
	"testing"

	"github.com/brightlinelabs/regdiff/model"
)

func linesOf(texts ...string) []model.PageLine {
	out := make([]model.PageLine, len(texts))
	for i, t := range texts {
		out[i] = model.PageLine{Page: 1, Text: t}
	}
	return out
}

func TestSectionBoundaryFinder_QualifiesWithRootClauseNearby(t *testing.T) {
	lines := linesOf("Objective", "This section sets out requirements.", "1. The entity shall disclose.")
	boundaries := NewSectionBoundaryFinder().Find(lines)
	if len(boundaries) != 1 || boundaries[0].Header != "Objective" {
		t.Fatalf("expected one Objective boundary, got %v", boundaries)
	}
}

func TestSectionBoundaryFinder_RejectsHeaderWithoutNearbyRootClause(t *testing.T) {
	lines := linesOf("Objective", "This is prose only, no numbered clause follows at all in range.")
	boundaries := NewSectionBoundaryFinder().Find(lines)
	if len(boundaries) != 0 {
		t.Fatalf("expected no boundary without a nearby root clause, got %v", boundaries)
	}
}

func TestSectionBoundaryFinder_FirstOccurrenceWins(t *testing.T) {
	lines := linesOf("Objective", "1. First.", "Objective", "2. Second.")
	boundaries := NewSectionBoundaryFinder().Find(lines)
	if len(boundaries) != 1 || boundaries[0].LineIndex != 0 {
		t.Fatalf("expected first occurrence to win, got %v", boundaries)
	}
}

func TestAppendixCutoff_AfterLastBoundary(t *testing.T) {
	lines := linesOf("Objective", "1. The entity shall disclose.", "Appendix A Defined terms", "Some definition text.")
	boundaries := NewSectionBoundaryFinder().Find(lines)
	idx := NewAppendixCutoff().Find(lines, boundaries)
	if idx != 2 {
		t.Fatalf("expected cutoff at index 2, got %d", idx)
	}
}

func TestAppendixCutoff_NoBoundariesNeedsThreeRootClauses(t *testing.T) {
	lines := linesOf("1. First.", "2. Second.", "3. Third.", "Appendix A Defined terms")
	idx := NewAppendixCutoff().Find(lines, nil)
	if idx != 3 {
		t.Fatalf("expected cutoff at index 3 with three preceding root clauses, got %d", idx)
	}
}

func TestAppendixCutoff_RejectsLongOrPunctuatedHeading(t *testing.T) {
	lines := linesOf("1. First.", "2. Second.", "3. Third.", "Appendix A describes the defined terms used throughout this standard in detail.")
	idx := NewAppendixCutoff().Find(lines, nil)
	if idx != -1 {
		t.Fatalf("expected no cutoff for an over-long heading, got %d", idx)
	}
}
