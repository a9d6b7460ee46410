// Package regdiff implements the core comparison engine for numbered
// regulatory clauses across two PDF-derived documents: it extracts a
// hierarchical clause tree from positioned text fragments, aligns clauses
// by canonical id across two documents, and produces multi-granularity
// diffs plus section coverage statistics (spec.md §1).
//
// Decoding PDF bytes into positioned fragments, and everything downstream
// of a ComparisonResult (storage, export, transport), are the caller's
// responsibility (spec.md §1, §6); this package exposes two pure
// operations, Extract and Compare.
package regdiff

import (
	"fmt"

	"github.com/brightlinelabs/regdiff/align"
	"github.com/brightlinelabs/regdiff/compare"
	"github.com/brightlinelabs/regdiff/config"
	"github.com/brightlinelabs/regdiff/diffengine"
	"github.com/brightlinelabs/regdiff/layout"
	"github.com/brightlinelabs/regdiff/model"
)

// Extract runs the per-document pipeline described in spec.md §4 over src
// and tags every recoverable issue with side. It only returns an error
// when the source cannot be read at all; per-page failures are recorded
// as issues and the affected pages are skipped.
func Extract(src layout.PDFSource, side model.Side) (*model.ExtractedDocument, error) {
	return ExtractWithTunables(src, side, config.Default())
}

// ExtractWithTunables is Extract with caller-supplied calibration constants
// (spec.md §9).
func ExtractWithTunables(src layout.PDFSource, side model.Side, tunables config.Tunables) (*model.ExtractedDocument, error) {
	assembler := layout.NewLineAssembler(tunables)
	lines, issues := assembler.Assemble(src, side)
	if len(lines) == 0 && len(issues) == 0 {
		return nil, fmt.Errorf("regdiff: extract %s: source produced no pages", side)
	}

	footerFilter := layout.NewFooterFilter(tunables, layout.IsCanonicalHeader)
	lines = footerFilter.Filter(lines)

	superscripts := layout.NewSuperscriptAttacher(tunables)
	lines = superscripts.Attach(lines)

	boundaryFinder := layout.NewSectionBoundaryFinder()
	boundaries := boundaryFinder.Find(lines)

	cutoff := layout.NewAppendixCutoff()
	if idx := cutoff.Find(lines, boundaries); idx >= 0 {
		lines = lines[:idx]
	}

	doc := &model.ExtractedDocument{Issues: issues}
	parser := layout.NewClauseParser(tunables)

	if len(boundaries) == 0 {
		section, sectionIssues := parser.Parse(lines, layout.UnsectionedHeader, side)
		doc.Sections = append(doc.Sections, section)
		doc.Issues = append(doc.Issues, sectionIssues...)
		return doc, nil
	}

	for i, b := range boundaries {
		start := b.LineIndex + 1
		end := len(lines)
		if i+1 < len(boundaries) {
			end = boundaries[i+1].LineIndex
		}
		if start > end {
			start = end
		}
		section, sectionIssues := parser.Parse(lines[start:end], b.Header, side)
		doc.Sections = append(doc.Sections, section)
		doc.Issues = append(doc.Issues, sectionIssues...)
	}

	return doc, nil
}

// Compare runs section and clause alignment and diffing across two
// already-extracted documents and assembles the navigation structures a
// consumer needs (spec.md §4.6, §4.7, §4.8). Pure; no I/O.
func Compare(baseDoc, comparedDoc *model.ExtractedDocument) *model.ComparisonResult {
	sectionAligner := align.NewSectionAligner()
	clauseAligner := align.NewClauseAligner(diffengine.New())
	builder := compare.New(sectionAligner, clauseAligner)
	return builder.Build(baseDoc, comparedDoc)
}
