// Package layout implements the per-document extraction pipeline: grouping
// positioned text fragments into visual lines (LineAssembler), filtering
// repeated page furniture (FooterFilter), folding superscripts into their
// host token (SuperscriptAttacher), locating the canonical section anchors
// and the appendix cutoff (SectionBoundaryFinder, AppendixCutoff), and
// finally parsing the nested clause tree (ClauseParser) — spec.md §4.
//
// Each stage is a pure function from one slice to another; there is no
// shared mutable state and no I/O (spec.md §5). The stages run in the order
// named above; each consumes the previous stage's output.
package layout
