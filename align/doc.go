// Package align pairs the sections and clauses of two ExtractedDocuments so
// a downstream diff can run per clause: SectionAligner matches sections by
// canonical header across the base and compared documents, and
// ClauseAligner matches clauses within one paired section by canonical id
// (spec.md §4.6).
package align
