// Package config holds the tunable constants used across the extraction
// pipeline. spec.md §9 flags these as "magic constants calibrated to
// specific corpora" and asks that they be exposed as configuration rather
// than hardcoded; this package does that, following the small literal
// "XConfig + DefaultXConfig()" shape the teacher pack uses throughout
// (e.g. layout.LineConfig, layout.HeaderFooterConfig, tables.Config).
package config

// Tunables holds every calibrated constant the pipeline depends on.
type Tunables struct {
	// YBucket is the line-merge radius used by the line assembler: two
	// fragments on the same page whose Y coordinates round to the same
	// multiple of YBucket are treated as one visual line (spec.md §4.1).
	YBucket float64

	// FooterBand is the fraction of page height, measured from the
	// bottom, scanned for repeated page furniture (spec.md §4.2).
	FooterBand float64

	// ParagraphGap is the Δy/median-spacing ratio above which the clause
	// parser inserts a paragraph break rather than joining two lines
	// (spec.md §4.5, appendLineWithStructure step 4).
	ParagraphGap float64

	// SuperscriptHeight is the height-ratio threshold (relative to a
	// page's median fragment height) below which a short line is a
	// superscript candidate (spec.md §4.3).
	SuperscriptHeight float64

	// IndentStep is the horizontal distance, in page units, corresponding
	// to one level of indentation when re-wrapping a continuation line
	// (spec.md §4.5).
	IndentStep float64
}

// Default returns the constants spec.md names explicitly: YBucket=2,
// FooterBand=0.14, ParagraphGap=1.55, SuperscriptHeight=0.82, IndentStep=8.
func Default() Tunables {
	return Tunables{
		YBucket:           2,
		FooterBand:        0.14,
		ParagraphGap:      1.55,
		SuperscriptHeight: 0.82,
		IndentStep:        8,
	}
}
