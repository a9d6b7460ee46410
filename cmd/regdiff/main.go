// Command regdiff is a thin command-line front end over the regdiff core.
// It reads a pair of fragment-dump fixtures — the JSON serialization a real
// PDF text-extraction library would produce for each page — and prints the
// resulting ComparisonResult as JSON.
//
// Decoding actual PDF bytes is out of scope for this module (spec.md §1),
// so this tool consumes the pre-extracted fragment form rather than a .pdf
// file directly; see fixtureSource below for the exact shape expected.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/brightlinelabs/regdiff/layout"
	"github.com/brightlinelabs/regdiff/model"
	"github.com/brightlinelabs/regdiff/regdiff"
	"github.com/brightlinelabs/regdiff/text"
)

func main() {
	basePath := flag.String("base", "", "path to the base document's fragment-dump JSON fixture")
	comparedPath := flag.String("compared", "", "path to the compared document's fragment-dump JSON fixture")
	outPath := flag.String("out", "", "path to write the comparison result JSON to (default: stdout)")
	flag.Parse()

	if *basePath == "" || *comparedPath == "" {
		fmt.Fprintln(os.Stderr, "usage: regdiff -base base.json -compared compared.json [-out result.json]")
		os.Exit(2)
	}

	baseSource, err := loadFixture(*basePath)
	if err != nil {
		log.Fatalf("loading base fixture: %v", err)
	}
	comparedSource, err := loadFixture(*comparedPath)
	if err != nil {
		log.Fatalf("loading compared fixture: %v", err)
	}

	baseDoc, err := regdiff.Extract(baseSource, model.SideBase)
	if err != nil {
		log.Fatalf("extracting base document: %v", err)
	}
	comparedDoc, err := regdiff.Extract(comparedSource, model.SideCompared)
	if err != nil {
		log.Fatalf("extracting compared document: %v", err)
	}

	for _, issue := range append(append([]model.ExtractionIssue{}, baseDoc.Issues...), comparedDoc.Issues...) {
		log.Printf("extraction issue [%s p.%d-%d] %s: %q", issue.Side, issue.PageStart, issue.PageEnd, issue.ExtractionFlags, issue.Text)
	}

	result := regdiff.Compare(baseDoc, comparedDoc)

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("creating output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("encoding result: %v", err)
	}
}

// fixturePage is one page's worth of positioned fragments, the unit a real
// PDF text-extraction library would hand the line assembler one page at a
// time (layout.PDFSource).
type fixturePage struct {
	Height    float64                   `json:"height"`
	Fragments []text.PositionedFragment `json:"fragments"`
}

// fixtureSource implements layout.PDFSource over a fixture file's decoded
// pages, in place of a real PDF reader.
type fixtureSource struct {
	pages []fixturePage
}

func (s *fixtureSource) PageFragments(page int) ([]text.PositionedFragment, float64, error) {
	idx := page - 1
	if idx < 0 || idx >= len(s.pages) {
		return nil, 0, layout.ErrInvalidPage
	}
	p := s.pages[idx]
	return p.Fragments, p.Height, nil
}

func loadFixture(path string) (*fixtureSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pages []fixturePage
	if err := json.Unmarshal(raw, &pages); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &fixtureSource{pages: pages}, nil
}
