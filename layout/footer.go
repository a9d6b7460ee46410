package layout

import (
	"regexp"
	"strings"

	"github.com/brightlinelabs/regdiff/config"
	"github.com/brightlinelabs/regdiff/model"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// knownFooterPhrases is the closed set of copyright/issuer phrases treated
// as footer boilerplate regardless of repetition (spec.md §4.2).
var knownFooterPhrases = map[string]bool{
	"copyright":                              true,
	"all rights reserved":                    true,
	"ifrs foundation":                        true,
	"issb":                                   true,
	"ifrs s2":                                true,
	"climate-related disclosures":            true,
	"australian accounting standards board": true,
	"aasb":                                   true,
	"aasb s2":                                true,
	"exposure draft":                         true,
	"issued":                                 true,
}

var (
	barePageNumberRe  = regexp.MustCompile(`^\d{1,4}$`)
	pageOfNRe         = regexp.MustCompile(`^(page \d+|p\.? ?\d+|\d+ of \d+|\d+/\d+)$`)
	signatureNonAlnum = regexp.MustCompile(`[^a-z0-9 ]+`)
	pageTokenRe       = regexp.MustCompile(`\b\d+\b`)
)

// FooterFilter drops repeated page furniture from the bottom band of each
// page without removing legitimate body text that happens to sit low on
// the page (spec.md §4.2).
type FooterFilter struct {
	tunables          config.Tunables
	isCanonicalHeader func(string) bool
}

// NewFooterFilter creates a FooterFilter. isCanonicalHeader reports whether
// a normalized line equals one of the fixed canonical section headers
// (spec.md §4.2 Pass 2: a canonical header is always kept, even inside the
// footer band); pass nil to treat no line as a canonical header.
func NewFooterFilter(tunables config.Tunables, isCanonicalHeader func(string) bool) *FooterFilter {
	if isCanonicalHeader == nil {
		isCanonicalHeader = func(string) bool { return false }
	}
	return &FooterFilter{tunables: tunables, isCanonicalHeader: isCanonicalHeader}
}

// Normalize applies NFKC normalization and full-width folding, then
// collapses whitespace and unifies quotes/dashes — the normalized form
// spec.md §4.2 compares known footer phrases and signatures against.
func Normalize(s string) string {
	s = width.Fold.String(s)
	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.NewReplacer(
		"‘", "'", "’", "'",
		"“", `"`, "”", `"`,
		"–", "-", "—", "-",
	).Replace(s)
	return strings.ToLower(strings.TrimSpace(s))
}

func isKnownFooterPhrase(normalized string) bool {
	if barePageNumberRe.MatchString(normalized) || pageOfNRe.MatchString(normalized) {
		return true
	}
	return knownFooterPhrases[normalized]
}

// signature reduces a normalized line to lowercase alphanumerics with page
// tokens stripped, used to detect repetition across pages (spec.md §4.2).
func signature(normalized string) string {
	s := pageTokenRe.ReplaceAllString(normalized, "")
	s = signatureNonAlnum.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), "")
}

func isRepeatCandidate(normalized string) bool {
	if len(normalized) > 140 {
		return false
	}
	sig := signature(normalized)
	return len(sig) >= 12 && len(strings.Fields(normalized)) >= 2
}

// Filter removes footer-band lines that are either a known footer phrase
// or whose signature repeats on at least two pages, leaving canonical
// section headers and every line outside the footer band untouched
// (spec.md §4.2).
func (f *FooterFilter) Filter(lines []model.PageLine) []model.PageLine {
	sigCounts := map[string]map[int]bool{}

	inFooterBand := func(l model.PageLine) bool {
		if l.PageHeight <= 0 {
			return false
		}
		return l.Y <= f.tunables.FooterBand*l.PageHeight
	}

	// Pass 1: count pages each repeat-candidate signature appears on.
	for _, l := range lines {
		if !inFooterBand(l) {
			continue
		}
		normalized := Normalize(l.Text)
		if isRootClauseLine(l.Text) || !isRepeatCandidate(normalized) {
			continue
		}
		sig := signature(normalized)
		if sigCounts[sig] == nil {
			sigCounts[sig] = map[int]bool{}
		}
		sigCounts[sig][l.Page] = true
	}

	repeated := map[string]bool{}
	for sig, pages := range sigCounts {
		if len(pages) >= 2 {
			repeated[sig] = true
		}
	}

	// Pass 2: drop qualifying footer-band lines.
	out := make([]model.PageLine, 0, len(lines))
	for _, l := range lines {
		if !inFooterBand(l) {
			out = append(out, l)
			continue
		}
		normalized := Normalize(l.Text)
		if f.isCanonicalHeader(normalized) || isRootClauseLine(l.Text) {
			out = append(out, l)
			continue
		}
		if isKnownFooterPhrase(normalized) {
			continue
		}
		if isRepeatCandidate(normalized) && repeated[signature(normalized)] {
			continue
		}
		out = append(out, l)
	}
	return out
}
