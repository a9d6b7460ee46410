package layout

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"unicode"

	"github.com/brightlinelabs/regdiff/config"
	"github.com/brightlinelabs/regdiff/model"
	"github.com/brightlinelabs/regdiff/text"
)

// ErrInvalidPage is the sentinel a PDFSource returns to mean "there is no
// page at this index" — i.e. the caller has walked past the end of the
// document. LineAssembler treats it as end-of-document, not a failure
// (spec.md §4.1 Failure).
var ErrInvalidPage = errors.New("layout: invalid page request")

// PDFSource is the abstraction the line assembler pulls pages from. A real
// implementation is backed by a PDF text-extraction library; decoding PDF
// bytes into fragments is explicitly out of scope for this module
// (spec.md §1, §6).
type PDFSource interface {
	// PageFragments returns the unordered fragments and viewport height
	// for the given 1-based page number. It returns ErrInvalidPage once
	// page is past the end of the document.
	PageFragments(page int) (fragments []text.PositionedFragment, pageHeight float64, err error)
}

// closingPunctuation is attached to the previous token with no space.
var closingPunctuation = map[rune]bool{
	',': true, '.': true, ';': true, ':': true, '!': true, '?': true,
	')': true, ']': true, '}': true, '%': true,
}

// openingBrackets, when trailing the previous token, attach the next token
// with no space.
var openingBrackets = map[rune]bool{'(': true, '[': true, '{': true}

// hyphenLike runes never take a surrounding space on either side.
var hyphenLike = map[rune]bool{'-': true, '–': true, '—': true, '/': true}

// LineAssembler groups positioned fragments into visual lines by Y-bucketing
// and infers intra-line spacing between fragments (spec.md §4.1).
type LineAssembler struct {
	tunables config.Tunables
}

// NewLineAssembler creates a LineAssembler with the given tunables.
func NewLineAssembler(tunables config.Tunables) *LineAssembler {
	return &LineAssembler{tunables: tunables}
}

// Assemble reads pages from src until ErrInvalidPage and returns the
// concatenated, ordered PageLines across all pages. Per-page extraction
// errors are recorded as unextractable issues and the page is skipped
// (spec.md §4.1 Failure, §7).
func (a *LineAssembler) Assemble(src PDFSource, side model.Side) ([]model.PageLine, []model.ExtractionIssue) {
	var lines []model.PageLine
	var issues []model.ExtractionIssue

	for page := 1; ; page++ {
		fragments, pageHeight, err := src.PageFragments(page)
		if errors.Is(err, ErrInvalidPage) {
			break
		}
		if err != nil {
			issues = append(issues, model.ExtractionIssue{
				Key:             "page:" + strconv.Itoa(page),
				PageStart:       page,
				PageEnd:         page,
				ExtractionFlags: []model.ExtractionFlag{model.FlagUnextractable},
				Side:            side,
			})
			continue
		}
		lines = append(lines, a.AssemblePage(page, fragments, pageHeight)...)
	}

	return lines, issues
}

// AssemblePage buckets a single page's fragments into PageLines (spec.md
// §4.1 steps 1-5).
func (a *LineAssembler) AssemblePage(page int, fragments []text.PositionedFragment, pageHeight float64) []model.PageLine {
	buckets := map[int][]text.PositionedFragment{}
	var bucketKeys []int

	for _, f := range fragments {
		if f.Trimmed() == "" {
			continue
		}
		key := roundToInt(f.Y / a.tunables.YBucket)
		if _, ok := buckets[key]; !ok {
			bucketKeys = append(bucketKeys, key)
		}
		buckets[key] = append(buckets[key], f)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(bucketKeys)))

	lines := make([]model.PageLine, 0, len(bucketKeys))
	for _, key := range bucketKeys {
		group := buckets[key]
		sort.SliceStable(group, func(i, j int) bool { return group[i].X < group[j].X })
		lines = append(lines, a.composeLine(page, pageHeight, group))
	}
	return lines
}

func (a *LineAssembler) composeLine(page int, pageHeight float64, fragments []text.PositionedFragment) model.PageLine {
	var composed string
	leftX := fragments[0].X
	maxHeight := 0.0
	lineY := fragments[0].Y
	prevRight := 0.0

	for _, f := range fragments {
		if f.Height > maxHeight {
			maxHeight = f.Height
		}
		if f.X < leftX {
			leftX = f.X
		}
		trimmed := f.Trimmed()
		if composed == "" {
			composed = trimmed
			prevRight = f.Right()
			continue
		}

		gap := f.X - prevRight
		composed += joinSeparator(composed, trimmed, gap) + trimmed
		prevRight = f.Right()
	}

	return model.PageLine{
		Page:       page,
		Text:       composed,
		X:          leftX,
		Y:          lineY,
		Height:     maxHeight,
		PageHeight: pageHeight,
		Fragments:  fragments,
	}
}

// joinSeparator decides the separator the assembler inserts between the
// already-composed line and the next token (spec.md §4.1 step 4).
func joinSeparator(prevText, nextText string, gap float64) string {
	prevRune := lastRune(prevText)
	nextRune := firstRune(nextText)

	if closingPunctuation[nextRune] || hyphenLike[prevRune] || hyphenLike[nextRune] || openingBrackets[prevRune] {
		return ""
	}

	if gap <= 1.2 {
		return ""
	}

	if isWordChar(prevRune) && isWordChar(nextRune) {
		return " "
	}

	n := roundToInt(gap / 3.4)
	if n < 1 {
		n = 1
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

func roundToInt(v float64) int {
	return int(math.Floor(v + 0.5))
}
