package layout

import (
	"sort"
	"strings"

	"github.com/brightlinelabs/regdiff/config"
	"github.com/brightlinelabs/regdiff/model"
)

// superscriptDigits maps an ASCII character to its Unicode superscript
// glyph. Characters with no mapping fall back to a caret-prefixed literal
// (spec.md §4.3).
var superscriptDigits = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '−': '⁻', '=': '⁼',
	'(': '⁽', ')': '⁾', 'n': 'ⁿ', 'i': 'ⁱ',
}

var superscriptCandidateChars = "0123456789()+−=ni"

// SuperscriptAttacher folds short superscript-sized lines (footnote
// markers, exponents) into the body line they annotate (spec.md §4.3).
type SuperscriptAttacher struct {
	tunables config.Tunables
}

// NewSuperscriptAttacher creates a SuperscriptAttacher.
func NewSuperscriptAttacher(tunables config.Tunables) *SuperscriptAttacher {
	return &SuperscriptAttacher{tunables: tunables}
}

// Attach removes superscript-candidate lines from the stream, appending
// their rendered form onto whichever neighbouring line is the closest
// match.
func (a *SuperscriptAttacher) Attach(lines []model.PageLine) []model.PageLine {
	medians := medianHeightByPage(lines)

	type attachment struct {
		targetIdx int
		glyphs    string
	}
	var attachments []attachment
	candidate := make([]bool, len(lines))
	attached := make([]bool, len(lines))

	for i, l := range lines {
		median := medians[l.Page]
		if median <= 0 {
			continue
		}
		if l.Height <= 0 || l.Height >= a.tunables.SuperscriptHeight*median {
			continue
		}
		trimmed := strings.TrimSpace(l.Text)
		if len(trimmed) == 0 || len(trimmed) > 2 {
			continue
		}
		if !isAllSuperscriptChars(trimmed) {
			continue
		}
		candidate[i] = true
	}

	for i, l := range lines {
		if !candidate[i] {
			continue
		}
		best := -1
		bestScore := 0.0
		bestDy := 0.0
		for _, offset := range []int{-2, -1, 1, 2} {
			j := i + offset
			if j < 0 || j >= len(lines) || candidate[j] {
				continue
			}
			n := lines[j]
			if n.Page != l.Page {
				continue
			}
			dy := abs(n.Y - l.Y)
			if dy > 9 {
				continue
			}
			score := dy + abs(n.X-l.X)/140
			if best == -1 || score < bestScore || (score == bestScore && dy < bestDy) {
				best = j
				bestScore = score
				bestDy = dy
			}
		}
		if best == -1 {
			continue
		}
		attachments = append(attachments, attachment{targetIdx: best, glyphs: renderSuperscript(strings.TrimSpace(l.Text))})
		attached[i] = true
	}

	out := make([]model.PageLine, len(lines))
	copy(out, lines)
	for _, a := range attachments {
		out[a.targetIdx].Text += a.glyphs
	}

	result := make([]model.PageLine, 0, len(lines))
	for i, l := range out {
		if attached[i] {
			continue
		}
		result = append(result, l)
	}
	return result
}

func isAllSuperscriptChars(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(superscriptCandidateChars, r) {
			return false
		}
	}
	return true
}

func renderSuperscript(s string) string {
	var sb strings.Builder
	ok := true
	var rendered strings.Builder
	for _, r := range s {
		glyph, found := superscriptDigits[r]
		if !found {
			ok = false
			break
		}
		rendered.WriteRune(glyph)
	}
	if ok {
		return rendered.String()
	}
	sb.WriteString("^")
	sb.WriteString(s)
	return sb.String()
}

func medianHeightByPage(lines []model.PageLine) map[int]float64 {
	heights := map[int][]float64{}
	for _, l := range lines {
		if l.Height > 0 {
			heights[l.Page] = append(heights[l.Page], l.Height)
		}
	}
	result := map[int]float64{}
	for page, values := range heights {
		sort.Float64s(values)
		result[page] = values[len(values)/2]
	}
	return result
}
