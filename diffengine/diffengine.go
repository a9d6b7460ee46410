// Package diffengine computes word, sentence and paragraph level diffs
// between two clause texts, wired to github.com/sergi/go-diff/diffmatchpatch
// (spec.md §4.7). DiffCleanupSemantic is deliberately not used: it would
// collapse whitespace-only changes the word-diff post-processing step
// below is responsible for handling on its own terms.
package diffengine

import (
	"regexp"
	"strings"

	"github.com/brightlinelabs/regdiff/model"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var horizontalWhitespaceRe = regexp.MustCompile(`[ \t]+`)

func collapseHorizontalWhitespace(s string) string {
	return horizontalWhitespaceRe.ReplaceAllString(s, " ")
}

// DiffEngine computes the three diff granularities a ComparisonRow carries
// (spec.md §4.7).
type DiffEngine struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// New creates a DiffEngine.
func New() *DiffEngine {
	return &DiffEngine{dmp: diffmatchpatch.New()}
}

func tokenKind(op diffmatchpatch.Operation) model.DiffTokenKind {
	switch op {
	case diffmatchpatch.DiffInsert:
		return model.DiffAdded
	case diffmatchpatch.DiffDelete:
		return model.DiffRemoved
	default:
		return model.DiffEqual
	}
}

// Word runs a word-with-whitespace diff, then collapses whitespace-only
// noise and merges adjacent same-kind tokens (spec.md §4.7).
func (e *DiffEngine) Word(base, compared string) []model.DiffToken {
	diffs := e.dmp.DiffMain(base, compared, false)
	tokens := make([]model.DiffToken, 0, len(diffs))
	for _, d := range diffs {
		tokens = append(tokens, model.DiffToken{Value: d.Text, Kind: tokenKind(d.Type)})
	}
	tokens = collapseWhitespaceNoise(tokens)
	return mergeSameKind(tokens)
}

// Sentence returns a single equal token when the inputs differ only in
// horizontal whitespace; otherwise runs a sentence-granularity diff.
func (e *DiffEngine) Sentence(base, compared string) []model.DiffToken {
	if collapseHorizontalWhitespace(base) == collapseHorizontalWhitespace(compared) {
		return []model.DiffToken{{Value: base, Kind: model.DiffEqual}}
	}

	baseSentences := splitSentences(base)
	comparedSentences := splitSentences(compared)
	diffs := e.dmp.DiffMain(strings.Join(baseSentences, "\x00"), strings.Join(comparedSentences, "\x00"), false)

	tokens := make([]model.DiffToken, 0, len(diffs))
	for _, d := range diffs {
		text := strings.ReplaceAll(d.Text, "\x00", "")
		if text == "" {
			continue
		}
		tokens = append(tokens, model.DiffToken{Value: text, Kind: tokenKind(d.Type)})
	}
	return mergeSameKind(tokens)
}

// Paragraph returns a single equal token when the inputs are whitespace- or
// trim-equal; otherwise diffs by trimmed line. A diff library result with
// no changes at all (degenerate) falls back to [removed base, added
// compared] so a real difference is never silently hidden.
func (e *DiffEngine) Paragraph(base, compared string) []model.DiffToken {
	if base == compared || strings.TrimSpace(base) == strings.TrimSpace(compared) {
		return []model.DiffToken{{Value: base, Kind: model.DiffEqual}}
	}

	baseLines := splitTrimmedLines(base)
	comparedLines := splitTrimmedLines(compared)
	diffs := e.dmp.DiffMain(strings.Join(baseLines, "\x00"), strings.Join(comparedLines, "\x00"), false)

	tokens := make([]model.DiffToken, 0, len(diffs))
	changed := false
	for _, d := range diffs {
		text := strings.ReplaceAll(d.Text, "\x00", "")
		if text == "" {
			continue
		}
		kind := tokenKind(d.Type)
		if kind != model.DiffEqual {
			changed = true
		}
		tokens = append(tokens, model.DiffToken{Value: text, Kind: kind})
	}

	if !changed {
		return []model.DiffToken{
			{Value: base, Kind: model.DiffRemoved},
			{Value: compared, Kind: model.DiffAdded},
		}
	}
	return mergeSameKind(tokens)
}

var sentenceBoundaryRe = regexp.MustCompile(`(?:[.!?]+)(\s+|$)`)

func splitSentences(s string) []string {
	var out []string
	last := 0
	for _, loc := range sentenceBoundaryRe.FindAllStringIndex(s, -1) {
		out = append(out, s[last:loc[1]])
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, s[last:])
	}
	if len(out) == 0 {
		return []string{s}
	}
	return out
}

func splitTrimmedLines(s string) []string {
	lines := strings.Split(s, "\n")
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(l)
	}
	return out
}

// collapseWhitespaceNoise merges adjacent (removed, added) or (added,
// removed) token pairs whose values are equal once horizontal whitespace
// is collapsed, and relabels whitespace-only non-equal tokens as equal
// (spec.md §4.7).
func collapseWhitespaceNoise(tokens []model.DiffToken) []model.DiffToken {
	out := make([]model.DiffToken, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.Kind != model.DiffEqual && strings.TrimSpace(t.Value) == "" {
			out = append(out, model.DiffToken{Value: t.Value, Kind: model.DiffEqual})
			i++
			continue
		}
		if i+1 < len(tokens) {
			n := tokens[i+1]
			pairIsNoise := (t.Kind == model.DiffRemoved && n.Kind == model.DiffAdded) ||
				(t.Kind == model.DiffAdded && n.Kind == model.DiffRemoved)
			if pairIsNoise && collapseHorizontalWhitespace(t.Value) == collapseHorizontalWhitespace(n.Value) {
				out = append(out, model.DiffToken{Value: t.Value, Kind: model.DiffEqual})
				i += 2
				continue
			}
		}
		out = append(out, t)
		i++
	}
	return out
}

func mergeSameKind(tokens []model.DiffToken) []model.DiffToken {
	out := make([]model.DiffToken, 0, len(tokens))
	for _, t := range tokens {
		if len(out) > 0 && out[len(out)-1].Kind == t.Kind {
			out[len(out)-1].Value += t.Value
			continue
		}
		out = append(out, t)
	}
	return out
}
