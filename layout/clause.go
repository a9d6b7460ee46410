package layout

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/brightlinelabs/regdiff/config"
	"github.com/brightlinelabs/regdiff/model"
)

// defaultLineSpacing is the fallback vertical spacing used when a page has
// too few lines to compute a median (spec.md §4.5 step 4).
const defaultLineSpacing = 11.0

var (
	numToken = `\d+(?:\.\d+)*(?:\([A-Za-z0-9ivxlcdmIVXLCDM]+\))*`
	tokenRe  = `[A-Za-z0-9ivxlcdmIVXLCDM]+`

	rootWithTextRe    = regexp.MustCompile(`^(` + numToken + `)[.)]?\s+(\S.*)$`)
	rootLabelOnlyRe   = regexp.MustCompile(`^(` + numToken + `)[.)]?$`)
	markerWithTextRe  = regexp.MustCompile(`^\((` + tokenRe + `)\)\s+(\S.*)$`)
	markerLabelOnlyRe = regexp.MustCompile(`^\((` + tokenRe + `)\)$`)

	romanTokenRe   = regexp.MustCompile(`(?i)^[ivxlcdm]+$`)
	numericTokenRe = regexp.MustCompile(`^\d+$`)

	hyphenLikeTrailing = map[rune]bool{'-': true, '‐': true, '‑': true, '‒': true, '–': true, '—': true}
)

// normalizeLabel trims, collapses internal whitespace, strips a trailing
// "." and lowercases a raw label so it can be used to build a canonical id
// (spec.md §4.5).
func normalizeLabel(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimSuffix(s, ".")
	return strings.ToLower(s)
}

// ClauseParser walks the lines of one section and builds its tree of
// ClauseNodes, folding text that never attaches to a clause into
// synthetic "unmatched" clauses (spec.md §4.5).
type ClauseParser struct {
	tunables config.Tunables
}

// NewClauseParser creates a ClauseParser.
func NewClauseParser(tunables config.Tunables) *ClauseParser {
	return &ClauseParser{tunables: tunables}
}

// parseState carries the parser's per-section working state. Active
// parents are modeled as a stack rather than three scalar fields: index 0
// is the root id, index 1 the level-2 id, index 2 the level-3 id.
type parseState struct {
	parentStack []string

	current         *model.ClauseNode
	currentBaseX    float64
	currentLastLine model.PageLine
	hasCurrent      bool

	seenIDs      map[string]bool
	unmatched    []model.PageLine
	unmatchedSeq int
}

func (s *parseState) rootID() string {
	if len(s.parentStack) > 0 {
		return s.parentStack[0]
	}
	return ""
}

func (s *parseState) level2ID() string {
	if len(s.parentStack) > 1 {
		return s.parentStack[1]
	}
	return ""
}

func (s *parseState) level3ID() string {
	if len(s.parentStack) > 2 {
		return s.parentStack[2]
	}
	return ""
}

// Parse builds an ExtractedSection from lines already limited to one
// section's body (appendix and boundary lines excluded by the caller).
func (p *ClauseParser) Parse(lines []model.PageLine, header string, side model.Side) (*model.ExtractedSection, []model.ExtractionIssue) {
	spacing := medianLineSpacingByPage(lines)

	st := &parseState{seenIDs: map[string]bool{}}
	section := &model.ExtractedSection{Header: header, NormalizedHeader: Normalize(header)}
	var issues []model.ExtractionIssue

	flush := func() {
		if len(st.unmatched) == 0 {
			return
		}
		st.unmatchedSeq++
		id := "__unmatched_" + strconv.Itoa(st.unmatchedSeq)
		text := joinUnmatched(st.unmatched, spacing, p.tunables)
		node := &model.ClauseNode{
			ID:              id,
			RawLabel:        "",
			Level:           1,
			TextPreserved:   text,
			PageStart:       st.unmatched[0].Page,
			PageEnd:         st.unmatched[len(st.unmatched)-1].Page,
			AnchorPage:      st.unmatched[0].Page,
			AnchorY:         st.unmatched[0].Y,
			Synthetic:       true,
			SourceLineCount: len(st.unmatched),
		}
		section.Clauses = append(section.Clauses, node)
		issues = append(issues, model.ExtractionIssue{
			Key:             id,
			Text:            text,
			PageStart:       node.PageStart,
			PageEnd:         node.PageEnd,
			ExtractionFlags: []model.ExtractionFlag{model.FlagUnmatched},
			Side:            side,
		})
		st.unmatched = nil
	}

	startClause := func(id, rawLabel, initialText string, level int, parentStack []string, line model.PageLine) {
		flush()
		if st.seenIDs[id] {
			issues = append(issues, model.ExtractionIssue{
				Key:             id,
				OriginalLabel:   rawLabel,
				Text:            line.Text,
				PageStart:       line.Page,
				PageEnd:         line.Page,
				ExtractionFlags: []model.ExtractionFlag{model.FlagDuplicate},
				Side:            side,
			})
		}
		st.seenIDs[id] = true

		node := &model.ClauseNode{
			ID:              id,
			RawLabel:        rawLabel,
			Level:           level,
			TextPreserved:   initialText,
			PageStart:       line.Page,
			PageEnd:         line.Page,
			AnchorPage:      line.Page,
			AnchorY:         line.Y,
			SourceLineCount: 1,
		}
		if level > 1 {
			node.ParentID = parentStack[level-2]
		}
		st.parentStack = parentStack
		section.Clauses = append(section.Clauses, node)
		st.current = node
		st.currentBaseX = line.X
		st.currentLastLine = line
		st.hasCurrent = true
	}

	appendToCurrent := func(text string, line model.PageLine) {
		if st.current.TextPreserved == "" {
			st.current.TextPreserved = strings.TrimSpace(text)
		} else {
			st.current.TextPreserved += text
		}
		st.current.SourceLineCount++
		if line.Page < st.current.PageStart {
			st.current.PageStart = line.Page
		}
		if line.Page > st.current.PageEnd {
			st.current.PageEnd = line.Page
		}
		st.currentLastLine = line
	}

	totalLines := len(lines)
	mappedLines := 0

	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line.Text)

		if trimmed == "" {
			i++
			continue
		}

		if m := rootWithTextRe.FindStringSubmatch(trimmed); m != nil {
			id := normalizeLabel(m[1])
			startClause(id, m[1], m[2], 1, []string{id}, line)
			mappedLines++
			i++
			continue
		}

		if m := rootLabelOnlyRe.FindStringSubmatch(trimmed); m != nil {
			id := normalizeLabel(m[1])
			startClause(id, m[1], "", 1, []string{id}, line)
			mappedLines++
			i++
			if i < len(lines) && !looksLikeClauseStart(lines[i].Text) {
				appendToCurrent(" "+strings.TrimSpace(lines[i].Text), lines[i])
				mappedLines++
				i++
			}
			continue
		}

		if m := markerWithTextRe.FindStringSubmatch(trimmed); m != nil && st.rootID() != "" {
			id, level, stack := markerLevel(st, m[1])
			startClause(id, "("+m[1]+")", m[2], level, stack, line)
			mappedLines++
			i++
			continue
		}

		if m := markerLabelOnlyRe.FindStringSubmatch(trimmed); m != nil && st.rootID() != "" {
			id, level, stack := markerLevel(st, m[1])
			startClause(id, "("+m[1]+")", "", level, stack, line)
			mappedLines++
			i++
			if i < len(lines) && !looksLikeClauseStart(lines[i].Text) {
				appendToCurrent(" "+strings.TrimSpace(lines[i].Text), lines[i])
				mappedLines++
				i++
			}
			continue
		}

		if !st.hasCurrent {
			st.unmatched = append(st.unmatched, line)
			i++
			continue
		}

		sep, indent := appendLineWithStructure(st.currentLastLine, line, st.currentBaseX, spacing[line.Page], p.tunables)
		appended := sep
		if sep == "\n" {
			appended = "\n" + strings.Repeat(" ", indent)
		} else if sep == " " && hyphenLikeTrailing[lastRune(st.current.TextPreserved)] {
			st.current.TextPreserved = stripTrailingHyphen(st.current.TextPreserved)
			appended = ""
		}
		appendToCurrent(appended+trimmed, line)
		mappedLines++
		i++
	}

	flush()

	for _, c := range section.Clauses {
		if c.Level != 1 || c.Synthetic {
			continue
		}
		if section.StartParagraph == "" {
			section.StartParagraph = c.ID
		}
		section.EndParagraph = c.ID
	}

	section.Coverage = model.NewSectionCoverage(totalLines, mappedLines)
	return section, issues
}

// markerLevel assigns the level and canonical id for a marker token under
// the currently active parents (spec.md §4.5).
func markerLevel(st *parseState, token string) (id string, level int, stack []string) {
	tokLower := strings.ToLower(token)

	if numericTokenRe.MatchString(token) && st.level3ID() != "" {
		id = st.level3ID() + "(" + tokLower + ")"
		return id, 4, []string{st.rootID(), st.level2ID(), st.level3ID()}
	}
	if romanTokenRe.MatchString(token) && st.level2ID() != "" {
		id = st.level2ID() + "(" + tokLower + ")"
		return id, 3, []string{st.rootID(), st.level2ID(), id}
	}
	id = st.rootID() + "(" + tokLower + ")"
	return id, 2, []string{st.rootID(), id}
}

func looksLikeClauseStart(text string) bool {
	trimmed := strings.TrimSpace(text)
	return rootWithTextRe.MatchString(trimmed) ||
		rootLabelOnlyRe.MatchString(trimmed) ||
		markerWithTextRe.MatchString(trimmed) ||
		markerLabelOnlyRe.MatchString(trimmed)
}

// appendLineWithStructure decides how a non-label line joins the clause it
// extends: the separator to insert (" " or "\n") and, for a newline, how
// many spaces of indent to prefix (spec.md §4.5). ParagraphGap and
// IndentStep come from the caller's tunables (spec.md §9).
func appendLineWithStructure(prev, next model.PageLine, baseX float64, spacing float64, tunables config.Tunables) (sep string, indent int) {
	if prev.Page != next.Page {
		return "\n", clampIndent(next.X, baseX, tunables.IndentStep)
	}
	if looksLikeClauseStart(strings.TrimSpace(prev.Text)) {
		if isBareLabel(prev.Text) {
			return "\n", clampIndent(next.X, baseX, tunables.IndentStep)
		}
		return " ", 0
	}
	if spacing <= 0 {
		spacing = defaultLineSpacing
	}
	dy := prev.Y - next.Y
	if dy > tunables.ParagraphGap*spacing {
		return "\n", clampIndent(next.X, baseX, tunables.IndentStep)
	}
	if abs(next.X-prev.X) >= 1.5*tunables.IndentStep {
		return "\n", clampIndent(next.X, baseX, tunables.IndentStep)
	}
	return " ", 0
}

func isBareLabel(text string) bool {
	trimmed := strings.TrimSpace(text)
	return rootLabelOnlyRe.MatchString(trimmed) || markerLabelOnlyRe.MatchString(trimmed)
}

func clampIndent(x, baseX, indentStep float64) int {
	n := roundToInt((x - baseX) / indentStep)
	if n < 0 {
		n = 0
	}
	if n > 24 {
		n = 24
	}
	return n
}

// stripTrailingHyphen removes a trailing hyphen-like rune, used when a
// clause body was wrapped mid-word across lines (spec.md §4.5 S4): "obli-"
// + "gations" must join as "obligations", not "obli- gations".
func stripTrailingHyphen(s string) string {
	r := []rune(s)
	if len(r) == 0 || !hyphenLikeTrailing[r[len(r)-1]] {
		return s
	}
	return string(r[:len(r)-1])
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// medianLineSpacingByPage computes, per page, the median vertical gap
// between adjacent same-page lines — the spacing baseline appendLineWithStructure
// compares against (spec.md §4.5 step 4). Pages with fewer than two lines
// fall back to the caller's default.
func medianLineSpacingByPage(lines []model.PageLine) map[int]float64 {
	gaps := map[int][]float64{}
	for i := 1; i < len(lines); i++ {
		prev, next := lines[i-1], lines[i]
		if prev.Page != next.Page {
			continue
		}
		dy := prev.Y - next.Y
		if dy > 0 {
			gaps[prev.Page] = append(gaps[prev.Page], dy)
		}
	}

	result := map[int]float64{}
	for page, values := range gaps {
		sort.Float64s(values)
		result[page] = values[len(values)/2]
	}
	return result
}

// joinUnmatched concatenates buffered unmatched lines using the same
// structural join rules as a normal clause body, anchored at the first
// line's x.
func joinUnmatched(lines []model.PageLine, spacing map[int]float64, tunables config.Tunables) string {
	if len(lines) == 0 {
		return ""
	}
	baseX := lines[0].X
	text := strings.TrimSpace(lines[0].Text)
	last := lines[0]
	for _, l := range lines[1:] {
		sep, indent := appendLineWithStructure(last, l, baseX, spacing[l.Page], tunables)
		if sep == "\n" {
			text += "\n" + strings.Repeat(" ", indent) + strings.TrimSpace(l.Text)
		} else if sep == " " && hyphenLikeTrailing[lastRune(text)] {
			text = stripTrailingHyphen(text) + strings.TrimSpace(l.Text)
		} else {
			text += " " + strings.TrimSpace(l.Text)
		}
		last = l
	}
	return text
}
