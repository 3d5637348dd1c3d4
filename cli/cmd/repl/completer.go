package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// completion holds the candidates for the word under the cursor. While the
// user cycles with Tab, selected indexes the inserted candidate and before
// holds the input to restore on Esc.
type completion struct {
	matches    fuzzy.Matches
	start, end int
	selected   int
	before     draft
}

func (c completion) cycling() bool { return c.selected >= 0 }

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordBounds returns the identifier touching cursor and its byte range in
// input. The word is empty when no identifier touches the cursor.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))
	start, end = cursor, cursor

	for start > 0 {
		r, n := utf8.DecodeLastRuneInString(input[:start])
		if !isWordRune(r) {
			break
		}

		start -= n
	}

	for end < len(input) {
		r, n := utf8.DecodeRuneInString(input[end:])
		if !isWordRune(r) {
			break
		}

		end += n
	}

	return input[start:end], start, end
}

// inText reports whether offset lies inside a text literal. A doubled quote
// closes and reopens the literal, which leaves the state unchanged.
func inText(input string, offset int) bool {
	return strings.Count(input[:min(offset, len(input))], `"`)%2 == 1
}

// complete finds the candidates for the word under the cursor of the current
// input. Words inside text literals are not completed.
func (m model) complete() completion {
	input, cursor := m.input.Value(), m.input.Position()

	c := completion{selected: -1}

	var word string

	word, c.start, c.end = wordBounds(input, cursor)
	if word == "" || inText(input, c.start) {
		return c
	}

	candidates := commandNames()
	if m.mode == modeEval {
		candidates = m.session.candidates()
	}

	c.matches = fuzzy.Find(word, candidates)

	return c
}

// refresh recomputes the completion. With settle set, a lone candidate that
// already equals the typed word is dropped so the bar does not linger after
// the word is complete.
func (m *model) refresh(settle bool) {
	m.comp = m.complete()

	if settle && len(m.comp.matches) == 1 &&
		m.comp.matches[0].Str == m.input.Value()[m.comp.start:m.comp.end] {
		m.comp.matches = nil
	}
}

// cycle inserts the next (step 1) or previous (step -1) candidate. A single
// candidate is inserted and the completion closed.
func (m model) cycle(step int) model {
	n := len(m.comp.matches)

	switch {
	case n == 0:
		return m
	case n == 1:
		m.insert(m.comp.matches[0].Str)
		m.comp = completion{selected: -1}

		return m
	case m.comp.cycling():
		m.comp.selected = (m.comp.selected + step + n) % n
	default:
		m.comp.before = m.draft()
		m.comp.selected = 0

		if step < 0 {
			m.comp.selected = n - 1
		}
	}

	m.insert(m.comp.matches[m.comp.selected].Str)

	return m
}

// insert replaces the word being completed with s.
func (m *model) insert(s string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.comp.start] + s + input[m.comp.end:])
	m.comp.end = m.comp.start + len(s)
	m.input.SetCursor(m.comp.end)
}

// renderCandidateBar lays out the matches on one line, ending with an
// ellipsis when they do not fit in width.
func renderCandidateBar(c completion, width int, callable func(string) bool) string {
	if len(c.matches) == 0 || width <= 0 {
		return ""
	}

	const gap = "  "

	more := hintStyle.Render("...")
	room := width - lipgloss.Width(more)

	var b strings.Builder

	for i, match := range c.matches {
		item := renderCandidate(match, i == c.selected, callable(match.Str))
		if i > 0 {
			item = gap + item
		}

		if i > 0 && lipgloss.Width(b.String())+lipgloss.Width(item) > room {
			b.WriteString(gap + more)

			break
		}

		b.WriteString(item)
	}

	return b.String()
}

// renderCandidate highlights the characters of match that the typed word
// matched. Callables get a "()" suffix that is not inserted.
func renderCandidate(match fuzzy.Match, selected, callable bool) string {
	plain, hit := candidateStyle, candidateMatchStyle
	if selected {
		plain, hit = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}

	var b, run strings.Builder

	runHit := false
	flush := func() {
		if run.Len() == 0 {
			return
		}

		if runHit {
			b.WriteString(hit.Render(run.String()))
		} else {
			b.WriteString(plain.Render(run.String()))
		}

		run.Reset()
	}

	for i, r := range match.Str {
		if matched[i] != runHit {
			flush()
			runHit = matched[i]
		}

		run.WriteRune(r)
	}

	flush()

	if callable {
		b.WriteString(plain.Render("()"))
	}

	return b.String()
}

// preview shortens a literal for the list command.
func preview(s string) string {
	const limit = 40

	if r := []rune(s); len(r) > limit {
		return string(r[:limit-3]) + "..."
	}

	return s
}
