package repl

import (
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "double(fo", 9, "fo", 7, 9},
		{"after_comma", "add(a, fo", 9, "fo", 7, 9},
		{"after_assign", "x := fo", 7, "fo", 5, 7},
		{"after_colon", "output: fo", 10, "fo", 8, 10},
		{"after_arrow", "swap(=>fo", 9, "fo", 7, 9},
		{"in_sequence", "<* fo", 5, "fo", 3, 5},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscore", "max_len", 7, "max_len", 0, 7},
		{"digits", "x2 := 1", 2, "x2", 0, 2},
		{"cyrillic", "вывод: счёт", 20, "счёт", 12, 20},
		{"cursor_past_end", "foo", 10, "foo", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestInText(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		want   bool
	}{
		{`output: "he`, 11, true},
		{`output: "hello" + na`, 18, false},
		{`x := "a""b`, 9, true},
		{`x := "a""b"`, 11, false},
		{`x := 1`, 6, false},
	}

	for _, tt := range tests {
		if got := inText(tt.input, tt.offset); got != tt.want {
			t.Errorf("inText(%q, %d) = %v, want %v", tt.input, tt.offset, got, tt.want)
		}
	}
}

func TestComputeMatches(t *testing.T) {
	session, _ := newTestSession("")
	m := model{session: session, input: textinput.New()}

	tests := []struct {
		name   string
		mode   inputMode
		input  string
		want   string // expected best match, or "" for none
	}{
		{"keyword", modeEval, "whil", "while"},
		{"builtin", modeEval, "sqr", "sqrt"},
		{"inside text", modeEval, `output: "whil`, ""},
		{"command", modeCtrl, "li", "list"},
		{"command excludes keywords", modeCtrl, "w", ""},
		{"empty word", modeEval, "x + ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.SetCursor(len(tt.input))

			c := m.complete()
			matches, end := c.matches, c.end

			if tt.want == "" {
				if len(matches) != 0 {
					t.Errorf("matches = %v, want none", matches)
				}

				return
			}

			if len(matches) == 0 || matches[0].Str != tt.want {
				t.Fatalf("matches = %v, want %q first", matches, tt.want)
			}

			if end != len(tt.input) {
				t.Errorf("word end = %d, want %d", end, len(tt.input))
			}
		})
	}
}

func TestCycle(t *testing.T) {
	session, _ := newTestSession("")
	m := model{session: session, input: textinput.New(), comp: completion{selected: -1}}

	m.input.SetValue("x := is_")
	m.input.SetCursor(8)
	m.refresh(false)

	if len(m.comp.matches) < 2 {
		t.Fatalf("matches = %v, want several", m.comp.matches)
	}

	first := m.comp.matches[0].Str
	last := m.comp.matches[len(m.comp.matches)-1].Str

	m = m.cycle(1)
	if got := m.input.Value(); got != "x := "+first {
		t.Errorf("after tab: %q, want %q", got, "x := "+first)
	}

	m = m.cycle(-1)
	if got := m.input.Value(); got != "x := "+last {
		t.Errorf("after shift-tab: %q, want %q", got, "x := "+last)
	}

	if m.comp.before.text != "x := is_" {
		t.Errorf("saved draft = %q", m.comp.before.text)
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Find("o", []string{"output", "odd", "or"})
	c := completion{matches: matches, selected: -1}
	never := func(string) bool { return false }

	wide := renderCandidateBar(c, 80, never)
	for _, want := range []string{"output", "odd", "or"} {
		if !strings.Contains(wide, want) {
			t.Errorf("bar %q is missing %q", wide, want)
		}
	}

	narrow := renderCandidateBar(c, 12, never)
	if !strings.HasSuffix(narrow, "...") {
		t.Errorf("narrow bar = %q, want ellipsis", narrow)
	}

	if got := renderCandidateBar(completion{}, 80, never); got != "" {
		t.Errorf("empty bar = %q", got)
	}

	if got := renderCandidate(fuzzy.Match{Str: "sqrt"}, false, true); got != "sqrt()" {
		t.Errorf("callable candidate = %q", got)
	}
}

func TestLookupCommand(t *testing.T) {
	for _, name := range []string{"help", "?", "l", "exit", "edit"} {
		if _, ok := lookupCommand(name); !ok {
			t.Errorf("lookupCommand(%q) not found", name)
		}
	}

	if _, ok := lookupCommand("while"); ok {
		t.Error("lookupCommand(while) found")
	}

	if got := commandNames(); !slices.Equal(got, []string{"help", "list", "edit", "clear", "quit"}) {
		t.Errorf("commandNames = %v", got)
	}
}

func TestSessionCandidates_IncludesGlobals(t *testing.T) {
	session, _ := newTestSession("")

	if _, err := session.Eval(t.Context(), "counter := 1"); err != nil {
		t.Fatal(err)
	}

	names := session.candidates()

	for _, want := range []string{"counter", "proc", "entier", "sqrt"} {
		if !slices.Contains(names, want) {
			t.Errorf("candidates missing %q", want)
		}
	}

	if !slices.IsSorted(names) {
		t.Error("candidates are not sorted")
	}
}

func TestPreview(t *testing.T) {
	if got := preview("short"); got != "short" {
		t.Errorf("preview(short) = %q", got)
	}

	long := "<* 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14 *>"

	got := preview(long)
	if len([]rune(got)) != 40 || got[len(got)-3:] != "..." {
		t.Errorf("preview = %q", got)
	}
}
