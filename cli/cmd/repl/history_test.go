package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_WriteAndReload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := historyPath(Config{HistoryDir: dir})

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{"x := 1", modeEval},
		{"list", modeCtrl},
		{"output: x", modeEval},
		{"output: x", modeEval},
		{"x := 1", modeEval},
	} {
		if err := h.Write(e.Line, e.Mode); err != nil {
			t.Fatalf("Write(%q): %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"list", modeCtrl},
		{"output: x", modeEval},
		{"x := 1", modeEval},
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	for name, hist := range map[string]*History{"written": h, "reloaded": reloaded} {
		if hist.Len() != len(want) {
			t.Fatalf("%s: Len = %d, want %d", name, hist.Len(), len(want))
		}

		for i, w := range want {
			got, err := hist.Entry(i)
			if err != nil || got != w {
				t.Errorf("%s: Entry(%d) = %v, %v, want %v", name, i, got, err, w)
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(data); got != "C:list\nE:output: x\nE:x := 1\n" {
		t.Errorf("file = %q", got)
	}
}

func TestHistory_Lines(t *testing.T) {
	t.Parallel()

	h := NewHistory("")

	for _, e := range []HistoryEntry{
		{"a := 1", modeEval},
		{"help", modeCtrl},
		{"output: a", modeEval},
		{"  ", modeEval},
	} {
		if err := h.Write(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	if got := slices.Collect(h.Lines(modeEval)); !slices.Equal(got, []string{"a := 1", "output: a"}) {
		t.Errorf("eval lines = %q", got)
	}

	if got := slices.Collect(h.Lines(modeCtrl)); !slices.Equal(got, []string{"help"}) {
		t.Errorf("ctrl lines = %q", got)
	}

	if _, err := h.Entry(3); !errors.Is(err, ErrNoEntry) {
		t.Errorf("Entry(3) error = %v", err)
	}
}

func TestHistory_LoadUnprefixed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), baseHistory)
	if err := os.WriteFile(path, []byte("output: 1\n\nC:quit\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	first, _ := h.Entry(0)
	second, _ := h.Entry(1)

	if h.Len() != 2 || first != (HistoryEntry{"output: 1", modeEval}) ||
		second != (HistoryEntry{"quit", modeCtrl}) {
		t.Errorf("entries = %v, %v (len %d)", first, second, h.Len())
	}
}
