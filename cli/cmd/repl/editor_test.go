package repl

import (
	"io"
	"slices"
	"testing"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		visual, editor string
		want           []string
	}{
		{"", "", []string{"vi"}},
		{"", "nano -w", []string{"nano", "-w"}},
		{"code --wait", "nano", []string{"code", "--wait"}},
		{"  ", "ed", []string{"ed"}},
	}

	for _, tt := range tests {
		t.Setenv("VISUAL", tt.visual)
		t.Setenv("EDITOR", tt.editor)

		if got := editorCommand(); !slices.Equal(got, tt.want) {
			t.Errorf("VISUAL=%q EDITOR=%q: %q, want %q", tt.visual, tt.editor, got, tt.want)
		}
	}
}

// The "true" utility leaves the file as written, so the edit returns the
// initial content.
func TestEditCommand_Run(t *testing.T) {
	t.Setenv("VISUAL", "true")

	tests := []struct {
		name    string
		initial string
		want    string
	}{
		{"unchanged program", "x := 1\noutput: x\n", "x := 1\noutput: x\n"},
		{"empty buffer cancels", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ec := &editCommand{ctxFunc: t.Context, initial: tt.initial}
			ec.SetStdout(io.Discard)
			ec.SetStderr(io.Discard)

			if err := ec.Run(); err != nil {
				t.Fatalf("Run: %v", err)
			}

			if ec.source != tt.want {
				t.Errorf("source = %q, want %q", ec.source, tt.want)
			}
		})
	}
}
