package lang

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_IsMatchesSentinel(t *testing.T) {
	t.Parallel()

	derived := ErrParse.
		WithPosition(Position{Line: 3, Column: 7}).
		With(slog.String("expected", "fi")).
		Wrap(io.ErrUnexpectedEOF)

	if !errors.Is(derived, ErrParse) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(derived, ErrReadInput) {
		t.Error("derived error matches an unrelated sentinel")
	}

	if !errors.Is(derived, io.ErrUnexpectedEOF) {
		t.Error("wrapped cause is not reachable")
	}

	if got, want := derived.Error(), "3:7: syntax error: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if got, want := derived.Message(), "syntax error: unexpected EOF"; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}

	if _, ok := ErrParse.Position(); ok {
		t.Error("sentinel should carry no position")
	}
}

func TestError_LogValue(t *testing.T) {
	t.Parallel()

	err := ErrInvalidToken.WithPosition(Position{Line: 1, Column: 2}).
		With(slog.String("found", "@"))

	attrs := err.LogValue().Group()

	got := map[string]string{}
	for _, a := range attrs {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{"error": "invalid token", "pos": "1:2", "found": "@"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("attr %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	src := "x := 1\ny := @\n"

	got := Snippet(src, Position{Line: 2, Column: 6})
	want := "  2 | y := @\n" +
		"           ^\n"

	if got != want {
		t.Errorf("Snippet =\n%q\nwant\n%q", got, want)
	}

	if s := Snippet(src, Position{Line: 9, Column: 1}); s != "" {
		t.Errorf("Snippet past end = %q, want empty", s)
	}

	if s := Snippet(src, Position{}); s != "" {
		t.Errorf("Snippet without position = %q, want empty", s)
	}
}
