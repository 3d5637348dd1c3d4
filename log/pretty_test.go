package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type runErr struct{ line int }

func (e runErr) Error() string { return "division by zero" }

func (e runErr) LogValue() slog.Value {
	return slog.GroupValue(slog.String("kind", "invalid operation"), slog.Int("line", e.line))
}

func TestPretty_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithTimeLayout("none"), WithLevel(LevelTrace))
	l.Trace("exec", slog.Int("stmts", 2), slog.String("src", "x := 1"), slog.Bool("ok", true))
	l.Error("failed", slog.Any("error", runErr{line: 3}))

	want := "level=TRACE msg=exec stmts=2 src=\"x := 1\" ok=true\n" +
		"level=ERROR msg=failed error.kind=\"invalid operation\" error.line=3\n"

	if got := buf.String(); got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPretty_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithTimeLayout("none"))
	l.Logger.WithGroup("repl").With("mode", "eval").Info("line", "n", 4)

	if got := buf.String(); got != "level=INFO msg=line repl.mode=eval repl.n=4\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPretty_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithFormat(FormatJSON), WithTimeLayout("none"))
	l.Warn("slow", slog.String("file", "a.rap"), slog.Int("passes", 9))

	want := "{\n" +
		"  \"level\": \"WARN\",\n" +
		"  \"msg\": \"slow\",\n" +
		"  \"file\": \"a.rap\",\n" +
		"  \"passes\": 9\n" +
		"}\n"

	if got := buf.String(); got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPretty_Time(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithTimeLayout("2006"))
	l.Info("dated")

	if !strings.HasPrefix(buf.String(), "time=2") {
		t.Errorf("output = %q, want a time field first", buf.String())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPretty_WriteError(t *testing.T) {
	t.Parallel()

	h := newPrettyHandler(failWriter{}, &slog.HandlerOptions{}, false)
	if err := h.Handle(t.Context(), slog.Record{Message: "x"}); err == nil {
		t.Error("Handle ignored the write error")
	}
}
