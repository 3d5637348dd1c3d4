package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/peterh/liner"

	"github.com/mattmikolay/rapture/lang"
)

const (
	plainPrompt     = "> "
	plainContPrompt = ". "
	plainInput      = "? "
)

// lineReader reads one line of interactive input with the given prompt.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

// promptReader feeds input statements one prompted line at a time.
type promptReader struct {
	lines lineReader
	buf   []byte
}

func (r *promptReader) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		line, err := r.lines.Prompt(plainInput)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return 0, io.EOF
			}

			return 0, err
		}

		r.buf = []byte(line + "\n")
	}

	n := copy(p, r.buf)
	r.buf = r.buf[n:]

	return n, nil
}

// scanLines adapts a non-interactive reader to lineReader. Prompts are not
// written.
type scanLines struct{ *bufio.Scanner }

func (s scanLines) Prompt(string) (string, error) {
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return s.Text(), nil
}

// RunPlain runs a line-oriented session. When in is a terminal the line
// editor provides history and completion; otherwise lines are read from in
// verbatim and no prompts are written.
func RunPlain(
	ctx context.Context,
	cfg Config,
	in io.Reader,
	out, errw io.Writer,
	terminal bool,
) error {
	p := &plainSession{
		history: NewHistory(""),
		lines:   scanLines{bufio.NewScanner(in)},
		out:     out,
		errw:    errw,
	}

	if terminal {
		p.liner = liner.NewLiner()
		defer p.liner.Close()

		p.liner.SetCtrlCAborts(true)
		p.liner.SetWordCompleter(p.complete)

		p.history = openHistory(cfg)
		for entry := range p.history.Lines(modeEval) {
			p.liner.AppendHistory(entry)
		}

		p.lines = p.liner
	}

	p.session = NewSession(cfg, &promptReader{lines: p.lines}, out)

	cfg.Logger.TraceContext(ctx, "repl plain start",
		slog.Bool("terminal", terminal),
		slog.Int("entry_count", p.history.Len()))

	return p.run(ctx, cfg)
}

type plainSession struct {
	session *Session
	history *History
	lines   lineReader
	liner   *liner.State
	out     io.Writer
	errw    io.Writer
}

func (p *plainSession) run(ctx context.Context, cfg Config) error {
	if cfg.Preload != "" {
		if err := p.session.Load(ctx, cfg.Preload); err != nil {
			p.session.Report(p.errw, err, cfg.Preload)
		}
	}

	for {
		input, err := p.read(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if cmd, ok := strings.CutPrefix(input, ":"); ok {
			if p.command(ctx, strings.TrimSpace(cmd)) {
				return nil
			}

			continue
		}

		p.remember(ctx, input, modeEval)

		result, err := p.session.Eval(ctx, input)
		if err != nil {
			p.session.Report(p.errw, err, input)

			continue
		}

		if result != "" {
			fmt.Fprintln(p.out, result)
		}
	}
}

// read collects one unit of input, prompting for more lines while the text
// so far ends inside an open construct.
func (p *plainSession) read(ctx context.Context) (string, error) {
	var b strings.Builder

	prompt := plainPrompt

	for {
		line, err := p.prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			if b.Len() == 0 {
				return "", io.EOF
			}

			// Ctrl+C discards a partial entry.
			b.Reset()

			prompt = plainPrompt

			continue
		}

		if err != nil {
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				return b.String(), nil
			}

			return "", err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, nil
		}

		_, perr := lang.ParseLine(ctx, src)
		if !lang.Incomplete(perr) {
			return src, nil
		}

		prompt = plainContPrompt
	}
}

func (p *plainSession) prompt(prompt string) (string, error) {
	if p.liner == nil {
		return p.lines.Prompt("")
	}

	return p.lines.Prompt(prompt)
}

// remember records input in the history file and in the line editor.
// Entries spanning several lines are not kept.
func (p *plainSession) remember(ctx context.Context, input string, mode inputMode) {
	if strings.Contains(input, "\n") {
		return
	}

	if err := p.history.Write(input, mode); err != nil {
		p.session.logger.WarnContext(ctx, "could not save history",
			slog.Any("error", err))
	}

	if p.liner != nil && mode == modeEval {
		p.liner.AppendHistory(input)
	}
}

// command runs a control command and reports whether the session should
// end.
func (p *plainSession) command(ctx context.Context, cmd string) bool {
	p.remember(ctx, cmd, modeCtrl)

	switch cmd {
	case "q", "quit", "exit":
		return true

	case "h", "help":
		fmt.Fprint(p.out, plainHelp)

	case "l", "list":
		vars := p.session.bindings()
		if len(vars) == 0 {
			fmt.Fprintln(p.out, "  (no globals)")
		}

		for _, v := range vars {
			fmt.Fprintf(p.out, "  %s %s\n", v.name, preview(v.value))
		}

	default:
		fmt.Fprintf(p.errw, "unknown command: %s (try :help)\n", cmd)
	}

	return false
}

// complete offers names that extend the identifier before the cursor.
func (p *plainSession) complete(line string, pos int) (string, []string, string) {
	head := line[:pos]

	_, start, _ := wordBounds(head, pos)
	if inText(head, start) {
		return head, nil, line[pos:]
	}

	word := head[start:]

	var out []string

	for _, name := range p.session.candidates() {
		if word != "" && strings.HasPrefix(name, word) {
			out = append(out, name)
		}
	}

	return head[:start], out, line[pos:]
}

const plainHelp = `Commands:
  :help    Print this message
  :list    List global variables and their values
  :quit    Exit (Ctrl+D also exits)

Statements run as typed; an expression prints its value. Input that ends
inside an open block continues on the next line.
`
