package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"

	tea "github.com/charmbracelet/bubbletea"
)

type (
	editDoneMsg      struct{ source string }
	editCancelledMsg struct{}
	editDeclinedMsg  struct{}
	editErrorMsg     struct{ err error }
)

// inputMode selects what the input line is for: Rapira input or a REPL
// command.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

var prompts = [...]string{modeEval: "➜ ", modeCtrl: " :"}

func renderPrompt(mode inputMode) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(prompts[mode])
	}

	return evalPromptStyle.Render(prompts[mode])
}

// draft is an unsubmitted input line.
type draft struct {
	text   string
	cursor int
}

// command is a REPL command available in command mode.
type command struct {
	name  string
	alias []string
	usage string
	run   func(m model) (model, tea.Cmd)
}

func commands() []command {
	return []command{
		{"help", []string{"h", "?"}, "show this message", model.showHelp},
		{"list", []string{"l"}, "list global variables and their values", model.showGlobals},
		{"edit", []string{"e"}, "write a program in $EDITOR and run it", model.edit},
		{"clear", []string{"c"}, "clear the screen", func(m model) (model, tea.Cmd) { return m, tea.ClearScreen }},
		{"quit", []string{"q", "exit"}, "leave the REPL", func(m model) (model, tea.Cmd) {
			m.quitting = true

			return m, tea.Quit
		}},
	}
}

func commandNames() []string {
	var names []string
	for _, c := range commands() {
		names = append(names, c.name)
	}

	return names
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands() {
		if c.name == name || slices.Contains(c.alias, name) {
			return c, true
		}
	}

	return command{}, false
}

func helpMessage() string {
	var b strings.Builder

	b.WriteString("Commands (Esc switches to command mode):\n\n")

	for _, c := range commands() {
		fmt.Fprintf(&b, "  %-7s %s\n", c.name, c.usage)
	}

	b.WriteString("\nKeys:\n\n")
	b.WriteString(keyHelp())
	b.WriteString("\n\nStatements run as typed; separate several with \";\". An expression\n" +
		"prints its value. Input statements need a terminal line, so use\n" +
		"\"rapture repl --plain\" for programs that read input.\n")

	return b.String()
}

// model is the Bubble Tea model of the full-screen REPL.
type model struct {
	ctx     context.Context
	session *Session
	output  *bytes.Buffer
	history *History
	input   textinput.Model
	comp    completion

	// drafts holds the unsubmitted line of the mode not on screen.
	drafts [2]draft
	mode   inputMode

	// browse is set while Alt+Up/Down walks the command history; from is
	// where browsing started.
	browse struct {
		active bool
		mode   inputMode
		from   draft
	}

	historyIdx int
	lastEdit   string
	width      int
	quitting   bool
}

const defaultWidth = 80

func newModel(ctx context.Context, session *Session, output *bytes.Buffer, history *History) model {
	ti := textinput.New()
	ti.Prompt = renderPrompt(modeEval)
	ti.CharLimit = 1024
	ti.Width = defaultWidth
	ti.Focus()

	return model{
		ctx:        ctx,
		session:    session,
		output:     output,
		history:    history,
		input:      ti,
		comp:       completion{selected: -1},
		historyIdx: history.Len(),
		width:      defaultWidth,
	}
}

// Run starts the full-screen REPL.
func Run(ctx context.Context, cfg Config) error {
	cfg.Logger.TraceContext(ctx, "repl start",
		slog.String("history_dir", cfg.HistoryDir),
		slog.String("preload", cfg.PreloadName),
	)

	var output bytes.Buffer

	// The terminal belongs to the UI, so input statements see end of input.
	session := NewSession(cfg, strings.NewReader(""), &output)

	var start []tea.Cmd

	if cfg.Preload != "" {
		var b bytes.Buffer

		err := session.Load(ctx, cfg.Preload)
		b.Write(output.Bytes())
		output.Reset()

		if err != nil {
			session.Report(&b, err, cfg.Preload)
		}

		if b.Len() > 0 {
			start = append(start, tea.Println(strings.TrimRight(b.String(), "\n")))
		}
	}

	history := openHistory(cfg)

	m := newModel(ctx, session, &output, history)

	_, err := tea.NewProgram(startModel{m, start}, tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

// openHistory loads the history file named by cfg. A history that cannot be
// loaded is logged and replaced with an empty one.
func openHistory(cfg Config) *History {
	path := historyPath(cfg)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		cfg.Logger.Warn("could not load history", slog.Any("error", err))

		return NewHistory(path)
	}

	cfg.Logger.Trace("repl history loaded", slog.Int("entries", h.Len()))

	return h
}

// startModel prints preload output before the first prompt.
type startModel struct {
	model

	start []tea.Cmd
}

func (s startModel) Init() tea.Cmd {
	return tea.Sequence(append(s.start, textinput.Blink)...)
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompts[modeEval]) - 2

		return m, nil

	case editDoneMsg:
		m.lastEdit = msg.source

		return m, m.flush("", m.session.Load(m.ctx, msg.source), msg.source)

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.status() + "\n"
}

// status is the line under the input: the history position, a usage hint,
// the signature of the call being typed, or the completion candidates.
func (m model) status() string {
	input := m.input.Value()
	call := detectFunctionCall(input, m.input.Position())

	switch {
	case m.historyIdx < m.history.Len():
		return hintStyle.Render(fmt.Sprintf("%d/%d", m.historyIdx+1, m.history.Len()))

	case strings.TrimSpace(input) == "":
		if m.mode == modeCtrl {
			return hintStyle.Render(strings.Join(commandNames(), ", ") + " (Esc returns)")
		}

		return hintStyle.Render("Type a statement or expression, or press Esc for commands")

	case call.inCall && m.mode == modeEval && len(m.comp.matches) == 0:
		sig, params := m.session.signature(call.name)
		if sig == "" {
			return ""
		}

		return renderSignatureHint(sig, params, call.argIndex)

	default:
		return renderCandidateBar(m.comp, m.width, m.callable)
	}
}

// callable reports whether name is bound to a procedure or function.
func (m model) callable(name string) bool {
	if m.mode != modeEval {
		return false
	}

	sig, _ := m.session.signature(name)

	return sig != ""
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.session.logger.TraceContext(m.ctx, "repl key", slog.String("key", msg.String()))

	empty := m.input.Value() == ""

	if !key.Matches(msg, keys.OlderCmd, keys.NewerCmd) {
		m.browse.active = false
	}

	switch {
	case key.Matches(msg, keys.Interrupt) && empty, key.Matches(msg, keys.Quit) && empty:
		m.quitting = true

		return m, tea.Quit

	case key.Matches(msg, keys.Interrupt):
		m.input.SetValue("")
		m.historyIdx = m.history.Len()
		m.refresh(false)

		return m, nil

	case key.Matches(msg, keys.Quit):
		return m, nil

	case key.Matches(msg, keys.Submit):
		if !m.comp.cycling() {
			return m.submit()
		}

		m.refresh(true)

		return m, nil

	case key.Matches(msg, keys.Next):
		return m.cycle(1), nil

	case key.Matches(msg, keys.Prev):
		return m.cycle(-1), nil

	case key.Matches(msg, keys.Older):
		return m.seek(-1, nil), nil

	case key.Matches(msg, keys.Newer):
		return m.seek(1, nil), nil

	case key.Matches(msg, keys.OlderInMode):
		return m.seek(-1, inMode(m.mode)), nil

	case key.Matches(msg, keys.NewerInMode):
		return m.seek(1, inMode(m.mode)), nil

	case key.Matches(msg, keys.OlderCmd):
		return m.browseCommands(-1), nil

	case key.Matches(msg, keys.NewerCmd):
		return m.browseCommands(1), nil

	case key.Matches(msg, keys.Mode):
		if m.comp.cycling() {
			m.restore(m.comp.before)
			m.refresh(false)

			return m, nil
		}

		return m.switchMode(1 - m.mode), nil
	}

	// Typing settles a lone exact completion; editing keys never do.
	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh(msg.Type == tea.KeyRunes)

	return m, cmd
}

func (m model) draft() draft {
	return draft{m.input.Value(), m.input.Position()}
}

func (m *model) restore(d draft) {
	m.input.SetValue(d.text)
	m.input.SetCursor(d.cursor)
}

// switchMode shows the draft of mode, keeping the current line for when the
// user switches back.
func (m model) switchMode(mode inputMode) model {
	if mode == m.mode {
		return m
	}

	m.drafts[m.mode] = m.draft()
	m.mode = mode
	m.input.Prompt = renderPrompt(mode)
	m.restore(m.drafts[mode])
	m.refresh(false)

	return m
}

func (m model) submit() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.drafts = [2]draft{}
	m.input.SetValue("")
	m.comp = completion{selected: -1}

	if err := m.history.Write(input, m.mode); err != nil {
		m.session.logger.WarnContext(m.ctx, "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.runCommand(input)
	}

	echo := renderPrompt(modeEval) + inputStyle.Render(input)
	result, err := m.session.Eval(m.ctx, input)

	return m, tea.Sequence(tea.Println(echo), m.flush(result, err, input))
}

// flush prints the program output collected since the last flush, followed
// by a result or error.
func (m model) flush(result string, err error, source string) tea.Cmd {
	var lines []string

	if m.output.Len() > 0 {
		lines = append(lines, strings.TrimSuffix(m.output.String(), "\n"))
		m.output.Reset()
	}

	if result != "" {
		lines = append(lines, resultStyle.Render(result))
	}

	if err != nil {
		var report bytes.Buffer

		m.session.Report(&report, err, source)
		lines = append(lines, errorStyle.Render(strings.TrimSuffix(report.String(), "\n")))
	}

	if len(lines) == 0 {
		return nil
	}

	return tea.Println(strings.Join(lines, "\n"))
}

func (m model) runCommand(input string) (model, tea.Cmd) {
	name, _, _ := strings.Cut(input, " ")

	m.session.logger.TraceContext(m.ctx, "repl command", slog.String("command", name))

	c, ok := lookupCommand(name)
	if !ok {
		return m, tea.Println(errorStyle.Render("unknown command: " + name + " (try help)"))
	}

	echo := tea.Println(renderPrompt(modeCtrl) + inputStyle.Render(input))

	m, cmd := c.run(m)

	return m, tea.Sequence(echo, cmd)
}

func (m model) showHelp() (model, tea.Cmd) {
	return m, tea.Println(helpMessage())
}

func (m model) showGlobals() (model, tea.Cmd) {
	vars := m.session.bindings()
	if len(vars) == 0 {
		return m, tea.Println(hintStyle.Render("  (no globals)"))
	}

	lines := make([]string, len(vars))
	for i, v := range vars {
		lines[i] = "  " + v.name + " " + hintStyle.Render(preview(v.value))
	}

	return m, tea.Println(strings.Join(lines, "\n"))
}

func (m model) edit() (model, tea.Cmd) {
	ec := &editCommand{
		ctxFunc: func() context.Context { return m.ctx },
		logger:  m.session.logger,
		initial: m.lastEdit,
	}

	return m, tea.Exec(ec, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case ec.source == "":
			return editCancelledMsg{}
		default:
			return editDoneMsg{source: ec.source}
		}
	})
}

func inMode(mode inputMode) func(HistoryEntry) bool {
	return func(e HistoryEntry) bool { return e.Mode == mode }
}

// seek moves through history by step, skipping entries rejected by match.
// Moving past the newest entry clears the input. Without a filter the mode
// follows the selected entry.
func (m model) seek(step int, match func(HistoryEntry) bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil || (match != nil && !match(entry)) {
			continue
		}

		if match == nil {
			m = m.switchMode(entry.Mode)
		}

		m.historyIdx = i
		m.restore(draft{entry.Line, len(entry.Line)})
		m.refresh(false)

		return m
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refresh(false)
	}

	return m
}

// browseCommands walks the command history, switching to command mode on
// first use. Running off either end restores the mode and line that were
// active before browsing began.
func (m model) browseCommands(step int) model {
	if !m.browse.active {
		m.browse.active = true
		m.browse.mode = m.mode
		m.browse.from = m.draft()
		m = m.switchMode(modeCtrl)
	}

	before := m.historyIdx

	m = m.seek(step, inMode(modeCtrl))
	if m.historyIdx != before && m.historyIdx < m.history.Len() {
		return m
	}

	m.browse.active = false
	m = m.switchMode(m.browse.mode)
	m.restore(m.browse.from)
	m.historyIdx = m.history.Len()
	m.refresh(false)

	return m
}
