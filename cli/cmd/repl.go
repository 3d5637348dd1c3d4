package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mattmikolay/rapture/cli/cmd/repl"
	"github.com/mattmikolay/rapture/log"
)

// Repl starts an interactive session.
type Repl struct {
	File    string   `arg:"" help:"Program run before the first prompt."                           name:"file"        optional:""`
	Plain   bool     `help:"Use a line editor instead of the full-screen interface."`
	Define  []string `help:"Bind NAME to the value of an expr-lang expression."                     placeholder:"NAME=EXPR" short:"D"`
	Include []string `help:"Directory searched for the preload file, ahead of RAPTURE_PATH." placeholder:"DIR"       short:"I" type:"path"`
}

// Run executes the repl command. The full-screen interface is used only when
// both standard input and output are terminals.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	streams := streamsFrom(ctx)

	globals, err := defines(ctx, r.Define)
	if err != nil {
		return err
	}

	cfg := repl.Config{
		Globals:    globals,
		HistoryDir: kongVar(ctx, CacheIdentifier),
		Report:     Report,
		Logger:     log.Default(),
	}

	if r.File != "" {
		srcs, err := loadSources(ctx, []string{r.File}, searchPath(r.Include))
		if err != nil {
			return err
		}

		cfg.Preload, cfg.PreloadName = srcs[0].text, srcs[0].name
	}

	terminal := isTerminal(streams.In) && isTerminal(streams.Out)

	log.DebugContext(ctx, "repl",
		slog.Bool("plain", r.Plain),
		slog.Bool("terminal", terminal),
		slog.String("preload", cfg.PreloadName))

	if r.Plain || !terminal {
		return repl.RunPlain(ctx, cfg, streams.In, streams.Out, streams.Err, terminal)
	}

	return repl.Run(ctx, cfg)
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)

	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
