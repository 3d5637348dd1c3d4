package cmd

import (
	"context"
	"log/slog"

	"github.com/mattmikolay/rapture/interp"
	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/log"
)

// Run executes Rapira programs.
type Run struct {
	Files   []string `arg:"" default:"-" help:"Program files, or '-' for stdin. Files run in order and share globals." name:"file"`
	Define  []string `help:"Bind NAME to the value of an expr-lang expression before running." placeholder:"NAME=EXPR"      short:"D"`
	Include []string `help:"Directory searched for program files, ahead of RAPTURE_PATH."     placeholder:"DIR"            short:"I" type:"path"`
}

// Run executes the run command. Program errors are reported to stderr with
// their source position, and [ErrProgramFailed] is returned.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	streams := streamsFrom(ctx)
	logger := log.Default()

	globals, err := defines(ctx, r.Define)
	if err != nil {
		return err
	}

	srcs, err := loadSources(ctx, r.Files, searchPath(r.Include))
	if err != nil {
		return err
	}

	in := interp.New(
		interp.WithInput(streams.In),
		interp.WithOutput(streams.Out),
		interp.WithLogger(logger),
		interp.WithGlobals(globals),
	)

	for _, src := range srcs {
		logger.DebugContext(ctx, "run program",
			slog.String("file", src.name),
			slog.Int("source_bytes", len(src.text)))

		prog, err := lang.ParseString(ctx, src.text, lang.WithLogger(logger))
		if err == nil {
			err = in.Run(ctx, prog)
		}

		if err != nil {
			Report(streams.Err, err, src.text)

			return ErrProgramFailed.
				With(slog.String("file", src.name)).
				Wrap(err)
		}
	}

	return nil
}
