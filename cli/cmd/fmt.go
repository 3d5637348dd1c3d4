package cmd

import (
	"context"
	"log/slog"

	"github.com/mattmikolay/rapture/lang"
	"github.com/mattmikolay/rapture/log"
)

// Fmt parses a program and prints it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native Rapira syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as abstract syntax tree."`
}

// parse reads and parses the program named by name. Parse errors are reported
// with source context before [ErrProgramFailed] is returned.
func parse(ctx context.Context, name, format string) (*lang.Program, error) {
	srcs, err := loadSources(ctx, []string{name}, nil)
	if err != nil {
		return nil, err
	}

	if len(srcs) == 0 {
		return &lang.Program{}, nil
	}

	prog, err := lang.ParseString(ctx, srcs[0].text, lang.WithLogger(log.Default()))
	if err != nil {
		Report(streamsFrom(ctx).Err, err, srcs[0].text)

		return nil, ErrProgramFailed.
			With(slog.String("file", srcs[0].name), slog.String("format", format)).
			Wrap(err)
	}

	return prog, nil
}

// Native formats input as native Rapira syntax.
type Native struct {
	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parse(ctx, f.Source, "native")
	if err != nil {
		return err
	}

	if err := prog.Format(ctx, streamsFrom(ctx).Out, f.Indent); err != nil {
		return ErrFormat.With(slog.String("format", "native")).Wrap(err)
	}

	return nil
}

// JSON parses input and outputs the syntax tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parse(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	if err := prog.FormatJSON(ctx, streamsFrom(ctx).Out, j.Indent); err != nil {
		return ErrFormat.With(slog.String("format", "json")).Wrap(err)
	}

	return nil
}

// YAML parses input and outputs the syntax tree as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output; 0 selects flow style" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parse(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	if err := prog.FormatYAML(ctx, streamsFrom(ctx).Out, y.Indent); err != nil {
		return ErrFormat.With(slog.String("format", "yaml")).Wrap(err)
	}

	return nil
}

// AST formats input as an indented syntax tree dump.
type AST struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parse(ctx, a.Source, "ast")
	if err != nil {
		return err
	}

	prog.Print(streamsFrom(ctx).Out)

	return nil
}
