package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/mattmikolay/rapture/cli/cmd"
	"github.com/mattmikolay/rapture/pkg"
)

// CLI is the rapture command line.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Run  cmd.Run  `cmd:"" default:"withargs" help:"Run Rapira programs"`
	Repl cmd.Repl `cmd:""                    help:"Start an interactive session"`
	Fmt  cmd.Fmt  `cmd:""                    help:"Format a program"`
	Init cmd.Init `cmd:""                    help:"Initialize configuration file"`
}

// Run parses args and runs the selected command. exit is called by kong for
// --help, --version and usage errors.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var cli CLI

	// Logging flags take effect before the config files are read.
	cli.Log.scan(args)

	parser, err := cli.parser(ctx, exit)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}

// parser builds the kong parser for cli. Flag values are resolved from the
// command line first, then the YAML config file, then config.json.
func (cli *CLI) parser(ctx context.Context, exit func(int)) (*kong.Kong, error) {
	configFile := configPath(baseConfig)

	vars := kong.Vars{
		"version":            pkg.Name + " " + pkg.Version,
		cmd.ConfigIdentifier: configFile,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	return kong.New(cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, configPath("config.json")),
		kong.Configuration(resolve(ctx), configFile),
		vars,
	)
}
