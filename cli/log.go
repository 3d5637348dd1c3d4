package cli

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/mattmikolay/rapture/log"
)

// logLevel and logFormat reconfigure the default logger as soon as kong
// decodes them, so errors reported while parsing the rest of the command line
// already use the requested settings.
type (
	logLevel  string
	logFormat string
)

func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(text))))

	return nil
}

func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(text))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"         enum:"${logLevels}"  help:"Set log level."`
	Format     logFormat `default:"text"         enum:"${logFormats}" help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                           help:"Set timestamp format."`
	Caller     bool      `default:"false"                             help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"${logPretty}"                      help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevels":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormats": strings.Join(slices.Collect(log.Formats()), ","),
		"logPretty":  strconv.FormatBool(stderrIsTerminal()),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger configured",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// logFlag applies one logging flag found by scan. A nil value means the flag
// was given without "=value".
type logFlag struct {
	takesValue bool
	apply      func(f *logConfig, value *string)
}

// boolFlag builds a logFlag for a negatable boolean. negate is true for the
// --no- spelling.
func boolFlag(field func(*logConfig) *bool, opt func(bool) log.Option, negate bool) logFlag {
	return logFlag{apply: func(f *logConfig, value *string) {
		v := true

		if value != nil {
			b, err := strconv.ParseBool(*value)
			if err != nil {
				return
			}

			v = b
		}

		v = v != negate
		*field(f) = v

		log.Config(opt(v))
	}}
}

func logFlags() map[string]logFlag {
	pretty := func(f *logConfig) *bool { return &f.Pretty }
	caller := func(f *logConfig) *bool { return &f.Caller }

	return map[string]logFlag{
		"--log-level": {takesValue: true, apply: func(f *logConfig, v *string) {
			_ = f.Level.UnmarshalText([]byte(*v))
		}},
		"--log-format": {takesValue: true, apply: func(f *logConfig, v *string) {
			_ = f.Format.UnmarshalText([]byte(*v))
		}},
		"--log-time-layout": {takesValue: true, apply: func(f *logConfig, v *string) {
			f.TimeLayout = *v
			log.Config(log.WithTimeLayout(*v))
		}},
		"--log-pretty":    boolFlag(pretty, log.WithPretty, false),
		"--no-log-pretty": boolFlag(pretty, log.WithPretty, true),
		"--log-caller":    boolFlag(caller, log.WithCaller, false),
		"--no-log-caller": boolFlag(caller, log.WithCaller, true),
	}
}

// scan applies logging flags before kong parses the command line, so that
// messages logged while loading configuration files honor them wherever they
// appear. Scanning stops at "--".
func (f *logConfig) scan(args []string) {
	flags := logFlags()

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return
		}

		name, value, assigned := strings.Cut(arg, "=")

		flag, ok := flags[name]
		if !ok {
			continue
		}

		switch {
		case assigned:
			flag.apply(f, &value)

		case flag.takesValue:
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				continue
			}

			i++
			flag.apply(f, &args[i])

		default:
			flag.apply(f, nil)
		}
	}
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
