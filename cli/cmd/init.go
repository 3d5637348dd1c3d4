package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/mattmikolay/rapture/log"
	"github.com/mattmikolay/rapture/profile"
)

// configHeader starts every generated configuration file.
const configHeader = "# rapture configuration. Command-line flags override these values.\n"

// Init writes a configuration file recording the current value of every
// global flag.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command. Without --force an existing file is left
// untouched.
func (i *Init) Run(ctx context.Context) error {
	path := kongVar(ctx, ConfigIdentifier)
	if path == "" {
		panic("cmd: configuration path variable not set")
	}

	fail := ErrWriteConfig.With(slog.String("file", path))

	body, err := yaml.MarshalContext(ctx, globalFlags(kongContextFrom(ctx)), yaml.Indent(2))
	if err != nil {
		return fail.Wrap(err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if i.Force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return fail.Wrap(ErrFileExists)
	}

	if err != nil {
		return fail.Wrap(err)
	}

	_, err = f.WriteString(configHeader + string(body))
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return fail.Wrap(err)
	}

	log.DebugContext(ctx, "configuration written",
		slog.String("path", path),
		slog.Bool("force", i.Force),
	)

	return nil
}

// globalFlags collects the set global flags in declaration order. Help,
// version and profiling flags are not recorded.
func globalFlags(ktx *kong.Context) yaml.MapSlice {
	skip := func(name string) bool {
		for _, prefix := range []string{"help", "version", profile.Tag} {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		}

		return false
	}

	var out yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || skip(flag.Name) {
			continue
		}

		if v := flagValue(ktx, flag); v != nil {
			out = append(out, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return out
}

// flagValue returns the config value for a CLI flag, or nil if unset.
func flagValue(ktx *kong.Context, flag *kong.Flag) any {
	val := ktx.FlagValue(flag)

	switch v := val.(type) {
	case nil:
		return nil

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	case bool, int, int64, uint, uint64, float64:
		return v

	default:
		if s, ok := v.(interface{ String() string }); ok {
			return s.String()
		}

		return v
	}
}
