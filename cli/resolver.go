package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/mattmikolay/rapture/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads a YAML document of
// flag values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// Keys are flag names. Hyphens and underscores are interchangeable, so both
// of these set --log-level:
//
//	log-level: debug
//	log_level: debug
//
// Flags of subcommands are looked up by their own name as well, so
//
//	include: [lib, vendor]
//
// sets "rapture run --include". A malformed document is logged and ignored.
// Command-line flags override config file values.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).DecodeContext(ctx, &doc); err != nil {
			if err != io.EOF {
				log.WarnContext(ctx, "ignoring config file",
					slog.Any("error", err))
			}

			return config{}, nil
		}

		cfg := make(config, len(doc))
		for key, val := range doc {
			cfg[normalize(key)] = flatten(val)
		}

		return cfg, nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[normalize(flag.Name)]; ok {
		return value, nil
	}

	// Not found: let kong use the default.
	return nil, nil
}

func normalize(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// flatten converts a decoded YAML value to the string form kong parses.
// Sequences become comma-separated lists.
func flatten(val any) any {
	switch v := val.(type) {
	case bool, string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		part := make([]string, len(v))
		for i, e := range v {
			part[i] = fmt.Sprint(flatten(e))
		}

		return strings.Join(part, ",")
	case nil:
		return nil
	default:
		return fmt.Sprint(v)
	}
}
