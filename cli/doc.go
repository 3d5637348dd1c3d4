// Package cli contains the command line interface for rapture.
//
// # Usage
//
//	rapture [flags] [run] FILE...     run programs (default command)
//	rapture repl [FILE]               start an interactive session
//	rapture fmt native|json|yaml|ast  print a parsed program
//	rapture init [--force]            write the configuration file
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory, for example ~/.config/rapture/config.yaml on Linux. Keys are
// flag names:
//
//	log-level: debug
//	log-format: text
//	include: [lib]
//
// A config.json in the same directory is also honored. Command-line flags
// override both files. "rapture init" writes config.yaml from the current
// flag values.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (json, text)
//   - --log-time-layout: timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: include caller information
//   - --log-pretty: colorize log output
//
// Log messages are written to stderr. At trace level the parser and
// interpreter report cache lookups and subroutine calls.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default ~/.cache/rapture/pprof)
package cli
