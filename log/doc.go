// Package log is the structured diagnostic logger shared by the rapture
// packages. It wraps [log/slog] with a small set of functional options and
// adds [LevelTrace] below debug for per-statement interpreter tracing.
//
// Diagnostics never go to a program's output stream. The package-level
// functions write to stderr through a default logger that the command line
// reconfigures with [Config]:
//
//	log.Config(log.WithLevel(log.LevelTrace), log.WithFormat(log.FormatJSON))
//	log.DebugContext(ctx, "run", slog.String("file", "hello.rap"))
//
// Libraries take a [Logger] value instead. The zero Logger is valid and
// discards everything, so an interpreter built without one pays only a nil
// check per call:
//
//	logger := log.Make(os.Stderr, log.WithTimeLayout("kitchen"))
//	logger.Trace("invoke", slog.String("callee", "fact"))
//
// When the output is a terminal, records are pretty printed with colors
// chosen for that terminal. [WithPretty] overrides the detection.
package log
