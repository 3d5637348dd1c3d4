package log_test

import (
	"log/slog"
	"os"

	"github.com/mattmikolay/rapture/log"
)

func Example() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"))
	logger.Info("run", slog.String("file", "hello.rap"))
	logger.Debug("dropped")
	// Output: level=INFO msg=run file=hello.rap
}

func Example_trace() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithLevel(log.LevelTrace))
	logger.Trace("invoke", slog.String("callee", "fact"), slog.Int("args", 1))
	// Output: level=TRACE msg=invoke callee=fact args=1
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithFormat(log.FormatJSON))
	logger.With(slog.String("file", "a.rap")).Warn("parse", slog.Int("stmts", 3))
	// Output: {"level":"WARN","msg":"parse","file":"a.rap","stmts":3}
}
