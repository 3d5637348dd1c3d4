// Command rapture runs and explores programs written in Rapira.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mattmikolay/rapture/cli"
	"github.com/mattmikolay/rapture/cli/cmd"
	"github.com/mattmikolay/rapture/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)

	switch {
	case err == nil:
	case errors.Is(err, cmd.ErrProgramFailed):
		// The program's error was already printed with its source line.
		os.Exit(1)
	default:
		log.Error("rapture failed", slog.Any("error", err))
		os.Exit(1)
	}
}
